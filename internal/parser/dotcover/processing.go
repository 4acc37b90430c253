package dotcover

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/coverscope/coverscope/internal/inputxml"
	"github.com/coverscope/coverscope/internal/model"
	"github.com/coverscope/coverscope/internal/parser"
	"github.com/coverscope/coverscope/internal/utils"
)

// This file contains the core logic for processing dotCover XML data into the
// generic data model. The design is centered around a 'processingOrchestrator'
// struct created once per Parse call.
//
// The main responsibilities are:
// - Resolving the global file table that maps numeric file ids to paths.
// - Collecting candidate classes from namespaced and namespace-free types,
//   while folding compiler generated types back into their declaring class.
// - Fanning class processing out to a bounded worker pool.
// - Merging overlapping statement ranges into per line visit data.
// - Classifying methods into visible code elements, recovering the source
//   names of async state machines and hiding lambda artifacts.

// DotCover-specific Regexes
var (
	// Matches lambda or local function artifacts such as "<Process>b__2_0(System.Object)".
	lambdaMethodNameRegexDotCover = regexp.MustCompile(`<.+>.+__.+\(.*\)$`)

	// Matches the MoveNext method of an async or iterator state machine and
	// captures the original method name. The capture stops at the first '>'
	// so a greedy match cannot swallow later angle brackets of the combined
	// type and method string.
	compilerGeneratedMethodNameRegexDotCover = regexp.MustCompile(`<(?P<CompilerGeneratedName>[^>]+)>.+__.+MoveNext\(\):.+$`)

	// Matches compiler generated type names such as "<DoWorkAsync>d__1".
	compilerGeneratedTypeNameRegexDotCover = regexp.MustCompile(`<.*>.+__`)

	// Matches a trailing generic arity marker, e.g. "List`1".
	genericClassRegexDotCover = regexp.MustCompile("^(?P<Name>.+)`(?P<Number>\\d+)$")
)

// processingOrchestrator holds dependencies and state for a single parsing operation.
type processingOrchestrator struct {
	config parser.ParserConfig
	raw    *inputxml.RootXML
	// fileTable maps numeric file ids to source file paths. The first
	// occurrence wins when a report repeats an id.
	fileTable map[string]string
}

// newProcessingOrchestrator creates a new orchestrator for processing dotCover data.
func newProcessingOrchestrator(raw *inputxml.RootXML, config parser.ParserConfig) *processingOrchestrator {
	o := &processingOrchestrator{
		config:    config,
		raw:       raw,
		fileTable: make(map[string]string),
	}
	if raw == nil {
		return o
	}
	for _, files := range [][]inputxml.FileXML{raw.FileIndices.File, raw.Files} {
		for _, f := range files {
			if _, exists := o.fileTable[f.Index]; !exists {
				o.fileTable[f.Index] = f.Name
			}
		}
	}
	return o
}

// processReport is the entry point for the orchestrator. Assembly names are
// deduplicated before filtering because dotCover repeats the Assembly element
// when several test projects cover the same assembly.
func (o *processingOrchestrator) processReport() ([]model.Assembly, error) {
	if o.raw == nil {
		return nil, fmt.Errorf("%w: no report data", ErrInvalidInput)
	}

	var assemblyNames []string
	seen := make(map[string]struct{})
	for _, assemblyXML := range o.raw.Assemblies {
		if _, ok := seen[assemblyXML.Name]; ok {
			continue
		}
		seen[assemblyXML.Name] = struct{}{}
		if o.config.AssemblyFilters().IsElementIncludedInReport(assemblyXML.Name) {
			assemblyNames = append(assemblyNames, assemblyXML.Name)
		}
	}
	sort.Strings(assemblyNames)

	assemblies := make([]model.Assembly, 0, len(assemblyNames))
	for _, name := range assemblyNames {
		assembly, err := o.processAssembly(name)
		if err != nil {
			return nil, err
		}
		assemblies = append(assemblies, *assembly)
	}

	// Output stays ordered by assembly name.
	sort.Slice(assemblies, func(i, j int) bool { return assemblies[i].Name < assemblies[j].Name })
	return assemblies, nil
}

// processAssembly merges every assembly element carrying the given name into
// one model.Assembly. Candidate classes are the direct type children of the
// assembly and of its namespaces; nested types never form classes of their own.
func (o *processingOrchestrator) processAssembly(assemblyName string) (*model.Assembly, error) {
	slog.Debug("Processing assembly", "assembly", assemblyName)

	fragments := make(map[string][]*inputxml.TypeXML)
	var classNames []string

	addCandidate := func(parentName string, typeXML *inputxml.TypeXML) {
		if compilerGeneratedTypeNameRegexDotCover.MatchString(typeXML.Name) {
			return
		}
		fqn := parentName + "." + typeXML.Name
		if _, exists := fragments[fqn]; !exists {
			classNames = append(classNames, fqn)
		}
		fragments[fqn] = append(fragments[fqn], typeXML)
	}

	for i := range o.raw.Assemblies {
		assemblyXML := &o.raw.Assemblies[i]
		if assemblyXML.Name != assemblyName {
			continue
		}
		for j := range assemblyXML.Namespaces {
			namespaceXML := &assemblyXML.Namespaces[j]
			for k := range namespaceXML.Types {
				addCandidate(namespaceXML.Name, &namespaceXML.Types[k])
			}
		}
		for j := range assemblyXML.Types {
			addCandidate(assemblyXML.Name, &assemblyXML.Types[j])
		}
	}

	included := make([]string, 0, len(classNames))
	for _, name := range classNames {
		if o.config.ClassFilters().IsElementIncludedInReport(name) {
			included = append(included, name)
		}
	}
	sort.Strings(included)

	assembly := &model.Assembly{Name: assemblyName, Classes: []model.Class{}}
	if len(included) == 0 {
		return assembly, nil
	}

	workers := o.config.Settings().MaxClassWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Each goroutine writes only its own index, collection happens after Wait.
	results := make([]*model.Class, len(included))

	g, gctx := errgroup.WithContext(context.Background())
	g.SetLimit(min(workers, len(included)))

	for i, className := range included {
		i, className := i, className // per-iteration copies; required under go <= 1.21 loopvar semantics
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			class, err := o.processClass(className, fragments[className])
			if err != nil {
				return fmt.Errorf("class %s: %w", className, err)
			}
			results[i] = class
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, class := range results {
		if class != nil { // nil means the class was dropped by the file filter
			assembly.Classes = append(assembly.Classes, *class)
		}
	}

	// Classes stay ordered by name.
	sort.Slice(assembly.Classes, func(i, j int) bool { return assembly.Classes[i].Name < assembly.Classes[j].Name })
	return assembly, nil
}

// processClass builds one class from its type fragments. The class survives
// when it references no files at all (all its code was compiler generated and
// folded away) or when at least one referenced file passes the file filter.
func (o *processingOrchestrator) processClass(className string, fragments []*inputxml.TypeXML) (*model.Class, error) {
	var methods []methodRef
	for _, fragment := range fragments {
		methods = collectMethods(fragment, methods)
	}

	fileIDs := distinctFileIDs(methods)

	type classFile struct {
		id   string
		path string
	}
	filteredFiles := make([]classFile, 0, len(fileIDs))
	for _, id := range fileIDs {
		path, ok := o.fileTable[id]
		if !ok {
			return nil, fmt.Errorf("%w: statement references unknown file id %q", ErrMalformedReport, id)
		}
		if o.config.FileFilters().IsElementIncludedInReport(path) {
			filteredFiles = append(filteredFiles, classFile{id: id, path: path})
		}
	}

	if len(fileIDs) > 0 && len(filteredFiles) == 0 {
		return nil, nil
	}

	class := &model.Class{
		Name:        className,
		DisplayName: formatDisplayNameDotCover(className),
		Files:       []model.CodeFile{},
	}
	for _, file := range filteredFiles {
		codeFile, err := o.buildFile(methods, file.id, file.path)
		if err != nil {
			return nil, err
		}
		class.Files = append(class.Files, *codeFile)
	}
	return class, nil
}

// buildFile merges the statements of all class methods that touch one source
// file into per line visit data and derives the visible code elements.
func (o *processingOrchestrator) buildFile(methods []methodRef, fileID, filePath string) (*model.CodeFile, error) {
	type methodStatements struct {
		ref        methodRef
		statements []statementRange
	}

	perMethod := make([]methodStatements, 0, len(methods))
	var merged []statementRange
	for _, ref := range methods {
		statements, err := o.parseMethodStatements(ref, fileID)
		if err != nil {
			return nil, err
		}
		perMethod = append(perMethod, methodStatements{ref: ref, statements: statements})
		merged = append(merged, statements...)
	}

	// Ascending end lines keep the array bound at the last element.
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].lineEnd < merged[j].lineEnd })

	var coverage []int
	var status []model.LineVisitStatus
	if len(merged) > 0 {
		size := merged[len(merged)-1].lineEnd + 1
		coverage = make([]int, size)
		status = make([]model.LineVisitStatus, size)
		for i := range coverage {
			coverage[i] = -1 // not coverable until a statement claims the line
		}

		for _, statement := range merged {
			visits := 0
			if statement.visited {
				visits = 1
			}
			for line := statement.lineStart; line <= statement.lineEnd; line++ {
				if coverage[line] == -1 {
					coverage[line] = visits
				} else {
					coverage[line] = min(coverage[line]+visits, 1)
				}
				if status[line] == model.Visited || statement.visited {
					status[line] = model.Visited
				} else {
					status[line] = model.NotVisited
				}
			}
		}
	}

	var lines []model.Line
	for number := 1; number < len(coverage); number++ {
		lines = append(lines, model.Line{
			Number:      number,
			Hits:        coverage[number],
			VisitStatus: status[number],
		})
	}

	var elements []model.CodeElement
	for _, ms := range perMethod {
		if element, ok := classifyMethod(ms.ref.enclosingName, ms.ref.method.Name, ms.statements); ok {
			elements = append(elements, element)
		}
	}
	sort.Slice(elements, func(i, j int) bool {
		if elements[i].FirstLine != elements[j].FirstLine {
			return elements[i].FirstLine < elements[j].FirstLine
		}
		return elements[i].FullName < elements[j].FullName
	})

	return &model.CodeFile{
		Path:         filePath,
		Lines:        lines,
		CodeElements: elements,
	}, nil
}

// parseMethodStatements extracts and validates the statements of one method
// that belong to the given file. Statements with inconsistent line ranges are
// skipped individually, non-numeric attributes fail the whole report.
func (o *processingOrchestrator) parseMethodStatements(ref methodRef, fileID string) ([]statementRange, error) {
	var statements []statementRange
	for _, statementXML := range ref.method.Statements {
		if statementXML.FileIndex != fileID {
			continue
		}
		statement, err := parseStatement(statementXML)
		if err != nil {
			return nil, err
		}
		if statement.lineStart <= 0 || statement.lineEnd <= 0 || statement.lineStart > statement.lineEnd {
			slog.Warn("Skipping statement with inconsistent line range.",
				"method", ref.method.Name,
				"line", statementXML.Line,
				"endLine", statementXML.EndLine)
			continue
		}
		statements = append(statements, statement)
	}
	return statements, nil
}

// classifyMethod decides whether a method becomes a visible code element and
// under which name. Lambdas and local functions stay anonymous: their
// statements count towards line coverage, the generated names do not.
func classifyMethod(enclosingName, methodName string, statements []statementRange) (model.CodeElement, bool) {
	name := extractMethodNameDotCover(enclosingName, methodName)
	if lambdaMethodNameRegexDotCover.MatchString(name) {
		return model.CodeElement{}, false
	}
	if len(statements) == 0 {
		return model.CodeElement{}, false
	}

	elementType := model.MethodElementType
	if hasFoldPrefix(name, "get_") || hasFoldPrefix(name, "set_") {
		elementType = model.PropertyElementType
		name = name[4:]
		// Getter and setter collapse into the bare property name.
		if i := strings.Index(name, "("); i >= 0 {
			name = name[:i]
		}
	}

	firstLine, lastLine := statements[0].lineStart, statements[0].lineEnd
	for _, statement := range statements[1:] {
		if statement.lineStart < firstLine {
			firstLine = statement.lineStart
		}
		if statement.lineEnd > lastLine {
			lastLine = statement.lineEnd
		}
	}

	shortName := name
	if elementType == model.MethodElementType {
		shortName = utils.GetShortMethodName(name)
	}

	return model.CodeElement{
		Name:      shortName,
		FullName:  name,
		Type:      elementType,
		FirstLine: firstLine,
		LastLine:  lastLine,
	}, true
}

// extractMethodNameDotCover recovers the source method name of async and
// iterator state machines and strips the return type from regular signatures.
func extractMethodNameDotCover(typeName, methodName string) string {
	// Quick check before the expensive regex is used.
	if strings.Contains(methodName, "MoveNext()") {
		if match := compilerGeneratedMethodNameRegexDotCover.FindStringSubmatch(typeName + methodName); match != nil {
			if generatedName := findNamedGroup(compilerGeneratedMethodNameRegexDotCover, match, "CompilerGeneratedName"); generatedName != "" {
				return generatedName + "()"
			}
		}
	}

	if idx := strings.LastIndex(methodName, ":"); idx >= 0 {
		return methodName[:idx]
	}
	return methodName
}

// formatDisplayNameDotCover rewrites CLR generic arity ("List`1") into the
// angle bracket form shown in reports ("List<T>").
func formatDisplayNameDotCover(className string) string {
	match := genericClassRegexDotCover.FindStringSubmatch(className)
	if match == nil {
		return className
	}

	baseName := findNamedGroup(genericClassRegexDotCover, match, "Name")
	argCount, _ := strconv.Atoi(findNamedGroup(genericClassRegexDotCover, match, "Number"))
	if argCount <= 0 {
		return baseName
	}

	var sb strings.Builder
	sb.WriteString(baseName)
	sb.WriteString("<")
	for i := 1; i <= argCount; i++ {
		if i > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString("T")
		if argCount > 1 {
			sb.WriteString(strconv.Itoa(i))
		}
	}
	sb.WriteString(">")
	return sb.String()
}

// methodRef pairs a method with the name of its immediately enclosing
// element: the declaring type, or the property or event wrapping it.
type methodRef struct {
	enclosingName string
	method        *inputxml.MethodXML
}

// collectMethods walks a type subtree, pairing each method with the name of
// the element that declares it. Methods of nested types are reported as part
// of the declaring class, which is how async state machine statements find
// their way back into the source type.
func collectMethods(typeXML *inputxml.TypeXML, out []methodRef) []methodRef {
	for i := range typeXML.Methods {
		out = append(out, methodRef{enclosingName: typeXML.Name, method: &typeXML.Methods[i]})
	}
	for i := range typeXML.Properties {
		propertyXML := &typeXML.Properties[i]
		for j := range propertyXML.Methods {
			out = append(out, methodRef{enclosingName: propertyXML.Name, method: &propertyXML.Methods[j]})
		}
	}
	for i := range typeXML.Events {
		eventXML := &typeXML.Events[i]
		for j := range eventXML.Methods {
			out = append(out, methodRef{enclosingName: eventXML.Name, method: &eventXML.Methods[j]})
		}
	}
	for i := range typeXML.Types {
		out = collectMethods(&typeXML.Types[i], out)
	}
	return out
}

// distinctFileIDs returns the file ids referenced by statements, in first
// occurrence order.
func distinctFileIDs(methods []methodRef) []string {
	var ids []string
	seen := make(map[string]struct{})
	for _, ref := range methods {
		for _, statement := range ref.method.Statements {
			if _, ok := seen[statement.FileIndex]; ok {
				continue
			}
			seen[statement.FileIndex] = struct{}{}
			ids = append(ids, statement.FileIndex)
		}
	}
	return ids
}

// statementRange is one statement with parsed and validated line attributes.
type statementRange struct {
	lineStart int
	lineEnd   int
	visited   bool
}

func parseStatement(statementXML inputxml.StatementXML) (statementRange, error) {
	lineStart, err := parseIntStrict(statementXML.Line, "Line")
	if err != nil {
		return statementRange{}, err
	}
	lineEnd, err := parseIntStrict(statementXML.EndLine, "EndLine")
	if err != nil {
		return statementRange{}, err
	}
	visited, err := parseCovered(statementXML.Covered)
	if err != nil {
		return statementRange{}, err
	}
	return statementRange{lineStart: lineStart, lineEnd: lineEnd, visited: visited}, nil
}

func parseIntStrict(value, attribute string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %s has non-numeric value %q", ErrMalformedReport, attribute, value)
	}
	return parsed, nil
}

func parseCovered(value string) (bool, error) {
	switch {
	case strings.EqualFold(value, "true"):
		return true, nil
	case strings.EqualFold(value, "false"):
		return false, nil
	default:
		return false, fmt.Errorf("%w: attribute Covered has non-boolean value %q", ErrMalformedReport, value)
	}
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// findNamedGroup safely retrieves a captured group's value from a regex match slice.
func findNamedGroup(re *regexp.Regexp, match []string, groupName string) string {
	for i, name := range re.SubexpNames() {
		if i > 0 && i < len(match) && name == groupName {
			return match[i]
		}
	}
	return ""
}
