package dotcover

import (
	"errors"
	"strings"
	"testing"

	"github.com/coverscope/coverscope/internal/inputxml"
	"github.com/coverscope/coverscope/internal/model"
	"github.com/coverscope/coverscope/internal/parser/filtering"
	"github.com/coverscope/coverscope/internal/settings"
)

// MockParserConfig implements the parser.ParserConfig interface for testing.
type MockParserConfig struct {
	TestSettings   *settings.Settings
	AssemblyFilter filtering.IFilter
	ClassFilter    filtering.IFilter
	FileFilter     filtering.IFilter
}

func newMockParserConfig() *MockParserConfig {
	return &MockParserConfig{TestSettings: settings.NewSettings()}
}

func (mpc *MockParserConfig) SourceDirectories() []string { return []string{} }
func (mpc *MockParserConfig) AssemblyFilters() filtering.IFilter {
	return orAcceptAll(mpc.AssemblyFilter, false)
}
func (mpc *MockParserConfig) ClassFilters() filtering.IFilter {
	return orAcceptAll(mpc.ClassFilter, false)
}
func (mpc *MockParserConfig) FileFilters() filtering.IFilter {
	return orAcceptAll(mpc.FileFilter, true)
}
func (mpc *MockParserConfig) Settings() *settings.Settings { return mpc.TestSettings }

func orAcceptAll(f filtering.IFilter, pathSeparatorIndependent bool) filtering.IFilter {
	if f != nil {
		return f
	}
	all, _ := filtering.NewDefaultFilter(nil, pathSeparatorIndependent)
	return all
}

func mustFilter(t *testing.T, pathSeparatorIndependent bool, patterns ...string) filtering.IFilter {
	t.Helper()
	f, err := filtering.NewDefaultFilter(patterns, pathSeparatorIndependent)
	if err != nil {
		t.Fatalf("NewDefaultFilter(%v): %v", patterns, err)
	}
	return f
}

func statement(fileIndex, line, endLine, covered string) inputxml.StatementXML {
	return inputxml.StatementXML{FileIndex: fileIndex, Line: line, EndLine: endLine, Covered: covered}
}

func methodWith(name string, statements ...inputxml.StatementXML) inputxml.MethodXML {
	return inputxml.MethodXML{Name: name, Statements: statements}
}

func lineByNumber(t *testing.T, file *model.CodeFile, number int) model.Line {
	t.Helper()
	for _, line := range file.Lines {
		if line.Number == number {
			return line
		}
	}
	t.Fatalf("file %s has no line %d", file.Path, number)
	return model.Line{}
}

func TestExtractMethodName(t *testing.T) {
	testCases := []struct {
		name       string
		typeName   string
		methodName string
		want       string
	}{
		{
			name:       "regular method loses return type",
			typeName:   "Calculator",
			methodName: "Add(System.Int32,System.Int32):System.Int32",
			want:       "Add(System.Int32,System.Int32)",
		},
		{
			name:       "property getter keeps prefix at this stage",
			typeName:   "Repository",
			methodName: "get_Count():System.Int32",
			want:       "get_Count()",
		},
		{
			name:       "async state machine recovers source name",
			typeName:   "<DoWork>d__3",
			methodName: "MoveNext():System.Void",
			want:       "DoWork()",
		},
		{
			name:       "state machine with qualified enclosing type",
			typeName:   "MyType.<DoWork>d__3",
			methodName: "MoveNext():System.Void",
			want:       "DoWork()",
		},
		{
			name:       "hand written MoveNext stays untouched",
			typeName:   "MyEnumerator",
			methodName: "MoveNext():System.Boolean",
			want:       "MoveNext()",
		},
		{
			name:       "name without colon is returned unchanged",
			typeName:   "Calculator",
			methodName: "Finalize()",
			want:       "Finalize()",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractMethodNameDotCover(tc.typeName, tc.methodName)
			if got != tc.want {
				t.Errorf("extractMethodNameDotCover(%q, %q) = %q, want %q", tc.typeName, tc.methodName, got, tc.want)
			}
		})
	}
}

func TestClassifyMethod(t *testing.T) {
	oneStatement := []statementRange{{lineStart: 10, lineEnd: 12, visited: true}}

	testCases := []struct {
		name          string
		enclosingName string
		methodName    string
		statements    []statementRange
		wantSkipped   bool
		wantName      string
		wantFullName  string
		wantType      model.CodeElementType
		wantFirst     int
		wantLast      int
	}{
		{
			name:          "method spans min start to max end",
			enclosingName: "Calculator",
			methodName:    "Add(System.Int32,System.Int32):System.Int32",
			statements: []statementRange{
				{lineStart: 22, lineEnd: 24, visited: true},
				{lineStart: 20, lineEnd: 21, visited: false},
			},
			wantName:     "Add(...)",
			wantFullName: "Add(System.Int32,System.Int32)",
			wantType:     model.MethodElementType,
			wantFirst:    20,
			wantLast:     24,
		},
		{
			name:          "getter becomes property without signature",
			enclosingName: "Repository",
			methodName:    "get_Count():System.Int32",
			statements:    oneStatement,
			wantName:      "Count",
			wantFullName:  "Count",
			wantType:      model.PropertyElementType,
			wantFirst:     10,
			wantLast:      12,
		},
		{
			name:          "setter becomes the same property name",
			enclosingName: "Repository",
			methodName:    "set_Count(System.Int32):System.Void",
			statements:    oneStatement,
			wantName:      "Count",
			wantFullName:  "Count",
			wantType:      model.PropertyElementType,
			wantFirst:     10,
			wantLast:      12,
		},
		{
			name:          "property prefix matches case insensitively",
			enclosingName: "Repository",
			methodName:    "GET_Total():System.Int32",
			statements:    oneStatement,
			wantName:      "Total",
			wantFullName:  "Total",
			wantType:      model.PropertyElementType,
			wantFirst:     10,
			wantLast:      12,
		},
		{
			name:          "lambda is not a code element",
			enclosingName: "Worker",
			methodName:    "<Process>b__4_0(System.Object):System.Void",
			statements:    oneStatement,
			wantSkipped:   true,
		},
		{
			name:          "async state machine surfaces as source method",
			enclosingName: "<DoWork>d__3",
			methodName:    "MoveNext():System.Void",
			statements:    oneStatement,
			wantName:      "DoWork()",
			wantFullName:  "DoWork()",
			wantType:      model.MethodElementType,
			wantFirst:     10,
			wantLast:      12,
		},
		{
			name:          "method without statements in this file is skipped",
			enclosingName: "Calculator",
			methodName:    "Unused():System.Void",
			statements:    nil,
			wantSkipped:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			element, ok := classifyMethod(tc.enclosingName, tc.methodName, tc.statements)
			if tc.wantSkipped {
				if ok {
					t.Fatalf("expected method %q to be skipped, got element %+v", tc.methodName, element)
				}
				return
			}
			if !ok {
				t.Fatalf("expected an element for method %q, got none", tc.methodName)
			}
			if element.Name != tc.wantName {
				t.Errorf("Name = %q, want %q", element.Name, tc.wantName)
			}
			if element.FullName != tc.wantFullName {
				t.Errorf("FullName = %q, want %q", element.FullName, tc.wantFullName)
			}
			if element.Type != tc.wantType {
				t.Errorf("Type = %v, want %v", element.Type, tc.wantType)
			}
			if element.FirstLine != tc.wantFirst || element.LastLine != tc.wantLast {
				t.Errorf("span = %d-%d, want %d-%d", element.FirstLine, element.LastLine, tc.wantFirst, tc.wantLast)
			}
		})
	}
}

func TestFormatDisplayName(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"MyApp.Calculator", "MyApp.Calculator"},
		{"MyApp.Repository`1", "MyApp.Repository<T>"},
		{"MyApp.Lookup`2", "MyApp.Lookup<T1, T2>"},
	}
	for _, tc := range testCases {
		if got := formatDisplayNameDotCover(tc.input); got != tc.want {
			t.Errorf("formatDisplayNameDotCover(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestBuildFile_MergesOverlappingStatements(t *testing.T) {
	forward := []inputxml.StatementXML{
		statement("1", "10", "12", "True"),
		statement("1", "11", "11", "False"),
	}
	backward := []inputxml.StatementXML{
		statement("1", "11", "11", "False"),
		statement("1", "10", "12", "True"),
	}

	for _, tc := range []struct {
		name       string
		statements []inputxml.StatementXML
	}{
		{"covered statement first", forward},
		{"uncovered statement first", backward},
	} {
		t.Run(tc.name, func(t *testing.T) {
			orchestrator := newProcessingOrchestrator(&inputxml.RootXML{}, newMockParserConfig())
			method := methodWith("Run():System.Void", tc.statements...)
			methods := []methodRef{{enclosingName: "Runner", method: &method}}

			file, err := orchestrator.buildFile(methods, "1", "Runner.cs")
			if err != nil {
				t.Fatalf("buildFile: %v", err)
			}

			if len(file.Lines) != 12 {
				t.Fatalf("expected 12 lines, got %d", len(file.Lines))
			}
			for number := 1; number <= 9; number++ {
				if got := lineByNumber(t, file, number).VisitStatus; got != model.NotCoverable {
					t.Errorf("line %d status = %v, want NotCoverable", number, got)
				}
			}
			for number := 10; number <= 12; number++ {
				line := lineByNumber(t, file, number)
				if line.VisitStatus != model.Visited {
					t.Errorf("line %d status = %v, want Visited", number, line.VisitStatus)
				}
				if line.Hits != 1 {
					t.Errorf("line %d hits = %d, want 1", number, line.Hits)
				}
			}
			if got := file.CoveredLines(); got != 3 {
				t.Errorf("CoveredLines = %d, want 3", got)
			}
			if got := file.CoverableLines(); got != 3 {
				t.Errorf("CoverableLines = %d, want 3", got)
			}
		})
	}
}

func TestBuildFile_UnvisitedStatements(t *testing.T) {
	orchestrator := newProcessingOrchestrator(&inputxml.RootXML{}, newMockParserConfig())
	method := methodWith("Run():System.Void",
		statement("1", "5", "6", "False"),
		statement("1", "5", "5", "False"),
	)
	methods := []methodRef{{enclosingName: "Runner", method: &method}}

	file, err := orchestrator.buildFile(methods, "1", "Runner.cs")
	if err != nil {
		t.Fatalf("buildFile: %v", err)
	}

	for _, number := range []int{5, 6} {
		line := lineByNumber(t, file, number)
		if line.VisitStatus != model.NotVisited {
			t.Errorf("line %d status = %v, want NotVisited", number, line.VisitStatus)
		}
		if line.Hits != 0 {
			t.Errorf("line %d hits = %d, want 0", number, line.Hits)
		}
	}
	if got := file.CoveredLines(); got != 0 {
		t.Errorf("CoveredLines = %d, want 0", got)
	}
	if got := file.CoverableLines(); got != 2 {
		t.Errorf("CoverableLines = %d, want 2", got)
	}
}

func TestBuildFile_HitsAreCappedAtOne(t *testing.T) {
	orchestrator := newProcessingOrchestrator(&inputxml.RootXML{}, newMockParserConfig())
	method := methodWith("Run():System.Void",
		statement("1", "3", "3", "True"),
		statement("1", "3", "3", "True"),
		statement("1", "3", "3", "True"),
	)
	methods := []methodRef{{enclosingName: "Runner", method: &method}}

	file, err := orchestrator.buildFile(methods, "1", "Runner.cs")
	if err != nil {
		t.Fatalf("buildFile: %v", err)
	}
	if got := lineByNumber(t, file, 3).Hits; got != 1 {
		t.Errorf("line 3 hits = %d, want capped 1", got)
	}
}

func TestBuildFile_IgnoresStatementsOfOtherFiles(t *testing.T) {
	orchestrator := newProcessingOrchestrator(&inputxml.RootXML{}, newMockParserConfig())
	method := methodWith("Run():System.Void",
		statement("1", "2", "2", "True"),
		statement("2", "100", "100", "True"),
	)
	methods := []methodRef{{enclosingName: "Runner", method: &method}}

	file, err := orchestrator.buildFile(methods, "1", "Runner.cs")
	if err != nil {
		t.Fatalf("buildFile: %v", err)
	}
	if len(file.Lines) != 2 {
		t.Errorf("expected lines up to 2, got %d", len(file.Lines))
	}
}

func TestBuildFile_SkipsInconsistentLineRange(t *testing.T) {
	orchestrator := newProcessingOrchestrator(&inputxml.RootXML{}, newMockParserConfig())
	method := methodWith("Run():System.Void",
		statement("1", "12", "10", "True"), // start after end, dropped
		statement("1", "0", "2", "True"),   // non-positive start, dropped
		statement("1", "4", "4", "True"),
	)
	methods := []methodRef{{enclosingName: "Runner", method: &method}}

	file, err := orchestrator.buildFile(methods, "1", "Runner.cs")
	if err != nil {
		t.Fatalf("buildFile: %v", err)
	}
	if got := file.CoverableLines(); got != 1 {
		t.Errorf("CoverableLines = %d, want 1", got)
	}
	if got := lineByNumber(t, file, 4).VisitStatus; got != model.Visited {
		t.Errorf("line 4 status = %v, want Visited", got)
	}
}

func TestBuildFile_LambdaStatementsCountWithoutElement(t *testing.T) {
	orchestrator := newProcessingOrchestrator(&inputxml.RootXML{}, newMockParserConfig())
	method := methodWith("<Process>b__4_0(System.Object):System.Void", statement("1", "7", "8", "True"))
	methods := []methodRef{{enclosingName: "Worker", method: &method}}

	file, err := orchestrator.buildFile(methods, "1", "Worker.cs")
	if err != nil {
		t.Fatalf("buildFile: %v", err)
	}
	if got := file.CoveredLines(); got != 2 {
		t.Errorf("CoveredLines = %d, want 2", got)
	}
	if len(file.CodeElements) != 0 {
		t.Errorf("lambda must not surface as a code element, got %+v", file.CodeElements)
	}
}

func TestBuildFile_MalformedAttributesFailTheReport(t *testing.T) {
	testCases := []struct {
		name      string
		statement inputxml.StatementXML
	}{
		{"non-numeric line", statement("1", "abc", "10", "True")},
		{"non-numeric end line", statement("1", "10", "abc", "True")},
		{"non-boolean covered", statement("1", "10", "10", "yes")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orchestrator := newProcessingOrchestrator(&inputxml.RootXML{}, newMockParserConfig())
			method := methodWith("Run():System.Void", tc.statement)
			methods := []methodRef{{enclosingName: "Runner", method: &method}}

			_, err := orchestrator.buildFile(methods, "1", "Runner.cs")
			if !errors.Is(err, ErrMalformedReport) {
				t.Fatalf("expected ErrMalformedReport, got %v", err)
			}
		})
	}
}

func TestProcessClass_UnknownFileIDFailsTheReport(t *testing.T) {
	raw := &inputxml.RootXML{
		FileIndices: inputxml.FileIndicesXML{File: []inputxml.FileXML{{Index: "1", Name: "Known.cs"}}},
	}
	orchestrator := newProcessingOrchestrator(raw, newMockParserConfig())

	typeXML := inputxml.TypeXML{
		Name:    "Runner",
		Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("99", "1", "1", "True"))},
	}

	_, err := orchestrator.processClass("App.Runner", []*inputxml.TypeXML{&typeXML})
	if !errors.Is(err, ErrMalformedReport) {
		t.Fatalf("expected ErrMalformedReport, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "99") {
		t.Errorf("error should name the unknown file id, got %v", err)
	}
}

func TestProcessClass_KeptWithoutFileReferences(t *testing.T) {
	orchestrator := newProcessingOrchestrator(&inputxml.RootXML{}, newMockParserConfig())

	typeXML := inputxml.TypeXML{
		Name:    "Marker",
		Methods: []inputxml.MethodXML{methodWith("Tag():System.Void")},
	}

	class, err := orchestrator.processClass("App.Marker", []*inputxml.TypeXML{&typeXML})
	if err != nil {
		t.Fatalf("processClass: %v", err)
	}
	if class == nil {
		t.Fatal("class without file references must be kept")
	}
	if len(class.Files) != 0 {
		t.Errorf("expected no files, got %d", len(class.Files))
	}
}

func TestProcessClass_DroppedWhenAllFilesFiltered(t *testing.T) {
	raw := &inputxml.RootXML{
		FileIndices: inputxml.FileIndicesXML{File: []inputxml.FileXML{{Index: "1", Name: "/src/generated/Runner.cs"}}},
	}
	config := newMockParserConfig()
	config.FileFilter = mustFilter(t, true, "-*generated*")
	orchestrator := newProcessingOrchestrator(raw, config)

	typeXML := inputxml.TypeXML{
		Name:    "Runner",
		Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("1", "1", "1", "True"))},
	}

	class, err := orchestrator.processClass("App.Runner", []*inputxml.TypeXML{&typeXML})
	if err != nil {
		t.Fatalf("processClass: %v", err)
	}
	if class != nil {
		t.Fatalf("expected class to be dropped, got %+v", class)
	}
}

func TestProcessClass_KeepsFilesThatPassTheFilter(t *testing.T) {
	raw := &inputxml.RootXML{
		FileIndices: inputxml.FileIndicesXML{File: []inputxml.FileXML{
			{Index: "1", Name: "/src/Runner.cs"},
			{Index: "2", Name: "/src/generated/Runner.g.cs"},
		}},
	}
	config := newMockParserConfig()
	config.FileFilter = mustFilter(t, true, "-*generated*")
	orchestrator := newProcessingOrchestrator(raw, config)

	typeXML := inputxml.TypeXML{
		Name: "Runner",
		Methods: []inputxml.MethodXML{
			methodWith("Run():System.Void", statement("1", "1", "2", "True")),
			methodWith("Generated():System.Void", statement("2", "1", "1", "True")),
		},
	}

	class, err := orchestrator.processClass("App.Runner", []*inputxml.TypeXML{&typeXML})
	if err != nil {
		t.Fatalf("processClass: %v", err)
	}
	if class == nil {
		t.Fatal("class with one passing file must be kept")
	}
	if len(class.Files) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(class.Files))
	}
	if class.Files[0].Path != "/src/Runner.cs" {
		t.Errorf("unexpected file %q", class.Files[0].Path)
	}
}

func TestProcessClass_NestedTypeStatementsCountForDeclaringClass(t *testing.T) {
	raw := &inputxml.RootXML{
		FileIndices: inputxml.FileIndicesXML{File: []inputxml.FileXML{{Index: "1", Name: "/src/Worker.cs"}}},
	}
	orchestrator := newProcessingOrchestrator(raw, newMockParserConfig())

	typeXML := inputxml.TypeXML{
		Name: "Worker",
		Types: []inputxml.TypeXML{{
			Name: "<DoWork>d__3",
			Methods: []inputxml.MethodXML{
				methodWith("MoveNext():System.Void", statement("1", "15", "17", "True")),
			},
		}},
	}

	class, err := orchestrator.processClass("App.Worker", []*inputxml.TypeXML{&typeXML})
	if err != nil {
		t.Fatalf("processClass: %v", err)
	}
	if class == nil {
		t.Fatal("expected class")
	}
	if len(class.Files) != 1 {
		t.Fatalf("expected one file, got %d", len(class.Files))
	}

	file := class.Files[0]
	if got := file.CoveredLines(); got != 3 {
		t.Errorf("CoveredLines = %d, want 3", got)
	}
	if len(file.CodeElements) != 1 {
		t.Fatalf("expected one code element, got %d", len(file.CodeElements))
	}
	if file.CodeElements[0].FullName != "DoWork()" {
		t.Errorf("element = %q, want DoWork()", file.CodeElements[0].FullName)
	}
}

func TestProcessReport_NilReport(t *testing.T) {
	orchestrator := newProcessingOrchestrator(nil, newMockParserConfig())
	_, err := orchestrator.processReport()
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProcessReport_MergesDeduplicatesAndSortsAssemblies(t *testing.T) {
	raw := &inputxml.RootXML{
		FileIndices: inputxml.FileIndicesXML{File: []inputxml.FileXML{{Index: "1", Name: "/src/a.cs"}}},
		Assemblies: []inputxml.AssemblyXML{
			{
				Name: "Zeta",
				Types: []inputxml.TypeXML{{
					Name:    "ZClass",
					Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("1", "1", "1", "True"))},
				}},
			},
			{
				Name: "Alpha",
				Namespaces: []inputxml.NamespaceXML{{
					Name: "App",
					Types: []inputxml.TypeXML{{
						Name:    "First",
						Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("1", "1", "1", "True"))},
					}},
				}},
			},
			{
				// Second element for the same assembly, contributes another class.
				Name: "Alpha",
				Namespaces: []inputxml.NamespaceXML{{
					Name: "App",
					Types: []inputxml.TypeXML{{
						Name:    "Second",
						Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("1", "2", "2", "False"))},
					}},
				}},
			},
		},
	}

	orchestrator := newProcessingOrchestrator(raw, newMockParserConfig())
	assemblies, err := orchestrator.processReport()
	if err != nil {
		t.Fatalf("processReport: %v", err)
	}

	if len(assemblies) != 2 {
		t.Fatalf("expected 2 assemblies, got %d", len(assemblies))
	}
	if assemblies[0].Name != "Alpha" || assemblies[1].Name != "Zeta" {
		t.Errorf("assemblies not sorted by name: %s, %s", assemblies[0].Name, assemblies[1].Name)
	}

	alpha := assemblies[0]
	if len(alpha.Classes) != 2 {
		t.Fatalf("expected both Alpha fragments merged into 2 classes, got %d", len(alpha.Classes))
	}
	if alpha.Classes[0].Name != "App.First" || alpha.Classes[1].Name != "App.Second" {
		t.Errorf("classes not sorted: %s, %s", alpha.Classes[0].Name, alpha.Classes[1].Name)
	}
}

func TestProcessReport_AssemblyFilter(t *testing.T) {
	raw := &inputxml.RootXML{
		Assemblies: []inputxml.AssemblyXML{
			{Name: "App.Core"},
			{Name: "App.Tests"},
		},
	}
	config := newMockParserConfig()
	config.AssemblyFilter = mustFilter(t, false, "-*.Tests")
	orchestrator := newProcessingOrchestrator(raw, config)

	assemblies, err := orchestrator.processReport()
	if err != nil {
		t.Fatalf("processReport: %v", err)
	}
	if len(assemblies) != 1 || assemblies[0].Name != "App.Core" {
		t.Fatalf("expected only App.Core, got %+v", assemblies)
	}
}

func TestProcessAssembly_ExcludesCompilerGeneratedTypes(t *testing.T) {
	raw := &inputxml.RootXML{
		FileIndices: inputxml.FileIndicesXML{File: []inputxml.FileXML{{Index: "1", Name: "/src/a.cs"}}},
		Assemblies: []inputxml.AssemblyXML{{
			Name: "App",
			Namespaces: []inputxml.NamespaceXML{{
				Name: "App",
				Types: []inputxml.TypeXML{
					{
						Name:    "Visible",
						Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("1", "1", "1", "True"))},
					},
					{
						Name:    "<>c__DisplayClass5_0",
						Methods: []inputxml.MethodXML{methodWith("<Run>b__0():System.Void", statement("1", "2", "2", "True"))},
					},
				},
			}},
		}},
	}

	orchestrator := newProcessingOrchestrator(raw, newMockParserConfig())
	assembly, err := orchestrator.processAssembly("App")
	if err != nil {
		t.Fatalf("processAssembly: %v", err)
	}
	if len(assembly.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(assembly.Classes))
	}
	if assembly.Classes[0].Name != "App.Visible" {
		t.Errorf("unexpected class %q", assembly.Classes[0].Name)
	}
}

func TestProcessAssembly_ClassFilter(t *testing.T) {
	raw := &inputxml.RootXML{
		FileIndices: inputxml.FileIndicesXML{File: []inputxml.FileXML{{Index: "1", Name: "/src/a.cs"}}},
		Assemblies: []inputxml.AssemblyXML{{
			Name: "App",
			Namespaces: []inputxml.NamespaceXML{{
				Name: "App",
				Types: []inputxml.TypeXML{
					{Name: "Keep", Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("1", "1", "1", "True"))}},
					{Name: "Drop", Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("1", "1", "1", "True"))}},
				},
			}},
		}},
	}
	config := newMockParserConfig()
	config.ClassFilter = mustFilter(t, false, "-App.Drop")
	orchestrator := newProcessingOrchestrator(raw, config)

	assembly, err := orchestrator.processAssembly("App")
	if err != nil {
		t.Fatalf("processAssembly: %v", err)
	}
	if len(assembly.Classes) != 1 || assembly.Classes[0].Name != "App.Keep" {
		t.Fatalf("expected only App.Keep, got %+v", assembly.Classes)
	}
}

func TestProcessAssembly_ManyClassesStaySorted(t *testing.T) {
	// Enough classes to make scheduling order visible if collection were racy.
	var types []inputxml.TypeXML
	names := []string{"Mike", "Alpha", "Zulu", "Echo", "Kilo", "Bravo", "X-ray", "Tango", "Hotel", "Delta",
		"November", "Charlie", "Yankee", "Foxtrot", "Lima", "Golf", "Whiskey", "India", "Victor", "Juliett"}
	for _, name := range names {
		types = append(types, inputxml.TypeXML{
			Name:    name,
			Methods: []inputxml.MethodXML{methodWith("Run():System.Void", statement("1", "1", "1", "True"))},
		})
	}
	raw := &inputxml.RootXML{
		FileIndices: inputxml.FileIndicesXML{File: []inputxml.FileXML{{Index: "1", Name: "/src/a.cs"}}},
		Assemblies: []inputxml.AssemblyXML{{
			Name:       "App",
			Namespaces: []inputxml.NamespaceXML{{Name: "App", Types: types}},
		}},
	}

	config := newMockParserConfig()
	config.TestSettings.MaxClassWorkers = 4
	orchestrator := newProcessingOrchestrator(raw, config)

	assembly, err := orchestrator.processAssembly("App")
	if err != nil {
		t.Fatalf("processAssembly: %v", err)
	}
	if len(assembly.Classes) != len(names) {
		t.Fatalf("expected %d classes, got %d", len(names), len(assembly.Classes))
	}
	for i := 1; i < len(assembly.Classes); i++ {
		if assembly.Classes[i-1].Name > assembly.Classes[i].Name {
			t.Fatalf("classes out of order at %d: %s > %s", i, assembly.Classes[i-1].Name, assembly.Classes[i].Name)
		}
	}
}
