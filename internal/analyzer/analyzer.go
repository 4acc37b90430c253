// Package analyzer merges the results of individual report parsers into a
// single model.SummaryResult.
//
// The merge is deep: assemblies with the same name become one assembly,
// same-named classes inside them become one class, and the per-line coverage
// of a file that appears in several reports is combined so that a line counts
// as visited as soon as any report visited it. Aggregated numbers are never
// stored, so merged results stay consistent by construction.
package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/coverscope/coverscope/internal/model"
	"github.com/coverscope/coverscope/internal/parser"
	"github.com/coverscope/coverscope/internal/utils"
)

// MergeParserResults folds one or more parser results into a single summary.
// Assemblies and classes are matched by name, files by path. Assemblies,
// classes, files and code elements end up sorted, so the outcome does not
// depend on the order in which the reports were parsed.
func MergeParserResults(results []*parser.ParserResult) (*model.SummaryResult, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no parser results to merge")
	}

	assemblies := make(map[string]*model.Assembly)
	for _, result := range results {
		for i := range result.Assemblies {
			src := &result.Assemblies[i]
			dst, ok := assemblies[src.Name]
			if !ok {
				clone := cloneAssembly(src)
				assemblies[src.Name] = &clone
				continue
			}
			mergeAssembly(dst, src)
		}
	}

	summary := &model.SummaryResult{
		ParserName: combinedParserName(results),
		SourceDirs: combinedSourceDirs(results),
		Timestamp:  latestTimestamp(results),
		Assemblies: make([]model.Assembly, 0, len(assemblies)),
	}
	for _, assembly := range assemblies {
		normalizeAssembly(assembly)
		summary.Assemblies = append(summary.Assemblies, *assembly)
	}
	sort.Slice(summary.Assemblies, func(i, j int) bool {
		return summary.Assemblies[i].Name < summary.Assemblies[j].Name
	})

	return summary, nil
}

// combinedParserName names the merged result. A single report keeps its
// parser's name. Several reports are summarized per parser, for example
// "MultiReport (2x DotCover)".
func combinedParserName(results []*parser.ParserResult) string {
	var names []string
	for _, result := range results {
		if result.ParserName != "" {
			names = append(names, result.ParserName)
		}
	}
	if len(names) == 0 {
		return ""
	}
	if len(names) == 1 {
		return names[0]
	}

	counts := make(map[string]int)
	for _, name := range names {
		counts[name]++
	}
	distinct := make([]string, 0, len(counts))
	for name := range counts {
		distinct = append(distinct, name)
	}
	sort.Strings(distinct)

	parts := make([]string, 0, len(distinct))
	for _, name := range distinct {
		parts = append(parts, fmt.Sprintf("%dx %s", counts[name], name))
	}
	return "MultiReport (" + strings.Join(parts, ", ") + ")"
}

func combinedSourceDirs(results []*parser.ParserResult) []string {
	var dirs []string
	for _, result := range results {
		dirs = append(dirs, result.SourceDirectories...)
	}
	return utils.DistinctBy(dirs, func(dir string) string { return dir })
}

// latestTimestamp picks the newest report timestamp. With reports from
// several runs the youngest one best represents when the coverage data was
// produced.
func latestTimestamp(results []*parser.ParserResult) *time.Time {
	var latest *time.Time
	for _, result := range results {
		if result.MaximumTimeStamp == nil {
			continue
		}
		if latest == nil || result.MaximumTimeStamp.After(*latest) {
			latest = result.MaximumTimeStamp
		}
	}
	return latest
}
