// Package model defines the normalized coverage model shared by parsers,
// the analyzer and the report builders: SummaryResult -> Assembly -> Class ->
// CodeFile -> Line/CodeElement.
//
// Parsers only populate the raw hierarchy. Aggregated numbers (covered lines,
// coverable lines, quotas) are derived on demand through accessor methods so
// that merged results never carry stale totals.
package model

import "time"

// SummaryResult is the root of the coverage model, produced by merging one or
// more parser results.
type SummaryResult struct {
	ParserName string
	SourceDirs []string
	Timestamp  *time.Time
	Assemblies []Assembly
}

// LinesCovered returns the number of covered lines across all assemblies.
func (s *SummaryResult) LinesCovered() int {
	total := 0
	for i := range s.Assemblies {
		total += s.Assemblies[i].LinesCovered()
	}
	return total
}

// LinesValid returns the number of coverable lines across all assemblies.
func (s *SummaryResult) LinesValid() int {
	total := 0
	for i := range s.Assemblies {
		total += s.Assemblies[i].LinesValid()
	}
	return total
}

// CoverageQuota returns the overall line coverage percentage, or nil when the
// result contains no coverable lines.
func (s *SummaryResult) CoverageQuota() *float64 {
	return quota(s.LinesCovered(), s.LinesValid())
}

// Assembly groups the classes of one instrumented assembly. Classes are kept
// sorted lexicographically by name regardless of processing order.
type Assembly struct {
	Name    string
	Classes []Class
}

func (a *Assembly) LinesCovered() int {
	total := 0
	for i := range a.Classes {
		total += a.Classes[i].LinesCovered()
	}
	return total
}

func (a *Assembly) LinesValid() int {
	total := 0
	for i := range a.Classes {
		total += a.Classes[i].LinesValid()
	}
	return total
}

func (a *Assembly) CoverageQuota() *float64 {
	return quota(a.LinesCovered(), a.LinesValid())
}

// Class is one user-visible type, identified by its fully qualified name
// (enclosing namespace or assembly name, a dot, and the type name). A class
// may span several source files, e.g. partial classes.
type Class struct {
	Name        string
	DisplayName string
	Files       []CodeFile
}

func (c *Class) LinesCovered() int {
	total := 0
	for i := range c.Files {
		total += c.Files[i].CoveredLines()
	}
	return total
}

func (c *Class) LinesValid() int {
	total := 0
	for i := range c.Files {
		total += c.Files[i].CoverableLines()
	}
	return total
}

func (c *Class) CoverageQuota() *float64 {
	return quota(c.LinesCovered(), c.LinesValid())
}

// TotalLines returns the physical line count summed over files where it is
// known (0 for files whose sources were never resolved).
func (c *Class) TotalLines() int {
	total := 0
	for i := range c.Files {
		total += c.Files[i].TotalLines
	}
	return total
}

func quota(covered, coverable int) *float64 {
	if coverable == 0 {
		return nil
	}
	q := 100 * float64(covered) / float64(coverable)
	return &q
}
