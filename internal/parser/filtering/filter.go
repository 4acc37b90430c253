// Package filtering implements element filters for assemblies, classes and
// source files. "+Included*" includes matching elements, "-Excluded*" removes
// them, with '*' and '?' as wildcards. Excludes always win over includes.
package filtering

import (
	"fmt"
	"regexp"
	"strings"
)

// IFilter defines an interface for filtering elements.
type IFilter interface {
	IsElementIncludedInReport(name string) bool
	HasCustomFilters() bool
}

// DefaultFilter is the default implementation of IFilter.
type DefaultFilter struct {
	includeFilters []*regexp.Regexp
	excludeFilters []*regexp.Regexp
	hasCustom      bool
}

// NewDefaultFilter creates a new DefaultFilter.
// osIndependantPathSeparator is optional and defaults to false; file path
// filters set it so '/' and '\' match interchangeably.
func NewDefaultFilter(filters []string, osIndependantPathSeparator ...bool) (IFilter, error) {
	osPathSep := false
	if len(osIndependantPathSeparator) > 0 {
		osPathSep = osIndependantPathSeparator[0]
	}

	df := &DefaultFilter{}
	var errs []string

	for _, f := range filters {
		switch {
		case strings.HasPrefix(f, "+"):
			re, err := createFilterRegex(f, osPathSep)
			if err != nil {
				errs = append(errs, fmt.Sprintf("invalid include filter '%s': %v", f, err))
				continue
			}
			df.includeFilters = append(df.includeFilters, re)
		case strings.HasPrefix(f, "-"):
			re, err := createFilterRegex(f, osPathSep)
			if err != nil {
				errs = append(errs, fmt.Sprintf("invalid exclude filter '%s': %v", f, err))
				continue
			}
			df.excludeFilters = append(df.excludeFilters, re)
		case f != "":
			errs = append(errs, fmt.Sprintf("filter '%s' must start with '+' or '-'", f))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("error creating default filter: %s", strings.Join(errs, "; "))
	}

	df.hasCustom = len(df.includeFilters) > 0 || len(df.excludeFilters) > 0

	// Without explicit include filters everything is included.
	if len(df.includeFilters) == 0 {
		re, _ := createFilterRegex("+*", false)
		df.includeFilters = append(df.includeFilters, re)
	}

	return df, nil
}

// IsElementIncludedInReport checks if the given name matches the filter rules.
func (df *DefaultFilter) IsElementIncludedInReport(name string) bool {
	for _, excludeRe := range df.excludeFilters {
		if excludeRe.MatchString(name) {
			return false
		}
	}

	for _, includeRe := range df.includeFilters {
		if includeRe.MatchString(name) {
			return true
		}
	}
	return false
}

// HasCustomFilters returns true if any include or exclude filters were specified.
func (df *DefaultFilter) HasCustomFilters() bool {
	return df.hasCustom
}

// createFilterRegex converts a filter string (e.g. "+MyNamespace.*") to an
// anchored, case-insensitive regex.
func createFilterRegex(filter string, osIndependantPathSeparator bool) (*regexp.Regexp, error) {
	if len(filter) == 0 {
		return nil, fmt.Errorf("empty filter string")
	}
	pattern := filter[1:] // Remove '+' or '-'

	// Swap both separators for a placeholder before escaping so the character
	// class inserted below is not itself rewritten by a later replacement.
	if osIndependantPathSeparator {
		pattern = strings.ReplaceAll(pattern, "/", "\x00")
		pattern = strings.ReplaceAll(pattern, "\\", "\x00")
	}

	// Escape regex special characters, then convert the glob wildcards that
	// QuoteMeta just escaped.
	pattern = regexp.QuoteMeta(pattern)
	pattern = strings.ReplaceAll(pattern, `\*`, ".*")
	pattern = strings.ReplaceAll(pattern, `\?`, ".")

	if osIndependantPathSeparator {
		pattern = strings.ReplaceAll(pattern, "\x00", `[/\\]`)
	}

	return regexp.Compile("(?i)^" + pattern + "$")
}
