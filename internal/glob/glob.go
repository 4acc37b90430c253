// Package glob expands report file patterns. Supported syntax:
//   - `?`  matches any single character within a name
//   - `*`  matches zero or more characters within a name
//   - `**` matches zero or more nested directories
//   - `[...]` matches a character set or range, `[!...]` negates it
//
// Matching is case-insensitive by default because report patterns are
// commonly written for Windows filesystems.
package glob

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/coverscope/coverscope/internal/filesystem"
)

var (
	matcherCache = make(map[string]*regexp.Regexp)
	matcherMu    sync.Mutex
)

// Glob holds one pattern and its matching options.
type Glob struct {
	Pattern    string
	IgnoreCase bool
	FS         filesystem.Filesystem
}

// New creates a Glob for the given pattern with default options.
func New(pattern string) *Glob {
	return &Glob{
		Pattern:    pattern,
		IgnoreCase: true,
		FS:         filesystem.DefaultFS{},
	}
}

func (g *Glob) String() string {
	return g.Pattern
}

// GetFiles expands a single pattern into the matching file paths. A pattern
// without wildcards resolves to the file itself when it exists. Patterns that
// match nothing yield an empty slice, not an error.
func GetFiles(pattern string) ([]string, error) {
	return New(pattern).Expand()
}

// Expand performs the pattern match and returns absolute file paths.
func (g *Glob) Expand() ([]string, error) {
	fsys := g.FS
	if fsys == nil {
		fsys = filesystem.DefaultFS{}
	}

	pattern := strings.TrimSpace(g.Pattern)
	if pattern == "" {
		return nil, nil
	}
	pattern = filepath.ToSlash(pattern)

	if !strings.ContainsAny(pattern, "*?[") {
		abs, err := fsys.Abs(filepath.FromSlash(pattern))
		if err != nil {
			return nil, err
		}
		info, err := fsys.Stat(abs)
		if err != nil || info.IsDir() {
			return nil, nil
		}
		return []string{abs}, nil
	}

	segments := strings.Split(pattern, "/")
	current, segments, err := g.rootDirs(fsys, segments)
	if err != nil {
		return nil, err
	}

	for i, segment := range segments {
		last := i == len(segments)-1
		current, err = g.expandSegment(fsys, current, segment, last)
		if err != nil {
			return nil, err
		}
		if len(current) == 0 {
			return nil, nil
		}
	}
	return distinct(current), nil
}

// rootDirs determines where expansion starts and strips the consumed prefix.
func (g *Glob) rootDirs(fsys filesystem.Filesystem, segments []string) ([]string, []string, error) {
	first := segments[0]
	switch {
	case first == "":
		// Absolute POSIX path.
		return []string{string(filepath.Separator)}, segments[1:], nil
	case len(first) == 2 && first[1] == ':':
		// Windows drive prefix.
		return []string{first + string(filepath.Separator)}, segments[1:], nil
	default:
		wd, err := fsys.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		return []string{wd}, segments, nil
	}
}

func (g *Glob) expandSegment(fsys filesystem.Filesystem, dirs []string, segment string, last bool) ([]string, error) {
	var next []string
	switch {
	case segment == "" || segment == ".":
		return dirs, nil

	case segment == "..":
		for _, dir := range dirs {
			next = append(next, filepath.Dir(dir))
		}

	case segment == "**":
		all := make([]string, 0, len(dirs))
		for _, dir := range dirs {
			all = append(all, dir)
			all = append(all, recursiveDirs(fsys, dir)...)
		}
		if !last {
			return distinct(all), nil
		}
		// A trailing '**' matches every file below the expanded roots.
		for _, dir := range distinct(all) {
			entries, err := fsys.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					next = append(next, filepath.Join(dir, entry.Name()))
				}
			}
		}

	case strings.ContainsAny(segment, "*?["):
		matcher, err := g.segmentMatcher(segment)
		if err != nil {
			return nil, err
		}
		for _, dir := range dirs {
			entries, err := fsys.ReadDir(dir)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if !matcher.MatchString(entry.Name()) {
					continue
				}
				if entry.IsDir() != last {
					next = append(next, filepath.Join(dir, entry.Name()))
				}
			}
		}

	default:
		for _, dir := range dirs {
			full := filepath.Join(dir, segment)
			info, err := fsys.Stat(full)
			if err != nil {
				continue
			}
			if info.IsDir() != last {
				next = append(next, full)
			}
		}
	}
	return next, nil
}

func recursiveDirs(fsys filesystem.Filesystem, dir string) []string {
	var result []string
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		result = append(result, sub)
		result = append(result, recursiveDirs(fsys, sub)...)
	}
	return result
}

// segmentMatcher compiles one path segment into an anchored regex, serving
// repeated segments from a process-wide cache.
func (g *Glob) segmentMatcher(segment string) (*regexp.Regexp, error) {
	cacheKey := fmt.Sprintf("%s|%t", segment, g.IgnoreCase)

	matcherMu.Lock()
	cached, found := matcherCache[cacheKey]
	matcherMu.Unlock()
	if found {
		return cached, nil
	}

	expr := segmentToRegex(segment, g.IgnoreCase)
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid glob segment %q: %w", segment, err)
	}

	matcherMu.Lock()
	matcherCache[cacheKey] = re
	matcherMu.Unlock()
	return re, nil
}

func segmentToRegex(segment string, ignoreCase bool) string {
	var sb strings.Builder
	if ignoreCase {
		sb.WriteString("(?i)")
	}
	sb.WriteString("^")

	runes := []rune(segment)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		case '[':
			sb.WriteString("[")
			if i+1 < len(runes) && runes[i+1] == '!' {
				sb.WriteString("^")
				i++
			}
			for i+1 < len(runes) {
				i++
				if runes[i] == ']' {
					break
				}
				sb.WriteString(regexp.QuoteMeta(string(runes[i])))
				if i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] != ']' {
					sb.WriteString("-")
					i++
				}
			}
			sb.WriteString("]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	sb.WriteString("$")
	return sb.String()
}

func distinct(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}
	return result
}
