// Package csharp supplies display hints for C# and F# sources.
package csharp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coverscope/coverscope/internal/language"
)

var (
	genericClassRegex        = regexp.MustCompile("^(?P<Name>.+)`(?P<Number>\\d+)$")
	nestedTypeSeparatorRegex = regexp.MustCompile(`[+/]`)
)

// CSharpProcessor implements the language.Processor interface for C#.
type CSharpProcessor struct{}

func init() {
	language.RegisterProcessor(NewCSharpProcessor())
}

func NewCSharpProcessor() language.Processor {
	return &CSharpProcessor{}
}

func (p *CSharpProcessor) Name() string {
	return "C#"
}

// Detect checks for C# or F# source files.
func (p *CSharpProcessor) Detect(filePath string) bool {
	lowerPath := strings.ToLower(filePath)
	return strings.HasSuffix(lowerPath, ".cs") || strings.HasSuffix(lowerPath, ".fs")
}

func (p *CSharpProcessor) HighlightClass() string {
	return "lang-csharp"
}

// FormatDisplayName rewrites nested type separators to dots and expands a
// trailing generic arity marker into type parameters, so "Outer+Inner`2"
// becomes "Outer.Inner<T1, T2>".
func (p *CSharpProcessor) FormatDisplayName(rawName string) string {
	nameForDisplay := nestedTypeSeparatorRegex.ReplaceAllString(rawName, ".")
	match := genericClassRegex.FindStringSubmatch(nameForDisplay)
	if match == nil {
		return nameForDisplay
	}

	baseDisplayName := findNamedGroup(genericClassRegex, match, "Name")
	numberStr := findNamedGroup(genericClassRegex, match, "Number")
	argCount, _ := strconv.Atoi(numberStr)

	if argCount > 0 {
		var sb strings.Builder
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
		return baseDisplayName + sb.String()
	}
	return baseDisplayName
}

// findNamedGroup is a helper function to extract a named group from a regex match.
func findNamedGroup(re *regexp.Regexp, match []string, groupName string) string {
	for i, name := range re.SubexpNames() {
		if i > 0 && i < len(match) && name == groupName {
			return match[i]
		}
	}
	return ""
}
