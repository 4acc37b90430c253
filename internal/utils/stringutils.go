package utils

import (
	"regexp"
	"strings"
)

var (
	invalidPathCharsRegex = regexp.MustCompile(`[^\w\.\-]+`)
	nonLetterCharsRegex   = regexp.MustCompile(`[^\w]+`)
)

// ReplaceInvalidPathChars replaces characters that are unsafe in file names
// with an underscore.
func ReplaceInvalidPathChars(path string) string {
	return invalidPathCharsRegex.ReplaceAllString(path, "_")
}

// ReplaceNonLetterChars strips everything that is not a letter, digit or
// underscore. Used for HTML anchor ids.
func ReplaceNonLetterChars(text string) string {
	return nonLetterCharsRegex.ReplaceAllString(text, "")
}

// GetShortMethodName collapses a method signature for display:
// "MyMethod(System.String, System.Int32)" becomes "MyMethod(...)" while
// "MyMethod()" stays as is. Names without parentheses are returned unchanged.
func GetShortMethodName(fullName string) string {
	indexOpen := strings.Index(fullName, "(")
	if indexOpen <= 0 {
		return fullName
	}

	indexClose := strings.Index(fullName[indexOpen:], ")")
	if indexClose == -1 {
		return fullName
	}
	indexClose += indexOpen

	if indexClose > indexOpen+1 {
		return fullName[:indexOpen] + "(...)"
	}
	return fullName[:indexOpen] + "()"
}
