package htmlreport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coverscope/coverscope/internal/model"
	"github.com/coverscope/coverscope/internal/utils"
)

const maxFilenameLengthBase = 95

// filenameSanitizeRegex strips everything a class report filename must not
// contain. Unlike utils.ReplaceInvalidPathChars it removes dots as well, so
// "My.Assembly" and "MyAssembly" map to the same page name.
var filenameSanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func countTotalClasses(assemblies []model.Assembly) int {
	count := 0
	for _, asm := range assemblies {
		count += len(asm.Classes)
	}
	return count
}

func countUniqueFiles(assemblies []model.Assembly) int {
	if len(assemblies) == 0 {
		return 0
	}

	var allFiles []model.CodeFile
	for _, asm := range assemblies {
		for _, cls := range asm.Classes {
			allFiles = append(allFiles, cls.Files...)
		}
	}

	distinctFiles := utils.DistinctBy(allFiles, func(file model.CodeFile) string {
		return file.Path
	})

	return len(distinctFiles)
}

func sumTotalLines(assemblies []model.Assembly) int {
	total := 0
	for i := range assemblies {
		for j := range assemblies[i].Classes {
			total += assemblies[i].Classes[j].TotalLines()
		}
	}
	return total
}

func (b *HtmlReportBuilder) getClassReportFilename(assemblyShortName, className string, existingFilenames map[string]struct{}) string {
	return generateUniqueFilename(assemblyShortName, className, existingFilenames)
}

// lineVisitStatusToString maps a coverage verdict to its CSS status class.
func lineVisitStatusToString(status model.LineVisitStatus) string {
	switch status {
	case model.Visited:
		return "green"
	case model.NotVisited:
		return "red"
	default:
		return "gray"
	}
}

// generateUniqueFilename creates a sanitized and unique HTML filename for a
// class page. The existingFilenames map is keyed by the lowercased filename
// and is updated by this function; lookups are case-insensitive because the
// pages may end up on a case-insensitive filesystem.
func generateUniqueFilename(
	assemblyShortName string,
	className string,
	existingFilenames map[string]struct{},
) string {
	namePart := className
	if lastDot := strings.LastIndex(className, "."); lastDot != -1 {
		namePart = className[lastDot+1:]
	}

	processedClassName := namePart
	if strings.HasSuffix(strings.ToLower(processedClassName), ".js") {
		processedClassName = processedClassName[:len(processedClassName)-3]
	}

	// Nested type separators: keep only the innermost part.
	separators := []string{"+", "/", "::"}
	for _, sep := range separators {
		if strings.Contains(processedClassName, sep) {
			parts := strings.Split(processedClassName, sep)
			processedClassName = parts[len(parts)-1]
		}
	}

	baseName := assemblyShortName + processedClassName
	sanitizedName := filenameSanitizeRegex.ReplaceAllString(baseName, "")

	if len(sanitizedName) > maxFilenameLengthBase {
		sanitizedName = sanitizedName[:50] + sanitizedName[len(sanitizedName)-(maxFilenameLengthBase-50):]
	}

	fileName := sanitizedName + ".html"
	counter := 1
	normalizedFileNameToCheck := strings.ToLower(fileName)

	_, exists := existingFilenames[normalizedFileNameToCheck]
	for exists {
		counter++
		fileName = fmt.Sprintf("%s%d.html", sanitizedName, counter)
		normalizedFileNameToCheck = strings.ToLower(fileName)
		_, exists = existingFilenames[normalizedFileNameToCheck]
	}

	existingFilenames[normalizedFileNameToCheck] = struct{}{}
	return fileName
}
