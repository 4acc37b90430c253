package htmlreport

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/coverscope/coverscope/internal/language"
	"github.com/coverscope/coverscope/internal/model"
	"github.com/coverscope/coverscope/internal/utils"
)

func (b *HtmlReportBuilder) buildClassDetailData(class *model.Class, assemblyName string) ClassDetailData {
	return ClassDetailData{
		ReportTitle:     b.reportTitle,
		CurrentDateTime: time.Now().Format("02/01/2006 - 15:04:05"),
		Tag:             b.tag,
		Class:           b.buildClassViewModelForDetail(class, assemblyName),
	}
}

func (b *HtmlReportBuilder) buildClassViewModelForDetail(class *model.Class, assemblyName string) ClassViewModelForDetail {
	cvm := ClassViewModelForDetail{
		Name:           class.Name,
		DisplayName:    displayClassName(class),
		AssemblyName:   assemblyName,
		IsMultiFile:    len(class.Files) > 1,
		CoveredLines:   class.LinesCovered(),
		CoverableLines: class.LinesValid(),
		TotalLines:     class.TotalLines(),
	}
	cvm.UncoveredLines = cvm.CoverableLines - cvm.CoveredLines

	quota := class.CoverageQuota()
	cvm.CoveragePercentageForDisplay = b.formatQuota(quota)
	cvm.CoverageRatioTextForDisplay = "-"
	if quota != nil {
		cvm.CoveragePercentageBarValue = percentageBar(*quota)
		cvm.CoverageRatioTextForDisplay = fmt.Sprintf("%d of %d", cvm.CoveredLines, cvm.CoverableLines)
	}

	// Page order is the sorted file order, independent of how the class was
	// assembled.
	sortedFiles := make([]model.CodeFile, len(class.Files))
	copy(sortedFiles, class.Files)
	sort.Slice(sortedFiles, func(i, j int) bool {
		return sortedFiles[i].Path < sortedFiles[j].Path
	})

	var elements []codeElementWithContext
	for fileIdx := range sortedFiles {
		file := &sortedFiles[fileIdx]
		fileVM := b.buildFileViewModel(file)
		cvm.Files = append(cvm.Files, fileVM)

		for i := range file.CodeElements {
			elements = append(elements, codeElementWithContext{
				element:        &file.CodeElements[i],
				file:           file,
				fileShortPath:  fileVM.ShortPath,
				fileIndexPlus1: fileIdx + 1,
			})
		}
	}

	// The sidebar lists all elements of the class in one sequence, so
	// elements from different files interleave by line.
	sort.Slice(elements, func(i, j int) bool {
		if elements[i].element.FirstLine == elements[j].element.FirstLine {
			return elements[i].element.FullName < elements[j].element.FullName
		}
		return elements[i].element.FirstLine < elements[j].element.FirstLine
	})
	for _, elem := range elements {
		cvm.SidebarElements = append(cvm.SidebarElements, b.buildSidebarElementViewModel(elem))
	}

	return cvm
}

// codeElementWithContext carries a code element together with the file it
// belongs to, which the sidebar needs for anchors and quota computation.
type codeElementWithContext struct {
	element        *model.CodeElement
	file           *model.CodeFile
	fileShortPath  string
	fileIndexPlus1 int
}

func (b *HtmlReportBuilder) buildFileViewModel(file *model.CodeFile) FileViewModelForDetail {
	fileVM := FileViewModelForDetail{
		Path:           file.Path,
		ShortPath:      utils.ReplaceInvalidPathChars(filepath.Base(file.Path)),
		HighlightClass: language.FindProcessorForFile(file.Path).HighlightClass(),
	}

	source, err := b.readSource(file.Path)
	if err != nil {
		// Without source text the coverage rows still render: line numbers,
		// hits and status, just no code.
		fileVM.MissingSource = true
		for i := range file.Lines {
			line := &file.Lines[i]
			fileVM.Lines = append(fileVM.Lines, b.buildLineViewModel("", line.Number, line))
		}
		return fileVM
	}

	coverageByLine := make(map[int]*model.Line, len(file.Lines))
	for i := range file.Lines {
		coverageByLine[file.Lines[i].Number] = &file.Lines[i]
	}

	for idx, content := range source {
		number := idx + 1
		fileVM.Lines = append(fileVM.Lines, b.buildLineViewModel(content, number, coverageByLine[number]))
	}
	return fileVM
}

func (b *HtmlReportBuilder) buildLineViewModel(content string, number int, covLine *model.Line) LineViewModelForDetail {
	lineVM := LineViewModelForDetail{LineNumber: number, LineContent: content}

	if covLine == nil || covLine.VisitStatus == model.NotCoverable {
		lineVM.LineVisitStatus = "gray"
		lineVM.Tooltip = "Not coverable"
		return lineVM
	}

	lineVM.Hits = strconv.Itoa(covLine.Hits)
	lineVM.LineVisitStatus = lineVisitStatusToString(covLine.VisitStatus)
	if covLine.VisitStatus == model.Visited {
		lineVM.Tooltip = fmt.Sprintf("Covered (%d visits)", covLine.Hits)
	} else {
		lineVM.Tooltip = fmt.Sprintf("Not covered (%d visits)", covLine.Hits)
	}
	return lineVM
}

func (b *HtmlReportBuilder) buildSidebarElementViewModel(ctx codeElementWithContext) SidebarElementViewModel {
	sidebarElem := SidebarElementViewModel{
		Name:           ctx.element.Name,
		FileShortPath:  ctx.fileShortPath,
		FileIndexPlus1: ctx.fileIndexPlus1,
		Line:           ctx.element.FirstLine,
		Icon:           "cube",
	}
	if ctx.element.Type == model.PropertyElementType {
		sidebarElem.Icon = "wrench"
	}

	quota := ctx.file.ElementQuota(*ctx.element)
	if quota != nil {
		sidebarElem.HasCoverage = true
		sidebarElem.PercentageBarValue = percentageBar(*quota)
	}
	sidebarElem.CoverageTitle = fmt.Sprintf("Line coverage: %s - %s", b.formatQuota(quota), ctx.element.FullName)
	return sidebarElem
}
