package htmlreport

import (
	"fmt"
	"time"

	"github.com/coverscope/coverscope/internal/model"
)

func (b *HtmlReportBuilder) buildSummaryPageData(report *model.SummaryResult, assemblies []AssemblyViewModel) SummaryPageData {
	return SummaryPageData{
		ReportTitle:     b.reportTitle,
		CurrentDateTime: time.Now().Format("02/01/2006 - 15:04:05"),
		Cards:           b.buildSummaryCards(report),
		Assemblies:      assemblies,
		HasAssemblies:   len(assemblies) > 0,
	}
}

func (b *HtmlReportBuilder) buildSummaryCards(report *model.SummaryResult) []CardViewModel {
	var cards []CardViewModel

	infoCardRows := []CardRowViewModel{
		{Header: "Parser", Text: report.ParserName},
		{Header: "Assemblies", Text: fmt.Sprintf("%d", len(report.Assemblies)), Alignment: "right"},
		{Header: "Classes", Text: fmt.Sprintf("%d", countTotalClasses(report.Assemblies)), Alignment: "right"},
		{Header: "Files", Text: fmt.Sprintf("%d", countUniqueFiles(report.Assemblies)), Alignment: "right"},
	}
	if report.Timestamp != nil {
		infoCardRows = append(infoCardRows, CardRowViewModel{Header: "Coverage date", Text: report.Timestamp.Format("2006-01-02 15:04:05")})
	}
	if b.tag != "" {
		infoCardRows = append(infoCardRows, CardRowViewModel{Header: "Tag", Text: b.tag})
	}
	cards = append(cards, CardViewModel{Title: "Information", Rows: infoCardRows})

	covered := report.LinesCovered()
	coverable := report.LinesValid()
	quota := report.CoverageQuota()

	lineCard := CardViewModel{
		Title:    "Line coverage",
		SubTitle: b.formatQuota(quota),
	}
	lineCovTooltip := "-"
	if quota != nil {
		lineCard.SubTitlePercentageBarValue = percentageBar(*quota)
		lineCovTooltip = fmt.Sprintf("%d of %d", covered, coverable)
	}
	lineCard.Rows = []CardRowViewModel{
		{Header: "Covered lines", Text: fmt.Sprintf("%d", covered), Alignment: "right"},
		{Header: "Uncovered lines", Text: fmt.Sprintf("%d", coverable-covered), Alignment: "right"},
		{Header: "Coverable lines", Text: fmt.Sprintf("%d", coverable), Alignment: "right"},
		{Header: "Total lines", Text: fmt.Sprintf("%d", sumTotalLines(report.Assemblies)), Alignment: "right"},
		{Header: "Line coverage", Text: b.formatQuota(quota), Tooltip: lineCovTooltip, Alignment: "right"},
	}
	cards = append(cards, lineCard)

	return cards
}

// buildAssemblyViewModels walks the report once, reserving a page filename
// per class so the summary links and the generated pages stay in sync.
func (b *HtmlReportBuilder) buildAssemblyViewModels(report *model.SummaryResult) ([]AssemblyViewModel, []classPage) {
	var assemblyVMs []AssemblyViewModel
	var pages []classPage
	existingFilenames := make(map[string]struct{})

	for ai := range report.Assemblies {
		assembly := &report.Assemblies[ai]

		asmVM := AssemblyViewModel{
			Name:           assembly.Name,
			CoveredLines:   assembly.LinesCovered(),
			CoverableLines: assembly.LinesValid(),
		}
		asmVM.UncoveredLines = asmVM.CoverableLines - asmVM.CoveredLines

		quota := assembly.CoverageQuota()
		asmVM.CoverageDisplay = b.formatQuota(quota)
		if quota != nil {
			asmVM.HasCoverage = true
			asmVM.PercentageBarValue = percentageBar(*quota)
			asmVM.CoverageTooltip = fmt.Sprintf("%d of %d", asmVM.CoveredLines, asmVM.CoverableLines)
		}

		for ci := range assembly.Classes {
			class := &assembly.Classes[ci]
			filename := b.getClassReportFilename(assembly.Name, class.Name, existingFilenames)
			asmVM.TotalLines += class.TotalLines()
			asmVM.Classes = append(asmVM.Classes, b.buildClassRowViewModel(class, filename))
			pages = append(pages, classPage{class: class, assemblyName: assembly.Name, filename: filename})
		}

		assemblyVMs = append(assemblyVMs, asmVM)
	}

	return assemblyVMs, pages
}

func (b *HtmlReportBuilder) buildClassRowViewModel(class *model.Class, filename string) ClassRowViewModel {
	row := ClassRowViewModel{
		Name:           displayClassName(class),
		ReportFilename: filename,
		CoveredLines:   class.LinesCovered(),
		CoverableLines: class.LinesValid(),
		TotalLines:     class.TotalLines(),
	}
	row.UncoveredLines = row.CoverableLines - row.CoveredLines

	quota := class.CoverageQuota()
	row.CoverageDisplay = b.formatQuota(quota)
	if quota != nil {
		row.HasCoverage = true
		row.PercentageBarValue = percentageBar(*quota)
		row.CoverageTooltip = fmt.Sprintf("%d of %d", row.CoveredLines, row.CoverableLines)
	}

	return row
}
