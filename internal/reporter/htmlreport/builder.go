// Package htmlreport renders a coverage summary as a set of static HTML
// pages: an index with per-assembly and per-class totals, plus one page per
// class showing every source file line by line with its visit verdict.
package htmlreport

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/coverscope/coverscope/internal/filereader"
	"github.com/coverscope/coverscope/internal/language"
	"github.com/coverscope/coverscope/internal/model"
	"github.com/coverscope/coverscope/internal/reporting"
	"github.com/coverscope/coverscope/internal/settings"
	"github.com/coverscope/coverscope/internal/utils"

	_ "github.com/coverscope/coverscope/internal/language/csharp"
	_ "github.com/coverscope/coverscope/internal/language/defaultlang"
)

// FileReader locates and reads the source files referenced by a coverage
// report. The production implementation resolves report paths against the
// configured source directories; tests substitute an in-memory variant.
type FileReader interface {
	ReadLines(path string, sourceDirs []string) ([]string, error)
}

type localFileReader struct{}

func (localFileReader) ReadLines(path string, sourceDirs []string) ([]string, error) {
	resolved, err := utils.FindFileInSourceDirs(path, sourceDirs)
	if err != nil {
		return nil, err
	}
	return filereader.ReadLinesInFile(resolved)
}

type cachedSource struct {
	lines []string
	err   error
}

// HtmlReportBuilder generates the HTML report. With InlineCSS set the
// stylesheet is embedded into every page instead of being written alongside,
// making each page self-contained.
type HtmlReportBuilder struct {
	OutputDir string
	InlineCSS bool

	reportCtx  reporting.IReportContext
	fileReader FileReader

	reportTitle                           string
	tag                                   string
	sourceDirs                            []string
	maximumDecimalPlacesForCoverageQuotas int
	css                                   string
	sourceCache                           map[string]cachedSource
}

// NewHtmlReportBuilder creates a builder writing into outputDir. The report
// context supplies the title, tag and source directories; a nil context falls
// back to defaults.
func NewHtmlReportBuilder(outputDir string, reportCtx reporting.IReportContext) *HtmlReportBuilder {
	return &HtmlReportBuilder{
		OutputDir:  outputDir,
		reportCtx:  reportCtx,
		fileReader: localFileReader{},
	}
}

// ReportType returns the type of report this builder creates.
func (b *HtmlReportBuilder) ReportType() string {
	return "Html"
}

// CreateReport renders index.html and one page per class into the output
// directory.
func (b *HtmlReportBuilder) CreateReport(report *model.SummaryResult) error {
	if report == nil {
		return fmt.Errorf("html report: summary result is nil")
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", b.OutputDir, err)
	}

	b.initFromContext(report)
	b.resolveSourceFiles(report)

	if !b.InlineCSS {
		if err := b.writeStylesheet(); err != nil {
			return err
		}
	}

	assemblyVMs, classPages := b.buildAssemblyViewModels(report)

	summaryData := b.buildSummaryPageData(report, assemblyVMs)
	if err := b.renderPage(summaryTpl, summaryData, "index.html"); err != nil {
		return err
	}

	for _, page := range classPages {
		data := b.buildClassDetailData(page.class, page.assemblyName)
		if err := b.renderPage(classDetailTpl, data, page.filename); err != nil {
			return err
		}
	}

	slog.Info("HTML report written.", "dir", b.OutputDir, "pages", len(classPages)+1)
	return nil
}

// classPage pairs a class with the page filename reserved for it on the
// summary page, so links and generated files always agree.
type classPage struct {
	class        *model.Class
	assemblyName string
	filename     string
}

func (b *HtmlReportBuilder) initFromContext(report *model.SummaryResult) {
	b.reportTitle = "Coverage Report"
	b.tag = ""
	b.maximumDecimalPlacesForCoverageQuotas = settings.NewSettings().MaximumDecimalPlaces
	b.sourceDirs = report.SourceDirs
	b.sourceCache = make(map[string]cachedSource)

	if b.reportCtx == nil {
		return
	}
	if s := b.reportCtx.Settings(); s != nil {
		b.maximumDecimalPlacesForCoverageQuotas = s.MaximumDecimalPlaces
	}
	config := b.reportCtx.ReportConfiguration()
	if config == nil {
		return
	}
	if config.Title() != "" {
		b.reportTitle = config.Title()
	}
	b.tag = config.Tag()

	dirs := append(append([]string{}, config.SourceDirectories()...), report.SourceDirs...)
	b.sourceDirs = utils.DistinctBy(dirs, func(dir string) string { return dir })
}

// resolveSourceFiles reads every source file referenced by the report once,
// filling in the physical line count and the per-line content the parsers
// leave empty. A file that cannot be resolved keeps TotalLines zero and is
// rendered from its coverage data alone.
func (b *HtmlReportBuilder) resolveSourceFiles(report *model.SummaryResult) {
	for ai := range report.Assemblies {
		assembly := &report.Assemblies[ai]
		for ci := range assembly.Classes {
			class := &assembly.Classes[ci]
			for fi := range class.Files {
				b.resolveSourceFile(&class.Files[fi])
			}
		}
	}
}

func (b *HtmlReportBuilder) resolveSourceFile(file *model.CodeFile) {
	lines, err := b.readSource(file.Path)
	if err != nil {
		return
	}
	file.TotalLines = len(lines)
	for i := range file.Lines {
		number := file.Lines[i].Number
		if number >= 1 && number <= len(lines) {
			file.Lines[i].Content = lines[number-1]
		}
	}
}

// readSource reads a source file through the FileReader seam, caching the
// outcome per report path. The warning for an unresolvable file is logged
// once, on the first miss.
func (b *HtmlReportBuilder) readSource(path string) ([]string, error) {
	if cached, ok := b.sourceCache[path]; ok {
		return cached.lines, cached.err
	}

	lines, err := b.fileReader.ReadLines(path, b.sourceDirs)
	if err != nil {
		slog.Warn("Source file could not be resolved, rendering coverage data only.", "file", path, "error", err)
	}
	b.sourceCache[path] = cachedSource{lines: lines, err: err}
	return lines, err
}

// renderPage executes a template into memory and writes the result, running
// the inline-CSS rewrite in between when requested.
func (b *HtmlReportBuilder) renderPage(tpl *template.Template, data any, filename string) error {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template for %s: %w", filename, err)
	}

	page := buf.Bytes()
	if b.InlineCSS {
		inlined, err := inlineStylesheet(page, b.stylesheet())
		if err != nil {
			return fmt.Errorf("failed to inline stylesheet into %s: %w", filename, err)
		}
		page = inlined
	}

	outputPath := filepath.Join(b.OutputDir, filename)
	if err := os.WriteFile(outputPath, page, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}

func (b *HtmlReportBuilder) formatQuota(quota *float64) string {
	if quota == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*quota, 'f', b.maximumDecimalPlacesForCoverageQuotas, 64) + "%"
}

// percentageBar converts a coverage quota into the uncovered share the
// percentagebar CSS classes are keyed by.
func percentageBar(quota float64) int {
	return 100 - int(math.Round(quota))
}

// displayClassName runs a class name through the language processor of its
// first file, so names a parser left raw still render readably
// (e.g. "List`1" as "List<T>").
func displayClassName(class *model.Class) string {
	name := class.DisplayName
	if name == "" {
		name = class.Name
	}
	path := ""
	if len(class.Files) > 0 {
		path = class.Files[0].Path
	}
	return language.FindProcessorForFile(path).FormatDisplayName(name)
}
