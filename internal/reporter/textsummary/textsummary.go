// Package textsummary renders a merged coverage result as a Summary.txt file
// plus a per-assembly console table.
package textsummary

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/coverscope/coverscope/internal/model"
	"github.com/coverscope/coverscope/internal/settings"
)

// Color variables for console output.
var (
	goodColor = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	poorColor = color.New(color.FgRed, color.Bold)
)

// TextReportBuilder writes the "TextSummary" report type.
type TextReportBuilder struct {
	outputDir string
	console   io.Writer
	settings  *settings.Settings
}

// NewTextReportBuilder creates a builder writing Summary.txt into outputDir
// and the accompanying table to stdout.
func NewTextReportBuilder(outputDir string) *TextReportBuilder {
	return &TextReportBuilder{
		outputDir: outputDir,
		console:   os.Stdout,
		settings:  settings.NewSettings(),
	}
}

func (b *TextReportBuilder) ReportType() string {
	return "TextSummary"
}

// CreateReport writes the plain text summary file and prints the console
// table.
func (b *TextReportBuilder) CreateReport(summary *model.SummaryResult) error {
	if summary == nil {
		return fmt.Errorf("no coverage result to report")
	}
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", b.outputDir, err)
	}

	summaryPath := filepath.Join(b.outputDir, "Summary.txt")
	file, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", summaryPath, err)
	}
	defer file.Close()

	if err := b.writeSummaryText(file, summary); err != nil {
		return fmt.Errorf("writing %s: %w", summaryPath, err)
	}
	if err := b.writeConsoleTable(b.console, summary); err != nil {
		return fmt.Errorf("writing console table: %w", err)
	}

	slog.Info("Text summary written.", "path", summaryPath)
	return nil
}

// writeSummaryText writes the uncolored Summary.txt: overall numbers first,
// then one block per assembly listing class quotas.
func (b *TextReportBuilder) writeSummaryText(w io.Writer, summary *model.SummaryResult) error {
	classes, files := countClassesAndFiles(summary)

	fmt.Fprintln(w, "Summary")
	if summary.Timestamp != nil {
		fmt.Fprintf(w, "  Generated on: %s\n", summary.Timestamp.Format("2006-01-02 15:04:05"))
	}
	if summary.ParserName != "" {
		fmt.Fprintf(w, "  Parser: %s\n", summary.ParserName)
	}
	fmt.Fprintf(w, "  Assemblies: %d\n", len(summary.Assemblies))
	fmt.Fprintf(w, "  Classes: %d\n", classes)
	fmt.Fprintf(w, "  Files: %d\n", files)
	fmt.Fprintf(w, "  Covered lines: %d\n", summary.LinesCovered())
	fmt.Fprintf(w, "  Coverable lines: %d\n", summary.LinesValid())
	fmt.Fprintf(w, "  Line coverage: %s\n", b.formatQuota(summary.CoverageQuota()))

	for i := range summary.Assemblies {
		assembly := &summary.Assemblies[i]
		fmt.Fprintf(w, "\n%s\n", assembly.Name)
		fmt.Fprintf(w, "  Line coverage: %s\n", b.formatQuota(assembly.CoverageQuota()))
		for j := range assembly.Classes {
			class := &assembly.Classes[j]
			name := class.DisplayName
			if name == "" {
				name = class.Name
			}
			fmt.Fprintf(w, "  %s: %s\n", name, b.formatQuota(class.CoverageQuota()))
		}
	}
	return nil
}

// writeConsoleTable prints one row per assembly plus a total row. The quota
// column is colored by threshold; everything else stays plain so the output
// is still grep friendly.
func (b *TextReportBuilder) writeConsoleTable(w io.Writer, summary *model.SummaryResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Assembly", "Classes", "Covered", "Coverable", "Quota"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i := range summary.Assemblies {
		assembly := &summary.Assemblies[i]
		data = append(data, []string{
			assembly.Name,
			strconv.Itoa(len(assembly.Classes)),
			strconv.Itoa(assembly.LinesCovered()),
			strconv.Itoa(assembly.LinesValid()),
			b.colorQuota(assembly.CoverageQuota()),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	classes, _ := countClassesAndFiles(summary)
	_, err := fmt.Fprintf(w, "Total: %d/%d lines covered (%s) in %d classes\n",
		summary.LinesCovered(), summary.LinesValid(), b.formatQuota(summary.CoverageQuota()), classes)
	return err
}

// formatQuota renders a coverage percentage without color. A nil quota (no
// coverable lines) renders as "N/A".
func (b *TextReportBuilder) formatQuota(quota *float64) string {
	if quota == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*quota, 'f', b.settings.MaximumDecimalPlaces, 64) + "%"
}

// colorQuota renders a coverage percentage for the console: green from 80%,
// yellow from 50%, red below.
func (b *TextReportBuilder) colorQuota(quota *float64) string {
	text := b.formatQuota(quota)
	if quota == nil {
		return text
	}
	switch {
	case *quota >= 80:
		return goodColor.Sprint(text)
	case *quota >= 50:
		return warnColor.Sprint(text)
	default:
		return poorColor.Sprint(text)
	}
}

func countClassesAndFiles(summary *model.SummaryResult) (int, int) {
	classes := 0
	paths := make(map[string]struct{})
	for i := range summary.Assemblies {
		assembly := &summary.Assemblies[i]
		classes += len(assembly.Classes)
		for j := range assembly.Classes {
			for k := range assembly.Classes[j].Files {
				paths[assembly.Classes[j].Files[k].Path] = struct{}{}
			}
		}
	}
	return classes, len(paths)
}
