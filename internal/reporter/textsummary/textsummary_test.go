package textsummary

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverscope/coverscope/internal/model"
)

func disableColor(t *testing.T) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })
}

func makeLines(hits ...int) []model.Line {
	lines := make([]model.Line, len(hits))
	for i, h := range hits {
		status := model.NotCoverable
		switch {
		case h > 0:
			status = model.Visited
		case h == 0:
			status = model.NotVisited
		}
		lines[i] = model.Line{Number: i + 1, Hits: h, VisitStatus: status}
	}
	return lines
}

func testSummary() *model.SummaryResult {
	ts := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	return &model.SummaryResult{
		ParserName: "DotCover",
		SourceDirs: []string{"/src"},
		Timestamp:  &ts,
		Assemblies: []model.Assembly{
			{
				Name: "App",
				Classes: []model.Class{
					{
						Name:        "App.Calculator",
						DisplayName: "App.Calculator",
						Files:       []model.CodeFile{{Path: "/src/Calculator.cs", Lines: makeLines(-1, 1, 1)}},
					},
					{
						Name:        "App.Worker",
						DisplayName: "App.Worker",
						Files:       []model.CodeFile{{Path: "/src/Worker.cs", Lines: makeLines(1, 0)}},
					},
				},
			},
			{
				Name: "Lib",
				Classes: []model.Class{
					{
						Name:        "Lib.Helper",
						DisplayName: "Lib.Helper",
						Files:       []model.CodeFile{{Path: "/src/Helper.cs", Lines: makeLines(-1)}},
					},
				},
			},
		},
	}
}

func TestWriteSummaryText(t *testing.T) {
	builder := NewTextReportBuilder(t.TempDir())
	var buf bytes.Buffer

	require.NoError(t, builder.writeSummaryText(&buf, testSummary()))
	out := buf.String()

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Generated on: 2024-05-17 10:30:00")
	assert.Contains(t, out, "Parser: DotCover")
	assert.Contains(t, out, "Assemblies: 2")
	assert.Contains(t, out, "Classes: 3")
	assert.Contains(t, out, "Files: 3")
	assert.Contains(t, out, "Covered lines: 3")
	assert.Contains(t, out, "Coverable lines: 4")
	assert.Contains(t, out, "Line coverage: 75.0%")
	assert.Contains(t, out, "App.Calculator: 100.0%")
	assert.Contains(t, out, "App.Worker: 50.0%")
	assert.Contains(t, out, "Lib.Helper: N/A")
}

func TestWriteConsoleTable(t *testing.T) {
	disableColor(t)
	builder := NewTextReportBuilder(t.TempDir())
	var buf bytes.Buffer

	require.NoError(t, builder.writeConsoleTable(&buf, testSummary()))
	out := buf.String()

	assert.Contains(t, out, "App")
	assert.Contains(t, out, "Lib")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Total: 3/4 lines covered (75.0%) in 3 classes")
}

func TestCreateReportWritesSummaryFile(t *testing.T) {
	disableColor(t)
	outputDir := filepath.Join(t.TempDir(), "report")
	builder := NewTextReportBuilder(outputDir)
	builder.console = &bytes.Buffer{}

	require.NoError(t, builder.CreateReport(testSummary()))

	content, err := os.ReadFile(filepath.Join(outputDir, "Summary.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Line coverage: 75.0%")
}

func TestCreateReportNilSummary(t *testing.T) {
	builder := NewTextReportBuilder(t.TempDir())
	assert.Error(t, builder.CreateReport(nil))
}

func TestReportType(t *testing.T) {
	assert.Equal(t, "TextSummary", NewTextReportBuilder("out").ReportType())
}
