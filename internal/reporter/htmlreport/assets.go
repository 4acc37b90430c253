package htmlreport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Colors shared by the coverage bars and the status cells of the line
// analysis table.
const (
	colorCovered      = "#9fd98b"
	colorUncovered    = "#fc8f8f"
	colorNotCoverable = "#dbdbdb"
)

const stylesheetBase = `html { scroll-behavior: smooth; }
body { font-family: "Segoe UI", Helvetica, Arial, sans-serif; font-size: 14px; color: #222; margin: 0; padding: 0; background-color: #f5f5f5; }
h1 { font-size: 18px; margin: 18px 0 10px 0; }
h2 { font-size: 15px; margin: 18px 0 8px 0; word-break: break-all; }
a { color: #1564ad; text-decoration: none; }
a:hover { text-decoration: underline; }
a.back { font-weight: bold; text-decoration: none; }
code { font-family: Consolas, "Courier New", monospace; font-size: 12px; white-space: nowrap; }

.container { display: flex; }
.containerleft { flex: 1 1 auto; min-width: 0; padding: 0 20px 20px 20px; }
.containerright { flex: 0 0 270px; }
.containerrightfixed { position: fixed; top: 0; bottom: 0; width: 270px; overflow-y: auto; padding: 0 10px 10px 10px; background-color: #fff; border-left: 1px solid #d5d5d5; }
.containerrightfixed a { display: block; padding: 1px 4px; margin-bottom: 1px; color: #222; font-size: 12px; white-space: nowrap; overflow: hidden; text-overflow: ellipsis; }
.containerrightfixed i { margin-right: 4px; font-style: normal; }
.icon-cube::before { content: "\25A0"; color: #666; }
.icon-wrench::before { content: "\2699"; color: #666; }

.card-group { display: flex; flex-wrap: wrap; gap: 12px; margin-bottom: 12px; }
.card { flex: 1 1 280px; background-color: #fff; border: 1px solid #d5d5d5; border-radius: 2px; }
.card-header { padding: 6px 10px; font-weight: bold; background-color: #fafafa; border-bottom: 1px solid #d5d5d5; }
.card-body { padding: 10px; }
.card-body .large { font-size: 26px; margin-bottom: 8px; display: inline-block; }
.card-body table { width: 100%; border-collapse: collapse; }
.card-body th { text-align: left; font-weight: normal; color: #555; padding: 2px 8px 2px 0; white-space: nowrap; }
.card-body td { padding: 2px 0; }

.table-responsive { overflow-x: auto; background-color: #fff; border: 1px solid #d5d5d5; margin-bottom: 16px; }
table.overview { width: 100%; border-collapse: collapse; }
table.overview th, table.overview td { padding: 4px 8px; border-top: 1px solid #e5e5e5; text-align: left; }
table.overview thead th { background-color: #fafafa; border-top: none; border-bottom: 1px solid #d5d5d5; }
table.overview tbody th { background-color: #f0f0f0; }
table.table-fixed { table-layout: fixed; }
table.overview td, table.overview th { overflow: hidden; text-overflow: ellipsis; }
.column-min-200 { min-width: 200px; }
.column70 { width: 70px; }
.column90 { width: 90px; }
.column98 { width: 98px; }
.column100 { width: 100px; }
.column105 { width: 105px; }
.column112 { width: 112px; }

table.lineAnalysis { border-collapse: collapse; width: 100%; }
table.lineAnalysis th { padding: 4px 8px; text-align: left; background-color: #fafafa; border-bottom: 1px solid #d5d5d5; }
table.lineAnalysis td { padding: 0 4px; font-size: 12px; }
table.lineAnalysis td.green { background-color: ` + colorCovered + `; }
table.lineAnalysis td.red { background-color: ` + colorUncovered + `; }
table.lineAnalysis td.gray { background-color: ` + colorNotCoverable + `; }
.lightgreen { background-color: #e3f3de; }
.lightred { background-color: #ffe7e7; }
.lightgray { background-color: #f7f7f7; }
.leftmargin { padding-left: 10px !important; }
.rightmargin { padding-right: 10px !important; }
.right { text-align: right; }
.center { text-align: center; }
.limit-width { max-width: 400px; overflow: hidden; text-overflow: ellipsis; white-space: nowrap; }
.overflow-wrap { overflow-wrap: anywhere; }
.note { color: #777; font-style: italic; }
.footer { margin-top: 30px; color: #777; font-size: 12px; }

.percentagebar { background-repeat: no-repeat; background-size: 100% 100%; }
.cardpercentagebar { background-repeat: no-repeat; background-size: 100% 4px; background-position: bottom; padding-bottom: 6px; }
`

// buildStylesheet appends one rule per uncovered percentage to the static
// part: percentagebarN paints N percent of the element red from the right,
// cardpercentagebarN does the same as a thin underline.
func buildStylesheet() string {
	var sb strings.Builder
	sb.WriteString(stylesheetBase)
	for uncovered := 0; uncovered <= 100; uncovered++ {
		covered := 100 - uncovered
		fmt.Fprintf(&sb, ".percentagebar%d { background-image: linear-gradient(to right, %s %d%%, %s %d%%); }\n",
			uncovered, colorCovered, covered, colorUncovered, covered)
		fmt.Fprintf(&sb, ".cardpercentagebar%d { background-image: linear-gradient(to right, %s %d%%, %s %d%%); }\n",
			uncovered, colorCovered, covered, colorUncovered, covered)
	}
	return sb.String()
}

func (b *HtmlReportBuilder) writeStylesheet() error {
	stylesheetPath := filepath.Join(b.OutputDir, "style.css")
	if err := os.WriteFile(stylesheetPath, []byte(b.stylesheet()), 0o644); err != nil {
		return fmt.Errorf("failed to write stylesheet %s: %w", stylesheetPath, err)
	}
	return nil
}

func (b *HtmlReportBuilder) stylesheet() string {
	if b.css == "" {
		b.css = buildStylesheet()
	}
	return b.css
}
