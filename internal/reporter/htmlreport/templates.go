package htmlreport

import (
	"html"
	"html/template"
	"strings"
)

const faviconDataURI = `data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAACAAAAAgCAMAAABEpIrGAAAAn1BMVEUAAADCAAAAAAA3yDfUAAA3yDfUAAA8PDzr6+sAAAD4+Pg3yDeQkJDTAADt7e3V1dU3yDdCQkIAAADbMTHUAABBykHUAAA2yDY3yDfr6+vTAAB3diDR0dGYcHDUAAAjhiPSAAA3yDeuAADUAAA3yDf////OCALg9+BLzktBuzRelimzKgv87+/dNTVflSn1/PWz6rO126g5yDlYniy0KgwjJ0TyAAAAI3RSTlMABAj0WD6rJcsN7X1HzMqUJyYW+/X08+bltqSeaVRBOy0cE+citBEAAADBSURBVDjLlczXEoIwFIThJPYGiL0XiL3r+z+bBOJs9JDMuLffP8v+Gxfc6aIyDQVjQcnqnvRDEQwLJYtXpZT+YhDHKIjLbS+OUeT4TjkKi6OwOArq+yeKXD9uDqQQbcOjyCy0e6bTojZSftX+U6zUQ7OuittDu1k0WHqRFfdXQijgjKfF6ZwAikvmKD6OQjmKWUcDigkztm5FZN05nMON9ZcoinlBmTNnAUdBnRbUUbgdBZwWbkcBpwXcVsBtxfjb31j1QB5qeebOAAAAAElFTkSuQmCC`

const summaryLayoutTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<meta http-equiv="X-UA-Compatible" content="IE=EDGE,chrome=1" />
<link href="` + faviconDataURI + `" rel="icon" type="image/x-icon" />
<title>{{.ReportTitle}} - Summary</title>
<link rel="stylesheet" type="text/css" href="style.css" />
</head>
<body>
    <div class="container">
        <div class="containerleft">
            <h1>{{.ReportTitle}}</h1>

            <div class="card-group">
                {{range .Cards}}
                <div class="card">
                    <div class="card-header">{{.Title}}</div>
                    <div class="card-body">
                        {{if .SubTitle}}<div class="large cardpercentagebar cardpercentagebar{{.SubTitlePercentageBarValue}}">{{.SubTitle}}</div>{{end}}
                        <div class="table">
                            <table>
                                {{range .Rows}}
                                <tr><th>{{.Header}}:</th><td class="limit-width{{if eq .Alignment "right"}} right{{end}}" title="{{if .Tooltip}}{{.Tooltip}}{{else}}{{.Text}}{{end}}">{{.Text}}</td></tr>
                                {{end}}
                            </table>
                        </div>
                    </div>
                </div>
                {{end}}
            </div>

            {{if .HasAssemblies}}
            <h1>Coverage</h1>
            <div class="table-responsive">
                <table class="overview table-fixed">
                    <colgroup>
                        <col class="column-min-200" />
                        <col class="column90" />
                        <col class="column105" />
                        <col class="column100" />
                        <col class="column70" />
                        <col class="column98" />
                        <col class="column112" />
                    </colgroup>
                    <thead>
                        <tr><th>Name</th><th class="right">Covered</th><th class="right">Uncovered</th><th class="right">Coverable</th><th class="right">Total</th><th colspan="2" class="center">Line coverage</th></tr>
                    </thead>
                    <tbody>
                        {{range .Assemblies}}
                        <tr>
                            <th>{{.Name}}</th>
                            <th class="right">{{.CoveredLines}}</th>
                            <th class="right">{{.UncoveredLines}}</th>
                            <th class="right">{{.CoverableLines}}</th>
                            <th class="right">{{.TotalLines}}</th>
                            <th class="right" {{if .CoverageTooltip}}title="{{.CoverageTooltip}}"{{end}}>{{.CoverageDisplay}}</th>
                            {{if .HasCoverage}}<th class="percentagebar percentagebar{{.PercentageBarValue}}">&nbsp;</th>{{else}}<th>&nbsp;</th>{{end}}
                        </tr>
                        {{range .Classes}}
                        <tr>
                            <td><a href="{{.ReportFilename}}">{{.Name}}</a></td>
                            <td class="right">{{.CoveredLines}}</td>
                            <td class="right">{{.UncoveredLines}}</td>
                            <td class="right">{{.CoverableLines}}</td>
                            <td class="right">{{.TotalLines}}</td>
                            <td class="right" {{if .CoverageTooltip}}title="{{.CoverageTooltip}}"{{end}}>{{.CoverageDisplay}}</td>
                            {{if .HasCoverage}}<td class="percentagebar percentagebar{{.PercentageBarValue}}">&nbsp;</td>{{else}}<td>&nbsp;</td>{{end}}
                        </tr>
                        {{end}}
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{else}}
            <p>No assemblies were found in the coverage report.</p>
            {{end}}

            <div class="footer">Generated by coverscope<br />{{.CurrentDateTime}}</div>
        </div>
    </div>
</body>
</html>`

const classDetailLayoutTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<meta http-equiv="X-UA-Compatible" content="IE=EDGE,chrome=1" />
<link href="` + faviconDataURI + `" rel="icon" type="image/x-icon" />
<title>{{.Class.Name}} - {{.ReportTitle}}</title>
<link rel="stylesheet" type="text/css" href="style.css" />
</head>
<body>
    <div class="container">
        <div class="containerleft">
            <h1><a href="index.html" class="back">&lt;</a> Summary</h1>

            <div class="card-group">
                <div class="card">
                    <div class="card-header">Information</div>
                    <div class="card-body">
                        <div class="table">
                            <table>
                                <tr><th>Class:</th><td class="limit-width" title="{{.Class.Name}}">{{.Class.DisplayName}}</td></tr>
                                <tr><th>Assembly:</th><td class="limit-width" title="{{.Class.AssemblyName}}">{{.Class.AssemblyName}}</td></tr>
                                <tr><th>Files:</th><td class="overflow-wrap">
                                    {{range $idx, $file := .Class.Files}}
                                    <a href="#{{$file.ShortPath}}" class="navigatetohash">{{if $.Class.IsMultiFile}}File {{inc $idx}}: {{end}}{{$file.Path}}</a><br />
                                    {{else}}
                                    No files found.
                                    {{end}}
                                </td></tr>
                                {{if .Tag}}
                                <tr><th>Tag:</th><td class="limit-width" title="{{.Tag}}">{{.Tag}}</td></tr>
                                {{end}}
                            </table>
                        </div>
                    </div>
                </div>
            </div>

            <div class="card-group">
                <div class="card">
                    <div class="card-header">Line coverage</div>
                    <div class="card-body">
                        <div class="large cardpercentagebar cardpercentagebar{{.Class.CoveragePercentageBarValue}}">{{.Class.CoveragePercentageForDisplay}}</div>
                        <div class="table">
                            <table>
                                <tr><th>Covered lines:</th><td class="limit-width right" title="{{.Class.CoveredLines}}">{{.Class.CoveredLines}}</td></tr>
                                <tr><th>Uncovered lines:</th><td class="limit-width right" title="{{.Class.UncoveredLines}}">{{.Class.UncoveredLines}}</td></tr>
                                <tr><th>Coverable lines:</th><td class="limit-width right" title="{{.Class.CoverableLines}}">{{.Class.CoverableLines}}</td></tr>
                                <tr><th>Total lines:</th><td class="limit-width right" title="{{.Class.TotalLines}}">{{.Class.TotalLines}}</td></tr>
                                <tr><th>Line coverage:</th><td class="limit-width right" title="{{.Class.CoverageRatioTextForDisplay}}">{{.Class.CoveragePercentageForDisplay}}</td></tr>
                            </table>
                        </div>
                    </div>
                </div>
            </div>

            <h1>Files</h1>
            {{range $file := .Class.Files}}
            <h2 id="{{$file.ShortPath}}">{{$file.Path}}</h2>
            {{if $file.MissingSource}}<p class="note">The source file could not be resolved, only coverage information is shown.</p>{{end}}
            <div class="table-responsive">
                <table class="lineAnalysis">
                    <thead><tr><th></th><th>#</th><th>Line</th><th>Coverage</th></tr></thead>
                    <tbody>
                        {{range $file.Lines}}
                        <tr class="{{if ne .LineVisitStatus "gray"}}coverableline{{end}}" title="{{.Tooltip}}">
                            <td class="{{.LineVisitStatus}}">&nbsp;</td>
                            <td class="leftmargin rightmargin right">{{if ne .LineVisitStatus "gray"}}{{.Hits}}{{end}}</td>
                            <td class="rightmargin right"><a id="{{$file.ShortPath}}_line{{.LineNumber}}"></a><code>{{.LineNumber}}</code></td>
                            <td class="light{{.LineVisitStatus}}"><code class="{{$file.HighlightClass}}">{{.LineContent | SanitizeSourceLine}}</code></td>
                        </tr>
                        {{end}}
                    </tbody>
                </table>
            </div>
            {{else}}
            <p>No source files are associated with this class.</p>
            {{end}}

            <div class="footer">Generated by coverscope<br />{{.CurrentDateTime}}</div>
        </div>

        {{if .Class.SidebarElements}}
        <div class="containerright">
            <div class="containerrightfixed">
                <h1>Methods/Properties</h1>
                {{range .Class.SidebarElements}}
                <a href="#{{.FileShortPath}}_line{{.Line}}" class="navigatetohash{{if .HasCoverage}} percentagebar percentagebar{{.PercentageBarValue}}{{end}}" title="{{if $.Class.IsMultiFile}}File {{.FileIndexPlus1}}: {{end}}{{.CoverageTitle}}"><i class="icon-{{.Icon}}"></i>{{.Name}}</a><br />
                {{end}}
                <br />
            </div>
        </div>
        {{end}}
    </div>
</body>
</html>`

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"SanitizeSourceLine": func(line string) template.HTML {
		escaped := html.EscapeString(line)

		// Tabs first, so the nbsp pass below sees only plain spaces.
		escaped = strings.ReplaceAll(escaped, "\t", "    ")
		escaped = strings.ReplaceAll(escaped, " ", "&nbsp;")

		return template.HTML(escaped)
	},
}

var (
	summaryTpl     = template.Must(template.New("summary").Funcs(templateFuncs).Parse(summaryLayoutTemplate))
	classDetailTpl = template.Must(template.New("classDetail").Funcs(templateFuncs).Parse(classDetailLayoutTemplate))
)
