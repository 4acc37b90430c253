package htmlreport

// SummaryPageData holds everything the index page template renders.
type SummaryPageData struct {
	ReportTitle     string
	CurrentDateTime string
	Cards           []CardViewModel
	Assemblies      []AssemblyViewModel
	HasAssemblies   bool
}

// CardViewModel is one card in the summary header (information, line
// coverage). SubTitle carries the headline percentage when the card has one.
type CardViewModel struct {
	Title                      string
	SubTitle                   string
	SubTitlePercentageBarValue int
	Rows                       []CardRowViewModel
}

// CardRowViewModel is a single label/value row inside a card.
type CardRowViewModel struct {
	Header    string
	Text      string
	Tooltip   string
	Alignment string
}

// AssemblyViewModel is one assembly group in the summary coverage table.
type AssemblyViewModel struct {
	Name               string
	CoveredLines       int
	UncoveredLines     int
	CoverableLines     int
	TotalLines         int
	CoverageDisplay    string
	CoverageTooltip    string
	HasCoverage        bool
	PercentageBarValue int
	Classes            []ClassRowViewModel
}

// ClassRowViewModel is one class row in the summary coverage table, linking
// to the generated per-class page.
type ClassRowViewModel struct {
	Name               string
	ReportFilename     string
	CoveredLines       int
	UncoveredLines     int
	CoverableLines     int
	TotalLines         int
	CoverageDisplay    string
	CoverageTooltip    string
	HasCoverage        bool
	PercentageBarValue int
}

// ClassDetailData holds everything the class detail page template renders.
type ClassDetailData struct {
	ReportTitle     string
	CurrentDateTime string
	Tag             string
	Class           ClassViewModelForDetail
}

// ClassViewModelForDetail is the class header section of a detail page.
type ClassViewModelForDetail struct {
	Name                         string
	DisplayName                  string
	AssemblyName                 string
	IsMultiFile                  bool
	CoveredLines                 int
	UncoveredLines               int
	CoverableLines               int
	TotalLines                   int
	CoveragePercentageForDisplay string
	CoverageRatioTextForDisplay  string
	CoveragePercentageBarValue   int
	Files                        []FileViewModelForDetail
	SidebarElements              []SidebarElementViewModel
}

// FileViewModelForDetail is one source file rendered line by line.
// MissingSource marks files whose sources could not be resolved; those render
// the coverage rows without source text.
type FileViewModelForDetail struct {
	Path           string
	ShortPath      string
	HighlightClass string
	MissingSource  bool
	Lines          []LineViewModelForDetail
}

// LineViewModelForDetail is one row of the line-by-line coverage table.
// LineVisitStatus is the CSS status class ("green", "red" or "gray"); Hits is
// already formatted and empty for lines that are not coverable.
type LineViewModelForDetail struct {
	LineNumber      int
	Hits            string
	LineVisitStatus string
	Tooltip         string
	LineContent     string
}

// SidebarElementViewModel is one method or property anchor in the fixed
// sidebar of a class detail page.
type SidebarElementViewModel struct {
	Name               string
	FileShortPath      string
	FileIndexPlus1     int
	Line               int
	Icon               string
	HasCoverage        bool
	PercentageBarValue int
	CoverageTitle      string
}
