// Package reportconfig holds the resolved configuration of one report
// generation run: which report files to read, where to write, which report
// types to produce and which filters to apply.
package reportconfig

import (
	"github.com/coverscope/coverscope/internal/logging"
)

// IReportConfiguration describes a fully resolved run.
type IReportConfiguration interface {
	ReportFiles() []string
	TargetDirectory() string
	SourceDirectories() []string
	ReportTypes() []string
	AssemblyFilters() []string
	ClassFilters() []string
	FileFilters() []string
	VerbosityLevel() logging.VerbosityLevel
	Tag() string
	Title() string
	InvalidReportFilePatterns() []string
	IsVerbosityLevelValid() bool
}

// ReportConfiguration is the concrete IReportConfiguration.
type ReportConfiguration struct {
	RFiles             []string
	TDirectory         string
	SDirectories       []string
	RTypes             []string
	AssemblyFilterList []string
	ClassFilterList    []string
	FileFilterList     []string
	VLevel             logging.VerbosityLevel
	CfgTag             string
	CfgTitle           string
	InvalidPatterns    []string
	VLevelValid        bool
}

func (rc *ReportConfiguration) ReportFiles() []string                  { return rc.RFiles }
func (rc *ReportConfiguration) TargetDirectory() string                { return rc.TDirectory }
func (rc *ReportConfiguration) SourceDirectories() []string            { return rc.SDirectories }
func (rc *ReportConfiguration) ReportTypes() []string                  { return rc.RTypes }
func (rc *ReportConfiguration) AssemblyFilters() []string              { return rc.AssemblyFilterList }
func (rc *ReportConfiguration) ClassFilters() []string                 { return rc.ClassFilterList }
func (rc *ReportConfiguration) FileFilters() []string                  { return rc.FileFilterList }
func (rc *ReportConfiguration) VerbosityLevel() logging.VerbosityLevel { return rc.VLevel }
func (rc *ReportConfiguration) Tag() string                            { return rc.CfgTag }
func (rc *ReportConfiguration) Title() string                          { return rc.CfgTitle }
func (rc *ReportConfiguration) InvalidReportFilePatterns() []string    { return rc.InvalidPatterns }
func (rc *ReportConfiguration) IsVerbosityLevelValid() bool            { return rc.VLevelValid }

// NewReportConfiguration builds a configuration from resolved values.
// reportFiles is the list of existing files left after glob expansion;
// invalidPatterns are the patterns that resolved to nothing.
func NewReportConfiguration(
	reportFiles []string,
	targetDir string,
	sourceDirs []string,
	reportTypes []string,
	assemblyFilters []string,
	classFilters []string,
	fileFilters []string,
	tag string,
	title string,
	verbosity logging.VerbosityLevel,
	invalidPatterns []string,
) *ReportConfiguration {
	if len(reportTypes) == 0 {
		reportTypes = []string{"TextSummary"}
	}
	return &ReportConfiguration{
		RFiles:             reportFiles,
		TDirectory:         targetDir,
		SDirectories:       sourceDirs,
		RTypes:             reportTypes,
		AssemblyFilterList: assemblyFilters,
		ClassFilterList:    classFilters,
		FileFilterList:     fileFilters,
		CfgTag:             tag,
		CfgTitle:           title,
		VLevel:             verbosity,
		VLevelValid:        true,
		InvalidPatterns:    invalidPatterns,
	}
}
