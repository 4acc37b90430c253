package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/coverscope/coverscope/internal/analyzer"
	"github.com/coverscope/coverscope/internal/glob"
	"github.com/coverscope/coverscope/internal/logging"
	"github.com/coverscope/coverscope/internal/model"
	"github.com/coverscope/coverscope/internal/parser"
	_ "github.com/coverscope/coverscope/internal/parser/dotcover"
	"github.com/coverscope/coverscope/internal/reportconfig"
	"github.com/coverscope/coverscope/internal/reporter/htmlreport"
	"github.com/coverscope/coverscope/internal/reporter/textsummary"
	"github.com/coverscope/coverscope/internal/reporting"
	"github.com/coverscope/coverscope/internal/settings"
)

// supportedReportTypes defines the available report formats
var supportedReportTypes = map[string]bool{
	"TextSummary": true,
	"Html":        true,
}

// validateReportTypes checks if all requested report types are supported
func validateReportTypes(types []string) error {
	for _, t := range types {
		if !supportedReportTypes[t] {
			return fmt.Errorf("unsupported report type: %s", t)
		}
	}
	return nil
}

// cliOptions collects the raw flag values before they are merged with the
// optional config file.
type cliOptions struct {
	reports         string
	output          string
	reportTypes     string
	sourceDirs      string
	assemblyFilters string
	classFilters    string
	fileFilters     string
	tag             string
	title           string
	verbosity       string
	configFile      string
	inlineCSS       bool
}

func parseFlags() (*cliOptions, map[string]bool) {
	opts := &cliOptions{}
	flag.StringVar(&opts.reports, "report", "", "Coverage report file paths or patterns (semicolon-separated, e.g. \"coverage/*.xml;more.xml\")")
	flag.StringVar(&opts.output, "output", "coverage-report", "Output directory for generated reports")
	flag.StringVar(&opts.reportTypes, "reporttypes", "TextSummary", "Report types to generate (comma-separated: TextSummary,Html)")
	flag.StringVar(&opts.sourceDirs, "sourcedirs", "", "Source directories for resolving file paths (comma-separated)")
	flag.StringVar(&opts.assemblyFilters, "assemblyfilters", "", "Assembly filters (semicolon-separated +include/-exclude patterns)")
	flag.StringVar(&opts.classFilters, "classfilters", "", "Class filters (semicolon-separated +include/-exclude patterns)")
	flag.StringVar(&opts.fileFilters, "filefilters", "", "File filters (semicolon-separated +include/-exclude patterns)")
	flag.StringVar(&opts.tag, "tag", "", "Optional tag (e.g. build number)")
	flag.StringVar(&opts.title, "title", "", "Optional report title. Default: 'Coverage Report'")
	flag.StringVar(&opts.verbosity, "verbosity", "Info", "Logging verbosity level (Verbose, Info, Warning, Error, Off)")
	flag.StringVar(&opts.configFile, "config", "", "Path to a TOML config file. Default: "+reportconfig.DefaultConfigFile+" if present")
	flag.BoolVar(&opts.inlineCSS, "inlinecss", false, "Inline the stylesheet into each HTML page instead of writing style.css")
	flag.Parse()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	return opts, setFlags
}

// resolvedOptions is the effective configuration after merging explicit
// flags over the config file over the flag defaults.
type resolvedOptions struct {
	reportPatterns  []string
	output          string
	reportTypes     []string
	sourceDirs      []string
	assemblyFilters []string
	classFilters    []string
	fileFilters     []string
	tag             string
	title           string
	verbosity       string
	inlineCSS       bool
}

// splitAndTrim splits a flag value on sep and drops empty entries.
func splitAndTrim(value, sep string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(value, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// mergeOptions applies config file values for every key the file defines
// and the command line does not override.
func mergeOptions(opts *cliOptions, setFlags map[string]bool, fileCfg *reportconfig.FileConfig, meta toml.MetaData) *resolvedOptions {
	resolved := &resolvedOptions{
		reportPatterns:  splitAndTrim(opts.reports, ";"),
		output:          opts.output,
		reportTypes:     splitAndTrim(opts.reportTypes, ","),
		sourceDirs:      splitAndTrim(opts.sourceDirs, ","),
		assemblyFilters: splitAndTrim(opts.assemblyFilters, ";"),
		classFilters:    splitAndTrim(opts.classFilters, ";"),
		fileFilters:     splitAndTrim(opts.fileFilters, ";"),
		tag:             opts.tag,
		title:           opts.title,
		verbosity:       opts.verbosity,
		inlineCSS:       opts.inlineCSS,
	}
	if fileCfg == nil {
		return resolved
	}

	if !setFlags["report"] && meta.IsDefined("reports") {
		resolved.reportPatterns = fileCfg.Reports
	}
	if !setFlags["output"] && meta.IsDefined("output") {
		resolved.output = fileCfg.Output
	}
	if !setFlags["reporttypes"] && meta.IsDefined("reporttypes") {
		resolved.reportTypes = fileCfg.ReportTypes
	}
	if !setFlags["sourcedirs"] && meta.IsDefined("sourcedirs") {
		resolved.sourceDirs = fileCfg.SourceDirs
	}
	if !setFlags["assemblyfilters"] && meta.IsDefined("assemblyfilters") {
		resolved.assemblyFilters = fileCfg.AssemblyFilters
	}
	if !setFlags["classfilters"] && meta.IsDefined("classfilters") {
		resolved.classFilters = fileCfg.ClassFilters
	}
	if !setFlags["filefilters"] && meta.IsDefined("filefilters") {
		resolved.fileFilters = fileCfg.FileFilters
	}
	if !setFlags["tag"] && meta.IsDefined("tag") {
		resolved.tag = fileCfg.Tag
	}
	if !setFlags["title"] && meta.IsDefined("title") {
		resolved.title = fileCfg.Title
	}
	if !setFlags["verbosity"] && meta.IsDefined("verbosity") {
		resolved.verbosity = fileCfg.Verbosity
	}
	if !setFlags["inlinecss"] && meta.IsDefined("inlinecss") {
		resolved.inlineCSS = fileCfg.InlineCSS
	}
	return resolved
}

// expandReportFilePatterns resolves the configured glob patterns into a
// deduplicated list of existing report files. Patterns that error or match
// nothing are collected as invalid.
func expandReportFilePatterns(patterns []string) (reportFiles []string, invalidPatterns []string) {
	seenFiles := make(map[string]struct{})

	for _, pattern := range patterns {
		expandedFiles, err := glob.GetFiles(pattern)
		if err != nil {
			slog.Warn("Failed to expand report file pattern.", "pattern", pattern, "error", err)
			invalidPatterns = append(invalidPatterns, pattern)
			continue
		}
		if len(expandedFiles) == 0 {
			slog.Warn("No files found for report file pattern.", "pattern", pattern)
			invalidPatterns = append(invalidPatterns, pattern)
			continue
		}
		for _, file := range expandedFiles {
			absFile, err := filepath.Abs(file)
			if err != nil {
				absFile = file
			}
			if _, found := seenFiles[absFile]; found {
				continue
			}
			if stat, err := os.Stat(absFile); err != nil {
				slog.Warn("Could not stat file from pattern.", "pattern", pattern, "file", absFile, "error", err)
				invalidPatterns = append(invalidPatterns, file)
			} else if !stat.IsDir() {
				reportFiles = append(reportFiles, absFile)
				seenFiles[absFile] = struct{}{}
			}
		}
	}
	return reportFiles, invalidPatterns
}

// parseReportFiles runs every report file through its detected parser.
// Unsupported or unparseable files are skipped with a warning so one bad
// file does not discard the rest of the run.
func parseReportFiles(reportFiles []string, config parser.ParserConfig) []*parser.ParserResult {
	var results []*parser.ParserResult
	for _, file := range reportFiles {
		p, err := parser.FindParserForFile(file)
		if err != nil {
			slog.Warn("Skipping unsupported report file.", "file", file, "error", err)
			continue
		}
		slog.Info("Processing report file...", "file", file, "parser", p.Name())
		result, err := p.Parse(file, config)
		if err != nil {
			slog.Warn("Failed to parse report file.", "file", file, "parser", p.Name(), "error", err)
			continue
		}
		results = append(results, result)
	}
	return results
}

// generateReports renders the merged summary once per requested report type.
func generateReports(summary *model.SummaryResult, resolved *resolvedOptions, reportCtx reporting.IReportContext) error {
	for _, reportType := range resolved.reportTypes {
		slog.Info("Generating report...", "type", reportType)
		switch reportType {
		case "TextSummary":
			builder := textsummary.NewTextReportBuilder(resolved.output)
			if err := builder.CreateReport(summary); err != nil {
				return fmt.Errorf("generating TextSummary report: %w", err)
			}
		case "Html":
			builder := htmlreport.NewHtmlReportBuilder(resolved.output, reportCtx)
			builder.InlineCSS = resolved.inlineCSS
			if err := builder.CreateReport(summary); err != nil {
				return fmt.Errorf("generating Html report: %w", err)
			}
		}
	}
	return nil
}

func main() {
	start := time.Now()

	opts, setFlags := parseFlags()

	configPath := opts.configFile
	if configPath == "" {
		if _, err := os.Stat(reportconfig.DefaultConfigFile); err == nil {
			configPath = reportconfig.DefaultConfigFile
		}
	}

	var fileCfg *reportconfig.FileConfig
	var meta toml.MetaData
	if configPath != "" {
		var err error
		fileCfg, meta, err = reportconfig.LoadFileConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	resolved := mergeOptions(opts, setFlags, fileCfg, meta)

	verbosity, err := logging.ParseVerbosity(resolved.verbosity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Configure(os.Stderr, verbosity)

	if len(resolved.reportPatterns) == 0 {
		fmt.Println("Usage: coverscope -report <file/pattern>[;<file/pattern>...] [-output <dir>] ...")
		fmt.Println("\nReport types:")
		for rt := range supportedReportTypes {
			fmt.Printf("  %s\n", rt)
		}
		fmt.Println("\nVerbosity levels: Verbose, Info, Warning, Error, Off")
		os.Exit(1)
	}

	if err := validateReportTypes(resolved.reportTypes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Println("\nSupported report types:")
		for rt := range supportedReportTypes {
			fmt.Printf("  %s\n", rt)
		}
		os.Exit(1)
	}

	reportFiles, invalidPatterns := expandReportFilePatterns(resolved.reportPatterns)
	if len(reportFiles) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no valid report files found after expanding patterns.")
		if len(invalidPatterns) > 0 {
			fmt.Fprintf(os.Stderr, "Patterns that yielded no files or errors: %s\n", strings.Join(invalidPatterns, ", "))
		}
		os.Exit(1)
	}

	title := resolved.title
	if title == "" {
		title = "Coverage Report"
	}

	reportConfig := reportconfig.NewReportConfiguration(
		reportFiles,
		resolved.output,
		resolved.sourceDirs,
		resolved.reportTypes,
		resolved.assemblyFilters,
		resolved.classFilters,
		resolved.fileFilters,
		resolved.tag,
		title,
		verbosity,
		invalidPatterns,
	)

	currentSettings := settings.NewSettings()
	reportCtx := reporting.NewReportContext(reportConfig, currentSettings)

	parserConfig, err := reportconfig.NewParserConfig(reportConfig, currentSettings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	results := parseReportFiles(reportFiles, parserConfig)
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "Error: none of the report files could be parsed.")
		os.Exit(1)
	}

	summary, err := analyzer.MergeParserResults(results)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to merge coverage results: %v\n", err)
		os.Exit(1)
	}

	if err := generateReports(summary, resolved, reportCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate reports: %v\n", err)
		os.Exit(1)
	}

	slog.Info("Report generation completed.", "duration", fmt.Sprintf("%.2fs", time.Since(start).Seconds()))
}
