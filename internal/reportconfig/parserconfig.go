package reportconfig

import (
	"fmt"

	"github.com/coverscope/coverscope/internal/parser"
	"github.com/coverscope/coverscope/internal/parser/filtering"
	"github.com/coverscope/coverscope/internal/settings"
)

// parserConfig is the compiled, parser-facing view of a report
// configuration: glob filter lists turned into matchers.
type parserConfig struct {
	sourceDirs     []string
	assemblyFilter filtering.IFilter
	classFilter    filtering.IFilter
	fileFilter     filtering.IFilter
	settings       *settings.Settings
}

func (c *parserConfig) SourceDirectories() []string        { return c.sourceDirs }
func (c *parserConfig) AssemblyFilters() filtering.IFilter { return c.assemblyFilter }
func (c *parserConfig) ClassFilters() filtering.IFilter    { return c.classFilter }
func (c *parserConfig) FileFilters() filtering.IFilter     { return c.fileFilter }
func (c *parserConfig) Settings() *settings.Settings       { return c.settings }

// NewParserConfig compiles the raw filter patterns of a report configuration
// into the matcher-backed view the parsers consume. The file filter matches
// with OS independent path separators because report paths may come from a
// different platform than the one the tool runs on.
func NewParserConfig(config IReportConfiguration, s *settings.Settings) (parser.ParserConfig, error) {
	assemblyFilter, err := filtering.NewDefaultFilter(config.AssemblyFilters())
	if err != nil {
		return nil, fmt.Errorf("invalid assembly filter: %w", err)
	}
	classFilter, err := filtering.NewDefaultFilter(config.ClassFilters())
	if err != nil {
		return nil, fmt.Errorf("invalid class filter: %w", err)
	}
	fileFilter, err := filtering.NewDefaultFilter(config.FileFilters(), true)
	if err != nil {
		return nil, fmt.Errorf("invalid file filter: %w", err)
	}
	if s == nil {
		s = settings.NewSettings()
	}
	return &parserConfig{
		sourceDirs:     config.SourceDirectories(),
		assemblyFilter: assemblyFilter,
		classFilter:    classFilter,
		fileFilter:     fileFilter,
		settings:       s,
	}, nil
}
