package parser

import (
	"github.com/coverscope/coverscope/internal/parser/filtering"
	"github.com/coverscope/coverscope/internal/settings"
)

// ParserConfig defines the lean configuration required by a parser.
// This consumer-defined interface decouples parsers from the main report configuration.
type ParserConfig interface {
	SourceDirectories() []string
	AssemblyFilters() filtering.IFilter
	ClassFilters() filtering.IFilter
	FileFilters() filtering.IFilter
	Settings() *settings.Settings
}
