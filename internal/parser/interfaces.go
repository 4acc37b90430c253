package parser

import (
	"time"

	"github.com/coverscope/coverscope/internal/model"
)

// ParserResult holds the processed data from a single coverage report file.
type ParserResult struct {
	Assemblies        []model.Assembly
	SourceDirectories []string
	ParserName        string
	MinimumTimeStamp  *time.Time
	MaximumTimeStamp  *time.Time
}

// IParser defines the contract for all coverage report parsers.
type IParser interface {
	Name() string
	SupportsFile(filePath string) bool
	Parse(filePath string, config ParserConfig) (*ParserResult, error)
}
