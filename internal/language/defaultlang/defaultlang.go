// Package defaultlang is the fallback used when no other processor claims a
// source file.
package defaultlang

import (
	"github.com/coverscope/coverscope/internal/language"
)

// DefaultProcessor implements the language.Processor interface. It performs
// no special name formatting.
type DefaultProcessor struct{}

func init() {
	language.RegisterProcessor(NewDefaultProcessor())
}

// NewDefaultProcessor creates a new, stateless DefaultProcessor.
func NewDefaultProcessor() language.Processor {
	return &DefaultProcessor{}
}

// Name returns the unique, human-readable name of the processor.
func (p *DefaultProcessor) Name() string {
	return "Default"
}

// Detect always returns false. The factory logic is responsible for choosing
// this processor as a fallback if no other specific processor detects a match.
func (p *DefaultProcessor) Detect(filePath string) bool {
	return false
}

func (p *DefaultProcessor) HighlightClass() string {
	return "lang-plain"
}

// FormatDisplayName performs no formatting and returns the raw name.
func (p *DefaultProcessor) FormatDisplayName(rawName string) string {
	return rawName
}
