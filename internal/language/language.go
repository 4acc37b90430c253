// Package language selects per-language display hints for rendered source
// files. Processors register themselves from init() and are picked by file
// extension, with a guaranteed fallback.
package language

// Processor supplies the language-specific hints report builders need when
// presenting a source file.
type Processor interface {
	// Name returns the unique, human-readable name of the processor (e.g., "C#").
	Name() string

	// Detect checks if this processor should be used for a given source file path.
	Detect(filePath string) bool

	// HighlightClass returns the CSS class attached to rendered source blocks.
	HighlightClass() string

	// FormatDisplayName transforms a raw type or member name into a
	// display-friendly version, e.g. "List`1" into "List<T>".
	FormatDisplayName(rawName string) string
}

var registeredProcessors []Processor

// RegisterProcessor adds a processor to the list of available processors.
// This should be called by each processor implementation in its init() function.
func RegisterProcessor(p Processor) {
	registeredProcessors = append(registeredProcessors, p)
}

// FindProcessorForFile iterates through registered processors to find one
// that can handle the given file path. It is guaranteed to return a valid
// processor, falling back to the "Default" processor.
func FindProcessorForFile(filePath string) Processor {
	var defaultProcessor Processor

	for _, p := range registeredProcessors {
		if p.Name() == "Default" {
			defaultProcessor = p
			continue
		}
		if p.Detect(filePath) {
			return p
		}
	}

	if defaultProcessor != nil {
		return defaultProcessor
	}

	panic("FATAL: Default language processor was not registered.")
}
