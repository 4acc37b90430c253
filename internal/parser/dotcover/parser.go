package dotcover

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/coverscope/coverscope/internal/inputxml"
	"github.com/coverscope/coverscope/internal/parser"
)

// Typed failures of the dotCover parser. Callers distinguish them with
// errors.Is.
var (
	// ErrInvalidInput marks calls without usable report data, e.g. an empty file.
	ErrInvalidInput = errors.New("invalid dotCover input")
	// ErrMalformedReport marks reports that violate the dotCover schema, e.g.
	// non-numeric line attributes or statements referencing unknown file ids.
	ErrMalformedReport = errors.New("malformed dotCover report")
)

// DotCoverParser implements the parser.IParser interface for dotCover
// detailed XML reports.
type DotCoverParser struct {
}

// NewDotCoverParser creates a new DotCoverParser.
func NewDotCoverParser() parser.IParser {
	return &DotCoverParser{}
}

func init() {
	parser.RegisterParser(NewDotCoverParser())
}

// Name returns the name of the parser.
func (dp *DotCoverParser) Name() string {
	return "DotCover"
}

// SupportsFile checks if the given file is likely a dotCover XML report.
// The root element of dotCover reports is the unspecific "Root", so the
// DotCoverVersion attribute is required to tell them apart from other tools.
func (dp *DotCoverParser) SupportsFile(filePath string) bool {
	if !strings.HasSuffix(strings.ToLower(filePath), ".xml") {
		return false
	}
	f, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer f.Close()
	decoder := xml.NewDecoder(f)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return false
		}
		if se, ok := token.(xml.StartElement); ok {
			if se.Name.Local != "Root" {
				return false
			}
			for _, attr := range se.Attr {
				if attr.Name.Local == "DotCoverVersion" {
					return true
				}
			}
			return false
		}
	}
	return false
}

// Parse processes the dotCover XML file and transforms it into a common
// ParserResult. Filtering and the grouping of compiler generated types happen
// during processing, so the returned assemblies only contain classes a user
// would recognize from source code.
func (dp *DotCoverParser) Parse(filePath string, config parser.ParserConfig) (*parser.ParserResult, error) {
	rawReport, err := dp.loadAndUnmarshalDotCoverXML(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dotCover XML from %s: %w", filePath, err)
	}

	orchestrator := newProcessingOrchestrator(rawReport, config)
	assemblies, err := orchestrator.processReport()
	if err != nil {
		return nil, fmt.Errorf("failed to process dotCover report %s: %w", filePath, err)
	}

	// dotCover reports carry no timestamp of their own, the file modification
	// time is the closest stand-in.
	var minTime, maxTime *time.Time
	if info, statErr := os.Stat(filePath); statErr == nil {
		modTime := info.ModTime()
		minTime, maxTime = &modTime, &modTime
	}

	return &parser.ParserResult{
		Assemblies:        assemblies,
		SourceDirectories: config.SourceDirectories(),
		ParserName:        dp.Name(),
		MinimumTimeStamp:  minTime,
		MaximumTimeStamp:  maxTime,
	}, nil
}

func (dp *DotCoverParser) loadAndUnmarshalDotCoverXML(path string) (*inputxml.RootXML, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: report file is empty", ErrInvalidInput)
	}

	var rawReport inputxml.RootXML
	if err := xml.Unmarshal(data, &rawReport); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReport, err)
	}
	return &rawReport, nil
}
