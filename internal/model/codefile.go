package model

// LineVisitStatus is the coverage verdict for a single physical line.
type LineVisitStatus int

const (
	// NotCoverable marks lines no statement ever touched.
	NotCoverable LineVisitStatus = iota
	// NotVisited marks coverable lines with zero recorded visits.
	NotVisited
	// Visited marks lines covered by at least one visited statement.
	Visited
)

func (s LineVisitStatus) String() string {
	switch s {
	case Visited:
		return "Visited"
	case NotVisited:
		return "NotVisited"
	default:
		return "NotCoverable"
	}
}

// Line is the per-line coverage record of a CodeFile.
//
// Hits uses the same convention as the coverage snapshot: -1 not coverable,
// 0 coverable but never visited, 1 visited (clamped, overlapping statements
// never push it higher). Hits and VisitStatus are filled by the same merge
// pass and always agree.
type Line struct {
	Number      int
	Hits        int
	VisitStatus LineVisitStatus
	Content     string
}

// CodeElementType classifies a CodeElement.
type CodeElementType int

const (
	MethodElementType CodeElementType = iota
	PropertyElementType
)

// CodeElement is a named method or property with its inclusive line span
// within one file. Statements of the same method are merged into a single
// span: FirstLine is the minimum statement start, LastLine the maximum
// statement end, over only the statements located in the owning file.
type CodeElement struct {
	Name      string
	FullName  string
	Type      CodeElementType
	FirstLine int
	LastLine  int
}

// CodeFile is the per-file coverage view of a class. Lines holds one entry
// per physical line from 1 through the highest statement end line; lines in
// between that no statement touched stay NotCoverable. TotalLines is the
// physical length of the source file when it could be resolved, otherwise 0.
type CodeFile struct {
	Path         string
	Lines        []Line
	CodeElements []CodeElement
	TotalLines   int
}

// CoverableLines returns how many lines of the file can be covered at all.
func (f *CodeFile) CoverableLines() int {
	count := 0
	for i := range f.Lines {
		if f.Lines[i].Hits >= 0 {
			count++
		}
	}
	return count
}

// CoveredLines returns how many coverable lines were visited.
func (f *CodeFile) CoveredLines() int {
	count := 0
	for i := range f.Lines {
		if f.Lines[i].Hits > 0 {
			count++
		}
	}
	return count
}

func (f *CodeFile) CoverageQuota() *float64 {
	return quota(f.CoveredLines(), f.CoverableLines())
}

// ElementQuota derives the line coverage percentage of a single code element
// by scanning the file's lines inside the element's span. Returns nil when
// the span contains no coverable lines.
func (f *CodeFile) ElementQuota(element CodeElement) *float64 {
	covered, coverable := 0, 0
	for i := range f.Lines {
		line := &f.Lines[i]
		if line.Number < element.FirstLine || line.Number > element.LastLine {
			continue
		}
		if line.Hits >= 0 {
			coverable++
			if line.Hits > 0 {
				covered++
			}
		}
	}
	return quota(covered, coverable)
}
