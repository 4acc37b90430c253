package analyzer

import (
	"sort"

	"github.com/coverscope/coverscope/internal/model"
)

// mergeAssembly folds src into dst, matching classes by name. Classes only
// present in src are cloned and appended.
func mergeAssembly(dst, src *model.Assembly) {
	for i := range src.Classes {
		incoming := &src.Classes[i]
		target := -1
		for j := range dst.Classes {
			if dst.Classes[j].Name == incoming.Name {
				target = j
				break
			}
		}
		if target == -1 {
			dst.Classes = append(dst.Classes, cloneClass(incoming))
			continue
		}
		mergeClass(&dst.Classes[target], incoming)
	}
}

// mergeClass folds src into dst, matching files by path.
func mergeClass(dst, src *model.Class) {
	if dst.DisplayName == "" {
		dst.DisplayName = src.DisplayName
	}
	for i := range src.Files {
		incoming := &src.Files[i]
		target := -1
		for j := range dst.Files {
			if dst.Files[j].Path == incoming.Path {
				target = j
				break
			}
		}
		if target == -1 {
			dst.Files = append(dst.Files, cloneCodeFile(incoming))
			continue
		}
		mergeCodeFile(&dst.Files[target], incoming)
	}
}

// mergeCodeFile combines two coverage views of the same file. Lines are
// merged position by position, code elements are deduplicated by full name
// and first line, keeping the span recorded first.
func mergeCodeFile(dst, src *model.CodeFile) {
	dst.Lines = mergeLines(dst.Lines, src.Lines)

	type elementKey struct {
		fullName  string
		firstLine int
	}
	known := make(map[elementKey]struct{}, len(dst.CodeElements))
	for _, element := range dst.CodeElements {
		known[elementKey{element.FullName, element.FirstLine}] = struct{}{}
	}
	for _, element := range src.CodeElements {
		key := elementKey{element.FullName, element.FirstLine}
		if _, ok := known[key]; ok {
			continue
		}
		known[key] = struct{}{}
		dst.CodeElements = append(dst.CodeElements, element)
	}

	if dst.TotalLines == 0 {
		dst.TotalLines = src.TotalLines
	}
}

// mergeLines combines two per-line coverage slices. The result spans the
// longer of the two. A line is visited when either side visited it, and
// coverable when either side could cover it.
func mergeLines(dst, src []model.Line) []model.Line {
	if len(src) > len(dst) {
		grown := make([]model.Line, len(src))
		copy(grown, dst)
		for i := len(dst); i < len(src); i++ {
			grown[i] = model.Line{Number: i + 1, Hits: -1}
		}
		dst = grown
	}
	for i := range src {
		dst[i].Hits = mergeHits(dst[i].Hits, src[i].Hits)
		dst[i].VisitStatus = max(dst[i].VisitStatus, src[i].VisitStatus)
	}
	return dst
}

// mergeHits combines two hit counts under the -1/0/1 convention: -1 yields
// to any coverable value, and visits saturate at 1.
func mergeHits(a, b int) int {
	if a == -1 {
		return b
	}
	if b == -1 {
		return a
	}
	return min(a+b, 1)
}

// normalizeAssembly restores the sort order merging may have disturbed:
// classes by name, files by path, code elements by first line and full name.
func normalizeAssembly(assembly *model.Assembly) {
	sort.Slice(assembly.Classes, func(i, j int) bool {
		return assembly.Classes[i].Name < assembly.Classes[j].Name
	})
	for i := range assembly.Classes {
		class := &assembly.Classes[i]
		sort.Slice(class.Files, func(a, b int) bool {
			return class.Files[a].Path < class.Files[b].Path
		})
		for j := range class.Files {
			elements := class.Files[j].CodeElements
			sort.Slice(elements, func(a, b int) bool {
				if elements[a].FirstLine != elements[b].FirstLine {
					return elements[a].FirstLine < elements[b].FirstLine
				}
				return elements[a].FullName < elements[b].FullName
			})
		}
	}
}

func cloneAssembly(assembly *model.Assembly) model.Assembly {
	clone := *assembly
	clone.Classes = make([]model.Class, len(assembly.Classes))
	for i := range assembly.Classes {
		clone.Classes[i] = cloneClass(&assembly.Classes[i])
	}
	return clone
}

func cloneClass(class *model.Class) model.Class {
	clone := *class
	clone.Files = make([]model.CodeFile, len(class.Files))
	for i := range class.Files {
		clone.Files[i] = cloneCodeFile(&class.Files[i])
	}
	return clone
}

// cloneCodeFile copies a file view so that merging never mutates the slices
// of the parser result it came from.
func cloneCodeFile(file *model.CodeFile) model.CodeFile {
	clone := *file
	clone.Lines = append([]model.Line(nil), file.Lines...)
	clone.CodeElements = append([]model.CodeElement(nil), file.CodeElements...)
	return clone
}
