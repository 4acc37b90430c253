package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFile() CodeFile {
	return CodeFile{
		Path: "calc.cs",
		Lines: []Line{
			{Number: 1, Hits: -1, VisitStatus: NotCoverable},
			{Number: 2, Hits: 1, VisitStatus: Visited},
			{Number: 3, Hits: 0, VisitStatus: NotVisited},
			{Number: 4, Hits: 1, VisitStatus: Visited},
		},
		CodeElements: []CodeElement{
			{Name: "Add()", FullName: "Add()", Type: MethodElementType, FirstLine: 2, LastLine: 3},
		},
	}
}

func TestCodeFileDerivedCounts(t *testing.T) {
	file := testFile()

	assert.Equal(t, 3, file.CoverableLines())
	assert.Equal(t, 2, file.CoveredLines())

	q := file.CoverageQuota()
	require.NotNil(t, q)
	assert.InDelta(t, 66.666, *q, 0.001)
}

func TestCodeFileCoverageQuotaNilWithoutCoverableLines(t *testing.T) {
	file := CodeFile{Lines: []Line{{Number: 1, Hits: -1, VisitStatus: NotCoverable}}}
	assert.Nil(t, file.CoverageQuota())

	empty := CodeFile{}
	assert.Nil(t, empty.CoverageQuota())
}

func TestElementQuotaScansOnlySpan(t *testing.T) {
	file := testFile()

	q := file.ElementQuota(file.CodeElements[0])
	require.NotNil(t, q)
	assert.InDelta(t, 50.0, *q, 0.001)

	outside := CodeElement{FirstLine: 10, LastLine: 20}
	assert.Nil(t, file.ElementQuota(outside))
}

func TestAggregationRollsUpThroughHierarchy(t *testing.T) {
	summary := SummaryResult{
		ParserName: "DotCover",
		Assemblies: []Assembly{
			{
				Name: "App",
				Classes: []Class{
					{Name: "App.Calc", Files: []CodeFile{testFile()}},
					{Name: "App.Empty"},
				},
			},
		},
	}

	assert.Equal(t, 2, summary.LinesCovered())
	assert.Equal(t, 3, summary.LinesValid())

	cls := &summary.Assemblies[0].Classes[1]
	assert.Equal(t, 0, cls.LinesValid())
	assert.Nil(t, cls.CoverageQuota())
}

func TestLineVisitStatusString(t *testing.T) {
	assert.Equal(t, "Visited", Visited.String())
	assert.Equal(t, "NotVisited", NotVisited.String())
	assert.Equal(t, "NotCoverable", NotCoverable.String())
}
