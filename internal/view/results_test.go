package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

func TestTierFor(t *testing.T) {
	assert.Equal(t, "Diabetic", TierFor(internal.AlertRed).Label)
	assert.Equal(t, "Prediabetic", TierFor(internal.AlertYellow).Label)
	assert.Equal(t, "Non-Diabetic", TierFor(internal.AlertGreen).Label)

	// unmapped colors fall back to Unknown instead of failing
	tier := TierFor(internal.AlertColor("purple"))
	assert.Equal(t, "Unknown", tier.Label)
	assert.False(t, tier.Known)
}

func TestClampSlide(t *testing.T) {
	assert.Equal(t, 0, ClampSlide(-1, 5))
	assert.Equal(t, 0, ClampSlide(0, 5))
	assert.Equal(t, 4, ClampSlide(4, 5))
	assert.Equal(t, 4, ClampSlide(99, 5))
	assert.Equal(t, 0, ClampSlide(3, 0))
	assert.Equal(t, 0, ClampSlide(-7, 0))
}

func TestGaugePercent(t *testing.T) {
	assert.Equal(t, 0, GaugePercent(-5))
	assert.Equal(t, 42, GaugePercent(42))
	assert.Equal(t, 100, GaugePercent(250))
}

func TestSegmentCitations(t *testing.T) {
	segments := SegmentCitations("See [1] for detail")
	assert.Len(t, segments, 3)
	assert.Equal(t, Segment{Text: "See "}, segments[0])
	assert.Equal(t, Segment{Text: "[1]", Citation: true, CitationID: 1}, segments[1])
	assert.Equal(t, Segment{Text: " for detail"}, segments[2])
}

func TestSegmentCitations_NoMarkers(t *testing.T) {
	segments := SegmentCitations("no markers here")
	assert.Len(t, segments, 1)
	assert.False(t, segments[0].Citation)
}

func TestSegmentCitations_AdjacentAndMultiDigit(t *testing.T) {
	segments := SegmentCitations("[1][12] end")
	assert.Len(t, segments, 3)
	assert.Equal(t, 1, segments[0].CitationID)
	assert.Equal(t, 12, segments[1].CitationID)
	assert.Equal(t, " end", segments[2].Text)
}

func TestBuild(t *testing.T) {
	resp := &internal.DiagnosticResponse{
		Summary:        "summary",
		FinalDiagnosis: "final",
		ConfidenceScore: internal.ConfidenceScore{
			Score:         87,
			Justification: "because",
		},
		AlertColor: internal.AlertYellow,
		Analysis: []internal.ParameterAnalysis{
			{ParameterName: "HbA1c", AnalysisText: "Elevated, see [1] for detail"},
			{ParameterName: "BMI", AnalysisText: "Normal range"},
		},
		Citations: []internal.Citation{
			{ID: 1, Reference: "A", URL: "ADA"},
			{ID: 2, Reference: "B", URL: "missing-key"},
		},
	}

	v := Build(resp, 5)

	assert.Equal(t, 87, v.GaugePercent)
	assert.Equal(t, "because", v.ConfidenceJustification)
	assert.Equal(t, "Prediabetic", v.Alert.Label)
	assert.Equal(t, 1, v.SlideIndex) // clamped to last slide
	assert.Equal(t, 2, v.SlideCount)
	assert.Empty(t, v.AnalysisPlaceholder)
	assert.True(t, v.CanReDiagnose)

	// one clickable [1] marker inside the first slide
	var citationSegments []Segment
	for _, s := range v.Slides[0].Segments {
		if s.Citation {
			citationSegments = append(citationSegments, s)
		}
	}
	assert.Len(t, citationSegments, 1)
	assert.Equal(t, "[1]", citationSegments[0].Text)

	// bibliography keeps order and resolves known url-keys only
	assert.Len(t, v.Bibliography, 2)
	assert.True(t, v.Bibliography[0].HasURL)
	assert.Contains(t, v.Bibliography[0].URL, "ADA.pdf")
	assert.False(t, v.Bibliography[1].HasURL)
	assert.Empty(t, v.Bibliography[1].URL)
}

func TestBuild_EmptyAnalysis(t *testing.T) {
	resp := &internal.DiagnosticResponse{AlertColor: internal.AlertGreen}
	v := Build(resp, 3)
	assert.Equal(t, 0, v.SlideIndex)
	assert.Equal(t, 0, v.SlideCount)
	assert.Equal(t, "No detailed analysis provided.", v.AnalysisPlaceholder)
}
