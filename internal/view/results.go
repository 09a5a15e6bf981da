package view

import (
	"regexp"
	"strconv"

	"github.com/samber/lo"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

// AlertTier is the display tier for an alert color.
type AlertTier struct {
	Color string `json:"color"`
	Label string `json:"label"`
	Known bool   `json:"known"`
}

// TierFor maps an alert color to its tier. Unmapped values take the Unknown
// arm; this lookup never fails.
func TierFor(color internal.AlertColor) AlertTier {
	switch color {
	case internal.AlertRed:
		return AlertTier{Color: "red", Label: "Diabetic", Known: true}
	case internal.AlertYellow:
		return AlertTier{Color: "yellow", Label: "Prediabetic", Known: true}
	case internal.AlertGreen:
		return AlertTier{Color: "green", Label: "Non-Diabetic", Known: true}
	default:
		return AlertTier{Color: "gray", Label: "Unknown", Known: false}
	}
}

// bibliographyURLs resolves citation url-keys to external documents.
// Citations with an unknown key render without a usable link.
var bibliographyURLs = map[string]string{
	"ADA":  "https://ia600704.us.archive.org/21/items/glyco_rag/ADA.pdf",
	"vRAG": "https://ia800704.us.archive.org/21/items/glyco_rag/VisualRAG.pdf",
}

// Segment is one run of analysis text. Citation segments correspond to
// inline markers of the literal form [<digits>] and open the bibliography
// when clicked.
type Segment struct {
	Text       string `json:"text"`
	Citation   bool   `json:"citation"`
	CitationID int    `json:"citation_id,omitempty"`
}

var citationMarker = regexp.MustCompile(`\[(\d+)\]`)

// SegmentCitations splits analysis text around [n] markers, keeping the
// markers as clickable segments.
func SegmentCitations(text string) []Segment {
	var segments []Segment
	last := 0
	for _, m := range citationMarker.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		id, _ := strconv.Atoi(text[m[2]:m[3]])
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Citation: true, CitationID: id})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

type Slide struct {
	ParameterName string    `json:"parameter_name"`
	Segments      []Segment `json:"segments"`
}

type BibliographyEntry struct {
	ID        int    `json:"id"`
	Reference string `json:"reference"`
	URL       string `json:"url,omitempty"`
	HasURL    bool   `json:"has_url"`
}

// ResultsView is everything the dashboard needs to render a stored
// diagnostic response. Building it performs no I/O.
type ResultsView struct {
	Summary                 string              `json:"summary"`
	FinalDiagnosis          string              `json:"final_diagnosis"`
	GaugePercent            int                 `json:"gauge_percent"`
	ConfidenceJustification string              `json:"confidence_justification"`
	Alert                   AlertTier           `json:"alert"`
	Slides                  []Slide             `json:"slides"`
	SlideIndex              int                 `json:"slide_index"`
	SlideCount              int                 `json:"slide_count"`
	AnalysisPlaceholder     string              `json:"analysis_placeholder,omitempty"`
	Bibliography            []BibliographyEntry `json:"bibliography"`
	CanReDiagnose           bool                `json:"can_rediagnose"`
}

// ClampSlide keeps the carousel index valid for any navigation input; no
// wraparound at either end.
func ClampSlide(index, length int) int {
	if length <= 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index > length-1 {
		return length - 1
	}
	return index
}

// GaugePercent maps the 0-100 confidence score linearly to a fill
// proportion, clamped at both ends.
func GaugePercent(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Build assembles the results view for one slide position.
func Build(resp *internal.DiagnosticResponse, slideIndex int) ResultsView {
	v := ResultsView{
		Summary:                 resp.Summary,
		FinalDiagnosis:          resp.FinalDiagnosis,
		GaugePercent:            GaugePercent(resp.ConfidenceScore.Score),
		ConfidenceJustification: resp.ConfidenceScore.Justification,
		Alert:                   TierFor(resp.AlertColor),
		SlideIndex:              ClampSlide(slideIndex, len(resp.Analysis)),
		SlideCount:              len(resp.Analysis),
		CanReDiagnose:           true,
	}

	v.Slides = lo.Map(resp.Analysis, func(item internal.ParameterAnalysis, _ int) Slide {
		return Slide{
			ParameterName: item.ParameterName,
			Segments:      SegmentCitations(item.AnalysisText),
		}
	})
	if len(v.Slides) == 0 {
		v.AnalysisPlaceholder = "No detailed analysis provided."
	}

	v.Bibliography = lo.Map(resp.Citations, func(c internal.Citation, _ int) BibliographyEntry {
		url, ok := bibliographyURLs[c.URL]
		return BibliographyEntry{
			ID:        c.ID,
			Reference: c.Reference,
			URL:       url,
			HasURL:    ok,
		}
	})

	return v
}
