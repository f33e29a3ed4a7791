package report

import (
	"encoding/json"
	"fmt"
	"math"
)

// Bounds is an axis-aligned pixel rectangle on the page screenshot.
type Bounds struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Key returns the "left-top-width-height" identity of b.
func (b Bounds) Key() string {
	return fmt.Sprintf("%d-%d-%d-%d", b.Left, b.Top, b.Width, b.Height)
}

// IsZero reports whether b is the all-zero box the checker emits when it has
// no location for an element.
func (b Bounds) IsZero() bool {
	return b.Left == 0 && b.Top == 0 && b.Width == 0 && b.Height == 0
}

// HasLocation reports whether b points at a real region: not the all-zero
// box and no negative field.
func (b Bounds) HasLocation() bool {
	if b.Left < 0 || b.Top < 0 || b.Width < 0 || b.Height < 0 {
		return false
	}
	return !b.IsZero()
}

// UnmarshalJSON accepts fractional coordinates and rounds them to the
// nearest pixel. Missing fields decode as zero.
func (b *Bounds) UnmarshalJSON(data []byte) error {
	var raw struct {
		Left   float64 `json:"left"`
		Top    float64 `json:"top"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid bounds: %w", err)
	}
	b.Left = int(math.Round(raw.Left))
	b.Top = int(math.Round(raw.Top))
	b.Width = int(math.Round(raw.Width))
	b.Height = int(math.Round(raw.Height))
	return nil
}

// Path locates the element in the page.
type Path struct {
	DOM  string `json:"dom"`
	ARIA string `json:"aria,omitempty"`
}

// Finding is one result reported by the checker. Only RuleID, Level and
// Bounds drive the overlay layout; the remaining fields are carried through
// for display.
type Finding struct {
	RuleID      string   `json:"ruleId"`
	Level       Level    `json:"level"`
	Bounds      Bounds   `json:"bounds"`
	Message     string   `json:"message"`
	Snippet     string   `json:"snippet"`
	Path        Path     `json:"path"`
	Help        string   `json:"help"`
	Value       []string `json:"value,omitempty"`
	ReasonID    string   `json:"reasonId,omitempty"`
	MessageArgs []string `json:"messageArgs,omitempty"`
	APIArgs     []string `json:"apiArgs,omitempty"`
	Category    string   `json:"category,omitempty"`
	Ignored     bool     `json:"ignored,omitempty"`
	RuleTime    float64  `json:"ruleTime,omitempty"`
}

// Counts is the per-level tally the checker writes alongside a report.
type Counts struct {
	Ignored                 int `json:"ignored"`
	Violation               int `json:"violation"`
	Recommendation          int `json:"recommendation"`
	Pass                    int `json:"pass"`
	PotentialViolation      int `json:"potentialviolation"`
	PotentialRecommendation int `json:"potentialrecommendation"`
	Manual                  int `json:"manual"`
	Elements                int `json:"elements,omitempty"`
	ElementsViolation       int `json:"elementsViolation,omitempty"`
	ElementsViolationReview int `json:"elementsViolationReview,omitempty"`
}

// Of returns the count recorded for l.
func (c Counts) Of(l Level) int {
	switch l {
	case LevelViolation:
		return c.Violation
	case LevelPotentialViolation:
		return c.PotentialViolation
	case LevelRecommendation:
		return c.Recommendation
	case LevelPotentialRecommendation:
		return c.PotentialRecommendation
	case LevelManual:
		return c.Manual
	case LevelPass:
		return c.Pass
	default:
		return 0
	}
}

// CountLevels tallies findings by level. Ignored findings are counted in
// Ignored as well as under their level.
func CountLevels(findings []Finding) Counts {
	var c Counts
	for _, f := range findings {
		switch f.Level {
		case LevelViolation:
			c.Violation++
		case LevelPotentialViolation:
			c.PotentialViolation++
		case LevelRecommendation:
			c.Recommendation++
		case LevelPotentialRecommendation:
			c.PotentialRecommendation++
		case LevelManual:
			c.Manual++
		case LevelPass:
			c.Pass++
		}
		if f.Ignored {
			c.Ignored++
		}
	}
	return c
}

// PageReport is the JSON document written for one scanned page.
type PageReport struct {
	Results []Finding `json:"results"`
	Counts  *Counts   `json:"counts,omitempty"`
	Summary string    `json:"summary,omitempty"`
}

// LevelCounts returns the report's own counts when present, otherwise a
// tally computed from Results.
func (r *PageReport) LevelCounts() Counts {
	if r.Counts != nil {
		return *r.Counts
	}
	return CountLevels(r.Results)
}
