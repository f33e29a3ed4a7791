package layout

import (
	"fmt"

	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// Filter selects which levels are drawn: FilterAll or a single defect level.
type Filter string

// FilterAll admits every defect level.
const FilterAll Filter = "all"

// ParseFilter converts s to a Filter. The empty string means FilterAll.
// "pass" is rejected because passes are never drawn.
func ParseFilter(s string) (Filter, error) {
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	l, err := report.ParseLevel(s)
	if err != nil {
		return "", fmt.Errorf("invalid severity filter: %w", err)
	}
	if l == report.LevelPass {
		return "", fmt.Errorf("invalid severity filter: %q is not a defect level", s)
	}
	return Filter(l), nil
}

// Admits reports whether findings at level l pass the filter.
func (f Filter) Admits(l report.Level) bool {
	return f == FilterAll || f == "" || report.Level(f) == l
}

// FilterFindings returns, in input order, the findings worth laying out:
// not a pass, admitted by filter, and located on the screenshot.
//
// Bounds without location data (the all-zero box, or any negative field)
// are dropped silently. Tiny boxes are kept here; whether they are drawn is
// decided later by Geometry.Drawable.
func FilterFindings(findings []report.Finding, filter Filter) []report.Finding {
	out := make([]report.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Level == report.LevelPass {
			continue
		}
		if !filter.Admits(f.Level) {
			continue
		}
		if !f.Bounds.HasLocation() {
			continue
		}
		out = append(out, f)
	}
	return out
}
