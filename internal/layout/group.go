package layout

import "github.com/billymcdowell/accessibilty-scanner/internal/report"

// Group is the set of findings sharing one bounding box, drawn as a single
// overlay.
type Group struct {
	// Key is Bounds.Key(); unique within one layout.
	Key string `json:"key"`

	// Bounds is the box every member shares.
	Bounds report.Bounds `json:"bounds"`

	// Issues are the member findings in input order. Never empty.
	Issues []report.Finding `json:"issues"`

	// PrimaryLevel is the most severe level among Issues.
	PrimaryLevel report.Level `json:"primaryLevel"`

	// CascadeIndex is the group's rank inside its collision cluster, 0 when
	// it collides with nothing. Used only to offset rendering.
	CascadeIndex int `json:"cascadeIndex"`
}

// Count returns the number of findings in the group.
func (g Group) Count() int {
	return len(g.Issues)
}

// Contains reports whether f is one of the group's findings. Findings are
// matched on bounds, rule and DOM path.
func (g Group) Contains(f report.Finding) bool {
	if f.Bounds != g.Bounds {
		return false
	}
	for _, issue := range g.Issues {
		if issue.RuleID == f.RuleID && issue.Path.DOM == f.Path.DOM {
			return true
		}
	}
	return false
}

// GroupByBounds partitions findings into groups of identical bounds.
//
// Groups appear in the order their bounds first occur in findings, and each
// group's Issues keep input order, so the result is fully determined by the
// input sequence. PrimaryLevel is resolved for every group; CascadeIndex is
// left at 0.
func GroupByBounds(findings []report.Finding) []Group {
	index := make(map[report.Bounds]int)
	groups := make([]Group, 0)

	for _, f := range findings {
		i, ok := index[f.Bounds]
		if !ok {
			i = len(groups)
			index[f.Bounds] = i
			groups = append(groups, Group{
				Key:    f.Bounds.Key(),
				Bounds: f.Bounds,
			})
		}
		groups[i].Issues = append(groups[i].Issues, f)
	}

	for i := range groups {
		groups[i].PrimaryLevel = PrimaryLevel(groups[i].Issues)
	}

	return groups
}

// PrimaryLevel returns the most severe level present in issues according to
// report.PriorityOrder. When none of the ordered levels is present it falls
// back to the first issue's level; it returns "" for an empty slice.
func PrimaryLevel(issues []report.Finding) report.Level {
	for _, level := range report.PriorityOrder {
		for _, issue := range issues {
			if issue.Level == level {
				return level
			}
		}
	}
	if len(issues) == 0 {
		return ""
	}
	return issues[0].Level
}
