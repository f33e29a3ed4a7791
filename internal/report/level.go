package report

import "fmt"

// Level is the severity the checker assigned to a finding.
type Level string

const (
	LevelViolation               Level = "violation"
	LevelPotentialViolation      Level = "potentialviolation"
	LevelRecommendation          Level = "recommendation"
	LevelPotentialRecommendation Level = "potentialrecommendation"
	LevelManual                  Level = "manual"
	LevelPass                    Level = "pass"
)

// PriorityOrder lists the defect levels from most to least severe.
var PriorityOrder = []Level{
	LevelViolation,
	LevelPotentialViolation,
	LevelRecommendation,
	LevelPotentialRecommendation,
	LevelManual,
}

// Priority returns the rank of l in PriorityOrder, 0 being the most severe.
// Levels outside the order (pass, unknown values) rank after every ordered
// level.
func (l Level) Priority() int {
	for i, p := range PriorityOrder {
		if p == l {
			return i
		}
	}
	return len(PriorityOrder)
}

// IsValid reports whether l is one of the six levels the checker emits.
func (l Level) IsValid() bool {
	switch l {
	case LevelViolation, LevelPotentialViolation, LevelRecommendation,
		LevelPotentialRecommendation, LevelManual, LevelPass:
		return true
	default:
		return false
	}
}

// IsDefect reports whether l describes something to fix or review.
func (l Level) IsDefect() bool {
	return l.IsValid() && l != LevelPass
}

func (l Level) String() string {
	return string(l)
}

// Label returns the plural heading used for l in summaries.
func (l Level) Label() string {
	switch l {
	case LevelViolation:
		return "Violations"
	case LevelPotentialViolation:
		return "Potential Violations"
	case LevelRecommendation:
		return "Recommendations"
	case LevelPotentialRecommendation:
		return "Potential Recommendations"
	case LevelManual:
		return "Manual Review"
	case LevelPass:
		return "Passed"
	default:
		return string(l)
	}
}

// Color returns the "#RRGGBB" overlay color for l. Unknown levels get a
// neutral gray.
func (l Level) Color() string {
	switch l {
	case LevelViolation:
		return "#ef4444"
	case LevelPotentialViolation:
		return "#f97316"
	case LevelRecommendation:
		return "#3b82f6"
	case LevelPotentialRecommendation:
		return "#8b5cf6"
	case LevelManual:
		return "#eab308"
	case LevelPass:
		return "#22c55e"
	default:
		return "#6b7280"
	}
}

// ParseLevel converts s to a Level, rejecting unknown values.
func ParseLevel(s string) (Level, error) {
	l := Level(s)
	if !l.IsValid() {
		return "", fmt.Errorf("unknown level: %q", s)
	}
	return l, nil
}
