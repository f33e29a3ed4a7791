package layout

import (
	"testing"

	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// groupsOf builds one group per finding, in order.
func groupsOf(findings ...report.Finding) []Group {
	return GroupByBounds(findings)
}

func cascadeByRule(groups []Group) map[string]int {
	out := make(map[string]int)
	for _, g := range groups {
		out[g.Issues[0].RuleID] = g.CascadeIndex
	}
	return out
}

func TestParseClusterMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ClusterMode
		wantErr bool
	}{
		{"", ClusterSingleHop, false},
		{"single-hop", ClusterSingleHop, false},
		{"transitive", ClusterTransitive, false},
		{"deep", "", true},
	}

	for _, tt := range tests {
		got, err := ParseClusterMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClusterMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseClusterMode(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAssignCascade_SeverityOrder(t *testing.T) {
	groups := groupsOf(
		finding("rec", report.LevelRecommendation, 0, 0, 20, 20),
		finding("vio", report.LevelViolation, 5, 0, 20, 20),
		finding("pot", report.LevelPotentialViolation, 10, 0, 20, 20),
	)

	clusters := AssignCascade(groups, DefaultGeometry(), ClusterSingleHop)

	if len(clusters) != 1 {
		t.Fatalf("clusters: got %d, want 1", len(clusters))
	}
	got := cascadeByRule(groups)
	want := map[string]int{"vio": 0, "pot": 1, "rec": 2}
	for rule, idx := range want {
		if got[rule] != idx {
			t.Errorf("cascade[%s]: got %d, want %d", rule, got[rule], idx)
		}
	}

	wantKeys := []string{"5-0-20-20", "10-0-20-20", "0-0-20-20"}
	for i, key := range wantKeys {
		if clusters[0].Keys[i] != key {
			t.Errorf("cluster key[%d]: got %s, want %s", i, clusters[0].Keys[i], key)
		}
	}
}

func TestAssignCascade_PositionTieBreak(t *testing.T) {
	groups := groupsOf(
		finding("lower", report.LevelManual, 0, 10, 20, 20),
		finding("right", report.LevelManual, 10, 0, 20, 20),
		finding("left", report.LevelManual, 5, 0, 20, 20),
	)

	AssignCascade(groups, DefaultGeometry(), ClusterSingleHop)

	got := cascadeByRule(groups)
	want := map[string]int{"left": 0, "right": 1, "lower": 2}
	for rule, idx := range want {
		if got[rule] != idx {
			t.Errorf("cascade[%s]: got %d, want %d", rule, got[rule], idx)
		}
	}
}

func TestAssignCascade_SamePositionKeepsListOrder(t *testing.T) {
	// Same top-left, different sizes: only list order separates them.
	groups := groupsOf(
		finding("first", report.LevelViolation, 0, 0, 30, 30),
		finding("second", report.LevelViolation, 0, 0, 31, 30),
	)

	AssignCascade(groups, DefaultGeometry(), ClusterSingleHop)

	got := cascadeByRule(groups)
	if got["first"] != 0 || got["second"] != 1 {
		t.Errorf("cascade: got %v, want first=0 second=1", got)
	}
}

func TestAssignCascade_Isolated(t *testing.T) {
	groups := groupsOf(
		finding("a", report.LevelViolation, 0, 0, 20, 20),
		finding("b", report.LevelViolation, 500, 500, 20, 20),
	)

	clusters := AssignCascade(groups, DefaultGeometry(), ClusterSingleHop)

	if len(clusters) != 0 {
		t.Errorf("clusters: got %d, want 0", len(clusters))
	}
	for _, g := range groups {
		if g.CascadeIndex != 0 {
			t.Errorf("group %s cascade: got %d, want 0", g.Key, g.CascadeIndex)
		}
	}
}

// chain returns three groups where a-b and b-c collide through their badges
// but a and c do not.
func chain(order ...string) []Group {
	byName := map[string]report.Finding{
		"a": finding("a", report.LevelViolation, 0, 0, 20, 20),
		"b": finding("b", report.LevelViolation, 25, 0, 20, 20),
		"c": finding("c", report.LevelViolation, 50, 0, 20, 20),
	}
	findings := make([]report.Finding, len(order))
	for i, name := range order {
		findings[i] = byName[name]
	}
	return groupsOf(findings...)
}

func TestChainFixture(t *testing.T) {
	g := DefaultGeometry()
	gs := chain("a", "b", "c")
	if !g.Collide(gs[0].Bounds, gs[1].Bounds) || !g.Collide(gs[1].Bounds, gs[2].Bounds) {
		t.Fatal("a-b and b-c should collide")
	}
	if g.Collide(gs[0].Bounds, gs[2].Bounds) {
		t.Fatal("a-c should not collide")
	}
}

func TestAssignCascade_SingleHopChain(t *testing.T) {
	groups := chain("a", "b", "c")

	clusters := AssignCascade(groups, DefaultGeometry(), ClusterSingleHop)

	if len(clusters) != 1 || len(clusters[0].Keys) != 2 {
		t.Fatalf("clusters: got %+v, want one cluster of two", clusters)
	}
	got := cascadeByRule(groups)
	want := map[string]int{"a": 0, "b": 1, "c": 0}
	for rule, idx := range want {
		if got[rule] != idx {
			t.Errorf("cascade[%s]: got %d, want %d", rule, got[rule], idx)
		}
	}
}

func TestAssignCascade_SingleHopChainMiddleFirst(t *testing.T) {
	groups := chain("b", "a", "c")

	clusters := AssignCascade(groups, DefaultGeometry(), ClusterSingleHop)

	if len(clusters) != 1 || len(clusters[0].Keys) != 3 {
		t.Fatalf("clusters: got %+v, want one cluster of three", clusters)
	}
	got := cascadeByRule(groups)
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for rule, idx := range want {
		if got[rule] != idx {
			t.Errorf("cascade[%s]: got %d, want %d", rule, got[rule], idx)
		}
	}
}

func TestAssignCascade_TransitiveChain(t *testing.T) {
	groups := chain("a", "b", "c")

	clusters := AssignCascade(groups, DefaultGeometry(), ClusterTransitive)

	if len(clusters) != 1 || len(clusters[0].Keys) != 3 {
		t.Fatalf("clusters: got %+v, want one cluster of three", clusters)
	}
	got := cascadeByRule(groups)
	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for rule, idx := range want {
		if got[rule] != idx {
			t.Errorf("cascade[%s]: got %d, want %d", rule, got[rule], idx)
		}
	}
}

func TestAssignCascade_ResetsPreviousIndices(t *testing.T) {
	groups := groupsOf(
		finding("a", report.LevelViolation, 0, 0, 20, 20),
		finding("b", report.LevelViolation, 500, 500, 20, 20),
	)
	groups[1].CascadeIndex = 7

	AssignCascade(groups, DefaultGeometry(), ClusterSingleHop)

	if groups[1].CascadeIndex != 0 {
		t.Errorf("cascade: got %d, want 0", groups[1].CascadeIndex)
	}
}

func TestAssignCascade_Empty(t *testing.T) {
	clusters := AssignCascade(nil, DefaultGeometry(), ClusterSingleHop)
	if len(clusters) != 0 {
		t.Errorf("clusters: got %d, want 0", len(clusters))
	}
}
