package layout

import (
	"math"
	"sort"

	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// DefaultRenderBase is the z-index of the first emitted group.
const DefaultRenderBase = 10

// HighlightZIndex is the z-index of hovered and selected groups, above any
// index the base + emission + cascade arithmetic can produce.
const HighlightZIndex = math.MaxInt32

// Options controls one layout computation.
type Options struct {
	Filter     Filter      `json:"filter"`
	Geometry   Geometry    `json:"geometry"`
	Clustering ClusterMode `json:"clustering"`
}

// DefaultOptions returns FilterAll, DefaultGeometry and single-hop
// clustering.
func DefaultOptions() Options {
	return Options{
		Filter:     FilterAll,
		Geometry:   DefaultGeometry(),
		Clustering: ClusterSingleHop,
	}
}

func (o Options) withDefaults() Options {
	if o.Filter == "" {
		o.Filter = FilterAll
	}
	if o.Geometry == (Geometry{}) {
		o.Geometry = DefaultGeometry()
	}
	if o.Clustering == "" {
		o.Clustering = ClusterSingleHop
	}
	return o
}

// Tally counts findings at each stage of the pipeline.
type Tally struct {
	// Total is every finding in the input, passes included.
	Total int `json:"total"`

	// NonPass excludes pass results.
	NonPass int `json:"non_pass"`

	// WithBounds is the filtered set laid out: non-pass, admitted by the
	// filter, located. Tiny regions are included.
	WithBounds int `json:"with_bounds"`

	// Drawable excludes tiny regions from WithBounds.
	Drawable int `json:"drawable"`

	// Groups is the number of distinct regions.
	Groups int `json:"groups"`

	// Clusters is the number of collision clusters.
	Clusters int `json:"clusters"`
}

// Result is the output of Compute.
type Result struct {
	Options  Options   `json:"options"`
	Groups   []Group   `json:"groups"`
	Clusters []Cluster `json:"clusters"`
	Tally    Tally     `json:"tally"`
}

// Compute runs the whole pipeline over findings and returns groups annotated
// with their cascade index, in first-occurrence order.
//
// Zero-valued fields of opts take their DefaultOptions value. The input slice
// is not modified and the result shares no state with earlier calls.
func Compute(findings []report.Finding, opts Options) *Result {
	opts = opts.withDefaults()

	filtered := FilterFindings(findings, opts.Filter)
	groups := GroupByBounds(filtered)
	clusters := AssignCascade(groups, opts.Geometry, opts.Clustering)

	tally := Tally{
		Total:      len(findings),
		WithBounds: len(filtered),
		Groups:     len(groups),
		Clusters:   len(clusters),
	}
	for _, f := range findings {
		if f.Level != report.LevelPass {
			tally.NonPass++
		}
	}
	for _, f := range filtered {
		if opts.Geometry.Drawable(f.Bounds) {
			tally.Drawable++
		}
	}

	return &Result{
		Options:  opts,
		Groups:   groups,
		Clusters: clusters,
		Tally:    tally,
	}
}

// Group returns the group with the given key.
func (r *Result) Group(key string) (Group, bool) {
	for _, g := range r.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

// FindGroup returns the group holding f, if f was laid out.
func FindGroup(groups []Group, f report.Finding) (Group, bool) {
	for _, g := range groups {
		if g.Contains(f) {
			return g, true
		}
	}
	return Group{}, false
}

// StackOptions carries the caller's interaction state into Stack.
type StackOptions struct {
	// RenderBase is added to every emission index. Zero means
	// DefaultRenderBase.
	RenderBase int

	// Hovered holds the keys of groups under the pointer.
	Hovered map[string]bool

	// Selected is the key of the open group, if any.
	Selected string

	// Geometry sizes the rendered boxes. Zero means DefaultGeometry.
	Geometry Geometry
}

// Placement is a group positioned for drawing.
type Placement struct {
	Group

	// Rect is the rendered box, with the minimum size floor applied.
	Rect report.Bounds `json:"rect"`

	// ZIndex orders drawing: higher is on top.
	ZIndex int `json:"zIndex"`

	Highlighted bool `json:"highlighted"`
	Selected    bool `json:"selected"`

	// Drawable is false for regions too small to draw.
	Drawable bool `json:"drawable"`
}

// Stack computes placements for groups in emission order. A group's z-index
// is RenderBase + its position in groups + its CascadeIndex, except that
// hovered or selected groups get HighlightZIndex and so always sit above the
// rest.
func Stack(groups []Group, opts StackOptions) []Placement {
	if opts.RenderBase == 0 {
		opts.RenderBase = DefaultRenderBase
	}
	if opts.Geometry == (Geometry{}) {
		opts.Geometry = DefaultGeometry()
	}

	placements := make([]Placement, len(groups))
	for i, g := range groups {
		selected := opts.Selected != "" && g.Key == opts.Selected
		highlighted := selected || opts.Hovered[g.Key]

		z := opts.RenderBase + i + g.CascadeIndex
		if highlighted {
			z = HighlightZIndex
		}

		r := opts.Geometry.RenderRect(g.Bounds)
		placements[i] = Placement{
			Group:       g,
			Rect:        report.Bounds{Left: r.Min.X, Top: r.Min.Y, Width: r.Dx(), Height: r.Dy()},
			ZIndex:      z,
			Highlighted: highlighted,
			Selected:    selected,
			Drawable:    opts.Geometry.Drawable(g.Bounds),
		}
	}
	return placements
}

// PaintOrder returns the drawable placements sorted bottom to top. Equal
// z-indexes keep emission order.
func PaintOrder(placements []Placement) []Placement {
	out := make([]Placement, 0, len(placements))
	for _, p := range placements {
		if p.Drawable {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}
