package layout

import (
	"image"

	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// Geometry holds the rendering dimensions the collision tests assume, in
// native screenshot pixels.
type Geometry struct {
	// BadgeSize is the diameter of the count badge.
	BadgeSize int `json:"badge_size"`

	// BadgeMargin is the clearance wanted between two badges.
	BadgeMargin int `json:"badge_margin"`

	// MinRenderSize is the floor applied to a box's width and height so tiny
	// regions stay visible.
	MinRenderSize int `json:"min_render_size"`

	// AreaOverlapRatio is the fraction of the smaller rendered box that must
	// be covered before two boxes count as overlapping.
	AreaOverlapRatio float64 `json:"area_overlap_ratio"`

	// MinDrawableSize is the size below which, in both dimensions, a region
	// is not drawn at all.
	MinDrawableSize int `json:"min_drawable_size"`
}

// DefaultGeometry returns the dimensions of the dashboard's overlay: a 24px
// badge, 8px margin, 20px box floor, 30% overlap threshold and 5px drawable
// floor.
func DefaultGeometry() Geometry {
	return Geometry{
		BadgeSize:        24,
		BadgeMargin:      8,
		MinRenderSize:    20,
		AreaOverlapRatio: 0.3,
		MinDrawableSize:  5,
	}
}

// RenderRect returns the box actually drawn for b: b widened and heightened
// to at least MinRenderSize.
func (g Geometry) RenderRect(b report.Bounds) image.Rectangle {
	w := max(b.Width, g.MinRenderSize)
	h := max(b.Height, g.MinRenderSize)
	return image.Rect(b.Left, b.Top, b.Left+w, b.Top+h)
}

// BadgeAnchor returns the point the count badge is centred on: the top-right
// corner of the rendered box.
func (g Geometry) BadgeAnchor(b report.Bounds) image.Point {
	return image.Pt(b.Left+max(b.Width, g.MinRenderSize), b.Top)
}

// Drawable reports whether b is large enough to draw. A region is skipped
// only when both dimensions fall below MinDrawableSize.
func (g Geometry) Drawable(b report.Bounds) bool {
	return b.Width >= g.MinDrawableSize || b.Height >= g.MinDrawableSize
}

// BadgesCollide reports whether the badges of a and b would sit closer than
// BadgeSize + BadgeMargin. The comparison is done on squared integer
// distances so it is exact and symmetric.
func (g Geometry) BadgesCollide(a, b report.Bounds) bool {
	pa, pb := g.BadgeAnchor(a), g.BadgeAnchor(b)
	dx := int64(pa.X - pb.X)
	dy := int64(pa.Y - pb.Y)
	r := int64(g.BadgeSize + g.BadgeMargin)
	return dx*dx+dy*dy < r*r
}

// AreasOverlap reports whether the rendered boxes of a and b intersect by
// more than AreaOverlapRatio of the smaller box's area.
func (g Geometry) AreasOverlap(a, b report.Bounds) bool {
	ra, rb := g.RenderRect(a), g.RenderRect(b)
	in := ra.Intersect(rb)
	if in.Empty() {
		return false
	}
	overlap := area(in)
	smaller := min(area(ra), area(rb))
	return float64(overlap) > float64(smaller)*g.AreaOverlapRatio
}

// Collide reports whether drawing a and b would visually collide by either
// heuristic.
func (g Geometry) Collide(a, b report.Bounds) bool {
	return g.BadgesCollide(a, b) || g.AreasOverlap(a, b)
}

func area(r image.Rectangle) int64 {
	return int64(r.Dx()) * int64(r.Dy())
}
