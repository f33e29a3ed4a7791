package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/billymcdowell/accessibilty-scanner/internal/layout"
	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// Overlay styling in native screenshot pixels.
const (
	borderWidth         = 2
	selectedBorderWidth = 3
	haloWidth           = 4
	badgeRadius         = 10
	fillAlpha           = 0x20
	highlightFillAlpha  = 0x40
	haloAlpha           = 0x40
)

// RenderOptions controls RenderOverlay.
type RenderOptions struct {
	// Zoom is the output scale in percent. Zero means 100; other values are
	// clamped to MinZoom..MaxZoom.
	Zoom int

	// GridSpacing draws a labelled coordinate grid under the boxes every
	// GridSpacing native pixels. Zero means no grid.
	GridSpacing int
}

// OverlayResult is a screenshot with overlays drawn, encoded as PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Zoom        int    `json:"zoom"`
	Drawn       int    `json:"drawn"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderOverlay draws placements on img, scales the result by opts.Zoom and
// returns it as base64 PNG.
//
// Placements are painted bottom to top by z-index. Each drawable placement
// gets a translucent fill in its level color, a solid border (thicker when
// selected), a halo when highlighted, and a round badge with the issue count
// centred on the box's top-right corner.
func RenderOverlay(img image.Image, placements []layout.Placement, opts RenderOptions) (*OverlayResult, error) {
	opts.Zoom = ClampZoom(opts.Zoom)
	out := ComposeOverlay(img, placements, opts)

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, err
	}

	return &OverlayResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Zoom:        opts.Zoom,
		Drawn:       len(layout.PaintOrder(placements)),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// SaveOverlay renders like RenderOverlay and writes the image to path. The
// file format follows the extension (.png, .jpg, .gif, ...).
func SaveOverlay(path string, img image.Image, placements []layout.Placement, opts RenderOptions) error {
	out := ComposeOverlay(img, placements, opts)
	if err := imaging.Save(out, path); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}

// ComposeOverlay paints placements on img, with a grid when requested, and
// scales the result by opts.Zoom.
func ComposeOverlay(img image.Image, placements []layout.Placement, opts RenderOptions) image.Image {
	zoom := ClampZoom(opts.Zoom)
	painted := paintOverlay(img, placements, opts.GridSpacing)
	if zoom == DefaultZoom {
		return painted
	}
	b := painted.Bounds()
	return imaging.Resize(painted, ScaleLength(b.Dx(), zoom), ScaleLength(b.Dy(), zoom), imaging.Lanczos)
}

// PaintOverlay returns a copy of img, at native scale with its origin at
// (0,0), with placements drawn on top.
func PaintOverlay(img image.Image, placements []layout.Placement) *image.RGBA {
	return paintOverlay(img, placements, 0)
}

func paintOverlay(img image.Image, placements []layout.Placement, gridSpacing int) *image.RGBA {
	base := imaging.Clone(img)
	layer := image.NewNRGBA(base.Bounds())
	paintGrid(layer, gridSpacing)

	for _, p := range layout.PaintOrder(placements) {
		paintPlacement(layer, p)
	}

	// blend composites straight alpha; hand it the NRGBA bytes unchanged.
	straight := &image.RGBA{Pix: layer.Pix, Stride: layer.Stride, Rect: layer.Rect}
	return blend.Normal(base, straight)
}

func paintPlacement(layer *image.NRGBA, p layout.Placement) {
	c := LevelColor(p.PrimaryLevel)
	r, g, b := c.RGB255()
	rect := image.Rect(p.Rect.Left, p.Rect.Top, p.Rect.Left+p.Rect.Width, p.Rect.Top+p.Rect.Height)

	if p.Highlighted {
		fillRect(layer, rect.Inset(-haloWidth), color.NRGBA{r, g, b, haloAlpha})
	}

	alpha := uint8(fillAlpha)
	if p.Highlighted {
		alpha = highlightFillAlpha
	}
	fillRect(layer, rect, color.NRGBA{r, g, b, alpha})

	bw := borderWidth
	if p.Selected {
		bw = selectedBorderWidth
	}
	strokeRect(layer, rect, bw, color.NRGBA{r, g, b, 0xff})

	center := image.Pt(rect.Max.X, rect.Min.Y)
	fillCircle(layer, center, badgeRadius, color.NRGBA{r, g, b, 0xff})
	drawText(layer, center, badgeLabel(p.Count()), BadgeTextColor(c))
}

// LevelColor returns the overlay color of level l.
func LevelColor(l report.Level) colorful.Color {
	c, err := colorful.Hex(l.Color())
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return c
}

// BadgeTextColor picks white or black text, whichever reads better on a badge
// filled with c.
func BadgeTextColor(c colorful.Color) color.NRGBA {
	l, _, _ := c.Lab()
	if l > 0.7 {
		return color.NRGBA{0, 0, 0, 0xff}
	}
	return color.NRGBA{0xff, 0xff, 0xff, 0xff}
}

func badgeLabel(count int) string {
	if count > 99 {
		return "99+"
	}
	return strconv.Itoa(count)
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func strokeRect(img *image.NRGBA, r image.Rectangle, width int, c color.NRGBA) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func fillCircle(img *image.NRGBA, center image.Point, radius int, c color.NRGBA) {
	box := image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1).Intersect(img.Bounds())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			dx, dy := x-center.X, y-center.Y
			if dx*dx+dy*dy <= radius*radius {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// glyphs is a 3x5 pixel font covering badge and grid labels.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'+': {"000", "010", "111", "010", "000"},
	',': {"000", "000", "000", "010", "100"},
}

const (
	glyphWidth   = 3
	glyphHeight  = 5
	glyphAdvance = glyphWidth + 1
)

func textWidth(text string) int {
	if text == "" {
		return 0
	}
	return len(text)*glyphAdvance - 1
}

// drawText draws text centred on center.
func drawText(img *image.NRGBA, center image.Point, text string, fg color.NRGBA) {
	drawTextAt(img, image.Pt(center.X-textWidth(text)/2, center.Y-glyphHeight/2), text, fg)
}

// drawTextAt draws text with its top-left corner at origin. Characters
// without a glyph leave a gap.
func drawTextAt(img *image.NRGBA, origin image.Point, text string, fg color.NRGBA) {
	bounds := img.Bounds()
	for i, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				pt := image.Pt(origin.X+i*glyphAdvance+col, origin.Y+row)
				if pt.In(bounds) {
					img.SetNRGBA(pt.X, pt.Y, fg)
				}
			}
		}
	}
}
