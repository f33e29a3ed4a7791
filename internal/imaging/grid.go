package imaging

import (
	"image"
	"image/color"
	"strconv"
)

// Coordinate grid styling.
var (
	gridLineColor  = color.NRGBA{0x6b, 0x72, 0x80, 0x60}
	gridLabelColor = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	gridLabelBack  = color.NRGBA{0x00, 0x00, 0x00, 0xb4}
)

// paintGrid draws a coordinate grid every spacing pixels with "x,y" labels
// at each intersection. It lets a reader match drawn boxes against finding
// bounds by eye.
func paintGrid(layer *image.NRGBA, spacing int) {
	if spacing <= 0 {
		return
	}
	b := layer.Bounds()

	for x := b.Min.X + spacing; x < b.Max.X; x += spacing {
		fillRect(layer, image.Rect(x, b.Min.Y, x+1, b.Max.Y), gridLineColor)
	}
	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		fillRect(layer, image.Rect(b.Min.X, y, b.Max.X, y+1), gridLineColor)
	}

	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		for x := b.Min.X + spacing; x < b.Max.X; x += spacing {
			label := strconv.Itoa(x-b.Min.X) + "," + strconv.Itoa(y-b.Min.Y)
			origin := image.Pt(x+2, y+2)
			fillRect(layer, image.Rect(origin.X-1, origin.Y-1, origin.X+textWidth(label)+1, origin.Y+glyphHeight+1), gridLabelBack)
			drawTextAt(layer, origin, label, gridLabelColor)
		}
	}
}
