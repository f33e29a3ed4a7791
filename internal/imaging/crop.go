package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/billymcdowell/accessibilty-scanner/internal/layout"
	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// CropResult contains a cropped group region.
type CropResult struct {
	// X, Y, RegionWidth and RegionHeight give the cropped region in native
	// screenshot pixels, after padding and clipping.
	X            int `json:"x"`
	Y            int `json:"y"`
	RegionWidth  int `json:"region_width"`
	RegionHeight int `json:"region_height"`

	// Width and Height are the output dimensions after zoom.
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Zoom        int    `json:"zoom"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// GroupRegion returns the screenshot region shown for a group: its render
// rectangle grown by padding on every side and clipped to bounds.
func GroupRegion(bounds image.Rectangle, b report.Bounds, geom layout.Geometry, padding int) image.Rectangle {
	return geom.RenderRect(b).Inset(-max(padding, 0)).Add(bounds.Min).Intersect(bounds)
}

// CropGroup crops the region of a group with bounds b out of img and scales
// it by zoom percent (clamped like RenderOverlay).
func CropGroup(img image.Image, b report.Bounds, geom layout.Geometry, padding, zoom int) (*CropResult, error) {
	region := GroupRegion(img.Bounds(), b, geom, padding)
	if region.Empty() {
		return nil, fmt.Errorf("group region %s lies outside the %dx%d screenshot",
			b.Key(), img.Bounds().Dx(), img.Bounds().Dy())
	}

	zoom = ClampZoom(zoom)
	cropped := imaging.Crop(img, region)
	if zoom != DefaultZoom {
		cropped = imaging.Resize(cropped,
			ScaleLength(cropped.Bounds().Dx(), zoom),
			ScaleLength(cropped.Bounds().Dy(), zoom),
			imaging.Lanczos)
	}

	encoded, err := encodePNG(cropped)
	if err != nil {
		return nil, err
	}

	origin := region.Min.Sub(img.Bounds().Min)
	return &CropResult{
		X:            origin.X,
		Y:            origin.Y,
		RegionWidth:  region.Dx(),
		RegionHeight: region.Dy(),
		Width:        cropped.Bounds().Dx(),
		Height:       cropped.Bounds().Dy(),
		Zoom:         zoom,
		ImageBase64:  encoded,
		MimeType:     "image/png",
	}, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
