package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/billymcdowell/accessibilty-scanner/internal/layout"
	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

func TestGroupRegion(t *testing.T) {
	geom := layout.DefaultGeometry()
	screen := image.Rect(0, 0, 200, 200)

	tests := []struct {
		name    string
		b       report.Bounds
		padding int
		want    image.Rectangle
	}{
		{"exact", report.Bounds{Left: 10, Top: 20, Width: 40, Height: 30}, 0, image.Rect(10, 20, 50, 50)},
		{"padded", report.Bounds{Left: 10, Top: 20, Width: 40, Height: 30}, 5, image.Rect(5, 15, 55, 55)},
		{"min size floor", report.Bounds{Left: 50, Top: 50, Width: 10, Height: 2}, 0, image.Rect(50, 50, 70, 70)},
		{"clipped", report.Bounds{Left: 190, Top: 190, Width: 20, Height: 20}, 8, image.Rect(182, 182, 200, 200)},
		{"clipped at origin", report.Bounds{Left: 2, Top: 0, Width: 30, Height: 30}, 8, image.Rect(0, 0, 40, 38)},
		{"negative padding ignored", report.Bounds{Left: 10, Top: 10, Width: 30, Height: 30}, -5, image.Rect(10, 10, 40, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupRegion(screen, tt.b, geom, tt.padding)
			if got != tt.want {
				t.Errorf("GroupRegion: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropGroup(t *testing.T) {
	img := createPatternImage(200, 200)
	b := report.Bounds{Left: 50, Top: 50, Width: 10, Height: 10}

	result, err := CropGroup(img, b, layout.DefaultGeometry(), 5, 0)
	if err != nil {
		t.Fatalf("CropGroup failed: %v", err)
	}

	if result.X != 45 || result.Y != 45 {
		t.Errorf("origin: got (%d,%d), want (45,45)", result.X, result.Y)
	}
	if result.RegionWidth != 30 || result.RegionHeight != 30 {
		t.Errorf("region: got %dx%d, want 30x30", result.RegionWidth, result.RegionHeight)
	}
	if result.Width != 30 || result.Height != 30 {
		t.Errorf("dimensions: got %dx%d, want 30x30", result.Width, result.Height)
	}
	if result.Zoom != 100 {
		t.Errorf("Zoom: got %d, want 100", result.Zoom)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
}

func TestCropGroup_WithZoom(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})
	b := report.Bounds{Left: 10, Top: 10, Width: 40, Height: 20}

	tests := []struct {
		zoom          int
		width, height int
	}{
		{200, 80, 40},
		{50, 20, 10},
		{400, 120, 60},
	}

	for _, tt := range tests {
		result, err := CropGroup(img, b, layout.DefaultGeometry(), 0, tt.zoom)
		if err != nil {
			t.Fatalf("CropGroup(zoom=%d) failed: %v", tt.zoom, err)
		}
		if result.Width != tt.width || result.Height != tt.height {
			t.Errorf("zoom %d: got %dx%d, want %dx%d", tt.zoom, result.Width, result.Height, tt.width, tt.height)
		}
		if result.RegionWidth != 40 || result.RegionHeight != 20 {
			t.Errorf("zoom %d region: got %dx%d, want 40x20", tt.zoom, result.RegionWidth, result.RegionHeight)
		}
	}
}

func TestCropGroup_OutsideScreenshot(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)
	_, err := CropGroup(img, report.Bounds{Left: 300, Top: 300, Width: 10, Height: 10}, layout.DefaultGeometry(), 5, 100)
	if err == nil {
		t.Error("CropGroup should fail for a region outside the screenshot")
	}
}

func TestCropGroup_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	// Green top-right quadrant.
	result, err := CropGroup(img, report.Bounds{Left: 60, Top: 10, Width: 30, Height: 30}, layout.DefaultGeometry(), 0, 100)
	if err != nil {
		t.Fatalf("CropGroup failed: %v", err)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	r, g, b, _ := decoded.At(15, 15).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("center pixel: got (%d,%d,%d), want (0,255,0)", r>>8, g>>8, b>>8)
	}
}

func TestCropGroup_OffsetImage(t *testing.T) {
	// Screenshots decoded from sub-images may not start at (0,0).
	full := createPatternImage(200, 200)
	sub := full.SubImage(image.Rect(100, 0, 200, 100))

	result, err := CropGroup(sub, report.Bounds{Left: 10, Top: 10, Width: 20, Height: 20}, layout.DefaultGeometry(), 0, 100)
	if err != nil {
		t.Fatalf("CropGroup failed: %v", err)
	}
	if result.X != 10 || result.Y != 10 {
		t.Errorf("origin: got (%d,%d), want (10,10)", result.X, result.Y)
	}
}
