package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// createTextLikeImage creates a white image with a solid block of fg,
// standing in for a run of text.
func createTextLikeImage(width, height int, fg color.Color, block image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (image.Point{x, y}).In(block) {
				img.Set(x, y, fg)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestContrastRatio(t *testing.T) {
	black := colorful.Color{}
	white := colorful.Color{R: 1, G: 1, B: 1}
	gray, _ := colorful.Hex("#777777")

	tests := []struct {
		name string
		a, b colorful.Color
		want float64
	}{
		{"black on white", black, white, 21},
		{"white on black", white, black, 21},
		{"same color", gray, gray, 1},
		{"gray on white", gray, white, 4.48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContrastRatio(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("ContrastRatio: got %.3f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestAnalyzeRegionColors(t *testing.T) {
	tests := []struct {
		name       string
		fg         color.Color
		foreground string
		ratio      float64
		aa, large  bool
	}{
		{"black text", color.Black, "#000000", 21, true, true},
		{"gray text", color.RGBA{0x77, 0x77, 0x77, 255}, "#777777", 4.48, false, true},
		{"pale text", color.RGBA{0xcc, 0xcc, 0xcc, 255}, "#cccccc", 1.61, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createTextLikeImage(60, 40, tt.fg, image.Rect(10, 10, 30, 15))

			got, err := AnalyzeRegionColors(img, image.Rect(0, 0, 40, 20), 5)
			if err != nil {
				t.Fatalf("AnalyzeRegionColors failed: %v", err)
			}

			if got.Background != "#ffffff" {
				t.Errorf("Background: got %s, want #ffffff", got.Background)
			}
			if got.Foreground != tt.foreground {
				t.Errorf("Foreground: got %s, want %s", got.Foreground, tt.foreground)
			}
			if math.Abs(got.ContrastRatio-tt.ratio) > 0.011 {
				t.Errorf("ContrastRatio: got %.2f, want %.2f", got.ContrastRatio, tt.ratio)
			}
			if got.PassesAA != tt.aa || got.PassesAALarge != tt.large {
				t.Errorf("passes: got AA=%v large=%v, want AA=%v large=%v", got.PassesAA, got.PassesAALarge, tt.aa, tt.large)
			}

			if len(got.Colors) != 2 {
				t.Fatalf("Colors: got %d, want 2", len(got.Colors))
			}
			// 100 of 800 pixels are text.
			if math.Abs(got.Colors[1].Percentage-12.5) > 0.001 {
				t.Errorf("foreground share: got %.3f, want 12.5", got.Colors[1].Percentage)
			}
		})
	}
}

func TestAnalyzeRegionColors_Flat(t *testing.T) {
	img := createInMemoryImage(30, 30, color.RGBA{0x3b, 0x82, 0xf6, 255})

	got, err := AnalyzeRegionColors(img, img.Bounds(), 0)
	if err != nil {
		t.Fatalf("AnalyzeRegionColors failed: %v", err)
	}
	if got.Foreground != got.Background {
		t.Errorf("flat region: foreground %s, background %s", got.Foreground, got.Background)
	}
	if got.ContrastRatio != 1 {
		t.Errorf("ContrastRatio: got %.2f, want 1", got.ContrastRatio)
	}
	if got.Background != "#3b82f6" {
		t.Errorf("Background: got %s, want #3b82f6", got.Background)
	}
}

func TestAnalyzeRegionColors_IgnoresSpeckles(t *testing.T) {
	// A single black pixel in 40x20 is 0.125% of the region.
	img := createTextLikeImage(40, 20, color.Black, image.Rect(5, 5, 6, 6))

	got, err := AnalyzeRegionColors(img, img.Bounds(), 5)
	if err != nil {
		t.Fatalf("AnalyzeRegionColors failed: %v", err)
	}
	if got.ContrastRatio != 1 {
		t.Errorf("ContrastRatio: got %.2f, want 1", got.ContrastRatio)
	}
	if len(got.Colors) != 2 {
		t.Errorf("Colors: got %d, want 2 (speckles are still listed)", len(got.Colors))
	}
}

func TestAnalyzeRegionColors_CountAndClipping(t *testing.T) {
	img := createPatternImage(100, 100)

	got, err := AnalyzeRegionColors(img, image.Rect(-50, -50, 200, 200), 2)
	if err != nil {
		t.Fatalf("AnalyzeRegionColors failed: %v", err)
	}
	if len(got.Colors) != 2 {
		t.Errorf("Colors: got %d, want 2", len(got.Colors))
	}
	for _, c := range got.Colors {
		if math.Abs(c.Percentage-25) > 0.001 {
			t.Errorf("%s share: got %.2f, want 25", c.Hex, c.Percentage)
		}
	}
}

func TestAnalyzeRegionColors_OutsideImage(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)
	if _, err := AnalyzeRegionColors(img, image.Rect(20, 20, 30, 30), 5); err == nil {
		t.Error("AnalyzeRegionColors should fail for a region outside the image")
	}
}
