package imaging

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// WCAG 2 contrast thresholds for normal and large text.
const (
	ContrastAA      = 4.5
	ContrastAALarge = 3.0
)

// Colors less common than minForegroundShare percent of a region are treated
// as antialiasing noise when picking the foreground.
const minForegroundShare = 1.0

// ColorShare is one color bucket of a region.
type ColorShare struct {
	// Hex is the mean color of the bucket, "#rrggbb".
	Hex string `json:"hex"`

	// Percentage is the share of the region's pixels in the bucket (0-100).
	Percentage float64 `json:"percentage"`

	// Luminance is the WCAG relative luminance (0-1).
	Luminance float64 `json:"luminance"`
}

// RegionColors describes the colors under a region and the contrast between
// its background and its most contrasting foreground.
type RegionColors struct {
	// Colors lists the most common buckets, most common first.
	Colors []ColorShare `json:"colors"`

	// Background is the most common color.
	Background string `json:"background"`

	// Foreground is the color with the highest contrast against Background
	// among colors covering at least 1% of the region. It equals Background
	// for a flat region.
	Foreground string `json:"foreground"`

	ContrastRatio float64 `json:"contrast_ratio"`
	PassesAA      bool    `json:"passes_aa"`
	PassesAALarge bool    `json:"passes_aa_large"`
}

type colorBucket struct {
	r, g, b uint64
	n       int
}

func (c colorBucket) mean() colorful.Color {
	n := float64(c.n)
	return colorful.Color{R: float64(c.r) / n / 255, G: float64(c.g) / n / 255, B: float64(c.b) / n / 255}
}

// AnalyzeRegionColors buckets the pixels of region (clipped to img) into
// 16 levels per channel, returns the count most common buckets and
// estimates the text contrast of the region.
//
// Each bucket reports the mean of its pixels rather than the bucket corner,
// so flat colors keep their exact value.
func AnalyzeRegionColors(img image.Image, region image.Rectangle, count int) (*RegionColors, error) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("region lies outside the %dx%d screenshot", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if count <= 0 {
		count = 5
	}

	buckets := make(map[uint16]*colorBucket)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			r8, g8, b8 := r>>8, g>>8, b>>8
			key := uint16(r8>>4)<<8 | uint16(g8>>4)<<4 | uint16(b8>>4)
			bk, ok := buckets[key]
			if !ok {
				bk = &colorBucket{}
				buckets[key] = bk
			}
			bk.r += uint64(r8)
			bk.g += uint64(g8)
			bk.b += uint64(b8)
			bk.n++
		}
	}

	total := float64(region.Dx() * region.Dy())
	type entry struct {
		color colorful.Color
		share ColorShare
	}
	entries := make([]entry, 0, len(buckets))
	for _, bk := range buckets {
		c := bk.mean()
		entries = append(entries, entry{
			color: c,
			share: ColorShare{
				Hex:        c.Hex(),
				Percentage: float64(bk.n) / total * 100,
				Luminance:  RelativeLuminance(c),
			},
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].share.Percentage != entries[j].share.Percentage {
			return entries[i].share.Percentage > entries[j].share.Percentage
		}
		return entries[i].share.Hex < entries[j].share.Hex
	})

	bg := entries[0]
	fg := bg
	best := 1.0
	for _, e := range entries[1:] {
		if e.share.Percentage < minForegroundShare {
			continue
		}
		if ratio := ContrastRatio(bg.color, e.color); ratio > best {
			best, fg = ratio, e
		}
	}

	shares := make([]ColorShare, 0, min(count, len(entries)))
	for _, e := range entries[:min(count, len(entries))] {
		shares = append(shares, e.share)
	}

	ratio := math.Round(best*100) / 100
	return &RegionColors{
		Colors:        shares,
		Background:    bg.share.Hex,
		Foreground:    fg.share.Hex,
		ContrastRatio: ratio,
		PassesAA:      ratio >= ContrastAA,
		PassesAALarge: ratio >= ContrastAALarge,
	}, nil
}

// RelativeLuminance returns the WCAG relative luminance of c.
func RelativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio of a and b, from 1 to 21.
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}
