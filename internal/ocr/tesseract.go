package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// Crops shorter than minReadableHeight are enlarged before recognition, at
// most maxUpscale times.
const (
	minReadableHeight = 32
	maxUpscale        = 4
)

// Word is one recognized word.
type Word struct {
	Text string `json:"text"`

	// Confidence is Tesseract's confidence from 0.0 to 1.0.
	Confidence float64 `json:"confidence"`

	// Bounds locates the word in screenshot coordinates.
	Bounds report.Bounds `json:"bounds"`
}

// RegionText is the text found under a region of a screenshot.
type RegionText struct {
	// Region is the area that was read, clipped to the screenshot.
	Region report.Bounds `json:"region"`

	// Text is all recognized text, trimmed.
	Text string `json:"text"`

	// Words holds word-level results. It is empty when Tesseract returns
	// text but no word boxes.
	Words []Word `json:"words"`
}

// ExtractRegionText reads the text inside region of img.
//
// region is in img's coordinate space and is clipped to img.Bounds(). Word
// bounds in the result are translated back to screenshot coordinates, so they
// can be compared directly with finding bounds.
//
// Tesseract and the data for language must be installed. An empty language
// means DefaultLanguage.
func ExtractRegionText(img image.Image, region image.Rectangle, language string) (*RegionText, error) {
	if language == "" {
		language = DefaultLanguage
	}

	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("region lies outside the %dx%d screenshot", img.Bounds().Dx(), img.Bounds().Dy())
	}

	var crop image.Image = imaging.Crop(img, region)
	scale := upscaleFactor(region.Dy())
	if scale > 1 {
		crop = imaging.Resize(crop, region.Dx()*scale, region.Dy()*scale, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop); err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	text, boxes, err := recognize(buf.Bytes(), language)
	if err != nil {
		return nil, err
	}

	origin := region.Min.Sub(img.Bounds().Min)
	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		w := strings.TrimSpace(box.Word)
		if w == "" {
			continue
		}
		words = append(words, Word{
			Text:       w,
			Confidence: box.Confidence / 100.0,
			Bounds:     toScreenshot(box.Box, origin, scale),
		})
	}

	return &RegionText{
		Region: report.Bounds{Left: origin.X, Top: origin.Y, Width: region.Dx(), Height: region.Dy()},
		Text:   strings.TrimSpace(text),
		Words:  words,
	}, nil
}

func recognize(data []byte, language string) (string, []gosseract.BoundingBox, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Text without word boxes is still useful.
		return text, nil, nil
	}
	return text, boxes, nil
}

// upscaleFactor returns the integer scale that brings a crop of the given
// height up to a size Tesseract reads reliably.
func upscaleFactor(height int) int {
	if height <= 0 || height >= minReadableHeight {
		return 1
	}
	return min((minReadableHeight+height-1)/height, maxUpscale)
}

// toScreenshot maps a box in the scaled crop back to screenshot pixels.
func toScreenshot(box image.Rectangle, origin image.Point, scale int) report.Bounds {
	minX, minY := box.Min.X/scale, box.Min.Y/scale
	maxX, maxY := (box.Max.X+scale-1)/scale, (box.Max.Y+scale-1)/scale
	return report.Bounds{
		Left:   origin.X + minX,
		Top:    origin.Y + minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}
