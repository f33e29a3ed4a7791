// Package ocr reads the text that sits under a finding on a page screenshot.
//
// Accessibility findings carry a DOM path and a bounding box, but a person
// triaging a report usually recognizes an element by its visible label.
// ExtractRegionText crops a group's region out of the screenshot, runs it
// through Tesseract (via gosseract/v2) and returns the text with word boxes
// mapped back into screenshot coordinates.
//
// # Prerequisites
//
// Tesseract and its language data must be installed:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Small Regions
//
// Many flagged elements are short (icons, single-line links). Crops less than
// 32 pixels tall are enlarged up to four times before recognition; word boxes
// are scaled back down so they still line up with the screenshot.
package ocr
