// Package report holds the data model produced by the external accessibility
// checker and loads it from the JSON files the scan runner writes.
//
// A page report is a list of findings. Each finding names the violated rule,
// carries a severity level and, when the checker could locate the element, a
// bounding box on the page screenshot:
//
//	{"ruleId": "text_contrast_sufficient", "level": "violation",
//	 "bounds": {"left": 10, "top": 10, "width": 50, "height": 20}, ...}
//
// # Coordinate System
//
// Bounds are in the screenshot's native pixel space with the origin at the
// top-left corner. A box of all zeros means the checker had no location for
// the element.
//
// # Levels
//
// Levels are ordered by priority for display purposes:
//
//	violation > potentialviolation > recommendation > potentialrecommendation > manual
//
// "pass" results are part of a report but never describe a defect.
//
// # Caching
//
// ReportCache keeps decoded reports keyed by path and is safe for concurrent
// use. Findings are treated as immutable once loaded.
package report
