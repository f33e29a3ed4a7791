// Package imaging is the screenshot side of the overlay viewer.
//
// It loads and caches page screenshots, paints layout placements onto them
// cuts out the region around a single group for close inspection, and
// measures the colors and contrast inside such a region.
//
// # Coordinate System
//
// Finding bounds and placements are in native screenshot pixels with (0,0)
// at the top-left corner of the screenshot, X growing right and Y growing
// down. Regions are half-open: Min is inclusive, Max exclusive. Zoom is
// applied last, after painting, so it scales every box and badge uniformly.
//
// # Overlay Painting
//
// PaintOverlay draws placements in ascending z-index on a transparent layer
// which is then composited over a copy of the screenshot. A placement drawn
// later overwrites earlier ones where they overlap, so highlighted groups
// always end up on top. Placements that are not drawable (tiny boxes) are
// skipped but still counted by the layout.
//
// RenderOptions.GridSpacing adds a labelled coordinate grid beneath the
// boxes, which helps when reading bounds off a rendered page.
//
// Level colors are the viewer's palette:
//
//	violation                #ef4444
//	potentialviolation       #f97316
//	recommendation           #3b82f6
//	potentialrecommendation  #8b5cf6
//	manual                   #eab308
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Rendering and cropping never modify
// their input image and can run concurrently.
package imaging
