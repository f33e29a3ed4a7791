package imaging

// Zoom limits, in percent, matching the viewer's zoom controls.
const (
	MinZoom     = 25
	MaxZoom     = 300
	ZoomStep    = 25
	DefaultZoom = 100
)

// ClampZoom limits zoom to MinZoom..MaxZoom. Zero means DefaultZoom.
func ClampZoom(zoom int) int {
	if zoom == 0 {
		return DefaultZoom
	}
	return clampZoom(zoom)
}

// StepZoom moves zoom by steps increments of ZoomStep, staying in range.
func StepZoom(zoom, steps int) int {
	return clampZoom(ClampZoom(zoom) + steps*ZoomStep)
}

// ScaleLength scales a native pixel length to zoom percent, never below 1.
func ScaleLength(n, zoom int) int {
	return max(n*zoom/100, 1)
}

func clampZoom(zoom int) int {
	return min(max(zoom, MinZoom), MaxZoom)
}
