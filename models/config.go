package models

// RenderConfig holds runtime configuration for a render run.
// All values come from CLI flags or a batch places file.
type RenderConfig struct {
	Query       PlaceQuery
	WhichResult int     // 1-based Nominatim result index to start from
	KeySize     int     // number of words assigned distinct colors
	LineWidth   float64 // points, scaled by dpi at render time
	DPI         int
	NetworkType string // all, drive, walk or bike
	OutputDir   string
}

// Defaults matching the single-invocation render path.
const (
	DefaultWhichResult = 1
	DefaultKeySize     = 6
	DefaultLineWidth   = 1.0
	DefaultDPI         = 300
	DefaultNetworkType = "all"
	DefaultWorkers     = 2
)
