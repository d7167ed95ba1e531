// Package render rasterizes a road graph into a styled PNG image.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/timfernando/roadcolors/pkg/graph"
)

// ErrNothingToDraw is returned for graphs whose ways resolve to no
// drawable geometry.
var ErrNothingToDraw = errors.New("graph has no drawable ways")

// Options are the pass-through rendering knobs.
type Options struct {
	SizeInches float64 // square canvas edge, inches
	DPI        int
	LineWidth  float64 // points; scaled by DPI at draw time
	EdgeAlpha  float64
	Margin     float64 // fraction of the canvas left blank on each side
	Background string  // hex color
}

// DefaultOptions match the classic 20-inch white-background road poster.
func DefaultOptions() Options {
	return Options{
		SizeInches: 20,
		DPI:        300,
		LineWidth:  1.0,
		EdgeAlpha:  0.98,
		Margin:     0.02,
		Background: "#ffffff",
	}
}

// ColorFunc picks the stroke color for a way.
type ColorFunc func(w graph.Way) string

// Renderer draws road graphs with fixed options.
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	if opts.SizeInches <= 0 {
		opts.SizeInches = 20
	}
	if opts.DPI <= 0 {
		opts.DPI = 300
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1.0
	}
	if opts.EdgeAlpha <= 0 || opts.EdgeAlpha > 1 {
		opts.EdgeAlpha = 0.98
	}
	if opts.Background == "" {
		opts.Background = "#ffffff"
	}
	return &Renderer{opts: opts}
}

// Render draws every way in the graph, colored by colorFor.
func (r *Renderer) Render(g *graph.Graph, colorFor ColorFunc) (image.Image, error) {
	if g.Empty() {
		return nil, ErrNothingToDraw
	}

	side := int(r.opts.SizeInches * float64(r.opts.DPI))
	dc := gg.NewContext(side, side)

	bg, err := parseHex(r.opts.Background)
	if err != nil {
		return nil, err
	}
	dc.SetRGB(bg[0], bg[1], bg[2])
	dc.Clear()

	proj := newProjection(g.BBox(), side, r.opts.Margin)

	// Line width is given in points; convert to device pixels.
	dc.SetLineWidth(r.opts.LineWidth * float64(r.opts.DPI) / 72.0)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	drawn := 0
	for _, w := range g.Ways {
		pts := g.Points(w)
		if len(pts) < 2 {
			continue
		}

		rgb, err := parseHex(colorFor(w))
		if err != nil {
			return nil, fmt.Errorf("way %d: %w", w.ID, err)
		}
		dc.SetRGBA(rgb[0], rgb[1], rgb[2], r.opts.EdgeAlpha)

		x, y := proj.point(pts[0].Lat, pts[0].Lon)
		dc.MoveTo(x, y)
		for _, p := range pts[1:] {
			x, y = proj.point(p.Lat, p.Lon)
			dc.LineTo(x, y)
		}
		dc.Stroke()
		drawn++
	}

	if drawn == 0 {
		return nil, ErrNothingToDraw
	}
	return dc.Image(), nil
}

// SavePNG renders the graph and writes it to path.
func (r *Renderer) SavePNG(path string, g *graph.Graph, colorFor ColorFunc) error {
	img, err := r.Render(g, colorFor)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// projection maps lat/lon to canvas pixels via Web Mercator, fit to the
// canvas with equal scaling on both axes.
type projection struct {
	scale   float64
	offsetX float64
	offsetY float64
}

func newProjection(b graph.BBox, side int, margin float64) projection {
	minX, minY := mercator(b.MaxLat, b.MinLon) // north-west corner
	maxX, maxY := mercator(b.MinLat, b.MaxLon) // south-east corner

	spanX := maxX - minX
	spanY := maxY - minY
	span := math.Max(spanX, spanY)
	if span <= 0 {
		// Degenerate extent (single node); any finite scale will do.
		span = 1e-9
	}

	usable := float64(side) * (1 - 2*margin)
	scale := usable / span

	// Center the smaller span.
	offsetX := float64(side)/2 - (minX+spanX/2)*scale
	offsetY := float64(side)/2 - (minY+spanY/2)*scale

	return projection{scale: scale, offsetX: offsetX, offsetY: offsetY}
}

func (p projection) point(lat, lon float64) (float64, float64) {
	x, y := mercator(lat, lon)
	return x*p.scale + p.offsetX, y*p.scale + p.offsetY
}

// mercator projects to Web Mercator unit space: x grows east, y grows
// south, both in [0, 1] over the full world.
func mercator(lat, lon float64) (float64, float64) {
	// Clamp away from the poles where the projection diverges.
	lat = math.Max(-85.05112878, math.Min(85.05112878, lat))
	latRad := lat * math.Pi / 180

	x := (lon + 180) / 360
	y := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2
	return x, y
}

// parseHex converts "#rrggbb" to normalized RGB channels.
func parseHex(hex string) ([3]float64, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return [3]float64{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return [3]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255}, nil
}
