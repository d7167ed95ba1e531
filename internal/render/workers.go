package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/timfernando/roadcolors/internal/common"
	"github.com/timfernando/roadcolors/models"
	"github.com/timfernando/roadcolors/pkg/analytics"
	"github.com/timfernando/roadcolors/pkg/artifacts"
	"github.com/timfernando/roadcolors/pkg/db"
	"github.com/timfernando/roadcolors/pkg/detector"
	"github.com/timfernando/roadcolors/pkg/geocoder"
	"github.com/timfernando/roadcolors/pkg/graph"
	"github.com/timfernando/roadcolors/pkg/mapreduce"
	"github.com/timfernando/roadcolors/pkg/overpass"
	"github.com/timfernando/roadcolors/pkg/palette"
	"github.com/timfernando/roadcolors/pkg/render"
	"github.com/timfernando/roadcolors/pkg/storage"
)

// mapChunkSize is how many road names each Map call covers before the
// per-chunk counts are reduced into the final table.
const mapChunkSize = 512

// Job defines a task for a worker to perform.
type Job struct {
	Config models.RenderConfig
}

// Result holds the outcome of a processed place.
type Result struct {
	Place            string
	Slug             string
	ImagePath        string
	Palette          palette.Key
	WayCount         int
	NamedWayCount    int
	WordCount        int
	TopKeywords      []string // "word:count"
	DetectedLanguage string
	Skipped          bool
	Error            error
	ErrorType        string
	DurationMS       int64
}

// Summary converts a Result into its manifest form.
func (r Result) Summary() artifacts.PlaceSummary {
	s := artifacts.PlaceSummary{
		Place:      r.Place,
		Status:     "success",
		ImagePath:  r.ImagePath,
		WayCount:   r.WayCount,
		WordCount:  r.WordCount,
		TopWords:   r.TopKeywords,
		DurationMS: r.DurationMS,
	}
	if r.Palette.Len() > 0 {
		s.Palette = make(map[string]string, r.Palette.Len())
		for _, e := range r.Palette.Entries() {
			s.Palette[e.Word] = e.Hex
		}
	}
	if r.Error != nil {
		s.Status = "error"
		s.ErrorType = r.ErrorType
		s.ErrorMessage = r.Error.Error()
	}
	return s
}

// Pipeline bundles the clients a render run needs.
type Pipeline struct {
	logger    *slog.Logger
	geocoder  *geocoder.Client
	overpass  *overpass.Client
	detector  *detector.Detector
	manager   *artifacts.Manager
	database  *db.DB
	store     storage.Storage
	stopExtra []string
}

// run fans the configs out over a fixed worker pool and collects results.
func run(logger *slog.Logger, p *Pipeline, configs []models.RenderConfig, workers int) []Result {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(configs) {
		workers = len(configs)
	}

	logger.Info("Starting render phase", "place_count", len(configs), "workers", workers)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(configs))
	results := make(chan Result, len(configs))

	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(w, logger, p, &wg, jobs, results)
	}

	for _, cfg := range configs {
		jobs <- Job{Config: cfg}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All render workers finished")

	allResults := make([]Result, 0, len(configs))
	for result := range results {
		allResults = append(allResults, result)
	}
	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Place < allResults[j].Place
	})
	return allResults
}

// worker is a goroutine that processes jobs from the jobs channel
// and sends results to the results channel.
func worker(id int, logger *slog.Logger, p *Pipeline, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		place := job.Config.Query.DisplayName()
		logger.Info("Worker started place", "worker", id, "place", place)
		result := p.RenderPlace(job.Config)
		if result.Error != nil {
			logger.Error("Worker failed place", "worker", id, "place", place,
				"error_type", result.ErrorType, "error", result.Error)
		} else {
			logger.Info("Worker finished place", "worker", id, "place", place,
				"image", result.ImagePath, "duration_ms", result.DurationMS)
		}
		results <- result
	}
}

// RenderPlace runs the full pipeline for one place: fetch the graph,
// count the road-name words, build the palette, rasterize the map and
// record the run.
func (p *Pipeline) RenderPlace(cfg models.RenderConfig) Result {
	startTime := time.Now()
	result := Result{
		Place: cfg.Query.DisplayName(),
		Slug:  common.Slug(cfg.Query.DisplayName()),
	}

	fail := func(errType string, err error) Result {
		result.Error = err
		result.ErrorType = errType
		result.DurationMS = time.Since(startTime).Milliseconds()
		p.recordRun(cfg, &result)
		return result
	}

	// Recent artifacts short-circuit the whole pipeline.
	if imagePath := p.manager.ImagePath(result.Slug); p.manager.IsFresh(imagePath) {
		p.logger.Info("Artifact still fresh, skipping", "place", result.Place, "image", imagePath)
		result.ImagePath = imagePath
		result.Skipped = true
		return result
	}

	g, err := p.FetchGraph(cfg)
	if err != nil {
		return fail(classifyFetchError(err), err)
	}
	result.WayCount = len(g.Ways)
	result.NamedWayCount = g.NamedWayCount()

	counts, lang := p.CountWords(g)
	result.WordCount = len(counts)
	result.DetectedLanguage = lang
	if len(counts) == 0 {
		return fail("no_road_names", fmt.Errorf("no usable road names in %s", result.Place))
	}

	topWords := mapreduce.TopWords(counts, cfg.KeySize)
	result.TopKeywords = mapreduce.TopKeywords(counts, cfg.KeySize)
	result.Palette = palette.Generate(topWords)

	if _, err := p.manager.PlaceDir(result.Slug); err != nil {
		return fail("save_error", err)
	}

	renderer := render.New(render.Options{
		DPI:       cfg.DPI,
		LineWidth: cfg.LineWidth,
	})
	key := result.Palette
	colorFor := func(w graph.Way) string {
		return key.ColorForRoad(strings.Join(w.Names, " "))
	}

	imagePath := p.manager.ImagePath(result.Slug)
	if err := renderer.SavePNG(imagePath, g, colorFor); err != nil {
		return fail("render_error", err)
	}
	result.ImagePath = imagePath

	if err := p.saveArtifacts(&result, counts); err != nil {
		return fail("save_error", err)
	}

	result.DurationMS = time.Since(startTime).Milliseconds()
	p.recordRun(cfg, &result)
	return result
}

// FetchGraph resolves the query to an area or point and pulls its roads.
func (p *Pipeline) FetchGraph(cfg models.RenderConfig) (*graph.Graph, error) {
	if cfg.Query.Type == models.QueryPoint {
		pt := cfg.Query.Point
		return p.overpass.WaysAround(pt.Lat, pt.Lon, pt.Radius, cfg.NetworkType)
	}

	area, err := p.geocoder.ResolveArea(cfg.Query, cfg.WhichResult)
	if err != nil {
		return nil, err
	}
	p.logger.Info("Resolved place", "place", cfg.Query.DisplayName(),
		"display_name", area.DisplayName, "osm_type", area.OSMType, "osm_id", area.OSMID)

	areaID, err := overpass.AreaID(area.OSMType, area.OSMID)
	if err != nil {
		return nil, err
	}
	return p.overpass.WaysInArea(areaID, cfg.NetworkType)
}

// CountWords builds the word-frequency table for a graph's road names,
// merging locale stop words when the detector makes a confident guess.
func (p *Pipeline) CountWords(g *graph.Graph) (map[string]int, string) {
	names := g.RoadNames()

	detectedLang := ""
	a := analytics.New(p.stopExtra)
	if lang, ok := p.detector.DetectLocale(names); ok {
		detectedLang = lang.String()
		a.AddStopWords(detector.StopWordsFor(lang))
		p.logger.Info("Detected road-name language", "language", detectedLang)
	}

	// Chunked map/reduce keeps the per-call maps small on big cities.
	var intermediate []map[string]int
	for start := 0; start < len(names); start += mapChunkSize {
		end := start + mapChunkSize
		if end > len(names) {
			end = len(names)
		}
		intermediate = append(intermediate, mapreduce.Map(names[start:end], a))
	}
	return mapreduce.Reduce(intermediate), detectedLang
}

// saveArtifacts writes the palette key JSON and the sorted word counts
// next to the rendered image.
func (p *Pipeline) saveArtifacts(result *Result, counts map[string]int) error {
	paletteJSON, err := json.MarshalIndent(result.Palette, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal palette: %w", err)
	}
	if err := p.store.SaveFile(p.manager.PalettePath(result.Slug), paletteJSON); err != nil {
		return err
	}

	words := formatWordCountsSorted(counts)
	return p.store.SaveFile(p.manager.WordsPath(result.Slug), []byte(words))
}

// recordRun stores the run outcome in the history database. Recording is
// best-effort; a dead database never fails the render itself.
func (p *Pipeline) recordRun(cfg models.RenderConfig, result *Result) {
	if p.database == nil {
		return
	}

	run := &db.Run{
		Place:            result.Place,
		QueryType:        string(cfg.Query.Type),
		NetworkType:      cfg.NetworkType,
		KeySize:          cfg.KeySize,
		Status:           "success",
		WayCount:         result.WayCount,
		NamedWayCount:    result.NamedWayCount,
		WordCount:        result.WordCount,
		DetectedLanguage: result.DetectedLanguage,
		ImagePath:        result.ImagePath,
		DurationMS:       result.DurationMS,
	}
	if result.Error != nil {
		run.Status = "failed"
		run.ErrorType = result.ErrorType
		run.ErrorMessage = result.Error.Error()
	}
	if result.Palette.Len() > 0 {
		if data, err := json.Marshal(result.Palette); err == nil {
			run.PaletteJSON = string(data)
		}
	}
	if len(result.TopKeywords) > 0 {
		if data, err := json.Marshal(result.TopKeywords); err == nil {
			run.TopKeywords = string(data)
		}
	}

	if _, err := p.database.InsertRun(run); err != nil {
		p.logger.Error("failed to record run", "place", result.Place, "error", err)
	}
}

func classifyFetchError(err error) string {
	switch {
	case isAny(err, geocoder.ErrPlaceNotFound, geocoder.ErrNoPolygonResult):
		return "geocode_error"
	case isAny(err, overpass.ErrEmptyGraph):
		return "no_roads"
	default:
		return "fetch_error"
	}
}

func isAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// formatWordCountsSorted formats word counts as sorted plain text.
// Format: "word:count\n" sorted by count descending for easy parsing.
func formatWordCountsSorted(counts map[string]int) string {
	keywords := mapreduce.TopKeywords(counts, len(counts))

	var sb strings.Builder
	for _, kw := range keywords {
		sb.WriteString(kw)
		sb.WriteByte('\n')
	}
	return sb.String()
}
