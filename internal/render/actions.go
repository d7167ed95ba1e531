package render

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/timfernando/roadcolors/models"
	"github.com/timfernando/roadcolors/pkg/analytics"
	"github.com/timfernando/roadcolors/pkg/artifacts"
	"github.com/timfernando/roadcolors/pkg/caching"
	"github.com/timfernando/roadcolors/pkg/db"
	"github.com/timfernando/roadcolors/pkg/detector"
	"github.com/timfernando/roadcolors/pkg/fetcher"
	"github.com/timfernando/roadcolors/pkg/geocoder"
	"github.com/timfernando/roadcolors/pkg/overpass"
)

// Flags shared by the render and words commands.
func QueryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "place", Usage: "free-text place name to geocode"},
		&cli.StringFlag{Name: "query-type", Value: string(models.QueryString), Usage: "string, structured or point"},
		&cli.StringFlag{Name: "city", Usage: "structured query: city"},
		&cli.StringFlag{Name: "county", Usage: "structured query: county"},
		&cli.StringFlag{Name: "state", Usage: "structured query: state"},
		&cli.StringFlag{Name: "country", Usage: "structured query: country"},
		&cli.StringFlag{Name: "point", Usage: `point query: "lat,lon"`},
		&cli.Float64Flag{Name: "radius", Value: 1500, Usage: "point query radius in meters"},
		&cli.IntFlag{Name: "which-result", Value: models.DefaultWhichResult, Usage: "1-based geocoder result to start from"},
		&cli.StringFlag{Name: "network-type", Value: models.DefaultNetworkType, Usage: "road filter: all, drive, walk or bike"},
		&cli.StringFlag{Name: "stop-words", Usage: "YAML file with extra stop words"},
		&cli.StringFlag{Name: "cache-dir", Value: "roadcolors-cache", Usage: "API response cache directory"},
		&cli.StringFlag{Name: "max-age", Value: "720h", Usage: "max age for cached API responses"},
		&cli.BoolFlag{Name: "force-fetch", Usage: "ignore cached API responses"},
		&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
	}
}

// RenderFlags are the render-only knobs, forwarded to the rasterizer.
func RenderFlags() []cli.Flag {
	return append(QueryFlags(),
		&cli.IntFlag{Name: "key-size", Value: models.DefaultKeySize, Usage: "number of words assigned distinct colors"},
		&cli.Float64Flag{Name: "line-width", Value: models.DefaultLineWidth, Usage: "road line width in points"},
		&cli.IntFlag{Name: "dpi", Value: models.DefaultDPI, Usage: "output image resolution"},
		&cli.StringFlag{Name: "output-dir", Value: artifacts.DefaultBaseDir, Usage: "artifact output directory"},
		&cli.StringFlag{Name: "places-file", Usage: "YAML batch file rendering many places"},
		&cli.IntFlag{Name: "workers", Value: models.DefaultWorkers, Usage: "batch mode worker count"},
	)
}

// NewLogger builds the stderr JSON logger every command uses.
func NewLogger(quiet bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// maxAgeFromFlags parses --max-age, forced to zero (cache disabled,
// artifacts always stale) under --force-fetch.
func maxAgeFromFlags(c *cli.Context) (time.Duration, error) {
	if c.Bool("force-fetch") {
		return 0, nil
	}
	maxAge, err := time.ParseDuration(c.String("max-age"))
	if err != nil {
		return 0, fmt.Errorf("invalid max-age duration: %w", err)
	}
	return maxAge, nil
}

// NewPipeline wires the shared clients from CLI flags.
func NewPipeline(c *cli.Context, logger *slog.Logger) (*Pipeline, error) {
	maxAge, err := maxAgeFromFlags(c)
	if err != nil {
		return nil, err
	}

	cache, err := caching.NewCache(c.String("cache-dir"), maxAge)
	if err != nil {
		return nil, err
	}

	var stopExtra []string
	if c.IsSet("stop-words") {
		stopExtra, err = analytics.LoadStopWords(c.String("stop-words"))
		if err != nil {
			return nil, err
		}
	}

	f := fetcher.NewFetcher()
	return &Pipeline{
		logger:    logger,
		geocoder:  geocoder.NewClient(f, cache),
		overpass:  overpass.NewClient(f, cache),
		detector:  detector.New(),
		stopExtra: stopExtra,
	}, nil
}

// RenderAction runs the full place -> map pipeline for a single place or,
// with --places-file, a batch over a worker pool.
func RenderAction(c *cli.Context) error {
	logger := NewLogger(c.Bool("quiet"))

	if !overpass.ValidNetworkType(c.String("network-type")) {
		return fmt.Errorf("unknown network type %q (want one of %s)",
			c.String("network-type"), strings.Join(overpass.NetworkTypes(), ", "))
	}
	if c.Int("key-size") <= 0 {
		return fmt.Errorf("key-size must be positive, got %d", c.Int("key-size"))
	}

	maxAge, err := maxAgeFromFlags(c)
	if err != nil {
		return err
	}
	manager, err := artifacts.NewManager(c.String("output-dir"), maxAge)
	if err != nil {
		return err
	}

	database, err := db.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	pipeline, err := NewPipeline(c, logger)
	if err != nil {
		return err
	}
	pipeline.manager = manager
	pipeline.database = database

	var configs []models.RenderConfig
	workers := models.DefaultWorkers

	if c.IsSet("places-file") {
		if c.IsSet("place") || c.IsSet("point") || c.IsSet("city") {
			return fmt.Errorf("cannot combine --places-file with single-place flags")
		}
		batch, err := models.LoadBatchConfig(c.String("places-file"))
		if err != nil {
			return err
		}
		configs = batchConfigs(c, batch)
		workers = batch.Workers
		if c.IsSet("workers") {
			workers = c.Int("workers")
		}
	} else {
		query, err := BuildQuery(c)
		if err != nil {
			return err
		}
		configs = []models.RenderConfig{configFromFlags(c, query)}
		workers = 1
	}

	results := run(logger, pipeline, configs, workers)

	failed := 0
	summaries := make([]artifacts.PlaceSummary, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, r.Summary())
		if r.Error != nil {
			failed++
			continue
		}
		if r.Skipped {
			fmt.Printf("Up to date %s -> %s\n", r.Place, r.ImagePath)
			continue
		}
		fmt.Printf("Rendered %s -> %s\n", r.Place, r.ImagePath)
		for _, e := range r.Palette.Entries() {
			fmt.Printf("  %-20s %s\n", e.Word, e.Hex)
		}
	}

	if len(results) > 1 {
		manifestPath, err := manager.WriteSummary(summaries)
		if err != nil {
			logger.Error("failed to write summary manifest", "error", err)
		} else {
			fmt.Printf("Summary manifest saved to: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d places failed", failed, len(results))
	}
	return nil
}

// BuildQuery assembles a PlaceQuery from the single-place flags.
func BuildQuery(c *cli.Context) (models.PlaceQuery, error) {
	queryType, err := models.ParseQueryType(c.String("query-type"))
	if err != nil {
		return models.PlaceQuery{}, err
	}

	query := models.PlaceQuery{Type: queryType}
	switch queryType {
	case models.QueryStructured:
		query.Structured = &models.StructuredQuery{
			City:    c.String("city"),
			County:  c.String("county"),
			State:   c.String("state"),
			Country: c.String("country"),
		}
	case models.QueryPoint:
		lat, lon, err := parsePoint(c.String("point"))
		if err != nil {
			return models.PlaceQuery{}, err
		}
		name := c.String("place")
		if name == "" {
			name = c.String("point")
		}
		query.Point = &models.PointQuery{
			Name:   name,
			Lat:    lat,
			Lon:    lon,
			Radius: c.Float64("radius"),
		}
	default:
		query.Text = c.String("place")
	}

	if err := query.Validate(); err != nil {
		return models.PlaceQuery{}, err
	}
	return query, nil
}

func parsePoint(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf(`point must be "lat,lon", got %q`, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	return lat, lon, nil
}

func configFromFlags(c *cli.Context, query models.PlaceQuery) models.RenderConfig {
	return models.RenderConfig{
		Query:       query,
		WhichResult: c.Int("which-result"),
		KeySize:     c.Int("key-size"),
		LineWidth:   c.Float64("line-width"),
		DPI:         c.Int("dpi"),
		NetworkType: c.String("network-type"),
		OutputDir:   c.String("output-dir"),
	}
}

// batchConfigs expands a batch file into per-place configs, with the CLI
// flags as defaults and per-entry overrides on top.
func batchConfigs(c *cli.Context, batch *models.BatchConfig) []models.RenderConfig {
	configs := make([]models.RenderConfig, 0, len(batch.Places))
	for _, entry := range batch.Places {
		cfg := models.RenderConfig{
			Query:       entry.PlaceQuery,
			WhichResult: c.Int("which-result"),
			KeySize:     c.Int("key-size"),
			LineWidth:   c.Float64("line-width"),
			DPI:         c.Int("dpi"),
			NetworkType: c.String("network-type"),
			OutputDir:   c.String("output-dir"),
		}
		if entry.WhichResult > 0 {
			cfg.WhichResult = entry.WhichResult
		}
		if entry.KeySize > 0 {
			cfg.KeySize = entry.KeySize
		}
		if entry.LineWidth > 0 {
			cfg.LineWidth = entry.LineWidth
		}
		if entry.DPI > 0 {
			cfg.DPI = entry.DPI
		}
		if entry.NetworkType != "" {
			cfg.NetworkType = entry.NetworkType
		}
		configs = append(configs, cfg)
	}
	return configs
}
