package words

import (
	"fmt"

	"github.com/urfave/cli/v2"

	renderinternal "github.com/timfernando/roadcolors/internal/render"
	"github.com/timfernando/roadcolors/models"
	"github.com/timfernando/roadcolors/pkg/mapreduce"
)

// WordsAction fetches a place's road network and prints the ranked
// word-frequency table without rendering anything.
func WordsAction(c *cli.Context) error {
	logger := renderinternal.NewLogger(c.Bool("quiet"))

	query, err := renderinternal.BuildQuery(c)
	if err != nil {
		return err
	}

	pipeline, err := renderinternal.NewPipeline(c, logger)
	if err != nil {
		return err
	}

	cfg := models.RenderConfig{
		Query:       query,
		WhichResult: c.Int("which-result"),
		NetworkType: c.String("network-type"),
	}

	g, err := pipeline.FetchGraph(cfg)
	if err != nil {
		return fmt.Errorf("failed to fetch road network: %w", err)
	}

	counts, lang := pipeline.CountWords(g)
	if len(counts) == 0 {
		return fmt.Errorf("no usable road names in %s", query.DisplayName())
	}

	fmt.Printf("%s: %d ways, %d named, %d distinct words", query.DisplayName(),
		len(g.Ways), g.NamedWayCount(), len(counts))
	if lang != "" {
		fmt.Printf(" (language: %s)", lang)
	}
	fmt.Println()
	fmt.Println()

	mapreduce.PrintTopKeywords(counts, c.Int("limit"))
	return nil
}
