package runs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/timfernando/roadcolors/pkg/db"
)

// ListAction prints the recent run history as a table.
func ListAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	fmt.Printf("%-6s %-20s %-30s %-8s %-8s %-8s %-8s\n",
		"ID", "Created", "Place", "Status", "Ways", "Words", "Network")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range runs {
		place := r.Place
		if len(place) > 30 {
			place = place[:27] + "..."
		}
		fmt.Printf("%-6d %-20s %-30s %-8s %-8d %-8d %-8s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			place,
			r.Status,
			r.WayCount,
			r.WordCount,
			r.NetworkType,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'roadcolors runs show <id>' to see details\n")

	return nil
}

// parseRunID parses a run ID argument, rejecting anything that is not a
// bare decimal number.
func parseRunID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run ID %q", s)
	}
	return id, nil
}

// ShowAction prints the full record for one run. With no argument it
// shows the most recent run.
func ShowAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var runID int64
	if c.Args().Len() > 0 {
		runID, err = parseRunID(c.Args().First())
		if err != nil {
			return err
		}
	} else {
		runID, err = database.LatestRunID()
		if err != nil {
			return err
		}
	}

	r, err := database.GetRunByID(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d\n", r.RunID)
	fmt.Printf("  Place:        %s (%s query)\n", r.Place, r.QueryType)
	fmt.Printf("  Created:      %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Status:       %s\n", r.Status)
	if r.Status != "success" {
		fmt.Printf("  Error:        [%s] %s\n", r.ErrorType, r.ErrorMessage)
	}
	fmt.Printf("  Network:      %s\n", r.NetworkType)
	fmt.Printf("  Ways:         %d (%d named)\n", r.WayCount, r.NamedWayCount)
	fmt.Printf("  Words:        %d distinct, key size %d\n", r.WordCount, r.KeySize)
	if r.DetectedLanguage != "" {
		fmt.Printf("  Language:     %s\n", r.DetectedLanguage)
	}
	if r.ImagePath != "" {
		fmt.Printf("  Image:        %s\n", r.ImagePath)
	}
	if r.PaletteJSON != "" {
		fmt.Printf("  Palette:      %s\n", r.PaletteJSON)
	}
	if r.TopKeywords != "" {
		fmt.Printf("  Top words:    %s\n", r.TopKeywords)
	}
	fmt.Printf("  Duration:     %dms\n", r.DurationMS)

	return nil
}
