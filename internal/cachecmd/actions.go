package cachecmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/timfernando/roadcolors/pkg/caching"
)

// PruneAction removes expired API responses from the cache.
func PruneAction(c *cli.Context) error {
	maxAge, err := time.ParseDuration(c.String("max-age"))
	if err != nil {
		return fmt.Errorf("invalid max-age duration: %w", err)
	}

	cache, err := caching.NewCache(c.String("cache-dir"), maxAge)
	if err != nil {
		return err
	}

	removed, err := cache.Prune()
	if err != nil {
		return err
	}
	fmt.Printf("Pruned %d expired entries from %s\n", removed, cache.Path())
	return nil
}

// ClearAction empties the cache directory.
func ClearAction(c *cli.Context) error {
	cache, err := caching.NewCache(c.String("cache-dir"), 0)
	if err != nil {
		return err
	}

	removed, err := cache.Clear()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d entries from %s\n", removed, cache.Path())
	return nil
}
