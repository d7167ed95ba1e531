package mapreduce

import "github.com/timfernando/roadcolors/pkg/analytics"

// Map generates a word frequency map for one batch of road names.
func Map(names []string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(names)
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
