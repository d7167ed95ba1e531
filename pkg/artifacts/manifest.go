package artifacts

import (
	"encoding/json"
	"fmt"
	"time"
)

// SummaryManifest is written after a batch render. It gives a lightweight
// overview of every place, its status and top words, without opening the
// per-place artifacts.
type SummaryManifest struct {
	GeneratedAt string         `json:"generated_at"`
	TotalPlaces int            `json:"total_places"`
	Successful  int            `json:"successful"`
	Failed      int            `json:"failed"`
	Results     []PlaceSummary `json:"results"`
}

// PlaceSummary is summary information for a single rendered place.
type PlaceSummary struct {
	Place        string            `json:"place"`
	Status       string            `json:"status"` // "success" or "error"
	ErrorType    string            `json:"error_type,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	ImagePath    string            `json:"image_path,omitempty"`
	WayCount     int               `json:"way_count,omitempty"`
	WordCount    int               `json:"word_count,omitempty"`
	TopWords     []string          `json:"top_words,omitempty"`
	Palette      map[string]string `json:"palette,omitempty"`
	DurationMS   int64             `json:"duration_ms,omitempty"`
}

// WriteSummary marshals and saves the batch manifest, returning its path.
func (m *Manager) WriteSummary(results []PlaceSummary) (string, error) {
	manifest := SummaryManifest{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		TotalPlaces: len(results),
		Results:     results,
	}
	for _, r := range results {
		if r.Status == "success" {
			manifest.Successful++
		} else {
			manifest.Failed++
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary manifest: %w", err)
	}

	path := m.SummaryPath()
	if err := m.store.SaveFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
