package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlaceEntry is one place in a batch file, with optional per-place
// overrides of the run defaults.
type PlaceEntry struct {
	PlaceQuery  `yaml:",inline"`
	WhichResult int     `yaml:"which_result,omitempty"`
	KeySize     int     `yaml:"key_size,omitempty"`
	LineWidth   float64 `yaml:"line_width,omitempty"`
	DPI         int     `yaml:"dpi,omitempty"`
	NetworkType string  `yaml:"network_type,omitempty"`
}

// BatchConfig is the schema of a --places-file YAML document.
type BatchConfig struct {
	Workers int          `yaml:"workers,omitempty"`
	Places  []PlaceEntry `yaml:"places"`
}

// LoadBatchConfig reads and validates a batch places file.
func LoadBatchConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read places file: %w", err)
	}

	var cfg BatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse places file: %w", err)
	}

	if len(cfg.Places) == 0 {
		return nil, fmt.Errorf("places file %s lists no places", path)
	}
	for i := range cfg.Places {
		if cfg.Places[i].Type == "" {
			cfg.Places[i].Type = QueryString
		}
		if err := cfg.Places[i].Validate(); err != nil {
			return nil, fmt.Errorf("places file entry %d: %w", i+1, err)
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	return &cfg, nil
}
