// Package overpass fetches road networks from the Overpass API and decodes
// them into graphs.
package overpass

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/timfernando/roadcolors/pkg/graph"
)

// response is the top-level Overpass JSON document.
type response struct {
	Elements []element `json:"elements"`
}

// element represents a single element returned from the Overpass API.
type element struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat,omitempty"`
	Lon   float64           `json:"lon,omitempty"`
	Tags  map[string]string `json:"tags,omitempty"`
	Nodes []int64           `json:"nodes,omitempty"` // for ways, list of node IDs
}

// Decode parses an Overpass JSON body into a road graph. Ways keep their
// name and highway tags; everything else is dropped.
func Decode(data []byte) (*graph.Graph, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	g := graph.New()
	for _, el := range resp.Elements {
		switch el.Type {
		case "node":
			g.Nodes[el.ID] = graph.Node{ID: el.ID, Lat: el.Lat, Lon: el.Lon}
		case "way":
			if len(el.Nodes) < 2 {
				continue
			}
			g.Ways = append(g.Ways, graph.Way{
				ID:      el.ID,
				Names:   splitNames(el.Tags["name"]),
				Highway: el.Tags["highway"],
				NodeIDs: el.Nodes,
			})
		}
	}
	return g, nil
}

// splitNames splits an OSM name tag on ";", the tag's alternate-name
// separator. An absent tag yields nil.
func splitNames(tag string) []string {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, ";")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
