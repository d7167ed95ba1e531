// Package graph holds the in-memory road network model decoded from
// Overpass responses.
package graph

import "strings"

// Node is a point on the road network.
type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Way is an OSM way carrying a highway tag. Names holds the name tag split
// on ";" since OSM allows semicolon-separated alternates.
type Way struct {
	ID      int64
	Names   []string
	Highway string
	NodeIDs []int64
}

// Named reports whether the way has at least one non-empty name.
func (w Way) Named() bool {
	for _, n := range w.Names {
		if strings.TrimSpace(n) != "" {
			return true
		}
	}
	return false
}

// Graph is a road network for one place.
type Graph struct {
	Nodes map[int64]Node
	Ways  []Way
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{Nodes: make(map[int64]Node)}
}

// Empty reports whether the graph has no drawable ways.
func (g *Graph) Empty() bool {
	return g == nil || len(g.Ways) == 0
}

// NamedWayCount counts ways that carry a name tag.
func (g *Graph) NamedWayCount() int {
	count := 0
	for _, w := range g.Ways {
		if w.Named() {
			count++
		}
	}
	return count
}

// RoadNames returns the name strings of every named way, one entry per
// way per name. Unnamed ways are skipped, never counted.
func (g *Graph) RoadNames() []string {
	var names []string
	for _, w := range g.Ways {
		for _, n := range w.Names {
			if strings.TrimSpace(n) != "" {
				names = append(names, n)
			}
		}
	}
	return names
}

// Points resolves a way's node refs to coordinates, skipping refs the
// response never delivered.
func (g *Graph) Points(w Way) []Node {
	pts := make([]Node, 0, len(w.NodeIDs))
	for _, id := range w.NodeIDs {
		if n, ok := g.Nodes[id]; ok {
			pts = append(pts, n)
		}
	}
	return pts
}

// BBox is a geographic bounding box in degrees.
type BBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// BBox computes the bounding box over all nodes. Returns a zero box for a
// graph with no nodes.
func (g *Graph) BBox() BBox {
	if len(g.Nodes) == 0 {
		return BBox{}
	}
	first := true
	var b BBox
	for _, n := range g.Nodes {
		if first {
			b = BBox{MinLat: n.Lat, MaxLat: n.Lat, MinLon: n.Lon, MaxLon: n.Lon}
			first = false
			continue
		}
		if n.Lat < b.MinLat {
			b.MinLat = n.Lat
		}
		if n.Lat > b.MaxLat {
			b.MaxLat = n.Lat
		}
		if n.Lon < b.MinLon {
			b.MinLon = n.Lon
		}
		if n.Lon > b.MaxLon {
			b.MaxLon = n.Lon
		}
	}
	return b
}
