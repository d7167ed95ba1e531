package graph

import (
	"reflect"
	"testing"
)

func testGraph() *Graph {
	g := New()
	g.Nodes[1] = Node{ID: 1, Lat: 51.50, Lon: -0.12}
	g.Nodes[2] = Node{ID: 2, Lat: 51.52, Lon: -0.10}
	g.Nodes[3] = Node{ID: 3, Lat: 51.49, Lon: -0.14}
	g.Ways = []Way{
		{ID: 10, Names: []string{"High Street"}, Highway: "residential", NodeIDs: []int64{1, 2}},
		{ID: 11, Names: nil, Highway: "service", NodeIDs: []int64{2, 3}},
		{ID: 12, Names: []string{"Mill Road", "Old Mill Road"}, Highway: "tertiary", NodeIDs: []int64{1, 3}},
	}
	return g
}

func TestBBox(t *testing.T) {
	g := testGraph()
	got := g.BBox()
	want := BBox{MinLat: 51.49, MinLon: -0.14, MaxLat: 51.52, MaxLon: -0.10}
	if got != want {
		t.Errorf("BBox() = %+v, want %+v", got, want)
	}
}

func TestBBoxEmptyGraph(t *testing.T) {
	g := New()
	if got := g.BBox(); got != (BBox{}) {
		t.Errorf("BBox() of empty graph = %+v, want zero", got)
	}
}

func TestRoadNames(t *testing.T) {
	g := testGraph()
	got := g.RoadNames()
	want := []string{"High Street", "Mill Road", "Old Mill Road"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RoadNames() = %v, want %v", got, want)
	}
}

func TestNamedWayCount(t *testing.T) {
	g := testGraph()
	if got := g.NamedWayCount(); got != 2 {
		t.Errorf("NamedWayCount() = %d, want 2", got)
	}
}

func TestPointsSkipsMissingNodes(t *testing.T) {
	g := testGraph()
	w := Way{NodeIDs: []int64{1, 99, 2}}

	pts := g.Points(w)
	if len(pts) != 2 {
		t.Fatalf("Points() returned %d nodes, want 2", len(pts))
	}
	if pts[0].ID != 1 || pts[1].ID != 2 {
		t.Errorf("Points() = %+v, want nodes 1 and 2", pts)
	}
}

func TestEmpty(t *testing.T) {
	if !New().Empty() {
		t.Error("New().Empty() = false, want true")
	}
	if testGraph().Empty() {
		t.Error("testGraph().Empty() = true, want false")
	}
}
