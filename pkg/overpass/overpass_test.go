package overpass

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/timfernando/roadcolors/pkg/fetcher"
	"github.com/timfernando/roadcolors/pkg/graph"
)

const sampleResponse = `{
  "version": 0.6,
  "generator": "Overpass API",
  "elements": [
    {"type": "node", "id": 1, "lat": 21.45, "lon": -158.01},
    {"type": "node", "id": 2, "lat": 21.46, "lon": -158.00},
    {"type": "node", "id": 3, "lat": 21.44, "lon": -158.02},
    {"type": "way", "id": 100, "nodes": [1, 2],
     "tags": {"highway": "residential", "name": "Meheula Parkway"}},
    {"type": "way", "id": 101, "nodes": [2, 3],
     "tags": {"highway": "service"}},
    {"type": "way", "id": 102, "nodes": [1],
     "tags": {"highway": "residential", "name": "Too Short"}}
  ]
}`

func TestDecode(t *testing.T) {
	g, err := Decode([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if len(g.Nodes) != 3 {
		t.Errorf("decoded %d nodes, want 3", len(g.Nodes))
	}
	// Way 102 has a single node ref and is dropped.
	if len(g.Ways) != 2 {
		t.Fatalf("decoded %d ways, want 2", len(g.Ways))
	}

	named := g.Ways[0]
	if named.ID != 100 {
		t.Errorf("first way ID = %d, want 100", named.ID)
	}
	if !reflect.DeepEqual(named.Names, []string{"Meheula Parkway"}) {
		t.Errorf("way names = %v, want [Meheula Parkway]", named.Names)
	}
	if named.Highway != "residential" {
		t.Errorf("way highway = %q, want residential", named.Highway)
	}

	if g.Ways[1].Named() {
		t.Error("unnamed way reports Named() = true")
	}

	node := g.Nodes[1]
	if node.Lat != 21.45 || node.Lon != -158.01 {
		t.Errorf("node 1 = %+v, want lat 21.45 lon -158.01", node)
	}
}

func TestDecodeBadJSON(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Error("Decode() of garbage succeeded, want error")
	}
}

func TestSplitNames(t *testing.T) {
	tests := []struct {
		tag  string
		want []string
	}{
		{tag: "", want: nil},
		{tag: "Main Street", want: []string{"Main Street"}},
		{tag: "Main Street;Broadway", want: []string{"Main Street", "Broadway"}},
		{tag: " ; ", want: []string{}},
	}

	for _, tt := range tests {
		got := splitNames(tt.tag)
		if len(got) != len(tt.want) {
			t.Errorf("splitNames(%q) = %v, want %v", tt.tag, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("splitNames(%q)[%d] = %q, want %q", tt.tag, i, got[i], tt.want[i])
			}
		}
	}
}

func TestAreaID(t *testing.T) {
	tests := []struct {
		osmType string
		osmID   int64
		want    int64
		wantErr bool
	}{
		{osmType: "relation", osmID: 123, want: 3600000123},
		{osmType: "way", osmID: 456, want: 2400000456},
		{osmType: "node", osmID: 789, wantErr: true},
	}

	for _, tt := range tests {
		got, err := AreaID(tt.osmType, tt.osmID)
		if tt.wantErr {
			if err == nil {
				t.Errorf("AreaID(%s) succeeded, want error", tt.osmType)
			}
			continue
		}
		if err != nil {
			t.Errorf("AreaID(%s) error: %v", tt.osmType, err)
			continue
		}
		if got != tt.want {
			t.Errorf("AreaID(%s, %d) = %d, want %d", tt.osmType, tt.osmID, got, tt.want)
		}
	}
}

func TestQueryBuilders(t *testing.T) {
	area := areaQuery(3600000123, "drive")
	for _, want := range []string{"[out:json]", "area(3600000123)", `"highway"`, "out skel qt;"} {
		if !strings.Contains(area, want) {
			t.Errorf("areaQuery missing %q:\n%s", want, area)
		}
	}
	if !strings.Contains(area, "motor_vehicle") {
		t.Error("drive filter missing motor_vehicle exclusion")
	}

	around := aroundQuery(21.45, -158.01, 1500, "all")
	if !strings.Contains(around, "around:1500,21.450000,-158.010000") {
		t.Errorf("aroundQuery = %s", around)
	}

	bbox := bboxQuery(graph.BBox{MinLat: 1, MinLon: 2, MaxLat: 3, MaxLon: 4}, "walk")
	if !strings.Contains(bbox, "(1.000000,2.000000,3.000000,4.000000)") {
		t.Errorf("bboxQuery = %s", bbox)
	}
}

func TestValidNetworkType(t *testing.T) {
	for _, network := range []string{"all", "drive", "walk", "bike"} {
		if !ValidNetworkType(network) {
			t.Errorf("ValidNetworkType(%s) = false", network)
		}
	}
	if ValidNetworkType("boat") {
		t.Error("ValidNetworkType(boat) = true")
	}
}

func TestClientFetchesAndDecodes(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error: %v", err)
		}
		gotQuery = r.FormValue("data")
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	client := NewClient(fetcher.NewFetcher(), nil)
	client.SetEndpoint(server.URL)

	g, err := client.WaysInArea(3600000123, "all")
	if err != nil {
		t.Fatalf("WaysInArea() error: %v", err)
	}
	if len(g.Ways) != 2 {
		t.Errorf("got %d ways, want 2", len(g.Ways))
	}
	if !strings.Contains(gotQuery, "area(3600000123)") {
		t.Errorf("posted query missing area selector: %s", gotQuery)
	}
}

func TestClientEmptyGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": []}`))
	}))
	defer server.Close()

	client := NewClient(fetcher.NewFetcher(), nil)
	client.SetEndpoint(server.URL)

	if _, err := client.WaysAround(21.45, -158.01, 500, "all"); err != ErrEmptyGraph {
		t.Errorf("WaysAround() error = %v, want ErrEmptyGraph", err)
	}
}

func TestClientRejectsUnknownNetwork(t *testing.T) {
	client := NewClient(fetcher.NewFetcher(), nil)
	if _, err := client.WaysInArea(1, "boat"); err == nil {
		t.Error("WaysInArea(boat) succeeded, want error")
	}
}
