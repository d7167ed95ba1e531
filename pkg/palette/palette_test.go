package palette

import (
	"encoding/json"
	"reflect"
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestGenerateSizeAndValidity(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 6, 9} {
		words := make([]string, n)
		for i := range words {
			words[i] = string(rune('a' + i))
		}

		key := Generate(words)
		if key.Len() != n {
			t.Errorf("Generate(%d words).Len() = %d, want %d", n, key.Len(), n)
		}

		seen := make(map[string]bool)
		for _, e := range key.Entries() {
			if !hexPattern.MatchString(e.Hex) {
				t.Errorf("entry %q has invalid color %q", e.Word, e.Hex)
			}
			if seen[e.Hex] {
				t.Errorf("color %q assigned twice", e.Hex)
			}
			seen[e.Hex] = true
		}
	}
}

func TestGenerateEveryWordKeyed(t *testing.T) {
	words := []string{"street", "road", "avenue", "lane", "close", "way"}
	key := Generate(words)

	for _, w := range words {
		if _, ok := key.ColorFor(w); !ok {
			t.Errorf("ranked word %q missing from palette key", w)
		}
	}
}

func TestGenerateInterleavesRanks(t *testing.T) {
	// Six ranked words split into halves [0 1 2] and [3 4 5], zipped to
	// 0 3 1 4 2 5 so neighboring ranks land on distant hues.
	key := Generate([]string{"w0", "w1", "w2", "w3", "w4", "w5"})

	var order []string
	for _, e := range key.Entries() {
		order = append(order, e.Word)
	}
	want := []string{"w0", "w3", "w1", "w4", "w2", "w5"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("entry order = %v, want %v", order, want)
	}
}

func TestGenerateOddCount(t *testing.T) {
	key := Generate([]string{"w0", "w1", "w2", "w3", "w4"})

	var order []string
	for _, e := range key.Entries() {
		order = append(order, e.Word)
	}
	want := []string{"w0", "w2", "w1", "w3", "w4"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("entry order = %v, want %v", order, want)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	words := []string{"street", "road", "avenue", "lane"}

	first := Generate(words)
	for i := 0; i < 10; i++ {
		if got := Generate(words); !reflect.DeepEqual(got.Entries(), first.Entries()) {
			t.Fatalf("Generate() not deterministic: %v vs %v", got.Entries(), first.Entries())
		}
	}
}

func TestColorForRoad(t *testing.T) {
	key := Generate([]string{"street", "road"})

	tests := []struct {
		name     string
		roadName string
		wantKey  string // keyed word whose color we expect, "" for default
	}{
		{name: "matching word", roadName: "High Street", wantKey: "street"},
		{name: "case insensitive", roadName: "LOWER ROAD", wantKey: "road"},
		{name: "substring match", roadName: "Broadstreet", wantKey: "street"},
		{name: "no match falls back to gray", roadName: "The Lane", wantKey: ""},
		{name: "empty name falls back to gray", roadName: "", wantKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := key.ColorForRoad(tt.roadName)

			want := DefaultRoadColor
			if tt.wantKey != "" {
				var ok bool
				want, ok = key.ColorFor(tt.wantKey)
				if !ok {
					t.Fatalf("word %q not keyed", tt.wantKey)
				}
			}
			if got != want {
				t.Errorf("ColorForRoad(%q) = %q, want %q", tt.roadName, got, want)
			}
		})
	}
}

func TestColorForRoadFirstKeyWins(t *testing.T) {
	// "Station Road" contains both keyed words; the earlier entry wins.
	key := Generate([]string{"station", "road"})

	first := key.Entries()[0]
	got := key.ColorForRoad("Station Road")
	if got != first.Hex {
		t.Errorf("ColorForRoad = %q, want first entry %q (%s)", got, first.Hex, first.Word)
	}
}

func TestTopSlotGetsTopWord(t *testing.T) {
	// The most frequent word must hold the first palette slot.
	key := Generate([]string{"main", "oak", "ave"})
	if key.Entries()[0].Word != "main" {
		t.Errorf("first slot = %q, want main", key.Entries()[0].Word)
	}
}

func TestMarshalJSONPreservesOrder(t *testing.T) {
	key := Generate([]string{"b", "a", "c"})

	data, err := json.Marshal(key)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// Round-trips as a plain word->hex object.
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(m) != 3 {
		t.Errorf("marshaled %d entries, want 3", len(m))
	}
	for _, e := range key.Entries() {
		if m[e.Word] != e.Hex {
			t.Errorf("marshaled %q = %q, want %q", e.Word, m[e.Word], e.Hex)
		}
	}

	// Raw bytes keep entry order, not alphabetical order.
	wantPrefix := `{"b":`
	if string(data[:len(wantPrefix)]) != wantPrefix {
		t.Errorf("marshaled JSON starts %q, want %q", data[:len(wantPrefix)], wantPrefix)
	}
}
