package mapreduce

import (
	"reflect"
	"testing"

	"github.com/timfernando/roadcolors/pkg/analytics"
)

func TestMapReduce(t *testing.T) {
	a := analytics.New()

	chunk1 := Map([]string{"Main St", "Main St"}, a)
	chunk2 := Map([]string{"Oak Ave", "Main Rd"}, a)

	got := Reduce([]map[string]int{chunk1, chunk2})

	want := map[string]int{"main": 3, "st": 2, "oak": 1, "ave": 1, "rd": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reduce() = %v, want %v", got, want)
	}
}

func TestReduceEmpty(t *testing.T) {
	got := Reduce(nil)
	if len(got) != 0 {
		t.Errorf("Reduce(nil) = %v, want empty", got)
	}
}

func TestTopWords(t *testing.T) {
	counts := map[string]int{
		"street": 120,
		"road":   80,
		"lane":   80,
		"avenue": 12,
		"close":  3,
	}

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{
			name: "ranked by count, ties alphabetical",
			n:    4,
			want: []string{"street", "lane", "road", "avenue"},
		},
		{
			name: "n larger than table",
			n:    10,
			want: []string{"street", "lane", "road", "avenue", "close"},
		},
		{
			name: "zero n",
			n:    0,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopWords(counts, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("TopWords() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("TopWords()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTopWordsDeterministic(t *testing.T) {
	counts := map[string]int{"a1": 5, "b2": 5, "c3": 5, "d4": 5}

	first := TopWords(counts, 4)
	for i := 0; i < 20; i++ {
		if got := TopWords(counts, 4); !reflect.DeepEqual(got, first) {
			t.Fatalf("TopWords() not deterministic: %v vs %v", got, first)
		}
	}
}

func TestTopKeywords(t *testing.T) {
	counts := map[string]int{"street": 3, "road": 1}

	got := TopKeywords(counts, 2)
	want := []string{"street:3", "road:1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords() = %v, want %v", got, want)
	}
}

func TestTopNegativeN(t *testing.T) {
	counts := map[string]int{"street": 3, "road": 1}

	if got := TopKeywords(counts, -1); len(got) != 0 {
		t.Errorf("TopKeywords(counts, -1) = %v, want empty", got)
	}
	if got := TopWords(counts, -1); len(got) != 0 {
		t.Errorf("TopWords(counts, -1) = %v, want empty", got)
	}
}

func TestMainStreetRanking(t *testing.T) {
	// Edge names "Main St", "Main St", "Oak Ave": "main" must outrank
	// "oak" and "ave".
	a := analytics.New()
	counts := Map([]string{"Main St", "Main St", "Oak Ave"}, a)

	top := TopWords(counts, 4)
	if top[0] != "main" && top[0] != "st" {
		t.Fatalf("top word = %q, want a count-2 word", top[0])
	}
	if counts["main"] <= counts["oak"] || counts["main"] <= counts["ave"] {
		t.Errorf("main (%d) should outrank oak (%d) and ave (%d)",
			counts["main"], counts["oak"], counts["ave"])
	}
	// Alphabetical tie-break puts "main" ahead of "st" at equal counts.
	if top[0] != "main" {
		t.Errorf("top word = %q, want main", top[0])
	}
}
