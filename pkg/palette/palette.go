// Package palette assigns visually distinct colors to ranked words.
package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultRoadColor is used for roads whose name matches no keyed word.
const DefaultRoadColor = "#c6c6c6"

// HSLuv saturation and lightness for generated palettes. The hue is the
// only free axis, so equal hue spacing yields perceptually equal spacing.
const (
	paletteSaturation = 0.90
	paletteLightness  = 0.65
)

// Entry is one word-to-color assignment.
type Entry struct {
	Word string
	Hex  string
}

// Key is an ordered word-to-color mapping. Order matters twice: it fixes
// which word wins when a road name contains several keyed words, and it
// records the interleaved assignment for the palette legend.
type Key struct {
	entries []Entry
}

// Generate builds a palette key for words given in rank order (most
// frequent first). Hues are swept evenly around the HSLuv circle, and the
// words are interleaved (first half zipped with second half) so that
// neighboring ranks land on distant hues. Deterministic for a fixed input.
func Generate(words []string) Key {
	colors := huslPalette(len(words))
	ordered := interleave(words)

	entries := make([]Entry, len(ordered))
	for i, w := range ordered {
		entries[i] = Entry{Word: w, Hex: colors[i]}
	}
	return Key{entries: entries}
}

// huslPalette generates n hex colors evenly spaced in HSLuv hue.
func huslPalette(n int) []string {
	colors := make([]string, n)
	for i := 0; i < n; i++ {
		hue := (float64(i)/float64(n) + 0.01) * 359.0
		c := colorful.HSLuv(hue, paletteSaturation, paletteLightness).Clamped()
		colors[i] = c.Hex()
	}
	return colors
}

// interleave splits the list in half and zips the halves, adding distance
// between the hues assigned to consecutively ranked words.
func interleave(words []string) []string {
	middle := len(words) / 2
	out := make([]string, 0, len(words))
	for i := 0; i < middle; i++ {
		out = append(out, words[i], words[middle+i])
	}
	if len(words)%2 == 1 {
		out = append(out, words[len(words)-1])
	}
	return out
}

// Len returns the number of keyed words.
func (k Key) Len() int {
	return len(k.entries)
}

// Entries returns the assignments in key order.
func (k Key) Entries() []Entry {
	return k.entries
}

// ColorFor returns the assigned color for a word, if keyed.
func (k Key) ColorFor(word string) (string, bool) {
	for _, e := range k.entries {
		if e.Word == word {
			return e.Hex, true
		}
	}
	return "", false
}

// ColorForRoad returns the color for a road name: the first keyed word
// contained in the lowercased name wins, otherwise the default gray.
func (k Key) ColorForRoad(name string) string {
	name = strings.ToLower(name)
	for _, e := range k.entries {
		if strings.Contains(name, e.Word) {
			return e.Hex
		}
	}
	return DefaultRoadColor
}

// MarshalJSON renders the key as a word-to-hex object preserving key order,
// the format of the palette artifact written next to each map.
func (k Key) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range k.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		word, err := json.Marshal(e.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(word)
		fmt.Fprintf(&buf, ":%q", e.Hex)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
