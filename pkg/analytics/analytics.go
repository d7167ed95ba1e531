// Package analytics tokenizes road names and builds word-frequency tables.
package analytics

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// defaultStopWords are excluded from frequency counting regardless of
// locale. Locale-specific lists live in pkg/detector and are merged in
// once the road-name language is known.
var defaultStopWords = []string{
	"the", "le",
}

type Analytics struct {
	stopWords map[string]struct{}
}

// New builds an Analytics with the default stop words plus any extra lists
// (user-supplied files, locale lists).
func New(extra ...[]string) *Analytics {
	a := &Analytics{stopWords: make(map[string]struct{})}
	a.AddStopWords(defaultStopWords)
	for _, list := range extra {
		a.AddStopWords(list)
	}
	return a
}

// AddStopWords merges a list into the stop-word set. Words are normalized
// to lowercase.
func (a *Analytics) AddStopWords(words []string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			a.stopWords[w] = struct{}{}
		}
	}
}

// IsStopword checks if a word is excluded from frequency counting.
func (a *Analytics) IsStopword(word string) bool {
	_, exists := a.stopWords[strings.ToLower(word)]
	return exists
}

// WordFrequency tokenizes road names and counts word occurrences.
// Words are lowercased and trimmed of surrounding punctuation; stop words,
// single characters and all-digit tokens are skipped.
func (a *Analytics) WordFrequency(names []string) map[string]int {
	frequencies := make(map[string]int)

	for _, name := range names {
		for _, word := range strings.Fields(strings.ToLower(name)) {
			word = strings.TrimFunc(word, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsNumber(r)
			})

			if len([]rune(word)) <= 1 || allDigits(word) {
				continue
			}
			if _, exists := a.stopWords[word]; exists {
				continue
			}

			frequencies[word]++
		}
	}

	return frequencies
}

func allDigits(word string) bool {
	if word == "" {
		return true
	}
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// stopWordsFile is the schema of a --stop-words YAML document.
type stopWordsFile struct {
	StopWords []string `yaml:"stop_words"`
}

// LoadStopWords reads a user stop-word list from a YAML file.
func LoadStopWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stop words file: %w", err)
	}

	var f stopWordsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse stop words file: %w", err)
	}
	return f.StopWords, nil
}
