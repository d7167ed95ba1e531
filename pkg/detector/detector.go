// Package detector guesses the dominant language of a road network's names
// so locale-specific stop words can be merged before counting.
package detector

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// sampleSize caps how many road names feed the language detector. Name
// lists for a large city run into the tens of thousands and a few hundred
// are plenty for a confident guess.
const sampleSize = 300

// localeStopWords are words so common in a locale's street naming that
// they would crowd out the interesting ones. The groupings mirror what
// shows up in practice: articles, prepositions and ordinal forms.
var localeStopWords = map[lingua.Language][]string{
	lingua.English: {
		"the", "of", "old", "new", "upper", "lower",
		"1st", "2nd", "3rd", "4th", "5th",
	},
	lingua.Spanish: {
		"de", "del", "la", "las", "el", "los", "san", "santa",
		"1ro", "2do", "3ro", "4to", "5to",
		"1er", "5ta", "1º", "2º", "3º", "4º", "5º",
	},
	lingua.French: {
		"de", "des", "du", "la", "le", "les", "saint", "sainte",
		"1er", "2e", "3e", "4e", "5e",
	},
	lingua.Portuguese: {
		"da", "das", "de", "do", "dos", "são", "santa", "santo",
	},
	lingua.German: {
		"am", "an", "auf", "der", "im", "in", "zum", "zur", "alte", "neue",
	},
	lingua.Italian: {
		"dei", "del", "della", "delle", "di", "san", "santa",
	},
}

// Detector wraps a lingua language detector restricted to the languages
// we carry stop-word lists for.
type Detector struct {
	lingua lingua.LanguageDetector
}

// New builds a Detector. Building loads lingua's language models, so
// callers should construct one per run, not per name list.
func New() *Detector {
	languages := make([]lingua.Language, 0, len(localeStopWords))
	for lang := range localeStopWords {
		languages = append(languages, lang)
	}

	return &Detector{
		lingua: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// DetectLocale guesses the dominant language from a sample of road names.
// The second return is false when no confident guess could be made;
// counting then proceeds with the default stop words only.
func (d *Detector) DetectLocale(names []string) (lingua.Language, bool) {
	if len(names) == 0 {
		return lingua.Unknown, false
	}
	if len(names) > sampleSize {
		names = names[:sampleSize]
	}
	return d.lingua.DetectLanguageOf(strings.Join(names, "\n"))
}

// StopWordsFor returns the locale stop-word list for a language, or nil if
// none is carried.
func StopWordsFor(lang lingua.Language) []string {
	return localeStopWords[lang]
}
