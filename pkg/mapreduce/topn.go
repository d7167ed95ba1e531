package mapreduce

import (
	"fmt"
	"sort"
)

type kv struct {
	Key   string
	Value int
}

// rank sorts word counts by count descending, breaking ties alphabetically
// so repeated runs over the same data produce the same ordering.
func rank(wordCounts map[string]int) []kv {
	ss := make([]kv, 0, len(wordCounts))
	for k, v := range wordCounts {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	return ss
}

// TopWords returns the n most frequent words in rank order.
func TopWords(wordCounts map[string]int, n int) []string {
	ss := rank(wordCounts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	words := make([]string, limit)
	for i := 0; i < limit; i++ {
		words[i] = ss[i].Key
	}
	return words
}

// TopKeywords returns the top N entries as "word:count" strings, the
// format stored in the run database.
func TopKeywords(wordCounts map[string]int, n int) []string {
	ss := rank(wordCounts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}
	return keywords
}

// PrintTopKeywords prints the top N words in a numbered list format.
func PrintTopKeywords(wordCounts map[string]int, n int) {
	ss := rank(wordCounts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	for i := 0; i < limit; i++ {
		fmt.Printf("%d. %s: %d\n", i+1, ss[i].Key, ss[i].Value)
	}
}
