// Package stats computes the frequency and descriptive summaries shown in a report.
package stats

import (
	"slices"
)

// Entry is one row of a distribution table.
type Entry[K comparable] struct {
	Value K
	Count int
	Pct   float64
}

// Distribution counts each distinct value of column. Pct is the share of the column in
// [0,1]. Entries are ordered by descending count; equal counts keep first-seen order.
func Distribution[K comparable](column []K) []Entry[K] {
	if len(column) == 0 {
		return nil
	}
	index := make(map[K]int)
	var entries []Entry[K]
	for _, v := range column {
		i, ok := index[v]
		if !ok {
			i = len(entries)
			index[v] = i
			entries = append(entries, Entry[K]{Value: v})
		}
		entries[i].Count++
	}

	total := float64(len(column))
	for i := range entries {
		entries[i].Pct = float64(entries[i].Count) / total
	}
	slices.SortStableFunc(entries, func(a, b Entry[K]) int {
		return b.Count - a.Count
	})
	return entries
}

// Top returns at most n leading entries.
func Top[K comparable](entries []Entry[K], n int) []Entry[K] {
	if n < 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
