// Package insight computes the whole-set and grouped aggregates shown
// on the dashboard. Everything is recomputed fresh from an enriched
// record set; there is no state here. Empty inputs return empty or
// zeroed results, never errors.
package insight

import "sort"

// GroupTotal is one group's summed metric.
type GroupTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// GroupSum sums value per key over rows and returns the groups sorted
// descending by total (ties broken by key for determinism).
func GroupSum[T any](rows []T, key func(T) string, value func(T) float64) []GroupTotal {
	sums := make(map[string]float64)
	for _, r := range rows {
		sums[key(r)] += value(r)
	}
	out := make([]GroupTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, GroupTotal{Key: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Key < out[j].Key
		}
		return out[i].Total > out[j].Total
	})
	return out
}

// TopN returns the first n groups of an already-ranked slice.
func TopN(groups []GroupTotal, n int) []GroupTotal {
	if len(groups) <= n {
		return groups
	}
	return groups[:n]
}

// SortByKey orders groups ascending by key; used for timelines where
// the key is a sortable date string.
func SortByKey(groups []GroupTotal) {
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
}

// Sum totals value over rows.
func Sum[T any](rows []T, value func(T) float64) float64 {
	var total float64
	for _, r := range rows {
		total += value(r)
	}
	return total
}

// Mean averages value over rows; zero for an empty set.
func Mean[T any](rows []T, value func(T) float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	return Sum(rows, value) / float64(len(rows))
}

// DistinctCount counts distinct keys over rows.
func DistinctCount[T any](rows []T, key func(T) string) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}
