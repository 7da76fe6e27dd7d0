// internal/models/util.go
package models

import (
	"math"
	"sort"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func sortBy[T any](s []T, less func(a, b T) bool) {
	sort.SliceStable(s, func(i, j int) bool { return less(s[i], s[j]) })
}
