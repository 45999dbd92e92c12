package match

import (
	"math"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Similarity computes a normalized edit-distance ratio between two strings
// on a 0-100 scale. Symmetric and deterministic: near-identical text scores
// high, unrelated text scores low. Two empty strings score 100.
func Similarity(a, b string) int {
	return int(math.Round(strutil.Similarity(a, b, metrics.NewLevenshtein()) * 100))
}
