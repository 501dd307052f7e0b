package classifier

import (
	"math"

	"github.com/soyleaf/soyleaf-api/internal/core/domain"
)

// Decode turns a probability vector into (label, confidence) via arg-max.
// Ties resolve to the lowest index. An index with no registry entry — which
// includes the empty-registry case — maps to domain.UnknownLabel.
func Decode(probs []float32, reg *Registry) (string, float64) {
	if len(probs) == 0 {
		return domain.UnknownLabel, 0
	}

	maxIdx := 0
	maxVal := probs[0]
	for i, v := range probs {
		if v > maxVal {
			maxVal = v
			maxIdx = i
		}
	}

	label, ok := reg.Label(maxIdx)
	if !ok {
		label = domain.UnknownLabel
	}
	return label, float64(maxVal)
}

// RoundConfidence rounds v to the given number of decimal places. Precision
// is deployment configuration; the default is two decimals for display and
// four for persisted reports.
func RoundConfidence(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
