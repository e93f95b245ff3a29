package progression

import "math"

// DefaultIncrement is the smallest load step available on standard plates.
const DefaultIncrement = 1.25

// Quantize rounds weight to the nearest multiple of increment, floored at zero
// and trimmed to two decimals.
func Quantize(weight, increment float64) float64 {
	if increment <= 0 {
		increment = DefaultIncrement
	}
	if math.IsNaN(weight) || weight <= 0 {
		return 0
	}
	q := math.Round(weight/increment) * increment
	return round2(q)
}

func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// avoid -0 in output
		return 0
	}
	return r
}
