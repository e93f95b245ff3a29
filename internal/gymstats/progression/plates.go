package progression

import (
	"math"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

const BarWeight = 20.0

// Discs available per side, heaviest first.
var Discs = []float64{25, 20, 15, 10, 5, 2.5, 1.25}

type PlateBreakdown struct {
	Equipment training.Equipment `json:"equipment"`
	Input     float64            `json:"input"`
	Total     float64            `json:"total"`
	// PerSide lists the discs to load on each side of the bar (barbell only).
	PerSide []float64 `json:"perSide,omitempty"`
	// Remainder is the per-side load that the discs could not represent.
	Remainder float64 `json:"remainder,omitempty"`
}

// Plates converts a logged input into the total load. Barbell inputs are
// the per-side load on a 20 kg bar, dumbbell inputs are per hand.
func Plates(equipment training.Equipment, input float64) PlateBreakdown {
	if input < 0 || math.IsNaN(input) {
		input = 0
	}
	b := PlateBreakdown{Equipment: equipment, Input: input}

	switch equipment {
	case training.EquipmentBarbell:
		b.Total = round2(BarWeight + 2*input)
		remaining := input
		for _, d := range Discs {
			for remaining+1e-9 >= d {
				b.PerSide = append(b.PerSide, d)
				remaining -= d
			}
		}
		b.Remainder = round2(remaining)
	case training.EquipmentDumbbell:
		b.Total = round2(2 * input)
	default:
		b.Total = round2(input)
	}

	return b
}
