package games

import "fmt"

// WheelSegment couples a multiplier with its probability mass.
type WheelSegment struct {
	Multiplier  float64
	Probability float64
}

// WheelSegments is the fixed wheel layout. Probabilities sum to exactly 1.
var WheelSegments = []WheelSegment{
	{Multiplier: 0, Probability: 0.30},
	{Multiplier: 1, Probability: 0.25},
	{Multiplier: 2, Probability: 0.20},
	{Multiplier: 3, Probability: 0.15},
	{Multiplier: 5, Probability: 0.08},
	{Multiplier: 10, Probability: 0.02},
}

// ResolveWheel spins the weighted wheel: one uniform draw walked through
// the cumulative distribution.
func ResolveWheel(_ Params, rng Rand) (Outcome, error) {
	draw := rng.Float64()

	cumulative := 0.0
	segment := WheelSegments[len(WheelSegments)-1]
	for _, s := range WheelSegments {
		cumulative += s.Probability
		if draw < cumulative {
			segment = s
			break
		}
	}

	return Outcome{
		Multiplier: segment.Multiplier,
		IsWin:      won(segment.Multiplier),
		Display:    []string{fmt.Sprintf("%gx", segment.Multiplier)},
	}, nil
}
