package games

import (
	"fmt"
	"strconv"
)

// numberGuessTiers pays by distance from the drawn number, closest first.
var numberGuessTiers = []struct {
	MaxDistance int
	Multiplier  float64
}{
	{0, 10},
	{5, 5},
	{10, 3},
	{20, 1.5},
}

// ResolveNumberGuess draws a number in [1,100] and pays by how close the
// player's guess landed.
func ResolveNumberGuess(p Params, rng Rand) (Outcome, error) {
	if p.Target < 1 || p.Target > 100 {
		return Outcome{}, fmt.Errorf("guess must be between 1 and 100, got %d", p.Target)
	}

	drawn := rng.Intn(100) + 1

	distance := drawn - p.Target
	if distance < 0 {
		distance = -distance
	}

	var multiplier float64
	for _, tier := range numberGuessTiers {
		if distance <= tier.MaxDistance {
			multiplier = tier.Multiplier
			break
		}
	}

	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display:    []string{strconv.Itoa(drawn)},
	}, nil
}
