package games

import "fmt"

const coinFlipWinMultiplier = 2

// ResolveCoinFlip flips a fair coin against the player's call.
func ResolveCoinFlip(p Params, rng Rand) (Outcome, error) {
	if p.Choice != "heads" && p.Choice != "tails" {
		return Outcome{}, fmt.Errorf("invalid coin flip call %q", p.Choice)
	}

	result := "tails"
	if rng.Float64() < 0.5 {
		result = "heads"
	}

	var multiplier float64
	if result == p.Choice {
		multiplier = coinFlipWinMultiplier
	}

	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display:    []string{result},
	}, nil
}
