package games

import (
	"fmt"
	"strconv"
)

const diceWinMultiplier = 2

// ResolveDice rolls two d6 against an over/under call on a target in
// [2,12]. The win condition is strict inequality: a sum equal to the
// target pays nothing either way.
func ResolveDice(p Params, rng Rand) (Outcome, error) {
	if p.Target < 2 || p.Target > 12 {
		return Outcome{}, fmt.Errorf("dice target must be between 2 and 12, got %d", p.Target)
	}

	die1 := rng.Intn(6) + 1
	die2 := rng.Intn(6) + 1
	sum := die1 + die2

	var multiplier float64
	if (p.Over && sum > p.Target) || (!p.Over && sum < p.Target) {
		multiplier = diceWinMultiplier
	}

	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display:    []string{strconv.Itoa(die1), strconv.Itoa(die2)},
	}, nil
}
