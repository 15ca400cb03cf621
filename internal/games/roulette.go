package games

import (
	"fmt"
	"strconv"
)

const rouletteWinMultiplier = 2

var rouletteRedNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// ResolveRoulette spins a single-zero wheel (0-36) against an outside bet:
// red, black, even or odd. Zero loses every outside bet.
func ResolveRoulette(p Params, rng Rand) (Outcome, error) {
	switch p.Choice {
	case "red", "black", "even", "odd":
	default:
		return Outcome{}, fmt.Errorf("invalid roulette bet %q", p.Choice)
	}

	number := rng.Intn(37)
	isRed := rouletteRedNumbers[number]
	isEven := number != 0 && number%2 == 0

	var hit bool
	switch p.Choice {
	case "red":
		hit = isRed
	case "black":
		hit = number != 0 && !isRed
	case "even":
		hit = isEven
	case "odd":
		hit = number != 0 && !isEven
	}

	var multiplier float64
	if hit {
		multiplier = rouletteWinMultiplier
	}

	color := "black"
	if number == 0 {
		color = "green"
	} else if isRed {
		color = "red"
	}

	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display:    []string{strconv.Itoa(number), color},
	}, nil
}
