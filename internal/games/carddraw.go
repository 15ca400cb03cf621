package games

import "fmt"

const cardDrawWinMultiplier = 2

var (
	cardSuits  = []string{"hearts", "diamonds", "clubs", "spades"}
	cardValues = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

// cardHighThreshold: high means 8 through K; ace plays low.
const cardHighThreshold = 7

// ResolveCardDraw draws one card from a 52-card deck against a red/black
// or high/low call.
func ResolveCardDraw(p Params, rng Rand) (Outcome, error) {
	switch p.Choice {
	case "red", "black", "high", "low":
	default:
		return Outcome{}, fmt.Errorf("invalid card draw bet %q", p.Choice)
	}

	suit := cardSuits[rng.Intn(len(cardSuits))]
	valueIdx := rng.Intn(len(cardValues))

	isRed := suit == "hearts" || suit == "diamonds"
	isHigh := valueIdx >= cardHighThreshold

	var hit bool
	switch p.Choice {
	case "red":
		hit = isRed
	case "black":
		hit = !isRed
	case "high":
		hit = isHigh
	case "low":
		hit = !isHigh
	}

	var multiplier float64
	if hit {
		multiplier = cardDrawWinMultiplier
	}

	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display:    []string{cardValues[valueIdx], suit},
	}, nil
}
