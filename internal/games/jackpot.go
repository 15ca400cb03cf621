package games

// JackpotSymbols is the five-reel strip.
var JackpotSymbols = []string{"cherry", "lemon", "orange", "grape", "bell", "star", "seven", "diamond", "crown", "coin"}

// jackpotMultipliers maps the max same-symbol count across the five reels
// to a payout multiplier.
var jackpotMultipliers = map[int]float64{
	5: 100,
	4: 20,
	3: 5,
	2: 1,
}

// ResolveJackpot draws five symbols; payout is determined by the largest
// group of identical symbols.
func ResolveJackpot(_ Params, rng Rand) (Outcome, error) {
	draws := make([]int, 5)
	for i := range draws {
		draws[i] = rng.Intn(len(JackpotSymbols))
	}
	return jackpotOutcome(draws), nil
}

func jackpotOutcome(draws []int) Outcome {
	counts := make(map[int]int, len(draws))
	maxCount := 0
	for _, d := range draws {
		counts[d]++
		if counts[d] > maxCount {
			maxCount = counts[d]
		}
	}

	multiplier := jackpotMultipliers[maxCount]

	display := make([]string, len(draws))
	for i, d := range draws {
		display[i] = JackpotSymbols[d]
	}

	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display:    display,
	}
}
