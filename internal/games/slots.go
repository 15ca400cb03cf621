package games

// SlotSymbols is the reel strip, ordered by tier: the last symbol is the
// top payer, the one before it the second tier.
var SlotSymbols = []string{"cherry", "lemon", "orange", "grape", "seven", "diamond"}

const (
	slotsTopMultiplier    = 10
	slotsSecondMultiplier = 5
	slotsTripleMultiplier = 3
	slotsPairMultiplier   = 1.5
)

// ResolveSlots spins three reels. Three of a kind pays by symbol tier,
// exactly two matching reels pays 1.5x, anything else loses.
func ResolveSlots(_ Params, rng Rand) (Outcome, error) {
	reels := [3]int{
		rng.Intn(len(SlotSymbols)),
		rng.Intn(len(SlotSymbols)),
		rng.Intn(len(SlotSymbols)),
	}

	var multiplier float64
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		switch reels[0] {
		case len(SlotSymbols) - 1:
			multiplier = slotsTopMultiplier
		case len(SlotSymbols) - 2:
			multiplier = slotsSecondMultiplier
		default:
			multiplier = slotsTripleMultiplier
		}
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		multiplier = slotsPairMultiplier
	}

	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display: []string{
			SlotSymbols[reels[0]],
			SlotSymbols[reels[1]],
			SlotSymbols[reels[2]],
		},
	}, nil
}
