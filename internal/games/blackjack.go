package games

import "strconv"

const (
	blackjackTarget      = 21
	blackjackDealerStand = 17

	BlackjackNaturalMultiplier = 2.5
	BlackjackWinMultiplier     = 2
	BlackjackPushMultiplier    = 1
)

// DrawBlackjackCard draws a rank 1..13 (ace through king) from an infinite
// shoe.
func DrawBlackjackCard(rng Rand) int {
	return rng.Intn(13) + 1
}

// BlackjackScore scores a hand of ranks. Face cards count 10; one ace is
// promoted from 1 to 11 whenever that does not bust the hand.
func BlackjackScore(cards []int) int {
	score := 0
	hasAce := false
	for _, c := range cards {
		v := c
		if v > 10 {
			v = 10
		}
		if v == 1 {
			hasAce = true
		}
		score += v
	}
	if hasAce && score <= 11 {
		score += 10
	}
	return score
}

// IsBlackjackNatural reports a two-card 21.
func IsBlackjackNatural(cards []int) bool {
	return len(cards) == 2 && BlackjackScore(cards) == blackjackTarget
}

// IsBlackjackBust reports a hand over 21.
func IsBlackjackBust(cards []int) bool {
	return BlackjackScore(cards) > blackjackTarget
}

// PlayBlackjackDealer draws cards for the dealer until the hand scores 17
// or more, and returns the completed hand.
func PlayBlackjackDealer(cards []int, rng Rand) []int {
	hand := append([]int(nil), cards...)
	for BlackjackScore(hand) < blackjackDealerStand {
		hand = append(hand, DrawBlackjackCard(rng))
	}
	return hand
}

// SettleBlackjack compares a finished player hand against the dealer.
// Natural blackjack pays 2.5x, a regular win 2x, a push refunds the bet
// (1x) and everything else pays nothing. A player bust must be settled as
// a loss before the dealer plays; this function assumes the player stood.
func SettleBlackjack(player, dealer []int) Outcome {
	playerScore := BlackjackScore(player)
	dealerScore := BlackjackScore(dealer)

	var multiplier float64
	switch {
	case playerScore > blackjackTarget:
		multiplier = 0
	case IsBlackjackNatural(player):
		multiplier = BlackjackNaturalMultiplier
	case dealerScore > blackjackTarget || playerScore > dealerScore:
		multiplier = BlackjackWinMultiplier
	case playerScore == dealerScore:
		multiplier = BlackjackPushMultiplier
	default:
		multiplier = 0
	}

	return Outcome{
		Multiplier: multiplier,
		IsWin:      won(multiplier),
		Display:    BlackjackDisplay(player),
	}
}

// BlackjackDisplay renders ranks for the UI.
func BlackjackDisplay(cards []int) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		switch c {
		case 1:
			out[i] = "A"
		case 11:
			out[i] = "J"
		case 12:
			out[i] = "Q"
		case 13:
			out[i] = "K"
		default:
			out[i] = strconv.Itoa(c)
		}
	}
	return out
}
