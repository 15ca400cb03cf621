package models

const (
	RoundStatusActive    = "active"
	RoundStatusSettled   = "settled"
	RoundStatusBusted    = "busted"
	RoundStatusCashedOut = "cashed_out"
	RoundStatusFailed    = "failed" // resolved but the ledger rejected the report
)

// BlackjackState holds the cards of an in-flight blackjack round. Card
// values are ranks 1..13; scoring caps face cards at 10 and promotes one
// ace to 11 when that does not bust.
type BlackjackState struct {
	PlayerCards []int `json:"player_cards"`
	DealerCards []int `json:"dealer_cards"`
	Finished    bool  `json:"finished"`
}

// MinesState holds an in-flight mines round on the 5x5 grid.
type MinesState struct {
	MineCount int   `json:"mine_count"`
	Mines     []int `json:"mines"`
	Revealed  []int `json:"revealed"`
}

// RoundSession is the gateway-side state of a multi-step round. The wager
// is only ever reported to the ledger once, when the round reaches a
// terminal state; until then the ledger balance is untouched.
type RoundSession struct {
	ID        string   `json:"id"`
	Principal string   `json:"principal"`
	GameType  GameType `json:"game_type"`
	BetAmount int64    `json:"bet_amount"`
	Status    string   `json:"status"`

	Blackjack *BlackjackState `json:"blackjack,omitempty"`
	Mines     *MinesState     `json:"mines,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
