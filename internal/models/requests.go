package models

type SessionRequest struct {
	Principal string `json:"principal" binding:"required"`
	Username  string `json:"username"`
	Signature string `json:"signature" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=24"`
}

type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// PlayRequest covers every single-shot game; the per-game fields are
// interpreted by the matching resolver.
type PlayRequest struct {
	GameType  GameType `json:"game_type" binding:"required"`
	BetAmount int64    `json:"bet_amount" binding:"required,min=1"`

	Target int    `json:"target,omitempty"` // dice: 2..12, numberguess: 1..100
	Over   bool   `json:"over,omitempty"`   // dice: over/under the target
	Choice string `json:"choice,omitempty"` // roulette, coinflip, carddraw
}

type BlackjackDealRequest struct {
	BetAmount int64 `json:"bet_amount" binding:"required,min=1"`
}

type RoundActionRequest struct {
	RoundID string `json:"round_id" binding:"required"`
}

type MinesStartRequest struct {
	BetAmount int64 `json:"bet_amount" binding:"required,min=1"`
	MineCount int   `json:"mine_count" binding:"required,min=1,max=20"`
}

type MinesRevealRequest struct {
	RoundID  string `json:"round_id" binding:"required"`
	Position int    `json:"position" binding:"min=0,max=24"`
}

type AdminUnlockRequest struct {
	Password string `json:"password" binding:"required"`
}
