package models

type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
	TransactionTypeGameWin     TransactionType = "game_win"
	TransactionTypeGameLoss    TransactionType = "game_loss"
	TransactionTypeSignupBonus TransactionType = "signup_bonus"
)

// Transaction is a ledger-owned append-only record. Read-only from the
// gateway, used for display and filtering only.
type Transaction struct {
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	BalanceAfter int64           `json:"balance_after"`
	GameType     GameType        `json:"game_type,omitempty"`
	Timestamp    int64           `json:"timestamp"`
}

// GameOutcome is the ledger's record of a settled round.
type GameOutcome struct {
	GameType  GameType `json:"game_type"`
	BetAmount int64    `json:"bet_amount"`
	WinAmount int64    `json:"win_amount"`
	IsWin     bool     `json:"is_win"`
	Timestamp int64    `json:"timestamp"`
}
