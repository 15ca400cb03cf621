package models

// UserProfile mirrors the ledger-owned player record. The gateway only ever
// holds a read-through cached copy of it; balance changes are never computed
// locally.
type UserProfile struct {
	Principal string `json:"principal" redis:"principal"`
	Username  string `json:"username" redis:"username"`

	Balance       int64 `json:"balance" redis:"balance"`
	TotalWagered  int64 `json:"total_wagered" redis:"total_wagered"`
	TotalWon      int64 `json:"total_won" redis:"total_won"`
	TotalLost     int64 `json:"total_lost" redis:"total_lost"`
	TotalGames    int64 `json:"total_games" redis:"total_games"`
	TotalWins     int64 `json:"total_wins" redis:"total_wins"`
	TotalLosses   int64 `json:"total_losses" redis:"total_losses"`
	CurrentStreak int64 `json:"current_streak" redis:"current_streak"`
	MaxStreak     int64 `json:"max_streak" redis:"max_streak"`

	HasCompletedWageringRequirement bool `json:"has_completed_wagering_requirement" redis:"has_completed_wagering_requirement"`

	RegisteredAt int64 `json:"registered_at" redis:"registered_at"`
	LastLoginAt  int64 `json:"last_login_at" redis:"last_login_at"`
}

// Available returns the balance usable for wager pre-checks. It is a hint
// for input validation only; the ledger independently rejects wagers it
// cannot cover.
func (p *UserProfile) Available() int64 {
	if p == nil {
		return 0
	}
	return p.Balance
}
