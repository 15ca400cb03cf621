package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"casino-gateway/internal/cache"
	"casino-gateway/internal/games"
	"casino-gateway/internal/ledger"
	"casino-gateway/internal/metrics"
	"casino-gateway/internal/models"
)

// Local wager validation failures. These never reach the ledger.
var (
	ErrInvalidBet          = errors.New("bet amount must be a positive whole number")
	ErrBetBelowMinimum     = errors.New("bet amount is below the minimum")
	ErrInsufficientBalance = errors.New("bet amount exceeds your balance")
	ErrNotRegistered       = errors.New("no profile registered for this account")
	ErrPositionRevealed    = errors.New("position already revealed")
	ErrRoundUnsettled      = errors.New("round could not be settled with the ledger")
)

// Broadcaster publishes settled rounds to the live feed. Implementations
// must not block.
type Broadcaster interface {
	BroadcastRoundSettled(principal string, gameType models.GameType, multiplier float64, winAmount int64, isWin bool)
}

// RoundResult is what one wager resolved to. NewBalance is only set when
// the ledger accepted the report and the refetch succeeded; it is always
// the ledger's number, never client arithmetic.
type RoundResult struct {
	GameType   models.GameType `json:"game_type"`
	BetAmount  int64           `json:"bet_amount"`
	Multiplier float64         `json:"multiplier"`
	IsWin      bool            `json:"is_win"`
	WinAmount  int64           `json:"win_amount"`
	Display    []string        `json:"display"`
	Settled    bool            `json:"settled"`
	NewBalance *int64          `json:"new_balance,omitempty"`
}

// BlackjackView is the player-facing state of a blackjack round. The
// dealer's hole card stays hidden until the round ends.
type BlackjackView struct {
	RoundID     string       `json:"round_id"`
	PlayerCards []string     `json:"player_cards"`
	PlayerScore int          `json:"player_score"`
	DealerCards []string     `json:"dealer_cards"`
	DealerScore int          `json:"dealer_score,omitempty"`
	Status      string       `json:"status"`
	Result      *RoundResult `json:"result,omitempty"`
}

// MinesView is the player-facing state of a mines round. Mine positions
// are only revealed at a terminal state.
type MinesView struct {
	RoundID       string       `json:"round_id"`
	MineCount     int          `json:"mine_count"`
	Revealed      []int        `json:"revealed"`
	RevealedCount int          `json:"revealed_count"`
	Multiplier    float64      `json:"multiplier"`
	Mines         []int        `json:"mines,omitempty"`
	Status        string       `json:"status"`
	Result        *RoundResult `json:"result,omitempty"`
}

// RoundService owns the one validate/resolve/report path every game goes
// through. It computes outcomes locally but never a balance: after each
// report the profile cache is invalidated and refetched from the ledger.
type RoundService struct {
	ledger   ledger.Client
	cache    *cache.Store
	sessions *SessionStore
	feed     Broadcaster
	log      *slog.Logger

	minBet    int64
	pushIsWin bool
	newRand   func() games.Rand
}

func NewRoundService(lc ledger.Client, store *cache.Store, sessions *SessionStore, feed Broadcaster, log *slog.Logger, minBet int64, pushIsWin bool) *RoundService {
	return &RoundService{
		ledger:    lc,
		cache:     store,
		sessions:  sessions,
		feed:      feed,
		log:       log,
		minBet:    minBet,
		pushIsWin: pushIsWin,
		newRand:   games.NewRand,
	}
}

// SetRandFactory swaps the random source, used to replay outcomes in tests.
func (s *RoundService) SetRandFactory(f func() games.Rand) {
	s.newRand = f
}

// SetBroadcaster attaches the live feed. Called once at startup; the feed
// handler needs this service, so it cannot be a constructor argument.
func (s *RoundService) SetBroadcaster(feed Broadcaster) {
	s.feed = feed
}

func (s *RoundService) Profile(ctx context.Context, principal string) (*models.UserProfile, error) {
	return s.cache.Profile(ctx, principal, func(ctx context.Context) (*models.UserProfile, error) {
		return s.ledger.GetCallerProfile(ctx, principal)
	})
}

// validateWager is the optimistic local check against the cached balance.
// It can pass while the ledger later refuses (another session spent the
// balance first); that refusal is an ordinary failure, not a bug.
func (s *RoundService) validateWager(bet, cachedBalance int64) error {
	if bet <= 0 {
		return ErrInvalidBet
	}
	if bet < s.minBet {
		return ErrBetBelowMinimum
	}
	if bet > cachedBalance {
		return ErrInsufficientBalance
	}
	return nil
}

// checkWager loads the cached profile and validates the bet against it.
func (s *RoundService) checkWager(ctx context.Context, principal string, bet int64) error {
	profile, err := s.Profile(ctx, principal)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotRegistered
	}
	return s.validateWager(bet, profile.Available())
}

// Play runs one single-shot round: validate, resolve, report.
func (s *RoundService) Play(ctx context.Context, principal string, gameType models.GameType, bet int64, params games.Params) (*RoundResult, error) {
	resolver, err := games.Lookup(gameType)
	if err != nil {
		return nil, err
	}

	if err := s.checkWager(ctx, principal, bet); err != nil {
		return nil, err
	}

	outcome, err := resolver.Resolve(params, s.newRand())
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, principal, gameType, bet, outcome)
}

// settle issues the single mutating ledger call for a round. On failure
// the resolved outcome is still returned so the UI can finish the round
// visually, but nothing is retried and no balance is touched locally; the
// displayed balance stays governed by the next successful profile fetch.
func (s *RoundService) settle(ctx context.Context, principal string, gameType models.GameType, bet int64, outcome games.Outcome) (*RoundResult, error) {
	winAmount := outcome.WinAmount(bet)

	result := &RoundResult{
		GameType:   gameType,
		BetAmount:  bet,
		Multiplier: outcome.Multiplier,
		IsWin:      outcome.IsWin,
		WinAmount:  winAmount,
		Display:    outcome.Display,
	}

	if err := s.ledger.RecordGameOutcome(ctx, principal, gameType, bet, winAmount, outcome.IsWin); err != nil {
		metrics.RoundSettleFailures.WithLabelValues(string(gameType)).Inc()
		metrics.LedgerFailures.WithLabelValues("recordGameOutcome").Inc()
		s.log.Warn("outcome report rejected",
			"principal", principal, "game_type", gameType, "bet", bet, "error", err)
		return result, fmt.Errorf("%w: %w", ErrRoundUnsettled, err)
	}
	result.Settled = true

	if err := s.cache.InvalidateAfter(ctx, cache.OpRecordOutcome, principal); err != nil {
		s.log.Warn("cache invalidation failed", "principal", principal, "error", err)
	}

	if profile, err := s.Profile(ctx, principal); err == nil && profile != nil {
		balance := profile.Balance
		result.NewBalance = &balance
	} else if err != nil {
		// Stale display until the next fetch is acceptable.
		s.log.Warn("profile refetch failed after settlement", "principal", principal, "error", err)
	}

	outcomeLabel := "loss"
	if outcome.IsWin {
		outcomeLabel = "win"
	}
	metrics.RoundsTotal.WithLabelValues(string(gameType), outcomeLabel).Inc()

	if s.feed != nil {
		s.feed.BroadcastRoundSettled(principal, gameType, outcome.Multiplier, winAmount, outcome.IsWin)
	}

	return result, nil
}

// --- Blackjack (multi-step) ---

// StartBlackjack validates the wager and deals. A natural 21 settles
// immediately at 2.5x.
func (s *RoundService) StartBlackjack(ctx context.Context, principal string, bet int64) (*BlackjackView, error) {
	if err := s.checkWager(ctx, principal, bet); err != nil {
		return nil, err
	}

	rng := s.newRand()
	state := &models.BlackjackState{
		PlayerCards: []int{games.DrawBlackjackCard(rng), games.DrawBlackjackCard(rng)},
		DealerCards: []int{games.DrawBlackjackCard(rng), games.DrawBlackjackCard(rng)},
	}

	round := &models.RoundSession{
		ID:        models.GenerateRoundID(),
		Principal: principal,
		GameType:  models.GameTypeBlackjack,
		BetAmount: bet,
		Status:    models.RoundStatusActive,
		Blackjack: state,
		CreatedAt: time.Now().Unix(),
	}

	if games.IsBlackjackNatural(state.PlayerCards) {
		return s.settleBlackjack(ctx, round, games.SettleBlackjack(state.PlayerCards, state.DealerCards))
	}

	if err := s.sessions.SaveRound(ctx, round); err != nil {
		return nil, err
	}
	return s.blackjackView(round, nil), nil
}

// HitBlackjack draws one card; going over 21 is an immediate loss.
func (s *RoundService) HitBlackjack(ctx context.Context, principal, roundID string) (*BlackjackView, error) {
	round, err := s.loadActiveRound(ctx, principal, roundID, models.GameTypeBlackjack)
	if err != nil {
		return nil, err
	}

	state := round.Blackjack
	state.PlayerCards = append(state.PlayerCards, games.DrawBlackjackCard(s.newRand()))

	if games.IsBlackjackBust(state.PlayerCards) {
		outcome := games.Outcome{Multiplier: 0, IsWin: false, Display: games.BlackjackDisplay(state.PlayerCards)}
		return s.settleBlackjack(ctx, round, outcome)
	}

	if err := s.sessions.SaveRound(ctx, round); err != nil {
		return nil, err
	}
	return s.blackjackView(round, nil), nil
}

// StandBlackjack lets the dealer draw to 17+ and settles the comparison.
func (s *RoundService) StandBlackjack(ctx context.Context, principal, roundID string) (*BlackjackView, error) {
	round, err := s.loadActiveRound(ctx, principal, roundID, models.GameTypeBlackjack)
	if err != nil {
		return nil, err
	}

	state := round.Blackjack
	state.DealerCards = games.PlayBlackjackDealer(state.DealerCards, s.newRand())

	outcome := games.SettleBlackjack(state.PlayerCards, state.DealerCards)
	if outcome.Multiplier == games.BlackjackPushMultiplier {
		// Payout is the refund either way; whether a push counts toward
		// win stats is an operator decision.
		outcome.IsWin = s.pushIsWin
	}

	return s.settleBlackjack(ctx, round, outcome)
}

func (s *RoundService) settleBlackjack(ctx context.Context, round *models.RoundSession, outcome games.Outcome) (*BlackjackView, error) {
	round.Blackjack.Finished = true

	result, err := s.settle(ctx, round.Principal, models.GameTypeBlackjack, round.BetAmount, outcome)
	if result.Settled {
		round.Status = models.RoundStatusSettled
	} else {
		round.Status = models.RoundStatusFailed
	}
	if serr := s.sessions.CompleteRound(ctx, round); serr != nil {
		s.log.Warn("failed to store completed round", "round_id", round.ID, "error", serr)
	}

	return s.blackjackView(round, result), err
}

func (s *RoundService) blackjackView(round *models.RoundSession, result *RoundResult) *BlackjackView {
	state := round.Blackjack

	view := &BlackjackView{
		RoundID:     round.ID,
		PlayerCards: games.BlackjackDisplay(state.PlayerCards),
		PlayerScore: games.BlackjackScore(state.PlayerCards),
		Status:      round.Status,
		Result:      result,
	}

	if state.Finished {
		view.DealerCards = games.BlackjackDisplay(state.DealerCards)
		view.DealerScore = games.BlackjackScore(state.DealerCards)
	} else {
		// Hole card stays hidden while the round is live.
		view.DealerCards = []string{games.BlackjackDisplay(state.DealerCards[:1])[0], "?"}
	}
	return view
}

// --- Mines (multi-step) ---

func (s *RoundService) StartMines(ctx context.Context, principal string, bet int64, mineCount int) (*MinesView, error) {
	if err := s.checkWager(ctx, principal, bet); err != nil {
		return nil, err
	}

	mines, err := games.GenerateMines(mineCount, s.newRand())
	if err != nil {
		return nil, err
	}

	round := &models.RoundSession{
		ID:        models.GenerateRoundID(),
		Principal: principal,
		GameType:  models.GameTypeMines,
		BetAmount: bet,
		Status:    models.RoundStatusActive,
		Mines: &models.MinesState{
			MineCount: mineCount,
			Mines:     mines,
			Revealed:  []int{},
		},
		CreatedAt: time.Now().Unix(),
	}

	if err := s.sessions.SaveRound(ctx, round); err != nil {
		return nil, err
	}
	return s.minesView(round, nil), nil
}

// RevealMine opens one tile. A mine settles the round at 0 immediately; a
// safe tile raises the multiplier and keeps the round open.
func (s *RoundService) RevealMine(ctx context.Context, principal, roundID string, position int) (*MinesView, error) {
	if position < 0 || position >= games.MinesGridSize {
		return nil, fmt.Errorf("position must be between 0 and %d", games.MinesGridSize-1)
	}

	round, err := s.loadActiveRound(ctx, principal, roundID, models.GameTypeMines)
	if err != nil {
		return nil, err
	}

	state := round.Mines
	for _, p := range state.Revealed {
		if p == position {
			return nil, ErrPositionRevealed
		}
	}

	for _, mine := range state.Mines {
		if mine == position {
			outcome := games.MinesOutcome(len(state.Revealed), state.MineCount, true)
			return s.settleMines(ctx, round, outcome, models.RoundStatusBusted)
		}
	}

	state.Revealed = append(state.Revealed, position)
	if err := s.sessions.SaveRound(ctx, round); err != nil {
		return nil, err
	}
	return s.minesView(round, nil), nil
}

// CashoutMines locks in the current multiplier and settles.
func (s *RoundService) CashoutMines(ctx context.Context, principal, roundID string) (*MinesView, error) {
	round, err := s.loadActiveRound(ctx, principal, roundID, models.GameTypeMines)
	if err != nil {
		return nil, err
	}

	state := round.Mines
	outcome := games.MinesOutcome(len(state.Revealed), state.MineCount, false)
	return s.settleMines(ctx, round, outcome, models.RoundStatusCashedOut)
}

func (s *RoundService) settleMines(ctx context.Context, round *models.RoundSession, outcome games.Outcome, terminalStatus string) (*MinesView, error) {
	result, err := s.settle(ctx, round.Principal, models.GameTypeMines, round.BetAmount, outcome)
	if result.Settled {
		round.Status = terminalStatus
	} else {
		round.Status = models.RoundStatusFailed
	}
	if serr := s.sessions.CompleteRound(ctx, round); serr != nil {
		s.log.Warn("failed to store completed round", "round_id", round.ID, "error", serr)
	}

	return s.minesView(round, result), err
}

func (s *RoundService) minesView(round *models.RoundSession, result *RoundResult) *MinesView {
	state := round.Mines

	view := &MinesView{
		RoundID:       round.ID,
		MineCount:     state.MineCount,
		Revealed:      state.Revealed,
		RevealedCount: len(state.Revealed),
		Multiplier:    games.MinesMultiplier(len(state.Revealed), state.MineCount),
		Status:        round.Status,
		Result:        result,
	}
	if round.Status != models.RoundStatusActive {
		view.Mines = state.Mines
	}
	return view
}

func (s *RoundService) loadActiveRound(ctx context.Context, principal, roundID string, gameType models.GameType) (*models.RoundSession, error) {
	round, err := s.sessions.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round.Principal != principal {
		return nil, ErrNotYourRound
	}
	if round.GameType != gameType || round.Status != models.RoundStatusActive {
		return nil, ErrRoundNotActive
	}
	return round, nil
}
