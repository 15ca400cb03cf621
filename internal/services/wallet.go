package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"casino-gateway/internal/cache"
	"casino-gateway/internal/ledger"
	"casino-gateway/internal/metrics"
	"casino-gateway/internal/models"
)

var (
	ErrBelowMinDeposit    = errors.New("deposit amount is below the minimum")
	ErrBelowMinWithdrawal = errors.New("withdrawal amount is below the minimum")
	ErrNotEligible        = errors.New("wagering requirement not yet met")
)

// WalletService fronts the ledger's money operations. Pre-checks against
// cached settings and the cached balance exist to fail fast with a clear
// message; the ledger remains the judge of every mutation.
type WalletService struct {
	ledger ledger.Client
	cache  *cache.Store
	log    *slog.Logger
}

func NewWalletService(lc ledger.Client, store *cache.Store, log *slog.Logger) *WalletService {
	return &WalletService{ledger: lc, cache: store, log: log}
}

func (s *WalletService) settings(ctx context.Context) (*models.CasinoSettings, error) {
	return s.cache.Settings(ctx, s.ledger.GetCasinoSettings)
}

func (s *WalletService) Deposit(ctx context.Context, principal string, amount int64) (*models.UserProfile, error) {
	settings, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}
	if amount < settings.MinDeposit {
		return nil, fmt.Errorf("%w: minimum is %s", ErrBelowMinDeposit, models.FormatCurrency(settings.MinDeposit, settings.CurrencyName))
	}

	if err := s.ledger.Deposit(ctx, principal, amount); err != nil {
		metrics.LedgerFailures.WithLabelValues("deposit").Inc()
		return nil, err
	}

	return s.refresh(ctx, principal, cache.OpDeposit)
}

func (s *WalletService) Withdraw(ctx context.Context, principal string, amount int64) (*models.UserProfile, error) {
	settings, err := s.settings(ctx)
	if err != nil {
		return nil, err
	}
	if amount < settings.MinWithdrawal {
		return nil, fmt.Errorf("%w: minimum is %s", ErrBelowMinWithdrawal, models.FormatCurrency(settings.MinWithdrawal, settings.CurrencyName))
	}

	profile, err := s.cache.Profile(ctx, principal, func(ctx context.Context) (*models.UserProfile, error) {
		return s.ledger.GetCallerProfile(ctx, principal)
	})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotRegistered
	}
	if amount > profile.Available() {
		return nil, ErrInsufficientBalance
	}

	eligible, err := s.ledger.IsEligibleForWithdrawal(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	if err := s.ledger.Withdraw(ctx, principal, amount); err != nil {
		metrics.LedgerFailures.WithLabelValues("withdraw").Inc()
		return nil, err
	}

	return s.refresh(ctx, principal, cache.OpWithdraw)
}

func (s *WalletService) refresh(ctx context.Context, principal string, op cache.Operation) (*models.UserProfile, error) {
	if err := s.cache.InvalidateAfter(ctx, op, principal); err != nil {
		s.log.Warn("cache invalidation failed", "principal", principal, "error", err)
	}
	return s.cache.Profile(ctx, principal, func(ctx context.Context) (*models.UserProfile, error) {
		return s.ledger.GetCallerProfile(ctx, principal)
	})
}

// Eligibility reports whether the wagering requirement is met. Read-only;
// the ledger re-checks it on every withdrawal.
func (s *WalletService) Eligibility(ctx context.Context, principal string) (bool, error) {
	return s.ledger.IsEligibleForWithdrawal(ctx, principal)
}

// Transactions returns the cached history, optionally narrowed to one
// transaction type. Filtering happens on the cached list; the ledger call
// is the same either way.
func (s *WalletService) Transactions(ctx context.Context, principal string, txType models.TransactionType) ([]models.Transaction, error) {
	txs, err := s.cache.Transactions(ctx, principal, func(ctx context.Context) ([]models.Transaction, error) {
		return s.ledger.GetTransactionHistory(ctx, principal)
	})
	if err != nil || txType == "" {
		return txs, err
	}

	filtered := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == txType {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}

func (s *WalletService) GameHistory(ctx context.Context, principal string) ([]models.GameOutcome, error) {
	return s.cache.GameHistory(ctx, principal, func(ctx context.Context) ([]models.GameOutcome, error) {
		return s.ledger.GetGameHistory(ctx, principal)
	})
}

func (s *WalletService) Leaderboard(ctx context.Context, by string) ([]models.UserProfile, error) {
	return s.cache.Leaderboard(ctx, by, func(ctx context.Context) ([]models.UserProfile, error) {
		return s.ledger.GetTopPlayers(ctx, by)
	})
}
