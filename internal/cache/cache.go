// Package cache is the gateway's read-through copy of ledger state. Every
// value here is a hint: it bounds input validation and feeds displays, but
// settlement always goes back to the ledger. Mutating operations invalidate
// along the declared edges below rather than ad hoc per call site.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"casino-gateway/internal/metrics"
	"casino-gateway/internal/models"
)

// Key identifies a class of cached state.
type Key string

const (
	KeyProfile            Key = "profile"
	KeySettings           Key = "settings"
	KeyCatalog            Key = "catalog"
	KeySymbols            Key = "symbols"
	KeyTransactions       Key = "transactions"
	KeyGameHistory        Key = "gamehistory"
	KeyLeaderboardWinners Key = "leaderboard:winnings"
	KeyLeaderboardWins    Key = "leaderboard:wins"
	KeyLeaderboardStreak  Key = "leaderboard:streak"
)

// Operation names a mutating ledger call for invalidation purposes.
type Operation string

const (
	OpRegisterUser    Operation = "registerUser"
	OpDeposit         Operation = "deposit"
	OpWithdraw        Operation = "withdraw"
	OpRecordOutcome   Operation = "recordGameOutcome"
	OpUpdateSettings  Operation = "updateCasinoSettings"
	OpCatalogMutation Operation = "catalogMutation"
	OpSymbolMutation  Operation = "symbolMutation"
)

// Edges declares which cached state each mutating operation invalidates.
// This is the whole consistency contract in one place.
var Edges = map[Operation][]Key{
	OpRegisterUser:    {KeyProfile},
	OpDeposit:         {KeyProfile, KeyTransactions},
	OpWithdraw:        {KeyProfile, KeyTransactions},
	OpRecordOutcome:   {KeyProfile, KeyTransactions, KeyGameHistory, KeyLeaderboardWinners, KeyLeaderboardWins, KeyLeaderboardStreak},
	OpUpdateSettings:  {KeySettings},
	OpCatalogMutation: {KeyCatalog},
	OpSymbolMutation:  {KeySymbols},
}

// scoped marks the key classes that carry a scope suffix: the caller
// principal for profile/history keys, the game type for symbol sets. The
// rest are global.
var scoped = map[Key]bool{
	KeyProfile:      true,
	KeyTransactions: true,
	KeyGameHistory:  true,
	KeySymbols:      true,
}

// Store is a Redis-backed read-through cache.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(k Key, scope string) string {
	if scoped[k] {
		return fmt.Sprintf("cache:%s:%s", k, scope)
	}
	return fmt.Sprintf("cache:%s", k)
}

// get loads a cached value into dest, returning false on a miss. Decode
// failures count as misses so a schema change never wedges the cache.
func (s *Store) get(ctx context.Context, k Key, principal string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, s.key(k, principal)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheMisses.WithLabelValues(string(k)).Inc()
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", k, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(string(k)).Inc()
		return false, nil
	}
	metrics.CacheHits.WithLabelValues(string(k)).Inc()
	return true, nil
}

func (s *Store) set(ctx context.Context, k Key, principal string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", k, err)
	}
	return s.client.Set(ctx, s.key(k, principal), data, s.ttl).Err()
}

// InvalidateAfter drops every key class the operation touches for the
// given scope (the caller principal, or the game type for symbol
// mutations). Global keys ignore the scope.
func (s *Store) InvalidateAfter(ctx context.Context, op Operation, scope string) error {
	keys := Edges[op]
	if len(keys) == 0 {
		return nil
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, s.key(k, scope))
	}
	if err := s.client.Del(ctx, names...).Err(); err != nil {
		return fmt.Errorf("cache invalidate after %s: %w", op, err)
	}
	return nil
}

// Profile returns the cached profile or fetches it through the ledger. A
// nil profile (unregistered caller) is not cached.
func (s *Store) Profile(ctx context.Context, principal string, fetch func(context.Context) (*models.UserProfile, error)) (*models.UserProfile, error) {
	var cached models.UserProfile
	hit, err := s.get(ctx, KeyProfile, principal, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	profile, err := fetch(ctx)
	if err != nil || profile == nil {
		return profile, err
	}
	if err := s.set(ctx, KeyProfile, principal, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RefreshProfile drops the cached profile and refetches it. Used after a
// mutating call so the display converges on what the ledger reports.
func (s *Store) RefreshProfile(ctx context.Context, principal string, fetch func(context.Context) (*models.UserProfile, error)) (*models.UserProfile, error) {
	if err := s.client.Del(ctx, s.key(KeyProfile, principal)).Err(); err != nil {
		return nil, fmt.Errorf("cache refresh profile: %w", err)
	}
	return s.Profile(ctx, principal, fetch)
}

// Settings returns the cached casino settings or fetches them.
func (s *Store) Settings(ctx context.Context, fetch func(context.Context) (*models.CasinoSettings, error)) (*models.CasinoSettings, error) {
	var cached models.CasinoSettings
	hit, err := s.get(ctx, KeySettings, "", &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	settings, err := fetch(ctx)
	if err != nil || settings == nil {
		return settings, err
	}
	if err := s.set(ctx, KeySettings, "", settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Catalog returns the cached game catalog or fetches it.
func (s *Store) Catalog(ctx context.Context, fetch func(context.Context) ([]models.GameCatalogEntry, error)) ([]models.GameCatalogEntry, error) {
	var cached []models.GameCatalogEntry
	hit, err := s.get(ctx, KeyCatalog, "", &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	entries, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.set(ctx, KeyCatalog, "", entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Transactions returns the cached transaction history or fetches it.
func (s *Store) Transactions(ctx context.Context, principal string, fetch func(context.Context) ([]models.Transaction, error)) ([]models.Transaction, error) {
	var cached []models.Transaction
	hit, err := s.get(ctx, KeyTransactions, principal, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	txs, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.set(ctx, KeyTransactions, principal, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// GameHistory returns the cached game history or fetches it.
func (s *Store) GameHistory(ctx context.Context, principal string, fetch func(context.Context) ([]models.GameOutcome, error)) ([]models.GameOutcome, error) {
	var cached []models.GameOutcome
	hit, err := s.get(ctx, KeyGameHistory, principal, &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	history, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.set(ctx, KeyGameHistory, principal, history); err != nil {
		return nil, err
	}
	return history, nil
}

// leaderboardKey maps a leaderboard selector to its key class.
func leaderboardKey(by string) Key {
	switch by {
	case "wins":
		return KeyLeaderboardWins
	case "streak":
		return KeyLeaderboardStreak
	default:
		return KeyLeaderboardWinners
	}
}

// Leaderboard returns the cached top-player list for a selector
// ("winnings", "wins" or "streak") or fetches it.
func (s *Store) Leaderboard(ctx context.Context, by string, fetch func(context.Context) ([]models.UserProfile, error)) ([]models.UserProfile, error) {
	k := leaderboardKey(by)

	var cached []models.UserProfile
	hit, err := s.get(ctx, k, "", &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return cached, nil
	}

	players, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.set(ctx, k, "", players); err != nil {
		return nil, err
	}
	return players, nil
}

// SymbolSet returns the cached symbol set for a game type or fetches it.
func (s *Store) SymbolSet(ctx context.Context, gameType models.GameType, fetch func(context.Context) (*models.GameSymbolSet, error)) (*models.GameSymbolSet, error) {
	var cached models.GameSymbolSet
	hit, err := s.get(ctx, KeySymbols, string(gameType), &cached)
	if err != nil {
		return nil, err
	}
	if hit {
		return &cached, nil
	}

	set, err := fetch(ctx)
	if err != nil || set == nil {
		return set, err
	}
	if err := s.set(ctx, KeySymbols, string(gameType), set); err != nil {
		return nil, err
	}
	return set, nil
}

// InvalidateSettings drops the cached settings, forcing the next read to
// hit the ledger. Used by the periodic refresh job.
func (s *Store) InvalidateSettings(ctx context.Context) error {
	return s.client.Del(ctx, s.key(KeySettings, "")).Err()
}
