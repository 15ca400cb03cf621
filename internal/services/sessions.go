package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"casino-gateway/internal/models"
)

const (
	keyUserSession  = "session:%s:%s"  // principal, session id
	keyRound        = "round:%s"       // round id
	keyActiveRounds = "rounds:%s"      // principal -> set of round ids
	keyRoundIndex   = "rounds:index"   // zset round id -> last update
	keyRateLimit    = "ratelimit:%s:%s" // principal, action
	keyAdminUnlock  = "adminunlock:%s" // session id
)

var (
	ErrRoundNotFound  = errors.New("round not found")
	ErrRoundNotActive = errors.New("round is not active")
	ErrNotYourRound   = errors.New("round belongs to another player")
)

// SessionStore keeps the gateway's transient state in Redis: login
// sessions, in-flight multi-step rounds, rate limits and admin unlock
// flags. Nothing here is a balance.
type SessionStore struct {
	client   *redis.Client
	roundTTL time.Duration
}

func NewSessionStore(client *redis.Client, roundTTL time.Duration) *SessionStore {
	return &SessionStore{client: client, roundTTL: roundTTL}
}

func (s *SessionStore) CreateSession(ctx context.Context, principal, sessionID string, ttl time.Duration) error {
	key := fmt.Sprintf(keyUserSession, principal, sessionID)
	return s.client.Set(ctx, key, time.Now().Unix(), ttl).Err()
}

func (s *SessionStore) SessionActive(ctx context.Context, principal, sessionID string) (bool, error) {
	key := fmt.Sprintf(keyUserSession, principal, sessionID)
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, principal, sessionID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, fmt.Sprintf(keyUserSession, principal, sessionID))
	pipe.Del(ctx, fmt.Sprintf(keyAdminUnlock, sessionID))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) SaveRound(ctx context.Context, round *models.RoundSession) error {
	round.UpdatedAt = time.Now().Unix()

	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("marshal round: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(keyRound, round.ID), data, s.roundTTL)
	if round.Status == models.RoundStatusActive {
		pipe.SAdd(ctx, fmt.Sprintf(keyActiveRounds, round.Principal), round.ID)
		pipe.Expire(ctx, fmt.Sprintf(keyActiveRounds, round.Principal), s.roundTTL)
		pipe.ZAdd(ctx, keyRoundIndex, redis.Z{Score: float64(round.UpdatedAt), Member: round.ID})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	return nil
}

func (s *SessionStore) GetRound(ctx context.Context, roundID string) (*models.RoundSession, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(keyRound, roundID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("get round: %w", err)
	}

	var round models.RoundSession
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, fmt.Errorf("unmarshal round: %w", err)
	}
	return &round, nil
}

// CompleteRound records the terminal state and removes the round from the
// active indexes.
func (s *SessionStore) CompleteRound(ctx context.Context, round *models.RoundSession) error {
	round.UpdatedAt = time.Now().Unix()

	data, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("marshal round: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(keyRound, round.ID), data, s.roundTTL)
	pipe.SRem(ctx, fmt.Sprintf(keyActiveRounds, round.Principal), round.ID)
	pipe.ZRem(ctx, keyRoundIndex, round.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("complete round: %w", err)
	}
	return nil
}

func (s *SessionStore) ActiveRounds(ctx context.Context, principal string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, fmt.Sprintf(keyActiveRounds, principal)).Result()
	if err != nil {
		return nil, fmt.Errorf("list active rounds: %w", err)
	}
	return ids, nil
}

// CleanupStaleRounds drops active rounds that have not been touched within
// maxAge. The wager of a stale round was never reported, so the ledger is
// unaffected; the round simply never happened.
func (s *SessionStore) CleanupStaleRounds(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := float64(time.Now().Add(-maxAge).Unix())

	ids, err := s.client.ZRangeByScore(ctx, keyRoundIndex, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", cutoff),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("scan stale rounds: %w", err)
	}

	cleaned := 0
	for _, id := range ids {
		round, err := s.GetRound(ctx, id)
		if err != nil {
			s.client.ZRem(ctx, keyRoundIndex, id)
			continue
		}
		pipe := s.client.TxPipeline()
		pipe.Del(ctx, fmt.Sprintf(keyRound, id))
		pipe.SRem(ctx, fmt.Sprintf(keyActiveRounds, round.Principal), id)
		pipe.ZRem(ctx, keyRoundIndex, id)
		if _, err := pipe.Exec(ctx); err == nil {
			cleaned++
		}
	}
	return cleaned, nil
}

func (s *SessionStore) CheckRateLimit(ctx context.Context, principal, action string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf(keyRateLimit, principal, action)

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check rate limit: %w", err)
	}
	if count == 1 {
		s.client.Expire(ctx, key, window)
	}
	return count <= int64(limit), nil
}

func (s *SessionStore) SetAdminUnlocked(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.client.Set(ctx, fmt.Sprintf(keyAdminUnlock, sessionID), "1", ttl).Err()
}

func (s *SessionStore) IsAdminUnlocked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, fmt.Sprintf(keyAdminUnlock, sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("check admin unlock: %w", err)
	}
	return n > 0, nil
}

func (s *SessionStore) ClearAdminUnlock(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, fmt.Sprintf(keyAdminUnlock, sessionID)).Err()
}
