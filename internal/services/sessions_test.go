package services_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

func setupSessions(t *testing.T) *services.SessionStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return services.NewSessionStore(client, time.Hour)
}

func TestRoundPersistence(t *testing.T) {
	sessions := setupSessions(t)
	ctx := context.Background()

	round := &models.RoundSession{
		ID:        models.GenerateRoundID(),
		Principal: "alice",
		GameType:  models.GameTypeMines,
		BetAmount: 100,
		Status:    models.RoundStatusActive,
		Mines:     &models.MinesState{MineCount: 5, Mines: []int{1, 2, 3, 4, 5}, Revealed: []int{}},
		CreatedAt: time.Now().Unix(),
	}
	require.NoError(t, sessions.SaveRound(ctx, round))

	loaded, err := sessions.GetRound(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, round.ID, loaded.ID)
	assert.Equal(t, round.Mines.Mines, loaded.Mines.Mines)

	active, err := sessions.ActiveRounds(ctx, "alice")
	require.NoError(t, err)
	assert.Contains(t, active, round.ID)

	round.Status = models.RoundStatusCashedOut
	require.NoError(t, sessions.CompleteRound(ctx, round))

	active, err = sessions.ActiveRounds(ctx, "alice")
	require.NoError(t, err)
	assert.NotContains(t, active, round.ID)

	// Terminal rounds stay readable for the UI.
	loaded, err = sessions.GetRound(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoundStatusCashedOut, loaded.Status)

	_, err = sessions.GetRound(ctx, "round_unknown")
	assert.ErrorIs(t, err, services.ErrRoundNotFound)
}

func TestCleanupStaleRounds(t *testing.T) {
	sessions := setupSessions(t)
	ctx := context.Background()

	round := &models.RoundSession{
		ID:        models.GenerateRoundID(),
		Principal: "alice",
		GameType:  models.GameTypeBlackjack,
		BetAmount: 100,
		Status:    models.RoundStatusActive,
		Blackjack: &models.BlackjackState{PlayerCards: []int{10, 6}, DealerCards: []int{9, 9}},
	}
	require.NoError(t, sessions.SaveRound(ctx, round))

	// Fresh rounds survive.
	n, err := sessions.CleanupStaleRounds(ctx, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// With a zero cutoff everything just saved is stale.
	time.Sleep(1100 * time.Millisecond)
	n, err = sessions.CleanupStaleRounds(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = sessions.GetRound(ctx, round.ID)
	assert.ErrorIs(t, err, services.ErrRoundNotFound)

	active, err := sessions.ActiveRounds(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestCheckRateLimit(t *testing.T) {
	sessions := setupSessions(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := sessions.CheckRateLimit(ctx, "alice", "play", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d within limit", i)
	}

	allowed, err := sessions.CheckRateLimit(ctx, "alice", "play", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Other principals and actions have their own counters.
	allowed, err = sessions.CheckRateLimit(ctx, "bob", "play", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestDeleteSessionClearsAdminUnlock(t *testing.T) {
	sessions := setupSessions(t)
	ctx := context.Background()

	require.NoError(t, sessions.CreateSession(ctx, "alice", "sess-1", time.Hour))
	require.NoError(t, sessions.SetAdminUnlocked(ctx, "sess-1", time.Hour))

	require.NoError(t, sessions.DeleteSession(ctx, "alice", "sess-1"))

	active, err := sessions.SessionActive(ctx, "alice", "sess-1")
	require.NoError(t, err)
	assert.False(t, active)

	unlocked, err := sessions.IsAdminUnlocked(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, unlocked)
}
