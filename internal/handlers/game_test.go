package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-gateway/internal/cache"
	"casino-gateway/internal/games"
	"casino-gateway/internal/handlers"
	"casino-gateway/internal/ledger"
	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

// scriptRand replays fixed draws so rounds resolve to known outcomes.
type scriptRand struct {
	ints   []int
	floats []float64
}

func (r *scriptRand) Intn(n int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v
}

func (r *scriptRand) Float64() float64 {
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// stubLedger serves a single profile and lets a test force the outcome
// report to fail. Unused ledger operations fall through to the embedded
// nil interface and panic if a handler reaches them unexpectedly.
type stubLedger struct {
	ledger.Client
	balance   int64
	recordErr error
	recorded  int

	storedAsset *models.AppAsset
}

func (s *stubLedger) GetCallerProfile(_ context.Context, principal string) (*models.UserProfile, error) {
	return &models.UserProfile{Principal: principal, Username: principal, Balance: s.balance}, nil
}

func (s *stubLedger) RecordGameOutcome(_ context.Context, _ string, _ models.GameType, betAmount, winAmount int64, _ bool) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.balance += winAmount - betAmount
	s.recorded++
	return nil
}

func (s *stubLedger) StoreAsset(_ context.Context, _ string, asset *models.AppAsset, data io.Reader, _ int64, _ func(int)) error {
	s.storedAsset = asset
	_, err := io.Copy(io.Discard, data)
	return err
}

type nopFeed struct{}

func (nopFeed) BroadcastRoundSettled(string, models.GameType, float64, int64, bool) {}

// setupGameRouter wires a real round service over the stub ledger behind
// the play route, with the session identity pre-set the way the auth
// middleware would.
func setupGameRouter(t *testing.T, stub *stubLedger) (*gin.Engine, *services.RoundService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logg := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := cache.NewStore(client, 30*time.Second)
	sessions := services.NewSessionStore(client, time.Hour)
	rounds := services.NewRoundService(stub, store, sessions, nopFeed{}, logg, 1, false)
	wallet := services.NewWalletService(stub, store, logg)

	handler := handlers.NewGameHandler(rounds, wallet)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("principal", "alice")
		c.Set("session_id", "sess-1")
	})
	router.POST("/games/play", handler.Play)

	return router, rounds
}

func playCoinFlip(t *testing.T, router *gin.Engine, bet int64) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(models.PlayRequest{
		GameType:  models.GameTypeCoinFlip,
		BetAmount: bet,
		Choice:    "heads",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/games/play", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPlayRespondsSettled(t *testing.T) {
	stub := &stubLedger{balance: 1000}
	router, rounds := setupGameRouter(t, stub)

	// Scripted heads on a heads call: a 2x win.
	rounds.SetRandFactory(func() games.Rand { return &scriptRand{floats: []float64{0.2}} })

	rec := playCoinFlip(t, router, 100)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Result  *services.RoundResult `json:"result"`
		Error   string                `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.Settled)
	require.NotNil(t, resp.Result.NewBalance)
	assert.Equal(t, int64(1100), *resp.Result.NewBalance)
}

func TestPlaySurfacesSettlementFailure(t *testing.T) {
	stub := &stubLedger{balance: 1000, recordErr: ledger.ErrUnavailable}
	router, rounds := setupGameRouter(t, stub)

	rounds.SetRandFactory(func() games.Rand { return &scriptRand{floats: []float64{0.2}} })

	rec := playCoinFlip(t, router, 100)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Result  *services.RoundResult `json:"result"`
		Error   string                `json:"error"`
		Class   string                `json:"class"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// The round display survives, but the response never claims success
	// and carries the settlement error and its kind.
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, "unavailable", resp.Class)
	require.NotNil(t, resp.Result)
	assert.False(t, resp.Result.Settled)
	assert.Nil(t, resp.Result.NewBalance)
	assert.True(t, resp.Result.IsWin)
	assert.Equal(t, 0, stub.recorded)
}

func TestPlayRejectedWagerIsAnError(t *testing.T) {
	stub := &stubLedger{balance: 50}
	router, _ := setupGameRouter(t, stub)

	rec := playCoinFlip(t, router, 100)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}
