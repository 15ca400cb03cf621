package services_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-gateway/internal/cache"
	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

type walletFixture struct {
	ledger *fakeLedger
	wallet *services.WalletService
}

func setupWallet(t *testing.T) *walletFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	fl := newFakeLedger()
	store := cache.NewStore(client, 30*time.Second)
	return &walletFixture{
		ledger: fl,
		wallet: services.NewWalletService(fl, store, testLogger()),
	}
}

func TestDepositEnforcesMinimum(t *testing.T) {
	fx := setupWallet(t)
	fx.ledger.addPlayer("alice", 0)
	ctx := context.Background()

	_, err := fx.wallet.Deposit(ctx, "alice", 5)
	assert.ErrorIs(t, err, services.ErrBelowMinDeposit)
	assert.Equal(t, int64(0), fx.ledger.balance("alice"))

	profile, err := fx.wallet.Deposit(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), profile.Balance)
	assert.Equal(t, int64(10), fx.ledger.balance("alice"))
}

func TestWithdrawChecks(t *testing.T) {
	fx := setupWallet(t)
	fx.ledger.addPlayer("alice", 200)
	ctx := context.Background()

	_, err := fx.wallet.Withdraw(ctx, "alice", 20)
	assert.ErrorIs(t, err, services.ErrBelowMinWithdrawal)

	_, err = fx.wallet.Withdraw(ctx, "alice", 500)
	assert.ErrorIs(t, err, services.ErrInsufficientBalance)

	fx.ledger.notEligible = true
	_, err = fx.wallet.Withdraw(ctx, "alice", 100)
	assert.ErrorIs(t, err, services.ErrNotEligible)
	assert.Equal(t, int64(200), fx.ledger.balance("alice"))

	fx.ledger.notEligible = false
	profile, err := fx.wallet.Withdraw(ctx, "alice", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), profile.Balance)
}

func TestTransactionTypeFilter(t *testing.T) {
	fx := setupWallet(t)
	fx.ledger.addPlayer("alice", 0)
	fx.ledger.txs = []models.Transaction{
		{Type: models.TransactionTypeDeposit, Amount: 100},
		{Type: models.TransactionTypeGameWin, Amount: 50},
		{Type: models.TransactionTypeDeposit, Amount: 200},
	}
	ctx := context.Background()

	all, err := fx.wallet.Transactions(ctx, "alice", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	deposits, err := fx.wallet.Transactions(ctx, "alice", models.TransactionTypeDeposit)
	require.NoError(t, err)
	require.Len(t, deposits, 2)
	for _, tx := range deposits {
		assert.Equal(t, models.TransactionTypeDeposit, tx.Type)
	}
}

func TestDepositRefreshesCachedProfile(t *testing.T) {
	fx := setupWallet(t)
	fx.ledger.addPlayer("alice", 0)
	ctx := context.Background()

	profile, err := fx.wallet.Deposit(ctx, "alice", 50)
	require.NoError(t, err)
	require.Equal(t, int64(50), profile.Balance)

	// A second deposit must not read the stale cached balance back.
	profile, err = fx.wallet.Deposit(ctx, "alice", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(100), profile.Balance)
}
