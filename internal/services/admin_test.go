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
	"casino-gateway/internal/services"
)

const testUnlockPassword = "open-sesame"

type adminFixture struct {
	ledger *fakeLedger
	admin  *services.AdminService
}

func setupAdmin(t *testing.T) *adminFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	fl := newFakeLedger()
	store := cache.NewStore(client, 30*time.Second)
	sessions := services.NewSessionStore(client, time.Hour)
	admin := services.NewAdminService(fl, store, sessions, testLogger(), testUnlockPassword, time.Hour)

	return &adminFixture{ledger: fl, admin: admin}
}

func TestUnlockRequiresPasswordAndRole(t *testing.T) {
	fx := setupAdmin(t)
	fx.ledger.admins["op"] = true
	ctx := context.Background()

	// Wrong password with the role, and right password without it, must
	// be indistinguishable.
	errBadPassword := fx.admin.Unlock(ctx, "op", "sess-1", "guess")
	errNoRole := fx.admin.Unlock(ctx, "player", "sess-2", testUnlockPassword)
	assert.ErrorIs(t, errBadPassword, services.ErrAdminDenied)
	assert.ErrorIs(t, errNoRole, services.ErrAdminDenied)
	assert.Equal(t, errBadPassword.Error(), errNoRole.Error())

	for _, sess := range []string{"sess-1", "sess-2"} {
		unlocked, err := fx.admin.Unlocked(ctx, sess)
		require.NoError(t, err)
		assert.False(t, unlocked)
	}

	require.NoError(t, fx.admin.Unlock(ctx, "op", "sess-1", testUnlockPassword))
	unlocked, err := fx.admin.Unlocked(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestUnlockIsPerSession(t *testing.T) {
	fx := setupAdmin(t)
	fx.ledger.admins["op"] = true
	ctx := context.Background()

	require.NoError(t, fx.admin.Unlock(ctx, "op", "sess-1", testUnlockPassword))

	unlocked, err := fx.admin.Unlocked(ctx, "sess-other")
	require.NoError(t, err)
	assert.False(t, unlocked, "another session of the same principal stays locked")
}

func TestLockClearsUnlock(t *testing.T) {
	fx := setupAdmin(t)
	fx.ledger.admins["op"] = true
	ctx := context.Background()

	require.NoError(t, fx.admin.Unlock(ctx, "op", "sess-1", testUnlockPassword))
	require.NoError(t, fx.admin.Lock(ctx, "sess-1"))

	unlocked, err := fx.admin.Unlocked(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, unlocked)
}
