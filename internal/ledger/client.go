// Package ledger is the typed client for the external ledger service: the
// sole owner of balances, transactions and casino configuration. The
// gateway calls it on behalf of an authenticated principal and treats
// every response as authoritative. Mutations are never retried here.
package ledger

import (
	"context"
	"io"

	"casino-gateway/internal/models"
)

// Client enumerates the backend operations the gateway depends on.
type Client interface {
	// Profile and registration.
	GetCallerProfile(ctx context.Context, principal string) (*models.UserProfile, error)
	RegisterUser(ctx context.Context, principal, username string) error

	// Wallet.
	Deposit(ctx context.Context, principal string, amount int64) error
	Withdraw(ctx context.Context, principal string, amount int64) error
	IsEligibleForWithdrawal(ctx context.Context, principal string) (bool, error)

	// RecordGameOutcome is the only path by which gameplay changes a
	// balance. The ledger recomputes the authoritative balance; the
	// gateway must refetch, never apply the delta itself.
	RecordGameOutcome(ctx context.Context, principal string, gameType models.GameType, betAmount, winAmount int64, isWin bool) error

	// Read-only history and leaderboards.
	GetTransactionHistory(ctx context.Context, principal string) ([]models.Transaction, error)
	GetGameHistory(ctx context.Context, principal string) ([]models.GameOutcome, error)
	GetTopPlayers(ctx context.Context, by string) ([]models.UserProfile, error)

	// Configuration.
	GetCasinoSettings(ctx context.Context) (*models.CasinoSettings, error)
	UpdateCasinoSettings(ctx context.Context, principal string, settings *models.CasinoSettings) error
	IsCallerAdmin(ctx context.Context, principal string) (bool, error)

	// Catalog and presentation config (admin-gated server-side).
	GetAllCatalogEntries(ctx context.Context) ([]models.GameCatalogEntry, error)
	GetCatalogEntry(ctx context.Context, gameID string) (*models.GameCatalogEntry, error)
	AddCatalogEntry(ctx context.Context, principal string, entry *models.GameCatalogEntry) error
	UpdateCatalogEntry(ctx context.Context, principal, gameID string, entry *models.GameCatalogEntry) error
	RemoveCatalogEntry(ctx context.Context, principal, gameID string) error
	GetSymbolSet(ctx context.Context, gameType models.GameType) (*models.GameSymbolSet, error)
	UpdateSymbolSet(ctx context.Context, principal string, gameType models.GameType, set *models.GameSymbolSet) error
	GetBranding(ctx context.Context) (*models.SiteBranding, error)
	UpdateBranding(ctx context.Context, principal string, branding *models.SiteBranding) error
	GetThemeConfig(ctx context.Context) (*models.ThemeConfig, error)
	SetThemeConfig(ctx context.Context, principal string, theme *models.ThemeConfig) error
	GetBannerConfig(ctx context.Context) (*models.BannerConfig, error)
	SetBannerConfig(ctx context.Context, principal string, banner *models.BannerConfig) error

	// Assets. Uploads report progress but cannot be cancelled once the
	// body starts streaming.
	StoreAsset(ctx context.Context, principal string, asset *models.AppAsset, data io.Reader, size int64, onProgress func(percent int)) error
	UpdateAsset(ctx context.Context, principal, assetID string, asset *models.AppAsset) error
	DeleteAsset(ctx context.Context, principal, assetID string) error
}
