package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"log/slog"
	"time"

	"casino-gateway/internal/cache"
	"casino-gateway/internal/ledger"
	"casino-gateway/internal/models"
)

// ErrAdminDenied is returned for every admin gate failure, whether the
// password was wrong or the caller lacks the role. A distinct error per
// cause would let callers probe which check failed.
var ErrAdminDenied = errors.New("admin access denied")

// AdminService gates and proxies the operator surface. The unlock flag is
// session-scoped and evaporates with the session; the ledger still
// enforces the role on every mutation it receives.
type AdminService struct {
	ledger   ledger.Client
	cache    *cache.Store
	sessions *SessionStore
	log      *slog.Logger

	unlockPassword []byte
	unlockTTL      time.Duration
}

func NewAdminService(lc ledger.Client, store *cache.Store, sessions *SessionStore, log *slog.Logger, unlockPassword string, unlockTTL time.Duration) *AdminService {
	return &AdminService{
		ledger:         lc,
		cache:          store,
		sessions:       sessions,
		log:            log,
		unlockPassword: []byte(unlockPassword),
		unlockTTL:      unlockTTL,
	}
}

// Unlock checks the password and the server-side role, then marks this
// session as admin-unlocked. Both checks run before either outcome is
// reported.
func (s *AdminService) Unlock(ctx context.Context, principal, sessionID, password string) error {
	passwordOK := subtle.ConstantTimeCompare(s.unlockPassword, []byte(password)) == 1

	isAdmin, err := s.ledger.IsCallerAdmin(ctx, principal)
	if err != nil {
		return err
	}

	if !passwordOK || !isAdmin {
		s.log.Warn("admin unlock refused", "principal", principal)
		return ErrAdminDenied
	}

	return s.sessions.SetAdminUnlocked(ctx, sessionID, s.unlockTTL)
}

func (s *AdminService) Lock(ctx context.Context, sessionID string) error {
	return s.sessions.ClearAdminUnlock(ctx, sessionID)
}

// Unlocked reports whether this session has passed the gate.
func (s *AdminService) Unlocked(ctx context.Context, sessionID string) (bool, error) {
	return s.sessions.IsAdminUnlocked(ctx, sessionID)
}

// --- Settings ---

func (s *AdminService) UpdateSettings(ctx context.Context, principal string, settings *models.CasinoSettings) error {
	if err := s.ledger.UpdateCasinoSettings(ctx, principal, settings); err != nil {
		return err
	}
	return s.cache.InvalidateAfter(ctx, cache.OpUpdateSettings, "")
}

// --- Catalog ---

func (s *AdminService) AddCatalogEntry(ctx context.Context, principal string, entry *models.GameCatalogEntry) error {
	if err := s.ledger.AddCatalogEntry(ctx, principal, entry); err != nil {
		return err
	}
	return s.cache.InvalidateAfter(ctx, cache.OpCatalogMutation, "")
}

func (s *AdminService) UpdateCatalogEntry(ctx context.Context, principal, gameID string, entry *models.GameCatalogEntry) error {
	if err := s.ledger.UpdateCatalogEntry(ctx, principal, gameID, entry); err != nil {
		return err
	}
	return s.cache.InvalidateAfter(ctx, cache.OpCatalogMutation, "")
}

func (s *AdminService) RemoveCatalogEntry(ctx context.Context, principal, gameID string) error {
	if err := s.ledger.RemoveCatalogEntry(ctx, principal, gameID); err != nil {
		return err
	}
	return s.cache.InvalidateAfter(ctx, cache.OpCatalogMutation, "")
}

// --- Symbols ---

func (s *AdminService) UpdateSymbolSet(ctx context.Context, principal string, gameType models.GameType, set *models.GameSymbolSet) error {
	if err := s.ledger.UpdateSymbolSet(ctx, principal, gameType, set); err != nil {
		return err
	}
	return s.cache.InvalidateAfter(ctx, cache.OpSymbolMutation, string(gameType))
}

// --- Presentation config. Not cached, so no invalidation edge. ---

func (s *AdminService) UpdateBranding(ctx context.Context, principal string, branding *models.SiteBranding) error {
	return s.ledger.UpdateBranding(ctx, principal, branding)
}

func (s *AdminService) SetThemeConfig(ctx context.Context, principal string, theme *models.ThemeConfig) error {
	return s.ledger.SetThemeConfig(ctx, principal, theme)
}

func (s *AdminService) SetBannerConfig(ctx context.Context, principal string, banner *models.BannerConfig) error {
	return s.ledger.SetBannerConfig(ctx, principal, banner)
}

// --- Assets ---

func (s *AdminService) StoreAsset(ctx context.Context, principal string, asset *models.AppAsset, data io.Reader, size int64, onProgress func(percent int)) error {
	return s.ledger.StoreAsset(ctx, principal, asset, data, size, onProgress)
}

func (s *AdminService) UpdateAsset(ctx context.Context, principal, assetID string, asset *models.AppAsset) error {
	return s.ledger.UpdateAsset(ctx, principal, assetID, asset)
}

func (s *AdminService) DeleteAsset(ctx context.Context, principal, assetID string) error {
	return s.ledger.DeleteAsset(ctx, principal, assetID)
}
