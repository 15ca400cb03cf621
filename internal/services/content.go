package services

import (
	"context"

	"casino-gateway/internal/cache"
	"casino-gateway/internal/ledger"
	"casino-gateway/internal/models"
)

// ContentService serves the public presentation surface: catalog, symbol
// sets, settings, branding. Catalog, symbols and settings are read-through
// cached; branding, theme and banner are fetched per request since clients
// load them once at startup.
type ContentService struct {
	ledger ledger.Client
	cache  *cache.Store
}

func NewContentService(lc ledger.Client, store *cache.Store) *ContentService {
	return &ContentService{ledger: lc, cache: store}
}

func (s *ContentService) Catalog(ctx context.Context) ([]models.GameCatalogEntry, error) {
	return s.cache.Catalog(ctx, s.ledger.GetAllCatalogEntries)
}

// CatalogEntry fetches one game's catalog entry straight from the ledger,
// bypassing the list cache so an admin edit is visible immediately.
func (s *ContentService) CatalogEntry(ctx context.Context, gameID string) (*models.GameCatalogEntry, error) {
	return s.ledger.GetCatalogEntry(ctx, gameID)
}

func (s *ContentService) SymbolSet(ctx context.Context, gameType models.GameType) (*models.GameSymbolSet, error) {
	return s.cache.SymbolSet(ctx, gameType, func(ctx context.Context) (*models.GameSymbolSet, error) {
		return s.ledger.GetSymbolSet(ctx, gameType)
	})
}

func (s *ContentService) Settings(ctx context.Context) (*models.CasinoSettings, error) {
	return s.cache.Settings(ctx, s.ledger.GetCasinoSettings)
}

func (s *ContentService) Branding(ctx context.Context) (*models.SiteBranding, error) {
	return s.ledger.GetBranding(ctx)
}

func (s *ContentService) ThemeConfig(ctx context.Context) (*models.ThemeConfig, error) {
	return s.ledger.GetThemeConfig(ctx)
}

func (s *ContentService) BannerConfig(ctx context.Context) (*models.BannerConfig, error) {
	return s.ledger.GetBannerConfig(ctx)
}
