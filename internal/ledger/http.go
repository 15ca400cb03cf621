package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"casino-gateway/internal/models"
)

const (
	headerPrincipal = "X-Caller-Principal"

	defaultTimeout = 15 * time.Second
)

// HTTPClient talks JSON over HTTP to the ledger service. It authenticates
// as the gateway with a service token and passes the acting principal per
// request.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
	log     *slog.Logger
}

func NewHTTPClient(baseURL, token string, log *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// wireError is the ledger's error envelope.
type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, op, principal, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if principal != "" {
		req.Header.Set(headerPrincipal, principal)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("ledger call failed", "op", op, "error", err)
		return &CallError{Op: op, Message: err.Error(), kind: ErrUnavailable}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", op, err)
		}
		return nil
	}

	var we wireError
	_ = json.NewDecoder(resp.Body).Decode(&we)
	return &CallError{Op: op, Code: we.Code, Message: we.Message, kind: classify(resp.StatusCode, we.Code)}
}

func classify(status int, code string) error {
	switch code {
	case "insufficient_funds":
		return ErrInsufficientFunds
	case "wagering_requirement_unmet", "below_minimum", "policy_violation":
		return ErrPolicy
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusPaymentRequired:
		return ErrInsufficientFunds
	case http.StatusUnprocessableEntity, http.StatusConflict:
		return ErrPolicy
	}
	if status >= 500 {
		return ErrUnavailable
	}
	return ErrPolicy
}

func (c *HTTPClient) GetCallerProfile(ctx context.Context, principal string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := c.do(ctx, "getCallerProfile", principal, http.MethodGet, "/v1/profile", nil, &profile)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Unregistered caller, not a failure.
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) RegisterUser(ctx context.Context, principal, username string) error {
	body := map[string]string{"username": username}
	return c.do(ctx, "registerUser", principal, http.MethodPost, "/v1/profile", body, nil)
}

func (c *HTTPClient) Deposit(ctx context.Context, principal string, amount int64) error {
	body := map[string]int64{"amount": amount}
	return c.do(ctx, "deposit", principal, http.MethodPost, "/v1/wallet/deposit", body, nil)
}

func (c *HTTPClient) Withdraw(ctx context.Context, principal string, amount int64) error {
	body := map[string]int64{"amount": amount}
	return c.do(ctx, "withdraw", principal, http.MethodPost, "/v1/wallet/withdraw", body, nil)
}

func (c *HTTPClient) IsEligibleForWithdrawal(ctx context.Context, principal string) (bool, error) {
	var out struct {
		Eligible bool `json:"eligible"`
	}
	if err := c.do(ctx, "isEligibleForWithdrawal", principal, http.MethodGet, "/v1/wallet/eligibility", nil, &out); err != nil {
		return false, err
	}
	return out.Eligible, nil
}

func (c *HTTPClient) RecordGameOutcome(ctx context.Context, principal string, gameType models.GameType, betAmount, winAmount int64, isWin bool) error {
	body := map[string]any{
		"game_type":  gameType,
		"bet_amount": betAmount,
		"win_amount": winAmount,
		"is_win":     isWin,
	}
	return c.do(ctx, "recordGameOutcome", principal, http.MethodPost, "/v1/outcomes", body, nil)
}

func (c *HTTPClient) GetTransactionHistory(ctx context.Context, principal string) ([]models.Transaction, error) {
	var out []models.Transaction
	if err := c.do(ctx, "getTransactionHistory", principal, http.MethodGet, "/v1/transactions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetGameHistory(ctx context.Context, principal string) ([]models.GameOutcome, error) {
	var out []models.GameOutcome
	if err := c.do(ctx, "getGameHistory", principal, http.MethodGet, "/v1/outcomes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetTopPlayers(ctx context.Context, by string) ([]models.UserProfile, error) {
	var out []models.UserProfile
	path := "/v1/leaderboard?by=" + url.QueryEscape(by)
	if err := c.do(ctx, "getTopPlayers", "", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetCasinoSettings(ctx context.Context) (*models.CasinoSettings, error) {
	var out models.CasinoSettings
	if err := c.do(ctx, "getCasinoSettings", "", http.MethodGet, "/v1/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCasinoSettings(ctx context.Context, principal string, settings *models.CasinoSettings) error {
	return c.do(ctx, "updateCasinoSettings", principal, http.MethodPut, "/v1/settings", settings, nil)
}

func (c *HTTPClient) IsCallerAdmin(ctx context.Context, principal string) (bool, error) {
	var out struct {
		Admin bool `json:"admin"`
	}
	if err := c.do(ctx, "isCallerAdmin", principal, http.MethodGet, "/v1/profile/role", nil, &out); err != nil {
		return false, err
	}
	return out.Admin, nil
}

func (c *HTTPClient) GetAllCatalogEntries(ctx context.Context) ([]models.GameCatalogEntry, error) {
	var out []models.GameCatalogEntry
	if err := c.do(ctx, "getAllCatalogEntries", "", http.MethodGet, "/v1/catalog", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetCatalogEntry(ctx context.Context, gameID string) (*models.GameCatalogEntry, error) {
	var out models.GameCatalogEntry
	if err := c.do(ctx, "getCatalogEntry", "", http.MethodGet, "/v1/catalog/"+url.PathEscape(gameID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AddCatalogEntry(ctx context.Context, principal string, entry *models.GameCatalogEntry) error {
	return c.do(ctx, "addCatalogEntry", principal, http.MethodPost, "/v1/catalog", entry, nil)
}

func (c *HTTPClient) UpdateCatalogEntry(ctx context.Context, principal, gameID string, entry *models.GameCatalogEntry) error {
	return c.do(ctx, "updateCatalogEntry", principal, http.MethodPut, "/v1/catalog/"+url.PathEscape(gameID), entry, nil)
}

func (c *HTTPClient) RemoveCatalogEntry(ctx context.Context, principal, gameID string) error {
	return c.do(ctx, "removeCatalogEntry", principal, http.MethodDelete, "/v1/catalog/"+url.PathEscape(gameID), nil, nil)
}

func (c *HTTPClient) GetSymbolSet(ctx context.Context, gameType models.GameType) (*models.GameSymbolSet, error) {
	var out models.GameSymbolSet
	if err := c.do(ctx, "getSymbolSet", "", http.MethodGet, "/v1/symbols/"+url.PathEscape(string(gameType)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateSymbolSet(ctx context.Context, principal string, gameType models.GameType, set *models.GameSymbolSet) error {
	return c.do(ctx, "updateSymbolSet", principal, http.MethodPut, "/v1/symbols/"+url.PathEscape(string(gameType)), set, nil)
}

func (c *HTTPClient) GetBranding(ctx context.Context) (*models.SiteBranding, error) {
	var out models.SiteBranding
	if err := c.do(ctx, "getBranding", "", http.MethodGet, "/v1/branding", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateBranding(ctx context.Context, principal string, branding *models.SiteBranding) error {
	return c.do(ctx, "updateBranding", principal, http.MethodPut, "/v1/branding", branding, nil)
}

func (c *HTTPClient) GetThemeConfig(ctx context.Context) (*models.ThemeConfig, error) {
	var out models.ThemeConfig
	err := c.do(ctx, "getThemeConfig", "", http.MethodGet, "/v1/theme", nil, &out)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetThemeConfig(ctx context.Context, principal string, theme *models.ThemeConfig) error {
	return c.do(ctx, "setThemeConfig", principal, http.MethodPut, "/v1/theme", theme, nil)
}

func (c *HTTPClient) GetBannerConfig(ctx context.Context) (*models.BannerConfig, error) {
	var out models.BannerConfig
	err := c.do(ctx, "getBannerConfig", "", http.MethodGet, "/v1/banner", nil, &out)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetBannerConfig(ctx context.Context, principal string, banner *models.BannerConfig) error {
	return c.do(ctx, "setBannerConfig", principal, http.MethodPut, "/v1/banner", banner, nil)
}

// StoreAsset streams an asset upload as multipart form data. Progress is
// reported through onProgress; once the body starts streaming the upload
// is detached from the caller's context and cannot be aborted.
func (c *HTTPClient) StoreAsset(ctx context.Context, principal string, asset *models.AppAsset, data io.Reader, size int64, onProgress func(percent int)) error {
	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		meta, err := json.Marshal(asset)
		if err == nil {
			err = form.WriteField("asset", string(meta))
		}
		if err == nil {
			var part io.Writer
			part, err = form.CreateFormFile("file", asset.AssetID)
			if err == nil {
				_, err = io.Copy(part, &progressReader{r: data, total: size, onProgress: onProgress})
			}
		}
		if err == nil {
			err = form.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, c.baseURL+"/v1/assets", pr)
	if err != nil {
		return fmt.Errorf("build storeAsset request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set(headerPrincipal, principal)

	resp, err := c.client.Do(req)
	if err != nil {
		return &CallError{Op: "storeAsset", Message: err.Error(), kind: ErrUnavailable}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	var we wireError
	_ = json.NewDecoder(resp.Body).Decode(&we)
	return &CallError{Op: "storeAsset", Code: we.Code, Message: we.Message, kind: classify(resp.StatusCode, we.Code)}
}

func (c *HTTPClient) UpdateAsset(ctx context.Context, principal, assetID string, asset *models.AppAsset) error {
	return c.do(ctx, "updateAsset", principal, http.MethodPut, "/v1/assets/"+url.PathEscape(assetID), asset, nil)
}

func (c *HTTPClient) DeleteAsset(ctx context.Context, principal, assetID string) error {
	return c.do(ctx, "deleteAsset", principal, http.MethodDelete, "/v1/assets/"+url.PathEscape(assetID), nil, nil)
}

type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	lastPct    int
	onProgress func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.onProgress != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct != p.lastPct {
			p.lastPct = pct
			p.onProgress(pct)
		}
	}
	return n, err
}

var _ Client = (*HTTPClient)(nil)
