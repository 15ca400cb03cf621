package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"casino-gateway/internal/cache"
	"casino-gateway/internal/ledger"
	"casino-gateway/internal/models"
)

var (
	ErrBadSignature   = errors.New("identity signature is invalid")
	ErrSessionExpired = errors.New("session has expired")
)

// AuthService exchanges a signed identity assertion for a gateway session.
// The gateway never sees a password; the platform signs the principal with
// a shared secret and we verify it.
type AuthService struct {
	ledger   ledger.Client
	cache    *cache.Store
	sessions *SessionStore
	jwt      *JWTService
	log      *slog.Logger

	identitySecret []byte
	sessionTTL     time.Duration
}

func NewAuthService(lc ledger.Client, store *cache.Store, sessions *SessionStore, jwt *JWTService, log *slog.Logger, identitySecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		ledger:         lc,
		cache:          store,
		sessions:       sessions,
		jwt:            jwt,
		log:            log,
		identitySecret: []byte(identitySecret),
		sessionTTL:     sessionTTL,
	}
}

// VerifySignature checks the platform's HMAC over "principal:username".
func (s *AuthService) VerifySignature(principal, username, signature string) error {
	mac := hmac.New(sha256.New, s.identitySecret)
	mac.Write([]byte(principal + ":" + username))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}

// Login verifies the assertion, registers the caller with the ledger on
// first contact, opens a session and issues the token.
func (s *AuthService) Login(ctx context.Context, req *models.SessionRequest) (string, *models.UserProfile, error) {
	if err := s.VerifySignature(req.Principal, req.Username, req.Signature); err != nil {
		return "", nil, err
	}

	profile, err := s.ledger.GetCallerProfile(ctx, req.Principal)
	if err != nil {
		return "", nil, fmt.Errorf("fetch profile: %w", err)
	}
	if profile == nil {
		if err := s.ledger.RegisterUser(ctx, req.Principal, req.Username); err != nil {
			return "", nil, fmt.Errorf("register user: %w", err)
		}
		if cerr := s.cache.InvalidateAfter(ctx, cache.OpRegisterUser, req.Principal); cerr != nil {
			s.log.Warn("cache invalidation failed", "principal", req.Principal, "error", cerr)
		}
		profile, err = s.ledger.GetCallerProfile(ctx, req.Principal)
		if err != nil {
			return "", nil, fmt.Errorf("fetch profile after registration: %w", err)
		}
		s.log.Info("registered new player", "principal", req.Principal, "username", req.Username)
	}

	sessionID := models.GenerateSessionID()
	if err := s.sessions.CreateSession(ctx, req.Principal, sessionID, s.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.jwt.GenerateToken(req.Principal, sessionID)
	if err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

// Authenticate validates a bearer token and checks the session is still
// open in Redis, so logout takes effect before the token expires.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	active, err := s.sessions.SessionActive(ctx, claims.Principal, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrSessionExpired
	}
	return claims, nil
}

func (s *AuthService) Logout(ctx context.Context, principal, sessionID string) error {
	return s.sessions.DeleteSession(ctx, principal, sessionID)
}
