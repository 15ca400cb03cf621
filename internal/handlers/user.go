package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

type UserHandler struct {
	auth   *services.AuthService
	rounds *services.RoundService
	wallet *services.WalletService
}

func NewUserHandler(auth *services.AuthService, rounds *services.RoundService, wallet *services.WalletService) *UserHandler {
	return &UserHandler{
		auth:   auth,
		rounds: rounds,
		wallet: wallet,
	}
}

// CreateSession exchanges the platform's signed identity assertion for a
// bearer token, registering the caller with the ledger on first contact.
func (h *UserHandler) CreateSession(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	token, profile, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"profile": profile,
	})
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	profile, err := h.rounds.Profile(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	principal, sessionID, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.auth.Logout(c.Request.Context(), principal, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (h *UserHandler) GetLeaderboard(c *gin.Context) {
	by := c.DefaultQuery("by", "winnings")

	players, err := h.wallet.Leaderboard(c.Request.Context(), by)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"by":      by,
		"players": players,
	})
}
