package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-gateway/internal/games"
	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

type GameHandler struct {
	rounds *services.RoundService
	wallet *services.WalletService
}

func NewGameHandler(rounds *services.RoundService, wallet *services.WalletService) *GameHandler {
	return &GameHandler{rounds: rounds, wallet: wallet}
}

// Play runs one single-shot round. A rejected outcome report still returns
// the resolved round so the client can finish the animation, but with
// success=false and the settlement error attached.
func (h *GameHandler) Play(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if !req.GameType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown game type"})
		return
	}

	params := games.Params{
		Target: req.Target,
		Over:   req.Over,
		Choice: req.Choice,
	}

	result, err := h.rounds.Play(c.Request.Context(), principal, req.GameType, req.BetAmount, params)
	if err != nil {
		if result == nil {
			respondError(c, err)
		} else {
			respondUnsettled(c, "result", result, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) GetGameHistory(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	history, err := h.wallet.GameHistory(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
	})
}

// --- Blackjack ---

func (h *GameHandler) BlackjackDeal(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.BlackjackDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	view, err := h.rounds.StartBlackjack(c.Request.Context(), principal, req.BetAmount)
	if err != nil {
		if view == nil {
			respondError(c, err)
		} else {
			respondUnsettled(c, "round", view, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"round":   view,
	})
}

func (h *GameHandler) BlackjackHit(c *gin.Context) {
	h.blackjackAction(c, h.rounds.HitBlackjack)
}

func (h *GameHandler) BlackjackStand(c *gin.Context) {
	h.blackjackAction(c, h.rounds.StandBlackjack)
}

func (h *GameHandler) blackjackAction(c *gin.Context, action func(ctx context.Context, principal, roundID string) (*services.BlackjackView, error)) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.RoundActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	view, err := action(c.Request.Context(), principal, req.RoundID)
	if err != nil {
		if view == nil {
			respondError(c, err)
		} else {
			respondUnsettled(c, "round", view, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"round":   view,
	})
}

// --- Mines ---

func (h *GameHandler) MinesStart(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.MinesStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	view, err := h.rounds.StartMines(c.Request.Context(), principal, req.BetAmount, req.MineCount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"round":   view,
	})
}

func (h *GameHandler) MinesReveal(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.MinesRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	view, err := h.rounds.RevealMine(c.Request.Context(), principal, req.RoundID, req.Position)
	if err != nil {
		if view == nil {
			respondError(c, err)
		} else {
			respondUnsettled(c, "round", view, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"round":   view,
	})
}

func (h *GameHandler) MinesCashout(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.RoundActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	view, err := h.rounds.CashoutMines(c.Request.Context(), principal, req.RoundID)
	if err != nil {
		if view == nil {
			respondError(c, err)
		} else {
			respondUnsettled(c, "round", view, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"round":   view,
	})
}
