package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-gateway/internal/models"
	"casino-gateway/internal/services"
)

type WalletHandler struct {
	wallet *services.WalletService
}

func NewWalletHandler(wallet *services.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

func (h *WalletHandler) Deposit(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := h.wallet.Deposit(c.Request.Context(), principal, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

func (h *WalletHandler) Withdraw(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	var req models.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := h.wallet.Withdraw(c.Request.Context(), principal, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}

func (h *WalletHandler) GetEligibility(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	eligible, err := h.wallet.Eligibility(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"eligible": eligible,
	})
}

func (h *WalletHandler) GetTransactions(c *gin.Context) {
	principal, _, ok := principalFrom(c)
	if !ok {
		return
	}

	txType := models.TransactionType(c.Query("type"))

	txs, err := h.wallet.Transactions(c.Request.Context(), principal, txType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": txs,
	})
}
