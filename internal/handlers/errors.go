package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"casino-gateway/internal/ledger"
	"casino-gateway/internal/services"
)

// respondError maps service and ledger errors onto HTTP statuses. Local
// validation failures are 400s; the ledger's refusals keep their own
// statuses so the client can tell "you cannot" from "try again later".
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal error"

	switch {
	case errors.Is(err, services.ErrInvalidBet),
		errors.Is(err, services.ErrBetBelowMinimum),
		errors.Is(err, services.ErrBelowMinDeposit),
		errors.Is(err, services.ErrBelowMinWithdrawal),
		errors.Is(err, services.ErrPositionRevealed):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
		message = "Insufficient balance"
	case errors.Is(err, services.ErrNotEligible),
		errors.Is(err, ledger.ErrPolicy):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, services.ErrNotRegistered):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, services.ErrBadSignature),
		errors.Is(err, services.ErrSessionExpired),
		errors.Is(err, ledger.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = "Not authorized"
	case errors.Is(err, services.ErrAdminDenied):
		status = http.StatusForbidden
		message = "Admin access denied"
	case errors.Is(err, services.ErrRoundNotFound),
		errors.Is(err, ledger.ErrNotFound):
		status = http.StatusNotFound
		message = "Not found"
	case errors.Is(err, services.ErrRoundNotActive),
		errors.Is(err, services.ErrNotYourRound):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, ledger.ErrUnavailable):
		status = http.StatusServiceUnavailable
		message = "Ledger temporarily unavailable"
	}

	c.JSON(status, gin.H{"error": message})
}

// settlementClass names the kind of ledger refusal behind a failed outcome
// report so clients can tell a permanent rejection from a transient one.
func settlementClass(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ledger.ErrPolicy):
		return "policy"
	case errors.Is(err, ledger.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ledger.ErrNotFound):
		return "not_found"
	case errors.Is(err, ledger.ErrUnavailable):
		return "unavailable"
	default:
		return "internal"
	}
}

// respondUnsettled returns a resolved round whose outcome report was
// rejected. The round display is still useful to the client, but success
// is false and the error travels with it so nothing pretends the balance
// moved.
func respondUnsettled(c *gin.Context, key string, payload any, err error) {
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		key:       payload,
		"error":   err.Error(),
		"class":   settlementClass(err),
	})
}

func principalFrom(c *gin.Context) (string, string, bool) {
	principal, exists := c.Get("principal")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", "", false
	}
	sessionID, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found"})
		return "", "", false
	}
	return principal.(string), sessionID.(string), true
}
