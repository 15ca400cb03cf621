package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy at the ledger boundary. Every
// client method returns one of these (wrapped) so callers can branch with
// errors.Is without knowing wire details.
var (
	ErrUnauthorized      = errors.New("ledger: unauthorized")
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")
	ErrPolicy            = errors.New("ledger: policy violation")
	ErrNotFound          = errors.New("ledger: not found")
	ErrUnavailable       = errors.New("ledger: unavailable")
)

// CallError carries the ledger's own error code and message alongside the
// mapped sentinel.
type CallError struct {
	Op      string
	Code    string
	Message string
	kind    error
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("ledger %s: %s", e.Op, e.kind)
}

func (e *CallError) Unwrap() error {
	return e.kind
}
