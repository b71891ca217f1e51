// internal/app/errors.go
package app

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoTokens is returned when the payer holds nothing to distribute.
	ErrNoTokens = errors.New("wallet holds no tokens")
	// ErrNoWallet is returned when no private key is configured outside devnet.
	ErrNoWallet = errors.New("PRIVATE_KEY is required outside devnet")
)

// InsufficientBalanceError is the fatal pre-check failure for tokens or SOL.
type InsufficientBalanceError struct {
	Asset     string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: required %s, available %s", e.Asset, e.Required, e.Available)
}
