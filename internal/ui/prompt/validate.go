// internal/ui/prompt/validate.go
package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/dandelion/internal/config"
)

var (
	ErrNotANumber  = errors.New("enter a number")
	ErrOutOfRange  = errors.New("value out of range")
	ErrNotPositive = errors.New("must be greater than 0")
)

// Selection is what the operator chose for one run. TokenIndex is 1-based,
// as shown in the token list.
type Selection struct {
	TokenIndex         int
	Recipients         int
	TokensPerRecipient decimal.Decimal
	RecipientsPerTx    int
}

// DefaultSelection takes the run parameters from configuration and the
// first token.
func DefaultSelection(cfg *config.Config) Selection {
	return Selection{
		TokenIndex:         1,
		Recipients:         cfg.TotalRecipients,
		TokensPerRecipient: cfg.TokensPerRecipient,
		RecipientsPerTx:    cfg.RecipientsPerTx,
	}
}

// Validate applies the same rules as the interactive prompts.
func (s Selection) Validate(tokenCount int) error {
	if err := checkTokenIndex(s.TokenIndex, tokenCount); err != nil {
		return fmt.Errorf("token: %w", err)
	}
	if s.Recipients <= 0 {
		return fmt.Errorf("recipients: %w", ErrNotPositive)
	}
	if !s.TokensPerRecipient.IsPositive() {
		return fmt.Errorf("tokens per recipient: %w", ErrNotPositive)
	}
	if err := CheckBatchSize(s.RecipientsPerTx); err != nil {
		return fmt.Errorf("batch size: %w", err)
	}
	return nil
}

// ParseTokenIndex accepts a 1-based index into a list of count tokens.
func ParseTokenIndex(input string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrNotANumber
	}
	if err := checkTokenIndex(n, count); err != nil {
		return 0, err
	}
	return n, nil
}

func checkTokenIndex(n, count int) error {
	if n < 1 || n > count {
		return fmt.Errorf("%w: choose 1-%d", ErrOutOfRange, count)
	}
	return nil
}

// ParseRecipients accepts a positive recipient count.
func ParseRecipients(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrNotANumber
	}
	if n <= 0 {
		return 0, ErrNotPositive
	}
	return n, nil
}

// ParseAmount accepts a positive display amount.
func ParseAmount(input string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return d, nil
}

// ParseBatchSize accepts 1 to config.MaxRecipientsPerTx.
func ParseBatchSize(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ErrNotANumber
	}
	if err := CheckBatchSize(n); err != nil {
		return 0, err
	}
	return n, nil
}

// CheckBatchSize accepts 1 to config.MaxRecipientsPerTx.
func CheckBatchSize(n int) error {
	if n < 1 || n > config.MaxRecipientsPerTx {
		return fmt.Errorf("%w: choose 1-%d", ErrOutOfRange, config.MaxRecipientsPerTx)
	}
	return nil
}

// ParseConfirm is true only for an explicit yes.
func ParseConfirm(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
