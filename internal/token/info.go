package token

import (
	"errors"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// ErrAmountOverflow is returned when a display amount does not fit in base units.
var ErrAmountOverflow = errors.New("amount overflows base units")

// Info describes one token held by the payer. It is loaded once per run and
// never mutated afterwards.
type Info struct {
	Mint           solana.PublicKey
	TokenAccount   solana.PublicKey
	Program        Program
	Decimals       uint8
	Balance        uint64
	DisplayBalance decimal.Decimal
	Symbol         string
}

// NewInfo fills DisplayBalance from the base-unit balance.
func NewInfo(mint, tokenAccount solana.PublicKey, program Program, decimals uint8, balance uint64) Info {
	return Info{
		Mint:           mint,
		TokenAccount:   tokenAccount,
		Program:        program,
		Decimals:       decimals,
		Balance:        balance,
		DisplayBalance: FromBaseUnits(balance, decimals),
	}
}

// ToBaseUnits converts a display amount to base units, rounding down:
// floor(amount * 10^decimals).
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", amount)
	}
	scaled := amount.Shift(int32(decimals)).Floor()
	if scaled.GreaterThan(decimal.NewFromUint64(math.MaxUint64)) {
		return 0, fmt.Errorf("%w: %s with %d decimals", ErrAmountOverflow, amount, decimals)
	}
	return scaled.BigInt().Uint64(), nil
}

// FromBaseUnits converts base units to a display amount.
func FromBaseUnits(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-int32(decimals))
}

// BalanceCheck is the result of comparing the payer's holding with a plan.
type BalanceCheck struct {
	Sufficient bool
	Required   decimal.Decimal
	Available  decimal.Decimal
}

// CheckSufficient reports whether the token balance covers recipients * perRecipient
// after both are rounded to base units the same way the transfers will be.
func CheckSufficient(info Info, recipients int, perRecipient decimal.Decimal) (BalanceCheck, error) {
	amount, err := ToBaseUnits(perRecipient, info.Decimals)
	if err != nil {
		return BalanceCheck{}, err
	}
	required := decimal.NewFromUint64(amount).Mul(decimal.NewFromInt(int64(recipients)))
	available := decimal.NewFromUint64(info.Balance)

	return BalanceCheck{
		Sufficient: available.GreaterThanOrEqual(required),
		Required:   required.Shift(-int32(info.Decimals)),
		Available:  info.DisplayBalance,
	}, nil
}
