package token

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals uint8
		want     uint64
	}{
		{name: "0.8 at 6 decimals", amount: "0.8", decimals: 6, want: 800_000},
		{name: "0.8 at 9 decimals", amount: "0.8", decimals: 9, want: 800_000_000},
		{name: "whole tokens", amount: "25", decimals: 2, want: 2_500},
		{name: "floors extra precision", amount: "1.23456789", decimals: 4, want: 12_345},
		{name: "zero decimals floors", amount: "3.99", decimals: 0, want: 3},
		{name: "below one base unit", amount: "0.0000001", decimals: 6, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(decimal.RequireFromString(tt.amount), tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBaseUnits_FromFloat(t *testing.T) {
	got, err := ToBaseUnits(decimal.NewFromFloat(0.8), 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(800_000), got)

	got, err = ToBaseUnits(decimal.NewFromFloat(0.29), 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(290_000_000), got)
}

func TestToBaseUnits_Errors(t *testing.T) {
	_, err := ToBaseUnits(decimal.NewFromInt(-1), 6)
	assert.Error(t, err)

	_, err = ToBaseUnits(decimal.RequireFromString("100000000000000"), 9)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestFromBaseUnits(t *testing.T) {
	assert.True(t, decimal.RequireFromString("1.5").Equal(FromBaseUnits(1_500_000, 6)))
	assert.True(t, decimal.Zero.Equal(FromBaseUnits(0, 9)))
}

func TestCheckSufficient(t *testing.T) {
	info := NewInfo(solana.PublicKey{1}, solana.PublicKey{2}, ProgramSPL, 6, 4_000_000_000)

	check, err := CheckSufficient(info, 5000, decimal.RequireFromString("0.8"))
	require.NoError(t, err)
	assert.True(t, check.Sufficient)
	assert.True(t, decimal.NewFromInt(4000).Equal(check.Required))
	assert.True(t, decimal.NewFromInt(4000).Equal(check.Available))

	check, err = CheckSufficient(info, 5001, decimal.RequireFromString("0.8"))
	require.NoError(t, err)
	assert.False(t, check.Sufficient)
	assert.True(t, decimal.RequireFromString("4000.8").Equal(check.Required))
}

func TestProgram(t *testing.T) {
	assert.Equal(t, solana.TokenProgramID, ProgramSPL.ID())
	assert.Equal(t, Token2022ProgramID, Program2022.ID())
	assert.Equal(t, "[SPL]", ProgramSPL.Label())
	assert.Equal(t, "[T22]", Program2022.Label())

	for _, p := range Programs {
		got, err := ProgramFromID(p.ID())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ProgramFromID(solana.SystemProgramID)
	assert.Error(t, err)
}
