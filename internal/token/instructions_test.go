package token

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssociatedAddress(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	spl, err := AssociatedAddress(owner, mint, ProgramSPL)
	require.NoError(t, err)
	expected, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, expected, spl)

	t22, err := AssociatedAddress(owner, mint, Program2022)
	require.NoError(t, err)
	assert.NotEqual(t, spl, t22)
}

func TestNewCreateIdempotentInstruction(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	for _, program := range Programs {
		t.Run(program.String(), func(t *testing.T) {
			ix, ata, err := NewCreateIdempotentInstruction(payer, owner, mint, program)
			require.NoError(t, err)

			expectedATA, err := AssociatedAddress(owner, mint, program)
			require.NoError(t, err)
			assert.Equal(t, expectedATA, ata)

			assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, ix.ProgramID())
			data, err := ix.Data()
			require.NoError(t, err)
			assert.Equal(t, []byte{1}, data)

			accounts := ix.Accounts()
			require.Len(t, accounts, 6)
			assert.Equal(t, payer, accounts[0].PublicKey)
			assert.True(t, accounts[0].IsSigner)
			assert.True(t, accounts[0].IsWritable)
			assert.Equal(t, ata, accounts[1].PublicKey)
			assert.True(t, accounts[1].IsWritable)
			assert.Equal(t, owner, accounts[2].PublicKey)
			assert.Equal(t, mint, accounts[3].PublicKey)
			assert.Equal(t, solana.SystemProgramID, accounts[4].PublicKey)
			assert.Equal(t, program.ID(), accounts[5].PublicKey)
		})
	}
}

func TestNewTransferInstruction(t *testing.T) {
	source := solana.NewWallet().PublicKey()
	destination := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	for _, program := range Programs {
		t.Run(program.String(), func(t *testing.T) {
			ix, err := NewTransferInstruction(800_000, source, destination, owner, program)
			require.NoError(t, err)
			assert.Equal(t, program.ID(), ix.ProgramID())

			data, err := ix.Data()
			require.NoError(t, err)
			require.Len(t, data, 9)
			assert.Equal(t, byte(3), data[0])
			assert.Equal(t, uint64(800_000), binary.LittleEndian.Uint64(data[1:]))

			accounts := ix.Accounts()
			require.Len(t, accounts, 3)
			assert.Equal(t, source, accounts[0].PublicKey)
			assert.Equal(t, destination, accounts[1].PublicKey)
			assert.Equal(t, owner, accounts[2].PublicKey)
			assert.True(t, accounts[2].IsSigner)
		})
	}
}

func TestNewMintToInstruction(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	destination := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	ix, err := NewMintToInstruction(42, mint, destination, authority, ProgramSPL)
	require.NoError(t, err)
	assert.Equal(t, solana.TokenProgramID, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, byte(7), data[0])
	assert.Equal(t, uint64(42), binary.LittleEndian.Uint64(data[1:]))
}
