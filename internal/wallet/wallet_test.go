package wallet

import (
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	generated, err := Generate()
	require.NoError(t, err)

	asJSON, err := json.Marshal(toInts(generated.PrivateKey))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
	}{
		{name: "base58", secret: base58.Encode(generated.PrivateKey)},
		{name: "base58 with whitespace", secret: "  " + generated.SecretBase58() + "\n"},
		{name: "json array", secret: string(asJSON)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Load(tt.secret)
			require.NoError(t, err)
			assert.Equal(t, generated.PublicKey, w.PublicKey)
			assert.Equal(t, generated.String(), w.String())
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	generated, err := Generate()
	require.NoError(t, err)

	tampered := make([]byte, len(generated.PrivateKey))
	copy(tampered, generated.PrivateKey)
	tampered[40] ^= 0xff

	outOfRange := toInts(generated.PrivateKey)
	outOfRange[3] = 256
	outOfRangeJSON, _ := json.Marshal(outOfRange)

	tests := []struct {
		name   string
		secret string
	}{
		{name: "empty", secret: ""},
		{name: "placeholder", secret: "your_private_key_here"},
		{name: "short json", secret: "[1,2,3]"},
		{name: "byte out of range", secret: string(outOfRangeJSON)},
		{name: "mismatched public half", secret: base58.Encode(tampered)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.secret)
			assert.ErrorIs(t, err, ErrInvalidKeyFormat)
		})
	}
}

func TestSignTransaction(t *testing.T) {
	payer, err := Generate()
	require.NoError(t, err)
	extra, err := Generate()
	require.NoError(t, err)

	ix := solana.NewInstruction(
		solana.SystemProgramID,
		[]*solana.AccountMeta{
			solana.Meta(payer.PublicKey).WRITE().SIGNER(),
			solana.Meta(extra.PublicKey).WRITE().SIGNER(),
		},
		[]byte{0},
	)
	tx, err := solana.NewTransaction([]solana.Instruction{ix}, solana.Hash{}, solana.TransactionPayer(payer.PublicKey))
	require.NoError(t, err)

	require.NoError(t, payer.SignTransaction(tx, extra.PrivateKey))
	require.Len(t, tx.Signatures, 2)
	assert.NoError(t, tx.VerifySignatures())
}

func toInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
