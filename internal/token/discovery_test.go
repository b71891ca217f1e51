package token

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeReader struct {
	accounts  map[solana.PublicKey][]*rpc.TokenAccount
	mints     map[solana.PublicKey]uint8
	listErr   error
	mintCalls int
}

func (f *fakeReader) GetTokenAccountsByOwner(_ context.Context, _, programID solana.PublicKey) ([]*rpc.TokenAccount, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.accounts[programID], nil
}

func (f *fakeReader) GetMultipleAccounts(_ context.Context, pubkeys []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	f.mintCalls++
	res := &rpc.GetMultipleAccountsResult{}
	for _, key := range pubkeys {
		decimals, ok := f.mints[key]
		if !ok {
			res.Value = append(res.Value, nil)
			continue
		}
		res.Value = append(res.Value, &rpc.Account{Data: rpc.DataBytesOrJSONFromBytes(mintData(decimals))})
	}
	return res, nil
}

// tokenAccountData lays out a 165-byte token account with no optional fields.
func tokenAccountData(mint, owner solana.PublicKey, amount uint64) []byte {
	data := make([]byte, 165)
	copy(data[0:32], mint[:])
	copy(data[32:64], owner[:])
	binary.LittleEndian.PutUint64(data[64:72], amount)
	data[108] = 1 // initialized
	return data
}

// mintData lays out an 82-byte initialized mint.
func mintData(decimals uint8) []byte {
	data := make([]byte, 82)
	binary.LittleEndian.PutUint64(data[36:44], 1_000_000)
	data[44] = decimals
	data[45] = 1
	return data
}

func tokenAccount(mint, owner solana.PublicKey, amount uint64) *rpc.TokenAccount {
	return &rpc.TokenAccount{
		Pubkey: solana.NewWallet().PublicKey(),
		Account: rpc.Account{
			Data: rpc.DataBytesOrJSONFromBytes(tokenAccountData(mint, owner, amount)),
		},
	}
}

func TestDiscover(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	small := solana.NewWallet().PublicKey()
	large := solana.NewWallet().PublicKey()
	empty := solana.NewWallet().PublicKey()
	t22 := solana.NewWallet().PublicKey()

	reader := &fakeReader{
		accounts: map[solana.PublicKey][]*rpc.TokenAccount{
			solana.TokenProgramID: {
				tokenAccount(small, owner, 10),
				tokenAccount(empty, owner, 0),
				tokenAccount(large, owner, 5_000_000_000),
			},
			Token2022ProgramID: {
				tokenAccount(t22, owner, 700),
			},
		},
		mints: map[solana.PublicKey]uint8{small: 0, large: 9, empty: 6, t22: 2},
	}

	tokens, err := NewDiscoverer(reader, zaptest.NewLogger(t)).Discover(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, tokens, 3)

	assert.Equal(t, large, tokens[0].Mint)
	assert.Equal(t, ProgramSPL, tokens[0].Program)
	assert.Equal(t, uint8(9), tokens[0].Decimals)
	assert.Equal(t, "5", tokens[0].DisplayBalance.String())

	assert.Equal(t, t22, tokens[1].Mint)
	assert.Equal(t, Program2022, tokens[1].Program)
	assert.Equal(t, "7", tokens[1].DisplayBalance.String())

	assert.Equal(t, small, tokens[2].Mint)
	assert.Equal(t, uint64(10), tokens[2].Balance)

	for _, tok := range tokens {
		assert.NotEqual(t, empty, tok.Mint)
	}
	assert.Equal(t, 1, reader.mintCalls)
}

func TestDiscover_NoTokens(t *testing.T) {
	reader := &fakeReader{}

	tokens, err := NewDiscoverer(reader, zaptest.NewLogger(t)).Discover(context.Background(), solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.Empty(t, tokens)
	assert.Zero(t, reader.mintCalls)
}

func TestDiscover_ListError(t *testing.T) {
	reader := &fakeReader{listErr: errors.New("rpc down")}

	_, err := NewDiscoverer(reader, zaptest.NewLogger(t)).Discover(context.Background(), solana.NewWallet().PublicKey())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc down")
}

func TestDiscover_MissingMint(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	reader := &fakeReader{
		accounts: map[solana.PublicKey][]*rpc.TokenAccount{
			solana.TokenProgramID: {tokenAccount(mint, owner, 1)},
		},
	}

	_, err := NewDiscoverer(reader, zaptest.NewLogger(t)).Discover(context.Background(), owner)
	assert.Error(t, err)
}

func TestDiscover_SkipsAccountsWithoutData(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	reader := &fakeReader{
		accounts: map[solana.PublicKey][]*rpc.TokenAccount{
			solana.TokenProgramID: {
				nil,
				{Pubkey: solana.NewWallet().PublicKey(), Account: rpc.Account{}},
				tokenAccount(mint, owner, 42),
			},
		},
		mints: map[solana.PublicKey]uint8{mint: 0},
	}

	tokens, err := NewDiscoverer(reader, zaptest.NewLogger(t)).Discover(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, mint, tokens[0].Mint)
	assert.Equal(t, uint64(42), tokens[0].Balance)
}
