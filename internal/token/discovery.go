package token

import (
	"context"
	"fmt"
	"sort"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	tokenprog "github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AccountsReader is the part of the RPC client discovery needs.
type AccountsReader interface {
	GetTokenAccountsByOwner(ctx context.Context, owner, programID solana.PublicKey) ([]*rpc.TokenAccount, error)
	GetMultipleAccounts(ctx context.Context, pubkeys []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error)
}

// Discoverer lists the tokens a wallet holds under both token programs.
type Discoverer struct {
	reader AccountsReader
	logger *zap.Logger
}

// NewDiscoverer creates a discoverer.
func NewDiscoverer(reader AccountsReader, logger *zap.Logger) *Discoverer {
	return &Discoverer{
		reader: reader,
		logger: logger.Named("token-discovery"),
	}
}

type holding struct {
	account solana.PublicKey
	mint    solana.PublicKey
	amount  uint64
	program Program
}

// Discover returns non-empty holdings of owner sorted by base-unit balance,
// highest first.
func (d *Discoverer) Discover(ctx context.Context, owner solana.PublicKey) ([]Info, error) {
	perProgram := make([][]holding, len(Programs))

	g, gCtx := errgroup.WithContext(ctx)
	for i, program := range Programs {
		g.Go(func() error {
			accounts, err := d.reader.GetTokenAccountsByOwner(gCtx, owner, program.ID())
			if err != nil {
				return fmt.Errorf("failed to list %s accounts: %w", program, err)
			}
			holdings, err := decodeHoldings(accounts, program)
			if err != nil {
				return err
			}
			perProgram[i] = holdings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var holdings []holding
	for _, h := range perProgram {
		holdings = append(holdings, h...)
	}
	if len(holdings) == 0 {
		return nil, nil
	}

	decimals, err := d.mintDecimals(ctx, holdings)
	if err != nil {
		return nil, err
	}

	tokens := make([]Info, 0, len(holdings))
	for _, h := range holdings {
		tokens = append(tokens, NewInfo(h.mint, h.account, h.program, decimals[h.mint], h.amount))
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Balance > tokens[j].Balance
	})

	d.logger.Debug("Tokens discovered",
		zap.String("owner", owner.String()),
		zap.Int("count", len(tokens)))
	return tokens, nil
}

func decodeHoldings(accounts []*rpc.TokenAccount, program Program) ([]holding, error) {
	holdings := make([]holding, 0, len(accounts))
	for _, acc := range accounts {
		if acc == nil || acc.Account.Data == nil {
			continue
		}
		var state tokenprog.Account
		if err := bin.NewBinDecoder(acc.Account.Data.GetBinary()).Decode(&state); err != nil {
			return nil, fmt.Errorf("failed to decode token account %s: %w", acc.Pubkey, err)
		}
		if state.Amount == 0 {
			continue
		}
		holdings = append(holdings, holding{
			account: acc.Pubkey,
			mint:    state.Mint,
			amount:  state.Amount,
			program: program,
		})
	}
	return holdings, nil
}

func (d *Discoverer) mintDecimals(ctx context.Context, holdings []holding) (map[solana.PublicKey]uint8, error) {
	var mints []solana.PublicKey
	seen := make(map[solana.PublicKey]struct{})
	for _, h := range holdings {
		if _, ok := seen[h.mint]; ok {
			continue
		}
		seen[h.mint] = struct{}{}
		mints = append(mints, h.mint)
	}

	res, err := d.reader.GetMultipleAccounts(ctx, mints)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mint accounts: %w", err)
	}
	if res == nil || len(res.Value) != len(mints) {
		return nil, fmt.Errorf("expected %d mint accounts in response", len(mints))
	}

	decimals := make(map[solana.PublicKey]uint8, len(mints))
	for i, acc := range res.Value {
		if acc == nil || acc.Data == nil {
			return nil, fmt.Errorf("mint account %s not found", mints[i])
		}
		var mint tokenprog.Mint
		if err := bin.NewBinDecoder(acc.Data.GetBinary()).Decode(&mint); err != nil {
			return nil, fmt.Errorf("failed to decode mint %s: %w", mints[i], err)
		}
		decimals[mints[i]] = mint.Decimals
	}
	return decimals, nil
}
