// internal/airdrop/builder.go
package airdrop

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/rovshanmuradov/dandelion/internal/blockchain/solana/programs/computebudget"
	"github.com/rovshanmuradov/dandelion/internal/token"
)

// Builder turns one batch of recipients into the instructions of a single
// transaction. It performs no network I/O.
type Builder struct {
	payer  solana.PublicKey
	token  token.Info
	budget computebudget.Config
}

// NewBuilder creates a builder paying from payer's holding of info.
func NewBuilder(payer solana.PublicKey, info token.Info, budget computebudget.Config) *Builder {
	return &Builder{
		payer:  payer,
		token:  info,
		budget: budget,
	}
}

// Instructions returns the compute unit limit and price instructions followed,
// for every recipient in order, by an idempotent associated account creation
// and a transfer of amount base units.
func (b *Builder) Instructions(batch []solana.PublicKey, amount uint64) ([]solana.Instruction, error) {
	instructions, err := computebudget.BuildInstructions(b.budget)
	if err != nil {
		return nil, err
	}

	for _, recipient := range batch {
		createATA, ata, err := token.NewCreateIdempotentInstruction(b.payer, recipient, b.token.Mint, b.token.Program)
		if err != nil {
			return nil, fmt.Errorf("recipient %s: %w", recipient, err)
		}
		transfer, err := token.NewTransferInstruction(amount, b.token.TokenAccount, ata, b.payer, b.token.Program)
		if err != nil {
			return nil, fmt.Errorf("recipient %s: %w", recipient, err)
		}
		instructions = append(instructions, createATA, transfer)
	}
	return instructions, nil
}
