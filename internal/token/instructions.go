package token

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	tokenprog "github.com/gagliardetto/solana-go/programs/token"
)

// createIdempotent is the associated token account program discriminator
// for CreateIdempotent.
const createIdempotent byte = 1

// AssociatedAddress derives the associated token account of owner for mint
// under the given token program.
func AssociatedAddress(owner, mint solana.PublicKey, program Program) (solana.PublicKey, error) {
	programID := program.ID()
	ata, _, err := solana.FindProgramAddress(
		[][]byte{owner[:], programID[:], mint[:]},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive associated token address for %s: %w", owner, err)
	}
	return ata, nil
}

// NewCreateIdempotentInstruction creates owner's associated token account at
// payer's expense, or does nothing if it already exists.
func NewCreateIdempotentInstruction(payer, owner, mint solana.PublicKey, program Program) (solana.Instruction, solana.PublicKey, error) {
	ata, err := AssociatedAddress(owner, mint, program)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	ix := solana.NewInstruction(
		solana.SPLAssociatedTokenAccountProgramID,
		[]*solana.AccountMeta{
			solana.Meta(payer).WRITE().SIGNER(),
			solana.Meta(ata).WRITE(),
			solana.Meta(owner),
			solana.Meta(mint),
			solana.Meta(solana.SystemProgramID),
			solana.Meta(program.ID()),
		},
		[]byte{createIdempotent},
	)
	return ix, ata, nil
}

// NewTransferInstruction moves amount base units from source to destination,
// authorized by owner, under the given token program. The instruction layout
// is shared by both programs, so solana-go's builder is reused and only the
// program id is swapped.
func NewTransferInstruction(amount uint64, source, destination, owner solana.PublicKey, program Program) (solana.Instruction, error) {
	return retarget(
		tokenprog.NewTransferInstruction(amount, source, destination, owner, []solana.PublicKey{}).Build(),
		program,
	)
}

// NewMintToInstruction mints amount base units of mint into destination.
func NewMintToInstruction(amount uint64, mint, destination, authority solana.PublicKey, program Program) (solana.Instruction, error) {
	return retarget(
		tokenprog.NewMintToInstruction(amount, mint, destination, authority, []solana.PublicKey{}).Build(),
		program,
	)
}

func retarget(ix solana.Instruction, program Program) (solana.Instruction, error) {
	data, err := ix.Data()
	if err != nil {
		return nil, fmt.Errorf("failed to encode token instruction: %w", err)
	}
	return solana.NewInstruction(program.ID(), ix.Accounts(), data), nil
}
