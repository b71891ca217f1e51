package token

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	tokenprog "github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/dandelion/internal/wallet"
)

const (
	// TestTokenDecimals and TestTokenSupply describe the devnet test token.
	TestTokenDecimals uint8  = 6
	TestTokenSupply   uint64 = 10_000_000
	TestTokenSymbol          = "TEST"

	mintAccountSize uint64 = 82
)

// Signer submits transactions paid by one wallet, with optional extra signers.
type Signer interface {
	SendAndConfirm(ctx context.Context, instructions []solana.Instruction, extraSigners ...solana.PrivateKey) (solana.Signature, error)
	Payer() *wallet.Wallet
}

// RentReader returns the rent-exempt minimum for an account size.
type RentReader interface {
	GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)
}

// Minter creates a throwaway SPL token owned by the payer. Devnet only.
type Minter struct {
	signer Signer
	rent   RentReader
	logger *zap.Logger
}

// NewMinter creates a minter.
func NewMinter(signer Signer, rent RentReader, logger *zap.Logger) *Minter {
	return &Minter{
		signer: signer,
		rent:   rent,
		logger: logger.Named("test-token"),
	}
}

// CreateTestToken creates a mint with TestTokenDecimals, the payer's
// associated account and mints TestTokenSupply whole tokens into it.
func (m *Minter) CreateTestToken(ctx context.Context) (Info, error) {
	payer := m.signer.Payer().PublicKey

	mintKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return Info{}, fmt.Errorf("failed to generate mint keypair: %w", err)
	}
	mint := mintKey.PublicKey()

	lamports, err := m.rent.GetMinimumBalanceForRentExemption(ctx, mintAccountSize)
	if err != nil {
		return Info{}, fmt.Errorf("failed to get mint rent: %w", err)
	}

	instructions, ata, err := testTokenInstructions(payer, mint, lamports)
	if err != nil {
		return Info{}, err
	}

	m.logger.Info("Creating test token", zap.String("mint", mint.String()))
	sig, err := m.signer.SendAndConfirm(ctx, instructions, mintKey)
	if err != nil {
		return Info{}, fmt.Errorf("failed to create test token: %w", err)
	}
	m.logger.Info("Test token minted",
		zap.String("mint", mint.String()),
		zap.String("token_account", ata.String()),
		zap.String("signature", sig.String()))

	info := NewInfo(mint, ata, ProgramSPL, TestTokenDecimals, testTokenRawSupply())
	info.Symbol = TestTokenSymbol
	return info, nil
}

func testTokenRawSupply() uint64 {
	raw := TestTokenSupply
	for i := uint8(0); i < TestTokenDecimals; i++ {
		raw *= 10
	}
	return raw
}

func testTokenInstructions(payer, mint solana.PublicKey, rentLamports uint64) ([]solana.Instruction, solana.PublicKey, error) {
	createMint := system.NewCreateAccountInstruction(
		rentLamports,
		mintAccountSize,
		solana.TokenProgramID,
		payer,
		mint,
	).Build()

	initMint := tokenprog.NewInitializeMintInstructionBuilder().
		SetDecimals(TestTokenDecimals).
		SetMintAuthority(payer).
		SetMintAccount(mint).
		SetSysVarRentPubkeyAccount(solana.SysVarRentPubkey).
		Build()

	createATA, ata, err := NewCreateIdempotentInstruction(payer, payer, mint, ProgramSPL)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	mintTo, err := NewMintToInstruction(testTokenRawSupply(), mint, ata, payer, ProgramSPL)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}

	return []solana.Instruction{createMint, initMint, createATA, mintTo}, ata, nil
}
