// internal/blockchain/solbc/sender.go
package solbc

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/dandelion/internal/wallet"
)

// Sender builds, signs, submits and confirms transactions paid by one wallet.
// It never retries: every error is returned to the caller.
type Sender struct {
	client         *Client
	payer          *wallet.Wallet
	confirmTimeout time.Duration
	logger         *zap.Logger
}

// NewSender creates a sender for the payer.
func NewSender(client *Client, payer *wallet.Wallet, confirmTimeout time.Duration, logger *zap.Logger) *Sender {
	return &Sender{
		client:         client,
		payer:          payer,
		confirmTimeout: confirmTimeout,
		logger:         logger.Named("sender"),
	}
}

// Submit sends the instructions as one transaction and waits for confirmation.
func (s *Sender) Submit(ctx context.Context, instructions []solana.Instruction) (solana.Signature, error) {
	return s.SendAndConfirm(ctx, instructions)
}

// SendAndConfirm is Submit with additional signers besides the payer.
func (s *Sender) SendAndConfirm(ctx context.Context, instructions []solana.Instruction, extraSigners ...solana.PrivateKey) (solana.Signature, error) {
	tx, err := s.createSignedTransaction(ctx, instructions, extraSigners)
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := s.client.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", analyzeSendError(err))
	}
	s.logger.Debug("Transaction sent", zap.String("signature", sig.String()))

	if err := s.client.WaitForConfirmation(ctx, sig, s.confirmTimeout); err != nil {
		return sig, err
	}
	s.logger.Debug("Transaction confirmed", zap.String("signature", sig.String()))
	return sig, nil
}

func (s *Sender) createSignedTransaction(ctx context.Context, instructions []solana.Instruction, extraSigners []solana.PrivateKey) (*solana.Transaction, error) {
	blockhash, err := s.client.GetRecentBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(s.payer.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.payer.SignTransaction(tx, extraSigners...); err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	return tx, nil
}

// Payer returns the signing wallet.
func (s *Sender) Payer() *wallet.Wallet {
	return s.payer
}
