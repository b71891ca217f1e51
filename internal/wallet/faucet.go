// internal/wallet/faucet.go
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
)

// TestFundsLamports is what a fresh devnet test wallet asks the faucet for.
const TestFundsLamports = 2 * solana.LAMPORTS_PER_SOL

// Faucet is the devnet airdrop endpoint of an RPC node.
type Faucet interface {
	RequestAirdrop(ctx context.Context, pubkey solana.PublicKey, lamports uint64) (solana.Signature, error)
	WaitForConfirmation(ctx context.Context, signature solana.Signature, timeout time.Duration) error
}

// RequestTestFunds asks the faucet for TestFundsLamports and waits until the
// airdrop is confirmed.
func RequestTestFunds(ctx context.Context, faucet Faucet, w *Wallet, timeout time.Duration) (solana.Signature, error) {
	sig, err := faucet.RequestAirdrop(ctx, w.PublicKey, TestFundsLamports)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("faucet airdrop request failed: %w", err)
	}
	if err := faucet.WaitForConfirmation(ctx, sig, timeout); err != nil {
		return sig, fmt.Errorf("faucet airdrop not confirmed: %w", err)
	}
	return sig, nil
}
