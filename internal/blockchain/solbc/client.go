// internal/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

const (
	defaultPollInterval   = 500 * time.Millisecond
	defaultConfirmTimeout = 60 * time.Second
)

var (
	// ErrNotConfirmed is returned while a signature has not reached the confirmed level.
	ErrNotConfirmed = errors.New("transaction not confirmed yet")
	// ErrConfirmationTimeout is returned when confirmation was not observed in time.
	ErrConfirmationTimeout = errors.New("confirmation timeout")
)

// TransactionError carries the on-chain error of a confirmed but failed transaction.
type TransactionError struct {
	Signature solana.Signature
	Err       interface{}
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Err)
}

// Client is a thin adapter over solana-go's RPC client.
type Client struct {
	rpc          *rpc.Client
	logger       *zap.Logger
	pollInterval time.Duration
}

// NewClient creates a client for the given RPC endpoint.
func NewClient(rpcURL string, logger *zap.Logger) *Client {
	return newClient(rpc.New(rpcURL), logger)
}

func newClient(rpcClient *rpc.Client, logger *zap.Logger) *Client {
	return &Client{
		rpc:          rpcClient,
		logger:       logger.Named("solbc-client"),
		pollInterval: defaultPollInterval,
	}
}

// GetRecentBlockhash returns the latest blockhash at confirmed commitment.
func (c *Client) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		c.logger.Debug("GetRecentBlockhash error", zap.Error(err))
		return solana.Hash{}, err
	}
	return result.Value.Blockhash, nil
}

// SendTransaction submits a signed transaction with confirmed preflight.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		c.logger.Debug("SendTransaction error", zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// GetSignatureStatuses returns statuses of the given signatures.
func (c *Client) GetSignatureStatuses(ctx context.Context, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	result, err := c.rpc.GetSignatureStatuses(ctx, false, signatures...)
	if err != nil {
		c.logger.Debug("GetSignatureStatuses error", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// WaitForConfirmation polls the signature status until it is confirmed or
// finalized. A failed transaction stops the polling immediately.
func (c *Client) WaitForConfirmation(ctx context.Context, signature solana.Signature, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultConfirmTimeout
	}

	poll := func() (struct{}, error) {
		statuses, err := c.GetSignatureStatuses(ctx, signature)
		if err != nil {
			return struct{}{}, err
		}
		if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
			return struct{}{}, ErrNotConfirmed
		}
		status := statuses.Value[0]
		if status.Err != nil {
			return struct{}{}, backoff.Permanent(&TransactionError{Signature: signature, Err: status.Err})
		}
		if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
			status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
			return struct{}{}, nil
		}
		return struct{}{}, ErrNotConfirmed
	}

	_, err := backoff.Retry(ctx, poll,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.pollInterval)),
		backoff.WithMaxElapsedTime(timeout),
	)
	if err == nil {
		return nil
	}

	var txErr *TransactionError
	if errors.As(err, &txErr) {
		return txErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w for %s: %v", ErrConfirmationTimeout, signature, err)
}

// GetBalance returns the lamport balance of an account.
func (c *Client) GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error) {
	result, err := c.rpc.GetBalance(ctx, pubkey, rpc.CommitmentConfirmed)
	if err != nil {
		c.logger.Debug("GetBalance error", zap.String("pubkey", pubkey.String()), zap.Error(err))
		return 0, err
	}
	return result.Value, nil
}

// GetTokenAccountsByOwner returns raw token accounts of owner under one token program.
func (c *Client) GetTokenAccountsByOwner(ctx context.Context, owner, programID solana.PublicKey) ([]*rpc.TokenAccount, error) {
	program := programID
	result, err := c.rpc.GetTokenAccountsByOwner(ctx, owner,
		&rpc.GetTokenAccountsConfig{ProgramId: &program},
		&rpc.GetTokenAccountsOpts{
			Commitment: rpc.CommitmentConfirmed,
			Encoding:   solana.EncodingBase64,
		},
	)
	if err != nil {
		c.logger.Debug("GetTokenAccountsByOwner error",
			zap.String("owner", owner.String()),
			zap.String("program_id", programID.String()),
			zap.Error(err))
		return nil, err
	}
	return result.Value, nil
}

// GetMultipleAccounts fetches several accounts in one request.
func (c *Client) GetMultipleAccounts(ctx context.Context, pubkeys []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	if len(pubkeys) == 0 {
		return &rpc.GetMultipleAccountsResult{}, nil
	}
	res, err := c.rpc.GetMultipleAccountsWithOpts(ctx, pubkeys, &rpc.GetMultipleAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		c.logger.Debug("GetMultipleAccounts error", zap.Error(err))
		return nil, err
	}
	return res, nil
}

// GetMinimumBalanceForRentExemption returns the rent-exempt minimum for an account size.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	return c.rpc.GetMinimumBalanceForRentExemption(ctx, size, rpc.CommitmentConfirmed)
}

// RequestAirdrop asks the cluster faucet for lamports. Only devnet and testnet honour it.
func (c *Client) RequestAirdrop(ctx context.Context, pubkey solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := c.rpc.RequestAirdrop(ctx, pubkey, lamports, rpc.CommitmentConfirmed)
	if err != nil {
		c.logger.Debug("RequestAirdrop error", zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}
