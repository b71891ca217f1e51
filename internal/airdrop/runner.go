// internal/airdrop/runner.go
package airdrop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/dandelion/internal/blockchain/solana/programs/computebudget"
	"github.com/rovshanmuradov/dandelion/internal/events"
	"github.com/rovshanmuradov/dandelion/internal/token"
)

// ErrZeroAmount is returned when the per-recipient amount rounds down to
// nothing at the token's precision.
var ErrZeroAmount = errors.New("per-recipient amount is below one base unit")

// Submitter sends one transaction built from instructions and waits for it
// to be confirmed.
type Submitter interface {
	Submit(ctx context.Context, instructions []solana.Instruction) (solana.Signature, error)
}

// BalanceReader returns an account's lamport balance.
type BalanceReader interface {
	GetBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
}

// Publisher receives the loop's progress events.
type Publisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

// Plan is one run's input. It is not modified by Run.
type Plan struct {
	Token              token.Info
	Recipients         []solana.PublicKey
	TokensPerRecipient decimal.Decimal
	RecipientsPerTx    int
}

// BaseAmount is the per-recipient transfer in base units.
func (p Plan) BaseAmount() (uint64, error) {
	amount, err := token.ToBaseUnits(p.TokensPerRecipient, p.Token.Decimals)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, fmt.Errorf("%w: %s with %d decimals", ErrZeroAmount, p.TokensPerRecipient, p.Token.Decimals)
	}
	return amount, nil
}

// Batches splits the recipients the way Run will submit them.
func (p Plan) Batches() [][]solana.PublicKey {
	return Chunk(p.Recipients, p.RecipientsPerTx)
}

// BatchError records a failed batch. Batch is 1-based.
type BatchError struct {
	Batch int
	Err   string
}

// Outcome is the result of a completed run. Successful and Failed count
// recipients, a batch being credited to one of them as a whole.
type Outcome struct {
	Successful    int
	Failed        int
	SpentLamports int64
	Signatures    []solana.Signature
	Errors        []BatchError
	Batches       int
}

// SpentSOL converts SpentLamports to SOL.
func (o *Outcome) SpentSOL() decimal.Decimal {
	return decimal.NewFromInt(o.SpentLamports).Shift(-9)
}

// Runner submits a plan batch by batch.
type Runner struct {
	payer     solana.PublicKey
	submitter Submitter
	balances  BalanceReader
	publisher Publisher
	budget    computebudget.Config
	delay     time.Duration
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration)
}

// NewRunner creates a runner. publisher may be nil.
func NewRunner(
	payer solana.PublicKey,
	submitter Submitter,
	balances BalanceReader,
	publisher Publisher,
	budget computebudget.Config,
	delay time.Duration,
	logger *zap.Logger,
) *Runner {
	return &Runner{
		payer:     payer,
		submitter: submitter,
		balances:  balances,
		publisher: publisher,
		budget:    budget,
		delay:     delay,
		logger:    logger.Named("airdrop"),
		sleep:     sleepContext,
	}
}

// Run visits every batch in order. A failing batch is recorded and never
// stops the loop, so a returned error always means nothing was submitted.
func (r *Runner) Run(ctx context.Context, plan Plan) (*Outcome, error) {
	amount, err := plan.BaseAmount()
	if err != nil {
		return nil, err
	}

	startBalance, err := r.balances.GetBalance(ctx, r.payer)
	if err != nil {
		return nil, fmt.Errorf("failed to read payer balance: %w", err)
	}

	builder := NewBuilder(r.payer, plan.Token, r.budget)
	batches := plan.Batches()
	outcome := &Outcome{Batches: len(batches)}

	r.logger.Info("Airdrop started",
		zap.String("mint", plan.Token.Mint.String()),
		zap.Int("recipients", len(plan.Recipients)),
		zap.Int("batches", len(batches)),
		zap.Uint64("amount_per_recipient", amount))
	r.publish(ctx, events.NewRunStarted(plan.Token.Mint.String(), len(plan.Recipients), len(batches)))

	for i, batch := range batches {
		index := i + 1
		if i > 0 {
			r.sleep(ctx, r.delay)
		}

		sig, err := r.sendBatch(ctx, builder, batch, amount)
		if err != nil {
			outcome.Failed += len(batch)
			outcome.Errors = append(outcome.Errors, BatchError{Batch: index, Err: err.Error()})
			r.logger.Warn("Batch failed",
				zap.Int("batch", index),
				zap.Int("size", len(batch)),
				zap.Error(err))
			r.publish(ctx, events.NewBatchFailed(index, len(batches), len(batch), err))
			continue
		}

		outcome.Successful += len(batch)
		outcome.Signatures = append(outcome.Signatures, sig)
		r.logger.Debug("Batch confirmed",
			zap.Int("batch", index),
			zap.Int("size", len(batch)),
			zap.String("signature", sig.String()))
		r.publish(ctx, events.NewBatchSucceeded(index, len(batches), len(batch), sig.String()))
	}

	endBalance, err := r.balances.GetBalance(ctx, r.payer)
	if err != nil {
		r.logger.Warn("Failed to read final payer balance, spent amount unknown", zap.Error(err))
	} else {
		outcome.SpentLamports = int64(startBalance) - int64(endBalance)
	}

	r.logger.Info("Airdrop finished",
		zap.Int("successful", outcome.Successful),
		zap.Int("failed", outcome.Failed),
		zap.Int64("spent_lamports", outcome.SpentLamports))
	r.publish(ctx, events.NewRunFinished(outcome.Successful, outcome.Failed, outcome.SpentLamports))

	return outcome, nil
}

func (r *Runner) sendBatch(ctx context.Context, builder *Builder, batch []solana.PublicKey, amount uint64) (solana.Signature, error) {
	if err := ctx.Err(); err != nil {
		return solana.Signature{}, err
	}
	instructions, err := builder.Instructions(batch, amount)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build batch: %w", err)
	}
	return r.submitter.Submit(ctx, instructions)
}

func (r *Runner) publish(ctx context.Context, event events.Event) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishSync(ctx, event); err != nil {
		r.logger.Debug("Event handler failed", zap.String("event_type", string(event.Type())), zap.Error(err))
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
