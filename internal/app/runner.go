// internal/app/runner.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/dandelion/internal/airdrop"
	"github.com/rovshanmuradov/dandelion/internal/blockchain/solana/programs/computebudget"
	"github.com/rovshanmuradov/dandelion/internal/blockchain/solbc"
	"github.com/rovshanmuradov/dandelion/internal/config"
	"github.com/rovshanmuradov/dandelion/internal/events"
	"github.com/rovshanmuradov/dandelion/internal/token"
	"github.com/rovshanmuradov/dandelion/internal/ui/prompt"
	"github.com/rovshanmuradov/dandelion/internal/ui/report"
	"github.com/rovshanmuradov/dandelion/internal/ui/style"
	"github.com/rovshanmuradov/dandelion/internal/wallet"
)

// Node is the RPC surface a run needs.
type Node interface {
	airdrop.BalanceReader
	token.AccountsReader
	token.RentReader
	wallet.Faucet
}

// Sender submits transactions for one payer.
type Sender interface {
	airdrop.Submitter
	token.Signer
}

// Asker collects the operator's choices.
type Asker interface {
	Select(tokenCount int, defaults prompt.Selection) (prompt.Selection, error)
	Confirm(question string) (bool, error)
}

// Options come from command line flags. A nil field keeps the configured
// default; a set field is validated like a prompt answer.
type Options struct {
	Unattended         bool
	TokenIndex         *int
	Recipients         *int
	TokensPerRecipient *decimal.Decimal
	RecipientsPerTx    *int
}

// Runner wires configuration, chain access, prompts and reporting into one
// airdrop run.
type Runner struct {
	cfg       *config.Config
	logger    *zap.Logger
	node      Node
	newSender func(payer *wallet.Wallet) Sender
	reporter  *report.Reporter
	asker     Asker
	bus       *events.Bus
}

// NewRunner connects to cfg.RPCURL and uses in/out as the operator console.
func NewRunner(cfg *config.Config, logger *zap.Logger, in io.Reader, out io.Writer) *Runner {
	client := solbc.NewClient(cfg.RPCURL, logger)
	styles := style.NewStyles(style.DefaultPalette())
	return &Runner{
		cfg:    cfg,
		logger: logger,
		node:   client,
		newSender: func(payer *wallet.Wallet) Sender {
			return solbc.NewSender(client, payer, cfg.ConfirmTimeout, logger)
		},
		reporter: report.New(out, styles, cfg.ExplorerURL),
		asker:    prompt.New(in, out, styles),
		bus:      events.NewBus(logger),
	}
}

// Reporter exposes the console reporter.
func (r *Runner) Reporter() *report.Reporter {
	return r.reporter
}

// Run performs one airdrop. It returns a nil outcome without error when the
// operator declines the final confirmation.
func (r *Runner) Run(ctx context.Context, opts Options) (*airdrop.Outcome, error) {
	if err := r.cfg.Validate(opts.Unattended); err != nil {
		return nil, err
	}
	r.reporter.Banner()
	r.reporter.Warnings(r.cfg.Warnings())

	payer, err := r.loadPayer(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.showWallet(ctx, payer); err != nil {
		return nil, err
	}
	sender := r.newSender(payer)

	tokens, err := r.discoverOrMint(ctx, payer, sender)
	if err != nil {
		return nil, err
	}
	r.reporter.Tokens(tokens)

	selection, err := r.selection(opts, len(tokens))
	if err != nil {
		return nil, err
	}
	info := tokens[selection.TokenIndex-1]

	summary, err := r.preflight(ctx, payer, info, selection)
	if err != nil {
		return nil, err
	}
	r.reporter.Plan(summary)

	if !opts.Unattended {
		ok, err := r.asker.Confirm("Start airdrop?")
		if err != nil {
			return nil, err
		}
		if !ok {
			r.logger.Info("Airdrop cancelled")
			return nil, nil
		}
	}

	recipients, err := airdrop.GenerateRecipients(selection.Recipients)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Recipients generated", zap.Int("count", len(recipients)))

	unsubscribe := r.reporter.Subscribe(r.bus)
	defer unsubscribe()

	runner := airdrop.NewRunner(payer.PublicKey, sender, r.node, r.bus, r.budget(), r.cfg.BatchDelay, r.logger)
	outcome, err := runner.Run(ctx, airdrop.Plan{
		Token:              info,
		Recipients:         recipients,
		TokensPerRecipient: selection.TokensPerRecipient,
		RecipientsPerTx:    selection.RecipientsPerTx,
	})
	if err != nil {
		return nil, err
	}
	r.reporter.Summary(outcome)
	return outcome, nil
}

// Tokens lists the payer's tokens.
func (r *Runner) Tokens(ctx context.Context) ([]token.Info, error) {
	if err := r.cfg.Validate(false); err != nil {
		return nil, err
	}
	payer, err := r.payerFromKey()
	if err != nil {
		return nil, err
	}
	tokens, err := token.NewDiscoverer(r.node, r.logger).Discover(ctx, payer.PublicKey)
	if err != nil {
		return nil, err
	}
	r.reporter.Tokens(tokens)
	return tokens, nil
}

// Wallet shows the configured payer and its balance.
func (r *Runner) Wallet(ctx context.Context) error {
	if err := r.cfg.Validate(false); err != nil {
		return err
	}
	payer, err := r.payerFromKey()
	if err != nil {
		return err
	}
	return r.showWallet(ctx, payer)
}

// Estimate prints the cost of the configured run, overridden by opts.
func (r *Runner) Estimate(opts Options) (airdrop.CostEstimate, error) {
	if err := r.cfg.Validate(false); err != nil {
		return airdrop.CostEstimate{}, err
	}
	sel := r.overrides(opts)
	if sel.Recipients <= 0 {
		return airdrop.CostEstimate{}, invalidSelection(fmt.Errorf("recipients: %w", prompt.ErrNotPositive))
	}
	if err := prompt.CheckBatchSize(sel.RecipientsPerTx); err != nil {
		return airdrop.CostEstimate{}, invalidSelection(fmt.Errorf("batch size: %w", err))
	}
	est := airdrop.EstimateCost(sel.Recipients, sel.RecipientsPerTx, r.fees())
	r.reporter.Estimate(sel.Recipients, sel.RecipientsPerTx, est)
	return est, nil
}

func (r *Runner) payerFromKey() (*wallet.Wallet, error) {
	if !r.cfg.HasPrivateKey() {
		return nil, ErrNoWallet
	}
	return wallet.Load(r.cfg.PrivateKey)
}

// loadPayer uses the configured key, or on devnet creates and funds a
// throwaway wallet.
func (r *Runner) loadPayer(ctx context.Context) (*wallet.Wallet, error) {
	if r.cfg.HasPrivateKey() {
		return wallet.Load(r.cfg.PrivateKey)
	}
	if !r.cfg.IsDevnet() {
		return nil, ErrNoWallet
	}

	payer, err := wallet.Generate()
	if err != nil {
		return nil, err
	}
	r.reporter.GeneratedWallet(payer.PublicKey.String(), payer.SecretBase58())

	r.logger.Info("Requesting devnet SOL", zap.String("address", payer.PublicKey.String()))
	if _, err := wallet.RequestTestFunds(ctx, r.node, payer, r.cfg.ConfirmTimeout); err != nil {
		r.logger.Warn("Devnet faucet failed, fund the wallet manually", zap.Error(err))
	}
	return payer, nil
}

func (r *Runner) showWallet(ctx context.Context, payer *wallet.Wallet) error {
	lamports, err := r.node.GetBalance(ctx, payer.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to read wallet balance: %w", err)
	}
	r.reporter.Wallet(r.cfg.Network, payer.PublicKey.String(), lamportsToSOL(lamports))
	return nil
}

func (r *Runner) discoverOrMint(ctx context.Context, payer *wallet.Wallet, sender Sender) ([]token.Info, error) {
	tokens, err := token.NewDiscoverer(r.node, r.logger).Discover(ctx, payer.PublicKey)
	if err != nil {
		return nil, err
	}
	if len(tokens) > 0 {
		return tokens, nil
	}
	if !r.cfg.IsDevnet() {
		return nil, ErrNoTokens
	}

	r.logger.Info("No tokens found, creating a devnet test token")
	info, err := token.NewMinter(sender, r.node, r.logger).CreateTestToken(ctx)
	if err != nil {
		return nil, err
	}
	return []token.Info{info}, nil
}

// overrides applies the flags that were set on top of the configured defaults.
func (r *Runner) overrides(opts Options) prompt.Selection {
	sel := prompt.DefaultSelection(r.cfg)
	if opts.TokenIndex != nil {
		sel.TokenIndex = *opts.TokenIndex
	}
	if opts.Recipients != nil {
		sel.Recipients = *opts.Recipients
	}
	if opts.TokensPerRecipient != nil {
		sel.TokensPerRecipient = *opts.TokensPerRecipient
	}
	if opts.RecipientsPerTx != nil {
		sel.RecipientsPerTx = *opts.RecipientsPerTx
	}
	return sel
}

// selection validates flag values in both modes before any prompt.
func (r *Runner) selection(opts Options, tokenCount int) (prompt.Selection, error) {
	sel := r.overrides(opts)
	if err := sel.Validate(tokenCount); err != nil {
		return prompt.Selection{}, invalidSelection(err)
	}
	if opts.Unattended {
		return sel, nil
	}
	return r.asker.Select(tokenCount, sel)
}

func invalidSelection(err error) error {
	return &config.ValidationError{Key: "selection", Reason: err.Error()}
}

// preflight checks both balances against the plan. SOL is read after any
// test-token mint.
func (r *Runner) preflight(ctx context.Context, payer *wallet.Wallet, info token.Info, sel prompt.Selection) (report.PlanSummary, error) {
	check, err := token.CheckSufficient(info, sel.Recipients, sel.TokensPerRecipient)
	if err != nil {
		return report.PlanSummary{}, err
	}
	if !check.Sufficient {
		return report.PlanSummary{}, &InsufficientBalanceError{
			Asset:     "token",
			Required:  check.Required,
			Available: check.Available,
		}
	}

	lamports, err := r.node.GetBalance(ctx, payer.PublicKey)
	if err != nil {
		return report.PlanSummary{}, fmt.Errorf("failed to read wallet balance: %w", err)
	}

	estimate := airdrop.EstimateCost(sel.Recipients, sel.RecipientsPerTx, r.fees())
	required := estimate.Total.Mul(r.cfg.SOLBuffer)
	available := lamportsToSOL(lamports)
	if available.LessThan(required) {
		return report.PlanSummary{}, &InsufficientBalanceError{
			Asset:     "SOL",
			Required:  required,
			Available: available,
		}
	}

	return report.PlanSummary{
		Token:               info,
		Recipients:          sel.Recipients,
		TokensPerRecipient:  sel.TokensPerRecipient,
		RecipientsPerTx:     sel.RecipientsPerTx,
		Estimate:            estimate,
		PriorityFeeLamports: r.budget().PriorityFeeLamports(),
		RequiredSOL:         required,
		BalanceSOL:          available,
	}, nil
}

func (r *Runner) fees() airdrop.FeeSchedule {
	return airdrop.FeeSchedule{
		RentPerAccount: r.cfg.RentPerAccount,
		BaseFee:        r.cfg.BaseFee,
		PriorityFee:    r.cfg.PriorityFee,
	}
}

func (r *Runner) budget() computebudget.Config {
	return computebudget.Config{
		Units:         r.cfg.ComputeUnitLimit,
		MicroLamports: r.cfg.ComputeUnitPrice,
	}
}

func lamportsToSOL(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Shift(-9)
}

var _ Node = (*solbc.Client)(nil)
var _ Sender = (*solbc.Sender)(nil)
