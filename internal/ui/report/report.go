// internal/ui/report/report.go
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/dandelion/internal/airdrop"
	"github.com/rovshanmuradov/dandelion/internal/events"
	"github.com/rovshanmuradov/dandelion/internal/token"
	"github.com/rovshanmuradov/dandelion/internal/ui/style"
)

const (
	maxShownErrors     = 5
	maxErrorLength     = 100
	maxShownSignatures = 3
	progressWidth      = 40
)

// Reporter renders a run to the operator's console.
type Reporter struct {
	out      io.Writer
	styles   style.Styles
	bar      progress.Model
	explorer func(signature string) string
}

// New creates a reporter writing to out. explorer turns a signature into a
// block explorer link.
func New(out io.Writer, styles style.Styles, explorer func(signature string) string) *Reporter {
	return &Reporter{
		out:      out,
		styles:   styles,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth), progress.WithoutPercentage()),
		explorer: explorer,
	}
}

func (r *Reporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Reporter) row(label string, value interface{}) string {
	return r.styles.Label.Render(label) + r.styles.Value.Render(fmt.Sprint(value))
}

// Banner prints the program name.
func (r *Reporter) Banner() {
	r.printf("%s\n", r.styles.Title.Render(figure.NewFigure("Dandelion", "", true).String()))
	r.printf("%s\n", r.styles.Muted.Render("SPL token mass distribution"))
}

// Warnings prints configuration warnings.
func (r *Reporter) Warnings(warnings []string) {
	for _, w := range warnings {
		r.printf("%s\n", r.styles.Warning.Render("! "+w))
	}
}

// Wallet prints the payer and its SOL balance.
func (r *Reporter) Wallet(network, address string, balanceSOL decimal.Decimal) {
	box := lipgloss.JoinVertical(lipgloss.Left,
		r.row("Network", network),
		r.row("Wallet", address),
		r.row("Balance", balanceSOL.StringFixed(4)+" SOL"),
	)
	r.printf("%s\n", r.styles.Box.Render(box))
}

// Tokens prints the numbered token list.
func (r *Reporter) Tokens(tokens []token.Info) {
	r.printf("%s\n", r.styles.Section.Render("Tokens"))
	if len(tokens) == 0 {
		r.printf("%s\n", r.styles.Muted.Render("  no tokens with a balance"))
		return
	}
	for i, t := range tokens {
		name := t.Mint.String()
		if t.Symbol != "" {
			name = fmt.Sprintf("%s (%s)", t.Symbol, name)
		}
		r.printf("  %2d. %s %s\n      %s\n",
			i+1,
			r.styles.Muted.Render(t.Program.Label()),
			r.styles.Value.Render(name),
			r.styles.Muted.Render(fmt.Sprintf("balance %s, decimals %d", t.DisplayBalance.String(), t.Decimals)))
	}
}

// PlanSummary is what the operator confirms before a run.
type PlanSummary struct {
	Token               token.Info
	Recipients          int
	TokensPerRecipient  decimal.Decimal
	RecipientsPerTx     int
	Estimate            airdrop.CostEstimate
	PriorityFeeLamports uint64
	RequiredSOL         decimal.Decimal
	BalanceSOL          decimal.Decimal
}

// Plan prints the run parameters and the cost estimate.
func (r *Reporter) Plan(p PlanSummary) {
	totalTokens := p.TokensPerRecipient.Mul(decimal.NewFromInt(int64(p.Recipients)))
	box := lipgloss.JoinVertical(lipgloss.Left,
		r.row("Token", fmt.Sprintf("%s %s", p.Token.Program.Label(), p.Token.Mint)),
		r.row("Recipients", p.Recipients),
		r.row("Per recipient", p.TokensPerRecipient.String()),
		r.row("Total tokens", totalTokens.String()),
		r.row("Batch size", p.RecipientsPerTx),
		r.row("Transactions", p.Estimate.Transactions),
		r.row("Account rent", p.Estimate.AccountRent.StringFixed(6)+" SOL"),
		r.row("Fees", p.Estimate.Fees.StringFixed(6)+" SOL"),
		r.row("Priority fee / tx", fmt.Sprintf("%d lamports", p.PriorityFeeLamports)),
		r.row("Estimated total", p.Estimate.Total.StringFixed(6)+" SOL"),
		r.row("Required w/ buffer", p.RequiredSOL.StringFixed(6)+" SOL"),
		r.row("Available", p.BalanceSOL.StringFixed(6)+" SOL"),
	)
	r.printf("%s\n%s\n", r.styles.Section.Render("Airdrop plan"), r.styles.Box.Render(box))
}

// Estimate prints a standalone cost estimate.
func (r *Reporter) Estimate(recipients, recipientsPerTx int, est airdrop.CostEstimate) {
	box := lipgloss.JoinVertical(lipgloss.Left,
		r.row("Recipients", recipients),
		r.row("Batch size", recipientsPerTx),
		r.row("Transactions", est.Transactions),
		r.row("Account rent", est.AccountRent.StringFixed(6)+" SOL"),
		r.row("Fees", est.Fees.StringFixed(6)+" SOL"),
		r.row("Estimated total", est.Total.StringFixed(6)+" SOL"),
	)
	r.printf("%s\n%s\n", r.styles.Section.Render("Cost estimate"), r.styles.Box.Render(box))
}

// GeneratedWallet prints a freshly created keypair so it can be saved.
func (r *Reporter) GeneratedWallet(address, secret string) {
	box := lipgloss.JoinVertical(lipgloss.Left,
		r.row("Address", address),
		r.row("Private key", secret),
	)
	r.printf("%s\n%s\n%s\n",
		r.styles.Section.Render("New wallet"),
		r.styles.Box.Render(box),
		r.styles.Warning.Render("Save the private key, it is not stored anywhere."))
}

// Subscribe renders progress from the run's events until the returned
// function is called.
func (r *Reporter) Subscribe(bus *events.Bus) (unsubscribe func()) {
	subs := bus.SubscribeAll(events.HandlerFunc(r.Handle))
	return func() {
		for _, s := range subs {
			s.Unsubscribe()
		}
	}
}

// Handle renders one event.
func (r *Reporter) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.RunStartedEvent:
		r.printf("%s\n", r.styles.Section.Render(
			fmt.Sprintf("Sending to %d recipients in %d batches", e.TotalRecipients, e.TotalBatches)))
		r.printf("%s", r.progressLine(0, e.TotalBatches))
	case events.BatchEvent:
		if e.Type() == events.BatchFailed {
			r.printf("\n%s\n", r.styles.Error.Render(
				fmt.Sprintf("Batch %d failed: %s", e.Index, truncate(errText(e.Err), maxErrorLength))))
		}
		r.printf("%s", r.progressLine(e.Index, e.Total))
	case events.RunFinishedEvent:
		r.printf("\n")
	}
	return nil
}

func (r *Reporter) progressLine(done, total int) string {
	percent := 1.0
	if total > 0 {
		percent = float64(done) / float64(total)
	}
	return fmt.Sprintf("\r%s %d/%d batches", r.bar.ViewAs(percent), done, total)
}

// Summary prints the outcome of a finished run.
func (r *Reporter) Summary(o *airdrop.Outcome) {
	box := lipgloss.JoinVertical(lipgloss.Left,
		r.row("Successful", r.styles.Success.Render(fmt.Sprint(o.Successful))),
		r.row("Failed", r.failedValue(o.Failed)),
		r.row("SOL spent", o.SpentSOL().StringFixed(6)+" SOL"),
		r.row("Transactions", len(o.Signatures)),
	)
	r.printf("%s\n%s\n", r.styles.Section.Render("Airdrop complete"), r.styles.Box.Render(box))

	if len(o.Errors) > 0 {
		r.printf("%s\n", r.styles.Section.Render("Errors"))
		for _, e := range o.Errors[:min(len(o.Errors), maxShownErrors)] {
			r.printf("  %s\n", r.styles.Error.Render(fmt.Sprintf("Batch %d: %s", e.Batch, truncate(e.Err, maxErrorLength))))
		}
		if rest := len(o.Errors) - maxShownErrors; rest > 0 {
			r.printf("  %s\n", r.styles.Muted.Render(fmt.Sprintf("... and %d more errors", rest)))
		}
	}

	if len(o.Signatures) > 0 && r.explorer != nil {
		r.printf("%s\n", r.styles.Section.Render("Sample transactions"))
		for _, sig := range o.Signatures[:min(len(o.Signatures), maxShownSignatures)] {
			r.printf("  %s\n", r.styles.Link.Render(r.explorer(sig.String())))
		}
	}
}

func (r *Reporter) failedValue(failed int) string {
	if failed == 0 {
		return fmt.Sprint(failed)
	}
	return r.styles.Error.Render(fmt.Sprint(failed))
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// truncate keeps the first n runes of s on one line.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
