// cmd/dandelion/run.go
package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/dandelion/internal/app"
)

// selectionFlags are the run parameters an operator can override. Only flags
// that were actually given reach app.Options.
type selectionFlags struct {
	token      int
	recipients int
	amount     string
	batchSize  int
}

func (f *selectionFlags) register(cmd *cobra.Command, withSelection bool) {
	if withSelection {
		cmd.Flags().IntVar(&f.token, "token", 1, "token number from the list")
		cmd.Flags().StringVar(&f.amount, "amount", "", "tokens per recipient (default from config)")
	}
	cmd.Flags().IntVar(&f.recipients, "recipients", 0, "number of recipients (default from config)")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 0, "recipients per transaction, 1-10 (default from config)")
}

func (f *selectionFlags) options(cmd *cobra.Command) (app.Options, error) {
	var opts app.Options
	flags := cmd.Flags()
	if flags.Changed("token") {
		opts.TokenIndex = &f.token
	}
	if flags.Changed("recipients") {
		opts.Recipients = &f.recipients
	}
	if flags.Changed("amount") {
		d, err := decimal.NewFromString(f.amount)
		if err != nil {
			return app.Options{}, err
		}
		opts.TokensPerRecipient = &d
	}
	if flags.Changed("batch-size") {
		opts.RecipientsPerTx = &f.batchSize
	}
	return opts, nil
}

func newRunCmd(c *cli) *cobra.Command {
	var (
		flags      selectionFlags
		unattended bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an airdrop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Unattended = unattended

			_, err = c.runner().Run(context.Background(), opts)
			return err
		},
	}

	cmd.Flags().BoolVarP(&unattended, "yes", "y", false, "use configured values without prompting")
	flags.register(cmd, true)
	return cmd
}
