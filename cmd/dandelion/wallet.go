// cmd/dandelion/wallet.go
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/dandelion/internal/wallet"
)

func newWalletCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show the configured wallet and its SOL balance",
		RunE: func(*cobra.Command, []string) error {
			return c.runner().Wallet(context.Background())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Generate a new keypair",
		RunE: func(*cobra.Command, []string) error {
			w, err := wallet.Generate()
			if err != nil {
				return err
			}
			c.runner().Reporter().GeneratedWallet(w.PublicKey.String(), w.SecretBase58())
			return nil
		},
	})
	return cmd
}
