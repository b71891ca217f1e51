// cmd/dandelion/tokens.go
package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newTokensCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List the tokens held by the configured wallet",
		RunE: func(*cobra.Command, []string) error {
			_, err := c.runner().Tokens(context.Background())
			return err
		},
	}
}
