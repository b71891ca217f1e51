// cmd/dandelion/estimate.go
package main

import (
	"github.com/spf13/cobra"
)

func newEstimateCmd(c *cli) *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the SOL cost of an airdrop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			_, err = c.runner().Estimate(opts)
			return err
		},
	}
	flags.register(cmd, false)
	return cmd
}
