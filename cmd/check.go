package cmd

import (
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify a release could be made without creating anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.close()
			rc, err := c.initialize(ctx)
			if err != nil {
				return err
			}
			orch, err := c.newOrchestrator(rc, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return orch.Check(ctx, rc)
		},
	}
	applyCommonSettings(cmd)
	return cmd
}
