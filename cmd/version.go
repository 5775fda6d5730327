package cmd

import (
	"fmt"

	"github.com/labsyspharm/release-tagger/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "release-tagger %s\n", version.Summary())
			return err
		},
	}
	applyCommonSettings(cmd)
	return cmd
}
