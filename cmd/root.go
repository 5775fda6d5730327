package cmd

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree: the root command releases, subcommands
// check and print the version.
func NewRootCmd() *cobra.Command {
	root := NewReleaseCmd()
	root.AddCommand(NewCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Run executes the CLI with args and returns the process exit code. On
// failure the operator message is printed to stdout.
func Run(ctx context.Context, args []string, stdout io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintln(stdout, domain.UserMessage(err))
		return 1
	}
	return 0
}

// applyCommonSettings silences cobra's own error printing; Run prints the
// operator message instead.
func applyCommonSettings(cmd *cobra.Command) {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
