package cmd

import (
	"github.com/labsyspharm/release-tagger/internal/orchestrator"
	"github.com/labsyspharm/release-tagger/internal/repository"
	"github.com/labsyspharm/release-tagger/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewReleaseCmd creates the root command, which performs the release
func NewReleaseCmd() *cobra.Command {
	var enableRollback bool
	cmd := &cobra.Command{
		Use:     "release-tagger",
		Version: version.Summary(),
		Short:   "Tag and publish a release on GitHub",
		Long: `release-tagger publishes the version found in setup.cfg as a GitHub release.

It refuses to run on a dirty working tree, checks that HEAD is pushed and that
the tag is free, then creates the annotated tag, its reference and the release,
and finally fetches all remotes.

With --enable-rollback the tag reference is deleted again if release creation
fails. The tag object itself cannot be removed through the API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, err := newContainer()
			if err != nil {
				return err
			}
			defer c.close()
			if cmd.Flags().Changed("enable-rollback") {
				c.cfg.EnableRollback = enableRollback
			}
			lock := repository.NewReleaseLock(repository.LockPath("", c.cfg.GithubOwner, c.cfg.GithubRepo))
			if err := lock.Acquire(ctx, c.cfg.LockTimeout); err != nil {
				return err
			}
			defer func() {
				if err := lock.Release(); err != nil {
					c.logger.Warn("failed to release lock", zap.Error(err))
				}
			}()
			c.logger.Debug("acquired release lock", zap.String("path", lock.Path()))
			rc, err := c.initialize(ctx)
			if err != nil {
				return err
			}
			orch, err := c.newOrchestrator(rc, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return orch.Execute(ctx, rc, orchestrator.ReleaseConfig{EnableRollback: c.cfg.EnableRollback})
		},
	}
	applyCommonSettings(cmd)
	cmd.Flags().BoolVar(&enableRollback, "enable-rollback", false, "Delete the tag reference if release creation fails")
	return cmd
}
