package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/labsyspharm/release-tagger/internal/config"
	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/labsyspharm/release-tagger/internal/logger"
	"github.com/labsyspharm/release-tagger/internal/orchestrator"
	"github.com/labsyspharm/release-tagger/internal/repository"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo  repository.FileSystemRepository
	gitRepo repository.GitRepository
}

// newContainer loads configuration and opens the local repository.
func newContainer() (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	gitRepo, err := repository.NewGitRepository(cfg.ProjectDir)
	if err != nil {
		return nil, err
	}
	return &container{
		cfg:     cfg,
		logger:  log,
		fsRepo:  fsRepo,
		gitRepo: gitRepo,
	}, nil
}

// initialize reads everything a release needs from disk.
func (c *container) initialize(ctx context.Context) (*orchestrator.ReleaseContext, error) {
	tokenPath, err := c.cfg.TokenPath()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCredential, err)
	}
	return orchestrator.Initialize(ctx, c.gitRepo, c.fsRepo, orchestrator.InitOptions{
		Project:      c.cfg.Project(),
		ProjectDir:   c.cfg.ProjectDir,
		MetadataFile: c.cfg.MetadataFile,
		TokenPath:    tokenPath,
		GitHost:      c.cfg.GitHost(),
	})
}

// newOrchestrator builds the GitHub client for rc's credential and the orchestrator around it.
func (c *container) newOrchestrator(rc *orchestrator.ReleaseContext, out io.Writer) (*orchestrator.ReleaseOrchestrator, error) {
	ghRepo, err := repository.NewGithubRepository(repository.GithubOptions{
		Owner:    c.cfg.GithubOwner,
		Repo:     c.cfg.GithubRepo,
		BaseURL:  c.cfg.APIURL,
		AuthMode: c.cfg.AuthMode,
		Cred:     rc.Credential,
		Timeout:  c.cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, err
	}
	return orchestrator.NewReleaseOrchestrator(c.gitRepo, ghRepo, out, c.logger), nil
}

func (c *container) close() {
	_ = c.logger.Sync()
}
