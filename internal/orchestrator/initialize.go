package orchestrator

import (
	"context"
	"fmt"

	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/labsyspharm/release-tagger/internal/repository"
	"github.com/labsyspharm/release-tagger/internal/usecase"
)

// InitOptions locates the inputs of a release.
type InitOptions struct {
	Project      string
	ProjectDir   string
	MetadataFile string
	TokenPath    string
	// GitHost is the only git host fetches may send the token to.
	GitHost string
}

// ReleaseContext is the snapshot every release step works from. It is built
// once by Initialize and never modified.
type ReleaseContext struct {
	Version    *domain.Version
	Project    string
	Head       string
	Identity   domain.Identity
	Credential domain.Credential
}

// Initialize reads the version, committer identity, access token and HEAD commit.
func Initialize(
	ctx context.Context,
	gitRepo repository.GitRepository,
	fsRepo repository.FileSystemRepository,
	opts InitOptions,
) (*ReleaseContext, error) {
	readVersion := &usecase.ReadVersionUseCase{FsRepo: fsRepo}
	version, err := readVersion.Execute(opts.ProjectDir, opts.MetadataFile)
	if err != nil {
		return nil, err
	}
	identity, err := gitRepo.Identity(ctx)
	if err != nil {
		return nil, err
	}
	loadCredential := &usecase.LoadCredentialUseCase{FsRepo: fsRepo}
	token, err := loadCredential.Execute(opts.TokenPath)
	if err != nil {
		return nil, err
	}
	head, err := gitRepo.HeadCommit(ctx)
	if err != nil {
		return nil, err
	}
	if err := ValidateCommitSHA(head); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRepository, err)
	}
	return &ReleaseContext{
		Version:    version,
		Project:    opts.Project,
		Head:       head,
		Identity:   identity,
		Credential: domain.Credential{Username: identity.Name, Token: token, Host: opts.GitHost},
	}, nil
}
