package repository

import (
	"context"

	"github.com/labsyspharm/release-tagger/internal/domain"
)

// GitRepository defines the read-only view of the local working copy plus remote fetches.

type GitRepository interface {
	Identity(ctx context.Context) (domain.Identity, error)
	HeadCommit(ctx context.Context) (string, error)
	IsDirty(ctx context.Context) (bool, error)
	Remotes(ctx context.Context) ([]string, error)
	FetchRemote(ctx context.Context, name string, cred domain.Credential) error
}
