package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/labsyspharm/release-tagger/internal/domain"
)

// gitRepository is the implementation of the GitRepository interface.

type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the working copy at path. Bare repositories are rejected.
func NewGitRepository(path string) (GitRepository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open git repository at %s: %w", domain.ErrRepository, path, err)
	}
	if _, err := repo.Worktree(); err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, fmt.Errorf("%w: %s is a bare repository", domain.ErrRepository, path)
		}
		return nil, fmt.Errorf("%w: failed to get worktree: %w", domain.ErrRepository, err)
	}
	return &gitRepository{repo: repo}, nil
}

// Identity returns user.name and user.email from the merged system, global and local configuration.
func (r *gitRepository) Identity(_ context.Context) (domain.Identity, error) {
	cfg, err := r.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: failed to read git config: %w", domain.ErrRepository, err)
	}
	who := domain.Identity{
		Name:  strings.TrimSpace(cfg.User.Name),
		Email: strings.TrimSpace(cfg.User.Email),
	}
	if who.Name == "" {
		return domain.Identity{}, fmt.Errorf("%w: user.name is not configured", domain.ErrRepository)
	}
	if who.Email == "" {
		return domain.Identity{}, fmt.Errorf("%w: user.email is not configured", domain.ErrRepository)
	}
	return who, nil
}

// HeadCommit returns the SHA of the current HEAD commit.
func (r *gitRepository) HeadCommit(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: failed to get HEAD: %w", domain.ErrRepository, err)
	}
	return head.Hash().String(), nil
}

// IsDirty reports staged or unstaged changes to tracked files. Untracked files are ignored.
func (r *gitRepository) IsDirty(_ context.Context) (bool, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("%w: failed to get worktree: %w", domain.ErrRepository, err)
	}
	status, err := w.Status()
	if err != nil {
		return false, fmt.Errorf("%w: failed to get status: %w", domain.ErrRepository, err)
	}
	for _, fileStatus := range status {
		if fileStatus.Staging == git.Untracked && fileStatus.Worktree == git.Untracked {
			continue
		}
		if fileStatus.Staging != git.Unmodified || fileStatus.Worktree != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// Remotes returns the configured remote names sorted by name.
func (r *gitRepository) Remotes(_ context.Context) ([]string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	sort.Strings(names)
	return names, nil
}

// FetchRemote fetches branches and all tags from the named remote.
func (r *gitRepository) FetchRemote(ctx context.Context, name string, cred domain.Credential) error {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return fmt.Errorf("failed to get remote %s: %w", name, err)
	}
	opts := &git.FetchOptions{
		RemoteName: name,
		Tags:       git.AllTags,
		Auth:       authFor(remote.Config().URLs, cred),
	}
	if err := remote.FetchContext(ctx, opts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch remote %s: %w", name, err)
	}
	return nil
}

// authFor returns basic auth only for https remotes on the credential's host.
// Every other remote keeps its own transport defaults (ssh-agent, credential
// helpers, local paths).
func authFor(urls []string, cred domain.Credential) transport.AuthMethod {
	if len(urls) == 0 || cred.Token == "" || cred.Host == "" {
		return nil
	}
	u, err := url.Parse(urls[0])
	if err != nil || !strings.EqualFold(u.Scheme, "https") {
		return nil
	}
	if !strings.EqualFold(u.Hostname(), cred.Host) {
		return nil
	}
	return &http.BasicAuth{
		Username: cred.Username,
		Password: cred.Token,
	}
}
