package orchestrator

import (
	"context"

	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/labsyspharm/release-tagger/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct{ mock.Mock }

func (m *mockGitRepository) Identity(ctx context.Context) (domain.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Identity), args.Error(1)
}
func (m *mockGitRepository) HeadCommit(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *mockGitRepository) IsDirty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
func (m *mockGitRepository) Remotes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *mockGitRepository) FetchRemote(ctx context.Context, name string, cred domain.Credential) error {
	args := m.Called(ctx, name, cred)
	return args.Error(0)
}

// Mock for GithubRepository
type mockGithubRepository struct{ mock.Mock }

func (m *mockGithubRepository) GetCommit(ctx context.Context, sha string) repository.Result {
	args := m.Called(ctx, sha)
	return args.Get(0).(repository.Result)
}
func (m *mockGithubRepository) GetTagRef(ctx context.Context, tag string) repository.Result {
	args := m.Called(ctx, tag)
	return args.Get(0).(repository.Result)
}
func (m *mockGithubRepository) CreateTag(ctx context.Context, tag domain.TagPayload) (string, repository.Result) {
	args := m.Called(ctx, tag)
	return args.String(0), args.Get(1).(repository.Result)
}
func (m *mockGithubRepository) CreateRef(ctx context.Context, ref domain.RefPayload) repository.Result {
	args := m.Called(ctx, ref)
	return args.Get(0).(repository.Result)
}
func (m *mockGithubRepository) CreateRelease(ctx context.Context, release domain.ReleasePayload) repository.Result {
	args := m.Called(ctx, release)
	return args.Get(0).(repository.Result)
}
func (m *mockGithubRepository) DeleteTagRef(ctx context.Context, tag string) repository.Result {
	args := m.Called(ctx, tag)
	return args.Get(0).(repository.Result)
}
