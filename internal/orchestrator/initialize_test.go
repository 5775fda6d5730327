package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newInitFs(t *testing.T, metadata, token string) afero.Fs {
	t.Helper()
	fsRepo := afero.NewMemMapFs()
	if metadata != "" {
		require.NoError(t, afero.WriteFile(fsRepo, "/proj/setup.cfg", []byte(metadata), 0o644))
	}
	if token != "" {
		require.NoError(t, afero.WriteFile(fsRepo, "/home/jane/.git_release_token", []byte(token), 0o600))
	}
	return fsRepo
}

var testInitOptions = InitOptions{
	Project:      "OMERO_scripts",
	ProjectDir:   "/proj",
	MetadataFile: "setup.cfg",
	TokenPath:    "/home/jane/.git_release_token",
	GitHost:      "github.com",
}

func TestInitialize(t *testing.T) {
	identity := domain.Identity{Name: "Jane Doe", Email: "jane@example.com"}

	t.Run("Should build the release context", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		gitRepo.On("Identity", mock.Anything).Return(identity, nil).Once()
		gitRepo.On("HeadCommit", mock.Anything).Return(testHead, nil).Once()
		fsRepo := newInitFs(t, "[metadata]\nversion = 1.2.3\n", "tok\n")

		rc, err := Initialize(context.Background(), gitRepo, fsRepo, testInitOptions)

		require.NoError(t, err)
		assert.Equal(t, "1.2.3", rc.Version.String())
		assert.Equal(t, "OMERO_scripts", rc.Project)
		assert.Equal(t, testHead, rc.Head)
		assert.Equal(t, identity, rc.Identity)
		assert.Equal(t, domain.Credential{Username: "Jane Doe", Token: "tok", Host: "github.com"}, rc.Credential)
		gitRepo.AssertExpectations(t)
	})

	t.Run("Should fail before touching git when the version is unreadable", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		fsRepo := newInitFs(t, "", "tok\n")

		_, err := Initialize(context.Background(), gitRepo, fsRepo, testInitOptions)

		assert.ErrorIs(t, err, domain.ErrConfiguration)
		gitRepo.AssertNotCalled(t, "Identity", mock.Anything)
	})

	t.Run("Should propagate a missing identity", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		identityErr := errors.Join(domain.ErrRepository, errors.New("user.email is not set"))
		gitRepo.On("Identity", mock.Anything).Return(domain.Identity{}, identityErr).Once()
		fsRepo := newInitFs(t, "[metadata]\nversion = 1.2.3\n", "tok\n")

		_, err := Initialize(context.Background(), gitRepo, fsRepo, testInitOptions)

		assert.ErrorIs(t, err, domain.ErrRepository)
	})

	t.Run("Should fail when the token file is missing", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		gitRepo.On("Identity", mock.Anything).Return(identity, nil).Once()
		fsRepo := newInitFs(t, "[metadata]\nversion = 1.2.3\n", "")

		_, err := Initialize(context.Background(), gitRepo, fsRepo, testInitOptions)

		assert.ErrorIs(t, err, domain.ErrCredential)
		gitRepo.AssertNotCalled(t, "HeadCommit", mock.Anything)
	})

	t.Run("Should reject a malformed head commit", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		gitRepo.On("Identity", mock.Anything).Return(identity, nil).Once()
		gitRepo.On("HeadCommit", mock.Anything).Return("abc", nil).Once()
		fsRepo := newInitFs(t, "[metadata]\nversion = 1.2.3\n", "tok\n")

		_, err := Initialize(context.Background(), gitRepo, fsRepo, testInitOptions)

		assert.ErrorIs(t, err, domain.ErrRepository)
	})
}
