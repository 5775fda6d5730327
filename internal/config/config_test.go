package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_OWNER", "GITHUB_REPO",
		"RELEASE_TAGGER_GITHUB_OWNER", "RELEASE_TAGGER_GITHUB_REPO",
		"RELEASE_TAGGER_ENABLE_ROLLBACK", "RELEASE_TAGGER_AUTH_MODE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigFrom(t *testing.T) {
	t.Run("Should use defaults when no config file exists", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadConfigFrom(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "labsyspharm", cfg.GithubOwner)
		assert.Equal(t, "OMERO_scripts", cfg.GithubRepo)
		assert.Equal(t, "OMERO_scripts", cfg.Project())
		assert.Equal(t, "https://api.github.com/", cfg.APIURL)
		assert.Equal(t, "setup.cfg", cfg.MetadataFile)
		assert.Equal(t, "~/.git_release_token", cfg.TokenFile)
		assert.Equal(t, AuthModeBasic, cfg.AuthMode)
		assert.False(t, cfg.EnableRollback)
		assert.Equal(t, 30*time.Second, cfg.LockTimeout)
	})
	t.Run("Should read values from the config file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		content := "github_owner: acme\n" +
			"github_repo: widgets\n" +
			"project_name: Widgets\n" +
			"enable_rollback: true\n" +
			"lock_timeout: 5s\n" +
			"auth_mode: bearer\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".release-tagger.yaml"), []byte(content), 0o600))
		cfg, err := LoadConfigFrom(dir)
		require.NoError(t, err)
		assert.Equal(t, "acme", cfg.GithubOwner)
		assert.Equal(t, "widgets", cfg.GithubRepo)
		assert.Equal(t, "Widgets", cfg.Project())
		assert.True(t, cfg.EnableRollback)
		assert.Equal(t, 5*time.Second, cfg.LockTimeout)
		assert.Equal(t, AuthModeBearer, cfg.AuthMode)
	})
	t.Run("Should let environment variables override the file", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".release-tagger.yaml"), []byte("github_owner: acme\n"), 0o600))
		t.Setenv("GITHUB_OWNER", "octo")
		cfg, err := LoadConfigFrom(dir)
		require.NoError(t, err)
		assert.Equal(t, "octo", cfg.GithubOwner)
	})
	t.Run("Should reject an invalid auth mode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RELEASE_TAGGER_AUTH_MODE", "digest")
		_, err := LoadConfigFrom(t.TempDir())
		require.Error(t, err)
		assert.ErrorContains(t, err, "auth_mode")
	})
}

func TestValidateGitHubOwnerRepo(t *testing.T) {
	cases := []struct {
		name    string
		owner   string
		repo    string
		wantErr bool
	}{
		{name: "valid", owner: "labsyspharm", repo: "OMERO_scripts"},
		{name: "empty owner", owner: "", repo: "x", wantErr: true},
		{name: "empty repo", owner: "x", repo: "", wantErr: true},
		{name: "bad owner", owner: "-bad", repo: "x", wantErr: true},
		{name: "slash in repo", owner: "x", repo: "a/b", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGitHubOwnerRepo(tc.owner, tc.repo)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Run("Should expand a leading tilde", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		got, err := ExpandHome("~/.git_release_token")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".git_release_token"), got)
	})
	t.Run("Should leave other paths untouched", func(t *testing.T) {
		got, err := ExpandHome("/etc/token")
		require.NoError(t, err)
		assert.Equal(t, "/etc/token", got)
	})
}

func TestConfig_GitHost(t *testing.T) {
	t.Run("Should map the public API to github.com", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, "github.com", cfg.GitHost())
	})
	t.Run("Should use the enterprise host itself", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.APIURL = "https://GHE.example.com/api/v3/"
		assert.Equal(t, "ghe.example.com", cfg.GitHost())
	})
}
