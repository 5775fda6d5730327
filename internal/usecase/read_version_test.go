package usecase

import (
	"testing"

	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVersionUseCase_Execute(t *testing.T) {
	t.Run("Should read the version from the metadata section", func(t *testing.T) {
		fsRepo := afero.NewMemMapFs()
		content := "[metadata]\nname = OMERO_scripts\nversion = 1.2.3\n\n[options]\npackages = find:\n"
		require.NoError(t, afero.WriteFile(fsRepo, "/proj/setup.cfg", []byte(content), 0o644))
		uc := &ReadVersionUseCase{FsRepo: fsRepo}
		version, err := uc.Execute("/proj", "setup.cfg")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", version.String())
		assert.Equal(t, "v1.2.3", version.TagName())
	})
	t.Run("Should fail when the file is missing", func(t *testing.T) {
		uc := &ReadVersionUseCase{FsRepo: afero.NewMemMapFs()}
		_, err := uc.Execute("/proj", "setup.cfg")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
	t.Run("Should fail when the section is missing", func(t *testing.T) {
		fsRepo := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsRepo, "/proj/setup.cfg", []byte("[options]\nversion = 1.0.0\n"), 0o644))
		uc := &ReadVersionUseCase{FsRepo: fsRepo}
		_, err := uc.Execute("/proj", "setup.cfg")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.ErrorContains(t, err, "[metadata]")
	})
	t.Run("Should fail when the key is missing", func(t *testing.T) {
		fsRepo := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsRepo, "/proj/setup.cfg", []byte("[metadata]\nname = x\n"), 0o644))
		uc := &ReadVersionUseCase{FsRepo: fsRepo}
		_, err := uc.Execute("/proj", "setup.cfg")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
		assert.ErrorContains(t, err, "version")
	})
	t.Run("Should match the version key regardless of case", func(t *testing.T) {
		fsRepo := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsRepo, "/proj/setup.cfg", []byte("[metadata]\nVersion = 1.2.3\n"), 0o644))
		uc := &ReadVersionUseCase{FsRepo: fsRepo}
		version, err := uc.Execute("/proj", "setup.cfg")
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", version.String())
	})
	t.Run("Should accept a PEP 440 version", func(t *testing.T) {
		fsRepo := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsRepo, "/proj/setup.cfg", []byte("[metadata]\nversion = 0.5.0.dev1\n"), 0o644))
		uc := &ReadVersionUseCase{FsRepo: fsRepo}
		version, err := uc.Execute("/proj", "setup.cfg")
		require.NoError(t, err)
		assert.Equal(t, "v0.5.0.dev1", version.TagName())
	})
	t.Run("Should fail when the value cannot form a tag", func(t *testing.T) {
		fsRepo := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsRepo, "/proj/setup.cfg", []byte("[metadata]\nversion = 1.0 beta\n"), 0o644))
		uc := &ReadVersionUseCase{FsRepo: fsRepo}
		_, err := uc.Execute("/proj", "setup.cfg")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
	t.Run("Should fail on malformed content", func(t *testing.T) {
		fsRepo := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsRepo, "/proj/setup.cfg", []byte("[metadata\nversion = 1.0.0\n"), 0o644))
		uc := &ReadVersionUseCase{FsRepo: fsRepo}
		_, err := uc.Execute("/proj", "setup.cfg")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}
