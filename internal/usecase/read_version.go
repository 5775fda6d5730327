package usecase

import (
	"fmt"
	"path/filepath"

	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/labsyspharm/release-tagger/internal/repository"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

const (
	MetadataSection = "metadata"
	VersionKey      = "version"
)

// ReadVersionUseCase reads the release version from the project's ini metadata file.

type ReadVersionUseCase struct {
	FsRepo repository.FileSystemRepository
}

// Execute returns [metadata] version from file inside projectDir.
func (uc *ReadVersionUseCase) Execute(projectDir, file string) (*domain.Version, error) {
	path := filepath.Join(projectDir, file)
	data, err := afero.ReadFile(uc.FsRepo, path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", domain.ErrConfiguration, path, err)
	}
	// Option names are case-insensitive in setup.cfg, as in Python's configparser.
	cfg, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", domain.ErrConfiguration, path, err)
	}
	section, err := cfg.GetSection(MetadataSection)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no [%s] section", domain.ErrConfiguration, path, MetadataSection)
	}
	key, err := section.GetKey(VersionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no %s in [%s]", domain.ErrConfiguration, path, VersionKey, MetadataSection)
	}
	version, err := domain.NewVersion(key.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfiguration, path, err)
	}
	return version, nil
}
