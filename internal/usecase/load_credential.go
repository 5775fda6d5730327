package usecase

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/labsyspharm/release-tagger/internal/domain"
	"github.com/labsyspharm/release-tagger/internal/repository"
	"github.com/spf13/afero"
)

// LoadCredentialUseCase reads the access token from the token file.

type LoadCredentialUseCase struct {
	FsRepo repository.FileSystemRepository
}

// Execute returns the first line of path with surrounding whitespace removed.
// The token format is not checked; the first API call proves it.
func (uc *LoadCredentialUseCase) Execute(path string) (string, error) {
	data, err := afero.ReadFile(uc.FsRepo, path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read token file %s: %w", domain.ErrCredential, path, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var token string
	if scanner.Scan() {
		token = strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("%w: failed to read token file %s: %w", domain.ErrCredential, path, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: token file %s is empty", domain.ErrCredential, path)
	}
	return token, nil
}
