package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem the metadata and token files are read from.

type FileSystemRepository interface {
	afero.Fs
}
