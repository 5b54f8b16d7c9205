// Package repository binds a directory path to the gitter handle that answers
// version-control queries about it.
package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/temirov/gitstats/internal/repos/gitter"
	"github.com/temirov/gitstats/internal/repos/shared"
)

const (
	openerMissingMessageConstant          = "repository opener not configured"
	constructionErrorTemplateConstant     = "unable to construct repository for %s: %w"
	repositoryPathRequiredMessageConstant = "repository path required"
)

// ErrOpenerNotConfigured indicates NewLoader received a nil opener.
var ErrOpenerNotConfigured = errors.New(openerMissingMessageConstant)

// ErrRepositoryPathRequired indicates an empty path was passed to the loader.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// Repository is a git repository identified by the base name of its directory.
type Repository struct {
	name   string
	path   string
	handle gitter.Handle
}

// New wraps an opened handle. The repository name is the final element of repositoryPath.
func New(repositoryPath string, handle gitter.Handle) *Repository {
	cleanedPath := filepath.Clean(repositoryPath)
	return &Repository{name: filepath.Base(cleanedPath), path: cleanedPath, handle: handle}
}

// Name returns the repository display name.
func (repository *Repository) Name() string {
	return repository.name
}

// Path returns the directory the repository was opened from.
func (repository *Repository) Path() string {
	return repository.path
}

// CountCommits reports the number of commits reachable from HEAD.
func (repository *Repository) CountCommits(executionContext context.Context) (int, error) {
	return repository.handle.CountCommits(executionContext)
}

// Gitter exposes branch queries for the repository.
func (repository *Repository) Gitter() shared.Gitter {
	return repository.handle
}

// NewLoader returns a loader that opens each path with opener.
func NewLoader(opener gitter.Opener) (shared.RepositoryLoader, error) {
	if opener == nil {
		return nil, ErrOpenerNotConfigured
	}

	return func(executionContext context.Context, repositoryPath string) (shared.Repository, error) {
		if len(repositoryPath) == 0 {
			return nil, ErrRepositoryPathRequired
		}

		handle, openError := opener.Open(executionContext, repositoryPath)
		if openError != nil {
			return nil, fmt.Errorf(constructionErrorTemplateConstant, repositoryPath, openError)
		}
		return New(repositoryPath, handle), nil
	}, nil
}
