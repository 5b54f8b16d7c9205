package shared

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/temirov/gitstats/internal/execshell"
)

const (
	pathRecordEmptyMessageConstant     = "repository path must not be empty"
	pathRecordMultilineMessageConstant = "repository path must not contain line breaks"
	lineBreakCharactersConstant        = "\r\n"
)

// ErrEmptyPathRecord indicates a path record was requested for a blank path.
var ErrEmptyPathRecord = errors.New(pathRecordEmptyMessageConstant)

// ErrMultilinePathRecord indicates a path record contained line breaks.
var ErrMultilinePathRecord = errors.New(pathRecordMultilineMessageConstant)

// PathRecord identifies a repository directory found by a RepositoryFinder.
type PathRecord struct {
	realPath string
}

// NewPathRecord validates and wraps a canonical repository path.
func NewPathRecord(realPath string) (PathRecord, error) {
	if strings.ContainsAny(realPath, lineBreakCharactersConstant) {
		return PathRecord{}, ErrMultilinePathRecord
	}
	trimmedPath := strings.TrimSpace(realPath)
	if len(trimmedPath) == 0 {
		return PathRecord{}, ErrEmptyPathRecord
	}
	return PathRecord{realPath: trimmedPath}, nil
}

// RealPath returns the canonical, symlink-free path of the directory.
func (record PathRecord) RealPath() string {
	return record.realPath
}

// FileSystem exposes the filesystem operations required to locate repositories.
type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	EvalSymlinks(path string) (string, error)
}

// RepositoryFinder locates candidate repository directories.
type RepositoryFinder interface {
	// ListSubdirectories returns the immediate, non-hidden subdirectories of root.
	ListSubdirectories(root string) ([]PathRecord, error)
	// ResolvePaths canonicalizes an explicit list of directories, keeping their order.
	ResolvePaths(paths []string) ([]PathRecord, error)
}

// Gitter answers version-control queries for a single repository.
type Gitter interface {
	CurrentBranch(executionContext context.Context) (string, error)
}

// Repository is a loaded, version-controlled project directory.
type Repository interface {
	Name() string
	CountCommits(executionContext context.Context) (int, error)
	Gitter() Gitter
}

// RepositoryLoader constructs a Repository bound to a directory, failing when the directory is not a repository.
type RepositoryLoader func(executionContext context.Context, repositoryPath string) (Repository, error)

// GitExecutor exposes the subset of shell execution used by the git CLI backend.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
