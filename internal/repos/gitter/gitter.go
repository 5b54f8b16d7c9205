package gitter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitstats/internal/repos/shared"
)

const (
	notRepositoryMessageConstant        = "not a git repository"
	unsupportedBackendTemplateConstant  = "unsupported git backend %q"
	gitExecutorMissingMessageConstant   = "git executor not configured"
	detachedHeadBranchNameConstant      = "HEAD"
	notRepositoryPathTemplateConstant   = "%w: %s"
	currentBranchErrorTemplateConstant  = "unable to determine current branch of %s: %w"
	commitCountErrorTemplateConstant    = "unable to count commits of %s: %w"
	repositoryOpenErrorTemplateConstant = "unable to open repository %s: %w"
)

// Backend selects the implementation used to query repositories.
type Backend string

// Supported backends.
const (
	BackendGoGit Backend = "go-git"
	BackendCLI   Backend = "cli"
)

// ErrNotRepository indicates the directory has no git metadata.
var ErrNotRepository = errors.New(notRepositoryMessageConstant)

// ErrGitExecutorNotConfigured indicates the CLI backend was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// Handle exposes the version-control queries for a single opened repository.
type Handle interface {
	shared.Gitter
	CountCommits(executionContext context.Context) (int, error)
}

// Opener validates a directory and returns a Handle bound to it.
type Opener interface {
	Open(executionContext context.Context, repositoryPath string) (Handle, error)
}

// Backends lists the supported backend names in display order.
func Backends() []string {
	return []string{string(BackendGoGit), string(BackendCLI)}
}

// ParseBackend normalizes a configured backend name. Empty input selects go-git.
func ParseBackend(value string) (Backend, error) {
	normalized := Backend(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case "":
		return BackendGoGit, nil
	case BackendGoGit, BackendCLI:
		return normalized, nil
	default:
		return "", fmt.Errorf(unsupportedBackendTemplateConstant, value)
	}
}

func notRepositoryError(repositoryPath string) error {
	return fmt.Errorf(notRepositoryPathTemplateConstant, ErrNotRepository, repositoryPath)
}
