package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/gitstats/internal/execshell"
	"github.com/temirov/gitstats/internal/repos/filesystem"
	"github.com/temirov/gitstats/internal/repos/finder"
	"github.com/temirov/gitstats/internal/repos/gitter"
	"github.com/temirov/gitstats/internal/repos/repository"
	"github.com/temirov/gitstats/internal/repos/shared"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveRepositoryFinder returns the provided finder or a filesystem-backed default.
func ResolveRepositoryFinder(existing shared.RepositoryFinder, fileSystem shared.FileSystem) shared.RepositoryFinder {
	if existing != nil {
		return existing
	}
	return finder.NewFilesystemFinder(ResolveFileSystem(fileSystem))
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveRepositoryOpener returns the provided opener or the one implementing backend.
// The executor is only resolved for the cli backend.
func ResolveRepositoryOpener(existing gitter.Opener, backend gitter.Backend, executor shared.GitExecutor, logger *zap.Logger) (gitter.Opener, error) {
	if existing != nil {
		return existing, nil
	}

	switch backend {
	case gitter.BackendCLI:
		gitExecutor, executorError := ResolveGitExecutor(executor, logger)
		if executorError != nil {
			return nil, executorError
		}
		cliOpener, openerError := gitter.NewCLIOpener(gitExecutor)
		if openerError != nil {
			return nil, openerError
		}
		return cliOpener, nil
	default:
		return gitter.NewGoGitOpener(), nil
	}
}

// ResolveRepositoryLoader returns the provided loader or one backed by opener.
func ResolveRepositoryLoader(existing shared.RepositoryLoader, opener gitter.Opener) (shared.RepositoryLoader, error) {
	if existing != nil {
		return existing, nil
	}
	return repository.NewLoader(opener)
}
