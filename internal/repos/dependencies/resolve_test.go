package dependencies_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstats/internal/execshell"
	"github.com/temirov/gitstats/internal/repos/dependencies"
	"github.com/temirov/gitstats/internal/repos/filesystem"
	"github.com/temirov/gitstats/internal/repos/finder"
	"github.com/temirov/gitstats/internal/repos/gitter"
	"github.com/temirov/gitstats/internal/repos/shared"
)

type recordingGitExecutor struct {
	calls int
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.calls++
	if len(details.Arguments) > 1 && details.Arguments[1] == "--show-toplevel" {
		return execshell.ExecutionResult{StandardOutput: details.WorkingDirectory + "\n"}, nil
	}
	return execshell.ExecutionResult{StandardOutput: "true\n"}, nil
}

func TestResolveRepositoryFinderDefaultsToFilesystem(testInstance *testing.T) {
	resolved := dependencies.ResolveRepositoryFinder(nil, nil)
	require.IsType(testInstance, &finder.FilesystemFinder{}, resolved)

	existing := finder.NewFilesystemFinder(filesystem.OSFileSystem{})
	require.Same(testInstance, existing, dependencies.ResolveRepositoryFinder(existing, nil))
}

func TestResolveFileSystemDefaultsToOS(testInstance *testing.T) {
	require.Equal(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))
}

func TestResolveRepositoryOpenerSelectsBackend(testInstance *testing.T) {
	goGitOpener, goGitError := dependencies.ResolveRepositoryOpener(nil, gitter.BackendGoGit, nil, nil)
	require.NoError(testInstance, goGitError)
	require.IsType(testInstance, &gitter.GoGitOpener{}, goGitOpener)

	executor := &recordingGitExecutor{}
	cliOpener, cliError := dependencies.ResolveRepositoryOpener(nil, gitter.BackendCLI, executor, nil)
	require.NoError(testInstance, cliError)
	require.IsType(testInstance, &gitter.CLIOpener{}, cliOpener)

	_, openError := cliOpener.Open(context.Background(), testInstance.TempDir())
	require.NoError(testInstance, openError)
	require.Equal(testInstance, 2, executor.calls)
}

func TestResolveRepositoryLoaderUsesOpener(testInstance *testing.T) {
	loader, loaderError := dependencies.ResolveRepositoryLoader(nil, gitter.NewGoGitOpener())
	require.NoError(testInstance, loaderError)

	_, loadError := loader(context.Background(), testInstance.TempDir())
	require.ErrorIs(testInstance, loadError, gitter.ErrNotRepository)

	var existing shared.RepositoryLoader = func(context.Context, string) (shared.Repository, error) {
		return nil, nil
	}
	resolved, resolveError := dependencies.ResolveRepositoryLoader(existing, nil)
	require.NoError(testInstance, resolveError)
	require.NotNil(testInstance, resolved)
}
