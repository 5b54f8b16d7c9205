package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstats/cmd/cli/repos"
	"github.com/temirov/gitstats/internal/stats"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testFixtureFileNameConstant       = "README.md"
)

func createCommittedRepository(testInstance *testing.T, repositoryPath string, commitCount int) {
	testInstance.Helper()

	require.NoError(testInstance, os.MkdirAll(repositoryPath, 0o755))
	repository, initError := git.PlainInit(repositoryPath, false)
	require.NoError(testInstance, initError)
	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)

	for commitIndex := 0; commitIndex < commitCount; commitIndex++ {
		content := []byte{byte('a' + commitIndex)}
		require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryPath, testFixtureFileNameConstant), content, 0o600))
		_, addError := worktree.Add(testFixtureFileNameConstant)
		require.NoError(testInstance, addError)
		_, commitError := worktree.Commit(string(content), &git.CommitOptions{Author: &object.Signature{
			Name:  "Gitstats Tester",
			Email: "tester@example.com",
			When:  time.Unix(int64(1700000000+commitIndex), 0),
		}})
		require.NoError(testInstance, commitError)
	}
}

func executeApplication(testInstance *testing.T, application *Application, arguments ...string) (string, error) {
	testInstance.Helper()

	outputBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(&bytes.Buffer{})
	application.rootCommand.SetArgs(arguments)
	executionError := application.Execute()
	return outputBuffer.String(), executionError
}

func TestApplicationResolvesRelativeListAgainstConfigurationDirectory(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	createCommittedRepository(testInstance, filepath.Join(configurationDirectory, "first-repo"), 3)
	createCommittedRepository(testInstance, filepath.Join(configurationDirectory, "nested", "second-repo"), 1)

	configurationPath := filepath.Join(configurationDirectory, testConfigurationFileNameConstant)
	configurationContent := "stats:\n  repositories_path:\n    - first-repo\n    - nested/second-repo\n  output: json\n"
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))

	application := newApplication(repos.Collaborators{})
	output, executionError := executeApplication(testInstance, application, "--config", configurationPath, "repos", "list")
	require.NoError(testInstance, executionError)

	decoded := map[string]stats.Summary{}
	require.NoError(testInstance, json.Unmarshal([]byte(output), &decoded))
	require.Equal(testInstance, map[string]stats.Summary{
		"first-repo":  {Name: "first-repo", Commits: 3, Branch: "master"},
		"second-repo": {Name: "second-repo", Commits: 1, Branch: "master"},
	}, decoded)

	require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)
	require.True(testInstance, application.configuration.Stats.RepositoriesPath.IsList())
}

func TestApplicationEnvironmentOverridesConfiguration(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	createCommittedRepository(testInstance, filepath.Join(rootDirectory, "projects", "service"), 2)

	testInstance.Setenv("GITSTATS_STATS_ROOT", rootDirectory)
	testInstance.Setenv("GITSTATS_STATS_REPOSITORIES_PATH", "projects")
	testInstance.Setenv("GITSTATS_STATS_OUTPUT", "yaml")

	application := newApplication(repos.Collaborators{})
	output, executionError := executeApplication(testInstance, application, "repos", "list")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "service:\n  name: service\n  commits: 2\n  branch: master\n", output)
}

func TestApplicationLogFlagsOverrideConfiguration(testInstance *testing.T) {
	application := newApplication(repos.Collaborators{})
	_, executionError := executeApplication(testInstance, application, "--log-level", "debug", "--log-format", "structured")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
}

func TestApplicationRejectsInvalidLogLevel(testInstance *testing.T) {
	application := newApplication(repos.Collaborators{})
	_, executionError := executeApplication(testInstance, application, "--log-level", "verbose", "repos", "list")
	require.ErrorContains(testInstance, executionError, "unable to create logger")
}

func TestApplicationVersionFlag(testInstance *testing.T) {
	application := newApplication(repos.Collaborators{})
	application.versionResolver = func(context.Context) string {
		return "v1.2.3"
	}

	output, executionError := executeApplication(testInstance, application, "--version")
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "gitstats version: v1.2.3\n", output)
}
