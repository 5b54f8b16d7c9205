package repos_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstats/cmd/cli/repos"
	"github.com/temirov/gitstats/internal/execshell"
)

const (
	fixtureFileNameConstant    = "notes.txt"
	fixtureAuthorNameConstant  = "Gitstats Tester"
	fixtureAuthorEmailConstant = "tester@example.com"
)

func createFixtureRepository(testInstance *testing.T, parentDirectory string, name string, commitCount int) string {
	testInstance.Helper()

	repositoryPath := filepath.Join(parentDirectory, name)
	require.NoError(testInstance, os.MkdirAll(repositoryPath, 0o755))

	repository, initError := git.PlainInit(repositoryPath, false)
	require.NoError(testInstance, initError)
	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)

	for commitIndex := 0; commitIndex < commitCount; commitIndex++ {
		content := fmt.Sprintf("%s revision %d\n", name, commitIndex)
		require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryPath, fixtureFileNameConstant), []byte(content), 0o600))
		_, addError := worktree.Add(fixtureFileNameConstant)
		require.NoError(testInstance, addError)
		_, commitError := worktree.Commit(content, &git.CommitOptions{Author: &object.Signature{
			Name:  fixtureAuthorNameConstant,
			Email: fixtureAuthorEmailConstant,
			When:  time.Unix(int64(1700000000+commitIndex), 0),
		}})
		require.NoError(testInstance, commitError)
	}

	return repositoryPath
}

func executeCommand(testInstance *testing.T, command *cobra.Command, arguments ...string) (string, error) {
	testInstance.Helper()

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)
	command.SetContext(context.Background())
	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func buildGroupCommand(testInstance *testing.T, builder repos.CommandGroupBuilder) *cobra.Command {
	testInstance.Helper()

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	command.SilenceUsage = true
	command.SilenceErrors = true
	return command
}

func staticConfiguration(configuration repos.CommandConfiguration) func() repos.CommandConfiguration {
	return func() repos.CommandConfiguration {
		return configuration
	}
}

type scriptedGitExecutor struct {
	outputs  map[string]string
	recorded [][]string
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, append([]string(nil), details.Arguments...))
	if len(details.Arguments) == 0 {
		return execshell.ExecutionResult{}, nil
	}
	return execshell.ExecutionResult{StandardOutput: executor.outputs[details.Arguments[0]+" "+details.Arguments[len(details.Arguments)-1]]}, nil
}
