package gitter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/temirov/gitstats/internal/execshell"
	"github.com/temirov/gitstats/internal/repos/shared"
)

const (
	gitRevParseSubcommandConstant            = "rev-parse"
	gitRevListSubcommandConstant             = "rev-list"
	gitSymbolicRefSubcommandConstant         = "symbolic-ref"
	gitWorkTreeFlagConstant                  = "--is-inside-work-tree"
	gitTopLevelFlagConstant                  = "--show-toplevel"
	gitVerifyFlagConstant                    = "--verify"
	gitQuietFlagConstant                     = "--quiet"
	gitShortFlagConstant                     = "--short"
	gitCountFlagConstant                     = "--count"
	gitHeadReferenceConstant                 = "HEAD"
	gitTrueOutputConstant                    = "true"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValueConstant   = "0"
	unbornHeadExitCodeConstant               = 1
	commitCountParseErrorTemplateConstant    = "unexpected commit count %q"
)

// CLIOpener opens repositories by invoking the git executable.
type CLIOpener struct {
	executor shared.GitExecutor
}

// NewCLIOpener constructs an opener that runs git through the provided executor.
func NewCLIOpener(executor shared.GitExecutor) (*CLIOpener, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &CLIOpener{executor: executor}, nil
}

// Open confirms repositoryPath is the top level of a git work tree.
// Directories nested inside another work tree are rejected.
func (opener *CLIOpener) Open(executionContext context.Context, repositoryPath string) (Handle, error) {
	handle := &cliHandle{executor: opener.executor, repositoryPath: repositoryPath}

	output, executionError := handle.run(executionContext, gitRevParseSubcommandConstant, gitWorkTreeFlagConstant)
	if executionError != nil {
		return nil, openFailure(repositoryPath, executionError)
	}
	if output != gitTrueOutputConstant {
		return nil, notRepositoryError(repositoryPath)
	}

	topLevel, topLevelError := handle.run(executionContext, gitRevParseSubcommandConstant, gitTopLevelFlagConstant)
	if topLevelError != nil {
		return nil, openFailure(repositoryPath, topLevelError)
	}
	if canonicalPath(topLevel) != canonicalPath(repositoryPath) {
		return nil, notRepositoryError(repositoryPath)
	}

	return handle, nil
}

func openFailure(repositoryPath string, executionError error) error {
	var failure execshell.CommandFailedError
	if errors.As(executionError, &failure) {
		return notRepositoryError(repositoryPath)
	}
	return fmt.Errorf(repositoryOpenErrorTemplateConstant, repositoryPath, executionError)
}

// canonicalPath resolves symlinks when the path exists and falls back to the cleaned absolute form.
func canonicalPath(candidatePath string) string {
	absolutePath, absoluteError := filepath.Abs(candidatePath)
	if absoluteError != nil {
		absolutePath = filepath.Clean(candidatePath)
	}
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		return absolutePath
	}
	return resolvedPath
}

type cliHandle struct {
	executor       shared.GitExecutor
	repositoryPath string
}

// CurrentBranch reports the symbolic HEAD target; a detached HEAD yields "HEAD".
func (handle *cliHandle) CurrentBranch(executionContext context.Context) (string, error) {
	output, executionError := handle.run(executionContext, gitSymbolicRefSubcommandConstant, gitShortFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		var failure execshell.CommandFailedError
		if errors.As(executionError, &failure) {
			return detachedHeadBranchNameConstant, nil
		}
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, handle.repositoryPath, executionError)
	}
	return output, nil
}

// CountCommits runs rev-list --count HEAD, reporting zero for repositories without commits.
func (handle *cliHandle) CountCommits(executionContext context.Context) (int, error) {
	_, verifyError := handle.run(executionContext, gitRevParseSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, gitHeadReferenceConstant)
	if verifyError != nil {
		var failure execshell.CommandFailedError
		if errors.As(verifyError, &failure) && failure.Result.ExitCode == unbornHeadExitCodeConstant {
			return 0, nil
		}
		return 0, fmt.Errorf(commitCountErrorTemplateConstant, handle.repositoryPath, verifyError)
	}

	output, executionError := handle.run(executionContext, gitRevListSubcommandConstant, gitCountFlagConstant, gitHeadReferenceConstant)
	if executionError != nil {
		return 0, fmt.Errorf(commitCountErrorTemplateConstant, handle.repositoryPath, executionError)
	}

	commitCount, parseError := strconv.Atoi(output)
	if parseError != nil {
		return 0, fmt.Errorf(commitCountErrorTemplateConstant, handle.repositoryPath, fmt.Errorf(commitCountParseErrorTemplateConstant, output))
	}
	return commitCount, nil
}

func (handle *cliHandle) run(executionContext context.Context, arguments ...string) (string, error) {
	result, executionError := handle.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     handle.repositoryPath,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptDisabledValueConstant},
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(result.StandardOutput), nil
}
