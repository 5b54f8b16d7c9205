package execshell

import (
	"fmt"
	"strings"
)

const (
	genericStartTemplateConstant            = "Running %s%s"
	genericSuccessTemplateConstant          = "Completed %s%s"
	genericFailureTemplateConstant          = "%s%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
)

const (
	gitRevParseSubcommandNameConstant    = "rev-parse"
	gitRevListSubcommandNameConstant     = "rev-list"
	gitSymbolicRefSubcommandNameConstant = "symbolic-ref"
	gitWorkTreeFlagConstant              = "--is-inside-work-tree"
	gitCountFlagConstant                 = "--count"
)

const (
	gitWorkTreeStartTemplateConstant        = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant      = "%s is a Git repository"
	gitCurrentBranchStartTemplateConstant   = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant = "Current branch in %s is %s"
	gitCommitCountStartTemplateConstant     = "Counting commits in %s"
	gitCommitCountSuccessTemplateConstant   = "%s has %s commits"
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

// CommandMessageFormatter renders human-readable lifecycle messages for shell commands.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	if message, known := formatter.describeGitMessage(command, ExecutionResult{}, false); known {
		return message
	}
	return fmt.Sprintf(genericStartTemplateConstant, command.label(), formatter.formatWorkingDirectorySuffix(command))
}

// BuildSuccessMessage describes a command that exited successfully.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	if message, known := formatter.describeGitMessage(command, result, true); known {
		return message
	}
	return fmt.Sprintf(genericSuccessTemplateConstant, command.label(), formatter.formatWorkingDirectorySuffix(command))
}

// BuildFailureMessage describes a command that exited with a non-zero code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return fmt.Sprintf(genericFailureTemplateConstant, command.label(), formatter.formatWorkingDirectorySuffix(command), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
}

// BuildExecutionFailureMessage describes a command that could not be executed.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	failureDescription := unknownFailureMessageConstant
	if failure != nil {
		failureDescription = failure.Error()
	}
	return fmt.Sprintf(genericExecutionFailureTemplateConstant, command.label(), formatter.formatWorkingDirectorySuffix(command), failureDescription)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, completed bool) (string, bool) {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return "", false
	}

	arguments := command.Details.Arguments
	directory := formatter.describeWorkingDirectory(command)
	output := strings.TrimSpace(result.StandardOutput)

	switch {
	case arguments[0] == gitRevParseSubcommandNameConstant && containsArgument(arguments, gitWorkTreeFlagConstant):
		if completed {
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, directory), true
		}
		return fmt.Sprintf(gitWorkTreeStartTemplateConstant, directory), true
	case arguments[0] == gitSymbolicRefSubcommandNameConstant:
		if completed {
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, directory, output), true
		}
		return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, directory), true
	case arguments[0] == gitRevListSubcommandNameConstant && containsArgument(arguments, gitCountFlagConstant):
		if completed {
			return fmt.Sprintf(gitCommitCountSuccessTemplateConstant, directory, output), true
		}
		return fmt.Sprintf(gitCommitCountStartTemplateConstant, directory), true
	}

	return "", false
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	if len(command.Details.WorkingDirectory) == 0 {
		return ""
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, command.Details.WorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmed := strings.TrimSpace(standardError)
	if len(trimmed) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmed)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	if len(command.Details.WorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return command.Details.WorkingDirectory
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if argument == value {
			return true
		}
	}
	return false
}
