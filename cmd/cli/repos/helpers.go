package repos

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitstats/internal/repos/dependencies"
	"github.com/temirov/gitstats/internal/repos/gitter"
	"github.com/temirov/gitstats/internal/repos/shared"
	"github.com/temirov/gitstats/internal/stats"
	flagutils "github.com/temirov/gitstats/internal/utils/flags"
	pathutils "github.com/temirov/gitstats/internal/utils/path"
)

const (
	rootFlagNameConstant           = "root"
	rootFlagUsageConstant          = "Base directory that relative repository paths resolve against."
	outputFlagNameConstant         = "output"
	outputFlagShorthandConstant    = "o"
	outputFlagDescriptionConstant  = "Output format."
	backendFlagNameConstant        = "git-backend"
	backendFlagDescriptionConstant = "Implementation used to query repositories."
	logFieldRootPathConstant       = "root_path"
	logFieldRepositoriesConstant   = "repositories_path"
	logFieldBackendConstant        = "git_backend"
	factoryReadyMessageConstant    = "Repository factory configured"
)

var repositoryHomeDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationDirectoryProvider yields the directory of the loaded configuration file, or an empty string.
type ConfigurationDirectoryProvider func() string

// WorkingDirectoryProvider yields the process working directory.
type WorkingDirectoryProvider func() (string, error)

// Collaborators holds optional overrides for the repository factory collaborators.
type Collaborators struct {
	Finder      shared.RepositoryFinder
	Loader      shared.RepositoryLoader
	Opener      gitter.Opener
	GitExecutor shared.GitExecutor
}

type commandOptions struct {
	root    string
	output  *flagutils.ChoiceValue
	backend *flagutils.ChoiceValue
}

func bindCommandFlags(command *cobra.Command, configuration CommandConfiguration) *commandOptions {
	options := &commandOptions{
		output:  flagutils.NewChoiceValue(configuration.Output, stats.OutputFormats()),
		backend: flagutils.NewChoiceValue(configuration.GitBackend, gitter.Backends()),
	}
	command.Flags().StringVar(&options.root, rootFlagNameConstant, "", rootFlagUsageConstant)
	command.Flags().VarP(options.output, outputFlagNameConstant, outputFlagShorthandConstant, flagutils.FormatChoiceUsage(string(stats.OutputFormatTable), stats.OutputFormats(), outputFlagDescriptionConstant))
	command.Flags().Var(options.backend, backendFlagNameConstant, flagutils.FormatChoiceUsage(string(gitter.BackendGoGit), gitter.Backends(), backendFlagDescriptionConstant))
	return options
}

// resolveSettings merges flags over configuration values.
func (options *commandOptions) resolveSettings(command *cobra.Command, configuration CommandConfiguration) (stats.OutputFormat, gitter.Backend, error) {
	outputValue := configuration.Output
	if command.Flags().Changed(outputFlagNameConstant) {
		outputValue = options.output.String()
	}
	outputFormat, formatError := stats.ParseOutputFormat(outputValue)
	if formatError != nil {
		return "", "", formatError
	}

	backendValue := configuration.GitBackend
	if command.Flags().Changed(backendFlagNameConstant) {
		backendValue = options.backend.String()
	}
	backend, backendError := gitter.ParseBackend(backendValue)
	if backendError != nil {
		return "", "", backendError
	}

	return outputFormat, backend, nil
}

// resolveRootPath applies the precedence --root flag, configured root, configuration file directory, working directory.
func resolveRootPath(flagRoot string, configuration CommandConfiguration, configurationDirectory ConfigurationDirectoryProvider, workingDirectory WorkingDirectoryProvider) (string, error) {
	candidates := []string{flagRoot, configuration.Root}
	if configurationDirectory != nil {
		candidates = append(candidates, configurationDirectory())
	}

	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		return absolutePath(repositoryHomeDirectoryExpander.Expand(trimmed))
	}

	if workingDirectory == nil {
		workingDirectory = os.Getwd
	}
	return workingDirectory()
}

// explicitRepositoriesPath turns positional arguments into an explicit path list relative to the working directory.
func explicitRepositoriesPath(arguments []string) (stats.RepositoriesPath, bool, error) {
	paths := make([]string, 0, len(arguments))
	for _, argument := range trimValues(arguments) {
		resolved, resolveError := absolutePath(repositoryHomeDirectoryExpander.Expand(argument))
		if resolveError != nil {
			return stats.RepositoriesPath{}, false, resolveError
		}
		paths = append(paths, resolved)
	}
	if len(paths) == 0 {
		return stats.RepositoriesPath{}, false, nil
	}
	return stats.ListRepositoriesPath(paths...), true, nil
}

func absolutePath(candidate string) (string, error) {
	if filepath.IsAbs(candidate) {
		return filepath.Clean(candidate), nil
	}
	return filepath.Abs(candidate)
}

func buildFactory(logger *zap.Logger, configuration stats.Configuration, rootPath string, backend gitter.Backend, collaborators Collaborators) (*stats.RepositoryFactory, error) {
	opener, openerError := dependencies.ResolveRepositoryOpener(collaborators.Opener, backend, collaborators.GitExecutor, logger)
	if openerError != nil {
		return nil, openerError
	}

	loader, loaderError := dependencies.ResolveRepositoryLoader(collaborators.Loader, opener)
	if loaderError != nil {
		return nil, loaderError
	}

	logger.Debug(
		factoryReadyMessageConstant,
		zap.String(logFieldRootPathConstant, rootPath),
		zap.Stringer(logFieldRepositoriesConstant, configuration.RepositoriesPath),
		zap.String(logFieldBackendConstant, string(backend)),
	)

	return stats.NewRepositoryFactory(&configuration, rootPath, stats.FactoryDependencies{
		Finder: dependencies.ResolveRepositoryFinder(collaborators.Finder, nil),
		Loader: loader,
		Logger: logger,
	}), nil
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
