package repos

import (
	"strings"

	"github.com/temirov/gitstats/internal/repos/gitter"
	"github.com/temirov/gitstats/internal/stats"
)

const (
	configurationRootKeyConstant             = "root"
	configurationRepositoriesPathKeyConstant = "repositories_path"
	configurationExcludeKeyConstant          = "exclude"
	configurationGitBackendKeyConstant       = "git_backend"
	configurationOutputKeyConstant           = "output"
)

// CommandConfiguration captures the stats configuration section shared by the repos commands.
type CommandConfiguration struct {
	Root             string                 `mapstructure:"root"`
	RepositoriesPath stats.RepositoriesPath `mapstructure:"repositories_path"`
	Exclude          []string               `mapstructure:"exclude"`
	GitBackend       string                 `mapstructure:"git_backend"`
	Output           string                 `mapstructure:"output"`
}

// DefaultCommandConfiguration returns baseline configuration values for the repos commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Root:             "",
		RepositoriesPath: stats.DirectoryRepositoriesPath(stats.DefaultRepositoriesDirectory),
		Exclude:          []string{},
		GitBackend:       string(gitter.BackendGoGit),
		Output:           string(stats.OutputFormatTable),
	}
}

// DefaultConfigurationValues produces Viper defaults for the repos commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootKeyConstant:             defaults.Root,
		rootKey + "." + configurationRepositoriesPathKeyConstant: defaults.RepositoriesPath.Directory(),
		rootKey + "." + configurationExcludeKeyConstant:          defaults.Exclude,
		rootKey + "." + configurationGitBackendKeyConstant:       defaults.GitBackend,
		rootKey + "." + configurationOutputKeyConstant:           defaults.Output,
	}
}

// StatsConfiguration projects the command configuration onto the repository factory settings.
func (configuration CommandConfiguration) StatsConfiguration() stats.Configuration {
	return stats.Configuration{
		RepositoriesPath: configuration.RepositoriesPath,
		ExcludePatterns:  append([]string(nil), configuration.Exclude...),
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	sanitized.Exclude = trimValues(configuration.Exclude)
	sanitized.GitBackend = strings.TrimSpace(configuration.GitBackend)
	if len(sanitized.GitBackend) == 0 {
		sanitized.GitBackend = string(gitter.BackendGoGit)
	}
	sanitized.Output = strings.TrimSpace(configuration.Output)
	if len(sanitized.Output) == 0 {
		sanitized.Output = string(stats.OutputFormatTable)
	}
	return sanitized
}

func trimValues(raw []string) []string {
	trimmed := make([]string, 0, len(raw))
	for _, value := range raw {
		candidate := strings.TrimSpace(value)
		if len(candidate) == 0 {
			continue
		}
		trimmed = append(trimmed, candidate)
	}
	return trimmed
}
