package repos

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitstats/internal/stats"
)

const (
	listUseConstant      = "list [repository ...]"
	listShortDescription = "Summarize commit counts and branches of discovered repositories"
	listLongDescription  = "list discovers repositories in the configured directory under the root, or uses the repository paths given as arguments, and prints name, commit count, and current branch for each."
)

// ListCommandBuilder assembles the repos list command.
type ListCommandBuilder struct {
	LoggerProvider                 LoggerProvider
	ConfigurationProvider          func() CommandConfiguration
	ConfigurationDirectoryProvider ConfigurationDirectoryProvider
	WorkingDirectoryProvider       WorkingDirectoryProvider
	Collaborators                  Collaborators
}

// Build constructs the repos list command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescription,
		Long:  listLongDescription,
	}

	options := bindCommandFlags(command, DefaultCommandConfiguration())
	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, options)
	}

	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, arguments []string, options *commandOptions) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)

	outputFormat, backend, settingsError := options.resolveSettings(command, configuration)
	if settingsError != nil {
		return settingsError
	}

	rootPath, rootError := resolveRootPath(options.root, configuration, builder.ConfigurationDirectoryProvider, builder.WorkingDirectoryProvider)
	if rootError != nil {
		return rootError
	}

	statsConfiguration := configuration.StatsConfiguration()
	explicitPath, hasExplicitPaths, explicitError := explicitRepositoriesPath(arguments)
	if explicitError != nil {
		return explicitError
	}
	if hasExplicitPaths {
		statsConfiguration.RepositoriesPath = explicitPath
	}

	factory, factoryError := buildFactory(resolveLogger(builder.LoggerProvider), statsConfiguration, rootPath, backend, builder.Collaborators)
	if factoryError != nil {
		return factoryError
	}

	summaries, summaryError := factory.ToArray(command.Context())
	if summaryError != nil {
		return summaryError
	}

	return stats.RenderSummaries(command.OutOrStdout(), outputFormat, summaries)
}

func resolveConfiguration(provider func() CommandConfiguration) CommandConfiguration {
	if provider == nil {
		return DefaultCommandConfiguration()
	}
	return provider().sanitize()
}
