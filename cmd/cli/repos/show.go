package repos

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitstats/internal/stats"
)

const (
	showUseConstant      = "show <repository-name>"
	showShortDescription = "Summarize a single repository by name"
	showLongDescription  = "show loads the configured repositories and prints the commit count and current branch of the one whose directory name matches."
)

// ShowCommandBuilder assembles the repos show command.
type ShowCommandBuilder struct {
	LoggerProvider                 LoggerProvider
	ConfigurationProvider          func() CommandConfiguration
	ConfigurationDirectoryProvider ConfigurationDirectoryProvider
	WorkingDirectoryProvider       WorkingDirectoryProvider
	Collaborators                  Collaborators
}

// Build constructs the repos show command.
func (builder *ShowCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   showUseConstant,
		Short: showShortDescription,
		Long:  showLongDescription,
		Args:  cobra.ExactArgs(1),
	}

	options := bindCommandFlags(command, DefaultCommandConfiguration())
	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments[0], options)
	}

	return command, nil
}

func (builder *ShowCommandBuilder) run(command *cobra.Command, repositoryName string, options *commandOptions) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)

	outputFormat, backend, settingsError := options.resolveSettings(command, configuration)
	if settingsError != nil {
		return settingsError
	}

	rootPath, rootError := resolveRootPath(options.root, configuration, builder.ConfigurationDirectoryProvider, builder.WorkingDirectoryProvider)
	if rootError != nil {
		return rootError
	}

	factory, factoryError := buildFactory(resolveLogger(builder.LoggerProvider), configuration.StatsConfiguration(), rootPath, backend, builder.Collaborators)
	if factoryError != nil {
		return factoryError
	}

	if _, resolveError := factory.Resolve(command.Context()); resolveError != nil {
		return resolveError
	}

	entry, lookupError := factory.FromName(repositoryName)
	if lookupError != nil {
		return lookupError
	}

	summary, summaryError := stats.Summarize(command.Context(), entry.Repository())
	if summaryError != nil {
		return summaryError
	}

	return stats.RenderSummary(command.OutOrStdout(), outputFormat, summary)
}
