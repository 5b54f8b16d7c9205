package repos

import "github.com/spf13/cobra"

const (
	groupUseConstant      = "repos"
	groupShortDescription = "Report statistics for collections of local repositories"
	groupLongDescription  = "repos groups subcommands that summarize commit counts and current branches across local repositories."
)

// CommandGroupBuilder assembles the repos command group.
type CommandGroupBuilder struct {
	LoggerProvider                 LoggerProvider
	ConfigurationProvider          func() CommandConfiguration
	ConfigurationDirectoryProvider ConfigurationDirectoryProvider
	WorkingDirectoryProvider       WorkingDirectoryProvider
	Collaborators                  Collaborators
}

// Build constructs the repos command hierarchy.
func (builder *CommandGroupBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		Long:  groupLongDescription,
	}

	listBuilder := ListCommandBuilder{
		LoggerProvider:                 builder.LoggerProvider,
		ConfigurationProvider:          builder.ConfigurationProvider,
		ConfigurationDirectoryProvider: builder.ConfigurationDirectoryProvider,
		WorkingDirectoryProvider:       builder.WorkingDirectoryProvider,
		Collaborators:                  builder.Collaborators,
	}
	listCommand, listError := listBuilder.Build()
	if listError != nil {
		return nil, listError
	}
	command.AddCommand(listCommand)

	showBuilder := ShowCommandBuilder{
		LoggerProvider:                 builder.LoggerProvider,
		ConfigurationProvider:          builder.ConfigurationProvider,
		ConfigurationDirectoryProvider: builder.ConfigurationDirectoryProvider,
		WorkingDirectoryProvider:       builder.WorkingDirectoryProvider,
		Collaborators:                  builder.Collaborators,
	}
	showCommand, showError := showBuilder.Build()
	if showError != nil {
		return nil, showError
	}
	command.AddCommand(showCommand)

	return command, nil
}
