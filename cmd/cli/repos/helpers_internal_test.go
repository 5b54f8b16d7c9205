package repos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstats/internal/stats"
)

func TestResolveRootPathPrecedence(testInstance *testing.T) {
	workingDirectory := func() (string, error) {
		return "/work", nil
	}
	configurationDirectory := func() string {
		return "/etc/gitstats"
	}

	testCases := []struct {
		name                   string
		flagRoot               string
		configuredRoot         string
		configurationDirectory ConfigurationDirectoryProvider
		expectedRoot           string
	}{
		{name: "flag_wins", flagRoot: "/flag", configuredRoot: "/configured", configurationDirectory: configurationDirectory, expectedRoot: "/flag"},
		{name: "configured_root", configuredRoot: "/configured/", configurationDirectory: configurationDirectory, expectedRoot: "/configured"},
		{name: "configuration_directory", configurationDirectory: configurationDirectory, expectedRoot: "/etc/gitstats"},
		{name: "working_directory", configurationDirectory: func() string { return "" }, expectedRoot: "/work"},
		{name: "no_configuration_directory_provider", expectedRoot: "/work"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configuration := DefaultCommandConfiguration()
			configuration.Root = testCase.configuredRoot

			rootPath, rootError := resolveRootPath(testCase.flagRoot, configuration, testCase.configurationDirectory, workingDirectory)
			require.NoError(testInstance, rootError)
			require.Equal(testInstance, testCase.expectedRoot, rootPath)
		})
	}
}

func TestResolveRootPathPropagatesWorkingDirectoryFailure(testInstance *testing.T) {
	lookupFailure := errors.New("getwd failed")
	_, rootError := resolveRootPath("", DefaultCommandConfiguration(), nil, func() (string, error) {
		return "", lookupFailure
	})
	require.ErrorIs(testInstance, rootError, lookupFailure)
}

func TestExplicitRepositoriesPath(testInstance *testing.T) {
	repositoriesPath, hasPaths, pathError := explicitRepositoriesPath([]string{" ", "/srv/alpha/", "/srv/beta"})
	require.NoError(testInstance, pathError)
	require.True(testInstance, hasPaths)
	require.True(testInstance, repositoriesPath.IsList())
	require.Equal(testInstance, []string{"/srv/alpha", "/srv/beta"}, repositoriesPath.Paths())

	_, hasPaths, pathError = explicitRepositoriesPath(nil)
	require.NoError(testInstance, pathError)
	require.False(testInstance, hasPaths)
}

func TestCommandConfigurationSanitizeAndDefaults(testInstance *testing.T) {
	sanitized := CommandConfiguration{Root: " /srv ", Exclude: []string{" ", "*.bak"}}.sanitize()
	require.Equal(testInstance, "/srv", sanitized.Root)
	require.Equal(testInstance, []string{"*.bak"}, sanitized.Exclude)
	require.Equal(testInstance, "go-git", sanitized.GitBackend)
	require.Equal(testInstance, "table", sanitized.Output)
	require.Equal(testInstance, stats.DefaultRepositoriesDirectory, sanitized.StatsConfiguration().RepositoriesPath.Directory())

	defaults := DefaultConfigurationValues("stats")
	require.Equal(testInstance, "repositories", defaults["stats.repositories_path"])
	require.Equal(testInstance, "go-git", defaults["stats.git_backend"])
	require.Equal(testInstance, "table", defaults["stats.output"])
	require.Equal(testInstance, "", defaults["stats.root"])
	require.Equal(testInstance, []string{}, defaults["stats.exclude"])
}
