package stats_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstats/internal/stats"
	"github.com/temirov/gitstats/internal/utils"
)

type statsConfigurationFixture struct {
	Stats stats.Configuration `mapstructure:"stats"`
}

func TestRepositoriesPathDecodeHook(testInstance *testing.T) {
	decodeHook := stats.RepositoriesPathDecodeHook()
	targetType := reflect.TypeOf(stats.RepositoriesPath{})

	testCases := []struct {
		name              string
		data              any
		expectedList      bool
		expectedDirectory string
		expectedPaths     []string
		expectError       bool
	}{
		{name: "string", data: "non-default-dir", expectedDirectory: "non-default-dir"},
		{name: "blank_string", data: "  ", expectedDirectory: stats.DefaultRepositoriesDirectory},
		{name: "string_slice", data: []string{"/a", "/b"}, expectedList: true, expectedDirectory: stats.DefaultRepositoriesDirectory, expectedPaths: []string{"/a", "/b"}},
		{name: "any_slice", data: []any{"/a", "/b"}, expectedList: true, expectedDirectory: stats.DefaultRepositoriesDirectory, expectedPaths: []string{"/a", "/b"}},
		{name: "empty_list", data: []any{}, expectedList: true, expectedDirectory: stats.DefaultRepositoriesDirectory},
		{name: "non_string_item", data: []any{"/a", 3}, expectError: true},
		{name: "unsupported_type", data: 42, expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			decoded, decodeError := decodeHook(reflect.TypeOf(testCase.data), targetType, testCase.data)
			if testCase.expectError {
				require.Error(testInstance, decodeError)
				return
			}
			require.NoError(testInstance, decodeError)

			repositoriesPath, isRepositoriesPath := decoded.(stats.RepositoriesPath)
			require.True(testInstance, isRepositoriesPath)
			require.Equal(testInstance, testCase.expectedList, repositoriesPath.IsList())
			require.Equal(testInstance, testCase.expectedDirectory, repositoriesPath.Directory())
			if testCase.expectedList {
				require.Equal(testInstance, testCase.expectedPaths, repositoriesPath.Paths())
			}
		})
	}
}

func TestRepositoriesPathDecodeHookIgnoresOtherTargets(testInstance *testing.T) {
	decoded, decodeError := stats.RepositoriesPathDecodeHook()(reflect.TypeOf(""), reflect.TypeOf(""), "value")
	require.NoError(testInstance, decodeError)
	require.Equal(testInstance, "value", decoded)
}

func TestConfigurationLoadsRepositoriesPathForms(testInstance *testing.T) {
	testCases := []struct {
		name              string
		contents          string
		expectedList      bool
		expectedDirectory string
		expectedPaths     []string
		expectedExclude   []string
	}{
		{
			name:              "directory",
			contents:          "stats:\n  repositories_path: non-default-dir\n",
			expectedDirectory: "non-default-dir",
		},
		{
			name:              "list",
			contents:          "stats:\n  repositories_path:\n    - /srv/first\n    - ../second\n  exclude:\n    - \"*.archive\"\n",
			expectedList:      true,
			expectedDirectory: stats.DefaultRepositoriesDirectory,
			expectedPaths:     []string{"/srv/first", "../second"},
			expectedExclude:   []string{"*.archive"},
		},
		{
			name:              "absent",
			contents:          "common:\n  log_level: info\n",
			expectedDirectory: stats.DefaultRepositoriesDirectory,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			configurationDirectory := testInstance.TempDir()
			configurationPath := filepath.Join(configurationDirectory, "config.yaml")
			require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testCase.contents), 0o600))

			loader := utils.NewConfigurationLoader("config", "yaml", "TESTGITSTATSCONFIG", nil)
			loader.AddDecodeHooks(stats.RepositoriesPathDecodeHook())

			loaded := statsConfigurationFixture{}
			_, loadError := loader.LoadConfiguration(configurationPath, nil, &loaded)
			require.NoError(testInstance, loadError)

			require.Equal(testInstance, testCase.expectedList, loaded.Stats.RepositoriesPath.IsList())
			require.Equal(testInstance, testCase.expectedDirectory, loaded.Stats.RepositoriesPath.Directory())
			if testCase.expectedList {
				require.Equal(testInstance, testCase.expectedPaths, loaded.Stats.RepositoriesPath.Paths())
			}
			if testCase.expectedExclude != nil {
				require.Equal(testInstance, testCase.expectedExclude, loaded.Stats.ExcludePatterns)
			}
		})
	}
}

func TestRepositoriesPathResolution(testInstance *testing.T) {
	require.Equal(testInstance, "/srv/root/repositories", stats.DirectoryRepositoriesPath("").ResolveDirectory("/srv/root"))
	require.Equal(testInstance, "/elsewhere", stats.DirectoryRepositoriesPath("/elsewhere").ResolveDirectory("/srv/root"))
	require.Equal(testInstance, "~/code", stats.DirectoryRepositoriesPath("~/code").ResolveDirectory("/srv/root"))
	require.Equal(testInstance, "repositories", stats.DirectoryRepositoriesPath("").ResolveDirectory(""))
	require.Equal(testInstance, "[/a, b]", stats.ListRepositoriesPath("/a", "b").String())
	require.Equal(testInstance, []string{"/a", "/srv/root/b"}, stats.ListRepositoriesPath("/a", "b").ResolvePaths("/srv/root"))
}
