package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitstats/internal/utils/path"
)

const (
	testHomeDirectoryConstant                  = "/home/tester"
	testCaseTildeRelativePathConstant          = "Projects/example"
	testCaseWhitespacePrefixConstant           = "  "
	testCaseWhitespaceSuffixConstant           = "\t"
	testCaseSanitizerDefaultCaseNameConstant   = "trims_and_expands"
	testCaseSanitizerDuplicateCaseNameConstant = "removes_duplicates_in_order"
)

func newStaticHomeExpander() *pathutils.HomeExpander {
	return pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})
}

func TestRepositoryPathSanitizerNormalizesInputs(testInstance *testing.T) {
	absolutePath := filepath.Join(testInstance.TempDir(), "repository-path-sanitizer")
	tildeInput := "~/" + testCaseTildeRelativePathConstant
	expandedTilde := filepath.Join(testHomeDirectoryConstant, testCaseTildeRelativePathConstant)

	testCases := []struct {
		name            string
		inputs          []string
		expectedOutputs []string
	}{
		{
			name: testCaseSanitizerDefaultCaseNameConstant,
			inputs: []string{
				"",
				testCaseWhitespacePrefixConstant + absolutePath + testCaseWhitespaceSuffixConstant,
				testCaseWhitespacePrefixConstant + tildeInput + testCaseWhitespaceSuffixConstant,
			},
			expectedOutputs: []string{absolutePath, expandedTilde},
		},
		{
			name:            testCaseSanitizerDuplicateCaseNameConstant,
			inputs:          []string{tildeInput, absolutePath, expandedTilde + "/", absolutePath},
			expectedOutputs: []string{expandedTilde, absolutePath},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			sanitizer := pathutils.NewRepositoryPathSanitizerWithExpander(newStaticHomeExpander())
			require.Equal(subTest, testCase.expectedOutputs, sanitizer.Sanitize(testCase.inputs))
		})
	}
}

func TestRepositoryPathSanitizerReturnsNilForEmptyResults(testInstance *testing.T) {
	sanitizer := pathutils.NewRepositoryPathSanitizerWithExpander(newStaticHomeExpander())
	require.Nil(testInstance, sanitizer.Sanitize([]string{"   ", "\n"}))
}

func TestHomeExpanderExpand(testInstance *testing.T) {
	expander := newStaticHomeExpander()

	require.Equal(testInstance, testHomeDirectoryConstant, expander.Expand("~"))
	require.Equal(testInstance, filepath.Join(testHomeDirectoryConstant, "repositories"), expander.Expand("~/repositories"))
	require.Equal(testInstance, "~other/repositories", expander.Expand("~other/repositories"))
	require.Equal(testInstance, "/srv/repositories", expander.Expand("/srv/repositories"))
}

func TestHomeExpanderKeepsInputWhenLookupFails(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})

	require.Equal(testInstance, "~/repositories", expander.Expand("~/repositories"))
}
