package shared_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitstats/internal/repos/shared"
)

func TestNewPathRecord(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		input         string
		expected      string
		expectedError error
	}{
		{name: "valid_path", input: "/tmp/repo", expected: "/tmp/repo"},
		{name: "strips_whitespace", input: "   /tmp/repo  ", expected: "/tmp/repo"},
		{name: "rejects_empty", input: "  ", expectedError: shared.ErrEmptyPathRecord},
		{name: "rejects_newline", input: "/tmp/repo\n", expectedError: shared.ErrMultilinePathRecord},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			record, recordError := shared.NewPathRecord(testCase.input)
			if testCase.expectedError != nil {
				require.ErrorIs(t, recordError, testCase.expectedError)
				return
			}

			require.NoError(t, recordError)
			require.Equal(t, testCase.expected, record.RealPath())
		})
	}
}
