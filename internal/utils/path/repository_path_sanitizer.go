package pathutils

import (
	"path/filepath"
	"strings"
)

// RepositoryPathSanitizer normalizes user-supplied repository paths.
type RepositoryPathSanitizer struct {
	homeExpander *HomeExpander
}

// NewRepositoryPathSanitizer constructs a sanitizer backed by the operating system home directory.
func NewRepositoryPathSanitizer() *RepositoryPathSanitizer {
	return NewRepositoryPathSanitizerWithExpander(nil)
}

// NewRepositoryPathSanitizerWithExpander constructs a sanitizer using the provided expander.
func NewRepositoryPathSanitizerWithExpander(homeExpander *HomeExpander) *RepositoryPathSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RepositoryPathSanitizer{homeExpander: homeExpander}
}

// Sanitize trims whitespace, drops empty entries, expands the home directory, and
// removes duplicates while keeping the first occurrence of each path.
func (sanitizer *RepositoryPathSanitizer) Sanitize(candidatePaths []string) []string {
	expander := NewHomeExpander()
	if sanitizer != nil {
		expander = sanitizer.homeExpander
	}

	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seen := make(map[string]struct{}, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePath)
		if len(trimmedCandidate) == 0 {
			continue
		}

		expandedPath := filepath.Clean(expander.Expand(trimmedCandidate))
		if _, duplicate := seen[expandedPath]; duplicate {
			continue
		}
		seen[expandedPath] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, expandedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	return sanitizedPaths
}

// Expand resolves the home directory prefix of a single path.
func (sanitizer *RepositoryPathSanitizer) Expand(candidatePath string) string {
	if sanitizer == nil {
		return NewHomeExpander().Expand(candidatePath)
	}
	return sanitizer.homeExpander.Expand(candidatePath)
}
