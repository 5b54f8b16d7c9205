package stats

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

const (
	// DefaultRepositoriesDirectory is the subdirectory of the root path searched when no repositories path is configured.
	DefaultRepositoriesDirectory = "repositories"

	repositoriesPathTypeErrorTemplateConstant = "repositories_path must be a string or a list of strings, got %T"
	repositoriesPathItemErrorTemplateConstant = "repositories_path entry %d must be a string, got %T"
	tildePrefixConstant                       = "~"
)

// Configuration describes where the factory looks for repositories.
type Configuration struct {
	RepositoriesPath RepositoriesPath `mapstructure:"repositories_path"`
	ExcludePatterns  []string         `mapstructure:"exclude"`
}

// RepositoriesPath holds either a directory, searched one level deep, or an explicit list of repository paths.
type RepositoriesPath struct {
	directory string
	paths     []string
	listMode  bool
}

// DirectoryRepositoriesPath selects discovery of the immediate subdirectories of directory.
func DirectoryRepositoriesPath(directory string) RepositoriesPath {
	return RepositoriesPath{directory: strings.TrimSpace(directory)}
}

// ListRepositoriesPath selects an explicit, ordered list of repository paths.
func ListRepositoriesPath(paths ...string) RepositoriesPath {
	return RepositoriesPath{paths: append([]string{}, paths...), listMode: true}
}

// IsList reports whether the value carries an explicit path list.
func (repositoriesPath RepositoriesPath) IsList() bool {
	return repositoriesPath.listMode
}

// Directory returns the configured directory, or DefaultRepositoriesDirectory when blank.
func (repositoriesPath RepositoriesPath) Directory() string {
	if len(repositoriesPath.directory) == 0 {
		return DefaultRepositoriesDirectory
	}
	return repositoriesPath.directory
}

// Paths returns a copy of the explicit path list.
func (repositoriesPath RepositoriesPath) Paths() []string {
	return append([]string(nil), repositoriesPath.paths...)
}

// String renders the value the way it would appear in configuration.
func (repositoriesPath RepositoriesPath) String() string {
	if repositoriesPath.listMode {
		return "[" + strings.Join(repositoriesPath.paths, ", ") + "]"
	}
	return repositoriesPath.Directory()
}

// ResolveDirectory returns the discovery directory relative to rootPath. Absolute and home-relative directories are returned unchanged.
func (repositoriesPath RepositoriesPath) ResolveDirectory(rootPath string) string {
	return resolveAgainstRoot(rootPath, repositoriesPath.Directory())
}

// ResolvePaths returns the explicit list with relative entries joined to rootPath.
func (repositoriesPath RepositoriesPath) ResolvePaths(rootPath string) []string {
	resolved := make([]string, 0, len(repositoriesPath.paths))
	for _, candidate := range repositoriesPath.paths {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		resolved = append(resolved, resolveAgainstRoot(rootPath, trimmed))
	}
	return resolved
}

func resolveAgainstRoot(rootPath string, candidate string) string {
	if filepath.IsAbs(candidate) || strings.HasPrefix(candidate, tildePrefixConstant) || len(strings.TrimSpace(rootPath)) == 0 {
		return candidate
	}
	return filepath.Join(rootPath, candidate)
}

// RepositoriesPathDecodeHook decodes RepositoriesPath from a scalar string or a list of strings.
func RepositoriesPathDecodeHook() mapstructure.DecodeHookFuncType {
	targetType := reflect.TypeOf(RepositoriesPath{})
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != targetType {
			return data, nil
		}

		switch typed := data.(type) {
		case RepositoriesPath:
			return typed, nil
		case nil:
			return DirectoryRepositoriesPath(""), nil
		case string:
			return DirectoryRepositoriesPath(typed), nil
		case []string:
			return ListRepositoriesPath(typed...), nil
		case []any:
			paths := make([]string, 0, len(typed))
			for index, item := range typed {
				text, isText := item.(string)
				if !isText {
					return nil, fmt.Errorf(repositoriesPathItemErrorTemplateConstant, index, item)
				}
				paths = append(paths, text)
			}
			return ListRepositoriesPath(paths...), nil
		default:
			return nil, fmt.Errorf(repositoriesPathTypeErrorTemplateConstant, data)
		}
	}
}
