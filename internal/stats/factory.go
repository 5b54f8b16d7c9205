package stats

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/temirov/gitstats/internal/repos/shared"
)

const (
	finderMissingMessageConstant          = "repository finder not configured"
	loaderMissingMessageConstant          = "repository loader not configured"
	repositoryNotFoundMessageConstant     = "repository not found"
	repositoryNotFoundTemplateConstant    = "%w: %s"
	excludePatternErrorTemplateConstant   = "invalid exclude pattern %q: %w"
	summaryErrorTemplateConstant          = "unable to summarize repository %s: %w"
	discoverPathsLogMessageConstant       = "Discovering repositories"
	resolvePathsLogMessageConstant        = "Resolving configured repository paths"
	excludedPathLogMessageConstant        = "Skipping excluded repository"
	loadRepositoryLogMessageConstant      = "Loading repository"
	duplicateRepositoryLogMessageConstant = "Repository name already loaded; replacing entry"
	logFieldDirectoryConstant             = "directory"
	logFieldPathConstant                  = "path"
	logFieldPathsConstant                 = "paths"
	logFieldPatternConstant               = "pattern"
	logFieldRepositoryNameConstant        = "repository"
)

// ErrFinderNotConfigured indicates path discovery was requested without a finder.
var ErrFinderNotConfigured = errors.New(finderMissingMessageConstant)

// ErrLoaderNotConfigured indicates a load was requested without a loader.
var ErrLoaderNotConfigured = errors.New(loaderMissingMessageConstant)

// ErrRepositoryNotFound indicates FromName was asked for an unknown repository.
var ErrRepositoryNotFound = errors.New(repositoryNotFoundMessageConstant)

// FactoryDependencies holds the collaborators used by RepositoryFactory.
type FactoryDependencies struct {
	Finder shared.RepositoryFinder
	Loader shared.RepositoryLoader
	Logger *zap.Logger
}

// RepositoryFactory discovers repositories and loads them on first use.
type RepositoryFactory struct {
	configuration Configuration
	rootPath      string
	finder        shared.RepositoryFinder
	loader        shared.RepositoryLoader
	logger        *zap.Logger

	mutex        sync.Mutex
	repositories *Repositories
}

// NewRepositoryFactory constructs a factory. A nil configuration selects the default repositories directory.
func NewRepositoryFactory(configuration *Configuration, rootPath string, dependencies FactoryDependencies) *RepositoryFactory {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	factory := &RepositoryFactory{
		rootPath: rootPath,
		finder:   dependencies.Finder,
		loader:   dependencies.Loader,
		logger:   logger,
	}
	if configuration != nil {
		factory.configuration = *configuration
	}
	return factory
}

// Paths returns the repository directories to load, in discovery or list order.
func (factory *RepositoryFactory) Paths(executionContext context.Context) ([]string, error) {
	if factory.finder == nil {
		return nil, ErrFinderNotConfigured
	}
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	repositoriesPath := factory.configuration.RepositoriesPath
	if repositoriesPath.IsList() {
		configuredPaths := repositoriesPath.ResolvePaths(factory.rootPath)
		factory.logger.Debug(resolvePathsLogMessageConstant, zap.Strings(logFieldPathsConstant, configuredPaths))

		records, resolveError := factory.finder.ResolvePaths(configuredPaths)
		if resolveError != nil {
			return nil, resolveError
		}
		return realPaths(records), nil
	}

	directory := repositoriesPath.ResolveDirectory(factory.rootPath)
	factory.logger.Debug(discoverPathsLogMessageConstant, zap.String(logFieldDirectoryConstant, directory))

	records, listError := factory.finder.ListSubdirectories(directory)
	if listError != nil {
		return nil, listError
	}
	return factory.excludePaths(realPaths(records))
}

// Load constructs the repository bound to path.
func (factory *RepositoryFactory) Load(executionContext context.Context, path string) (shared.Repository, error) {
	if factory.loader == nil {
		return nil, ErrLoaderNotConfigured
	}
	factory.logger.Debug(loadRepositoryLogMessageConstant, zap.String(logFieldPathConstant, path))
	return factory.loader(executionContext, path)
}

// All returns every repository, discovering and loading on the first call and reusing the result afterwards.
// A non-empty mapping is returned as stored, including seeded entries that are still unloaded.
// Any load failure aborts the call and leaves the mapping unchanged.
func (factory *RepositoryFactory) All(executionContext context.Context) (*Repositories, error) {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()
	return factory.all(executionContext)
}

// Resolve returns the mapping from All with every unloaded entry loaded once under its stored name.
func (factory *RepositoryFactory) Resolve(executionContext context.Context) (*Repositories, error) {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()

	repositories, allError := factory.all(executionContext)
	if allError != nil {
		return nil, allError
	}
	if repositories.AllLoaded() {
		return repositories, nil
	}

	resolved, resolveError := factory.loadSeeded(executionContext, repositories)
	if resolveError != nil {
		return nil, resolveError
	}
	factory.repositories = resolved
	return resolved, nil
}

// FromName returns the entry currently stored for name without triggering a load.
func (factory *RepositoryFactory) FromName(name string) (Entry, error) {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()

	entry, exists := factory.repositories.Get(name)
	if !exists {
		return Entry{}, fmt.Errorf(repositoryNotFoundTemplateConstant, ErrRepositoryNotFound, name)
	}
	return entry, nil
}

// ToArray summarizes every repository returned by Resolve, keyed by mapping name.
func (factory *RepositoryFactory) ToArray(executionContext context.Context) (Summaries, error) {
	repositories, resolveError := factory.Resolve(executionContext)
	if resolveError != nil {
		return nil, resolveError
	}

	summaries := make(Summaries, repositories.Len())
	for _, name := range repositories.Names() {
		entry, _ := repositories.Get(name)
		summary, summaryError := Summarize(executionContext, entry.Repository())
		if summaryError != nil {
			return nil, summaryError
		}
		summaries[name] = summary
	}
	return summaries, nil
}

// SetRepositories replaces the mapping, bypassing discovery.
func (factory *RepositoryFactory) SetRepositories(repositories *Repositories) {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()
	factory.repositories = repositories
}

// Repositories returns the current mapping, which may still hold unloaded entries.
func (factory *RepositoryFactory) Repositories() *Repositories {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()
	return factory.repositories
}

// Summarize queries a repository's commit count and current branch under its own name.
func Summarize(executionContext context.Context, repository shared.Repository) (Summary, error) {
	name := repository.Name()
	commitCount, countError := repository.CountCommits(executionContext)
	if countError != nil {
		return Summary{}, fmt.Errorf(summaryErrorTemplateConstant, name, countError)
	}

	branch, branchError := repository.Gitter().CurrentBranch(executionContext)
	if branchError != nil {
		return Summary{}, fmt.Errorf(summaryErrorTemplateConstant, name, branchError)
	}

	return Summary{Name: name, Commits: commitCount, Branch: branch}, nil
}

func (factory *RepositoryFactory) all(executionContext context.Context) (*Repositories, error) {
	if factory.repositories.Len() > 0 {
		return factory.repositories, nil
	}

	paths, pathsError := factory.Paths(executionContext)
	if pathsError != nil {
		return nil, pathsError
	}

	resolved := NewRepositories()
	for _, path := range paths {
		repository, loadError := factory.Load(executionContext, path)
		if loadError != nil {
			return nil, loadError
		}
		name := repository.Name()
		if _, exists := resolved.Get(name); exists {
			factory.logger.Warn(duplicateRepositoryLogMessageConstant, zap.String(logFieldRepositoryNameConstant, name), zap.String(logFieldPathConstant, path))
		}
		resolved.Set(name, Loaded(repository))
	}

	factory.repositories = resolved
	return resolved, nil
}

func (factory *RepositoryFactory) loadSeeded(executionContext context.Context, seeded *Repositories) (*Repositories, error) {
	resolved := NewRepositories()
	for _, name := range seeded.Names() {
		entry, _ := seeded.Get(name)
		if entry.IsLoaded() {
			resolved.Set(name, entry)
			continue
		}
		repository, loadError := factory.Load(executionContext, entry.Path())
		if loadError != nil {
			return nil, loadError
		}
		resolved.Set(name, Loaded(repository))
	}
	return resolved, nil
}

func (factory *RepositoryFactory) excludePaths(paths []string) ([]string, error) {
	patterns := factory.configuration.ExcludePatterns
	if len(patterns) == 0 {
		return paths, nil
	}

	kept := make([]string, 0, len(paths))
	for _, path := range paths {
		excluded, matchedPattern, matchError := matchesAny(patterns, filepath.Base(path))
		if matchError != nil {
			return nil, matchError
		}
		if excluded {
			factory.logger.Debug(excludedPathLogMessageConstant, zap.String(logFieldPathConstant, path), zap.String(logFieldPatternConstant, matchedPattern))
			continue
		}
		kept = append(kept, path)
	}
	return kept, nil
}

func matchesAny(patterns []string, name string) (bool, string, error) {
	for _, pattern := range patterns {
		matched, matchError := doublestar.Match(pattern, name)
		if matchError != nil {
			return false, "", fmt.Errorf(excludePatternErrorTemplateConstant, pattern, matchError)
		}
		if matched {
			return true, pattern, nil
		}
	}
	return false, "", nil
}

func realPaths(records []shared.PathRecord) []string {
	paths := make([]string, 0, len(records))
	for _, record := range records {
		paths = append(paths, record.RealPath())
	}
	return paths
}
