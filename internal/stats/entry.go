package stats

import "github.com/temirov/gitstats/internal/repos/shared"

// Entry is a repositories mapping value: either a path awaiting load or a loaded repository.
type Entry struct {
	path       string
	repository shared.Repository
}

// Unloaded records a repository path that has not been loaded yet.
func Unloaded(path string) Entry {
	return Entry{path: path}
}

// Loaded records a constructed repository.
func Loaded(repository shared.Repository) Entry {
	return Entry{repository: repository}
}

// IsLoaded reports whether the entry holds a repository.
func (entry Entry) IsLoaded() bool {
	return entry.repository != nil
}

// Path returns the pending path of an unloaded entry.
func (entry Entry) Path() string {
	return entry.path
}

// Repository returns the loaded repository, or nil for an unloaded entry.
func (entry Entry) Repository() shared.Repository {
	return entry.repository
}

// Repositories maps repository names to entries and remembers insertion order.
type Repositories struct {
	names   []string
	entries map[string]Entry
}

// NewRepositories creates an empty mapping.
func NewRepositories() *Repositories {
	return &Repositories{entries: map[string]Entry{}}
}

// RepositoriesFromPaths builds a mapping of unloaded entries. Names follow the order of names.
func RepositoriesFromPaths(names []string, pathsByName map[string]string) *Repositories {
	repositories := NewRepositories()
	for _, name := range names {
		repositories.Set(name, Unloaded(pathsByName[name]))
	}
	return repositories
}

// Set stores entry under name. Replacing an existing name keeps its position.
func (repositories *Repositories) Set(name string, entry Entry) {
	if repositories.entries == nil {
		repositories.entries = map[string]Entry{}
	}
	if _, exists := repositories.entries[name]; !exists {
		repositories.names = append(repositories.names, name)
	}
	repositories.entries[name] = entry
}

// Get returns the entry stored under name.
func (repositories *Repositories) Get(name string) (Entry, bool) {
	if repositories == nil {
		return Entry{}, false
	}
	entry, exists := repositories.entries[name]
	return entry, exists
}

// Names returns the stored names in insertion order.
func (repositories *Repositories) Names() []string {
	if repositories == nil {
		return nil
	}
	return append([]string(nil), repositories.names...)
}

// Len returns the number of stored entries.
func (repositories *Repositories) Len() int {
	if repositories == nil {
		return 0
	}
	return len(repositories.names)
}

// AllLoaded reports whether every entry holds a repository.
func (repositories *Repositories) AllLoaded() bool {
	for _, name := range repositories.Names() {
		if !repositories.entries[name].IsLoaded() {
			return false
		}
	}
	return true
}
