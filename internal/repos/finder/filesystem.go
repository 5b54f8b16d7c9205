package finder

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/temirov/gitstats/internal/repos/filesystem"
	"github.com/temirov/gitstats/internal/repos/shared"
	pathutils "github.com/temirov/gitstats/internal/utils/path"
)

const (
	hiddenEntryPrefixConstant          = "."
	listDirectoryErrorTemplateConstant = "unable to list repositories in %s: %w"
	resolvePathErrorTemplateConstant   = "unable to resolve repository path %s: %w"
	notDirectoryErrorTemplateConstant  = "repository path %s is not a directory"
	rootPathRequiredMessageConstant    = "repositories root must be provided"
)

// ErrRootPathRequired indicates ListSubdirectories was called without a root.
var ErrRootPathRequired = errors.New(rootPathRequiredMessageConstant)

// FilesystemFinder lists candidate repository directories on disk.
type FilesystemFinder struct {
	fileSystem shared.FileSystem
	sanitizer  *pathutils.RepositoryPathSanitizer
}

// NewFilesystemFinder constructs a finder backed by the provided filesystem, or the OS when nil.
func NewFilesystemFinder(fileSystem shared.FileSystem) *FilesystemFinder {
	if fileSystem == nil {
		fileSystem = filesystem.OSFileSystem{}
	}
	return &FilesystemFinder{fileSystem: fileSystem, sanitizer: pathutils.NewRepositoryPathSanitizer()}
}

// NewFilesystemFinderWithSanitizer constructs a finder using a custom path sanitizer.
func NewFilesystemFinderWithSanitizer(fileSystem shared.FileSystem, sanitizer *pathutils.RepositoryPathSanitizer) *FilesystemFinder {
	finder := NewFilesystemFinder(fileSystem)
	if sanitizer != nil {
		finder.sanitizer = sanitizer
	}
	return finder
}

// ListSubdirectories returns immediate subdirectories of root in file name order. Hidden
// entries are skipped; symbolic links to directories are followed.
func (finder *FilesystemFinder) ListSubdirectories(root string) ([]shared.PathRecord, error) {
	trimmedRoot := strings.TrimSpace(root)
	if len(trimmedRoot) == 0 {
		return nil, ErrRootPathRequired
	}
	expandedRoot := finder.sanitizer.Expand(trimmedRoot)

	directoryEntries, readError := finder.fileSystem.ReadDir(expandedRoot)
	if readError != nil {
		return nil, fmt.Errorf(listDirectoryErrorTemplateConstant, expandedRoot, readError)
	}

	records := make([]shared.PathRecord, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if strings.HasPrefix(directoryEntry.Name(), hiddenEntryPrefixConstant) {
			continue
		}

		candidatePath := filepath.Join(expandedRoot, directoryEntry.Name())
		isDirectory, inspectionError := finder.isDirectory(candidatePath, directoryEntry)
		if inspectionError != nil {
			return nil, fmt.Errorf(resolvePathErrorTemplateConstant, candidatePath, inspectionError)
		}
		if !isDirectory {
			continue
		}

		record, recordError := finder.canonicalRecord(candidatePath)
		if recordError != nil {
			return nil, recordError
		}
		records = append(records, record)
	}

	return records, nil
}

// ResolvePaths canonicalizes each explicit path without traversing the directory tree.
// Every path must exist and be a directory.
func (finder *FilesystemFinder) ResolvePaths(paths []string) ([]shared.PathRecord, error) {
	sanitizedPaths := finder.sanitizer.Sanitize(paths)

	records := make([]shared.PathRecord, 0, len(sanitizedPaths))
	for _, candidatePath := range sanitizedPaths {
		fileInfo, statError := finder.fileSystem.Stat(candidatePath)
		if statError != nil {
			return nil, fmt.Errorf(resolvePathErrorTemplateConstant, candidatePath, statError)
		}
		if !fileInfo.IsDir() {
			return nil, fmt.Errorf(notDirectoryErrorTemplateConstant, candidatePath)
		}

		record, recordError := finder.canonicalRecord(candidatePath)
		if recordError != nil {
			return nil, recordError
		}
		records = append(records, record)
	}

	return records, nil
}

func (finder *FilesystemFinder) isDirectory(candidatePath string, directoryEntry fs.DirEntry) (bool, error) {
	if directoryEntry.IsDir() {
		return true, nil
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}

	fileInfo, statError := finder.fileSystem.Stat(candidatePath)
	if statError != nil {
		if errors.Is(statError, fs.ErrNotExist) {
			return false, nil
		}
		return false, statError
	}
	return fileInfo.IsDir(), nil
}

func (finder *FilesystemFinder) canonicalRecord(candidatePath string) (shared.PathRecord, error) {
	absolutePath, absoluteError := finder.fileSystem.Abs(candidatePath)
	if absoluteError != nil {
		return shared.PathRecord{}, fmt.Errorf(resolvePathErrorTemplateConstant, candidatePath, absoluteError)
	}

	realPath, evaluationError := finder.fileSystem.EvalSymlinks(absolutePath)
	if evaluationError != nil {
		return shared.PathRecord{}, fmt.Errorf(resolvePathErrorTemplateConstant, candidatePath, evaluationError)
	}

	return shared.NewPathRecord(realPath)
}
