package gitter

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitOpener opens repositories with go-git.
type GoGitOpener struct{}

// NewGoGitOpener constructs a go-git backed opener.
func NewGoGitOpener() *GoGitOpener {
	return &GoGitOpener{}
}

// Open validates that repositoryPath holds git metadata.
func (opener *GoGitOpener) Open(executionContext context.Context, repositoryPath string) (Handle, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	repository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			return nil, notRepositoryError(repositoryPath)
		}
		return nil, fmt.Errorf(repositoryOpenErrorTemplateConstant, repositoryPath, openError)
	}

	return &goGitHandle{repository: repository, repositoryPath: repositoryPath}, nil
}

type goGitHandle struct {
	repository     *git.Repository
	repositoryPath string
}

// CurrentBranch reads HEAD without resolving it, so unborn branches still report their name.
func (handle *goGitHandle) CurrentBranch(executionContext context.Context) (string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", contextError
	}

	headReference, referenceError := handle.repository.Reference(plumbing.HEAD, false)
	if referenceError != nil {
		return "", fmt.Errorf(currentBranchErrorTemplateConstant, handle.repositoryPath, referenceError)
	}

	if headReference.Type() != plumbing.SymbolicReference {
		return detachedHeadBranchNameConstant, nil
	}
	return headReference.Target().Short(), nil
}

// CountCommits walks every commit reachable from HEAD. Repositories without commits report zero.
func (handle *goGitHandle) CountCommits(executionContext context.Context) (int, error) {
	headReference, headError := handle.repository.Head()
	if headError != nil {
		if errors.Is(headError, plumbing.ErrReferenceNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf(commitCountErrorTemplateConstant, handle.repositoryPath, headError)
	}

	commitIterator, logError := handle.repository.Log(&git.LogOptions{From: headReference.Hash()})
	if logError != nil {
		return 0, fmt.Errorf(commitCountErrorTemplateConstant, handle.repositoryPath, logError)
	}
	defer commitIterator.Close()

	commitCount := 0
	iterationError := commitIterator.ForEach(func(*object.Commit) error {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		commitCount++
		return nil
	})
	if iterationError != nil {
		return 0, fmt.Errorf(commitCountErrorTemplateConstant, handle.repositoryPath, iterationError)
	}

	return commitCount, nil
}
