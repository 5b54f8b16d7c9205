// Package gitter answers version-control queries (current branch, commit count)
// for a repository directory.
//
// Two backends are available: GoGitOpener reads the object database in-process
// through go-git, and CLIOpener shells out to the git executable via execshell.
package gitter
