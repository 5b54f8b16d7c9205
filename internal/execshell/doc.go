// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec via OSCommandRunner and exposes ShellExecutor, which logs
// command lifecycle events with zap and converts non-zero exit codes into
// typed errors. The git CLI backend of gitstats runs through it.
package execshell
