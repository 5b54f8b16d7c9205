// Package stats discovers repositories under a root directory, loads them on
// first use, and projects per-repository summaries (name, commit count, current
// branch) for reporting.
package stats
