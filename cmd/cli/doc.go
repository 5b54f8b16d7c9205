// Package cli constructs the gitstats command-line interface, wiring the Cobra
// command hierarchy, the Viper-backed configuration loader with its embedded
// defaults, and structured zap logging.
package cli
