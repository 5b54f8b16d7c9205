// Package utils exposes reusable helpers consumed by the gitstats commands.
//
// It houses ConfigurationLoader and LoggerFactory, which integrate Viper,
// mapstructure decode hooks, environment variables, and zap logging.
package utils
