package log

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ocm.software/open-component-model/webassets/cli/internal/flags/enum"
	"ocm.software/open-component-model/webassets/cli/log/filter"
)

const (
	LevelFlag  = "loglevel"
	FormatFlag = "logformat"
	FilterFlag = "logfilter"
)

func RegisterLoggingFlags(flags *pflag.FlagSet) {
	enum.Var(flags, LevelFlag, []string{
		"warn",
		"debug",
		"info",
		"error",
	}, "set the log level")
	enum.Var(flags, FormatFlag, []string{
		"text",
		"json",
	}, "set the log format")
	flags.StringSlice(FilterFlag, nil, "raise the log level of a realm above --loglevel, e.g. cache=error (realms: webjar, branding, cache)")
}

// GetBaseLogger creates the logger configured by the logging flags. Logs are written to the
// error stream of the command, the output stream is reserved for command results.
func GetBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	logLevel, err := GetLoggerLevel(cmd)
	if err != nil {
		return nil, err
	}

	format, err := enum.Get(cmd.Flags(), FormatFlag)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	rawFilters, err := cmd.Flags().GetStringSlice(FilterFlag)
	if err != nil {
		return nil, err
	}
	if len(rawFilters) > 0 {
		realmFilters, err := filter.KeyFiltersFromStrings(rawFilters...)
		if err != nil {
			return nil, err
		}
		handler = filter.New(handler, filter.LoggingKeyRealm, realmFilters)
	}

	return slog.New(handler), nil
}

func GetLoggerLevel(cmd *cobra.Command) (slog.Level, error) {
	logLevel, err := enum.Get(cmd.Flags(), LevelFlag)
	if err != nil {
		return slog.LevelWarn, err
	}
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", logLevel)
	}
	return level, nil
}
