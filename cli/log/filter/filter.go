// Package filter provides a slog.Handler that drops records below a per-realm minimum level.
// Library packages tag their loggers with a realm attribute (webjar, branding, cache).
package filter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LoggingKeyRealm is the attribute key identifying the realm of a record.
const LoggingKeyRealm = "realm"

type filter struct {
	handler slog.Handler
	filters map[string]slog.Level
	key     string
	// preset is the key value bound through WithAttrs, if any
	preset string
}

// New wraps handler so that records whose key attribute has an entry in filters
// are dropped if their level is below that entry.
func New(handler slog.Handler, key string, filters map[string]slog.Level) slog.Handler {
	return &filter{
		handler: handler,
		filters: filters,
		key:     key,
	}
}

func (f *filter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.handler.Enabled(ctx, level)
}

func (f *filter) Handle(ctx context.Context, record slog.Record) error {
	if f.drop(record) {
		return nil
	}
	return f.handler.Handle(ctx, record)
}

func (f *filter) WithAttrs(attrs []slog.Attr) slog.Handler {
	preset := f.preset
	if preset == "" {
		for _, attr := range attrs {
			if attr.Key == f.key {
				preset = attr.Value.String()
				break
			}
		}
	}
	return &filter{
		handler: f.handler.WithAttrs(attrs),
		filters: f.filters,
		key:     f.key,
		preset:  preset,
	}
}

func (f *filter) WithGroup(name string) slog.Handler {
	return &filter{
		handler: f.handler.WithGroup(name),
		filters: f.filters,
		key:     f.key,
		preset:  f.preset,
	}
}

func (f *filter) drop(record slog.Record) bool {
	value := f.preset
	if value == "" {
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key == f.key {
				value = attr.Value.String()
				return false
			}
			return true
		})
	}
	if value == "" {
		return false
	}
	minLevel, ok := f.filters[value]
	return ok && record.Level < minLevel
}

// KeyFiltersFromStrings parses filters of the form key=level, e.g. "webjar=debug" or "cache=error".
func KeyFiltersFromStrings(raw ...string) (map[string]slog.Level, error) {
	filters := make(map[string]slog.Level, len(raw))
	for _, spec := range raw {
		key, levelStr, found := strings.Cut(spec, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid filter format: %s, expected key=level", spec)
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(levelStr)); err != nil {
			return nil, fmt.Errorf("invalid log level in filter %s: %w", spec, err)
		}
		filters[key] = level
	}
	return filters, nil
}
