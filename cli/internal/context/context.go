// Package context carries the state the root command sets up to its sub commands.
package context

import (
	"context"

	v1 "ocm.software/open-component-model/webassets/configuration/v1"
)

type contextKey struct{}

// Context is the state shared by all commands of one invocation.
type Context struct {
	configuration *v1.Config
	toolVersion   string
}

// New creates a Context. configuration may be nil if no configuration file was found.
func New(configuration *v1.Config, toolVersion string) *Context {
	return &Context{configuration: configuration, toolVersion: toolVersion}
}

// Configuration returns the loaded configuration or nil.
func (c *Context) Configuration() *v1.Config {
	if c == nil {
		return nil
	}
	return c.configuration
}

// ToolVersion is the version of the running binary.
func (c *Context) ToolVersion() string {
	if c == nil {
		return ""
	}
	return c.toolVersion
}

// WithContext stores c in ctx.
func WithContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the Context stored in ctx, nil if there is none.
func FromContext(ctx context.Context) *Context {
	c, _ := ctx.Value(contextKey{}).(*Context)
	return c
}
