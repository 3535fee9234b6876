package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	clictx "ocm.software/open-component-model/webassets/cli/internal/context"
	v1 "ocm.software/open-component-model/webassets/configuration/v1"
	"ocm.software/open-component-model/webassets/webjar"
)

// Configuration returns the configuration set up by the root command.
func Configuration(cmd *cobra.Command) (*v1.Config, error) {
	cfg := clictx.FromContext(cmd.Context()).Configuration()
	if cfg == nil {
		return nil, fmt.Errorf("no webassets configuration found, use --%s or provide %s in the current directory", ConfigFlag, DefaultConfigFile)
	}
	return cfg, nil
}

// Extractor creates the extractor for the configured application.
func Extractor(cmd *cobra.Command, cfg *v1.Config) (*webjar.Extractor, error) {
	resolver, err := cfg.Resolver(clictx.FromContext(cmd.Context()).ToolVersion())
	if err != nil {
		return nil, fmt.Errorf("could not set up branding: %w", err)
	}
	return &webjar.Extractor{
		Consumer: cfg.Consumer(),
		Cache:    cfg.CacheManager(),
		Resolver: resolver,
	}, nil
}
