package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	clicmd "ocm.software/open-component-model/webassets/cli/cmd/internal/cmd"
	clictx "ocm.software/open-component-model/webassets/cli/internal/context"
	"ocm.software/open-component-model/webassets/cli/internal/flags/file"
	"ocm.software/open-component-model/webassets/cli/internal/version"
	"ocm.software/open-component-model/webassets/cli/log"
	v1 "ocm.software/open-component-model/webassets/configuration/v1"
)

// PreRunE sets up logging and the configuration for all cli commands.
func PreRunE(cmd *cobra.Command, _ []string) error {
	logger, err := log.GetBaseLogger(cmd)
	if err != nil {
		return fmt.Errorf("could not retrieve logger: %w", err)
	}
	slog.SetDefault(logger)
	ctx := slogcontext.NewCtx(cmd.Context(), logger)

	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return fmt.Errorf("could not load webassets configuration: %w", err)
	}

	// cli flags take precedence over the config file
	if tempFolder, _ := cmd.Flags().GetString(clicmd.TempFolderFlag); tempFolder != "" && cfg != nil {
		if cfg.Cache == nil {
			cfg.Cache = &v1.Cache{}
		}
		cfg.Cache.TempRoot = tempFolder
	}

	cmd.SetContext(clictx.WithContext(ctx, clictx.New(cfg, version.Current())))

	if parent := cmd.Parent(); parent != nil {
		cmd.SetOut(parent.OutOrStdout())
		cmd.SetErr(parent.ErrOrStderr())
	}
	return nil
}

// loadConfiguration loads the file given by the config flag, or the default configuration
// file of the current directory. Without either the configuration is nil.
func loadConfiguration(cmd *cobra.Command) (*v1.Config, error) {
	flag, err := file.Get(cmd.Flags(), clicmd.ConfigFlag)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed(clicmd.ConfigFlag) {
		if !flag.Exists() {
			return nil, fmt.Errorf("configuration file %s does not exist", flag.String())
		}
		return v1.LoadFile(flag.String())
	}

	if _, err := os.Stat(clicmd.DefaultConfigFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.DebugContext(cmd.Context(), "no configuration file found", slog.String("file", clicmd.DefaultConfigFile))
			return nil, nil
		}
		return nil, err
	}
	return v1.LoadFile(clicmd.DefaultConfigFile)
}
