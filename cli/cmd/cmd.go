package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"ocm.software/open-component-model/webassets/cli/cmd/collect"
	"ocm.software/open-component-model/webassets/cli/cmd/extract"
	"ocm.software/open-component-model/webassets/cli/cmd/generate"
	clicmd "ocm.software/open-component-model/webassets/cli/cmd/internal/cmd"
	"ocm.software/open-component-model/webassets/cli/cmd/setup/hooks"
	"ocm.software/open-component-model/webassets/cli/cmd/updateurl"
	"ocm.software/open-component-model/webassets/cli/cmd/version"
	"ocm.software/open-component-model/webassets/cli/internal/flags/file"
	"ocm.software/open-component-model/webassets/cli/log"
)

// Execute adds all child commands to the Cmd command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the Cmd.
func Execute() {
	err := New().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webassets [sub-command]",
		Short: "Extract and brand the web assets of versioned artifacts",
		Long: `The webassets command line client extracts the web assets packaged in artifacts
(webjars and other archives or expanded directories) for development, tests and production
bundles, replacing protected files by branding overrides of the application.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: hooks.PreRunE,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	file.Var(cmd.PersistentFlags(), clicmd.ConfigFlag, "", `webassets configuration file (default: webassets.yaml of the current directory if present)`)
	cmd.PersistentFlags().String(clicmd.TempFolderFlag, "", `root folder of the cache directories, overriding the config file value`)
	log.RegisterLoggingFlags(cmd.PersistentFlags())

	cmd.AddCommand(extract.New())
	cmd.AddCommand(collect.New())
	cmd.AddCommand(updateurl.New())
	cmd.AddCommand(version.New())
	cmd.AddCommand(generate.New())
	return cmd
}
