package generate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"ocm.software/open-component-model/webassets/cli/internal/flags/enum"
)

const (
	FlagDirectory = "directory"
	FlagFormat    = "format"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate {docs}",
		Short: "Generate documentation for the webassets CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
	}
	cmd.AddCommand(newDocs())
	return cmd
}

func newDocs() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate the command reference of the webassets CLI",
		Example: `  # Generate markdown documentation into ./docs/reference
  webassets generate docs --directory docs/reference`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cmd.Flags().GetString(FlagDirectory)
			if err != nil {
				return fmt.Errorf("getting directory flag failed: %w", err)
			}
			format, err := enum.Get(cmd.Flags(), FlagFormat)
			if err != nil {
				return fmt.Errorf("getting format flag failed: %w", err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("unable to create documentation directory: %w", err)
			}
			root := cmd.Root()
			root.DisableAutoGenTag = true
			switch format {
			case "man":
				return doc.GenManTree(root, &doc.GenManHeader{Title: "WEBASSETS", Section: "1"}, dir)
			default:
				return doc.GenMarkdownTree(root, dir)
			}
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().String(FlagDirectory, "docs", "directory the documentation is written to")
	enum.Var(cmd.Flags(), FlagFormat, []string{"markdown", "man"}, "documentation format")
	return cmd
}
