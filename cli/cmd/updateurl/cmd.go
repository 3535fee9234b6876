package updateurl

import (
	"fmt"
	"io"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"ocm.software/open-component-model/webassets/webjar"
)

const (
	FlagPath   = "path"
	FlagMarker = "marker"
	FlagFormat = "format"
	FlagDryRun = "dry-run"

	DefaultMarker = "url:"
	DefaultFormat = "url: '%s',"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-url FILE --path PATH",
		Short: "Point an extracted web asset to a new URL",
		Long: `Replace the first line of FILE whose trimmed content starts with the marker by the
format with PATH filled in. Indentation and line endings are kept. The file is only
written if its content changes.`,
		Example: `  # Point swagger-ui to the OpenAPI document of the application
  webassets update-url /tmp/webassets/.../swagger-initializer.js --path /q/openapi`,
		Args:              cobra.ExactArgs(1),
		RunE:              UpdateURL,
		DisableAutoGenTag: true,
	}

	cmd.Flags().String(FlagPath, "", "the new path")
	_ = cmd.MarkFlagRequired(FlagPath)
	cmd.Flags().String(FlagMarker, DefaultMarker, "prefix identifying the line to replace")
	cmd.Flags().String(FlagFormat, DefaultFormat, "replacement line, %s is the new path")
	cmd.Flags().Bool(FlagDryRun, false, "print the change as unified diff instead of writing the file")

	return cmd
}

func UpdateURL(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString(FlagPath)
	if err != nil {
		return fmt.Errorf("getting path flag failed: %w", err)
	}
	marker, err := cmd.Flags().GetString(FlagMarker)
	if err != nil {
		return fmt.Errorf("getting marker flag failed: %w", err)
	}
	format, err := cmd.Flags().GetString(FlagFormat)
	if err != nil {
		return fmt.Errorf("getting format flag failed: %w", err)
	}
	if marker == "" {
		return fmt.Errorf("--%s must not be empty", FlagMarker)
	}
	dryRun, err := cmd.Flags().GetBool(FlagDryRun)
	if err != nil {
		return fmt.Errorf("getting dry-run flag failed: %w", err)
	}
	if dryRun {
		return printDiff(cmd.OutOrStdout(), args[0], path, marker, format)
	}
	return webjar.UpdateURLInFile(args[0], path, marker, format)
}

func printDiff(out io.Writer, file, path, marker, format string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", file, err)
	}
	original := string(raw)
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(webjar.UpdateURL(original, path, marker, format)),
		FromFile: file,
		ToFile:   file,
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("unable to compute diff for %s: %w", file, err)
	}
	_, err = io.WriteString(out, diff)
	return err
}
