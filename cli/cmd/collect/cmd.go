package collect

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ocm.software/open-component-model/webassets/blob/filesystem"
	"ocm.software/open-component-model/webassets/blob/inmemory"
	clicmd "ocm.software/open-component-model/webassets/cli/cmd/internal/cmd"
	"ocm.software/open-component-model/webassets/cli/internal/flags/enum"
	"ocm.software/open-component-model/webassets/webjar"
)

const (
	FlagOutput    = "output"
	FlagOutputDir = "output-dir"

	DefaultArtifactPattern = "*:*"
)

// Resource is one collected file.
type Resource struct {
	Artifact string `json:"artifact" yaml:"artifact"`
	Path     string `json:"path" yaml:"path"`
	Size     int    `json:"size" yaml:"size"`
	Digest   string `json:"digest" yaml:"digest"`
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect [--artifact pattern]",
		Short: "Collect the web assets of resource artifacts for a production bundle",
		Long: `Collect the web assets below the root folder of all resource artifacts whose
group:name matches the pattern. Protected files are replaced by branding overrides.

Nothing is written to the cache. The collected files are listed and, with --output-dir,
written below <output-dir>/<artifact name>/ for packaging. All content roots of the
collected artifacts must be archives.`,
		Example: `  # List all web assets of the webjars dependencies
  webassets collect --artifact 'org.webjars:*'

  # Write the assets of all dependencies to ./dist
  webassets collect --output-dir dist -o json`,
		Args:              cobra.NoArgs,
		RunE:              CollectResources,
		DisableAutoGenTag: true,
	}

	cmd.Flags().String(clicmd.ArtifactFlag, DefaultArtifactPattern, "glob pattern matched against group:name of the dependencies")
	cmd.Flags().String(clicmd.RootFolderFlag, clicmd.DefaultRootFolder, "folder inside the artifacts that holds the web assets")
	enum.VarP(cmd.Flags(), FlagOutput, "o", []string{"table", "json", "yaml"}, "output format of the collected resources")
	cmd.Flags().String(FlagOutputDir, "", "directory the collected resources are written to")

	return cmd
}

func CollectResources(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := clicmd.Configuration(cmd)
	if err != nil {
		return err
	}

	pattern, err := cmd.Flags().GetString(clicmd.ArtifactFlag)
	if err != nil {
		return fmt.Errorf("getting artifact flag failed: %w", err)
	}
	rootFolder, err := cmd.Flags().GetString(clicmd.RootFolderFlag)
	if err != nil {
		return fmt.Errorf("getting root flag failed: %w", err)
	}
	output, err := enum.Get(cmd.Flags(), FlagOutput)
	if err != nil {
		return fmt.Errorf("getting output flag failed: %w", err)
	}
	outputDir, err := cmd.Flags().GetString(FlagOutputDir)
	if err != nil {
		return fmt.Errorf("getting output-dir flag failed: %w", err)
	}

	matched, err := cfg.DependencySet().Match(pattern)
	if err != nil {
		return err
	}
	extractor, err := clicmd.Extractor(cmd, cfg)
	if err != nil {
		return err
	}

	var list []Resource
	for _, res := range matched {
		resources, err := extractor.CopyResourcesForProduction(ctx, res, rootFolder)
		if err != nil {
			return err
		}
		if outputDir != "" {
			if err := write(outputDir, res.Name, resources); err != nil {
				return err
			}
		}
		for _, path := range resources.Paths() {
			dig, _ := resources.Digest(path)
			list = append(list, Resource{
				Artifact: res.Identity.String(),
				Path:     path,
				Size:     len(resources[path]),
				Digest:   dig.String(),
			})
		}
	}

	switch output {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(list)
	case "yaml":
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		defer encoder.Close()
		return encoder.Encode(list)
	default:
		return renderTable(cmd.OutOrStdout(), list)
	}
}

// write stores the resources of one artifact below outputDir/name.
func write(outputDir, name string, resources webjar.Resources) error {
	for _, path := range resources.Paths() {
		target, err := filesystem.EnsurePathInWorkingDirectory(filepath.Join(name, filepath.FromSlash(path)), outputDir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", target, err)
		}
		if err := filesystem.CopyBlobToOSPath(inmemory.NewFromBytes(resources[path]), target); err != nil {
			return fmt.Errorf("unable to write %s: %w", target, err)
		}
	}
	return nil
}

func renderTable(writer io.Writer, list []Resource) error {
	t := table.NewWriter()
	t.SetOutputMirror(writer)
	t.AppendHeader(table.Row{"Artifact", "Path", "Size", "Digest"})
	for _, res := range list {
		t.AppendRow(table.Row{res.Artifact, res.Path, res.Size, res.Digest})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
	return nil
}
