package extract

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"ocm.software/open-component-model/webassets/artifact"
	clicmd "ocm.software/open-component-model/webassets/cli/cmd/internal/cmd"
	"ocm.software/open-component-model/webassets/cli/internal/render/progress"
	"ocm.software/open-component-model/webassets/cli/internal/render/progress/counter"
	"ocm.software/open-component-model/webassets/cli/internal/render/progress/simple"
)

const (
	FlagDev      = "dev"
	FlagParallel = "parallel"

	DefaultParallel = 4
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract --artifact group:name [--artifact group:name ...]",
		Short: "Extract the web assets of resource artifacts into the cache for development and tests",
		Long: `Extract the web assets below the root folder of resource artifacts into a cache directory.

The resource artifacts are looked up by group and name among the dependencies of the
configured application. Protected files (logo.png, favicon.ico and style.css by default)
are replaced by branding overrides of the application or the bundled branding.

The cache directory of an artifact is emptied before extraction unless dev mode is active
and the artifact version is a release. In dev mode released versions are extracted once
and reused afterwards.`,
		Example: `  # Extract swagger-ui using webassets.yaml of the current directory
  webassets extract --artifact org.webjars:swagger-ui

  # Extract two artifacts in dev mode
  webassets extract --dev --artifact org.webjars:swagger-ui --artifact io.quarkus:quarkus-dev-ui`,
		Args:              cobra.NoArgs,
		RunE:              ExtractResources,
		DisableAutoGenTag: true,
	}

	cmd.Flags().StringSlice(clicmd.ArtifactFlag, nil, "resource artifact as group:name or group:name:version, can be repeated")
	_ = cmd.MarkFlagRequired(clicmd.ArtifactFlag)
	cmd.Flags().String(clicmd.RootFolderFlag, clicmd.DefaultRootFolder, "folder inside the artifacts that holds the web assets")
	cmd.Flags().Bool(FlagDev, false, "reuse extractions of released versions (defaults to devMode of the configuration)")
	cmd.Flags().Int(FlagParallel, DefaultParallel, "number of artifacts extracted concurrently")

	return cmd
}

func ExtractResources(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := clicmd.Configuration(cmd)
	if err != nil {
		return err
	}

	coordinates, err := cmd.Flags().GetStringSlice(clicmd.ArtifactFlag)
	if err != nil {
		return fmt.Errorf("getting artifact flag failed: %w", err)
	}
	rootFolder, err := cmd.Flags().GetString(clicmd.RootFolderFlag)
	if err != nil {
		return fmt.Errorf("getting root flag failed: %w", err)
	}
	parallel, err := cmd.Flags().GetInt(FlagParallel)
	if err != nil {
		return fmt.Errorf("getting parallel flag failed: %w", err)
	}
	if parallel < 1 {
		return fmt.Errorf("--%s must be at least 1, got %d", FlagParallel, parallel)
	}
	devMode := cfg.DevMode
	if cmd.Flags().Changed(FlagDev) {
		if devMode, err = cmd.Flags().GetBool(FlagDev); err != nil {
			return fmt.Errorf("getting dev flag failed: %w", err)
		}
	}

	resources, err := resolveArtifacts(cfg.DependencySet(), coordinates)
	if err != nil {
		return err
	}

	extractor, err := clicmd.Extractor(cmd, cfg)
	if err != nil {
		return err
	}

	events := make(chan progress.Event[artifact.Artifact])
	tracker := progress.NewTracker(events, visualizer(cmd, len(resources)))
	go tracker.Start()

	dirs := make([]string, len(resources))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i, res := range resources {
		eg.Go(func() error {
			events <- progress.Event[artifact.Artifact]{ID: res.String(), Data: res, State: progress.Running}
			dir, err := extractor.CopyResourcesForDevOrTest(egctx, devMode, res, rootFolder)
			if err != nil {
				events <- progress.Event[artifact.Artifact]{ID: res.String(), Data: res, State: progress.Failed, Err: err}
				return err
			}
			dirs[i] = dir
			events <- progress.Event[artifact.Artifact]{ID: res.String(), Data: res, State: progress.Completed}
			return nil
		})
	}
	err = eg.Wait()
	close(events)
	tracker.Summary(err)
	if err != nil {
		return err
	}

	for i, res := range resources {
		slog.DebugContext(ctx, "resources extracted", slog.String("artifact", res.String()), slog.String("dir", dirs[i]))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", res.Identity, dirs[i]); err != nil {
			return err
		}
	}
	return nil
}

// visualizer renders progress on a terminal and logs it otherwise.
func visualizer(cmd *cobra.Command, total int) progress.Visualizer[artifact.Artifact] {
	if progress.IsTerminal(cmd.ErrOrStderr()) {
		return counter.New[artifact.Artifact](cmd.ErrOrStderr(), total)
	}
	return simple.New[artifact.Artifact](slogcontext.FromCtx(cmd.Context()).With(slog.String("realm", "extract")))
}

// resolveArtifacts looks up the requested artifacts among the dependencies.
// Artifacts requested more than once are extracted once.
func resolveArtifacts(deps artifact.Dependencies, coordinates []string) ([]artifact.Artifact, error) {
	resources := make([]artifact.Artifact, 0, len(coordinates))
	for _, coordinate := range coordinates {
		id, err := artifact.ParseCoordinates(coordinate)
		if err != nil {
			return nil, err
		}
		res, err := deps.Find(id.Group, id.Name)
		if err != nil {
			return nil, err
		}
		if id.Version != "" && id.Version != res.Version {
			return nil, fmt.Errorf("artifact %s is declared with version %s, not %s", res.Coordinates(), res.Version, id.Version)
		}
		if slices.ContainsFunc(resources, func(a artifact.Artifact) bool { return a.Identity.Equal(res.Identity) }) {
			continue
		}
		resources = append(resources, res)
	}
	return resources, nil
}
