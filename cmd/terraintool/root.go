package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/threegp/internal/assets"
	"github.com/Faultbox/threegp/internal/config"
	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/internal/level"
	"github.com/Faultbox/threegp/internal/logger"
)

// tool is the state shared by the subcommands of one run.
type tool struct {
	cfg *config.Config
	mgr *assets.Manager
}

// Execute runs the root command.
func Execute() {
	defer logger.Sync()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree with fresh flag state.
func newRootCmd() *cobra.Command {
	t := &tool{}
	cmd := &cobra.Command{
		Use:   "terraintool",
		Short: "Build, inspect and export 3GP terrain",
		Long: `terraintool runs the viewer's terrain builder headless.

It reads the same YAML config as the viewer, resolves the height map
through the same asset roots, and can print mesh statistics, export the
mesh as Wavefront OBJ, or render the sampled heights as a PNG.`,
		SilenceUsage:      true,
		PersistentPreRunE: t.setup,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to the viewer config file")
	flags.StringSlice("assets", nil, "Additional asset root (repeatable, later wins)")
	flags.String("heightmap", "", "Height map path relative to the asset roots")
	flags.Bool("debug", false, "Enable debug logging")

	flags.Int("cells", 0, "Grid cells along both axes")
	flags.Int("cells-x", 0, "Grid cells along X")
	flags.Int("cells-z", 0, "Grid cells along Z")
	flags.Bool("noise", true, "Apply per-vertex noise displacement")
	flags.Bool("extra-noise", false, "Halve the noise displacement")
	flags.String("noise-source", "", "Noise source: hash or perlin")
	flags.Int64("seed", 0, "Perlin noise seed")
	flags.Float32("blur", 0, "Gaussian sigma applied to the height map")

	cmd.AddCommand(
		newBuildCmd(t),
		newExportCmd(t),
		newHeightmapCmd(t),
		newHeightCmd(t),
		newNoiseCmd(t),
	)
	return cmd
}

// setup loads the config, applies flag overrides and opens the asset roots.
func (t *tool) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	logLevel := "info"
	if debug, _ := flags.GetBool("debug"); debug {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, ""); err != nil {
		return err
	}

	path, _ := flags.GetString("config")
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mgr := assets.NewManager()
	for _, dir := range cfg.Assets.Roots {
		// Only the height map is read, so an absent root is not fatal here.
		if err := mgr.AddDir(dir); err != nil {
			logger.Warn("skipping asset root", zap.Error(err))
		}
	}
	logger.Debug("asset roots", zap.Strings("search", mgr.Roots()))

	t.cfg, t.mgr = cfg, mgr
	return nil
}

// applyOverrides copies explicitly set flags over the config file values.
func applyOverrides(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("assets") {
		extra, _ := flags.GetStringSlice("assets")
		c.Assets.Roots = append(c.Assets.Roots, extra...)
	}
	if flags.Changed("heightmap") {
		c.Assets.Heightmap, _ = flags.GetString("heightmap")
	}
	if flags.Changed("cells") {
		n, _ := flags.GetInt("cells")
		c.Terrain.CellsX, c.Terrain.CellsZ = n, n
	}
	if flags.Changed("cells-x") {
		c.Terrain.CellsX, _ = flags.GetInt("cells-x")
	}
	if flags.Changed("cells-z") {
		c.Terrain.CellsZ, _ = flags.GetInt("cells-z")
	}
	if flags.Changed("noise") {
		c.Terrain.Noise, _ = flags.GetBool("noise")
	}
	if flags.Changed("extra-noise") {
		c.Terrain.ExtraNoise, _ = flags.GetBool("extra-noise")
	}
	if flags.Changed("noise-source") {
		c.Terrain.NoiseSource, _ = flags.GetString("noise-source")
	}
	if flags.Changed("seed") {
		c.Terrain.PerlinSeed, err = flags.GetInt64("seed")
		if err != nil {
			return err
		}
	}
	if flags.Changed("blur") {
		c.Terrain.HeightmapBlur, err = flags.GetFloat32("blur")
		if err != nil {
			return err
		}
	}
	return nil
}

// buildTerrain loads the configured height map and builds the mesh. A
// missing or unreadable height map is logged and the terrain is built flat,
// the same way the viewer does it.
func (t *tool) buildTerrain() (*terrain.Mesh, error) {
	var hm *terrain.HeightMap
	if name := t.cfg.Assets.Heightmap; name != "" {
		var err error
		hm, err = level.LoadHeightMap(t.mgr, name, t.cfg.Terrain.HeightmapBlur)
		if err != nil {
			logger.Warn("building flat terrain", zap.Error(err))
		}
	}
	mesh, err := terrain.Build(hm, level.TerrainOptions(t.cfg.Terrain))
	if err != nil {
		return nil, &level.Error{Kind: level.TerrainBuild, Err: err}
	}
	return mesh, nil
}
