package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/internal/level"
)

func newNoiseCmd(t *tool) *cobra.Command {
	return &cobra.Command{
		Use:   "noise I J",
		Short: "Print the noise value and vertex offset for a grid coordinate",
		Args:  cobra.ExactArgs(2),
		RunE:  t.runNoise,
	}
}

func (t *tool) runNoise(cmd *cobra.Command, args []string) error {
	i, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid I %q: %w", args[0], err)
	}
	j, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid J %q: %w", args[1], err)
	}

	opts := level.TerrainOptions(t.cfg.Terrain)
	d, err := terrain.NewDisplacer(opts)
	if err != nil {
		return err
	}
	raw := d.Displacement(int(i), int(j))

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "source: %s\n", opts.NoiseSource)
	fmt.Fprintf(w, "noise:  %.6f\n", raw)
	fmt.Fprintf(w, "offset: %.6f\n", terrain.Offset(raw, opts.ExtraNoise))
	return nil
}
