package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHeightCmd(t *tool) *cobra.Command {
	return &cobra.Command{
		Use:   "height X Z",
		Short: "Print the interpolated terrain height at a world position",
		Long: `Builds the terrain and prints its height at world position (X, Z),
interpolated between the four surrounding vertices. Positions outside the
terrain are clamped to its edge.`,
		Args: cobra.ExactArgs(2),
		RunE: t.runHeight,
	}
}

func (t *tool) runHeight(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return fmt.Errorf("invalid X %q: %w", args[0], err)
	}
	z, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return fmt.Errorf("invalid Z %q: %w", args[1], err)
	}

	mesh, err := t.buildTerrain()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "height: %.3f\n", mesh.HeightAt(float32(x), float32(z)))
	return nil
}
