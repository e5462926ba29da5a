package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/threegp/internal/engine/terrain"
)

func newBuildCmd(t *tool) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the terrain and print mesh statistics",
		Args:  cobra.NoArgs,
		RunE:  t.runBuild,
	}
}

func (t *tool) runBuild(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	mesh, err := t.buildTerrain()
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), mesh, time.Since(start))
	return nil
}

func printStats(w io.Writer, mesh *terrain.Mesh, took time.Duration) {
	b := mesh.Bounds
	fmt.Fprintf(w, "Grid:      %d x %d cells\n", mesh.CellsX, mesh.CellsZ)
	fmt.Fprintf(w, "Vertices:  %d\n", len(mesh.Vertices))
	fmt.Fprintf(w, "Indices:   %d\n", len(mesh.Indices))
	fmt.Fprintf(w, "Triangles: %d\n", mesh.TriangleCount())
	fmt.Fprintf(w, "Bounds:    (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
	if took > 0 {
		fmt.Fprintf(w, "Built in:  %s\n", took.Round(time.Microsecond))
	}
}
