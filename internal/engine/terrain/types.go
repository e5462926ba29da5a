// Package terrain builds procedural terrain meshes from optional heightmaps.
//
// The package is pure data: it never touches the graphics API, so the output
// of Build can be tested, exported or uploaded by a renderer.
package terrain

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// CellSize is the world-space size of one grid cell.
const CellSize = 8

// Noise sources understood by Options.NoiseSource.
const (
	NoiseHash   = "hash"
	NoisePerlin = "perlin"
)

// ErrInvalidGrid is returned when the requested grid has no cells or is too
// large to be indexed with uint32.
var ErrInvalidGrid = errors.New("terrain: invalid grid size")

// Vertex is one terrain vertex. The layout is interleaved for GPU upload.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Triangle holds three vertex indices in winding order.
type Triangle [3]uint32

// Mesh holds the complete terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
	CellsX   int
	CellsZ   int
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the i-th triangle of the mesh.
func (m *Mesh) Triangle(i int) Triangle {
	return Triangle{m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]}
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Options controls terrain generation.
type Options struct {
	CellsX int
	CellsZ int

	// Noise enables the per-vertex displacement pass.
	Noise bool
	// ExtraNoise halves the displacement (it skips the final doubling).
	ExtraNoise bool

	NoiseSource string // NoiseHash or NoisePerlin
	PerlinSeed  int64
}

// vertsX returns the number of vertices along X.
func (o Options) vertsX() int { return o.CellsX + 1 }

// vertsZ returns the number of vertices along Z.
func (o Options) vertsZ() int { return o.CellsZ + 1 }

// index maps grid coordinate (x, z) to its vertex index.
func (o Options) index(x, z int) int {
	return x*o.vertsZ() + z
}
