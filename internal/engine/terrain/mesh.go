package terrain

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Build generates the terrain mesh: grid, triangulation, optional noise,
// then normals. hm may be nil for a flat terrain.
func Build(hm *HeightMap, opts Options) (*Mesh, error) {
	if opts.CellsX < 1 || opts.CellsZ < 1 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrInvalidGrid, opts.CellsX, opts.CellsZ)
	}
	if uint64(opts.vertsX())*uint64(opts.vertsZ()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %dx%d cells exceeds uint32 indices", ErrInvalidGrid, opts.CellsX, opts.CellsZ)
	}

	vertices, err := SampleGrid(hm, opts)
	if err != nil {
		return nil, fmt.Errorf("sampling heightmap: %w", err)
	}

	indices := Triangulate(opts)

	if opts.Noise {
		d, err := NewDisplacer(opts)
		if err != nil {
			return nil, err
		}
		ApplyNoise(vertices, opts, d)
	}

	AccrueNormals(vertices, indices)

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   computeBounds(vertices),
		CellsX:   opts.CellsX,
		CellsZ:   opts.CellsZ,
	}, nil
}

func computeBounds(vertices []Vertex) Bounds {
	b := Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}
	for i := range vertices {
		updateBounds(&b, vertices[i].Position)
	}
	return b
}

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
