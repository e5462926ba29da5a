package terrain

import "github.com/go-gl/mathgl/mgl32"

// SampleGrid lays out the vertex grid. Heights come from hm, or are zero when
// hm is nil. Normals are left zeroed for AccrueNormals.
func SampleGrid(hm *HeightMap, opts Options) ([]Vertex, error) {
	numVertX, numVertZ := opts.vertsX(), opts.vertsZ()
	vertices := make([]Vertex, numVertX*numVertZ)

	cellsX := float32(opts.CellsX)
	cellsZ := float32(opts.CellsZ)

	for x := range numVertX {
		for z := range numVertZ {
			height, err := SampleHeight(hm, x, z, numVertX, numVertZ)
			if err != nil {
				return nil, err
			}

			v := &vertices[opts.index(x, z)]
			v.Position = mgl32.Vec3{float32(x * CellSize), float32(height), float32(z * CellSize)}

			// The two paths cross-map the UV axes differently.
			if hm != nil {
				v.TexCoord = mgl32.Vec2{float32(x) / cellsZ, float32(z) / cellsX}
			} else {
				v.TexCoord = mgl32.Vec2{float32(z) / cellsZ, float32(x) / cellsX}
			}
		}
	}
	return vertices, nil
}
