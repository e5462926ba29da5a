package model

import "github.com/go-gl/mathgl/mgl32"

// ColoredVertex is a position with a flat RGB colour.
type ColoredVertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// ColoredMesh is an indexed mesh of ColoredVertex.
type ColoredMesh struct {
	Vertices []ColoredVertex
	Indices  []uint32
}

// Face colours of the cube in face order.
var cubeFaceColors = [6]mgl32.Vec3{
	{1, 0, 0},   // front: red
	{0, 1, 0},   // back: green
	{0, 0, 1},   // right: blue
	{1, 1, 0},   // left: yellow
	{1, 0.5, 0}, // bottom: orange
	{1, 1, 1},   // top: white
}

// cubeFaces lists the four corner ids of each face, then its six local
// element offsets.
var cubeFaces = [6]struct {
	corners  [4]int
	elements [6]uint32
}{
	{[4]int{0, 1, 2, 3}, [6]uint32{0, 1, 2, 1, 3, 2}}, // front (+z)
	{[4]int{4, 5, 6, 7}, [6]uint32{1, 0, 2, 1, 2, 3}}, // back (-z)
	{[4]int{1, 3, 5, 7}, [6]uint32{0, 2, 3, 0, 3, 1}}, // right (+x)
	{[4]int{0, 2, 4, 6}, [6]uint32{0, 3, 2, 0, 1, 3}}, // left (-x)
	{[4]int{0, 1, 4, 5}, [6]uint32{0, 2, 1, 3, 1, 2}}, // bottom (-y)
	{[4]int{2, 3, 6, 7}, [6]uint32{1, 3, 2, 0, 1, 2}}, // top (+y)
}

// Cube returns a cube spanning [-half, half] on every axis with 24 vertices
// (four per face) so each face carries its own colour.
func Cube(half float32) *ColoredMesh {
	lo, hi := -half, half
	corners := [8]mgl32.Vec3{
		{lo, lo, hi}, {hi, lo, hi}, {lo, hi, hi}, {hi, hi, hi},
		{lo, lo, lo}, {hi, lo, lo}, {lo, hi, lo}, {hi, hi, lo},
	}

	mesh := &ColoredMesh{
		Vertices: make([]ColoredVertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for f, face := range cubeFaces {
		base := uint32(len(mesh.Vertices))
		for _, c := range face.corners {
			mesh.Vertices = append(mesh.Vertices, ColoredVertex{Position: corners[c], Color: cubeFaceColors[f]})
		}
		for _, e := range face.elements {
			mesh.Indices = append(mesh.Indices, base+e)
		}
	}
	return mesh
}

// SkyboxVertices returns the 36 non-indexed positions of an inward-facing
// cube spanning [-half, half], for drawing with GL_TRIANGLES.
func SkyboxVertices(half float32) []mgl32.Vec3 {
	unit := [36][3]float32{
		{-1, 1, -1}, {-1, -1, -1}, {1, -1, -1},
		{1, -1, -1}, {1, 1, -1}, {-1, 1, -1},

		{-1, -1, 1}, {-1, -1, -1}, {-1, 1, -1},
		{-1, 1, -1}, {-1, 1, 1}, {-1, -1, 1},

		{1, -1, -1}, {1, -1, 1}, {1, 1, 1},
		{1, 1, 1}, {1, 1, -1}, {1, -1, -1},

		{-1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
		{1, 1, 1}, {1, -1, 1}, {-1, -1, 1},

		{-1, 1, -1}, {1, 1, -1}, {1, 1, 1},
		{1, 1, 1}, {-1, 1, 1}, {-1, 1, -1},

		{-1, -1, -1}, {-1, -1, 1}, {1, -1, -1},
		{1, -1, -1}, {-1, -1, 1}, {1, -1, 1},
	}

	out := make([]mgl32.Vec3, len(unit))
	for i, p := range unit {
		out[i] = mgl32.Vec3(p).Mul(half)
	}
	return out
}
