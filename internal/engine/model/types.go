// Package model builds GPU-ready meshes from Wavefront OBJ files and
// provides the built-in cube and skybox primitives.
package model

import "github.com/go-gl/mathgl/mgl32"

// Vertex represents a model mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// Mesh holds one OBJ object ready for GPU upload.
type Mesh struct {
	Name     string
	Material string
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Union returns the box enclosing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	for i := range 3 {
		b.Min[i] = min(b.Min[i], o.Min[i])
		b.Max[i] = max(b.Max[i], o.Max[i])
	}
	return b
}

// BuildOptions contains options for mesh building.
type BuildOptions struct {
	// ReverseWinding reverses triangle winding order (for mirrored exports).
	ReverseWinding bool
	// SmoothNormals averages generated normals at shared positions. It has
	// no effect on meshes whose OBJ file carries normals.
	SmoothNormals bool
}
