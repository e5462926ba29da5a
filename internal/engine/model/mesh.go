package model

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/threegp/pkg/formats"
)

// ErrEmptyModel is returned when an OBJ file yields no triangles.
var ErrEmptyModel = errors.New("model has no triangles")

// FromOBJ creates one mesh per OBJ object. Corners sharing the same
// position/texcoord/normal triple share a vertex. Corners without a normal
// get the accumulated face normal of their triangles.
func FromOBJ(obj *formats.OBJ, opts BuildOptions) ([]*Mesh, error) {
	var meshes []*Mesh
	for i := range obj.Objects {
		mesh, err := buildObject(obj, &obj.Objects[i], opts)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, obj.Objects[i].Name, err)
		}
		if len(mesh.Indices) > 0 {
			meshes = append(meshes, mesh)
		}
	}
	if len(meshes) == 0 {
		return nil, ErrEmptyModel
	}
	return meshes, nil
}

func buildObject(obj *formats.OBJ, o *formats.OBJObject, opts BuildOptions) (*Mesh, error) {
	mesh := &Mesh{
		Name:     o.Name,
		Material: o.Material,
		Indices:  make([]uint32, 0, o.TriangleCount()*3),
	}

	lookup := make(map[formats.OBJIndex]uint32)
	var generated []bool

	vertexFor := func(c formats.OBJIndex) (uint32, error) {
		if idx, ok := lookup[c]; ok {
			return idx, nil
		}
		if c.Position < 0 || c.Position >= len(obj.Positions) {
			return 0, fmt.Errorf("%w: position %d", formats.ErrOBJIndexRange, c.Position)
		}

		v := Vertex{Position: obj.Positions[c.Position]}
		if c.TexCoord >= 0 {
			v.TexCoord = obj.TexCoords[c.TexCoord]
		}
		if c.Normal >= 0 {
			v.Normal = obj.Normals[c.Normal]
		}

		idx := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, v)
		generated = append(generated, c.Normal < 0)
		lookup[c] = idx
		return idx, nil
	}

	for _, face := range o.Faces {
		for _, tri := range face.Triangles() {
			if opts.ReverseWinding {
				tri[1], tri[2] = tri[2], tri[1]
			}
			for _, c := range tri {
				idx, err := vertexFor(c)
				if err != nil {
					return nil, err
				}
				mesh.Indices = append(mesh.Indices, idx)
			}
		}
	}

	anyGenerated := accumulateFaceNormals(mesh, generated)
	if anyGenerated && opts.SmoothNormals {
		SmoothNormals(mesh.Vertices)
	}

	mesh.Bounds = computeBounds(mesh.Vertices)
	return mesh, nil
}

// accumulateFaceNormals fills normals for vertices flagged in generated.
// It reports whether any vertex needed one.
func accumulateFaceNormals(mesh *Mesh, generated []bool) bool {
	need := false
	for _, g := range generated {
		need = need || g
	}
	if !need {
		return false
	}

	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		a, b, c := mesh.Indices[t], mesh.Indices[t+1], mesh.Indices[t+2]
		pa := mesh.Vertices[a].Position
		n := mesh.Vertices[b].Position.Sub(pa).Cross(mesh.Vertices[c].Position.Sub(pa))
		if n.Len() < 1e-6 {
			continue
		}
		n = n.Normalize()
		for _, idx := range [3]uint32{a, b, c} {
			if generated[idx] {
				mesh.Vertices[idx].Normal = mesh.Vertices[idx].Normal.Add(n)
			}
		}
	}

	for i := range mesh.Vertices {
		if generated[i] {
			mesh.Vertices[i].Normal = Normalize(mesh.Vertices[i].Normal)
		}
	}
	return true
}

// CenterXZ moves all meshes of a model so that their combined bounds are
// centered on the origin in X and Z. Heights are kept. It returns the
// offset that was subtracted.
func CenterXZ(meshes []*Mesh) (centerX, centerZ float32) {
	if len(meshes) == 0 {
		return 0, 0
	}
	total := meshes[0].Bounds
	for _, m := range meshes[1:] {
		total = total.Union(m.Bounds)
	}
	centerX = (total.Min[0] + total.Max[0]) / 2
	centerZ = (total.Min[2] + total.Max[2]) / 2

	for _, m := range meshes {
		for i := range m.Vertices {
			m.Vertices[i].Position[0] -= centerX
			m.Vertices[i].Position[2] -= centerZ
		}
		m.Bounds.Min[0] -= centerX
		m.Bounds.Max[0] -= centerX
		m.Bounds.Min[2] -= centerZ
		m.Bounds.Max[2] -= centerZ
	}
	return centerX, centerZ
}

// SmoothNormals averages normals at shared vertex positions.
// This reduces faceted appearance on models.
func SmoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i := range vertices {
		key := [3]int32{
			int32(vertices[i].Position[0] / epsilon),
			int32(vertices[i].Position[1] / epsilon),
			int32(vertices[i].Position[2] / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}

		var sum mgl32.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vertices[idx].Normal)
		}
		avg := Normalize(sum)

		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

// Normalize returns v scaled to unit length, or +Y for a near-zero vector.
func Normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 0.0001 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}

func computeBounds(vertices []Vertex) Bounds {
	b := Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}
	for i := range vertices {
		p := vertices[i].Position
		for k := range 3 {
			b.Min[k] = min(b.Min[k], p[k])
			b.Max[k] = max(b.Max[k], p[k])
		}
	}
	return b
}
