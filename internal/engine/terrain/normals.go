package terrain

import "github.com/go-gl/mathgl/mgl32"

// degenerateEpsilon is the squared cross-product length under which a
// triangle has no usable face normal.
const degenerateEpsilon = 1e-12

var up = mgl32.Vec3{0, 1, 0}

// AccrueNormals computes smooth per-vertex normals. Every triangle adds its
// unit face normal to each of its three vertices, then every vertex normal is
// normalized. Degenerate triangles add nothing; vertices left with a zero sum
// point straight up.
func AccrueNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = mgl32.Vec3{}
	}

	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		pa := vertices[a].Position

		side1 := vertices[b].Position.Sub(pa)
		side2 := vertices[c].Position.Sub(pa)
		face := side1.Cross(side2)
		if face.LenSqr() < degenerateEpsilon {
			continue
		}
		face = face.Normalize()

		vertices[a].Normal = vertices[a].Normal.Add(face)
		vertices[b].Normal = vertices[b].Normal.Add(face)
		vertices[c].Normal = vertices[c].Normal.Add(face)
	}

	for i := range vertices {
		vertices[i].Normal = normalize(vertices[i].Normal)
	}
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 0.0001 {
		return up
	}
	return v.Normalize()
}
