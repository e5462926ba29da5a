package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/threegp/pkg/formats"
)

const jeepOBJ = `v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
o body
f 1/1 4/4 3/3 2/2
o wheel
v 0 1 0
f 1/1 2/2 5/1
`

func parse(t *testing.T, src string) *formats.OBJ {
	t.Helper()
	obj, err := formats.ParseOBJ([]byte(src))
	require.NoError(t, err)
	return obj
}

func TestFromOBJAllObjects(t *testing.T) {
	meshes, err := FromOBJ(parse(t, jeepOBJ), BuildOptions{})
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	body := meshes[0]
	assert.Equal(t, "body", body.Name)
	assert.Len(t, body.Vertices, 4, "quad corners are shared between the fan triangles")
	assert.Len(t, body.Indices, 6)
	assert.Equal(t, mgl32.Vec2{0, 1}, body.Vertices[1].TexCoord)

	// Counter-clockwise seen from +y gives an upward generated normal.
	for _, v := range body.Vertices {
		assert.InDelta(t, 1, v.Normal.Y(), 1e-6)
	}

	assert.Equal(t, mgl32.Vec3{0, 0, 0}, body.Bounds.Min)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, body.Bounds.Max)

	wheel := meshes[1]
	assert.Len(t, wheel.Indices, 3)
	assert.Equal(t, float32(1), wheel.Bounds.Union(body.Bounds).Max.Y())
}

func TestFromOBJReverseWinding(t *testing.T) {
	meshes, err := FromOBJ(parse(t, jeepOBJ), BuildOptions{ReverseWinding: true})
	require.NoError(t, err)
	for _, v := range meshes[0].Vertices {
		assert.InDelta(t, -1, v.Normal.Y(), 1e-6)
	}
}

func TestFromOBJKeepsFileNormals(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 0 1\nvn 1 0 0\nf 1//1 3//1 2//1\n"
	meshes, err := FromOBJ(parse(t, src), BuildOptions{SmoothNormals: true})
	require.NoError(t, err)
	for _, v := range meshes[0].Vertices {
		assert.Equal(t, mgl32.Vec3{1, 0, 0}, v.Normal)
	}
}

func TestSmoothNormals(t *testing.T) {
	vertices := []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}},
		{Position: mgl32.Vec3{5, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}},
	}
	SmoothNormals(vertices)

	s := float32(1 / 1.41421356)
	assert.InDelta(t, s, vertices[0].Normal.X(), 1e-5)
	assert.InDelta(t, s, vertices[1].Normal.Y(), 1e-5)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, vertices[2].Normal)
}

func TestCenterXZ(t *testing.T) {
	meshes, err := FromOBJ(parse(t, jeepOBJ), BuildOptions{})
	require.NoError(t, err)

	cx, cz := CenterXZ(meshes)
	assert.Equal(t, float32(0.5), cx)
	assert.Equal(t, float32(0.5), cz)
	assert.Equal(t, mgl32.Vec3{-0.5, 0, -0.5}, meshes[0].Bounds.Min)

	// The wheel moves with the body, heights untouched.
	assert.Equal(t, mgl32.Vec3{-0.5, 0, -0.5}, meshes[1].Bounds.Min)
	assert.Equal(t, mgl32.Vec3{0.5, 1, -0.5}, meshes[1].Bounds.Max)
}

func TestCenterXZEmpty(t *testing.T) {
	cx, cz := CenterXZ(nil)
	assert.Zero(t, cx)
	assert.Zero(t, cz)
}

func TestCube(t *testing.T) {
	cube := Cube(10)
	require.Len(t, cube.Vertices, 24)
	require.Len(t, cube.Indices, 36)

	for _, idx := range cube.Indices {
		assert.Less(t, idx, uint32(24))
	}
	for i, v := range cube.Vertices {
		for k := range 3 {
			assert.Equal(t, float32(10), abs(v.Position[k]), "vertex %d", i)
		}
		assert.Equal(t, cubeFaceColors[i/4], v.Color)
	}

	// Every face's triangles wind outward.
	for tri := 0; tri < 36; tri += 3 {
		a := cube.Vertices[cube.Indices[tri]].Position
		b := cube.Vertices[cube.Indices[tri+1]].Position
		c := cube.Vertices[cube.Indices[tri+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		assert.Greater(t, n.Dot(center), float32(0), "triangle %d", tri/3)
	}
}

func TestSkyboxVertices(t *testing.T) {
	verts := SkyboxVertices(10)
	require.Len(t, verts, 36)
	for _, v := range verts {
		for k := range 3 {
			assert.Equal(t, float32(10), abs(v[k]))
		}
	}
}

func TestFromOBJEmpty(t *testing.T) {
	_, err := FromOBJ(&formats.OBJ{}, BuildOptions{})
	assert.ErrorIs(t, err, ErrEmptyModel)
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
