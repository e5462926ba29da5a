package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/threegp/internal/engine/shader"
	"github.com/Faultbox/threegp/internal/engine/terrain"
	"github.com/Faultbox/threegp/internal/level"
)

var terrainAttribs = []attrib{
	{location: 0, size: 3, offset: unsafe.Offsetof(terrain.Vertex{}.Position)},
	{location: 1, size: 3, offset: unsafe.Offsetof(terrain.Vertex{}.Normal)},
	{location: 2, size: 2, offset: unsafe.Offsetof(terrain.Vertex{}.TexCoord)},
}

// TerrainRenderer draws the generated terrain mesh with one texture.
type TerrainRenderer struct {
	program *shader.Program
	mesh    gpuMesh
	texture uint32

	// ShowNormals colours the terrain by its vertex normals.
	ShowNormals bool
}

// NewTerrainRenderer compiles the terrain program.
func NewTerrainRenderer(src level.ShaderSource) (*TerrainRenderer, error) {
	program, err := shader.NewProgram("terrain", src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	return &TerrainRenderer{program: program}, nil
}

// Load uploads the texture and the mesh.
func (tr *TerrainRenderer) Load(mesh *terrain.Mesh, tex *image.RGBA) error {
	deleteTexture(&tr.texture)
	tr.texture = uploadTexture(tex)
	return tr.SetMesh(mesh)
}

// SetMesh replaces the uploaded geometry, for example after a rebuild.
func (tr *TerrainRenderer) SetMesh(mesh *terrain.Mesh) error {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return fmt.Errorf("terrain renderer: empty mesh")
	}
	tr.mesh.destroy()
	tr.mesh = uploadMesh(unsafe.Pointer(&mesh.Vertices[0]), len(mesh.Vertices),
		unsafe.Sizeof(terrain.Vertex{}), terrainAttribs, mesh.Indices)
	return nil
}

// Render draws the terrain at the world origin.
func (tr *TerrainRenderer) Render(viewProj mgl32.Mat4) {
	if tr.mesh.vao == 0 {
		return
	}
	tr.program.Use()
	tr.program.SetMat4("combined_xform", viewProj)
	tr.program.SetMat4("model_xform", mgl32.Ident4())
	tr.program.SetBool("show_normals", tr.ShowNormals)
	bindTexture2D(0, tr.texture)
	tr.program.SetInt("sampler_tex", 0)

	tr.mesh.draw()
}

// Destroy releases GPU resources.
func (tr *TerrainRenderer) Destroy() {
	tr.mesh.destroy()
	deleteTexture(&tr.texture)
	tr.program.Delete()
}
