package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/threegp/internal/engine/model"
	"github.com/Faultbox/threegp/internal/engine/shader"
	"github.com/Faultbox/threegp/internal/level"
)

var modelAttribs = []attrib{
	{location: 0, size: 3, offset: unsafe.Offsetof(model.Vertex{}.Position)},
	{location: 1, size: 2, offset: unsafe.Offsetof(model.Vertex{}.TexCoord)},
}

// ModelRenderer draws every mesh of one OBJ model with a shared texture.
type ModelRenderer struct {
	program *shader.Program
	meshes  []gpuMesh
	texture uint32

	// Transform is the model matrix applied to every mesh.
	Transform mgl32.Mat4
	Bounds    model.Bounds
}

// NewModelRenderer compiles the vehicle program.
func NewModelRenderer(src level.ShaderSource) (*ModelRenderer, error) {
	program, err := shader.NewProgram("vehicle", src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	return &ModelRenderer{program: program, Transform: mgl32.Ident4()}, nil
}

// Load uploads all meshes and the texture, replacing anything loaded before.
func (mr *ModelRenderer) Load(meshes []*model.Mesh, tex *image.RGBA) error {
	if len(meshes) == 0 {
		return fmt.Errorf("model renderer: %w", model.ErrEmptyModel)
	}
	mr.clear()

	mr.Bounds = meshes[0].Bounds
	for _, m := range meshes {
		if len(m.Vertices) == 0 {
			continue
		}
		mr.meshes = append(mr.meshes, uploadMesh(unsafe.Pointer(&m.Vertices[0]), len(m.Vertices),
			unsafe.Sizeof(model.Vertex{}), modelAttribs, m.Indices))
		mr.Bounds = mr.Bounds.Union(m.Bounds)
	}
	mr.texture = uploadTexture(tex)
	return nil
}

// Render draws all meshes.
func (mr *ModelRenderer) Render(viewProj mgl32.Mat4) {
	if len(mr.meshes) == 0 {
		return
	}
	mr.program.Use()
	mr.program.SetMat4("combined_xform", viewProj)
	mr.program.SetMat4("model_xform", mr.Transform)
	bindTexture2D(0, mr.texture)
	mr.program.SetInt("sampler_tex", 0)

	for i := range mr.meshes {
		mr.meshes[i].draw()
	}
}

func (mr *ModelRenderer) clear() {
	for i := range mr.meshes {
		mr.meshes[i].destroy()
	}
	mr.meshes = nil
	deleteTexture(&mr.texture)
}

// Destroy releases GPU resources.
func (mr *ModelRenderer) Destroy() {
	mr.clear()
	mr.program.Delete()
}
