package scene

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/threegp/internal/engine/anim"
	"github.com/Faultbox/threegp/internal/engine/model"
	"github.com/Faultbox/threegp/internal/engine/shader"
	"github.com/Faultbox/threegp/internal/level"
)

const cubeHalfSize = 10

var cubeAttribs = []attrib{
	{location: 0, size: 3, offset: unsafe.Offsetof(model.ColoredVertex{}.Position)},
	{location: 1, size: 3, offset: unsafe.Offsetof(model.ColoredVertex{}.Color)},
}

// CubeRenderer draws the spinning colour cube.
type CubeRenderer struct {
	program *shader.Program
	mesh    gpuMesh

	Spin     *anim.Spin
	Position mgl32.Vec3
	Scale    float32
}

// NewCubeRenderer compiles the cube program and uploads the cube.
func NewCubeRenderer(src level.ShaderSource, position mgl32.Vec3, scale, spinRate float32) (*CubeRenderer, error) {
	program, err := shader.NewProgram("cube", src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	cube := model.Cube(cubeHalfSize)
	return &CubeRenderer{
		program:  program,
		mesh:     uploadMesh(unsafe.Pointer(&cube.Vertices[0]), len(cube.Vertices), unsafe.Sizeof(model.ColoredVertex{}), cubeAttribs, cube.Indices),
		Spin:     anim.NewSpin(spinRate),
		Position: position,
		Scale:    scale,
	}, nil
}

// Update advances the spin by dt seconds.
func (cr *CubeRenderer) Update(dt float32) {
	cr.Spin.Advance(dt)
}

// Render draws the cube.
func (cr *CubeRenderer) Render(viewProj mgl32.Mat4) {
	cr.program.Use()
	cr.program.SetMat4("combined_xform", viewProj)
	cr.program.SetMat4("model_xform", cr.Spin.ModelMatrix(cr.Position, cr.Scale))
	cr.mesh.draw()
}

// Destroy releases GPU resources.
func (cr *CubeRenderer) Destroy() {
	cr.mesh.destroy()
	cr.program.Delete()
}
