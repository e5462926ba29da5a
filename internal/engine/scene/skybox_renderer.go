package scene

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/threegp/internal/engine/model"
	"github.com/Faultbox/threegp/internal/engine/shader"
	"github.com/Faultbox/threegp/internal/level"
)

const skyboxHalfSize = 10

// SkyboxRenderer draws a cube map around the camera.
type SkyboxRenderer struct {
	program *shader.Program
	mesh    gpuMesh
	cubeMap uint32
}

// NewSkyboxRenderer compiles the skybox program and uploads the cube.
func NewSkyboxRenderer(src level.ShaderSource) (*SkyboxRenderer, error) {
	program, err := shader.NewProgram("skybox", src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	verts := model.SkyboxVertices(skyboxHalfSize)
	sr := &SkyboxRenderer{program: program}
	sr.mesh = uploadMesh(unsafe.Pointer(&verts[0]), len(verts), unsafe.Sizeof(mgl32.Vec3{}),
		[]attrib{{location: 0, size: 3}}, nil)
	return sr, nil
}

// Load uploads the six faces, ordered as config.SkyboxConfig.Faces.
func (sr *SkyboxRenderer) Load(faces [6]*image.RGBA) {
	deleteTexture(&sr.cubeMap)
	sr.cubeMap = uploadCubeMap(faces)
}

// Render draws the skybox behind everything. Only the rotation of view is
// used so the box stays centred on the camera.
func (sr *SkyboxRenderer) Render(view, projection mgl32.Mat4) {
	if sr.cubeMap == 0 {
		return
	}
	rotation := view.Mat3().Mat4()

	gl.DepthMask(false)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	sr.program.Use()
	sr.program.SetMat4("combined_xform", projection.Mul4(rotation))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sr.cubeMap)
	sr.program.SetInt("sampler_cube", 0)
	sr.mesh.draw()

	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
}

// Destroy releases GPU resources.
func (sr *SkyboxRenderer) Destroy() {
	sr.mesh.destroy()
	deleteTexture(&sr.cubeMap)
	sr.program.Delete()
}
