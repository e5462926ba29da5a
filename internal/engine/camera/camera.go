// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// FlyCamera is a free-look camera moved along its own axes.
type FlyCamera struct {
	Position mgl32.Vec3

	Yaw   float32 // Radians; 0 looks along +Z
	Pitch float32 // Radians, positive looks up

	// Perspective
	FOV  float32 // Vertical field of view in degrees
	Near float32
	Far  float32

	Speed       float32 // World units per second
	Sensitivity float32 // Degrees per pixel of mouse motion

	MaxPitch float32
}

// NewFlyCamera creates a camera at pos with default settings.
func NewFlyCamera(pos mgl32.Vec3) *FlyCamera {
	return &FlyCamera{
		Position:    pos,
		FOV:         45,
		Near:        1,
		Far:         7500,
		Speed:       400,
		Sensitivity: 0.15,
		MaxPitch:    mgl32.DegToRad(89),
	}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return mgl32.Vec3{
		cp * float32(gomath.Sin(float64(c.Yaw))),
		float32(gomath.Sin(float64(c.Pitch))),
		cp * float32(gomath.Cos(float64(c.Yaw))),
	}
}

// Right returns the unit right vector, always horizontal.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return mgl32.Vec3{
		-float32(gomath.Cos(float64(c.Yaw))),
		0,
		float32(gomath.Sin(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection for the given aspect.
func (c *FlyCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// HandleMouse turns the camera by a mouse delta in pixels.
func (c *FlyCamera) HandleMouse(dx, dy float32) {
	c.Yaw -= mgl32.DegToRad(dx * c.Sensitivity)
	c.Pitch -= mgl32.DegToRad(dy * c.Sensitivity)

	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
}

// HandleMovement moves the camera. forward, right and up are in [-1, 1]
// and scaled by Speed and dt seconds. Up is world up.
func (c *FlyCamera) HandleMovement(forward, right, up, dt float32) {
	step := c.Speed * dt
	move := c.Forward().Mul(forward).
		Add(c.Right().Mul(right)).
		Add(mgl32.Vec3{0, up, 0})
	if move.Len() == 0 {
		return
	}
	c.Position = c.Position.Add(move.Mul(step))
}

// LookAt points the camera at target.
func (c *FlyCamera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	c.Yaw = float32(gomath.Atan2(float64(dir.X()), float64(dir.Z())))
	c.Pitch = float32(gomath.Asin(float64(dir.Y())))
}

// FitToBounds places the camera above one corner of the box, looking at
// its center.
func (c *FlyCamera) FitToBounds(min, max mgl32.Vec3) {
	center := min.Add(max).Mul(0.5)
	size := max.Sub(min)
	extent := size.X()
	if size.Z() > extent {
		extent = size.Z()
	}

	c.Position = mgl32.Vec3{min.X(), max.Y() + extent*0.25, min.Z()}
	c.LookAt(center)
}

// NewForBounds creates a camera looking at the center of a box. With fit
// set it is placed by FitToBounds, otherwise it stays at pos.
func NewForBounds(pos mgl32.Vec3, fit bool, min, max mgl32.Vec3) *FlyCamera {
	c := NewFlyCamera(pos)
	if fit {
		c.FitToBounds(min, max)
	} else {
		c.LookAt(min.Add(max).Mul(0.5))
	}
	return c
}
