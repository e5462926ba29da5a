// Package anim holds frame-rate independent animation state.
package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSpinRate is 0.001 radians per frame at 60 Hz.
const DefaultSpinRate = 0.06

// Spin rotates an object about Y until a full turn completes, then about X
// for the next turn, alternating.
type Spin struct {
	Angle float32 // Radians in [0, 2π]
	Rate  float32 // Radians per second
	AxisX bool    // false: Y axis
}

// NewSpin returns a spin starting about Y at the given rate.
func NewSpin(rate float32) *Spin {
	return &Spin{Rate: rate}
}

// Advance moves the angle by Rate*dt seconds. Passing 2π resets the angle
// and switches axis.
func (s *Spin) Advance(dt float32) {
	s.Angle += s.Rate * dt
	if s.Angle > 2*math.Pi {
		s.Angle = 0
		s.AxisX = !s.AxisX
	}
}

// Axis returns the current rotation axis.
func (s *Spin) Axis() mgl32.Vec3 {
	if s.AxisX {
		return mgl32.Vec3{1, 0, 0}
	}
	return mgl32.Vec3{0, 1, 0}
}

// Rotation returns the current rotation matrix.
func (s *Spin) Rotation() mgl32.Mat4 {
	return mgl32.HomogRotate3D(s.Angle, s.Axis())
}

// ModelMatrix returns translate(pos) * scale(k) * rotation.
func (s *Spin) ModelMatrix(pos mgl32.Vec3, k float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.Scale3D(k, k, k)).
		Mul4(s.Rotation())
}
