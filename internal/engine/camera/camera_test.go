package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestFlyCameraAxes(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	assertVec(t, mgl32.Vec3{0, 0, 1}, c.Forward())
	assertVec(t, mgl32.Vec3{-1, 0, 0}, c.Right())

	// Right must agree with the view matrix's notion of right.
	view := c.ViewMatrix()
	assertVec(t, c.Right(), mgl32.Vec3{view.At(0, 0), view.At(0, 1), view.At(0, 2)})
}

func TestFlyCameraMovementScalesWithDt(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	c.Speed = 100

	c.HandleMovement(1, 0, 0, 0.5)
	assertVec(t, mgl32.Vec3{0, 0, 50}, c.Position)

	c.HandleMovement(0, 1, 1, 0.1)
	assertVec(t, mgl32.Vec3{-10, 10, 50}, c.Position)

	c.HandleMovement(0, 0, 0, 1)
	assertVec(t, mgl32.Vec3{-10, 10, 50}, c.Position)
}

func TestFlyCameraPitchClamped(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	c.HandleMouse(0, -100000)
	assert.InDelta(t, c.MaxPitch, c.Pitch, 1e-6)
	c.HandleMouse(0, 200000)
	assert.InDelta(t, -c.MaxPitch, c.Pitch, 1e-6)
}

func TestFlyCameraMouseTurnsRight(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	c.HandleMouse(10, 0)
	assert.Less(t, c.Forward().X(), float32(0), "moving the mouse right turns towards -X")
}

func TestFlyCameraLookAt(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{0, 10, 0})
	target := mgl32.Vec3{30, 10, 40}
	c.LookAt(target)
	assertVec(t, target.Normalize(), c.Forward())
}

func TestFlyCameraFitToBounds(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	min := mgl32.Vec3{0, 0, 0}
	max := mgl32.Vec3{4000, 300, 4000}
	c.FitToBounds(min, max)

	assert.Greater(t, c.Position.Y(), max.Y())
	toCenter := min.Add(max).Mul(0.5).Sub(c.Position).Normalize()
	assertVec(t, toCenter, c.Forward())
}

func TestNewForBounds(t *testing.T) {
	min := mgl32.Vec3{0, 0, 0}
	max := mgl32.Vec3{800, 100, 400}
	center := mgl32.Vec3{400, 50, 200}
	pos := mgl32.Vec3{0, 400, -200}

	fixed := NewForBounds(pos, false, min, max)
	assert.Equal(t, pos, fixed.Position)
	assertVec(t, center.Sub(pos).Normalize(), fixed.Forward())

	fitted := NewForBounds(pos, true, min, max)
	assert.Equal(t, mgl32.Vec3{0, 300, 0}, fitted.Position)
	assertVec(t, center.Sub(fitted.Position).Normalize(), fitted.Forward())
}

func TestFlyCameraProjection(t *testing.T) {
	c := NewFlyCamera(mgl32.Vec3{})
	want := mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 1, 7500)
	assert.Equal(t, want, c.ProjectionMatrix(16.0/9.0))
}
