package debug

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameStats(t *testing.T) {
	s := NewFrameStats(time.Second)

	for i := 0; i < 59; i++ {
		assert.False(t, s.Tick(16*time.Millisecond+666*time.Microsecond))
	}
	assert.Zero(t, s.FPS)

	// 60 frames of ~16.7ms crosses one second.
	assert.True(t, s.Tick(100*time.Millisecond))
	assert.InDelta(t, 60/1.083294, s.FPS, 0.01)
	assert.Equal(t, "3GP - 18.055 ms/frame (55.4 FPS)", s.Title("3GP"))

	assert.False(t, s.Tick(time.Millisecond), "counters reset after a report")
}
