package debug

import (
	"fmt"
	"time"
)

// FrameStats averages frame times over a reporting interval.
type FrameStats struct {
	Interval time.Duration

	frames  int
	elapsed time.Duration

	// Last completed interval.
	FPS       float64
	FrameTime time.Duration
}

// NewFrameStats reports once per interval.
func NewFrameStats(interval time.Duration) *FrameStats {
	return &FrameStats{Interval: interval}
}

// Tick records one frame of duration dt. It returns true when an interval
// has completed and FPS and FrameTime were updated.
func (s *FrameStats) Tick(dt time.Duration) bool {
	s.frames++
	s.elapsed += dt
	if s.elapsed < s.Interval {
		return false
	}
	s.FPS = float64(s.frames) / s.elapsed.Seconds()
	s.FrameTime = s.elapsed / time.Duration(s.frames)
	s.frames = 0
	s.elapsed = 0
	return true
}

// Title formats the stats for a window title.
func (s *FrameStats) Title(base string) string {
	ms := float64(s.FrameTime) / float64(time.Millisecond)
	return fmt.Sprintf("%s - %.3f ms/frame (%.1f FPS)", base, ms, s.FPS)
}
