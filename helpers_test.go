package donut

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gg"
)

// demoSectors is the stock data set: three large sectors and three small
// ones that get widened to the minimum angle.
func demoSectors() []Sector {
	return []Sector{
		{Label: "Супермаркеты", Value: 33, Color: "#FE788B"},
		{Label: "Аптеки", Value: 30, Color: "#76E1A1"},
		{Label: "Переводы", Value: 26, Color: "#4FC5DF"},
		{Label: "Остальное", Value: 2, Color: "#B4CDDB"},
		{Label: "Фастфуд", Value: 8, Color: "#FF9675"},
		{Label: "Транспорт", Value: 1, Color: "#6489F1"},
	}
}

func threeSectors() []Sector {
	return []Sector{
		{Label: "A", Value: 50, Color: "#FF0000"},
		{Label: "B", Value: 30, Color: "#00FF00"},
		{Label: "C", Value: 20, Color: "#0000FF"},
	}
}

func colorApproxEqual(a, b gg.RGBA, tolerance float64) bool {
	return absf(a.R-b.R) < tolerance &&
		absf(a.G-b.G) < tolerance &&
		absf(a.B-b.B) < tolerance &&
		absf(a.A-b.A) < tolerance
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func angles(adjusted []AdjustedSector) []float64 {
	out := make([]float64, len(adjusted))
	for i, a := range adjusted {
		out[i] = a.Angle
	}
	return out
}

func sum(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// pointAt returns the pixel nearest to the point at angle and radius r
// from the center of g.
func pointAt(g Geometry, angle, r float64) (int, int) {
	p := g.Polar(angle, r)
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// fakeScheduler records callbacks so tests decide when they run. Post may
// be called from icon loading goroutines.
type fakeScheduler struct {
	mu     sync.Mutex
	frames []FrameFunc
	tasks  []func()
}

func (s *fakeScheduler) RequestFrame(fn FrameFunc) {
	s.mu.Lock()
	s.frames = append(s.frames, fn)
	s.mu.Unlock()
}

func (s *fakeScheduler) Post(fn func()) {
	s.mu.Lock()
	s.tasks = append(s.tasks, fn)
	s.mu.Unlock()
}

// takeFrames removes and returns the requested frame callbacks.
func (s *fakeScheduler) takeFrames() []FrameFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	frames := s.frames
	s.frames = nil
	return frames
}

// step runs pending tasks, then the frames requested so far, at now.
func (s *fakeScheduler) step(now time.Time) int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
	frames := s.takeFrames()
	for _, fn := range frames {
		fn(now)
	}
	return len(frames)
}

// waitTasks blocks until n tasks were posted and returns them without
// running them.
func (s *fakeScheduler) waitTasks(t *testing.T, n int) []func() {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		s.mu.Lock()
		if len(s.tasks) >= n {
			tasks := s.tasks
			s.tasks = nil
			s.mu.Unlock()
			return tasks
		}
		s.mu.Unlock()
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d posted tasks", n)
		}
		time.Sleep(time.Millisecond)
	}
}

// fixedClock returns a clock that always reports t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
