package donut

import (
	"context"
	"sync"
	"time"
)

// FrameFunc is called once per display frame with the frame time.
type FrameFunc func(now time.Time)

// Scheduler is the host's frame mechanism. Callbacks run one at a time on
// the host's drawing goroutine.
type Scheduler interface {
	// RequestFrame runs fn on the next frame.
	RequestFrame(fn FrameFunc)
	// Post runs fn on the drawing goroutine as soon as possible.
	Post(fn func())
}

// Loop is a Scheduler that runs on the goroutine calling Run. RequestFrame
// and Post may be called from any goroutine.
type Loop struct {
	interval time.Duration

	mu     sync.Mutex
	frames []FrameFunc
	tasks  []func()
	wake   chan struct{}
}

var _ Scheduler = (*Loop)(nil)

// NewLoop returns a loop ticking fps times per second. fps <= 0 means 60.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		wake:     make(chan struct{}, 1),
	}
}

// RequestFrame implements Scheduler.
func (l *Loop) RequestFrame(fn FrameFunc) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
}

// Post implements Scheduler.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes posted tasks as they arrive and frame callbacks on every
// tick until ctx is done. It returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.runTasks()
		case now := <-ticker.C:
			l.RunFrame(now)
		}
	}
}

// RunFrame runs pending tasks, then the frame callbacks requested before
// the call, with now as the frame time. Callbacks requested while it runs
// wait for the next frame. It returns the number of frame callbacks run.
func (l *Loop) RunFrame(now time.Time) int {
	l.runTasks()

	l.mu.Lock()
	frames := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, fn := range frames {
		fn(now)
	}
	return len(frames)
}

// Pending reports whether frame callbacks or tasks are waiting.
func (l *Loop) Pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames) > 0 || len(l.tasks) > 0
}

func (l *Loop) runTasks() {
	for {
		l.mu.Lock()
		tasks := l.tasks
		l.tasks = nil
		l.mu.Unlock()

		if len(tasks) == 0 {
			return
		}
		for _, fn := range tasks {
			fn()
		}
	}
}
