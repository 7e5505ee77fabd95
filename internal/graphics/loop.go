// Package graphics drives frames: a host-independent render loop plus the raylib window
// that paces it.
package graphics

import (
	"context"
	"time"
)

// Frame describes one tick of the loop. Elapsed is measured from the first frame.
type Frame struct {
	Index   uint64
	Elapsed time.Duration
	Delta   time.Duration
}

// Scheduler paces the loop. NextFrame blocks until the host is ready for another frame
// and returns false once the host has gone away (for example the window was closed).
type Scheduler interface {
	NextFrame(ctx context.Context) bool
}

// Loop calls Update then Render once per scheduled frame.
type Loop struct {
	Scheduler Scheduler
	Update    func(Frame)
	Render    func(Frame)

	// MaxFrames stops the loop after that many frames; 0 runs until stopped.
	MaxFrames uint64

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run ticks until ctx is cancelled, the scheduler reports the host closed, or MaxFrames
// frames have run. Cancellation returns ctx.Err(); the other two return nil.
func (l *Loop) Run(ctx context.Context) error {
	now := l.Now
	if now == nil {
		now = time.Now
	}
	if !l.schedule(ctx) {
		return ctx.Err()
	}
	start := now()
	last, t := start, start
	for i := uint64(0); ; i++ {
		f := Frame{Index: i, Elapsed: t.Sub(start), Delta: t.Sub(last)}
		last = t

		if l.Update != nil {
			l.Update(f)
		}
		if l.Render != nil {
			l.Render(f)
		}
		if l.MaxFrames > 0 && i+1 >= l.MaxFrames {
			return nil
		}
		if !l.schedule(ctx) {
			return ctx.Err()
		}
		t = now()
	}
}

func (l *Loop) schedule(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	return l.Scheduler.NextFrame(ctx) && ctx.Err() == nil
}

// Ticker schedules frames off a time.Ticker. It is used when no window is open.
type Ticker struct {
	t *time.Ticker
}

// NewTicker returns a scheduler firing every interval.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{t: time.NewTicker(interval)}
}

// NextFrame waits for the next tick and returns false once ctx is done.
func (t *Ticker) NextFrame(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-t.t.C:
		return true
	}
}

// Stop releases the underlying ticker.
func (t *Ticker) Stop() {
	t.t.Stop()
}
