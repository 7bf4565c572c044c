package motion

import (
	"context"
	"fmt"
	"time"
)

// FrameFunc is called once per requested frame with the elapsed time since
// the previous frame, in seconds.
type FrameFunc func(dt float64)

// FrameID identifies a requested frame callback. The zero value is never
// issued and is safe to cancel.
type FrameID uint64

// Ticker schedules per-frame continuations, mirroring a display's paint
// callback: a request runs once on the next frame, and loops re-request
// from inside their callback.
type Ticker interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn FrameFunc
}

// FrameScheduler is a deterministic Ticker. Advance runs one frame. It is
// not safe for concurrent use; all calls must come from the thread that
// drives frames.
type FrameScheduler struct {
	queue  []frameRequest
	run    []frameRequest
	nextID FrameID
	frame  uint64
	// cancelled holds ids withdrawn while their frame is executing.
	cancelled map[FrameID]struct{}
}

// NewFrameScheduler creates an empty scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{cancelled: make(map[FrameID]struct{})}
}

// RequestFrame schedules fn for the next Advance.
func (s *FrameScheduler) RequestFrame(fn FrameFunc) FrameID {
	s.nextID++
	s.queue = append(s.queue, frameRequest{id: s.nextID, fn: fn})
	return s.nextID
}

// CancelFrame withdraws a pending request. Cancelling an id that already ran
// or was never issued is a no-op.
func (s *FrameScheduler) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i := range s.queue {
		if s.queue[i].id == id {
			copy(s.queue[i:], s.queue[i+1:])
			s.queue[len(s.queue)-1] = frameRequest{}
			s.queue = s.queue[:len(s.queue)-1]
			return
		}
	}
	for i := range s.run {
		if s.run[i].id == id {
			s.cancelled[id] = struct{}{}
			return
		}
	}
}

// Advance runs every callback requested before this call, in request order.
// Callbacks requested while the frame runs are deferred to the next Advance.
func (s *FrameScheduler) Advance(dt float64) {
	s.frame++
	s.run, s.queue = s.queue, s.run[:0]
	for i := range s.run {
		req := s.run[i]
		if _, ok := s.cancelled[req.id]; ok {
			continue
		}
		req.fn(dt)
	}
	clear(s.cancelled)
	clear(s.run)
	s.run = s.run[:0]
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *FrameScheduler) Pending() int {
	return len(s.queue)
}

// Frame returns the number of frames advanced so far.
func (s *FrameScheduler) Frame() uint64 {
	return s.frame
}

// Run advances the scheduler from a wall-clock ticker until ctx is done.
// Frame callbacks execute on the calling goroutine; the returned error is
// the context's cause.
func (s *FrameScheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("run frame scheduler: interval must be positive, got %v", interval)
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case now := <-t.C:
			s.Advance(now.Sub(last).Seconds())
			last = now
		}
	}
}
