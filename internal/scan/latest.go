package scan

import (
	"sync"
	"sync/atomic"
)

// Sink receives one RenderState per scan iteration.
type Sink interface {
	Push(RenderState)
}

// snapshot pairs a state with the push that produced it.
type snapshot struct {
	state RenderState
	seq   uint64
}

// Latest is a single-slot, last-write-wins cell. The scan goroutine pushes
// into it and the UI goroutine polls it on its own frame tick, so the
// worker never calls into the renderer.
type Latest struct {
	mu   sync.Mutex // serialises writers
	slot atomic.Pointer[snapshot]
}

// Push replaces the held state.
func (l *Latest) Push(s RenderState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var seq uint64 = 1
	if prev := l.slot.Load(); prev != nil {
		seq = prev.seq + 1
	}
	l.slot.Store(&snapshot{state: s, seq: seq})
}

// Load returns the newest state and the number of pushes that produced it.
// ok is false until the first push.
func (l *Latest) Load() (state RenderState, seq uint64, ok bool) {
	p := l.slot.Load()
	if p == nil {
		return RenderState{}, 0, false
	}
	return p.state, p.seq, true
}
