// Package dashboard
package dashboard

import (
	"context"
	"sync"
)

type State int

const (
	StateLoading State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "loading"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	if string(b) == "ready" {
		*s = StateReady
	} else {
		*s = StateLoading
	}
	return nil
}

// loader serializes loads of one controller. Every begin bumps the
// generation and cancels the previous load; only the newest generation may
// write to the controller.
type loader struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	state  State
}

func (l *loader) begin(ctx context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, l.cancel = context.WithCancel(ctx)
	l.state = StateLoading
	return ctx, l.gen
}

// update applies fn if gen is still the newest load.
func (l *loader) update(gen uint64, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	fn()
	return true
}

// finish applies fn and marks the controller ready if gen is still current.
func (l *loader) finish(gen uint64, fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	if fn != nil {
		fn()
	}
	l.state = StateReady
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	return true
}

// read runs fn under the controller lock.
func (l *loader) read(fn func(state State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.state)
}

func (l *loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Close cancels any in-flight load.
func (l *loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
