package scanner

import (
	"context"
	"sync"
)

// Pauser is a cooperative pause gate checked by workers before each request.
// A nil *Pauser never blocks.
type Pauser struct {
	mu     sync.Mutex
	paused bool
	resume chan struct{} // closed when the current pause ends
}

// NewPauser creates a Pauser in the running state.
func NewPauser() *Pauser {
	return &Pauser{}
}

// Wait blocks while the gate is paused or until ctx is done.
func (p *Pauser) Wait(ctx context.Context) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if !p.paused {
		p.mu.Unlock()
		return
	}
	ch := p.resume
	p.mu.Unlock()

	select {
	case <-ch:
	case <-ctx.Done():
	}
}

// Toggle flips between paused and running and returns true if now paused.
func (p *Pauser) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		p.paused = false
		close(p.resume)
	} else {
		p.paused = true
		p.resume = make(chan struct{})
	}
	return p.paused
}
