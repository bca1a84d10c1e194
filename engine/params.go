package engine

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/vi-boids/component"
)

// ParamBlock publishes SimParams as immutable whole values
// Readers load a pointer lock-free; writers copy, mutate and swap under mu
type ParamBlock struct {
	mu  sync.Mutex
	cur atomic.Pointer[component.SimParams]
}

// NewParamBlock creates a block holding initial
func NewParamBlock(initial component.SimParams) *ParamBlock {
	b := &ParamBlock{}
	b.cur.Store(&initial)
	return b
}

// Load returns the current value; the pointee is never mutated after publish
func (b *ParamBlock) Load() *component.SimParams {
	return b.cur.Load()
}

// Update applies fn to a private copy and publishes it, returning old and new values
// Nothing is published when fn fails
func (b *ParamBlock) Update(fn func(p *component.SimParams) error) (prev, next component.SimParams, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev = *b.cur.Load()
	next = prev
	if err = fn(&next); err != nil {
		return prev, prev, err
	}
	published := next
	b.cur.Store(&published)
	return prev, next, nil
}
