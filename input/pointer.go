package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/vmath"
)

// ScreenMapper converts fractional cell coordinates to world space
type ScreenMapper interface {
	ScreenToWorld(x, y float32) vmath.Vec2
}

// ParamSetter receives the pointer target
type ParamSetter interface {
	SetParameters(update func(p *component.SimParams)) error
}

// TickSource runs hooks after every simulation tick
type TickSource interface {
	ParamSetter
	AddTickHook(hook engine.TickHook)
}

// Pointer turns mouse events into the world-space input target
// While the button is held the target follows the last cell through camera moves
type Pointer struct {
	mu     sync.Mutex
	mapper ScreenMapper
	target ParamSetter

	held   bool
	x, y   int
	world  vmath.Vec2
	events int
}

// NewPointer creates a pointer publishing into target through mapper
func NewPointer(mapper ScreenMapper, target ParamSetter) *Pointer {
	return &Pointer{mapper: mapper, target: target}
}

// Handle records a mouse event and publishes the target and input-active flag
func (p *Pointer) Handle(ev *tcell.EventMouse) (Intent, error) {
	x, y := ev.Position()
	held := ev.Buttons()&tcell.Button1 != 0

	p.mu.Lock()
	defer p.mu.Unlock()
	p.x, p.y, p.held = x, y, held
	p.events++

	return Intent{Type: IntentPointer, X: x, Y: y, Held: held}, p.publish()
}

// Refresh re-projects a held pointer, the camera may have moved under it
func (p *Pointer) Refresh() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.held {
		return nil
	}
	return p.publish()
}

// Attach refreshes the pointer after every tick
func (p *Pointer) Attach(src TickSource) {
	src.AddTickHook(func(uint64) { _ = p.Refresh() })
}

// Held reports whether the button is down
func (p *Pointer) Held() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held
}

// Target returns the last published world target
func (p *Pointer) Target() vmath.Vec2 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.world
}

// Events returns the number of mouse events handled
func (p *Pointer) Events() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events
}

// publish maps the cell center to world space; a released button keeps the last target
// Called with mu held so publishes land in the order events were recorded
func (p *Pointer) publish() error {
	if p.held {
		p.world = p.mapper.ScreenToWorld(float32(p.x)+0.5, float32(p.y)+0.5)
	}
	world, held := p.world, p.held
	return p.target.SetParameters(func(sp *component.SimParams) {
		sp.Target = world
		sp.InputActive = held
	})
}
