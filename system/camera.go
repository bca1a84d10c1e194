package system

import (
	"sync"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/vmath"
)

// PlayerSource reports the last known player pack centroid and size
type PlayerSource interface {
	LastPlayer() (centroid vmath.Vec2, count int, ok bool)
}

// ParamSetter publishes camera state into the simulation parameters
type ParamSetter interface {
	SetParameters(update func(p *component.SimParams)) error
}

// CameraTuning controls follow smoothing and size-dependent zoom
type CameraTuning struct {
	Smoothing    float32 `yaml:"smoothing"`
	BaseZoom     float32 `yaml:"base_zoom"`
	MinZoom      float32 `yaml:"min_zoom"`
	ZoomExponent float32 `yaml:"zoom_exponent"`
	InitialZoom  float32 `yaml:"initial_zoom"`
	Enabled      bool    `yaml:"enabled"`
}

// DefaultCameraTuning returns the compiled-in tuning
func DefaultCameraTuning() CameraTuning {
	return CameraTuning{
		Smoothing:    parameter.CameraSmoothing,
		BaseZoom:     parameter.CameraBaseZoom,
		MinZoom:      parameter.CameraMinZoom,
		ZoomExponent: parameter.CameraZoomExponent,
		InitialZoom:  parameter.CameraInitialZoom,
		Enabled:      parameter.CameraEnabled,
	}
}

// CameraState is the published focus and zoom
type CameraState struct {
	Focus vmath.Vec2
	Zoom  float32
}

// CameraController eases focus toward the player centroid and zoom toward a size-dependent target
// Owns the screen/world mapping, recomputed whenever focus, zoom or viewport changes
type CameraController struct {
	mu     sync.RWMutex
	tuning CameraTuning
	source PlayerSource
	state  CameraState

	// Viewport in cells; cellAspect is cell width over cell height
	width, height int
	cellAspect    float32
	aspect        float32

	// Derived mapping: screen = center + (world - focus) * scale, y flipped
	scaleX, scaleY float32
}

// NewCameraController creates a camera at the origin with the initial zoom
func NewCameraController(tuning CameraTuning, source PlayerSource) *CameraController {
	c := &CameraController{
		tuning:     tuning,
		source:     source,
		state:      CameraState{Zoom: tuning.InitialZoom},
		cellAspect: 1,
		aspect:     1,
	}
	c.recompute()
	return c
}

// TargetZoom is max(minZoom, baseZoom / size^exponent)
func (c *CameraController) TargetZoom(size int) float32 {
	if size < 1 {
		size = 1
	}
	z := c.tuning.BaseZoom / vmath.Pow(float32(size), c.tuning.ZoomExponent)
	if z < c.tuning.MinZoom || !vmath.IsFinite(z) {
		return c.tuning.MinZoom
	}
	return z
}

// Step advances one frame of smoothing and returns the new state
// Without a player observation the camera holds still
func (c *CameraController) Step() CameraState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tuning.Enabled || c.source == nil {
		return c.state
	}
	center, count, ok := c.source.LastPlayer()
	if !ok {
		return c.state
	}

	s := c.tuning.Smoothing
	c.state.Focus = vmath.V2Lerp(c.state.Focus, center, s)
	c.state.Zoom += (c.TargetZoom(count) - c.state.Zoom) * s
	c.recompute()
	return c.state
}

// State returns the current focus and zoom
func (c *CameraController) State() CameraState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Reset recenters on the origin with the initial zoom
func (c *CameraController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = CameraState{Zoom: c.tuning.InitialZoom}
	c.recompute()
}

// SetViewport updates the screen size in cells and the cell shape
func (c *CameraController) SetViewport(width, height int, cellAspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
	if cellAspect > 0 {
		c.cellAspect = cellAspect
	}
	c.recompute()
}

// AspectRatio is the viewport width over height in pixel space
func (c *CameraController) AspectRatio() float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.aspect
}

// recompute must be called with mu held
func (c *CameraController) recompute() {
	c.aspect = 1
	if c.height > 0 && c.width > 0 {
		c.aspect = float32(c.width) * c.cellAspect / float32(c.height)
	}
	// Clip space: x = (world - focus) * zoom / aspect, y = (world - focus) * zoom
	c.scaleX = c.state.Zoom / c.aspect * float32(c.width) / 2
	c.scaleY = c.state.Zoom * float32(c.height) / 2
}

// WorldToScreen maps a world point to fractional cell coordinates
func (c *CameraController) WorldToScreen(p vmath.Vec2) (x, y float32) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	x = float32(c.width)/2 + (p.X-c.state.Focus.X)*c.scaleX
	y = float32(c.height)/2 - (p.Y-c.state.Focus.Y)*c.scaleY
	return x, y
}

// ScreenToWorld maps fractional cell coordinates back to world space
// A degenerate viewport maps everything to the focus
func (c *CameraController) ScreenToWorld(x, y float32) vmath.Vec2 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.scaleX == 0 || c.scaleY == 0 {
		return c.state.Focus
	}
	return vmath.Vec2{
		X: c.state.Focus.X + (x-float32(c.width)/2)/c.scaleX,
		Y: c.state.Focus.Y - (y-float32(c.height)/2)/c.scaleY,
	}
}

// Publish writes focus, zoom and aspect into the parameter block
func (c *CameraController) Publish(target ParamSetter) error {
	state := c.State()
	aspect := c.AspectRatio()
	return target.SetParameters(func(p *component.SimParams) {
		p.CameraPos = state.Focus
		p.CameraZoom = state.Zoom
		p.AspectRatio = aspect
	})
}

// Attach steps and publishes the camera after every simulation tick
func (c *CameraController) Attach(sim *engine.Simulator) {
	sim.AddTickHook(func(uint64) {
		c.Step()
		_ = c.Publish(sim)
	})
}
