package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-boids/vmath"
)

type fixedPlayer struct {
	center vmath.Vec2
	count  int
	ok     bool
}

func (f *fixedPlayer) LastPlayer() (vmath.Vec2, int, bool) { return f.center, f.count, f.ok }

func TestCamera_TargetZoom(t *testing.T) {
	c := NewCameraController(DefaultCameraTuning(), nil)
	assert.InDelta(t, 0.5, c.TargetZoom(1), 1e-6)
	assert.InDelta(t, 0.25, c.TargetZoom(16), 1e-6)
	assert.InDelta(t, 0.5, c.TargetZoom(0), 1e-6)
	assert.InDelta(t, 0.08, c.TargetZoom(1_000_000), 1e-6)
}

// Scenario D: exponential smoothing covers a tenth of the gap per step and never overshoots
func TestScenario_CameraSmoothing(t *testing.T) {
	tuning := DefaultCameraTuning()
	tuning.Smoothing = 0.1
	src := &fixedPlayer{center: vmath.V2(10, 0), count: 1, ok: true}
	c := NewCameraController(tuning, src)
	require.Equal(t, vmath.Zero2, c.State().Focus)

	state := c.Step()
	assert.InDelta(t, 1.0, state.Focus.X, 1e-6)
	assert.InDelta(t, 0.0, state.Focus.Y, 1e-6)

	prev := state.Focus.X
	for i := 0; i < 500; i++ {
		x := c.Step().Focus.X
		require.LessOrEqual(t, x, float32(10))
		require.GreaterOrEqual(t, x, prev)
		prev = x
	}
	assert.InDelta(t, 10.0, prev, 1e-3)
	assert.InDelta(t, c.TargetZoom(1), c.State().Zoom, 1e-3)
}

func TestCamera_HoldsWithoutObservation(t *testing.T) {
	src := &fixedPlayer{}
	c := NewCameraController(DefaultCameraTuning(), src)
	before := c.State()
	assert.Equal(t, before, c.Step())

	disabled := DefaultCameraTuning()
	disabled.Enabled = false
	d := NewCameraController(disabled, &fixedPlayer{center: vmath.V2(1, 1), count: 3, ok: true})
	assert.Equal(t, d.State(), d.Step())
}

func TestCamera_ScreenWorldMapping(t *testing.T) {
	tuning := DefaultCameraTuning()
	tuning.InitialZoom = 1
	c := NewCameraController(tuning, nil)
	c.SetViewport(80, 40, 0.5)
	assert.InDelta(t, 1.0, c.AspectRatio(), 1e-6)

	// Focus lands on the screen center
	x, y := c.WorldToScreen(vmath.Zero2)
	assert.InDelta(t, 40, x, 1e-4)
	assert.InDelta(t, 20, y, 1e-4)

	// World +Y is screen up
	_, yUp := c.WorldToScreen(vmath.V2(0, 0.5))
	assert.Less(t, yUp, float32(20))

	// Edges of clip space
	x, y = c.WorldToScreen(vmath.V2(1, -1))
	assert.InDelta(t, 80, x, 1e-4)
	assert.InDelta(t, 40, y, 1e-4)

	p := vmath.V2(0.3, -0.7)
	sx, sy := c.WorldToScreen(p)
	back := c.ScreenToWorld(sx, sy)
	assert.InDelta(t, p.X, back.X, 1e-5)
	assert.InDelta(t, p.Y, back.Y, 1e-5)
}

func TestCamera_MappingFollowsFocusAndZoom(t *testing.T) {
	tuning := DefaultCameraTuning()
	tuning.Smoothing = 1
	src := &fixedPlayer{center: vmath.V2(2, 2), count: 16, ok: true}
	c := NewCameraController(tuning, src)
	c.SetViewport(100, 50, 0.5)

	c.Step()
	x, y := c.WorldToScreen(vmath.V2(2, 2))
	assert.InDelta(t, 50, x, 1e-4)
	assert.InDelta(t, 25, y, 1e-4)
	assert.InDelta(t, 0.25, c.State().Zoom, 1e-6)

	c.Reset()
	assert.Equal(t, vmath.Zero2, c.State().Focus)
	assert.Equal(t, tuning.InitialZoom, c.State().Zoom)
}

func TestCamera_DegenerateViewport(t *testing.T) {
	c := NewCameraController(DefaultCameraTuning(), nil)
	assert.Equal(t, vmath.Zero2, c.ScreenToWorld(3, 4))
}
