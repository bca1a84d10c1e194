package main

import (
	"context"
	"flag"
	"io"
	"os"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/config"
	"github.com/lixenwraith/vi-boids/input"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/status"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(100, 30)
	t.Cleanup(s.Fini)
	return s
}

func testConfig(t *testing.T, mode component.Mode) *config.Config {
	t.Helper()
	t.Setenv("VI_BOIDS_AUDIO_ENABLED", "false")
	cfg := config.Default()
	cfg.Mode = mode.String()
	cfg.AgentCount = 200
	cfg.Seed = 7
	cfg.Audio.Enabled = false
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestApp(t *testing.T, mode component.Mode) *app {
	t.Helper()
	a, err := newApp(testConfig(t, mode), newScreen(t), zaptest.NewLogger(t), status.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(a.stop)
	return a
}

func TestParseFlagsOverridesConfig(t *testing.T) {
	fs := flag.NewFlagSet("vi-boids", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts, err := parseFlags(fs, []string{"-mode", "game", "-preset", "blobs", "-count", "500", "-palette", "jeans", "-mute"})
	require.NoError(t, err)
	assert.True(t, opts.mute)
	assert.Equal(t, "auto", opts.color)

	cfg := config.Default()
	require.NoError(t, opts.apply(cfg))
	assert.Equal(t, component.ModeGame, cfg.ModeValue())
	assert.Equal(t, "blobs", cfg.Preset)
	assert.Equal(t, 500, cfg.AgentCount)
	assert.Equal(t, "jeans", cfg.Palette)
}

func TestFlagsLeaveConfigWhenUnset(t *testing.T) {
	fs := flag.NewFlagSet("vi-boids", flag.ContinueOnError)
	opts, err := parseFlags(fs, nil)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Preset = "nanites"
	require.NoError(t, opts.apply(cfg))
	assert.Equal(t, "nanites", cfg.Preset)
	assert.Equal(t, parameter.DefaultAgentCount, cfg.AgentCount)
}

func TestFlagsRejectInvalidMode(t *testing.T) {
	fs := flag.NewFlagSet("vi-boids", flag.ContinueOnError)
	opts, err := parseFlags(fs, []string{"-mode", "arcade"})
	require.NoError(t, err)
	assert.Error(t, opts.apply(config.Default()))
}

func TestFlagsRejectOversizedCount(t *testing.T) {
	fs := flag.NewFlagSet("vi-boids", flag.ContinueOnError)
	opts, err := parseFlags(fs, []string{"-count", "10000000"})
	require.NoError(t, err)
	err = opts.apply(config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agent_count")
}

func TestApplyColorMode(t *testing.T) {
	t.Setenv("COLORTERM", "")
	t.Setenv("TCELL_TRUECOLOR", "")

	require.NoError(t, applyColorMode("auto"))
	require.NoError(t, applyColorMode("truecolor"))
	assert.Equal(t, "truecolor", os.Getenv("COLORTERM"))
	require.NoError(t, applyColorMode("256"))
	assert.Equal(t, "disable", os.Getenv("TCELL_TRUECOLOR"))
	assert.Error(t, applyColorMode("16"))
}

func TestNewAppRejectsUnknownPalette(t *testing.T) {
	cfg := testConfig(t, component.ModeSimulation)
	cfg.Palette = "sepia"
	_, err := newApp(cfg, newScreen(t), zaptest.NewLogger(t), status.NewRegistry())
	assert.Error(t, err)
}

func TestNewAppRejectsBadKeyBinding(t *testing.T) {
	cfg := testConfig(t, component.ModeSimulation)
	cfg.Keys = map[string]string{"x": "jump"}
	_, err := newApp(cfg, newScreen(t), zaptest.NewLogger(t), status.NewRegistry())
	assert.Error(t, err)
}

func TestSimulationDispatch(t *testing.T) {
	a := newTestApp(t, component.ModeSimulation)
	require.Nil(t, a.game)
	assert.Equal(t, 200, a.sim.Count())

	assert.False(t, a.dispatch(input.Intent{Type: input.IntentPause}))
	assert.True(t, a.sim.Clock().IsPaused())
	a.dispatch(input.Intent{Type: input.IntentPause})
	assert.False(t, a.sim.Clock().IsPaused())

	a.dispatch(input.Intent{Type: input.IntentToggleMute})
	assert.True(t, a.sound.IsMuted())

	before := a.term.Palette().Name
	a.dispatch(input.Intent{Type: input.IntentNextPalette})
	assert.NotEqual(t, before, a.term.Palette().Name)

	gen := a.sim.Generation()
	a.dispatch(input.Intent{Type: input.IntentRestart})
	assert.Greater(t, a.sim.Generation(), gen)
	assert.Equal(t, 200, a.sim.Count())

	assert.True(t, a.dispatch(input.Intent{Type: input.IntentQuit}))
}

func TestSimulationPresetCycle(t *testing.T) {
	a := newTestApp(t, component.ModeSimulation)
	names := parameter.PresetNames()
	require.Equal(t, "default", a.currentPreset())

	a.dispatch(input.Intent{Type: input.IntentNextPreset})
	next := a.currentPreset()
	assert.NotEqual(t, "default", next)
	assert.Contains(t, names, next)
	assert.Equal(t, parameter.Presets[next], a.sim.Parameters().FlockingParams)
}

func TestApplyReloadAdoptsFilePreset(t *testing.T) {
	a := newTestApp(t, component.ModeSimulation)

	reloaded := config.Default()
	reloaded.Mode = component.ModeGame.String()
	reloaded.Preset = "particles"
	require.NoError(t, a.applyReload(reloaded))

	assert.Equal(t, "particles", a.currentPreset())
	assert.Equal(t, parameter.Presets["particles"], a.sim.Parameters().FlockingParams)
	assert.Equal(t, component.ModeSimulation.String(), reloaded.Mode)
}

func TestGameRestartStartsNewSession(t *testing.T) {
	a := newTestApp(t, component.ModeGame)
	require.NotNil(t, a.game)
	require.NotNil(t, a.camera)

	first := a.game.Session()
	require.NotNil(t, first)

	a.dispatch(input.Intent{Type: input.IntentRestart})
	second := a.game.Session()
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)

	// Presets belong to simulation mode
	flocking := a.sim.Parameters().FlockingParams
	a.dispatch(input.Intent{Type: input.IntentNextPreset})
	assert.Equal(t, flocking, a.sim.Parameters().FlockingParams)
}

func TestGamePointerSteersPlayer(t *testing.T) {
	a := newTestApp(t, component.ModeGame)

	intent := a.handler.Handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	assert.Equal(t, input.IntentPointer, intent.Type)
	assert.False(t, a.dispatch(intent))

	params := a.sim.Parameters()
	assert.True(t, params.InputActive)
	assert.Equal(t, a.camera.ScreenToWorld(10.5, 5.5), params.Target)
}

func TestRunQuitsOnKey(t *testing.T) {
	a := newTestApp(t, component.ModeSimulation)
	require.NoError(t, a.start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, a.screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	require.NoError(t, a.run(ctx))
	assert.NoError(t, ctx.Err(), "run should return on quit, not on timeout")
}
