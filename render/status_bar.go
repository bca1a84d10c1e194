package render

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/status"
)

// Status bar colors
var (
	RgbStatusBar    = RGB{R: 26, G: 27, B: 38}
	RgbStatusText   = RGB{R: 200, G: 200, B: 200}
	RgbModeSimBg    = RGB{R: 135, G: 206, B: 250}
	RgbModeGameBg   = RGB{R: 144, G: 238, B: 144}
	RgbPausedBg     = RGB{R: 255, G: 165, B: 0}
	RgbTickFailures = RGB{R: 200, G: 50, B: 50}
)

// StatusInfo is the per-frame state the status bar shows besides metrics
type StatusInfo struct {
	Mode    component.Mode
	Preset  string
	Palette string
	Tick    uint64
	Paused  bool
	Muted   bool
	Session *engine.GameSession
}

// StatusBar draws the bottom row from cached registry metrics
type StatusBar struct {
	statAgents     *atomic.Int64
	statGeneration *atomic.Int64
	statFailures   *atomic.Int64
	statTickSecs   *status.AtomicFloat
}

// NewStatusBar caches the metric pointers it reads every frame
func NewStatusBar(reg *status.Registry) *StatusBar {
	return &StatusBar{
		statAgents:     reg.Ints.Get("sim.agents"),
		statGeneration: reg.Ints.Get("sim.generation"),
		statFailures:   reg.Ints.Get("engine.tick_failures"),
		statTickSecs:   reg.Floats.Get("engine.tick_seconds"),
	}
}

// Draw renders the bar on row y, returns the column after the last segment
func (b *StatusBar) Draw(s tcell.Screen, y, width int, info StatusInfo) int {
	if y < 0 {
		return 0
	}
	base := tcell.StyleDefault.Background(RgbStatusBar.Tcell()).Foreground(RgbStatusText.Tcell())
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, base)
	}

	x := 0
	if info.Muted {
		x = drawText(s, x, y, parameter.AudioMuted, base)
	} else {
		x = drawText(s, x, y, parameter.AudioStr, base)
	}

	modeBg := RgbModeSimBg
	if info.Mode == component.ModeGame {
		modeBg = RgbModeGameBg
	}
	x = drawText(s, x, y, " "+info.Mode.String()+" ", base.Background(modeBg.Tcell()).Foreground(tcell.ColorBlack))

	if info.Paused {
		x = drawText(s, x, y, parameter.PausedStr, base.Background(RgbPausedBg.Tcell()).Foreground(tcell.ColorBlack))
	}

	segment := func(text string) {
		x = drawText(s, x, y, " │ "+text, base)
	}

	if info.Mode == component.ModeGame && info.Session != nil {
		stats := info.Session.Stats()
		_, player, _ := info.Session.LastPlayer()
		segment(fmt.Sprintf("pack %d", player))
		segment(fmt.Sprintf("captured %d", stats.Captures))
		segment(fmt.Sprintf("absorbed %d", stats.Consumptions))
		segment(fmt.Sprintf("passes %d", stats.Passes))
	} else {
		segment(fmt.Sprintf("%s/%s", info.Preset, info.Palette))
	}
	segment(fmt.Sprintf("agents %d", b.statAgents.Load()))
	segment(fmt.Sprintf("tick %d", info.Tick))
	segment(fmt.Sprintf("gen %d", b.statGeneration.Load()))
	segment(fmt.Sprintf("%.1fms", b.statTickSecs.Get()*1000))

	if f := b.statFailures.Load(); f > 0 {
		x = drawText(s, x, y, fmt.Sprintf(" │ failures %d", f), base.Foreground(RgbTickFailures.Tcell()))
	}

	if hint := parameter.KeyHint; width-x > len(hint)+2 {
		drawText(s, width-len(hint)-1, y, hint, base)
	}
	return x
}
