package render

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/status"
	"github.com/lixenwraith/vi-boids/vmath"
)

// SessionSource exposes the current game session, nil outside game mode
type SessionSource interface {
	Session() *engine.GameSession
}

// MuteSource reports the audio mute flag
type MuteSource interface {
	IsMuted() bool
}

// TerminalConfig wires a Terminal presenter
type TerminalConfig struct {
	Screen     tcell.Screen
	Mode       component.Mode
	Palette    Palette
	Projection Projection // nil selects a stretch projection
	Sessions   SessionSource
	Audio      MuteSource
	Clock      *engine.PausableClock
	Status     *status.Registry
	Logger     *zap.Logger
	CellAspect float32
	ArenaSize  float32
	Preset     string
}

// Terminal draws frames, the HUD and the leaderboard to a tcell screen
// OnFrame runs on the tick goroutine; Redraw may run from the input loop
type Terminal struct {
	mu sync.Mutex

	screen     tcell.Screen
	mode       component.Mode
	palette    Palette
	proj       Projection
	sessions   SessionSource
	audio      MuteSource
	clock      *engine.PausableClock
	logger     *zap.Logger
	cellAspect float32
	arenaSize  float32
	preset     string

	raster        *Raster
	width, height int
	lastTick      uint64
	frames        atomic.Int64

	bar *StatusBar
}

// NewTerminal creates a presenter sized to the screen
func NewTerminal(cfg TerminalConfig) *Terminal {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}
	if cfg.CellAspect <= 0 {
		cfg.CellAspect = parameter.CellAspect
	}
	if cfg.Palette.Name == "" {
		cfg.Palette = Palettes[parameter.DefaultPalette]
	}
	if cfg.ArenaSize <= 0 {
		cfg.ArenaSize = parameter.DefaultArenaSize
	}
	t := &Terminal{
		screen:     cfg.Screen,
		mode:       cfg.Mode,
		palette:    cfg.Palette,
		proj:       cfg.Projection,
		sessions:   cfg.Sessions,
		audio:      cfg.Audio,
		clock:      cfg.Clock,
		logger:     cfg.Logger.Named("render"),
		cellAspect: cfg.CellAspect,
		arenaSize:  cfg.ArenaSize,
		preset:     cfg.Preset,
		raster:     NewRaster(0, 0),
		bar:        NewStatusBar(cfg.Status),
	}
	if t.proj == nil {
		t.proj = NewStretchProjection(0, 0)
	}
	t.Resize()
	return t
}

// Resize picks up the screen size and propagates it to the projection
// The bottom rows are reserved for the status bar
func (t *Terminal) Resize() (width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, h := t.screen.Size()
	t.width, t.height = w, h
	field := max(h-parameter.StatusBarRows, 0)
	t.raster.Resize(w, field)
	t.proj.SetViewport(w, field, t.cellAspect)
	return w, field
}

// SetPalette switches the simulation color theme
func (t *Terminal) SetPalette(p Palette) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.palette = p
}

// Palette returns the active color theme
func (t *Terminal) Palette() Palette {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.palette
}

// SetPreset changes the preset label of the status bar
func (t *Terminal) SetPreset(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.preset = name
}

// Frames returns the number of frames drawn
func (t *Terminal) Frames() int64 { return t.frames.Load() }

// OnFrame rasterizes the finished tick and presents it
func (t *Terminal) OnFrame(view engine.FrameView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.raster.Clear()
	now, fade := view.Params.Time, view.Params.ColorFadeDuration
	for i := range view.Agents {
		a := &view.Agents[i]
		var c RGB
		if view.Mode == component.ModeGame {
			c = AgentColor(a, now, fade)
		} else {
			c = t.palette.HeadingColor(a.Vel)
		}
		x, y := t.proj.WorldToScreen(a.Pos)
		t.raster.Plot(x, y, c, a.Vel)
	}
	t.lastTick = view.Tick
	t.present()
}

// Redraw presents the last frame again with a fresh HUD, used while paused
func (t *Terminal) Redraw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.present()
}

// present must be called with mu held
func (t *Terminal) present() {
	t.screen.Clear()

	var session *engine.GameSession
	if t.sessions != nil {
		session = t.sessions.Session()
	}
	paused := t.clock != nil && t.clock.IsPaused()

	if t.mode == component.ModeGame {
		t.drawArena()
	}
	switch {
	case paused:
		t.drawAgents(RGB.Grayscale)
	case session != nil && session.Outcome().Terminal():
		t.drawAgents(func(c RGB) RGB { return c.Scale(parameter.DimFactor) })
	default:
		t.drawAgents(nil)
	}
	if session != nil {
		t.drawLeaderboard(session)
		t.drawOutcome(session.Outcome())
	}
	if paused {
		t.drawCentered(t.raster.height/2-2, parameter.PausedStr, tcell.StyleDefault.Reverse(true))
	}

	muted := t.audio != nil && t.audio.IsMuted()
	t.bar.Draw(t.screen, t.height-1, t.width, StatusInfo{
		Mode:    t.mode,
		Preset:  t.preset,
		Palette: t.palette.Name,
		Tick:    t.lastTick,
		Paused:  paused,
		Muted:   muted,
		Session: session,
	})

	t.screen.Show()
	t.frames.Add(1)
}

// drawAgents copies the raster to the screen, tint adjusts every cell color when set
func (t *Terminal) drawAgents(tint func(RGB) RGB) {
	w, h := t.raster.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ch, c, ok := t.raster.At(x, y)
			if !ok {
				continue
			}
			if tint != nil {
				c = tint(c)
			}
			t.screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(c.Tcell()))
		}
	}
}

// drawArena outlines the arena walls in game mode, clipped to the field
func (t *Terminal) drawArena() {
	a := t.arenaSize
	lx, ty := t.proj.WorldToScreen(vmath.Vec2{X: -a, Y: a})
	rx, by := t.proj.WorldToScreen(vmath.Vec2{X: a, Y: -a})
	left, right := int(lx), int(rx)
	top, bottom := int(ty), int(by)
	w, h := t.raster.Size()
	style := tcell.StyleDefault.Foreground(BorderColor.Tcell())

	inField := func(x, y int) bool { return x >= 0 && y >= 0 && x < w && y < h }
	for x := max(left, 0); x <= min(right, w-1); x++ {
		if inField(x, top) {
			t.screen.SetContent(x, top, '─', nil, style)
		}
		if inField(x, bottom) {
			t.screen.SetContent(x, bottom, '─', nil, style)
		}
	}
	for y := max(top, 0); y <= min(bottom, h-1); y++ {
		if inField(left, y) {
			t.screen.SetContent(left, y, '│', nil, style)
		}
		if inField(right, y) {
			t.screen.SetContent(right, y, '│', nil, style)
		}
	}
	corners := []struct {
		x, y int
		ch   rune
	}{{left, top, '┌'}, {right, top, '┐'}, {left, bottom, '└'}, {right, bottom, '┘'}}
	for _, c := range corners {
		if inField(c.x, c.y) {
			t.screen.SetContent(c.x, c.y, c.ch, nil, style)
		}
	}
}

func (t *Terminal) drawLeaderboard(session *engine.GameSession) {
	board := session.Leaderboard()
	x := t.width - parameter.LeaderboardWidth
	if x < 0 {
		return
	}
	for i, f := range board {
		if i >= parameter.LeaderboardRows || i >= t.raster.height {
			break
		}
		style := tcell.StyleDefault.Foreground(PackColor(f.ID).Tcell())
		if f.ID == component.PackPlayer {
			style = style.Bold(true)
		}
		line := fmt.Sprintf("%d. %-8.8s %5d", i+1, f.Name, f.Count)
		drawText(t.screen, x, i, line, style)
	}
}

func (t *Terminal) drawOutcome(o engine.Outcome) {
	var text string
	var c RGB
	switch o {
	case engine.OutcomeVictory:
		text, c = parameter.VictoryText, PlayerColor
	case engine.OutcomeDefeat:
		text, c = parameter.DefeatText, RivalColor
	default:
		return
	}
	t.drawCentered(t.raster.height/2, text, tcell.StyleDefault.Background(c.Tcell()).Foreground(tcell.ColorBlack).Bold(true))
}

func (t *Terminal) drawCentered(y int, text string, style tcell.Style) {
	if y < 0 || y >= t.height {
		return
	}
	x := max((t.width-len([]rune(text)))/2, 0)
	drawText(t.screen, x, y, text, style)
}

// drawText writes a single line, clipped at the screen edge
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

var _ engine.FrameSink = (*Terminal)(nil)
