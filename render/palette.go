package render

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/vmath"
)

// Palette shifts the per-channel phase of the heading color wheel
type Palette struct {
	Name  string
	Phase [3]float32
}

// Palettes are the simulation color themes
var Palettes = map[string]Palette{
	parameter.PalettePlumTree:  {Name: parameter.PalettePlumTree, Phase: [3]float32{1.0, 2.0, 1.0}},
	parameter.PaletteJeans:     {Name: parameter.PaletteJeans, Phase: [3]float32{2.0, 1.5, 1.0}},
	parameter.PaletteGreyscale: {Name: parameter.PaletteGreyscale, Phase: [3]float32{0, 0, 0}},
	parameter.PaletteHotCold:   {Name: parameter.PaletteHotCold, Phase: [3]float32{0, 3.14, 3.14}},
}

// PaletteByName resolves a palette, empty selects the default
func PaletteByName(name string) (Palette, error) {
	if name == "" {
		name = parameter.DefaultPalette
	}
	p, ok := Palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (have %v)", name, PaletteNames())
	}
	return p, nil
}

// PaletteNames returns palette names sorted
func PaletteNames() []string {
	names := make([]string, 0, len(Palettes))
	for name := range Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Next cycles to the following palette in name order
func (p Palette) Next() Palette {
	names := PaletteNames()
	for i, n := range names {
		if n == p.Name {
			return Palettes[names[(i+1)%len(names)]]
		}
	}
	return Palettes[names[0]]
}

// Heading returns the rotation a velocity points the agent glyph at
// Zero is straight up, counter-clockwise positive
func Heading(vel vmath.Vec2) float32 {
	return -vmath.Atan2(vel.X, vel.Y)
}

// HeadingColor is sin(heading + phase) * 0.45 + 0.45 per channel
func (p Palette) HeadingColor(vel vmath.Vec2) RGB {
	a := Heading(vel)
	return Unit(
		vmath.Sin(a+p.Phase[0])*0.45+0.45,
		vmath.Sin(a+p.Phase[1])*0.45+0.45,
		vmath.Sin(a+p.Phase[2])*0.45+0.45,
	)
}

// Pack colors of the game mode
var (
	PlayerColor = Unit(0.2, 0.8, 1.0)
	FoodColor   = Unit(1.0, 0.8, 0.2)
	RivalColor  = Unit(1.0, 0.3, 0.2)
	BorderColor = Unit(0.2, 0.5, 0.7)
)

// PackColor returns the settled color of a pack
func PackColor(pack component.PackID) RGB {
	switch {
	case pack == component.PackPlayer:
		return PlayerColor
	case pack.IsFood():
		return FoodColor
	default:
		return RivalColor
	}
}

// AgentColor blends from the previous pack color to the current one over fade seconds after capture
// Food never fades; agents with no capture time show their pack color
func AgentColor(a *component.Agent, now, fade float32) RGB {
	to := PackColor(a.Pack)
	if a.Pack.IsFood() || !a.Captured() {
		return to
	}
	from := PackColor(a.PrevPack)
	if fade <= 0 {
		return to
	}
	t := (now - a.CaptureTime) / fade
	return from.Blend(to, float64(vmath.Clamp(t, 0, 1)))
}
