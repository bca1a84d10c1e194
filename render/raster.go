package render

import (
	"github.com/lixenwraith/vi-boids/parameter"
	"github.com/lixenwraith/vi-boids/vmath"
)

// Projection maps world space to fractional cell coordinates and back
type Projection interface {
	WorldToScreen(p vmath.Vec2) (x, y float32)
	ScreenToWorld(x, y float32) vmath.Vec2
	SetViewport(width, height int, cellAspect float32)
}

// StretchProjection maps the [-1,1] world square onto the whole viewport
// Simulation mode has no camera and draws in clip space directly
type StretchProjection struct {
	width, height float32
}

// NewStretchProjection creates a projection for a width x height viewport
func NewStretchProjection(width, height int) *StretchProjection {
	p := &StretchProjection{}
	p.SetViewport(width, height, 1)
	return p
}

func (p *StretchProjection) SetViewport(width, height int, _ float32) {
	p.width, p.height = float32(width), float32(height)
}

func (p *StretchProjection) WorldToScreen(w vmath.Vec2) (x, y float32) {
	return (w.X + 1) / 2 * p.width, (1 - w.Y) / 2 * p.height
}

func (p *StretchProjection) ScreenToWorld(x, y float32) vmath.Vec2 {
	if p.width == 0 || p.height == 0 {
		return vmath.Zero2
	}
	return vmath.Vec2{X: x/p.width*2 - 1, Y: 1 - y/p.height*2}
}

// rasterCell accumulates the agents landing in one terminal cell
type rasterCell struct {
	count   int
	r, g, b int
	heading vmath.Vec2
}

// Raster bins agents into terminal cells, averaging their colors
type Raster struct {
	width, height int
	cells         []rasterCell
}

// NewRaster creates an empty raster
func NewRaster(width, height int) *Raster {
	r := &Raster{}
	r.Resize(width, height)
	return r
}

// Resize reallocates when the cell count changes and clears
func (r *Raster) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r.width, r.height = width, height
	if cap(r.cells) < width*height {
		r.cells = make([]rasterCell, width*height)
		return
	}
	r.cells = r.cells[:width*height]
	r.Clear()
}

// Size returns the raster dimensions in cells
func (r *Raster) Size() (int, int) { return r.width, r.height }

// Clear empties every cell
func (r *Raster) Clear() {
	clear(r.cells)
}

// Plot adds one agent at fractional cell coordinates, points off the raster are dropped
func (r *Raster) Plot(x, y float32, c RGB, vel vmath.Vec2) bool {
	if !vmath.IsFinite(x) || !vmath.IsFinite(y) || x < 0 || y < 0 {
		return false
	}
	cx, cy := int(x), int(y)
	if cx >= r.width || cy >= r.height {
		return false
	}
	cell := &r.cells[cy*r.width+cx]
	cell.count++
	cell.r += int(c.R)
	cell.g += int(c.G)
	cell.b += int(c.B)
	cell.heading = vmath.V2Add(cell.heading, vel)
	return true
}

// At returns the glyph and color of a cell, ok is false for empty cells
func (r *Raster) At(x, y int) (ch rune, c RGB, ok bool) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0, RGB{}, false
	}
	cell := &r.cells[y*r.width+x]
	if cell.count == 0 {
		return 0, RGB{}, false
	}
	n := cell.count
	c = RGB{R: uint8(cell.r / n), G: uint8(cell.g / n), B: uint8(cell.b / n)}
	switch {
	case n >= parameter.DenseCellCount:
		return '●', c, true
	case n > 1:
		return '•', c, true
	default:
		return ArrowGlyph(cell.heading), c, true
	}
}

// Count returns the agents binned into a cell
func (r *Raster) Count(x, y int) int {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return 0
	}
	return r.cells[y*r.width+x].count
}

var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// ArrowGlyph picks the eight-way arrow closest to a world velocity, world y up
func ArrowGlyph(vel vmath.Vec2) rune {
	if vel.X == 0 && vel.Y == 0 {
		return '•'
	}
	a := vmath.Atan2(vel.Y, vel.X) // (-pi, pi]
	octant := int((a/(2*3.14159265)*8)+8.5) % 8
	return arrows[octant]
}
