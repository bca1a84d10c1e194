package component

import (
	"github.com/lixenwraith/vi-boids/vmath"
)

// PackID tags pack membership, stored as f32 only at the buffer boundary
type PackID uint16

const (
	// PackPlayer is the pack steered by input
	PackPlayer PackID = 0
	// PackFood is the neutral pack that other packs capture to grow
	PackFood PackID = 1
	// PackFirstRival is the lowest id assigned to AI packs
	PackFirstRival PackID = 2
)

// IsFood reports whether the pack is the neutral food pack
func (p PackID) IsFood() bool { return p == PackFood }

// IsCompetitor reports whether the pack can capture and be consumed
func (p PackID) IsCompetitor() bool { return p != PackFood }

// Agent is one boid, food unit or rival unit
type Agent struct {
	Pos vmath.Vec2
	Vel vmath.Vec2

	// Game mode fields, zero in simulation mode
	Pack        PackID
	CaptureTime float32 // Simulation seconds at the last pack change, 0 for original members
	PrevPack    PackID  // Pack before the last capture, drives the color fade
}

// Captured reports whether the agent changed pack at least once
func (a *Agent) Captured() bool { return a.CaptureTime > 0 }

// Reassign moves the agent to pack at simulation time now, keeping the previous pack for the fade
func (a *Agent) Reassign(pack PackID, now float32) {
	a.PrevPack = a.Pack
	a.Pack = pack
	a.CaptureTime = now
}
