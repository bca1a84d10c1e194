package component

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-boids/vmath"
)

// Mode selects the kernel variant and buffer layout
type Mode uint8

const (
	ModeSimulation Mode = iota
	ModeGame
)

func (m Mode) String() string {
	switch m {
	case ModeSimulation:
		return "simulation"
	case ModeGame:
		return "game"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode resolves a mode name from flags or config
func ParseMode(s string) (Mode, error) {
	switch s {
	case "simulation", "sim", "":
		return ModeSimulation, nil
	case "game":
		return ModeGame, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Per-agent float counts of the kernel-facing layout
// Simulation: pos.xy vel.xy
// Game:       pos.xy vel.xy packId captureTime prevPackId pad
const (
	StrideSimulation = 4
	StrideGame       = 8
)

// Float offsets inside one game-mode record
const (
	offsetPosX = iota
	offsetPosY
	offsetVelX
	offsetVelY
	offsetPack
	offsetCaptureTime
	offsetPrevPack
)

// Stride returns floats per agent for the mode
func (m Mode) Stride() int {
	if m == ModeGame {
		return StrideGame
	}
	return StrideSimulation
}

// EncodeAgents writes agents into a freshly allocated float buffer in the mode's layout
func EncodeAgents(m Mode, agents []Agent) []float32 {
	stride := m.Stride()
	data := make([]float32, len(agents)*stride)
	for i := range agents {
		EncodeAgent(m, data[i*stride:(i+1)*stride], &agents[i])
	}
	return data
}

// EncodeAgent writes one record, dst must hold at least one stride
func EncodeAgent(m Mode, dst []float32, a *Agent) {
	dst[offsetPosX] = a.Pos.X
	dst[offsetPosY] = a.Pos.Y
	dst[offsetVelX] = a.Vel.X
	dst[offsetVelY] = a.Vel.Y
	if m != ModeGame {
		return
	}
	dst[offsetPack] = float32(a.Pack)
	dst[offsetCaptureTime] = a.CaptureTime
	dst[offsetPrevPack] = float32(a.PrevPack)
	dst[offsetPrevPack+1] = 0
}

// DecodeAgents parses a float buffer; length must be a whole number of records
func DecodeAgents(m Mode, data []float32) ([]Agent, error) {
	stride := m.Stride()
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("buffer length %d is not a multiple of stride %d", len(data), stride)
	}
	agents := make([]Agent, len(data)/stride)
	for i := range agents {
		DecodeAgent(m, data[i*stride:(i+1)*stride], &agents[i])
	}
	return agents, nil
}

// DecodeAgent reads one record into dst
func DecodeAgent(m Mode, src []float32, dst *Agent) {
	dst.Pos = vmath.Vec2{X: src[offsetPosX], Y: src[offsetPosY]}
	dst.Vel = vmath.Vec2{X: src[offsetVelX], Y: src[offsetVelY]}
	if m != ModeGame {
		dst.Pack, dst.CaptureTime, dst.PrevPack = 0, 0, 0
		return
	}
	dst.Pack = packFromFloat(src[offsetPack])
	dst.CaptureTime = src[offsetCaptureTime]
	dst.PrevPack = packFromFloat(src[offsetPrevPack])
}

// packFromFloat rounds the f32 tag back to its integer id, garbage maps to food
func packFromFloat(f float32) PackID {
	if !vmath.IsFinite(f) || f < 0 || f > math.MaxUint16 {
		return PackFood
	}
	return PackID(math.Round(float64(f)))
}
