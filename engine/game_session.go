package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/vmath"
)

// Outcome is the terminal state of a game session
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Terminal reports whether o ends capture processing
func (o Outcome) Terminal() bool {
	return o != OutcomeNone
}

// SessionStats accumulates game events over a session
type SessionStats struct {
	Passes       int
	Commits      int
	Captures     int
	Consumptions int
	Spawned      int
}

// GameSession owns all per-run game state and is passed explicitly to game logic
// The game loop is the only writer of the roster; camera and presenter read copies
type GameSession struct {
	ID   uuid.UUID
	Mode component.Mode

	mu         sync.RWMutex
	roster     *component.Roster
	outcome    Outcome
	multiFlock bool // Started with competing packs, enables victory
	stats      SessionStats

	// Last observed player pack, feeds the camera between passes
	playerCentroid vmath.Vec2
	playerCount    int
	observed       bool

	rng *vmath.FastRand // Game loop goroutine only
}

// NewGameSession creates a session over an initial roster
func NewGameSession(mode component.Mode, roster *component.Roster, seed uint64) *GameSession {
	if roster == nil {
		roster = component.NewRoster()
	}
	return &GameSession{
		ID:         uuid.New(),
		Mode:       mode,
		roster:     roster,
		multiFlock: roster.Competitors() > 1,
		rng:        vmath.NewFastRand(seed),
	}
}

// Rand returns the session random source, not safe for concurrent use
func (gs *GameSession) Rand() *vmath.FastRand {
	return gs.rng
}

// MultiFlock reports whether the session started with rivals
func (gs *GameSession) MultiFlock() bool {
	return gs.multiFlock
}

// CloneRoster returns a private roster copy for one game pass
func (gs *GameSession) CloneRoster() *component.Roster {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return component.NewRoster(gs.roster.Snapshot()...)
}

// PublishRoster replaces the roster with the result of a pass
func (gs *GameSession) PublishRoster(r *component.Roster) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.roster = r
}

// Roster returns the flocks in pack id order
func (gs *GameSession) Roster() []component.Flock {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.roster.Snapshot()
}

// Leaderboard returns non-food flocks by descending count
func (gs *GameSession) Leaderboard() []component.Flock {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.roster.Leaderboard()
}

// Outcome returns the terminal state, OutcomeNone while playing
func (gs *GameSession) Outcome() Outcome {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.outcome
}

// Resolve records a terminal outcome, true only for the first call
func (gs *GameSession) Resolve(o Outcome) bool {
	if !o.Terminal() {
		return false
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if gs.outcome.Terminal() {
		return false
	}
	gs.outcome = o
	return true
}

// Observe stores the player pack centroid and size seen by the last pass
func (gs *GameSession) Observe(centroid vmath.Vec2, count int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.playerCount = count
	if count > 0 {
		gs.playerCentroid = centroid
		gs.observed = true
	}
}

// LastPlayer returns the last known player centroid and size
// ok is false until a pass has seen at least one player agent
func (gs *GameSession) LastPlayer() (centroid vmath.Vec2, count int, ok bool) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.playerCentroid, gs.playerCount, gs.observed
}

// Record adds one pass worth of events
func (gs *GameSession) Record(captures, consumptions, spawned int, committed bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.stats.Passes++
	gs.stats.Captures += captures
	gs.stats.Consumptions += consumptions
	gs.stats.Spawned += spawned
	if committed {
		gs.stats.Commits++
	}
}

// Stats returns accumulated counters
func (gs *GameSession) Stats() SessionStats {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.stats
}
