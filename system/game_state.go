package system

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-boids/component"
	"github.com/lixenwraith/vi-boids/engine"
	"github.com/lixenwraith/vi-boids/status"
)

// Committer installs a mutated population, guarded by the snapshot generation
type Committer interface {
	CommitAgentData(generation uint64, count int, data []float32) (uint64, error)
}

// Report is the result of one game-logic pass
type Report struct {
	Tick       uint64
	Generation uint64 // Store generation after the pass

	Captures        []Event
	Consumptions    []Event
	Spawned         int
	CapacityReached bool
	Steered         int

	Committed bool
	Stale     bool // Commit skipped because the store was replaced after the snapshot

	Population int
	Outcome    engine.Outcome
	NewOutcome bool // Outcome was reached by this pass
	Roster     []component.Flock
}

// Mutated reports whether the pass changed any agent
func (r *Report) Mutated() bool {
	return len(r.Captures) > 0 || len(r.Consumptions) > 0 || r.Spawned > 0 || r.Steered > 0
}

// GameStateMachine runs classify, steer, capture, replenish, consume and commit over one snapshot
type GameStateMachine struct {
	rules  GameRules
	ai     AIRules
	logger *zap.Logger

	statPasses       *atomic.Int64
	statCaptures     *atomic.Int64
	statConsumptions *atomic.Int64
	statPopulation   *atomic.Int64
	statPlayer       *atomic.Int64
	statStale        *atomic.Int64
	statOutcome      *status.AtomicString
}

// NewGameStateMachine creates a state machine; nil logger and registry are allowed
func NewGameStateMachine(rules GameRules, ai AIRules, logger *zap.Logger, reg *status.Registry) *GameStateMachine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &GameStateMachine{
		rules:            rules,
		ai:               ai,
		logger:           logger.Named("game"),
		statPasses:       reg.Ints.Get("game.passes"),
		statCaptures:     reg.Ints.Get("game.captures"),
		statConsumptions: reg.Ints.Get("game.consumptions"),
		statPopulation:   reg.Ints.Get("game.population"),
		statPlayer:       reg.Ints.Get("game.player"),
		statStale:        reg.Ints.Get("game.stale_commits"),
		statOutcome:      reg.Strings.Get("game.outcome"),
	}
}

// Rules returns the capture tuning
func (m *GameStateMachine) Rules() GameRules { return m.rules }

// Process runs one pass; a nil snapshot is a no-op
func (m *GameStateMachine) Process(session *engine.GameSession, snap *engine.Snapshot, commit Committer) (*Report, error) {
	if snap == nil {
		return nil, nil
	}
	if snap.Mode != component.ModeGame {
		return nil, fmt.Errorf("%w: game pass over %s snapshot", engine.ErrContractViolation, snap.Mode)
	}
	agents, err := snap.Agents()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", engine.ErrContractViolation, err)
	}

	m.statPasses.Add(1)
	roster := session.CloneRoster()
	idx := classify(agents, roster)
	report := &Report{Tick: snap.Tick, Generation: snap.Generation}

	if outcome := session.Outcome(); outcome.Terminal() {
		report.Outcome = outcome
		m.finish(session, agents, idx, roster, report)
		return report, nil
	}

	// Zero capture time means original member
	now := snap.Time
	if now <= 0 {
		now = math.SmallestNonzeroFloat32
	}

	report.Steered = steerRivals(agents, idx, roster, m.ai)

	report.Captures = captureFood(agents, idx, roster, m.rules, now)
	if len(report.Captures) > 0 {
		var added bool
		agents, added = replenish(agents, roster, m.rules, session.Rand())
		if added {
			report.Spawned = 1
		} else {
			report.CapacityReached = true
			m.logger.Debug("capacity reached, replenishment skipped",
				zap.Int("population", len(agents)), zap.Int("capacity", m.rules.MaxCapacity))
		}
		idx = rebuildIndex(agents)
	}

	report.Consumptions = consumePacks(agents, idx, roster, m.rules, now)

	if report.Mutated() {
		data := component.EncodeAgents(component.ModeGame, agents)
		gen, err := commit.CommitAgentData(snap.Generation, len(agents), data)
		switch {
		case errors.Is(err, engine.ErrStaleGeneration):
			// The next pass reclassifies from the replacement
			report.Stale = true
			m.statStale.Add(1)
			m.logger.Debug("stale commit skipped",
				zap.Stringer("session", session.ID), zap.Uint64("snapshot_generation", snap.Generation))
			report.Roster = session.Roster()
			report.Outcome = session.Outcome()
			return report, nil
		case err != nil:
			return nil, fmt.Errorf("commit game pass: %w", err)
		}
		report.Committed = true
		report.Generation = gen
	}

	report.Outcome = m.evaluate(session, roster)
	if report.Outcome.Terminal() {
		report.NewOutcome = session.Resolve(report.Outcome)
	}

	m.statCaptures.Add(int64(len(report.Captures)))
	m.statConsumptions.Add(int64(len(report.Consumptions)))
	session.Record(len(report.Captures), len(report.Consumptions), report.Spawned, report.Committed)

	if report.Committed {
		m.logger.Debug("game pass committed",
			zap.Stringer("session", session.ID),
			zap.Uint64("tick", snap.Tick),
			zap.Int("captures", len(report.Captures)),
			zap.Int("consumptions", len(report.Consumptions)),
			zap.Int("population", len(agents)))
	}
	if report.NewOutcome {
		m.logger.Info("game over",
			zap.Stringer("session", session.ID),
			zap.Stringer("outcome", report.Outcome),
			zap.Int("player", roster.Count(component.PackPlayer)))
	}

	m.finish(session, agents, idx, roster, report)
	return report, nil
}

// evaluate derives the terminal state from post-pass counts
func (m *GameStateMachine) evaluate(session *engine.GameSession, roster *component.Roster) engine.Outcome {
	if roster.Count(component.PackPlayer) == 0 {
		return engine.OutcomeDefeat
	}
	if session.MultiFlock() {
		alive := roster.Alive()
		if len(alive) == 1 && alive[0] == component.PackPlayer {
			return engine.OutcomeVictory
		}
	}
	return engine.OutcomeNone
}

// finish publishes the roster and player observation
func (m *GameStateMachine) finish(session *engine.GameSession, agents []component.Agent, idx packIndex, roster *component.Roster, report *Report) {
	player := idx[component.PackPlayer]
	session.Observe(centroid(agents, player), len(player))
	session.PublishRoster(roster)

	report.Population = len(agents)
	report.Roster = roster.Snapshot()

	m.statPopulation.Store(int64(len(agents)))
	m.statPlayer.Store(int64(roster.Count(component.PackPlayer)))
	m.statOutcome.Store(session.Outcome().String())
}
