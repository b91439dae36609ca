package snake

import (
	"slices"
	"time"
)

// Sim is a headless harness around an Engine. It owns a synthetic clock so
// tests and the headless report can drive whole games deterministically
// without a window or a wall clock.
type Sim struct {
	Engine *Engine
	Log    *EventLog
	Clock  time.Duration
	Pilot  *Autopilot // when set, steers before every tick

	size       CanvasSize
	seed       int64
	engineOpts []Option
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // board, seed, engine options; applied before New
	simOptState                      // snake, food, heading; applied to the built engine
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithGrid sets a square board of cols cells of cellSize pixels.
func WithGrid(cols, cellSize int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.size = Square(cols, cellSize)
	}}
}

// WithCanvas sets an arbitrary board.
func WithCanvas(size CanvasSize) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.size = size }}
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.seed = seed }}
}

// WithVerbose enables per-tick move logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Log = NewEventLog(v) }}
}

// WithEngine passes extra options through to the engine.
func WithEngine(opts ...Option) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.engineOpts = append(s.engineOpts, opts...)
	}}
}

// WithAutopilot lets the built-in pilot steer.
func WithAutopilot() SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Pilot = &Autopilot{} }}
}

// WithSnake replaces the starting snake. Cells are given head first.
func WithSnake(cells ...Cell) SimOption {
	return SimOption{simOptState, func(s *Sim) {
		s.Engine.segments = slices.Clone(cells)
	}}
}

// WithFood places the food at c.
func WithFood(c Cell) SimOption {
	return SimOption{simOptState, func(s *Sim) {
		s.Engine.food, s.Engine.hasFood = c, true
	}}
}

// WithHeading sets the current and pending direction.
func WithHeading(d Direction) SimOption {
	return SimOption{simOptState, func(s *Sim) {
		s.Engine.direction, s.Engine.pending = d, d
	}}
}

// WithPickup lays a power-up on the board.
func WithPickup(p PowerUp) SimOption {
	return SimOption{simOptState, func(s *Sim) {
		s.Engine.pickup = &p
	}}
}

// NewSim constructs a Sim in two ordered passes:
//  1. Infrastructure (board, seed, engine options), then the engine is built
//  2. Game state overrides (snake, food, heading)
func NewSim(opts ...SimOption) *Sim {
	s := &Sim{
		size: Square(20, 20),
		seed: 1,
		Log:  NewEventLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}
	engineOpts := append([]Option{WithSeed(s.seed), WithEventLog(s.Log)}, s.engineOpts...)
	s.Engine = New(s.size, engineOpts...)
	for _, o := range opts {
		if o.kind == simOptState {
			o.fn(s)
		}
	}
	return s
}

// Step advances the synthetic clock by one tick interval and updates the
// engine. It returns false once the game is over.
func (s *Sim) Step() bool {
	if s.Engine.IsOver() {
		return false
	}
	if s.Pilot != nil {
		s.Engine.request(Input{Direction: s.Pilot.Next(s.Engine.State())})
	}
	s.Clock += s.Engine.TickInterval()
	s.Engine.Update(s.Clock)
	return !s.Engine.IsOver()
}

// RunTicks steps n times, stopping early if the game ends. It returns the
// number of ticks that ran.
func (s *Sim) RunTicks(n int) int {
	ran := 0
	for ran < n && !s.Engine.IsOver() {
		s.Step()
		ran++
	}
	return ran
}

// RunUntilOver steps until the game ends or maxTicks is reached, and reports
// whether it ended.
func (s *Sim) RunUntilOver(maxTicks int) bool {
	s.RunTicks(maxTicks)
	return s.Engine.IsOver()
}

// Advance moves the synthetic clock by d and lets the engine catch up once.
func (s *Sim) Advance(d time.Duration) {
	s.Clock += d
	s.Engine.Update(s.Clock)
}

// State returns the engine snapshot.
func (s *Sim) State() State {
	return s.Engine.State()
}
