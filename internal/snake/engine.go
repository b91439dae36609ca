package snake

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"slices"
	"time"
)

// HighScoreKey is the store key the best score is kept under.
const HighScoreKey = "snakeHighScore"

// Default tick intervals. Touch play runs slower to absorb input latency.
const (
	DefaultTickInterval      = 100 * time.Millisecond
	DefaultTouchTickInterval = 120 * time.Millisecond
)

// DefaultFoodHue is the particle hue used for food pickups (#F7768E).
const DefaultFoodHue = 350.0

// BoundaryMode decides what happens when the head leaves the board.
type BoundaryMode int

const (
	BoundaryCollide BoundaryMode = iota // crossing an edge ends the game
	BoundaryWrap                        // crossing an edge re-enters on the opposite side
)

func (b BoundaryMode) String() string {
	if b == BoundaryWrap {
		return "wrap"
	}
	return "collide"
}

// ParseBoundary maps "wrap" or "collide" to a BoundaryMode.
func ParseBoundary(s string) (BoundaryMode, error) {
	switch s {
	case "collide", "":
		return BoundaryCollide, nil
	case "wrap":
		return BoundaryWrap, nil
	}
	return BoundaryCollide, fmt.Errorf("unknown boundary mode %q (want collide or wrap)", s)
}

// SoundManager receives fire-and-forget audio cues.
type SoundManager interface {
	PlayMove()
	PlayFoodCollect()
	PlayGameOver()
}

// Muter is implemented by sound managers that support the mute key.
type Muter interface {
	SetMuted(muted bool)
	Muted() bool
}

// HighScoreStore is the persistent key-value store for the best score.
type HighScoreStore interface {
	Get(key string) int
	Set(key string, value int) error
}

// ParticleSink receives eat effects. It never influences game state.
type ParticleSink interface {
	Spawn(origin Cell, cellSize int, hue float64, count int)
}

// Particle burst sizes for a food eat and a power-up pickup.
const (
	FoodBurst    = 10
	PowerUpBurst = 15
)

type config struct {
	boundary          BoundaryMode
	growthUnit        int
	tickInterval      time.Duration
	touchTickInterval time.Duration
	touch             bool
	powerUps          bool
	foodHue           float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithBoundary selects the wall policy.
func WithBoundary(b BoundaryMode) Option {
	return func(e *Engine) { e.cfg.boundary = b }
}

// WithGrowth sets the segments and points gained per food.
func WithGrowth(unit int) Option {
	return func(e *Engine) {
		if unit > 0 {
			e.cfg.growthUnit = unit
		}
	}
}

// WithTickIntervals sets the pointer and touch tick intervals.
func WithTickIntervals(pointer, touch time.Duration) Option {
	return func(e *Engine) {
		if pointer > 0 {
			e.cfg.tickInterval = pointer
		}
		if touch > 0 {
			e.cfg.touchTickInterval = touch
		}
	}
}

// WithTouch starts the engine in touch mode.
func WithTouch(touch bool) Option {
	return func(e *Engine) { e.cfg.touch = touch }
}

// WithPowerUps enables timed pickups.
func WithPowerUps(on bool) Option {
	return func(e *Engine) { e.cfg.powerUps = on }
}

// WithFoodHue sets the hue handed to the particle sink on eat.
func WithFoodHue(hue float64) Option {
	return func(e *Engine) { e.cfg.foodHue = hue }
}

// WithRand sets the random source used for food and pickup placement.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds the placement RNG for deterministic runs.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay only
	}
}

// WithSound attaches the audio cue sink.
func WithSound(s SoundManager) Option {
	return func(e *Engine) { e.sound = s }
}

// WithHighScores attaches the high score store.
func WithHighScores(s HighScoreStore) Option {
	return func(e *Engine) { e.scores = s }
}

// WithParticles attaches the particle sink.
func WithParticles(p ParticleSink) Option {
	return func(e *Engine) {
		if p != nil {
			e.particles = p
		}
	}
}

// WithEventLog records engine events into l.
func WithEventLog(l *EventLog) Option {
	return func(e *Engine) { e.events = l }
}

// OnTick registers a callback invoked after every step.
func OnTick(fn func(State)) Option {
	return func(e *Engine) { e.onTick = fn }
}

// OnGameOver registers a callback invoked on every terminal transition.
func OnGameOver(fn func(finalScore int)) Option {
	return func(e *Engine) { e.onGameOver = fn }
}

// OnEat registers a callback invoked when food is eaten.
func OnEat(fn func(cell Cell, score int)) Option {
	return func(e *Engine) { e.onEat = fn }
}

// OnPowerUp registers a callback invoked when an effect starts or ends.
func OnPowerUp(fn func(kind PowerUpKind, active bool)) Option {
	return func(e *Engine) { e.onPowerUp = fn }
}

type nopSink struct{}

func (nopSink) Spawn(Cell, int, float64, int) {}

// Engine owns the canonical game state and advances it one tick at a time.
// It is not safe for concurrent use; the host drives it from one loop.
type Engine struct {
	size   CanvasSize
	cfg    config
	input  *InputQueue
	placer *FoodPlacer
	rng    *rand.Rand

	sound     SoundManager
	scores    HighScoreStore
	particles ParticleSink
	events    *EventLog

	onTick     func(State)
	onGameOver func(finalScore int)
	onEat      func(cell Cell, score int)
	onPowerUp  func(kind PowerUpKind, active bool)

	segments  []Cell // head first
	direction Direction
	pending   Direction
	food      Cell
	hasFood   bool
	score     int
	eats      int
	highScore int
	isOver    bool
	won       bool
	growth    int // extra segments still to add when growthUnit > 1

	paused   bool
	pausedAt time.Duration

	clock    time.Duration // last timestamp seen by Update
	lastTick time.Duration
	tick     int

	pickup  *PowerUp
	effects map[PowerUpKind]time.Duration
}

// New builds an engine for the given canvas, reads the stored high score and
// starts a fresh game.
func New(size CanvasSize, opts ...Option) *Engine {
	e := &Engine{
		size: size.Normalize(),
		cfg: config{
			boundary:          BoundaryCollide,
			growthUnit:        1,
			tickInterval:      DefaultTickInterval,
			touchTickInterval: DefaultTouchTickInterval,
			foodHue:           DefaultFoodHue,
		},
		input:     NewInputQueue(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- gameplay only
		particles: nopSink{},
		effects:   make(map[PowerUpKind]time.Duration),
	}
	for _, o := range opts {
		o(e)
	}
	e.placer = NewFoodPlacer(e.rng)
	if e.scores != nil {
		e.guard("high score read", func() {
			e.highScore = max(0, e.scores.Get(HighScoreKey))
		})
	}
	e.InitializeGame()
	return e
}

// InitializeGame discards the current game and starts a new one: a single
// segment at the board centre heading right, fresh food, zero score.
func (e *Engine) InitializeGame() {
	cs := e.size.CellSize
	start := Cell{X: (e.size.Cols() / 2) * cs, Y: (e.size.Rows() / 2) * cs}
	e.segments = []Cell{start}
	e.direction = Right
	e.pending = Right
	e.score = 0
	e.eats = 0
	e.growth = 0
	e.isOver = false
	e.won = false
	e.paused = false
	e.lastTick = e.clock
	e.tick = 0
	e.pickup = nil
	clear(e.effects)
	e.hasFood = false
	if !e.placeFood() {
		e.won = true
		e.isOver = true
	}
	e.record(CategoryState, "init", fmt.Sprintf("head=%s food=%s", start, e.food), 0)
}

// Input exposes the engine's input decoder so hosts can tune swipe thresholds.
func (e *Engine) Input() *InputQueue {
	return e.input
}

// TickInterval returns the current fixed step interval.
func (e *Engine) TickInterval() time.Duration {
	d := e.cfg.tickInterval
	if e.cfg.touch {
		d = e.cfg.touchTickInterval
	}
	if e.effectActive(PowerUpSpeed) {
		d = time.Duration(float64(d) * speedFactor)
	}
	return d
}

// SetTouch switches between touch and pointer tick rates.
func (e *Engine) SetTouch(touch bool) {
	e.cfg.touch = touch
}

// Boundary returns the wall policy in force this tick.
func (e *Engine) Boundary() BoundaryMode {
	if e.effectActive(PowerUpGhost) {
		return BoundaryWrap
	}
	return e.cfg.boundary
}

// Update advances the game if a tick is due at ts. ts is the host's frame
// clock; the engine never reads the wall clock for gating. Call at most once
// per frame.
func (e *Engine) Update(ts time.Duration) {
	e.clock = ts
	if e.isOver || e.paused {
		return
	}
	e.expireEffects(ts)
	if ts-e.lastTick < e.TickInterval() {
		return
	}
	e.lastTick = ts
	e.Step()
}

// Step advances the snake by exactly one cell. It is a no-op once the game
// is over.
func (e *Engine) Step() {
	if e.isOver {
		return
	}
	e.step()
	e.emitTick()
}

func (e *Engine) step() {
	e.tick++
	cs := e.size.CellSize

	prev := e.direction
	e.direction = e.input.Resolve(e.direction, e.pending)
	e.pending = e.direction
	if e.direction != prev {
		e.record(CategoryInput, "turn", fmt.Sprintf("%s → %s", prev, e.direction), 0)
		e.guard("sound", func() {
			if e.sound != nil {
				e.sound.PlayMove()
			}
		})
	}

	head := e.segments[0].Add(e.direction.Vector(cs))
	if !InBounds(head, e.size.Width, e.size.Height) {
		if e.Boundary() != BoundaryWrap {
			e.finish("wall", head)
			return
		}
		head = Wrap(head, e.size.Width, e.size.Height, cs)
	}

	eating := e.hasFood && head == e.food
	growing := eating || e.growth > 0
	body := e.segments
	if !growing {
		// The tail vacates this tick, so the head may move into it.
		body = body[:len(body)-1]
	}
	if slices.Contains(body, head) {
		e.finish("self", head)
		return
	}

	e.segments = slices.Insert(e.segments, 0, head)
	if e.events != nil {
		e.events.AddVerbose(e.tick, CategoryMove, "head", head.String(), float64(len(e.segments)))
	}

	switch {
	case eating:
		e.eat(head)
	case e.growth > 0:
		e.growth--
	default:
		e.segments = e.segments[:len(e.segments)-1]
	}

	if e.pickup != nil && head == e.pickup.Cell && !e.isOver {
		e.activate(*e.pickup)
	}
}

func (e *Engine) eat(head Cell) {
	e.eats++
	e.score += e.cfg.growthUnit * e.multiplier()
	e.growth += e.cfg.growthUnit - 1
	e.record(CategoryFood, "eat", head.String(), float64(e.score))

	placed := e.placeFood()

	if e.score > e.highScore {
		e.highScore = e.score
		e.record(CategoryScore, "high_score", fmt.Sprintf("%d", e.score), float64(e.score))
		e.persistHighScore()
	}

	e.spawnParticles(head, e.cfg.foodHue, FoodBurst)
	e.guard("sound", func() {
		if e.sound != nil {
			e.sound.PlayFoodCollect()
		}
	})
	if e.onEat != nil {
		e.guard("eat callback", func() { e.onEat(head, e.score) })
	}

	if !placed {
		e.won = true
		e.finish("win", head)
		return
	}
	e.maybeDropPowerUp()
}

// placeFood puts food on a free cell. A pickup gives way when it holds the
// last free cell. It reports false when the snake fills the board.
func (e *Engine) placeFood() bool {
	occupied := NewCellSet(e.segments...)
	if e.pickup != nil {
		occupied[e.pickup.Cell] = struct{}{}
	}
	c, ok := e.placer.Place(occupied, e.size)
	if !ok && e.pickup != nil {
		e.pickup = nil
		c, ok = e.placer.Place(NewCellSet(e.segments...), e.size)
	}
	e.food, e.hasFood = c, ok
	if ok {
		e.record(CategoryFood, "spawn", c.String(), 0)
	}
	return ok
}

func (e *Engine) finish(reason string, at Cell) {
	e.isOver = true
	e.record(CategoryState, "game_over", fmt.Sprintf("%s at %s score=%d", reason, at, e.score), float64(e.score))
	if !e.won {
		e.guard("sound", func() {
			if e.sound != nil {
				e.sound.PlayGameOver()
			}
		})
	}
	if e.onGameOver != nil {
		e.guard("game over callback", func() { e.onGameOver(e.score) })
	}
}

func (e *Engine) persistHighScore() {
	if e.scores == nil {
		return
	}
	e.guard("high score write", func() {
		if err := e.scores.Set(HighScoreKey, e.highScore); err != nil {
			log.Printf("snake: persist high score: %v", err)
		}
	})
}

func (e *Engine) spawnParticles(at Cell, hue float64, count int) {
	e.guard("particles", func() { e.particles.Spawn(at, e.size.CellSize, hue, count) })
}

func (e *Engine) emitTick() {
	if e.onTick == nil {
		return
	}
	st := e.State()
	e.guard("tick callback", func() { e.onTick(st) })
}

func (e *Engine) notifyPowerUp(k PowerUpKind, active bool) {
	if e.onPowerUp != nil {
		e.guard("power-up callback", func() { e.onPowerUp(k, active) })
	}
}

// guard runs fn and swallows any panic so a faulty collaborator cannot halt
// the game loop.
func (e *Engine) guard(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("snake: %s failed: %v", what, r)
		}
	}()
	fn()
}

func (e *Engine) record(category, key, value string, num float64) {
	if e.events != nil {
		e.events.Add(e.tick, category, key, value, num)
	}
}

// SetDirection requests a heading by name ("up", "down", "left", "right").
// Unknown names are ignored, as is any request once the game is over.
func (e *Engine) SetDirection(name string) {
	e.request(Input{Direction: ParseDirection(name)})
}

// HandleKey decodes a key name and applies it. It returns the decoded input.
func (e *Engine) HandleKey(name string) Input {
	in := e.input.SubmitKey(name)
	e.request(in)
	return in
}

// HandleSwipe decodes a touch gesture and applies it.
func (e *Engine) HandleSwipe(s Swipe) Input {
	in := e.input.SubmitSwipe(s)
	e.request(in)
	return in
}

func (e *Engine) request(in Input) {
	if in.Empty() {
		return
	}
	if e.isOver {
		if in.Action == ActionRestart || in.Action == ActionReset {
			e.record(CategoryInput, "restart", "", 0)
			e.InitializeGame()
		}
		return
	}
	switch in.Action {
	case ActionReset:
		e.record(CategoryInput, "restart", "", 0)
		e.InitializeGame()
		return
	case ActionPause:
		e.TogglePause()
		return
	case ActionMute:
		if m, ok := e.sound.(Muter); ok {
			e.guard("mute", func() { m.SetMuted(!m.Muted()) })
		}
		return
	}
	if in.Direction != None && !e.paused {
		e.pending = in.Direction
		e.record(CategoryInput, "direction", in.Direction.String(), 0)
	}
}

// TogglePause freezes or resumes ticking. Effect timers and the tick gate
// are shifted on resume so paused time is not counted.
func (e *Engine) TogglePause() {
	if e.isOver {
		return
	}
	e.paused = !e.paused
	if e.paused {
		e.pausedAt = e.clock
		e.record(CategoryState, "pause", "", 0)
		return
	}
	shift := e.clock - e.pausedAt
	e.lastTick += shift
	for k := range e.effects {
		e.effects[k] += shift
	}
	e.record(CategoryState, "resume", shift.String(), shift.Seconds())
}

// Paused reports whether ticking is frozen.
func (e *Engine) Paused() bool { return e.paused }

// IsOver reports whether the game has ended (crash or full board).
func (e *Engine) IsOver() bool { return e.isOver }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// HighScore returns the best score seen, including the current game.
func (e *Engine) HighScore() int { return e.highScore }

// Canvas returns the board dimensions in pixels.
func (e *Engine) Canvas() CanvasSize { return e.size }

// Sound returns the attached sound manager, or nil.
func (e *Engine) Sound() SoundManager { return e.sound }

// Events returns the attached event log, or nil.
func (e *Engine) Events() *EventLog { return e.events }

// Resize moves the game onto a new canvas without losing progress. Cells are
// rescaled to the new cell size and clamped into the new bounds; food that
// lands on the snake is placed again.
func (e *Engine) Resize(size CanvasSize) {
	if size.CellSize <= 0 {
		return
	}
	size = size.Normalize()
	if size == e.size {
		return
	}
	old := e.size
	if old.CellSize <= 0 {
		e.size = size
		e.InitializeGame()
		return
	}
	convert := func(c Cell) Cell {
		scale := float64(size.CellSize) / float64(old.CellSize)
		x := int(math.Round(float64(c.X) * scale))
		y := int(math.Round(float64(c.Y) * scale))
		return ClampToBounds(ToCell(x, y, size.CellSize), size.Width, size.Height, size.CellSize)
	}
	for i, c := range e.segments {
		e.segments[i] = convert(c)
	}
	e.size = size

	occupied := NewCellSet(e.segments...)
	if e.pickup != nil {
		e.pickup.Cell = convert(e.pickup.Cell)
		if occupied.Has(e.pickup.Cell) {
			e.pickup = nil
		}
	}
	if e.hasFood {
		e.food = convert(e.food)
		if occupied.Has(e.food) || (e.pickup != nil && e.pickup.Cell == e.food) {
			e.placeFood()
		}
	}
	e.record(CategoryState, "resize", fmt.Sprintf("%dx%d cell=%d", size.Width, size.Height, size.CellSize), float64(size.CellSize))
}

// State returns a read-only snapshot of the game.
func (e *Engine) State() State {
	st := State{
		Segments:         slices.Clone(e.segments),
		Direction:        e.direction,
		PendingDirection: e.pending,
		Score:            e.score,
		Eats:             e.eats,
		HighScore:        e.highScore,
		IsOver:           e.isOver,
		Won:              e.won,
		Paused:           e.paused,
		LastTick:         e.lastTick,
		Clock:            e.clock,
		Tick:             e.tick,
		Canvas:           e.size,
		Boundary:         e.Boundary(),
		Active:           e.activeEffects(),
	}
	if e.hasFood {
		f := e.food
		st.Food = &f
	}
	if e.pickup != nil {
		p := *e.pickup
		st.PowerUp = &p
	}
	return st
}
