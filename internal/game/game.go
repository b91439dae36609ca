package game

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/Garsondee/Snakely/internal/fx"
	"github.com/Garsondee/Snakely/internal/hud"
	"github.com/Garsondee/Snakely/internal/render"
	"github.com/Garsondee/Snakely/internal/snake"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
)

// Board sizing. The board is always GridSize x GridSize cells; the cell size
// follows the window between MinTile and MaxTile.
const (
	GridSize = 20
	MinTile  = 20
	MaxTile  = 32

	// DefaultWidth and DefaultHeight are the initial outside size of the window.
	DefaultWidth  = GridSize * 30
	DefaultHeight = GridSize*30 + render.HUDHeight
)

// Colours of the host-generated toasts.
var (
	toastBest    = color.RGBA{R: 0x9E, G: 0xCE, B: 0x6A, A: 255}
	toastExpired = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 255}
	toastInfo    = color.RGBA{R: 0xA9, G: 0xB1, B: 0xD6, A: 255}
)

// Config selects the game variant and its collaborators.
type Config struct {
	Boundary snake.BoundaryMode
	PowerUps bool
	Touch    bool
	Seed     int64
	Sound    snake.SoundManager // nil plays nothing
	Scores   snake.HighScoreStore
}

// Game hosts a snake.Engine inside ebiten.
type Game struct {
	engine    *snake.Engine
	renderer  *render.Renderer
	particles *fx.System

	start     time.Time
	lastFrame time.Time
	now       func() time.Time

	width  int
	height int

	prevKeys map[ebiten.Key]bool
	swipes   *swipeTracker

	bestAtStart int
	bestShown   bool // "NEW BEST!" already shown this game
	copyText    func(string) error
}

// New builds the game with the board fitted to the default window size.
func New(cfg Config) (*Game, error) {
	r, err := render.NewRenderer(hud.DefaultTheme())
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g := &Game{
		renderer:  r,
		particles: fx.NewSystem(cfg.Seed),
		now:       time.Now,
		width:     DefaultWidth,
		height:    DefaultHeight,
		prevKeys:  map[ebiten.Key]bool{},
		swipes:    newSwipeTracker(),
		copyText:  clipboard.WriteAll,
	}
	r.Overlay = g.particles

	opts := []snake.Option{
		snake.WithBoundary(cfg.Boundary),
		snake.WithPowerUps(cfg.PowerUps),
		snake.WithTouch(cfg.Touch),
		snake.WithParticles(g.particles),
		snake.OnEat(g.onEat),
		snake.OnPowerUp(g.onPowerUp),
	}
	if cfg.Seed != 0 {
		opts = append(opts, snake.WithSeed(cfg.Seed))
	}
	if cfg.Sound != nil {
		opts = append(opts, snake.WithSound(cfg.Sound))
	}
	if cfg.Scores != nil {
		opts = append(opts, snake.WithHighScores(cfg.Scores))
	}
	g.engine = snake.New(fitBoard(g.width, g.height), opts...)
	g.bestAtStart = g.engine.HighScore()

	g.start = g.now()
	g.lastFrame = g.start
	return g, nil
}

// Engine exposes the running engine.
func (g *Game) Engine() *snake.Engine { return g.engine }

func fitBoard(outsideW, outsideH int) snake.CanvasSize {
	return snake.FitCanvas(outsideW, outsideH-render.HUDHeight, GridSize, MinTile, MaxTile)
}

func (g *Game) Update() error {
	now := g.now()
	dt := now.Sub(g.lastFrame)
	g.lastFrame = now

	if quit := g.handleInput(); quit {
		return ebiten.Termination
	}
	g.handleTouch(now)

	g.engine.Update(now.Sub(g.start))
	g.particles.Tick(dt)
	return nil
}

// watchedKeys are forwarded to the engine by name on the press edge.
var watchedKeys = []ebiten.Key{
	ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeySpace, ebiten.KeyEnter,
	ebiten.KeyR, ebiten.KeyP, ebiten.KeyM,
}

// handleInput processes key presses (edge-triggered). It reports whether the
// player asked to quit.
func (g *Game) handleInput() bool {
	currentKeys := map[ebiten.Key]bool{}

	for _, k := range watchedKeys {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		if currentKeys[k] && !g.prevKeys[k] {
			g.pressKey(k.String())
		}
	}

	// C: copy the score line.
	currentKeys[ebiten.KeyC] = ebiten.IsKeyPressed(ebiten.KeyC)
	if currentKeys[ebiten.KeyC] && !g.prevKeys[ebiten.KeyC] {
		g.copyScore()
	}

	currentKeys[ebiten.KeyEscape] = ebiten.IsKeyPressed(ebiten.KeyEscape)
	quit := currentKeys[ebiten.KeyEscape] && !g.prevKeys[ebiten.KeyEscape]

	g.prevKeys = currentKeys
	return quit
}

// pressKey forwards a key to the engine and reacts to restarts and toggles.
func (g *Game) pressKey(name string) {
	wasOver := g.engine.IsOver()
	in := g.engine.HandleKey(name)
	switch {
	case in.Action == snake.ActionReset, wasOver && in.Action == snake.ActionRestart:
		g.newGame()
	case in.Action == snake.ActionMute:
		if m, ok := g.engine.Sound().(snake.Muter); ok {
			g.renderer.Messages.Add(muteLabel(m.Muted()), toastInfo, g.now())
		}
	}
}

func muteLabel(muted bool) string {
	if muted {
		return "MUTED"
	}
	return "SOUND ON"
}

func (g *Game) copyScore() {
	line := g.engine.State().Summary()
	if err := g.copyText(line); err != nil {
		log.Printf("game: copy score: %v", err)
		return
	}
	g.renderer.Messages.Add("COPIED", toastInfo, g.now())
}

func (g *Game) onEat(_ snake.Cell, score int) {
	if g.bestShown || g.bestAtStart == 0 || score <= g.bestAtStart {
		return
	}
	g.bestShown = true
	g.renderer.Messages.Add("NEW BEST!", toastBest, g.now())
}

// newGame resets per-game host state after the engine restarts.
func (g *Game) newGame() {
	g.bestAtStart = g.engine.HighScore()
	g.bestShown = false
	g.particles.Clear()
}

func (g *Game) onPowerUp(k snake.PowerUpKind, active bool) {
	if active {
		g.renderer.Messages.Add(k.String()+" ACTIVATED!", powerUpColor(k), g.now())
		return
	}
	g.renderer.Messages.Add(k.String()+" EXPIRED", toastExpired, g.now())
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.engine.State(), g.now())
}

// Layout fits the board to the window and rescales the running game when
// the cell size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	if size := fitBoard(outsideWidth, outsideHeight); size != g.engine.Canvas() {
		g.engine.Resize(size)
		g.particles.Clear()
	}
	return outsideWidth, outsideHeight
}
