// Package term hosts the snake engine in a terminal using tcell. Each board
// cell is drawn two columns wide so the board looks square.
package term

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/Garsondee/Snakely/internal/hud"
	"github.com/Garsondee/Snakely/internal/snake"
	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultGrid is the board edge length in cells.
	DefaultGrid = 20

	frameInterval = 16 * time.Millisecond
	cellWidth     = 2
	hudRows       = 1
)

// Config selects the game variant and its collaborators.
type Config struct {
	Grid     int
	Boundary snake.BoundaryMode
	PowerUps bool
	Seed     int64
	Sound    snake.SoundManager
	Scores   snake.HighScoreStore
}

// Host owns the screen and the engine for one terminal session.
type Host struct {
	screen   tcell.Screen
	engine   *snake.Engine
	theme    hud.Theme
	messages *hud.MessageLog

	start    time.Time
	now      func() time.Time
	copyText func(string) error
}

// Run opens the terminal and plays until the player quits or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: new screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	defer s.Fini()
	return NewHost(s, cfg).Loop(ctx)
}

// NewHost builds a host on an initialised screen.
func NewHost(s tcell.Screen, cfg Config) *Host {
	grid := cfg.Grid
	if grid <= 0 {
		grid = DefaultGrid
	}
	h := &Host{
		screen:   s,
		theme:    hud.DefaultTheme(),
		messages: hud.NewMessageLog(),
		now:      time.Now,
		copyText: clipboard.WriteAll,
	}
	opts := []snake.Option{
		snake.WithBoundary(cfg.Boundary),
		snake.WithPowerUps(cfg.PowerUps),
		snake.OnPowerUp(h.onPowerUp),
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
	h.engine = snake.New(snake.Square(grid, 1), opts...)
	h.start = h.now()
	s.SetStyle(tcell.StyleDefault.Background(tcellColor(h.theme.Background)).Foreground(tcellColor(h.theme.Text)))
	return h
}

// Engine exposes the running engine.
func (h *Host) Engine() *snake.Engine { return h.engine }

// Loop reads events on a goroutine and redraws every frame.
func (h *Host) Loop(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if quit := h.HandleEvent(ev); quit {
				return nil
			}
		case <-ticker.C:
			now := h.now()
			h.engine.Update(now.Sub(h.start))
			h.Draw(now)
		}
	}
}

// HandleEvent applies one terminal event. It reports whether the player
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventKey:
		name, quit := keyName(ev)
		if quit {
			return true
		}
		if name == "C" {
			h.copyScore()
			return false
		}
		if name != "" {
			h.pressKey(name)
		}
	}
	return false
}

// keyName maps a tcell key to the engine's key vocabulary.
func keyName(ev *tcell.EventKey) (name string, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", true
	case tcell.KeyUp:
		return "ArrowUp", false
	case tcell.KeyDown:
		return "ArrowDown", false
	case tcell.KeyLeft:
		return "ArrowLeft", false
	case tcell.KeyRight:
		return "ArrowRight", false
	case tcell.KeyEnter:
		return "Enter", false
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			return "", true
		case ' ':
			return "Space", false
		default:
			return strings.ToUpper(string(r)), false
		}
	}
	return "", false
}

func (h *Host) pressKey(name string) {
	in := h.engine.HandleKey(name)
	if in.Action == snake.ActionMute {
		if m, ok := h.engine.Sound().(snake.Muter); ok {
			label := "SOUND ON"
			if m.Muted() {
				label = "MUTED"
			}
			h.messages.Add(label, h.theme.Text, h.now())
		}
	}
}

func (h *Host) copyScore() {
	if err := h.copyText(h.engine.State().Summary()); err != nil {
		log.Printf("term: copy score: %v", err)
		return
	}
	h.messages.Add("COPIED", h.theme.Text, h.now())
}

func (h *Host) onPowerUp(k snake.PowerUpKind, active bool) {
	if active {
		r, g, b := colorful.Hsl(k.Hue(), 0.9, 0.6).Clamped().RGB255()
		h.messages.Add(k.String()+" ACTIVATED!", color.RGBA{R: r, G: g, B: b, A: 255}, h.now())
		return
	}
	h.messages.Add(k.String()+" EXPIRED", color.RGBA{R: 0xFF, A: 255}, h.now())
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func hueColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// boardOrigin returns the screen column and row of the top-left board cell,
// inside the border.
func boardOrigin(screenW int, c snake.CanvasSize) (x, y int) {
	w := c.Cols()*cellWidth + 2
	x = max(0, (screenW-w)/2) + 1
	y = hudRows + 1
	return x, y
}

// fits reports whether the board and its border fit the screen.
func fits(screenW, screenH int, c snake.CanvasSize) bool {
	return screenW >= c.Cols()*cellWidth+2 && screenH >= c.Rows()+2+hudRows
}

func (h *Host) put(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Draw renders the whole frame.
func (h *Host) Draw(now time.Time) {
	st := h.engine.State()
	base := tcell.StyleDefault.Background(tcellColor(h.theme.Background))
	text := base.Foreground(tcellColor(h.theme.Text))

	h.screen.Clear()
	sw, sh := h.screen.Size()
	if !fits(sw, sh, st.Canvas) {
		h.put(0, 0, "terminal too small", text)
		h.screen.Show()
		return
	}

	left, right := hud.Lines(st)
	hudStyle := text
	if st.NewBest() {
		hudStyle = base.Foreground(tcellColor(h.theme.HighScore))
	}
	h.put(0, 0, left, hudStyle)
	if right != "" {
		h.put(max(len(left)+2, sw-len(right)), 0, right, base.Foreground(tcellColor(h.theme.HighScore)))
	}

	ox, oy := boardOrigin(sw, st.Canvas)
	h.drawBorder(ox-1, oy-1, st.Canvas.Cols()*cellWidth+1, st.Canvas.Rows()+1, base.Foreground(tcellColor(h.theme.Border)))

	cell := func(c snake.Cell, glyph string, style tcell.Style) {
		h.put(ox+c.X*cellWidth, oy+c.Y, glyph, style)
	}
	if st.Food != nil {
		food := colorful.Hsl(h.theme.FoodHue(st.Tick), 1, 0.5)
		cell(*st.Food, "()", base.Foreground(hueColor(food)))
	}
	if st.PowerUp != nil {
		pc := colorful.Hsl(st.PowerUp.Kind.Hue(), 0.9, 0.6)
		g := hud.PickupGlyph(st.PowerUp.Kind)
		cell(st.PowerUp.Cell, "["+g, base.Foreground(hueColor(pc)).Bold(true))
	}
	for i := len(st.Segments) - 1; i >= 0; i-- {
		col := hueColor(h.theme.SegmentColor(st.Tick, i))
		glyph := "  "
		if i == 0 {
			glyph = "::"
		}
		cell(st.Segments[i], glyph, base.Background(col).Foreground(tcellColor(h.theme.Background)))
	}

	midY := oy + st.Canvas.Rows()/2
	center := func(y int, s string, style tcell.Style) {
		h.put(ox+(st.Canvas.Cols()*cellWidth-len(s))/2, y, s, style)
	}
	switch {
	case st.IsOver:
		title, lines := hud.OverlayLines(st)
		center(midY-2, title, base.Foreground(tcellColor(h.theme.GameOver)).Bold(true))
		for i, l := range lines {
			center(midY+i, l, text)
		}
	case st.Paused:
		center(midY, "PAUSED", text.Bold(true))
	}

	y := oy + 1
	for _, m := range h.messages.Visible(now) {
		if m.Alpha(now) <= 0 {
			continue
		}
		center(y, m.Text, base.Foreground(tcellColor(m.Color)).Bold(true))
		y++
	}
	h.screen.Show()
}

func (h *Host) drawBorder(x0, y0, x1Off, y1Off int, style tcell.Style) {
	x1, y1 := x0+x1Off, y0+y1Off
	for x := x0 + 1; x < x1; x++ {
		h.screen.SetContent(x, y0, tcell.RuneHLine, nil, style)
		h.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		h.screen.SetContent(x0, y, tcell.RuneVLine, nil, style)
		h.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	h.screen.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	h.screen.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	h.screen.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	h.screen.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}
