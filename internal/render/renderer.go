// Package render draws a snake.State onto an ebiten image. It only reads the
// state it is given.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/Garsondee/Snakely/internal/fx"
	"github.com/Garsondee/Snakely/internal/hud"
	"github.com/Garsondee/Snakely/internal/snake"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// HUDHeight is the band above the board reserved for score and effects.
const HUDHeight = 36

// Layer is drawn between the board and the HUD, in board pixels offset by
// the board origin. The particle system is one.
type Layer interface {
	Render(dst *ebiten.Image, offX, offY float32)
}

// Renderer draws the board, HUD, toasts and the game over overlay.
type Renderer struct {
	Theme    hud.Theme
	Messages *hud.MessageLog
	Overlay  Layer

	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
}

// NewRenderer loads the embedded Go fonts.
func NewRenderer(theme hud.Theme) (*Renderer, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &Renderer{
		Theme:    theme,
		Messages: hud.NewMessageLog(),
		regular:  regular,
		bold:     bold,
	}, nil
}

// BoardOrigin centres a canvas in a screen, leaving room for the HUD band.
func BoardOrigin(screenW, screenH int, c snake.CanvasSize) (x, y int) {
	x = max(0, (screenW-c.Width)/2)
	y = max(HUDHeight, HUDHeight+(screenH-HUDHeight-c.Height)/2)
	return x, y
}

// Draw renders one frame. now drives the cosmetic pulses and toast fades.
func (r *Renderer) Draw(dst *ebiten.Image, st snake.State, now time.Time) {
	b := dst.Bounds()
	c := st.Canvas
	ox, oy := BoardOrigin(b.Dx(), b.Dy(), c)
	fox, foy := float32(ox), float32(oy)

	dst.Fill(r.Theme.Background)
	vector.StrokeRect(dst, fox-1, foy-1, float32(c.Width)+2, float32(c.Height)+2, 2, r.Theme.Border, false)
	drawGrid(dst, ox, oy, c.Width, c.Height, c.CellSize, r.Theme.Grid)

	r.drawSnake(dst, st, fox, foy)
	r.drawFood(dst, st, fox, foy, now)
	r.drawPickup(dst, st, fox, foy, now)

	if r.Overlay != nil {
		r.Overlay.Render(dst, fox, foy)
	}

	r.drawToasts(dst, st, fox, foy, now)
	r.drawHUD(dst, st, b.Dx())

	switch {
	case st.IsOver:
		r.drawGameOver(dst, st, fox, foy)
	case st.Paused:
		r.drawBanner(dst, c, fox, foy, "PAUSED", r.Theme.Text)
	}
}

// drawGrid strokes the cell lines of a w x h board at (offX, offY).
func drawGrid(dst *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(dst, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(dst, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}

func (r *Renderer) drawSnake(dst *ebiten.Image, st snake.State, ox, oy float32) {
	cs := float32(st.Canvas.CellSize)
	// Tail first so the head ends up on top.
	for i := len(st.Segments) - 1; i >= 0; i-- {
		seg := st.Segments[i]
		x, y := ox+float32(seg.X), oy+float32(seg.Y)
		glow := cs * 0.25
		alpha := 0.2
		if i == 0 {
			glow = cs * 0.45
			alpha = 0.35
		}
		vector.FillRect(dst, x-glow/2, y-glow/2, cs-1+glow, cs-1+glow, fx.Premultiply(r.Theme.GlowColor(st.Tick, i), alpha), false)
		vector.FillRect(dst, x, y, cs-1, cs-1, r.Theme.SegmentColor(st.Tick, i).Clamped(), false)
	}
}

func (r *Renderer) drawFood(dst *ebiten.Image, st snake.State, ox, oy float32, now time.Time) {
	if st.Food == nil {
		return
	}
	cs := float32(st.Canvas.CellSize)
	hue := r.Theme.FoodHue(st.Tick)
	size := (cs - 1) * float32(r.Theme.Pulse(now, r.Theme.FoodPulse))
	offset := (size - (cs - 1)) / 2
	x, y := ox+float32(st.Food.X), oy+float32(st.Food.Y)

	vector.FillCircle(dst, x+cs/2, y+cs/2, cs/2+offset+2, fx.Premultiply(colorful.Hsl(hue, 0.7, 0.5), 0.3), true)
	vector.FillRect(dst, x-offset, y-offset, size, size, fx.Premultiply(colorful.Hsl(hue, 0.8, 0.6), 1), false)
}

func (r *Renderer) drawPickup(dst *ebiten.Image, st snake.State, ox, oy float32, now time.Time) {
	if st.PowerUp == nil {
		return
	}
	cs := float32(st.Canvas.CellSize)
	col := colorful.Hsl(st.PowerUp.Kind.Hue(), 0.9, 0.6)
	size := (cs - 1) * float32(r.Theme.Pulse(now, r.Theme.PowerUpPulse))
	offset := (size - (cs - 1)) / 2
	x, y := ox+float32(st.PowerUp.Cell.X), oy+float32(st.PowerUp.Cell.Y)

	vector.FillRect(dst, x-offset-5, y-offset-5, size+10, size+10, fx.Premultiply(col, 0.2), false)
	vector.FillRect(dst, x-offset, y-offset, size, size, fx.Premultiply(col, 0.8), false)

	face := &text.GoTextFace{Source: r.bold, Size: math.Max(8, float64(cs)*0.5)}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x+cs/2), float64(y+cs/2))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(dst, hud.PickupGlyph(st.PowerUp.Kind), face, op)
}

func (r *Renderer) drawToasts(dst *ebiten.Image, st snake.State, ox, oy float32, now time.Time) {
	face := &text.GoTextFace{Source: r.bold, Size: 20}
	y := float64(oy) + 50
	for _, m := range r.Messages.Visible(now) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(ox)+float64(st.Canvas.Width)/2, y)
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(m.Color)
		op.ColorScale.ScaleAlpha(float32(m.Alpha(now)))
		text.Draw(dst, m.Text, face, op)
		y += 28
	}
}

func (r *Renderer) drawHUD(dst *ebiten.Image, st snake.State, screenW int) {
	vector.FillRect(dst, 0, 0, float32(screenW), HUDHeight-4, r.Theme.ScoreBackground, false)
	face := &text.GoTextFace{Source: r.regular, Size: 16}
	left, right := hud.Lines(st)

	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 8)
	scoreCol := r.Theme.Text
	if st.NewBest() {
		scoreCol = r.Theme.HighScore
	}
	op.ColorScale.ScaleWithColor(scoreCol)
	text.Draw(dst, left, face, op)

	if right != "" {
		op = &text.DrawOptions{}
		op.GeoM.Translate(float64(screenW)-10, 8)
		op.PrimaryAlign = text.AlignEnd
		op.ColorScale.ScaleWithColor(r.Theme.HighScore)
		text.Draw(dst, right, face, op)
	}
}

func (r *Renderer) drawGameOver(dst *ebiten.Image, st snake.State, ox, oy float32) {
	c := st.Canvas
	vector.FillRect(dst, ox, oy, float32(c.Width), float32(c.Height), r.Theme.Shade, false)
	title, lines := hud.OverlayLines(st)
	cx := float64(ox) + float64(c.Width)/2
	y := float64(oy) + float64(c.Height)/2 - 60

	titleFace := &text.GoTextFace{Source: r.bold, Size: 32}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(r.Theme.GameOver)
	text.Draw(dst, title, titleFace, op)

	face := &text.GoTextFace{Source: r.regular, Size: 18}
	y += 50
	for _, line := range lines {
		col := r.Theme.Text
		if line == "NEW BEST!" {
			col = r.Theme.HighScore
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(cx, y)
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(col)
		text.Draw(dst, line, face, op)
		y += 26
	}
}

func (r *Renderer) drawBanner(dst *ebiten.Image, c snake.CanvasSize, ox, oy float32, msg string, col color.Color) {
	vector.FillRect(dst, ox, oy, float32(c.Width), float32(c.Height), r.Theme.Shade, false)
	face := &text.GoTextFace{Source: r.bold, Size: 28}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(ox)+float64(c.Width)/2, float64(oy)+float64(c.Height)/2)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(col)
	text.Draw(dst, msg, face, op)
}
