package game

import (
	"image/color"
	"time"

	"github.com/Garsondee/Snakely/internal/fx"
	"github.com/Garsondee/Snakely/internal/snake"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// tapRadius is the furthest a touch may travel and still count as a tap.
const tapRadius = 10

type touchTrack struct {
	startX, startY int
	lastX, lastY   int
	at             time.Time
}

// swipeTracker follows touches from press to release. ebiten reports no
// position for a released touch, so the last seen position is kept.
type swipeTracker struct {
	active map[ebiten.TouchID]*touchTrack
}

func newSwipeTracker() *swipeTracker {
	return &swipeTracker{active: map[ebiten.TouchID]*touchTrack{}}
}

func (t *swipeTracker) begin(id ebiten.TouchID, x, y int, at time.Time) {
	t.active[id] = &touchTrack{startX: x, startY: y, lastX: x, lastY: y, at: at}
}

func (t *swipeTracker) move(id ebiten.TouchID, x, y int) {
	if tr, ok := t.active[id]; ok {
		tr.lastX, tr.lastY = x, y
	}
}

// end closes a touch and returns the gesture. tap is true for a short touch
// that barely moved.
func (t *swipeTracker) end(id ebiten.TouchID, at time.Time) (s snake.Swipe, tap, ok bool) {
	tr, ok := t.active[id]
	if !ok {
		return snake.Swipe{}, false, false
	}
	delete(t.active, id)
	s = snake.Swipe{
		DX:       float64(tr.lastX - tr.startX),
		DY:       float64(tr.lastY - tr.startY),
		Duration: at.Sub(tr.at),
	}
	tap = s.DX*s.DX+s.DY*s.DY <= tapRadius*tapRadius && s.Duration < snake.DefaultMaxSwipeTime
	return s, tap, true
}

// handleTouch feeds finished swipes to the engine. The first touch switches
// the engine to the slower touch tick rate; a tap on the game over screen
// starts a new game.
func (g *Game) handleTouch(now time.Time) {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.swipes.begin(id, x, y, now)
		g.engine.SetTouch(true)
	}
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.swipes.move(id, x, y)
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		s, tap, ok := g.swipes.end(id, now)
		if !ok {
			continue
		}
		if tap && g.engine.IsOver() {
			g.pressKey("Space")
			continue
		}
		g.engine.HandleSwipe(s)
	}
}

func powerUpColor(k snake.PowerUpKind) color.RGBA {
	return fx.Premultiply(colorful.Hsl(k.Hue(), 0.9, 0.6), 1)
}
