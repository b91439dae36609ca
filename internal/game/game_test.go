package game

import (
	"testing"
	"time"

	"github.com/Garsondee/Snakely/internal/hud"
	"github.com/Garsondee/Snakely/internal/render"
	"github.com/Garsondee/Snakely/internal/snake"
)

func TestFitBoardLeavesRoomForHUD(t *testing.T) {
	got := fitBoard(DefaultWidth, DefaultHeight)
	if got.CellSize != 30 || got.Width != 600 || got.Height != 600 {
		t.Fatalf("fitBoard(default) = %+v", got)
	}
	if small := fitBoard(100, 100); small.CellSize != MinTile {
		t.Fatalf("tiny window cell = %d, want %d", small.CellSize, MinTile)
	}
	if big := fitBoard(4000, 4000); big.CellSize != MaxTile {
		t.Fatalf("huge window cell = %d, want %d", big.CellSize, MaxTile)
	}
}

func TestSwipeTracker(t *testing.T) {
	st := newSwipeTracker()
	t0 := time.Unix(0, 0)

	st.begin(1, 100, 100, t0)
	st.move(1, 180, 110)
	s, tap, ok := st.end(1, t0.Add(150*time.Millisecond))
	if !ok || tap {
		t.Fatalf("end = ok %v tap %v", ok, tap)
	}
	if s.DX != 80 || s.DY != 10 || s.Duration != 150*time.Millisecond {
		t.Fatalf("swipe = %+v", s)
	}
	if got := snake.NewInputQueue().SubmitSwipe(s); got.Direction != snake.Right {
		t.Fatalf("swipe resolves to %v, want Right", got.Direction)
	}

	if _, _, ok := st.end(1, t0); ok {
		t.Fatal("ended touch reported twice")
	}

	st.begin(2, 50, 50, t0)
	st.move(2, 53, 52)
	if _, tap, _ := st.end(2, t0.Add(80*time.Millisecond)); !tap {
		t.Fatal("short still touch should be a tap")
	}

	st.begin(3, 50, 50, t0)
	if _, tap, _ := st.end(3, t0.Add(time.Second)); tap {
		t.Fatal("long press should not be a tap")
	}
}

func TestMuteLabel(t *testing.T) {
	if muteLabel(true) != "MUTED" || muteLabel(false) != "SOUND ON" {
		t.Fatal("unexpected mute labels")
	}
}

func TestPowerUpColor(t *testing.T) {
	speed := powerUpColor(snake.PowerUpSpeed)
	if speed.R <= speed.G || speed.R <= speed.B || speed.A != 255 {
		t.Fatalf("speed colour %+v should be opaque red", speed)
	}
	ghost := powerUpColor(snake.PowerUpGhost)
	if ghost.B <= ghost.R || ghost.B <= ghost.G {
		t.Fatalf("ghost colour %+v should be blue", ghost)
	}
}

func newTestGame(best int) *Game {
	now := time.Unix(100, 0)
	return &Game{
		renderer:    &render.Renderer{Messages: hud.NewMessageLog()},
		now:         func() time.Time { return now },
		bestAtStart: best,
	}
}

func TestOnEatAnnouncesNewBestOnce(t *testing.T) {
	g := newTestGame(3)
	for score := 1; score <= 6; score++ {
		g.onEat(snake.Cell{}, score)
	}
	got := g.renderer.Messages.Recent()
	if len(got) != 1 || got[0].Text != "NEW BEST!" {
		t.Fatalf("toasts = %+v", got)
	}
}

func TestOnEatQuietWithoutPreviousBest(t *testing.T) {
	g := newTestGame(0)
	g.onEat(snake.Cell{}, 5)
	if n := len(g.renderer.Messages.Recent()); n != 0 {
		t.Fatalf("first ever game produced %d toasts", n)
	}
}

func TestOnPowerUpToasts(t *testing.T) {
	g := newTestGame(0)
	g.onPowerUp(snake.PowerUpGhost, true)
	g.onPowerUp(snake.PowerUpGhost, false)
	got := g.renderer.Messages.Recent()
	if len(got) != 2 || got[0].Text != "GHOST ACTIVATED!" || got[1].Text != "GHOST EXPIRED" {
		t.Fatalf("toasts = %+v", got)
	}
	if got[1].Color != toastExpired {
		t.Fatalf("expiry colour = %+v", got[1].Color)
	}
}
