package snake

import (
	"testing"
	"time"
)

func TestPowerUp_SpeedShortensTickUntilExpiry(t *testing.T) {
	var events []string
	s := NewSim(
		WithEngine(
			WithPowerUps(true),
			OnPowerUp(func(k PowerUpKind, active bool) {
				if active {
					events = append(events, "+"+k.String())
				} else {
					events = append(events, "-"+k.String())
				}
			}),
		),
		WithPickup(PowerUp{Cell: Cell{220, 200}, Kind: PowerUpSpeed}),
		WithFood(Cell{0, 0}),
	)
	s.Step()
	if got := s.Engine.TickInterval(); got != 70*time.Millisecond {
		t.Fatalf("interval under speed = %v, want 70ms", got)
	}
	st := s.State()
	if st.PowerUp != nil || len(st.Active) != 1 || st.Active[0].Kind != PowerUpSpeed {
		t.Fatalf("pickup=%v active=%v", st.PowerUp, st.Active)
	}
	if rem := st.Active[0].Remaining(s.Clock); rem != 5*time.Second {
		t.Fatalf("remaining = %v, want 5s", rem)
	}

	s.Advance(5 * time.Second)
	if got := s.Engine.TickInterval(); got != DefaultTickInterval {
		t.Fatalf("interval after expiry = %v", got)
	}
	if len(events) != 2 || events[0] != "+SPEED" || events[1] != "-SPEED" {
		t.Fatalf("power-up events = %v", events)
	}
}

func TestPowerUp_DoublePointsDoublesScore(t *testing.T) {
	s := NewSim(
		WithEngine(WithPowerUps(true)),
		WithPickup(PowerUp{Cell: Cell{220, 200}, Kind: PowerUpDoublePoints}),
		WithFood(Cell{240, 200}),
	)
	s.Engine.Step()
	s.Engine.Step()
	if got := s.State().Score; got != 2 {
		t.Fatalf("score = %d, want 2", got)
	}
}

func TestPowerUp_PickupBurstIsLargerThanFood(t *testing.T) {
	sink := &countingSink{}
	s := NewSim(
		WithEngine(WithPowerUps(true), WithParticles(sink)),
		WithPickup(PowerUp{Cell: Cell{220, 200}, Kind: PowerUpGhost}),
		WithFood(Cell{240, 200}),
	)
	s.Engine.Step()
	s.Engine.Step()
	if len(sink.counts) != 2 {
		t.Fatalf("bursts = %v, want pickup then food", sink.counts)
	}
	if sink.counts[0] != 15 || sink.spawns[0] != (Cell{220, 200}) || sink.hues[0] != PowerUpGhost.Hue() {
		t.Fatalf("pickup burst = %d at %v hue %.0f", sink.counts[0], sink.spawns[0], sink.hues[0])
	}
	if sink.counts[1] != 10 {
		t.Fatalf("food burst = %d, want 10", sink.counts[1])
	}
}

func TestPowerUp_GhostWrapsOnCollideBoard(t *testing.T) {
	s := NewSim(
		WithEngine(WithPowerUps(true)),
		WithSnake(Cell{360, 200}),
		WithHeading(Right),
		WithPickup(PowerUp{Cell: Cell{380, 200}, Kind: PowerUpGhost}),
		WithFood(Cell{0, 0}),
	)
	s.Engine.Step()
	if s.Engine.Boundary() != BoundaryWrap {
		t.Fatal("ghost should force wrap")
	}
	s.Engine.Step()
	if s.Engine.IsOver() {
		t.Fatal("ghost snake hit the wall")
	}
	segmentsEqual(t, s.State().Segments, Cell{0, 200})
}

func TestPowerUp_PauseExtendsDeadline(t *testing.T) {
	s := NewSim(
		WithEngine(WithPowerUps(true)),
		WithPickup(PowerUp{Cell: Cell{220, 200}, Kind: PowerUpGhost}),
		WithFood(Cell{0, 0}),
	)
	s.Step()
	until := s.State().Active[0].Until
	s.Engine.TogglePause()
	s.Advance(10 * time.Second)
	s.Engine.TogglePause()
	st := s.State()
	if len(st.Active) != 1 || st.Active[0].Until != until+10*time.Second {
		t.Fatalf("active after pause = %v, want deadline %v", st.Active, until+10*time.Second)
	}
}

func TestPowerUp_DisabledByDefault(t *testing.T) {
	s := NewSim(WithSimSeed(11), WithAutopilot())
	s.RunTicks(2000)
	if n := s.Log.Count(CategoryPowerUp, ""); n != 0 {
		t.Fatalf("recorded %d power-up events with power-ups off", n)
	}
}

func TestPowerUpKindMetadata(t *testing.T) {
	for _, k := range powerUpKinds {
		if k.Duration() <= 0 || k.String() == "" {
			t.Errorf("kind %d missing metadata", k)
		}
	}
	if PowerUpKind(99).String() != "PowerUpKind(99)" {
		t.Error("unknown kind should format numerically")
	}
}
