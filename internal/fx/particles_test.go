package fx

import (
	"math"
	"testing"
	"time"

	"github.com/Garsondee/Snakely/internal/snake"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var _ snake.ParticleSink = (*System)(nil)

func TestSpawn_BurstAtCellCentre(t *testing.T) {
	s := NewSystem(1)
	s.Spawn(snake.Cell{X: 40, Y: 60}, 20, 350, 0)
	if s.Len() != DefaultCount {
		t.Fatalf("spawned %d particles, want %d", s.Len(), DefaultCount)
	}
	for i, p := range s.P {
		if p.X != 50 || p.Y != 70 {
			t.Fatalf("particle %d at (%.1f,%.1f), want (50,70)", i, p.X, p.Y)
		}
		if speed := math.Hypot(p.VX, p.VY); math.Abs(speed-2) > 1e-9 {
			t.Fatalf("particle %d speed %.3f, want 2", i, speed)
		}
		if p.Size != 10 || p.Life != DefaultLifetime {
			t.Fatalf("particle %d size=%.1f life=%v", i, p.Size, p.Life)
		}
		h, _, _ := p.Color.Hsl()
		if d := math.Abs(math.Mod(h-350+540, 360) - 180); d > hueJitter+0.5 {
			t.Fatalf("particle %d hue %.1f too far from 350", i, h)
		}
	}
}

func TestTick_FadesFallsAndExpires(t *testing.T) {
	s := NewSystem(1)
	s.Count = 1
	s.Spawn(snake.Cell{}, 20, 0, 0)
	s.P[0].VX, s.P[0].VY = 0, 0

	s.Tick(500 * time.Millisecond)
	if s.Len() != 1 {
		t.Fatal("particle expired early")
	}
	p := s.P[0]
	if math.Abs(p.Alpha()-0.5) > 1e-9 || math.Abs(p.CurrentSize()-5) > 1e-9 {
		t.Fatalf("alpha=%.3f size=%.3f at half life", p.Alpha(), p.CurrentSize())
	}
	if p.VY <= 0 || p.Y <= 10 {
		t.Fatalf("gravity not applied: vy=%.3f y=%.3f", p.VY, p.Y)
	}

	s.Tick(500 * time.Millisecond)
	if s.Len() != 0 {
		t.Fatalf("%d particles outlived their lifetime", s.Len())
	}
}

func TestSpawn_ExplicitCount(t *testing.T) {
	s := NewSystem(1)
	s.Spawn(snake.Cell{}, 20, 120, snake.PowerUpBurst)
	if s.Len() != snake.PowerUpBurst {
		t.Fatalf("spawned %d particles, want %d", s.Len(), snake.PowerUpBurst)
	}
}

func TestAdd_CapOverwritesOldest(t *testing.T) {
	s := NewSystem(1)
	s.Max = 15
	s.Spawn(snake.Cell{X: 0, Y: 0}, 20, 0, 0)
	s.Spawn(snake.Cell{X: 100, Y: 0}, 20, 0, 0)
	if s.Len() != 15 {
		t.Fatalf("len = %d, want cap 15", s.Len())
	}
	for i := 0; i < 5; i++ {
		if s.P[i].X != 110 {
			t.Fatalf("slot %d not overwritten: x=%.1f", i, s.P[i].X)
		}
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatal("Clear left particles")
	}
}

func TestPremultiply(t *testing.T) {
	c := Premultiply(colorful.Color{R: 1, G: 0.5, B: 0}, 0.5)
	if c.A != 127 || c.R != 127 || c.B != 0 {
		t.Fatalf("Premultiply = %+v", c)
	}
	if full := Premultiply(colorful.Color{R: 1, G: 1, B: 1}, 2); full.A != 255 {
		t.Fatalf("alpha not clamped: %+v", full)
	}
}
