// Package fx holds the cosmetic effects layered over the board. Nothing here
// feeds back into game state.
package fx

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/Garsondee/Snakely/internal/snake"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Burst tuning. Speeds and gravity are per 16ms frame and scale with dt.
const (
	DefaultCount    = 10
	DefaultLifetime = time.Second
	MaxParticles    = 512

	frameStep   = 16 * time.Millisecond
	gravity     = 0.1
	hueJitter   = 20.0
	glowScale   = 2.0
	glowAlpha   = 0.25
	particleSat = 0.8
	particleLum = 0.6
)

// Particle is a single spark. Positions are in board pixels.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Age    time.Duration
	Life   time.Duration
	Color  colorful.Color
}

// Progress returns age/life clamped to [0,1].
func (p Particle) Progress() float64 {
	if p.Life <= 0 {
		return 1
	}
	return math.Min(1, math.Max(0, float64(p.Age)/float64(p.Life)))
}

// Alpha fades linearly to zero over the particle's life.
func (p Particle) Alpha() float64 {
	return 1 - p.Progress()
}

// CurrentSize shrinks with age.
func (p Particle) CurrentSize() float64 {
	return p.Size * p.Alpha()
}

// System is a capped particle pool. Once full, new particles overwrite the
// oldest slots in a ring.
type System struct {
	Max   int
	Count int // particles per burst
	P     []Particle

	rng    *rand.Rand
	ovrIdx int
	layer  *ebiten.Image
}

// NewSystem returns an empty pool.
func NewSystem(seed int64) *System {
	return &System{
		Max:   MaxParticles,
		Count: DefaultCount,
		P:     make([]Particle, 0, MaxParticles),
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404 -- cosmetic
	}
}

// Len returns the number of live particles.
func (s *System) Len() int { return len(s.P) }

// Clear drops every particle.
func (s *System) Clear() {
	s.P = s.P[:0]
	s.ovrIdx = 0
}

func (s *System) add(p Particle) {
	if len(s.P) < s.Max {
		s.P = append(s.P, p)
		return
	}
	if s.ovrIdx >= s.Max {
		s.ovrIdx = 0
	}
	s.P[s.ovrIdx] = p
	s.ovrIdx++
}

// Spawn emits count particles from the centre of origin, or s.Count when
// count is not positive. It satisfies snake.ParticleSink.
func (s *System) Spawn(origin snake.Cell, cellSize int, hue float64, count int) {
	if count <= 0 {
		count = s.Count
	}
	cs := float64(cellSize)
	cx := float64(origin.X) + cs/2
	cy := float64(origin.Y) + cs/2
	speed := 2 * cs / 20
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		h := math.Mod(hue+(s.rng.Float64()*2-1)*hueJitter+360, 360)
		s.add(Particle{
			X:     cx,
			Y:     cy,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Size:  cs * 0.5,
			Life:  DefaultLifetime,
			Color: colorful.Hsl(h, particleSat, particleLum),
		})
	}
}

// Tick ages and integrates every particle by dt and drops the expired ones.
func (s *System) Tick(dt time.Duration) {
	if dt <= 0 || len(s.P) == 0 {
		return
	}
	steps := float64(dt) / float64(frameStep)
	live := s.P[:0]
	for _, p := range s.P {
		p.Age += dt
		if p.Age >= p.Life {
			continue
		}
		p.VY += gravity * steps
		p.X += p.VX * steps
		p.Y += p.VY * steps
		live = append(live, p)
	}
	s.P = live
	if s.ovrIdx >= len(s.P) {
		s.ovrIdx = 0
	}
}

// Render draws every particle onto dst with additive blending. offX/offY
// translate board pixels to screen pixels.
func (s *System) Render(dst *ebiten.Image, offX, offY float32) {
	if len(s.P) == 0 {
		return
	}
	b := dst.Bounds()
	if s.layer == nil || s.layer.Bounds().Dx() != b.Dx() || s.layer.Bounds().Dy() != b.Dy() {
		if s.layer != nil {
			s.layer.Deallocate()
		}
		s.layer = ebiten.NewImage(b.Dx(), b.Dy())
	}
	s.layer.Clear()
	for _, p := range s.P {
		a := p.Alpha()
		size := float32(p.CurrentSize())
		if size <= 0 || a <= 0 {
			continue
		}
		x := offX + float32(p.X)
		y := offY + float32(p.Y)
		g := size * glowScale
		vector.FillRect(s.layer, x-g/2, y-g/2, g, g, Premultiply(p.Color, a*glowAlpha), false)
		vector.FillRect(s.layer, x-size/2, y-size/2, size, size, Premultiply(p.Color, a), false)
	}
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendLighter}
	dst.DrawImage(s.layer, op)
}

// Premultiply converts c to an ebiten-ready color at alpha a.
func Premultiply(c colorful.Color, a float64) color.RGBA {
	a = math.Min(1, math.Max(0, a))
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{
		R: uint8(float64(r) * a),
		G: uint8(float64(g) * a),
		B: uint8(float64(b) * a),
		A: uint8(255 * a),
	}
}
