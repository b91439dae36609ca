package hud

import (
	"image/color"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds every colour and animation constant the renderer uses.
type Theme struct {
	Background      color.RGBA
	Border          color.RGBA
	Grid            color.RGBA
	Text            color.RGBA
	GameOver        color.RGBA
	HighScore       color.RGBA
	ScoreBackground color.RGBA
	Shade           color.RGBA

	SnakeHueStart  float64 // hue of the head at tick 0
	SnakeHueSpeed  float64 // degrees per tick
	SegmentHueStep float64 // degrees added per segment down the body
	FoodHueSpeed   float64 // degrees per tick

	FoodPulse    time.Duration // period divisor of the food pulse
	PowerUpPulse time.Duration
	PulseAmount  float64
}

// DefaultTheme is the dark palette used by both hosts.
func DefaultTheme() Theme {
	return Theme{
		Background:      color.RGBA{R: 10, G: 10, B: 15, A: 255},
		Border:          color.RGBA{R: 0x24, G: 0x28, B: 0x3B, A: 255},
		Grid:            color.RGBA{R: 13, G: 13, B: 13, A: 13},
		Text:            color.RGBA{R: 0xA9, G: 0xB1, B: 0xD6, A: 255},
		GameOver:        color.RGBA{R: 0xF7, G: 0x76, B: 0x8E, A: 255},
		HighScore:       color.RGBA{R: 0x9E, G: 0xCE, B: 0x6A, A: 255},
		ScoreBackground: color.RGBA{R: 23, G: 24, B: 34, A: 230},
		Shade:           color.RGBA{R: 0, G: 0, B: 0, A: 170},

		SnakeHueStart:  180,
		SnakeHueSpeed:  0.5,
		SegmentHueStep: 5,
		FoodHueSpeed:   1,

		FoodPulse:    500 * time.Millisecond,
		PowerUpPulse: 200 * time.Millisecond,
		PulseAmount:  0.1,
	}
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// SegmentHue returns the hue of the index-th segment at the given tick.
func (t Theme) SegmentHue(tick, index int) float64 {
	return wrapHue(t.SnakeHueStart + t.SnakeHueSpeed*float64(tick) + t.SegmentHueStep*float64(index))
}

// SegmentColor is the fill of a segment; the head is drawn lighter.
func (t Theme) SegmentColor(tick, index int) colorful.Color {
	lum := 0.5
	if index == 0 {
		lum = 0.6
	}
	return colorful.Hsl(t.SegmentHue(tick, index), 0.7, lum)
}

// GlowColor is the halo drawn behind a segment.
func (t Theme) GlowColor(tick, index int) colorful.Color {
	if index == 0 {
		return colorful.Hsl(t.SegmentHue(tick, index), 0.9, 0.7)
	}
	return colorful.Hsl(t.SegmentHue(tick, index), 0.8, 0.6)
}

// FoodHue cycles independently of the snake.
func (t Theme) FoodHue(tick int) float64 {
	return wrapHue(t.FoodHueSpeed * float64(tick))
}

// Pulse returns a scale factor oscillating around 1 on wall-clock time.
func (t Theme) Pulse(now time.Time, period time.Duration) float64 {
	if period <= 0 {
		return 1
	}
	ms := float64(now.UnixMilli())
	return 1 + math.Sin(ms/float64(period.Milliseconds()))*t.PulseAmount
}
