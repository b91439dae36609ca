package snake

import (
	"fmt"
	"time"
)

// State is a read-only snapshot of a game, handed to renderers and
// observers. Mutating it has no effect on the engine.
type State struct {
	Segments         []Cell // head first
	Direction        Direction
	PendingDirection Direction
	Food             *Cell // nil only when the board is full
	Score            int
	Eats             int
	HighScore        int
	IsOver           bool
	Won              bool
	Paused           bool
	LastTick         time.Duration
	Clock            time.Duration
	Tick             int
	Canvas           CanvasSize
	Boundary         BoundaryMode
	PowerUp          *PowerUp
	Active           []ActiveEffect
}

// Head returns the first segment.
func (s State) Head() Cell {
	if len(s.Segments) == 0 {
		return Cell{}
	}
	return s.Segments[0]
}

// Len returns the snake length.
func (s State) Len() int {
	return len(s.Segments)
}

// NewBest reports whether the current score is a fresh high score.
func (s State) NewBest() bool {
	return s.Score > 0 && s.Score >= s.HighScore
}

// Summary returns a one-line description suitable for sharing.
func (s State) Summary() string {
	outcome := "playing"
	switch {
	case s.Won:
		outcome = "cleared the board"
	case s.IsOver:
		outcome = "game over"
	}
	return fmt.Sprintf("Snakely: score %02d, best %02d, length %d (%s)", s.Score, s.HighScore, s.Len(), outcome)
}
