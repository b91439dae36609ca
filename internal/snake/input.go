package snake

import (
	"math"
	"strings"
	"time"
)

// Swipe thresholds. A gesture must be quicker than DefaultMaxSwipeTime and
// longer than DefaultMinSwipeDistance to count.
const (
	DefaultMinSwipeDistance = 20.0
	DefaultMaxSwipeTime     = 400 * time.Millisecond
)

// Action is a non-directional command carried by an input.
type Action int

const (
	ActionNone Action = iota
	ActionRestart // Space/Enter: only effective once the game is over
	ActionReset   // R: abandon the current game at any time
	ActionPause
	ActionMute
)

func (a Action) String() string {
	switch a {
	case ActionRestart:
		return "restart"
	case ActionReset:
		return "reset"
	case ActionPause:
		return "pause"
	case ActionMute:
		return "mute"
	}
	return "none"
}

// Input is a decoded key press or gesture. The zero value means the raw
// input was not recognised.
type Input struct {
	Direction Direction
	Action    Action
}

// Empty reports whether the input carries nothing.
func (in Input) Empty() bool {
	return in.Direction == None && in.Action == ActionNone
}

// Swipe is a completed touch gesture.
type Swipe struct {
	DX, DY   float64
	Duration time.Duration
}

// InputQueue turns raw keys and swipes into directions and resolves the
// pending request against the current heading once per tick.
type InputQueue struct {
	MinSwipeDistance float64
	MaxSwipeTime     time.Duration
}

// NewInputQueue returns a queue with the default swipe thresholds.
func NewInputQueue() *InputQueue {
	return &InputQueue{
		MinSwipeDistance: DefaultMinSwipeDistance,
		MaxSwipeTime:     DefaultMaxSwipeTime,
	}
}

// keyBindings uses ebiten's Key.String() vocabulary; letters are matched
// case-insensitively so terminal runes map onto the same table.
var keyBindings = map[string]Input{
	"ARROWUP":    {Direction: Up},
	"ARROWDOWN":  {Direction: Down},
	"ARROWLEFT":  {Direction: Left},
	"ARROWRIGHT": {Direction: Right},
	"W":          {Direction: Up},
	"S":          {Direction: Down},
	"A":          {Direction: Left},
	"D":          {Direction: Right},
	"SPACE":      {Action: ActionRestart},
	"ENTER":      {Action: ActionRestart},
	"R":          {Action: ActionReset},
	"P":          {Action: ActionPause},
	"M":          {Action: ActionMute},
}

// SubmitKey decodes a key name. Unknown keys decode to the empty Input.
func (q *InputQueue) SubmitKey(name string) Input {
	return keyBindings[strings.ToUpper(strings.TrimPrefix(name, "Key"))]
}

// SubmitSwipe quantises a swipe to the nearest quarter turn. Gestures that
// are too slow or too short decode to the empty Input.
func (q *InputQueue) SubmitSwipe(s Swipe) Input {
	if s.Duration >= q.MaxSwipeTime {
		return Input{}
	}
	if math.Hypot(s.DX, s.DY) <= q.MinSwipeDistance {
		return Input{}
	}
	return Input{Direction: DirectionFromAngle(math.Atan2(s.DY, s.DX))}
}

// DirectionFromAngle maps a screen-space angle (y grows downwards) to the
// nearest of the four headings.
func DirectionFromAngle(angle float64) Direction {
	quadrants := [4]Direction{Right, Down, Left, Up}
	i := int(math.Round(angle / (math.Pi / 2)))
	return quadrants[((i%4)+4)%4]
}

// Resolve returns requested unless it is None or the exact reverse of
// current, in which case current is kept.
func (q *InputQueue) Resolve(current, requested Direction) Direction {
	if requested == None || requested.IsOpposite(current) {
		return current
	}
	return requested
}
