package hud

import (
	"image/color"
	"math"
	"time"
)

const (
	messageMaxEntries = 8
	messageDuration   = 2 * time.Second
	messageFade       = 500 * time.Millisecond
)

// Toast is a short centred notice such as "NEW BEST!".
type Toast struct {
	Text     string
	Color    color.RGBA
	Created  time.Time
	Duration time.Duration
}

// Alpha ramps in and out over messageFade. It is zero once the toast is
// older than its duration.
func (m Toast) Alpha(now time.Time) float64 {
	age := now.Sub(m.Created)
	if age < 0 || age > m.Duration {
		return 0
	}
	in := float64(age) / float64(messageFade)
	out := float64(m.Duration-age) / float64(messageFade)
	return math.Min(1, math.Min(in, out))
}

// MessageLog is a ring buffer of toasts. Old entries are overwritten once
// the buffer is full.
type MessageLog struct {
	entries []Toast
	head    int
	count   int
}

// NewMessageLog creates a log with a fixed capacity.
func NewMessageLog() *MessageLog {
	return &MessageLog{
		entries: make([]Toast, messageMaxEntries),
	}
}

// Add appends a toast shown from now for the default duration.
func (ml *MessageLog) Add(text string, c color.RGBA, now time.Time) {
	ml.entries[ml.head] = Toast{
		Text:     text,
		Color:    c,
		Created:  now,
		Duration: messageDuration,
	}
	ml.head = (ml.head + 1) % messageMaxEntries
	if ml.count < messageMaxEntries {
		ml.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (ml *MessageLog) Recent() []Toast {
	result := make([]Toast, ml.count)
	for i := 0; i < ml.count; i++ {
		idx := (ml.head - ml.count + i + messageMaxEntries) % messageMaxEntries
		result[i] = ml.entries[idx]
	}
	return result
}

// Visible returns the toasts still on screen at now, oldest first.
func (ml *MessageLog) Visible(now time.Time) []Toast {
	var out []Toast
	for _, m := range ml.Recent() {
		if now.Sub(m.Created) <= m.Duration {
			out = append(out, m)
		}
	}
	return out
}

// Clear empties the log.
func (ml *MessageLog) Clear() {
	ml.head, ml.count = 0, 0
}
