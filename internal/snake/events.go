package snake

import (
	"fmt"
	"strings"
)

// Event categories recorded by the engine.
const (
	CategoryInput   = "input"
	CategoryMove    = "move"
	CategoryFood    = "food"
	CategoryState   = "state"
	CategoryScore   = "score"
	CategoryPowerUp = "powerup"
)

// EventEntry is one recorded engine event.
type EventEntry struct {
	Tick     int
	Category string  // input, move, food, state, score, powerup
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] food     eat              (220,200)
func (e EventEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-8s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// EventLog collects structured engine events. It is unbounded and meant for
// headless runs and tests; interactive hosts leave it unset.
type EventLog struct {
	entries []EventEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-step head
// positions are also recorded.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (l *EventLog) Add(tick int, category, key, value string, numVal float64) {
	l.entries = append(l.entries, EventEntry{
		Tick:     tick,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (l *EventLog) AddVerbose(tick int, category, key, value string, numVal float64) {
	if !l.verbose {
		return
	}
	l.Add(tick, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (l *EventLog) Entries() []EventEntry {
	return l.entries
}

// Reset drops every entry.
func (l *EventLog) Reset() {
	l.entries = l.entries[:0]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Count returns how many entries match the given category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (l *EventLog) LastOf(category, key string) (EventEntry, bool) {
	entries := l.Filter(category, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FirstTick returns the tick of the first entry matching category+key, or -1.
func (l *EventLog) FirstTick(category, key string) int {
	for _, e := range l.entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (l *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range l.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
