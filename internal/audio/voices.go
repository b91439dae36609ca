package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// Tempo used to turn note values ("8n", "16n") into durations.
const tempoBPM = 120

// Envelope timings shared by every cue.
const (
	cueAttack      = 5 * time.Millisecond
	cueReleaseFrac = 0.5
)

// oscillator generates a single tone for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, duration: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.position >= start && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// NoteFreq parses scientific pitch notation ("C5", "F#3", "Bb4") into Hz
// with A4 = 440.
func NoteFreq(name string) (float64, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("note %q: too short", name)
	}
	base, ok := semitones[strings.ToUpper(name[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("note %q: unknown letter", name)
	}
	rest := name[1:]
	switch rest[0] {
	case '#':
		base++
		rest = rest[1:]
	case 'b':
		base--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("note %q: octave: %w", name, err)
	}
	midi := (octave+1)*12 + base
	return 440 * math.Pow(2, float64(midi-69)/12), nil
}

// NoteDuration converts a note value such as "4n" or "16n" to a duration at
// the fixed tempo.
func NoteDuration(value string) (time.Duration, error) {
	div, err := strconv.Atoi(strings.TrimSuffix(value, "n"))
	if err != nil || div <= 0 || !strings.HasSuffix(value, "n") {
		return 0, fmt.Errorf("note value %q: want <N>n", value)
	}
	quarter := time.Minute / tempoBPM
	return quarter * 4 / time.Duration(div), nil
}

// tone builds one enveloped note.
func tone(note, value string, wave WaveType, rate beep.SampleRate) (beep.Streamer, error) {
	freq, err := NoteFreq(note)
	if err != nil {
		return nil, err
	}
	d, err := NoteDuration(value)
	if err != nil {
		return nil, err
	}
	release := time.Duration(float64(d) * cueReleaseFrac)
	return newEnvelope(newOscillator(freq, d, wave, rate), d, cueAttack, release, rate), nil
}

// phrase plays notes back to back.
func phrase(notes []string, value string, wave WaveType, rate beep.SampleRate) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := tone(n, value, wave, rate)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return beep.Seq(parts...), nil
}
