// Package chime synthesizes the celebration bells for an evergreen scene
// and plays them through the system speaker with gopxl/beep.
//
// Sounds are built from sine partials under a decaying envelope, so no
// audio assets ship with the module. A Player satisfies
// evergreen.SoundPlayer:
//
//	p := chime.NewPlayer(chime.DefaultConfig())
//	if err := p.Init(); err != nil {
//		log.Printf("audio disabled: %v", err)
//	}
//	scene.SetSoundPlayer(p)
package chime

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Note frequencies in Hz for the jingle.
const (
	NoteE5  = 659.25
	NoteGs5 = 830.61
	NoteB5  = 987.77
	NoteE6  = 1318.51
)

const (
	bellAttack = 4 * time.Millisecond
	// noteSpacing is the gap between successive jingle notes.
	noteSpacing = 90 * time.Millisecond
)

// partial is one overtone of a bell: a frequency ratio over the
// fundamental, its amplitude and how fast it dies relative to the
// fundamental.
type partial struct {
	ratio, amp, decay float64
}

// Slightly stretched overtones read as metal rather than organ.
var bellPartials = []partial{
	{1, 0.55, 1},
	{2.01, 0.25, 0.6},
	{3.02, 0.12, 0.4},
	{4.17, 0.08, 0.25},
}

// decay shapes a streamer with a linear attack and an exponential tail. It
// ends after total samples whatever the source does.
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	total    int
	tau      float64
}

// NewDecay wraps s so it rises over attack, then falls by e every tail/4,
// and stops after duration.
func NewDecay(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		total:    total,
		tau:      float64(total) / 4,
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.position >= d.total {
		return 0, false
	}
	if left := d.total - d.position; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-float64(d.position) / d.tau)
		if d.position < d.attack {
			vol *= float64(d.position) / float64(d.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok && n > 0
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales s by a linear gain. Zero or less is silent.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Bell returns a struck bell at freq lasting duration.
func Bell(rate beep.SampleRate, freq float64, duration time.Duration) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(bellPartials))
	for _, p := range bellPartials {
		f := freq * p.ratio
		if f >= float64(rate)/2 {
			continue
		}
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, fmt.Errorf("bell partial %.1f Hz: %w", f, err)
		}
		d := time.Duration(float64(duration) * p.decay)
		parts = append(parts, newVolume(NewDecay(tone, d, bellAttack, rate), p.amp))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("bell at %.1f Hz is above the %d Hz Nyquist limit", freq, int(rate)/2)
	}
	return beep.Mix(parts...), nil
}

// Jingle returns the celebration arpeggio: E major rising over an octave,
// each bell ringing into the next.
func Jingle(rate beep.SampleRate) (beep.Streamer, error) {
	notes := []float64{NoteE5, NoteGs5, NoteB5, NoteE6}
	voices := make([]beep.Streamer, 0, len(notes))
	for i, f := range notes {
		ring := 900 * time.Millisecond
		if i == len(notes)-1 {
			ring = 1600 * time.Millisecond
		}
		b, err := Bell(rate, f, ring)
		if err != nil {
			return nil, fmt.Errorf("jingle: %w", err)
		}
		lead := rate.N(time.Duration(i) * noteSpacing)
		voices = append(voices, beep.Seq(beep.Silence(lead), b))
	}
	return beep.Mix(voices...), nil
}

// JingleDuration is how long Jingle rings from start to silence.
func JingleDuration() time.Duration {
	return 3*noteSpacing + 1600*time.Millisecond
}
