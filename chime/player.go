package chime

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Config sets up a Player.
type Config struct {
	SampleRate beep.SampleRate
	// Buffer is the speaker latency.
	Buffer time.Duration
	// Volume is a linear master gain in [0, 1].
	Volume float64
	// Muted is the initial mute state. Scenes start muted.
	Muted bool
}

// DefaultConfig returns 44.1 kHz, 100 ms of buffer, gain 0.6, muted.
func DefaultConfig() Config {
	return Config{
		SampleRate: beep.SampleRate(44100),
		Buffer:     100 * time.Millisecond,
		Volume:     0.6,
		Muted:      true,
	}
}

// Player mixes chimes into a single stream. Chimes rung while muted still
// advance, so unmuting never releases a backlog.
type Player struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	out         *effects.Volume
	muted       bool
	initialized bool
}

// NewPlayer creates a Player. It makes no sound until Init succeeds.
func NewPlayer(cfg Config) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultConfig().Buffer
	}
	p := &Player{cfg: cfg, mixer: &beep.Mixer{}, muted: cfg.Muted}
	p.out = newVolume(p.mixer, cfg.Volume)
	if cfg.Muted {
		p.out.Silent = true
	}
	return p
}

// Init opens the speaker and starts streaming the mix.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.cfg.SampleRate, p.cfg.SampleRate.N(p.cfg.Buffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.out)
	p.initialized = true
	return nil
}

// Streamer returns the mixed, volume-scaled output.
func (p *Player) Streamer() beep.Streamer {
	return p.out
}

// Chime rings the celebration jingle. A rate too low for the jingle is
// logged and nothing rings.
func (p *Player) Chime() {
	j, err := Jingle(p.cfg.SampleRate)
	if err != nil {
		log.Printf("chime: %v", err)
		return
	}
	p.add(j)
}

// Ring strikes a single bell at freq.
func (p *Player) Ring(freq float64) error {
	b, err := Bell(p.cfg.SampleRate, freq, 900*time.Millisecond)
	if err != nil {
		return err
	}
	p.add(b)
	return nil
}

func (p *Player) add(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// SetMuted silences or restores the output.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.muted = muted
	p.out.Silent = muted || p.cfg.Volume <= 0
}

// Muted reports the mute state.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Pending returns the number of chimes still ringing.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Close drops every ringing chime.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		p.mixer.Clear()
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	p.initialized = false
}
