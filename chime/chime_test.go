package chime

import (
	"bytes"
	"log"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/phanxgames/evergreen"
)

var _ evergreen.SoundPlayer = (*Player)(nil)

const testRate = beep.SampleRate(44100)

// drain streams s to the end and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 1000)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never ended")
	return nil
}

func peak(samples [][2]float64) float64 {
	var m float64
	for _, s := range samples {
		m = math.Max(m, math.Max(math.Abs(s[0]), math.Abs(s[1])))
	}
	return m
}

// TestDecayLength verifies the envelope cuts an endless tone to its duration
func TestDecayLength(t *testing.T) {
	tone, err := generators.SineTone(testRate, 440)
	if err != nil {
		t.Fatal(err)
	}
	samples := drain(t, NewDecay(tone, 100*time.Millisecond, 5*time.Millisecond, testRate))

	if len(samples) != testRate.N(100*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", testRate.N(100*time.Millisecond), len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("Attack should start from silence, got %f", samples[0][0])
	}
	if p := peak(samples); p > 1 {
		t.Errorf("Envelope should never amplify, peak %f", p)
	}
}

// TestDecayFades verifies the tail is quieter than the head
func TestDecayFades(t *testing.T) {
	tone, _ := generators.SineTone(testRate, 440)
	samples := drain(t, NewDecay(tone, 200*time.Millisecond, time.Millisecond, testRate))

	quarter := len(samples) / 4
	head := peak(samples[:quarter])
	tail := peak(samples[3*quarter:])
	if tail >= head/5 {
		t.Errorf("Expected tail peak well below head: head %f, tail %f", head, tail)
	}
}

// TestBell verifies a bell rings for its duration within range
func TestBell(t *testing.T) {
	b, err := Bell(testRate, NoteE5, 500*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	samples := drain(t, b)
	if len(samples) != testRate.N(500*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", testRate.N(500*time.Millisecond), len(samples))
	}
	p := peak(samples)
	if p <= 0.1 || p > 1 {
		t.Errorf("Bell peak %f out of range", p)
	}
}

// TestBellAboveNyquist verifies an inaudible fundamental is rejected
func TestBellAboveNyquist(t *testing.T) {
	if _, err := Bell(testRate, 30000, time.Second); err == nil {
		t.Error("Expected error for a bell above the Nyquist limit")
	}
}

// TestJingleLength verifies the arpeggio lasts JingleDuration
func TestJingleLength(t *testing.T) {
	j, err := Jingle(testRate)
	if err != nil {
		t.Fatal(err)
	}
	samples := drain(t, j)
	want := testRate.N(JingleDuration())
	if d := len(samples) - want; d < -1 || d > 1 {
		t.Errorf("Expected about %d samples, got %d", want, len(samples))
	}
	if peak(samples) == 0 {
		t.Error("Jingle should not be silent")
	}
}

// TestJingleStaggered verifies later notes have not started at the head
func TestJingleStaggered(t *testing.T) {
	j, _ := Jingle(testRate)
	samples := drain(t, j)
	// Only the first bell sounds before the second note's entry.
	first, _ := Bell(testRate, NoteE5, 900*time.Millisecond)
	solo := drain(t, first)
	lead := testRate.N(noteSpacing)
	for i := 0; i < lead; i++ {
		if math.Abs(samples[i][0]-solo[i][0]) > 1e-9 {
			t.Fatalf("Sample %d differs from the lone first bell", i)
		}
	}
}

// TestPlayerMuteSilences verifies muting zeroes the output without
// dropping the ringing chime
func TestPlayerMuteSilences(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	if !p.Muted() {
		t.Fatal("Default player should start muted")
	}
	p.Chime()
	if p.Pending() != 1 {
		t.Fatalf("Expected 1 pending chime, got %d", p.Pending())
	}

	buf := make([][2]float64, 2048)
	p.Streamer().Stream(buf)
	if peak(buf) != 0 {
		t.Error("Muted player should stream silence")
	}

	p.SetMuted(false)
	p.Streamer().Stream(buf)
	if peak(buf) == 0 {
		t.Error("Unmuted player should stream the chime")
	}
}

// TestPlayerZeroVolume verifies zero gain stays silent when unmuted
func TestPlayerZeroVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 0
	cfg.Muted = false
	p := NewPlayer(cfg)
	p.Chime()
	buf := make([][2]float64, 2048)
	p.Streamer().Stream(buf)
	if peak(buf) != 0 {
		t.Error("Zero volume should stream silence")
	}
}

// TestPlayerRing verifies single bells join the mix
func TestPlayerRing(t *testing.T) {
	p := NewPlayer(Config{Volume: 1})
	if err := p.Ring(NoteB5); err != nil {
		t.Fatal(err)
	}
	if err := p.Ring(30000); err == nil {
		t.Error("Expected error for an out of range bell")
	}
	if p.Pending() != 1 {
		t.Errorf("Expected 1 pending, got %d", p.Pending())
	}
	p.Close()
	if p.Pending() != 0 {
		t.Errorf("Close should drop pending chimes, got %d", p.Pending())
	}
}

// TestChimeLogsLowRate verifies a jingle that cannot be built is reported
func TestChimeLogsLowRate(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	p := NewPlayer(Config{SampleRate: beep.SampleRate(1000), Volume: 1})
	p.Chime()

	if p.Pending() != 0 {
		t.Errorf("Expected nothing ringing, got %d", p.Pending())
	}
	if !strings.Contains(buf.String(), "chime: jingle") {
		t.Errorf("Expected the jingle error to be logged, got %q", buf.String())
	}
}
