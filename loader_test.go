package evergreen

import (
	"math"
	"testing"
)

func newTestLoader(t *testing.T, delay float32) *Loader {
	t.Helper()
	l, err := NewLoader(delay)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	return l
}

func TestLoaderHidesAfterDelay(t *testing.T) {
	l := newTestLoader(t, 2)
	if !l.Visible() || l.Alpha() != 1 || !l.Pending() {
		t.Fatal("loader should start fully visible and pending")
	}

	for i := 0; i < 3; i++ {
		l.Update(0.5)
	}
	if !l.Pending() || l.Alpha() != 1 {
		t.Error("loader should hold until the delay passes")
	}

	// The hide fires at 2.0s and the fade starts in the same update.
	l.Update(0.5)
	if l.Pending() {
		t.Error("hide should fire at the delay")
	}
	if a := l.Alpha(); a <= 0 || a >= 1 {
		t.Errorf("alpha mid-fade = %v", a)
	}
	l.Update(0.6)
	if l.Visible() {
		t.Errorf("loader should be gone after the fade, alpha %v", l.Alpha())
	}
}

func TestLoaderCancel(t *testing.T) {
	l := newTestLoader(t, 1)
	l.Cancel()
	for i := 0; i < 10; i++ {
		l.Update(0.5)
	}
	if !l.Visible() || l.Alpha() != 1 {
		t.Error("cancelled loader should stay until Hide")
	}

	l.Hide()
	for i := 0; i < 3; i++ {
		l.Update(0.5)
	}
	if l.Visible() {
		t.Error("Hide should fade the loader out")
	}
}

func TestLoaderHideIdempotent(t *testing.T) {
	l := newTestLoader(t, 5)
	l.Hide()
	l.Update(0.5)
	a := l.Alpha()
	l.Hide()
	l.Update(0)
	if math.Abs(l.Alpha()-a) > 1e-6 {
		t.Errorf("second Hide restarted the fade: %v -> %v", a, l.Alpha())
	}
}

func TestLoaderRingPulse(t *testing.T) {
	l := newTestLoader(t, 10)
	if l.RingScale() != 1 || l.RingOpacity() != 0.5 {
		t.Errorf("ring at rest = %v/%v, want 1/0.5", l.RingScale(), l.RingOpacity())
	}
	l.Update(1) // half period
	if math.Abs(l.RingScale()-1.1) > 1e-6 || math.Abs(l.RingOpacity()-1) > 1e-6 {
		t.Errorf("ring at peak = %v/%v, want 1.1/1", l.RingScale(), l.RingOpacity())
	}
	l.Update(1)
	if math.Abs(l.RingScale()-1) > 1e-6 {
		t.Errorf("ring after a full period = %v, want 1", l.RingScale())
	}
}

func TestSceneLoaderUpdatesWithScene(t *testing.T) {
	cfg := DefaultSceneConfig()
	cfg.Seed = 2
	cfg.LoaderDelay = 0.5
	cfg.Grain = false
	s, err := NewScene(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 120; i++ {
		s.Update()
	}
	if s.Loader().Visible() {
		t.Error("loader should be gone 2s into a 0.5s delay")
	}
}

func TestSplashSwallowsPointer(t *testing.T) {
	s := testScene(t)
	i, cx, cy := frontOrnament(t, s)
	lx, ly, _ := findTarget(t, s, TargetLayer)
	loader, err := NewLoader(2)
	if err != nil {
		t.Fatal(err)
	}
	s.loader = loader
	az, dist := s.camera.Azimuth, s.camera.Distance

	s.InjectClick(cx, cy)
	s.InjectHover(cx, cy)
	s.InjectClick(lx, ly)
	s.InjectDrag(10, 10, 300, 10, 5)
	s.InjectWheel(3)
	for range 20 {
		s.Update()
	}
	if !loader.Visible() {
		t.Fatal("splash gone before its delay")
	}

	if n := s.confetti.AliveCount(); n != 0 {
		t.Errorf("confetti = %d under the splash, want 0", n)
	}
	if s.tree.Hover.IsHovered(i) {
		t.Error("ornament emphasized under the splash")
	}
	if s.tree.Rotation != 0 {
		t.Errorf("rotation = %v, want the tree unturned", s.tree.Rotation)
	}
	if s.camera.Azimuth != az || s.camera.Distance != dist {
		t.Errorf("camera moved under the splash: azimuth %v, distance %v", s.camera.Azimuth, s.camera.Distance)
	}

	for n := 0; loader.Visible() && n < 100; n++ {
		loader.Update(0.1)
	}
	if !s.InjectOrnamentClick(i) {
		t.Fatal("ornament went off screen")
	}
	s.Update()
	s.Update()
	if n := s.confetti.AliveCount(); n != 25 {
		t.Errorf("confetti = %d once the splash is gone, want 25", n)
	}
}
