package evergreen

import (
	"math"
	"testing"
)

func snapshotY(f *ParticleField) []float64 {
	ys := make([]float64, f.Len())
	for i := range ys {
		ys[i] = f.Position(i).Y
	}
	return ys
}

func TestFallingDriftStep(t *testing.T) {
	cfg := AtmosphericConfig()
	f := NewParticleField(cfg, NewRand(2))
	wrap := f.Wrap()

	elapsed := 0.0
	for frame := 0; frame < 500; frame++ {
		before := snapshotY(f)
		elapsed += 1.0 / 60
		f.Update(elapsed)
		for i, y0 := range before {
			y := f.Position(i).Y
			want := y0 - f.Speed(i)
			if want < wrap.Min {
				want = wrap.Max
			}
			if y != want {
				t.Fatalf("frame %d particle %d: y = %f, want %f", frame, i, y, want)
			}
		}
	}
}

func TestFallingDriftSway(t *testing.T) {
	cfg := boxConfig(3)
	f := NewParticleField(cfg, NewRand(1))
	before := make([]Vec3, f.Len())
	for i := range before {
		before[i] = f.Position(i)
	}
	const elapsed = 2.0
	f.Update(elapsed)
	for i := range before {
		a := elapsed*0.5 + float64(i)
		dx := f.Position(i).X - before[i].X
		dz := f.Position(i).Z - before[i].Z
		if math.Abs(dx-math.Sin(a)*cfg.Drift) > 1e-12 {
			t.Errorf("particle %d dx = %g, want %g", i, dx, math.Sin(a)*cfg.Drift)
		}
		if math.Abs(dz-math.Cos(a)*cfg.Drift) > 1e-12 {
			t.Errorf("particle %d dz = %g, want %g", i, dz, math.Cos(a)*cfg.Drift)
		}
	}
}

func TestFallingDriftScenario(t *testing.T) {
	// N=200 in y∈[-5,15] at speed 0.01, 1000 frames.
	f := NewParticleField(boxConfig(200), NewRand(9))
	for frame := 1; frame <= 1000; frame++ {
		f.Update(float64(frame) / 60)
		for i := 0; i < f.Len(); i++ {
			y := f.Position(i).Y
			if y > 15 {
				t.Fatalf("frame %d particle %d: y = %f above 15", frame, i, y)
			}
			if y < -5 {
				t.Fatalf("frame %d particle %d: y = %f left below -5", frame, i, y)
			}
		}
	}
}

func TestFallingDriftWrapsToTop(t *testing.T) {
	f := NewParticleField(boxConfig(1), NewRand(1))
	f.positions[0].Y = -4.995
	f.Update(0.1) // -5.005 < -5
	if got := f.Position(0).Y; got != 15 {
		t.Errorf("y = %f, want wrap to 15", got)
	}
}

func TestRisingSwirlMonotoneBetweenWraps(t *testing.T) {
	cfg := GlitterConfig()
	f := NewParticleField(cfg, NewRand(4))
	wrap := f.Wrap()
	elapsed := 0.0
	for frame := 0; frame < 2000; frame++ {
		before := snapshotY(f)
		elapsed += 1.0 / 60
		f.Update(elapsed)
		for i, y0 := range before {
			y := f.Position(i).Y
			rose := y0 + f.Speed(i)
			switch {
			case rose > wrap.Max:
				if y != wrap.Min {
					t.Fatalf("frame %d particle %d: y = %f, want reset to %f", frame, i, y, wrap.Min)
				}
			case y != rose:
				t.Fatalf("frame %d particle %d: y = %f, want %f", frame, i, y, rose)
			}
			if y > wrap.Max {
				t.Fatalf("frame %d particle %d: y = %f above %f", frame, i, y, wrap.Max)
			}
		}
	}
}

func TestRisingSwirlOrbitIsPureFunctionOfTime(t *testing.T) {
	cfg := GlitterConfig()
	a := NewParticleField(cfg, NewRand(8))
	b := NewParticleField(cfg, NewRand(8))

	// a takes many small steps, b jumps straight to the same time.
	for frame := 1; frame <= 90; frame++ {
		a.Update(float64(frame) / 60)
	}
	b.Update(1.5)

	for i := 0; i < a.Len(); i++ {
		pa, pb := a.Position(i), b.Position(i)
		if math.Abs(pa.X-pb.X) > 1e-9 || math.Abs(pa.Z-pb.Z) > 1e-9 {
			t.Fatalf("particle %d orbit differs: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestRisingSwirlRadius(t *testing.T) {
	cfg := GlitterConfig()
	f := NewParticleField(cfg, NewRand(12))
	const elapsed = 3.3
	f.Update(elapsed)
	for i := 0; i < f.Len(); i++ {
		want := f.radii[i] + math.Sin(elapsed*0.5+float64(i))*cfg.Wobble
		got := f.Position(i).RadialDistance()
		if math.Abs(math.Abs(want)-got) > 1e-9 {
			t.Fatalf("particle %d radius = %f, want %f", i, got, want)
		}
	}
}

func TestScaledStepIndependentOfFrameRate(t *testing.T) {
	cfg := boxConfig(20)
	cfg.Step = StepScaled
	cfg.Wrap = Range{-1000, 1000}

	fast := NewParticleField(cfg, NewRand(6))
	slow := NewParticleField(cfg, NewRand(6))

	for frame := 1; frame <= 120; frame++ {
		fast.Update(float64(frame) / 120)
	}
	for frame := 1; frame <= 30; frame++ {
		slow.Update(float64(frame) / 30)
	}
	for i := 0; i < fast.Len(); i++ {
		if math.Abs(fast.Position(i).Y-slow.Position(i).Y) > 1e-9 {
			t.Fatalf("particle %d: y differs across frame rates: %f vs %f",
				i, fast.Position(i).Y, slow.Position(i).Y)
		}
	}
	// One second at 60 reference frames with speed 0.01 drops 0.6 units.
	fresh := NewParticleField(cfg, NewRand(6))
	if d := fresh.Position(0).Y - fast.Position(0).Y; math.Abs(d-0.6) > 1e-9 {
		t.Errorf("dropped %f, want 0.6", d)
	}
}

func TestScaledStepIgnoresTimeGoingBackwards(t *testing.T) {
	cfg := boxConfig(1)
	cfg.Step = StepScaled
	f := NewParticleField(cfg, NewRand(1))
	f.Update(1)
	y := f.Position(0).Y
	f.Update(0.5)
	if f.Position(0).Y != y {
		t.Errorf("y moved on a backwards step: %f -> %f", y, f.Position(0).Y)
	}
}

func BenchmarkFieldUpdate(b *testing.B) {
	atmo := NewParticleField(AtmosphericConfig(), NewRand(1))
	glit := NewParticleField(GlitterConfig(), NewRand(1))
	for i := 0; i < b.N; i++ {
		t := float64(i) / 60
		atmo.Update(t)
		glit.Update(t)
	}
}
