package evergreen

import "math"

// Update advances every particle in place for the frame at elapsed seconds
// since the field was created. Call it once per rendered frame with
// monotonically increasing elapsed values. An empty field is a no-op.
func (f *ParticleField) Update(elapsed float64) {
	if len(f.positions) == 0 {
		return
	}

	step := 1.0
	if f.config.Step == StepScaled {
		step = (elapsed - f.prevElapsed) * f.config.ReferenceTPS
		if step < 0 {
			step = 0
		}
	}
	f.prevElapsed = elapsed

	switch f.config.Motion {
	case MotionFallingDrift:
		f.fall(elapsed, step)
	case MotionRisingSwirl:
		f.swirl(elapsed, step)
	}
}

// fall sinks each particle by its speed and nudges it sideways on a slow
// per-index sinusoid. Particles that drop below the band re-enter at the top.
func (f *ParticleField) fall(t, step float64) {
	k := f.config.Drift
	lo, hi := f.wrap.Min, f.wrap.Max
	for i := range f.positions {
		p := &f.positions[i]
		p.Y -= f.speeds[i] * step

		a := t*0.5 + float64(i)
		p.X += math.Sin(a) * k * step
		p.Z += math.Cos(a) * k * step

		if p.Y < lo {
			p.Y = hi
		}
	}
}

// swirl places each particle on its orbit for time t and lifts it by its
// speed. X and Z are pure functions of t; Y accumulates. Particles that rise
// above the band re-enter at the bottom.
func (f *ParticleField) swirl(t, step float64) {
	w := f.config.Swirl
	wob := f.config.Wobble
	lo, hi := f.wrap.Min, f.wrap.Max
	for i := range f.positions {
		p := &f.positions[i]
		phase := f.phases[i] + t*f.speeds[i]*w
		r := f.radii[i] + math.Sin(t*0.5+float64(i))*wob

		p.X = math.Cos(phase) * r
		p.Z = math.Sin(phase) * r
		p.Y += f.speeds[i] * step

		if p.Y > hi {
			p.Y = lo
		}
	}
}
