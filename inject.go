package evergreen

type syntheticKind uint8

const (
	synthHover   syntheticKind = iota // move, no button
	synthPress                        // left button goes down
	synthHeld                         // move with the left button down
	synthRelease                      // left button goes up
	synthWheel                        // scroll by wheel notches
)

// syntheticEvent is one queued frame of pointer input, in the same screen
// coordinates screenshots use.
type syntheticEvent struct {
	kind  syntheticKind
	x, y  float64
	wheel float64
}

func (e syntheticEvent) pressed() bool {
	return e.kind == synthPress || e.kind == synthHeld
}

func (s *Scene) inject(kind syntheticKind, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: kind, x: x, y: y})
}

// InjectHover queues a pointer move with no button held. Hover enter and
// leave fire exactly as for the real mouse.
func (s *Scene) InjectHover(x, y float64) { s.inject(synthHover, x, y) }

// InjectPress queues a left-button press at (x, y).
func (s *Scene) InjectPress(x, y float64) { s.inject(synthPress, x, y) }

// InjectMove queues a move with the button held, for drags between
// InjectPress and InjectRelease.
func (s *Scene) InjectMove(x, y float64) { s.inject(synthHeld, x, y) }

// InjectRelease queues a left-button release at (x, y).
func (s *Scene) InjectRelease(x, y float64) { s.inject(synthRelease, x, y) }

// InjectClick queues a press and a release at (x, y). Takes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 evenly spaced held
// moves and a release at (toX, toY). frames is at least 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	s.InjectPress(fromX, fromY)
	for i := 1; i < frames-1; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues a scroll of notches; positive zooms in.
func (s *Scene) InjectWheel(notches float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: synthWheel, wheel: notches})
}

// OrnamentScreenPos returns where ornament i currently appears on screen.
// ok is false for an unknown index or an ornament behind the camera.
func (s *Scene) OrnamentScreenPos(i int) (x, y float64, ok bool) {
	if i < 0 || i >= len(s.tree.Ornaments) {
		return 0, 0, false
	}
	x, y, _, _, ok = s.tree.OrnamentCircle(i, s.camera)
	return x, y, ok
}

// InjectOrnamentHover queues a hover over ornament i at its current
// position. Returns false if the ornament is not on screen.
func (s *Scene) InjectOrnamentHover(i int) bool {
	x, y, ok := s.OrnamentScreenPos(i)
	if ok {
		s.InjectHover(x, y)
	}
	return ok
}

// InjectOrnamentClick queues a click on ornament i at its current
// position. Returns false if the ornament is not on screen.
func (s *Scene) InjectOrnamentClick(i int) bool {
	x, y, ok := s.OrnamentScreenPos(i)
	if ok {
		s.InjectClick(x, y)
	}
	return ok
}

// processInjectedInput consumes one queued event. Pointer events drive
// pointer 0. Returns true if an event was consumed, in which case the real
// mouse is skipped this frame.
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	s.injectQueue = append(s.injectQueue[:0], s.injectQueue[1:]...)

	if evt.kind == synthWheel {
		if !s.splashing() {
			s.camera.Zoom(evt.wheel)
		}
		return true
	}
	var button MouseButton
	if evt.kind != synthHover {
		button = MouseButtonLeft
	}
	s.processPointer(0, evt.x, evt.y, evt.pressed(), button, mods)
	return true
}
