package evergreen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Pointer 0 is the mouse; touches take slots 1 and up.
	maxPointers         = 10
	defaultDragDeadZone = 4.0
)

// --- Hit shapes ---

// HitCircle is a disc in screen space. Ornaments pick with one.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) is on or inside the disc.
func (c HitCircle) Contains(x, y float64) bool {
	d := Vec2{X: x - c.CenterX, Y: y - c.CenterY}
	return d.X*d.X+d.Y*d.Y <= c.Radius*c.Radius
}

// HitPolygon is a convex outline in screen space, wound either way.
// Foliage layers project to one.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) is on or inside the outline: no two
// edges may see the point on opposite sides.
func (p HitPolygon) Contains(x, y float64) bool {
	if len(p.Points) < 3 {
		return false
	}
	side := 0.0
	prev := p.Points[len(p.Points)-1]
	for _, cur := range p.Points {
		c := (cur.X-prev.X)*(y-prev.Y) - (cur.Y-prev.Y)*(x-prev.X)
		switch {
		case c == 0:
		case side == 0:
			side = c
		case (c > 0) != (side > 0):
			return false
		}
		prev = cur
	}
	return true
}

// --- Targets ---

// TargetKind identifies what a pointer is over.
type TargetKind uint8

const (
	TargetNone     TargetKind = iota // empty space
	TargetButton                     // an overlay button
	TargetOrnament                   // an ornament on the tree
	TargetLayer                      // a foliage layer
)

// Target is the hit-test result for one pointer position. Index is the
// button, ornament or layer index and is meaningless for TargetNone.
type Target struct {
	Kind  TargetKind
	Index int
}

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// PointerContext describes a hover enter or leave.
type PointerContext struct {
	Target    Target
	X, Y      float64 // screen position
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// ClickContext describes a press and release over the same target.
type ClickContext struct {
	Target    Target
	X, Y      float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// DragContext describes one step of a drag. DeltaX and DeltaY are the
// movement since the previous drag event.
type DragContext struct {
	Target         Target
	X, Y           float64
	StartX, StartY float64
	DeltaX, DeltaY float64
	Button         MouseButton
	PointerID      int
	Modifiers      KeyModifiers
}

// PinchContext describes a two-finger pinch. Scale is relative to the
// distance when the pinch started.
type PinchContext struct {
	CenterX, CenterY float64
	Scale            float64
	ScaleDelta       float64
	Rotation         float64
	RotDelta         float64
}

// --- Pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hit      Target
	hover    Target // last target under the pointer (for enter/leave)
	dragging bool
	orbiting bool        // this drag is turning the camera
	button   MouseButton // button captured at press time
}

// pinchState follows the two-finger gesture. Distances and angles are
// between the fingers.
type pinchState struct {
	active     bool
	startDist  float64
	startAngle float64
	lastDist   float64
	lastAngle  float64
}

// touchSlots assigns live touch IDs to pointer slots 1 through
// maxPointers-1.
type touchSlots struct {
	id   [maxPointers]ebiten.TouchID
	live [maxPointers]bool
}

// slot returns the slot tracking tid, claiming a free one for a new touch.
// It returns -1 when every slot is taken.
func (t *touchSlots) slot(tid ebiten.TouchID) int {
	free := -1
	for i := 1; i < maxPointers; i++ {
		switch {
		case t.live[i] && t.id[i] == tid:
			return i
		case !t.live[i] && free < 0:
			free = i
		}
	}
	if free > 0 {
		t.id[free], t.live[free] = tid, true
	}
	return free
}

func (t *touchSlots) release(i int) {
	t.id[i], t.live[i] = 0, false
}

// --- Handler registry ---

// handlerList holds the callbacks for one event kind in registration order.
type handlerList[C any] struct {
	ids []uint32
	fns []func(C)
}

func (l *handlerList[C]) add(id uint32, fn func(C)) {
	l.ids = append(l.ids, id)
	l.fns = append(l.fns, fn)
}

func (l *handlerList[C]) remove(id uint32) {
	for i, v := range l.ids {
		if v != id {
			continue
		}
		l.ids = append(l.ids[:i], l.ids[i+1:]...)
		l.fns[i] = nil
		l.fns = append(l.fns[:i], l.fns[i+1:]...)
		return
	}
}

func (l *handlerList[C]) fire(ctx C) {
	for _, fn := range l.fns {
		fn(ctx)
	}
}

func (l *handlerList[C]) len() int { return len(l.fns) }

type handlerRegistry struct {
	pointerEnter handlerList[PointerContext]
	pointerLeave handlerList[PointerContext]
	click        handlerList[ClickContext]
	dragStart    handlerList[DragContext]
	drag         handlerList[DragContext]
	dragEnd      handlerList[DragContext]
	pinch        handlerList[PinchContext]
	lastID       uint32
}

// CallbackHandle removes a callback registered with one of the Scene.On
// methods. The zero value is a no-op.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters the callback. Calling it again does nothing.
func (h CallbackHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// register adds fn to l and returns a handle that takes it out again.
func register[C any](r *handlerRegistry, l *handlerList[C], fn func(C)) CallbackHandle {
	r.lastID++
	id := r.lastID
	l.add(id, fn)
	return CallbackHandle{remove: func() { l.remove(id) }}
}

// --- Scene-level event registration ---

// OnPointerEnter registers fn for a pointer moving onto a new target.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerEnter, fn)
}

// OnPointerLeave registers fn for a pointer leaving its target.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerLeave, fn)
}

// OnClick registers fn for clicks on any target, including empty space.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.click, fn)
}

// OnDragStart registers fn for the frame a drag passes the dead zone.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.dragStart, fn)
}

// OnDrag registers fn for every frame of a drag.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.drag, fn)
}

// OnDragEnd registers fn for the release that ends a drag.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.dragEnd, fn)
}

// OnPinch registers fn for two-finger pinch and rotate gestures.
func (s *Scene) OnPinch(fn func(PinchContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pinch, fn)
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// splashing reports whether the loader still covers the screen. It takes
// every pointer until its fade ends.
func (s *Scene) splashing() bool {
	return s.loader != nil && s.loader.Visible()
}

// hitTest finds what is under screen point (x, y). Overlay buttons come
// first, then the tree. Nothing is hit under the splash.
func (s *Scene) hitTest(x, y float64) Target {
	if s.splashing() {
		return Target{}
	}
	if s.overlay != nil {
		if i := s.overlay.buttonAt(x, y); i >= 0 {
			return Target{Kind: TargetButton, Index: i}
		}
	}
	return s.tree.Pick(s.camera, x, y)
}

// --- Input processing ---

var modifierKeys = [...]struct {
	key ebiten.Key
	mod KeyModifiers
}{
	{ebiten.KeyShift, ModShift},
	{ebiten.KeyControl, ModCtrl},
	{ebiten.KeyAlt, ModAlt},
	{ebiten.KeyMeta, ModMeta},
}

// readModifiers returns the modifier keys held this frame.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	for _, k := range modifierKeys {
		if ebiten.IsKeyPressed(k.key) {
			mods |= k.mod
		}
	}
	return mods
}

// processInput is called from Scene.Update to handle mouse, wheel and touch
// input. A queued synthetic event replaces the mouse for that frame.
func (s *Scene) processInput() {
	mods := readModifiers()
	if !s.processInjectedInput(mods) {
		s.processMousePointer(mods)
	}
	if _, wy := ebiten.Wheel(); wy != 0 && !s.splashing() {
		s.camera.Zoom(wy)
	}
	s.processTouchPointers(mods)
	s.detectPinch(mods)
}

// mouseButtons in priority order: with several held, the first one drives
// pointer 0.
var mouseButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// processMousePointer feeds the cursor to pointer 0.
func (s *Scene) processMousePointer(mods KeyModifiers) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	for _, b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b.eb) {
			s.processPointer(0, x, y, true, b.btn, mods)
			return
		}
	}
	s.processPointer(0, x, y, false, 0, mods)
}

// processTouchPointers feeds each touch to its slot and releases slots
// whose finger has lifted.
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	var seen [maxPointers]bool
	for _, tid := range s.touchIDs {
		i := s.touches.slot(tid)
		if i < 0 {
			continue
		}
		seen[i] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(i, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touches.live[i] || seen[i] {
			continue
		}
		if ps := &s.pointers[i]; ps.down {
			s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
		}
		s.touches.release(i)
	}
}

// processPointer runs the pointer state machine for a single pointer at
// screen position (x, y).
func (s *Scene) processPointer(pointerID int, x, y float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	target := s.hitTest(x, y)

	if target != ps.hover {
		if ps.hover.Kind != TargetNone {
			s.firePointerLeave(ps.hover, pointerID, x, y, button, mods)
		}
		if target.Kind != TargetNone {
			s.firePointerEnter(target, pointerID, x, y, button, mods)
		}
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hit = target
		ps.dragging = false
		ps.orbiting = false

	case !pressed && ps.down:
		if ps.dragging {
			s.fireDragEnd(ps, pointerID, x, y, x-ps.lastX, y-ps.lastY, mods)
		} else if ps.hit == target {
			s.fireClick(target, pointerID, x, y, ps.button, mods)
		}
		ps.down = false
		ps.hit = Target{}
		ps.dragging = false
		ps.orbiting = false

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					ps.orbiting = ps.button == MouseButtonLeft && ps.hit.Kind != TargetButton && !s.pinch.active && !s.splashing()
					s.fireDragStart(ps, pointerID, x, y, x-ps.startX, y-ps.startY, mods)
				}
			}
			if ps.dragging {
				s.fireDrag(ps, pointerID, x, y, x-ps.lastX, y-ps.lastY, mods)
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// orbiting reports whether any pointer is currently turning the camera.
func (s *Scene) orbiting() bool {
	for i := range s.pointers {
		if s.pointers[i].orbiting {
			return true
		}
	}
	return s.pinch.active
}

// --- Pinch ---

// detectPinch tracks a gesture while exactly two touches are down. The
// first frame only records the start; later frames fire pinch events.
func (s *Scene) detectPinch(mods KeyModifiers) {
	var fingers []*pointerState
	for i := 1; i < maxPointers; i++ {
		if s.pointers[i].down {
			fingers = append(fingers, &s.pointers[i])
		}
	}
	if len(fingers) != 2 {
		s.pinch.active = false
		return
	}
	a, b := fingers[0], fingers[1]
	span := Vec2{X: b.lastX - a.lastX, Y: b.lastY - a.lastY}
	dist := math.Hypot(span.X, span.Y)
	angle := math.Atan2(span.Y, span.X)

	if !s.pinch.active {
		s.pinch = pinchState{active: true, startDist: dist, startAngle: angle}
	} else {
		ctx := PinchContext{
			CenterX:  (a.lastX + b.lastX) / 2,
			CenterY:  (a.lastY + b.lastY) / 2,
			Scale:    1,
			Rotation: angle - s.pinch.startAngle,
			RotDelta: angle - s.pinch.lastAngle,
		}
		if s.pinch.startDist > 0 {
			ctx.Scale = dist / s.pinch.startDist
		}
		if s.pinch.lastDist > 0 {
			ctx.ScaleDelta = dist/s.pinch.lastDist - 1
		}
		s.firePinch(ctx, mods)
	}
	s.pinch.lastDist, s.pinch.lastAngle = dist, angle

	// Two fingers zoom; neither finger orbits.
	a.dragging, a.orbiting = false, false
	b.dragging, b.orbiting = false, false
}

// --- Dispatch ---

func (s *Scene) firePointerEnter(target Target, pointerID int, x, y float64, button MouseButton, mods KeyModifiers) {
	switch target.Kind {
	case TargetOrnament:
		s.tree.Hover.Enter(target.Index)
	case TargetButton:
		s.overlay.setHovered(target.Index)
	}
	ctx := PointerContext{Target: target, X: x, Y: y, Button: button, PointerID: pointerID, Modifiers: mods}
	s.handlers.pointerEnter.fire(ctx)
	s.emitInteractionEvent(InteractionEvent{Type: EventPointerEnter, Target: target, X: x, Y: y, Button: button, Modifiers: mods})
}

func (s *Scene) firePointerLeave(target Target, pointerID int, x, y float64, button MouseButton, mods KeyModifiers) {
	switch target.Kind {
	case TargetOrnament:
		s.tree.Hover.Leave(target.Index)
	case TargetButton:
		s.overlay.setHovered(-1)
	}
	ctx := PointerContext{Target: target, X: x, Y: y, Button: button, PointerID: pointerID, Modifiers: mods}
	s.handlers.pointerLeave.fire(ctx)
	s.emitInteractionEvent(InteractionEvent{Type: EventPointerLeave, Target: target, X: x, Y: y, Button: button, Modifiers: mods})
}

func (s *Scene) fireClick(target Target, pointerID int, x, y float64, button MouseButton, mods KeyModifiers) {
	if button == MouseButtonLeft {
		s.activate(target, x, y)
	}
	ctx := ClickContext{Target: target, X: x, Y: y, Button: button, PointerID: pointerID, Modifiers: mods}
	s.handlers.click.fire(ctx)
	s.emitInteractionEvent(InteractionEvent{Type: EventClick, Target: target, X: x, Y: y, Button: button, Modifiers: mods})
}

// activate runs the scene's own response to a left click on target.
func (s *Scene) activate(target Target, x, y float64) {
	switch target.Kind {
	case TargetButton:
		s.overlay.press(target.Index)
	case TargetOrnament:
		n := s.camera.Normalized(x, y)
		s.confetti.Burst(OrnamentBurst(s.tree.Ornaments[target.Index], n.X, n.Y), s.width, s.height)
	case TargetLayer:
		s.tree.Turn()
	}
}

func (s *Scene) dragContext(ps *pointerState, pointerID int, x, y, dx, dy float64, mods KeyModifiers) DragContext {
	return DragContext{
		Target: ps.hit, X: x, Y: y,
		StartX: ps.startX, StartY: ps.startY, DeltaX: dx, DeltaY: dy,
		Button: ps.button, PointerID: pointerID, Modifiers: mods,
	}
}

func (s *Scene) fireDragStart(ps *pointerState, pointerID int, x, y, dx, dy float64, mods KeyModifiers) {
	ctx := s.dragContext(ps, pointerID, x, y, dx, dy, mods)
	s.handlers.dragStart.fire(ctx)
	s.emitDragEvent(EventDragStart, ctx)
}

func (s *Scene) fireDrag(ps *pointerState, pointerID int, x, y, dx, dy float64, mods KeyModifiers) {
	if ps.orbiting {
		s.camera.Orbit(dx, dy)
	}
	ctx := s.dragContext(ps, pointerID, x, y, dx, dy, mods)
	s.handlers.drag.fire(ctx)
	s.emitDragEvent(EventDrag, ctx)
}

func (s *Scene) fireDragEnd(ps *pointerState, pointerID int, x, y, dx, dy float64, mods KeyModifiers) {
	ctx := s.dragContext(ps, pointerID, x, y, dx, dy, mods)
	s.handlers.dragEnd.fire(ctx)
	s.emitDragEvent(EventDragEnd, ctx)
}

func (s *Scene) firePinch(ctx PinchContext, mods KeyModifiers) {
	if ctx.ScaleDelta != 0 && !s.splashing() {
		// Spreading fingers apart moves the camera in.
		s.camera.Distance /= 1 + ctx.ScaleDelta
		s.camera.clamp()
		s.camera.MarkDirty()
	}
	s.handlers.pinch.fire(ctx)
	s.emitInteractionEvent(InteractionEvent{
		Type: EventPinch, X: ctx.CenterX, Y: ctx.CenterY, Modifiers: mods,
		Scale: ctx.Scale, ScaleDelta: ctx.ScaleDelta,
		Rotation: ctx.Rotation, RotDelta: ctx.RotDelta,
	})
}

// --- Entity store ---

func (s *Scene) emitDragEvent(eventType EventType, ctx DragContext) {
	s.emitInteractionEvent(InteractionEvent{
		Type: eventType, Target: ctx.Target, X: ctx.X, Y: ctx.Y,
		Button: ctx.Button, Modifiers: ctx.Modifiers,
		StartX: ctx.StartX, StartY: ctx.StartY, DeltaX: ctx.DeltaX, DeltaY: ctx.DeltaY,
	})
}

func (s *Scene) emitInteractionEvent(event InteractionEvent) {
	if s.store == nil {
		return
	}
	s.store.EmitEvent(event)
}
