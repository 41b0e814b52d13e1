package evergreen

import (
	"math"
	"testing"
)

// --- Hit shapes ---

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonContains(t *testing.T) {
	// Layer silhouette: apex, then the two base corners.
	tri := HitPolygon{Points: []Vec2{{50, 0}, {0, 100}, {100, 100}}}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 60, true},
		{"apex", 50, 0, true},
		{"on base", 50, 100, true},
		{"beside apex", 10, 10, false},
		{"below base", 50, 101, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tri.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitPolygon.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	reversed := HitPolygon{Points: []Vec2{{100, 100}, {0, 100}, {50, 0}}}
	if !reversed.Contains(50, 60) {
		t.Error("reversed winding should still contain the center")
	}

	degen := HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}
	if degen.Contains(0, 0) {
		t.Error("degenerate polygon should not contain anything")
	}
}

// --- Hit testing against the scene ---

// findTarget scans the screen for a point whose hit test is of kind.
func findTarget(t *testing.T, s *Scene, kind TargetKind) (float64, float64, Target) {
	t.Helper()
	for y := 0.0; y < s.height; y += 3 {
		for x := 0.0; x < s.width; x += 3 {
			if tg := s.hitTest(x, y); tg.Kind == kind {
				return x, y, tg
			}
		}
	}
	t.Fatalf("no point on screen hits kind %d", kind)
	return 0, 0, Target{}
}

// frontOrnament returns an ornament whose own center hits it.
func frontOrnament(t *testing.T, s *Scene) (int, float64, float64) {
	t.Helper()
	for i := range s.tree.Ornaments {
		cx, cy, _, _, ok := s.tree.OrnamentCircle(i, s.camera)
		if ok && s.hitTest(cx, cy) == (Target{Kind: TargetOrnament, Index: i}) {
			return i, cx, cy
		}
	}
	t.Fatal("no ornament is reachable by the pointer")
	return 0, 0, 0
}

func TestHitTestEmptySpace(t *testing.T) {
	s := testScene(t)
	if got := s.hitTest(5, 5); got != (Target{}) {
		t.Errorf("hitTest in the corner = %+v, want none", got)
	}
}

func TestHitTestFindsTreeParts(t *testing.T) {
	s := testScene(t)
	frontOrnament(t, s)
	_, _, layer := findTarget(t, s, TargetLayer)
	if layer.Index < 0 || layer.Index >= len(s.tree.Layers) {
		t.Errorf("layer index %d out of range", layer.Index)
	}
}

func TestHitTestHiddenButtonsIgnored(t *testing.T) {
	s := testScene(t)
	r := s.overlay.buttonBounds(ButtonCelebrate)
	got := s.hitTest(r.X+r.Width/2, r.Y+r.Height/2)
	if got.Kind == TargetButton {
		t.Error("buttons should not be hit before their panel fades in")
	}
}

func TestHitTestButtonsWinOverTree(t *testing.T) {
	s := testScene(t)
	fadeInOverlay(s)
	r := s.overlay.buttonBounds(ButtonMute)
	got := s.hitTest(r.X+r.Width/2, r.Y+r.Height/2)
	if got != (Target{Kind: TargetButton, Index: ButtonMute}) {
		t.Errorf("hitTest on mute = %+v", got)
	}
}

func fadeInOverlay(s *Scene) {
	for i := 0; i < 8; i++ {
		s.overlay.Update(0.5)
	}
}

// --- Hover ---

func TestHoverEmphasisFollowsPointer(t *testing.T) {
	s := testScene(t)
	i, cx, cy := frontOrnament(t, s)

	var entered, left []Target
	s.OnPointerEnter(func(ctx PointerContext) { entered = append(entered, ctx.Target) })
	s.OnPointerLeave(func(ctx PointerContext) { left = append(left, ctx.Target) })

	s.processPointer(0, cx, cy, false, MouseButtonLeft, 0)
	if !s.tree.Hover.IsHovered(i) {
		t.Fatalf("ornament %d should be hovered", i)
	}
	if s.tree.Hover.Emphasis(i) != HoverEmphasis {
		t.Errorf("emphasis = %+v, want %+v", s.tree.Hover.Emphasis(i), HoverEmphasis)
	}
	for k := 0; k < s.tree.Hover.Len(); k++ {
		if k != i && s.tree.Hover.IsHovered(k) {
			t.Errorf("ornament %d hovered without the pointer", k)
		}
	}

	s.processPointer(0, 5, 5, false, MouseButtonLeft, 0)
	if s.tree.Hover.IsHovered(i) {
		t.Error("hover should clear when the pointer leaves")
	}
	if s.tree.Hover.Emphasis(i) != BaseEmphasis {
		t.Errorf("emphasis = %+v, want base", s.tree.Hover.Emphasis(i))
	}

	want := Target{Kind: TargetOrnament, Index: i}
	if len(entered) != 1 || entered[0] != want {
		t.Errorf("enter events = %v", entered)
	}
	if len(left) != 1 || left[0] != want {
		t.Errorf("leave events = %v", left)
	}
}

func TestHoverNoRepeatWhileStill(t *testing.T) {
	s := testScene(t)
	_, cx, cy := frontOrnament(t, s)
	count := 0
	s.OnPointerEnter(func(PointerContext) { count++ })
	for k := 0; k < 5; k++ {
		s.processPointer(0, cx, cy, false, MouseButtonLeft, 0)
	}
	if count != 1 {
		t.Errorf("enter fired %d times, want 1", count)
	}
}

func TestButtonHoverHighlights(t *testing.T) {
	s := testScene(t)
	fadeInOverlay(s)
	r := s.overlay.buttonBounds(ButtonCelebrate)
	s.processPointer(0, r.X+1, r.Y+1, false, MouseButtonLeft, 0)
	if s.overlay.hovered != ButtonCelebrate {
		t.Errorf("hovered = %d, want %d", s.overlay.hovered, ButtonCelebrate)
	}
	s.processPointer(0, 5, 5, false, MouseButtonLeft, 0)
	if s.overlay.hovered != -1 {
		t.Errorf("hovered = %d after leaving, want -1", s.overlay.hovered)
	}
}

// --- Click ---

func TestClickOrnamentBurstsConfetti(t *testing.T) {
	s := testScene(t)
	i, cx, cy := frontOrnament(t, s)

	var clicks []ClickContext
	s.OnClick(func(ctx ClickContext) { clicks = append(clicks, ctx) })

	s.processPointer(0, cx, cy, true, MouseButtonLeft, 0)
	if s.confetti.AliveCount() != 0 {
		t.Fatal("confetti should not fire on press")
	}
	s.processPointer(0, cx, cy, false, MouseButtonLeft, 0)

	if got := s.confetti.AliveCount(); got != 25 {
		t.Fatalf("confetti alive = %d, want 25", got)
	}
	p := &s.confetti.pieces[0]
	if math.Abs(p.x-cx) > 1e-9 || math.Abs(p.y-cy) > 1e-9 {
		t.Errorf("burst origin = (%v,%v), want pointer (%v,%v)", p.x, p.y, cx, cy)
	}
	if len(clicks) != 1 || clicks[0].Target != (Target{Kind: TargetOrnament, Index: i}) {
		t.Errorf("click events = %+v", clicks)
	}
}

func TestRightClickOrnamentDoesNothing(t *testing.T) {
	s := testScene(t)
	_, cx, cy := frontOrnament(t, s)
	s.processPointer(0, cx, cy, true, MouseButtonRight, 0)
	s.processPointer(0, cx, cy, false, MouseButtonRight, 0)
	if s.confetti.AliveCount() != 0 {
		t.Error("right click should not burst confetti")
	}
}

func TestClickLayerTurnsTree(t *testing.T) {
	s := testScene(t)
	x, y, _ := findTarget(t, s, TargetLayer)

	s.processPointer(0, x, y, true, MouseButtonLeft, 0)
	s.processPointer(0, x, y, false, MouseButtonLeft, 0)

	for k := 0; k < 60; k++ {
		s.tree.Update(1.0 / 60)
	}
	if math.Abs(s.tree.Rotation-math.Pi/4) > 1e-5 {
		t.Errorf("Rotation = %v, want pi/4", s.tree.Rotation)
	}
}

func TestClickNotFiredOnDifferentTarget(t *testing.T) {
	s := testScene(t)
	_, cx, cy := frontOrnament(t, s)
	count := 0
	s.OnClick(func(ClickContext) { count++ })

	s.processPointer(0, cx, cy, true, MouseButtonLeft, 0)
	// Release over empty space with no move in between.
	s.processPointer(0, 5, 5, false, MouseButtonLeft, 0)
	if count != 0 {
		t.Error("click should not fire when released over another target")
	}
	if s.confetti.AliveCount() != 0 {
		t.Error("no confetti expected")
	}
}

func TestClickButtons(t *testing.T) {
	s := testScene(t)
	snd := &fakeSound{}
	s.SetSoundPlayer(snd)
	fadeInOverlay(s)

	click := func(i int) {
		r := s.overlay.buttonBounds(i)
		x, y := r.X+r.Width/2, r.Y+r.Height/2
		s.processPointer(0, x, y, true, MouseButtonLeft, 0)
		s.processPointer(0, x, y, false, MouseButtonLeft, 0)
	}

	click(ButtonCelebrate)
	if s.confetti.AliveCount() != 150 {
		t.Errorf("confetti alive = %d, want 150", s.confetti.AliveCount())
	}
	if snd.chimes != 1 {
		t.Errorf("chimes = %d, want 1", snd.chimes)
	}

	click(ButtonMute)
	if s.Muted() || snd.muted {
		t.Error("mute button should unmute")
	}

	before := s.tree.Ornaments[0]
	click(ButtonCustomize)
	if s.tree.Ornaments[0] == before {
		t.Error("customize should redraw the ornaments")
	}
}

// --- Drag ---

func TestDragOrbitsCamera(t *testing.T) {
	s := testScene(t)
	az := s.camera.Azimuth

	var events []string
	s.OnDragStart(func(DragContext) { events = append(events, "dragstart") })
	s.OnDrag(func(DragContext) { events = append(events, "drag") })
	s.OnDragEnd(func(DragContext) { events = append(events, "dragend") })

	s.processPointer(0, 20, 20, true, MouseButtonLeft, 0)
	s.processPointer(0, 22, 22, true, MouseButtonLeft, 0)
	if len(events) != 0 {
		t.Fatalf("expected no events within dead zone, got %v", events)
	}
	if s.camera.Azimuth != az {
		t.Fatal("camera moved inside the dead zone")
	}

	s.processPointer(0, 40, 22, true, MouseButtonLeft, 0)
	if len(events) != 2 || events[0] != "dragstart" || events[1] != "drag" {
		t.Fatalf("expected [dragstart drag], got %v", events)
	}
	if !s.orbiting() {
		t.Error("scene should report orbiting during the drag")
	}
	// The drag step is measured from the previous position.
	want := az - 2*math.Pi*18/600
	if math.Abs(s.camera.Azimuth-want) > 1e-9 {
		t.Errorf("Azimuth = %v, want %v", s.camera.Azimuth, want)
	}

	s.processPointer(0, 40, 22, false, MouseButtonLeft, 0)
	if events[len(events)-1] != "dragend" {
		t.Errorf("last event = %s, want dragend", events[len(events)-1])
	}
	if s.orbiting() {
		t.Error("orbiting should stop on release")
	}
}

func TestDragStartingOnButtonDoesNotOrbit(t *testing.T) {
	s := testScene(t)
	fadeInOverlay(s)
	r := s.overlay.buttonBounds(ButtonCelebrate)
	az := s.camera.Azimuth

	s.processPointer(0, r.X+2, r.Y+2, true, MouseButtonLeft, 0)
	s.processPointer(0, r.X+40, r.Y+2, true, MouseButtonLeft, 0)
	if s.camera.Azimuth != az {
		t.Error("dragging off a button should not orbit")
	}
	s.processPointer(0, r.X+40, r.Y+2, false, MouseButtonLeft, 0)
}

func TestSetDragDeadZone(t *testing.T) {
	s := testScene(t)
	s.SetDragDeadZone(20)
	started := false
	s.OnDragStart(func(DragContext) { started = true })

	s.processPointer(0, 20, 20, true, MouseButtonLeft, 0)
	s.processPointer(0, 35, 20, true, MouseButtonLeft, 0)
	if started {
		t.Error("15px should stay inside a 20px dead zone")
	}
	s.processPointer(0, 45, 20, true, MouseButtonLeft, 0)
	if !started {
		t.Error("25px should start a drag")
	}
}

// --- Pinch ---

func TestPinchZoomsCamera(t *testing.T) {
	s := testScene(t)
	d0 := s.camera.Distance

	var pinches []PinchContext
	s.OnPinch(func(ctx PinchContext) { pinches = append(pinches, ctx) })

	s.processPointer(1, 100, 20, true, MouseButtonLeft, 0)
	s.processPointer(2, 150, 20, true, MouseButtonLeft, 0)
	s.detectPinch(0)
	if !s.pinch.active {
		t.Fatal("two touches should start a pinch")
	}

	az := s.camera.Azimuth
	s.processPointer(2, 200, 20, true, MouseButtonLeft, 0)
	s.detectPinch(0)

	if len(pinches) != 1 {
		t.Fatalf("pinch events = %d, want 1", len(pinches))
	}
	if math.Abs(pinches[0].Scale-2) > 1e-9 {
		t.Errorf("Scale = %v, want 2", pinches[0].Scale)
	}
	if s.camera.Distance >= d0 {
		t.Errorf("Distance = %v, want closer than %v", s.camera.Distance, d0)
	}
	if s.camera.Distance < s.camera.MinDistance {
		t.Errorf("Distance %v below minimum", s.camera.Distance)
	}
	if s.camera.Azimuth != az {
		t.Error("pinch fingers should not orbit")
	}

	s.processPointer(2, 200, 20, false, MouseButtonLeft, 0)
	s.detectPinch(0)
	if s.pinch.active {
		t.Error("lifting a finger should end the pinch")
	}
}

// --- Handlers ---

func TestCallbackHandleRemove(t *testing.T) {
	s := testScene(t)
	_, cx, cy := frontOrnament(t, s)
	var a, b int
	ha := s.OnClick(func(ClickContext) { a++ })
	s.OnClick(func(ClickContext) { b++ })

	ha.Remove()
	s.processPointer(0, cx, cy, true, MouseButtonLeft, 0)
	s.processPointer(0, cx, cy, false, MouseButtonLeft, 0)
	if a != 0 || b != 1 {
		t.Errorf("a=%d b=%d, want 0 and 1", a, b)
	}
	if s.handlers.click.len() != 1 {
		t.Errorf("click handlers = %d, want 1", s.handlers.click.len())
	}

	// Zero handle and double remove are harmless.
	CallbackHandle{}.Remove()
	ha.Remove()
}

// --- ECS bridge ---

type recordingStore struct {
	events []InteractionEvent
}

func (r *recordingStore) EmitEvent(e InteractionEvent) { r.events = append(r.events, e) }

func TestECSBridge(t *testing.T) {
	s := testScene(t)
	store := &recordingStore{}
	s.SetEntityStore(store)
	i, cx, cy := frontOrnament(t, s)

	s.processPointer(0, cx, cy, true, MouseButtonLeft, 0)
	s.processPointer(0, cx, cy, false, MouseButtonLeft, 0)

	if len(store.events) != 2 {
		t.Fatalf("events = %d, want enter and click", len(store.events))
	}
	want := Target{Kind: TargetOrnament, Index: i}
	if store.events[0].Type != EventPointerEnter || store.events[0].Target != want {
		t.Errorf("event 0 = %+v", store.events[0])
	}
	if store.events[1].Type != EventClick || store.events[1].X != cx || store.events[1].Y != cy {
		t.Errorf("event 1 = %+v", store.events[1])
	}
}

func TestECSBridgeDragFields(t *testing.T) {
	s := testScene(t)
	store := &recordingStore{}
	s.SetEntityStore(store)

	s.processPointer(0, 20, 20, true, MouseButtonLeft, 0)
	s.processPointer(0, 40, 20, true, MouseButtonLeft, 0)

	var start *InteractionEvent
	for k := range store.events {
		if store.events[k].Type == EventDragStart {
			start = &store.events[k]
		}
	}
	if start == nil {
		t.Fatal("no drag start forwarded")
	}
	if start.StartX != 20 || start.StartY != 20 || start.DeltaX != 20 || start.DeltaY != 0 {
		t.Errorf("drag start = %+v", *start)
	}
}

func TestECSBridgeNoStore(t *testing.T) {
	s := testScene(t)
	_, cx, cy := frontOrnament(t, s)
	// Must not panic without a store.
	s.processPointer(0, cx, cy, true, MouseButtonLeft, 0)
	s.processPointer(0, cx, cy, false, MouseButtonLeft, 0)
}

func TestHoverHeldByTwoPointers(t *testing.T) {
	s := testScene(t)
	i, cx, cy := frontOrnament(t, s)

	s.processPointer(0, cx, cy, false, MouseButtonLeft, 0)
	s.processPointer(1, cx, cy, false, MouseButtonLeft, 0)
	s.processPointer(1, 5, 5, false, MouseButtonLeft, 0)
	if !s.tree.Hover.IsHovered(i) {
		t.Fatal("the mouse is still over the ornament after the second pointer moved off")
	}
	s.processPointer(0, 5, 5, false, MouseButtonLeft, 0)
	if s.tree.Hover.IsHovered(i) {
		t.Error("ornament still emphasized with no pointer over it")
	}
}

type layoutStore struct {
	recordingStore
	layouts [][]Ornament
}

func (l *layoutStore) SyncOrnaments(o []Ornament) {
	l.layouts = append(l.layouts, append([]Ornament(nil), o...))
}

func TestCustomizeLeavesHoveredOrnament(t *testing.T) {
	s := testScene(t)
	store := &layoutStore{}
	s.SetEntityStore(store)
	if len(store.layouts) != 1 {
		t.Fatalf("layouts = %d, want the current one on SetEntityStore", len(store.layouts))
	}
	i, cx, cy := frontOrnament(t, s)

	var left []Target
	s.OnPointerLeave(func(ctx PointerContext) { left = append(left, ctx.Target) })
	s.processPointer(0, cx, cy, false, MouseButtonLeft, 0)

	s.Customize()

	want := Target{Kind: TargetOrnament, Index: i}
	if len(left) != 1 || left[0] != want {
		t.Errorf("leave callbacks = %v, want %v once", left, want)
	}
	last := store.events[len(store.events)-1]
	if last.Type != EventPointerLeave || last.Target != want || last.X != cx || last.Y != cy {
		t.Errorf("last store event = %+v, want a leave from ornament %d", last, i)
	}
	if len(store.layouts) != 2 {
		t.Fatalf("layouts = %d, want a resync after Customize", len(store.layouts))
	}
	got := store.layouts[1]
	if len(got) != len(s.tree.Ornaments) {
		t.Fatalf("synced %d ornaments, want %d", len(got), len(s.tree.Ornaments))
	}
	for k := range got {
		if got[k] != s.tree.Ornaments[k] {
			t.Fatalf("synced ornament %d = %+v, want %+v", k, got[k], s.tree.Ornaments[k])
		}
	}
}
