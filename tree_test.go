package evergreen

import (
	"math"
	"testing"
)

func testTree() *Tree {
	return NewTree(DefaultTreeLayers, SampleOrnaments(DefaultLayoutConfig(), NewRand(1)))
}

func TestNewTreeMeshes(t *testing.T) {
	tr := testTree()
	if len(tr.layerMesh) != len(DefaultTreeLayers) {
		t.Errorf("layer meshes = %d, want %d", len(tr.layerMesh), len(DefaultTreeLayers))
	}
	if tr.Hover.Len() != 60 {
		t.Errorf("hover set tracks %d ornaments, want 60", tr.Hover.Len())
	}
	for s, m := range tr.shapes {
		if m == nil || m.TriangleCount() == 0 {
			t.Errorf("shape %d has no geometry", s)
		}
	}
}

func TestTreeTurn(t *testing.T) {
	tr := testTree()
	tr.Turn()
	for i := 0; i < 60; i++ {
		tr.Update(1.0 / 60)
	}
	if math.Abs(tr.Rotation-math.Pi/4) > 1e-3 {
		t.Errorf("Rotation = %f, want π/4", tr.Rotation)
	}
	if tr.turn != nil {
		t.Error("turn tween should clear when done")
	}
}

func TestTreeTurnStacks(t *testing.T) {
	tr := testTree()
	tr.Turn()
	tr.Update(0.1)
	tr.Turn()
	for i := 0; i < 60; i++ {
		tr.Update(1.0 / 60)
	}
	if math.Abs(tr.Rotation-math.Pi/2) > 1e-3 {
		t.Errorf("Rotation = %f after two clicks, want π/2", tr.Rotation)
	}
}

func TestTreeRotationMovesOrnaments(t *testing.T) {
	tr := testTree()
	before := tr.OrnamentWorld(0)
	tr.Rotation = math.Pi / 2
	after := tr.OrnamentWorld(0)
	if math.Abs(before.Y-after.Y) > 1e-12 {
		t.Error("group turn should not change height")
	}
	if math.Abs(before.RadialDistance()-after.RadialDistance()) > 1e-9 {
		t.Error("group turn should not change radial distance")
	}
	if before.Sub(after).Len() < 1e-6 && before.RadialDistance() > 1e-6 {
		t.Error("ornament did not move with the group")
	}
}

func TestStarFloats(t *testing.T) {
	tr := testTree()
	lo, hi := math.Inf(1), math.Inf(-1)
	for ts := 0.0; ts < 20; ts += 0.1 {
		y := tr.StarPosition(ts).Y
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if lo < 4.1-1e-9 || hi > 4.3+1e-9 || hi-lo < 0.1 {
		t.Errorf("star bobbed over [%f, %f], want within 4.2±0.1", lo, hi)
	}
	light := tr.StarLight(0)
	if light.Intensity != 5 || light.Distance != 3 || light.Color != StarGold {
		t.Errorf("star light = %+v", light)
	}
}

func TestOrnamentCircleGrowsOnHover(t *testing.T) {
	tr := testTree()
	cam := testCamera()
	_, _, r0, _, ok := tr.OrnamentCircle(5, cam)
	if !ok {
		t.Fatal("ornament should be visible")
	}
	tr.Hover.Enter(5)
	_, _, r1, _, _ := tr.OrnamentCircle(5, cam)
	if r1 <= r0 {
		t.Errorf("hovered radius %f should exceed %f", r1, r0)
	}
}

func TestLayerOutline(t *testing.T) {
	tr := testTree()
	cam := testCamera()
	pts, _, ok := tr.LayerOutline(0, cam)
	if !ok || len(pts) != 3 {
		t.Fatalf("outline = %v, %v", pts, ok)
	}
	// Apex sits above the base on screen.
	if pts[0].Y >= pts[1].Y {
		t.Errorf("apex %v should be above base %v", pts[0], pts[1])
	}
	if pts[1].X >= pts[2].X {
		t.Errorf("base corners out of order: %v %v", pts[1], pts[2])
	}
}

func TestTreeDrawEmitsCommands(t *testing.T) {
	tr := testTree()
	r := testRenderer()
	tr.draw(r, 1.5)
	if len(r.commands) < 500 {
		t.Errorf("tree emitted only %d triangles", len(r.commands))
	}
}
