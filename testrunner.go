package evergreen

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tanema/gween/ease"
)

// Script errors returned by LoadTestScript.
var (
	ErrEmptyScript   = errors.New("no steps")
	ErrUnknownAction = errors.New("unknown action")
)

type scriptOp uint8

const (
	opWait scriptOp = iota
	opScreenshot
	opHover
	opClick
	opDrag
	opCelebrate
	opMute
	opCustomize
	opTurn
	opZoom
)

var scriptOps = map[string]scriptOp{
	"wait":       opWait,
	"screenshot": opScreenshot,
	"hover":      opHover,
	"click":      opClick,
	"drag":       opDrag,
	"celebrate":  opCelebrate,
	"mute":       opMute,
	"customize":  opCustomize,
	"turn":       opTurn,
	"zoom":       opZoom,
}

// scriptStep is one JSON step. Ornament, when set, aims hover and click at
// that ornament's current screen position instead of X and Y.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Ornament *int    `json:"ornament,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Distance float64 `json:"distance,omitempty"`

	op scriptOp
}

// TestRunner replays a scripted session one step per frame: injected
// pointer input, scene actions and screenshots. Attach it with
// SetTestRunner; Run exits once Done reports true.
//
// Actions: "hover", "click", "drag", "wait", "screenshot", "celebrate",
// "mute", "customize", "turn" and "zoom".
type TestRunner struct {
	steps []scriptStep
	next  int
	// sleep is the number of frames left in the current wait.
	sleep int
	done  bool
}

// LoadTestScript parses a JSON script of the form {"steps": [...]}.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", ErrEmptyScript)
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		op, ok := scriptOps[st.Action]
		if !ok {
			return nil, fmt.Errorf("parse test script: step %d: %w %q", i, ErrUnknownAction, st.Action)
		}
		st.op = op
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the scene. It steps once per Update,
// before input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its input has drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one script step. Injected input from the previous
// step must drain first.
func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, len(s.injectQueue) > 0:
		return
	case r.sleep > 0:
		r.sleep--
	case r.next < len(r.steps):
		r.exec(s, &r.steps[r.next])
		r.next++
	}
	if r.next == len(r.steps) && r.sleep == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) exec(s *Scene, st *scriptStep) {
	switch st.op {
	case opWait:
		// The frame running the wait counts as the first.
		r.sleep = max(st.Frames-1, 0)
	case opScreenshot:
		s.Screenshot(st.Label)
	case opHover:
		x, y := st.aim(s)
		s.InjectHover(x, y)
	case opClick:
		x, y := st.aim(s)
		s.InjectClick(x, y)
	case opDrag:
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case opCelebrate:
		s.Celebrate()
	case opMute:
		s.ToggleMute()
	case opCustomize:
		s.Customize()
	case opTurn:
		s.tree.Turn()
	case opZoom:
		s.camera.ZoomTo(st.Distance, 0.5, ease.OutCubic)
	}
}

// aim returns the step's pointer position. A missing or off-screen
// ornament falls back to X and Y.
func (st *scriptStep) aim(s *Scene) (float64, float64) {
	if st.Ornament != nil {
		if x, y, ok := s.OrnamentScreenPos(*st.Ornament); ok {
			return x, y
		}
	}
	return st.X, st.Y
}
