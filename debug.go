package evergreen

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type drawPhase uint8

const (
	phaseEmit drawPhase = iota
	phaseSort
	phaseSubmit
	phaseCount
)

var phaseNames = [phaseCount]string{"emit", "sort", "submit"}

// frameReport is what debug mode prints for each drawn frame.
type frameReport struct {
	on    bool
	mark  time.Time
	times [phaseCount]time.Duration

	commands  int
	batches   int
	particles int
	confetti  int
}

// start resets the report and begins timing if on.
func (f *frameReport) start(on bool) {
	*f = frameReport{on: on}
	if on {
		f.mark = time.Now()
	}
}

// lap records the time since the previous mark as phase p.
func (f *frameReport) lap(p drawPhase) {
	if !f.on {
		return
	}
	now := time.Now()
	f.times[p] = now.Sub(f.mark)
	f.mark = now
}

func (f *frameReport) String() string {
	var b strings.Builder
	var total time.Duration
	b.WriteString("[evergreen]")
	for p, d := range f.times {
		fmt.Fprintf(&b, " %s: %v |", phaseNames[p], d)
		total += d
	}
	fmt.Fprintf(&b, " total: %v\n", total)
	fmt.Fprintf(&b, "[evergreen] commands: %d | batches: %d | particles: %d | confetti: %d\n",
		f.commands, f.batches, f.particles, f.confetti)
	return b.String()
}

// debugLog writes the report to stderr when the scene is in debug mode.
func (s *Scene) debugLog(f *frameReport) {
	if s.debug {
		_, _ = fmt.Fprint(os.Stderr, f.String())
	}
}

// maxFrameCommands is the most commands one frame should need. Past it the
// merged mesh no longer fits 16-bit indices on older drivers.
const maxFrameCommands = 1 << 16

func warnCommandCount(n int) {
	if n > maxFrameCommands {
		_, _ = fmt.Fprintf(os.Stderr, "[evergreen] warning: %d render commands exceeds %d\n", n, maxFrameCommands)
	}
}

// countBatches returns how many draw calls submitBatches makes for
// commands: one per run of equal batch keys, ignoring vertex-limit splits.
func countBatches(commands []RenderCommand) int {
	n := 0
	var prev batchKey
	for i := range commands {
		if k := commandBatchKey(&commands[i]); i == 0 || k != prev {
			n++
			prev = k
		}
	}
	return n
}
