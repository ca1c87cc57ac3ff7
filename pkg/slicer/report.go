package slicer

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/Faultbox/stlslice/pkg/mesh"
)

// State is the per-level state of the slicing state machine.
type State int

// Level states. Accepted, Empty and Abandoned are terminal.
const (
	Probing State = iota
	DegenerateRetry
	Accepted
	Empty
	Abandoned
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Probing:
		return "Probing"
	case DegenerateRetry:
		return "DegenerateRetry"
	case Accepted:
		return "Accepted"
	case Empty:
		return "Empty"
	case Abandoned:
		return "Abandoned"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// LevelReport describes how one planned z level was resolved.
type LevelReport struct {
	Index    int     // position in the plan, 0 for the lowest level
	Nominal  float64 // planned z
	Z        float64 // z actually used (lower than Nominal after retries)
	State    State
	Attempts int // planes probed, 1 when no retry was needed
	Segments int // distinct cut segments at Z
	Loops    int
	Chunks   int
	Err      error // set for Abandoned levels
}

// Report summarizes a slicing run.
type Report struct {
	RunID     string
	Params    Params
	Triangles int
	Bounds    mesh.Bounds // bounds of the scaled and remapped working mesh
	Levels    []LevelReport
	Duration  time.Duration
}

// Count returns the number of levels that ended in state s.
func (r *Report) Count(s State) int {
	n := 0
	for _, l := range r.Levels {
		if l.State == s {
			n++
		}
	}
	return n
}

// Faults returns the reports of abandoned levels.
func (r *Report) Faults() []LevelReport {
	var out []LevelReport
	for _, l := range r.Levels {
		if l.State == Abandoned {
			out = append(out, l)
		}
	}
	return out
}

// Err combines every per-level fault into one error, or returns nil when
// no level was abandoned. The errors are informational: the run itself
// succeeded.
func (r *Report) Err() error {
	var err error
	for _, l := range r.Faults() {
		err = multierr.Append(err, fmt.Errorf("layer %d at z=%g: %w", l.Index, l.Z, l.Err))
	}
	return err
}
