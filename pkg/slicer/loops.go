package slicer

import (
	"fmt"

	"github.com/Faultbox/stlslice/pkg/geom"
)

// Loop is a closed polygon: the P2 of each segment equals the P1 of the
// next, and the last segment ends at the first one's P1. Winding is not
// normalized.
type Loop []geom.Segment

// Closed reports whether l satisfies the loop invariant.
func (l Loop) Closed() bool {
	n := len(l)
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if !l[i].P2.Eq(l[(i+1)%n].P1) {
			return false
		}
	}
	return true
}

// BuildLoops stitches the segments of one layer into closed loops. Every
// segment of set is consumed exactly once. A chain that cannot be closed
// is reported as ErrUnclosedLoop.
func BuildLoops(set *geom.SegmentSet) ([]Loop, error) {
	n := set.Len()
	consumed := make([]bool, n)
	var loops []Loop

	for seed := n - 1; seed >= 0; seed-- {
		if consumed[seed] {
			continue
		}
		consumed[seed] = true
		s := set.At(seed)
		start, chase := s.P1, s.P2
		loop := Loop{s}

		for !chase.Eq(start) {
			next := -1
			set.Touching(chase, func(i int) bool {
				if consumed[i] {
					return true
				}
				next = i
				return false
			})
			if next < 0 {
				return nil, fmt.Errorf("%w: chain of %d segments from %v stops at %v",
					ErrUnclosedLoop, len(loop), start, chase)
			}
			consumed[next] = true
			seg := set.At(next)
			if !seg.P1.Eq(chase) {
				seg = seg.Reverse()
			}
			loop = append(loop, seg)
			chase = seg.P2
		}

		compact, err := compactLoop(loop)
		if err != nil {
			return nil, err
		}
		loops = append(loops, compact)
	}
	return loops, nil
}

// compactLoop rotates l so the first and last segments differ in slope
// and then merges runs of equal-slope neighbours into single segments.
func compactLoop(l Loop) (Loop, error) {
	rotated, err := rotateSlopeTie(l)
	if err != nil {
		return nil, err
	}

	out := make(Loop, 0, len(rotated))
	cur := rotated[0]
	for _, s := range rotated[1:] {
		if s.SameSlope(cur) {
			cur.P2 = s.P2
			continue
		}
		out = append(out, cur)
		cur = s
	}
	out = append(out, cur)

	if len(out) < 3 {
		return nil, fmt.Errorf("%w: loop collapses to %d segments", ErrUnclosedLoop, len(out))
	}
	if !out[0].P1.Eq(out[len(out)-1].P2) {
		return nil, fmt.Errorf("%w: merged loop ends at %v, starts at %v",
			ErrUnclosedLoop, out[len(out)-1].P2, out[0].P1)
	}
	return out, nil
}

// rotateSlopeTie moves the leading run of segments that share the last
// segment's slope to the end of the loop. A loop whose segments all share
// one slope has no valid rotation.
func rotateSlopeTie(l Loop) (Loop, error) {
	n := len(l)
	last := l[n-1]
	if !l[0].SameSlope(last) {
		return l, nil
	}
	run := 0
	for run < n && l[run].SameSlope(last) {
		run++
	}
	if run == n {
		return nil, fmt.Errorf("%w: all %d segments are collinear", ErrUnclosedLoop, n)
	}
	out := make(Loop, 0, n)
	out = append(out, l[run:]...)
	out = append(out, l[:run]...)
	if out[0].SameSlope(out[n-1]) {
		return nil, fmt.Errorf("%w: ambiguous slope run at loop wrap", ErrUnclosedLoop)
	}
	return out, nil
}
