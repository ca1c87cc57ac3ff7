package slicer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Faultbox/stlslice/pkg/geom"
)

// Scanline is the set of filled spans at one swept y. Spans are sorted by x
// and each runs from smaller to larger x.
type Scanline struct {
	Y     float64
	Spans []geom.Segment
}

// errRowDegenerate marks a scan row that lies along a loop segment.
var errRowDegenerate = errors.New("scan row coincides with a loop segment")

// Scan sweeps loops with horizontal lines spaced pitch apart, starting one
// pitch above the lowest loop y. A row that coincides with a loop segment is
// moved down by step*pitch until it resolves; if it would reach the
// previous accepted row it is skipped. Rows without spans are omitted.
func Scan(loops []Loop, z, pitch, step float64) ([]Scanline, error) {
	minY, maxY, ok := yRange(loops)
	if !ok {
		return nil, nil
	}

	var rows []Scanline
	prev := minY
	for k := 1; ; k++ {
		nominal := minY + float64(k)*pitch
		if nominal >= maxY {
			break
		}
		y := nominal
		for {
			spans, err := scanRow(loops, y, z)
			if errors.Is(err, errRowDegenerate) {
				y -= step * pitch
				if y <= prev {
					break
				}
				continue
			}
			if err != nil {
				return nil, err
			}
			if len(spans) > 0 {
				rows = append(rows, Scanline{Y: y, Spans: spans})
			}
			prev = y
			break
		}
	}
	return rows, nil
}

func yRange(loops []Loop) (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, l := range loops {
		for _, s := range l {
			min = math.Min(min, math.Min(s.P1.Y, s.P2.Y))
			max = math.Max(max, math.Max(s.P1.Y, s.P2.Y))
		}
	}
	return min, max, min <= max
}

// scanRow computes the filled spans of the row at y using the parity rule.
func scanRow(loops []Loop, y, z float64) ([]geom.Segment, error) {
	var xs []float64
	for _, l := range loops {
		for i, s := range l {
			x, ok, err := crossing(l, i, s, y)
			if err != nil {
				return nil, err
			}
			if ok {
				xs = appendUnique(xs, x)
			}
		}
	}

	sort.Float64s(xs)
	if len(xs)%2 != 0 {
		return nil, fmt.Errorf("%w: %d crossings at y=%g", ErrOddParity, len(xs), y)
	}

	spans := make([]geom.Segment, 0, len(xs)/2)
	for i := 0; i < len(xs); i += 2 {
		spans = append(spans, geom.Segment{
			P1: geom.Point{X: xs[i], Y: y, Z: z},
			P2: geom.Point{X: xs[i+1], Y: y, Z: z},
		})
	}
	return spans, nil
}

// crossing classifies segment i of l against the line y.
func crossing(l Loop, i int, s geom.Segment, y float64) (float64, bool, error) {
	on1 := geom.Equal(s.P1.Y, y)
	on2 := geom.Equal(s.P2.Y, y)

	switch {
	case on1 && on2:
		return 0, false, errRowDegenerate
	case on1:
		// P1 is shared with the previous segment.
		prev := l[(i-1+len(l))%len(l)]
		return s.P1.X, passesThrough(y, s.P2, prev.P1), nil
	case on2:
		// P2 is shared with the next segment.
		next := l[(i+1)%len(l)]
		return s.P2.X, passesThrough(y, s.P1, next.P2), nil
	case (s.P1.Y-y)*(s.P2.Y-y) < 0:
		return s.P1.X + (y-s.P1.Y)*(s.P2.X-s.P1.X)/(s.P2.Y-s.P1.Y), true, nil
	default:
		return 0, false, nil
	}
}

// passesThrough reports whether a vertex on the scan line, whose two
// neighbours are a and b, is crossed rather than touched at a peak or valley.
func passesThrough(y float64, a, b geom.Point) bool {
	return (a.Y-y)*(b.Y-y) <= 0
}

func appendUnique(xs []float64, x float64) []float64 {
	for _, v := range xs {
		if geom.Equal(v, x) {
			return xs
		}
	}
	return append(xs, x)
}
