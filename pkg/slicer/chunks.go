package slicer

import "github.com/Faultbox/stlslice/pkg/geom"

// Chunk is one uninterrupted raster run: spans on consecutive rows whose x
// intervals overlap, in ascending y.
type Chunk []geom.Segment

// AssembleChunks links spans of adjacent rows into chunks. Extension is
// greedy: the first overlapping span on the next row is taken. Every span
// of rows ends up in exactly one chunk. rows is not modified.
func AssembleChunks(rows []Scanline, pitch float64) []Chunk {
	used := make([][]bool, len(rows))
	remaining := 0
	for i, r := range rows {
		used[i] = make([]bool, len(r.Spans))
		remaining += len(r.Spans)
	}

	var chunks []Chunk
	for r := 0; remaining > 0; {
		j := firstFree(used[r])
		if j < 0 {
			r++
			continue
		}
		used[r][j] = true
		remaining--
		cur := rows[r].Spans[j]
		chunk := Chunk{cur}

		for next := r + 1; next < len(rows); next++ {
			if !geom.Equal(rows[next].Y-cur.P1.Y, pitch) {
				break
			}
			k := overlapping(rows[next].Spans, used[next], cur)
			if k < 0 {
				break
			}
			used[next][k] = true
			remaining--
			cur = rows[next].Spans[k]
			chunk = append(chunk, cur)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func firstFree(used []bool) int {
	for i, u := range used {
		if !u {
			return i
		}
	}
	return -1
}

// overlapping returns the index of the first unused span whose x interval
// overlaps s by more than a single point.
func overlapping(spans []geom.Segment, used []bool, s geom.Segment) int {
	for i, o := range spans {
		if used[i] {
			continue
		}
		if o.P1.X >= s.P2.X || o.P2.X <= s.P1.X {
			continue
		}
		return i
	}
	return -1
}
