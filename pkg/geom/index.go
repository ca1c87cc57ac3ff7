package geom

// PointIndex buckets integer ids by the quantized position of a point.
// Lookups probe every bucket overlapping the Epsilon box around the query
// and the caller re-checks candidates with Point.Eq.
type PointIndex struct {
	cells map[Key][]int
}

// NewPointIndex returns an empty index.
func NewPointIndex() *PointIndex {
	return &PointIndex{cells: make(map[Key][]int)}
}

// Insert records id at p.
func (ix *PointIndex) Insert(p Point, id int) {
	k := p.Key()
	ix.cells[k] = append(ix.cells[k], id)
}

// Near calls fn for each id stored in a bucket that may hold a point Eq to
// p. An id can be visited more than once. Iteration stops when fn returns
// false.
func (ix *PointIndex) Near(p Point, fn func(id int) bool) {
	xs := span(p.X)
	ys := span(p.Y)
	zs := span(p.Z)
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				for _, id := range ix.cells[Key{x, y, z}] {
					if !fn(id) {
						return
					}
				}
			}
		}
	}
}

// span returns the distinct cells covering [v-Epsilon, v+Epsilon].
func span(v float64) []int64 {
	lo, hi := cellOf(v-Epsilon), cellOf(v+Epsilon)
	if lo == hi {
		return []int64{lo}
	}
	return []int64{lo, hi}
}

// SegmentSet is an append-only arena of distinct segments with an endpoint
// index. Segments are addressed by their insertion index.
type SegmentSet struct {
	segs []Segment
	ends *PointIndex
}

// NewSegmentSet returns an empty set.
func NewSegmentSet() *SegmentSet {
	return &SegmentSet{ends: NewPointIndex()}
}

// Add inserts s unless an Eq segment is already present. It reports whether
// s was added.
func (ss *SegmentSet) Add(s Segment) bool {
	dup := false
	ss.ends.Near(s.P1, func(id int) bool {
		if ss.segs[id].Eq(s) {
			dup = true
			return false
		}
		return true
	})
	if dup {
		return false
	}
	id := len(ss.segs)
	ss.segs = append(ss.segs, s)
	ss.ends.Insert(s.P1, id)
	ss.ends.Insert(s.P2, id)
	return true
}

// Len returns the number of segments.
func (ss *SegmentSet) Len() int {
	return len(ss.segs)
}

// At returns the segment with index i.
func (ss *SegmentSet) At(i int) Segment {
	return ss.segs[i]
}

// Touching calls fn with the index of every segment that has an endpoint
// Eq to p, in insertion order per bucket. Each index is reported once.
// Iteration stops when fn returns false.
func (ss *SegmentSet) Touching(p Point, fn func(i int) bool) {
	seen := make(map[int]struct{}, 4)
	ss.ends.Near(p, func(id int) bool {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
		s := ss.segs[id]
		if !s.P1.Eq(p) && !s.P2.Eq(p) {
			return true
		}
		return fn(id)
	})
}
