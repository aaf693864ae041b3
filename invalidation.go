package hexview

import "sort"

// InvalidationTracker owns the "must redraw" state of the map area. It is
// either all-dirty (the initial state) or holds an explicit set of dirty
// hexes; the two are mutually exclusive.
type InvalidationTracker struct {
	all   bool
	dirty map[HexCoord]struct{}
}

// NewInvalidationTracker returns a tracker in the all-dirty state.
func NewInvalidationTracker() *InvalidationTracker {
	return &InvalidationTracker{
		all:   true,
		dirty: make(map[HexCoord]struct{}),
	}
}

// MarkAll switches to all-dirty and drops the explicit set.
func (t *InvalidationTracker) MarkAll() {
	t.all = true
	clear(t.dirty)
}

// MarkHex adds h to the dirty set. It is a no-op while all-dirty. It reports
// whether h was newly added.
func (t *InvalidationTracker) MarkHex(h HexCoord) bool {
	if t.all {
		return false
	}
	if _, ok := t.dirty[h]; ok {
		return false
	}
	t.dirty[h] = struct{}{}
	return true
}

// IsAllDirty reports whether the tracker is in the all-dirty state.
func (t *InvalidationTracker) IsAllDirty() bool { return t.all }

// IsDirty reports whether h will be redrawn by the next Consume.
func (t *InvalidationTracker) IsDirty(h HexCoord) bool {
	if t.all {
		return true
	}
	_, ok := t.dirty[h]
	return ok
}

// Pending returns the number of explicitly dirty hexes.
func (t *InvalidationTracker) Pending() int { return len(t.dirty) }

// Consume returns the hexes to redraw this frame and resets the tracker to an
// empty explicit set. When all-dirty, the work list is the inclusive range
// tl..br in column-major order; otherwise it is the sorted dirty set.
//
// The list is a snapshot taken before any drawing, so hexes marked while the
// frame is being drawn are deferred to the next frame.
func (t *InvalidationTracker) Consume(tl, br HexCoord) []HexCoord {
	var work []HexCoord
	if t.all {
		if br.X >= tl.X && br.Y >= tl.Y {
			work = make([]HexCoord, 0, (br.X-tl.X+1)*(br.Y-tl.Y+1))
			for x := tl.X; x <= br.X; x++ {
				for y := tl.Y; y <= br.Y; y++ {
					work = append(work, HexCoord{X: x, Y: y})
				}
			}
		}
		t.all = false
		return work
	}
	if len(t.dirty) == 0 {
		return nil
	}
	work = make([]HexCoord, 0, len(t.dirty))
	for h := range t.dirty {
		work = append(work, h)
	}
	clear(t.dirty)
	sort.Slice(work, func(i, j int) bool { return work[i].Less(work[j]) })
	return work
}
