package hexview

import (
	"slices"
	"testing"
)

func TestInvalidationTrackerStartsAllDirty(t *testing.T) {
	tr := NewInvalidationTracker()
	if !tr.IsAllDirty() {
		t.Fatal("new tracker is not all-dirty")
	}
	if tr.MarkHex(HexCoord{1, 1}) {
		t.Error("MarkHex while all-dirty reported an addition")
	}
	work := tr.Consume(HexCoord{0, 0}, HexCoord{1, 2})
	want := []HexCoord{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	if !slices.Equal(work, want) {
		t.Errorf("work = %v, want %v", work, want)
	}
	if tr.IsAllDirty() || tr.Pending() != 0 {
		t.Error("Consume did not reset the tracker")
	}
}

func TestInvalidationTrackerExplicitSet(t *testing.T) {
	tr := NewInvalidationTracker()
	tr.Consume(HexCoord{}, HexCoord{-1, -1})

	if !tr.MarkHex(HexCoord{3, 1}) {
		t.Error("first MarkHex reported no addition")
	}
	if tr.MarkHex(HexCoord{3, 1}) {
		t.Error("second MarkHex of the same hex reported an addition")
	}
	tr.MarkHex(HexCoord{0, 5})
	tr.MarkHex(HexCoord{3, 0})
	if !tr.IsDirty(HexCoord{0, 5}) || tr.IsDirty(HexCoord{9, 9}) {
		t.Error("IsDirty disagrees with the marked set")
	}

	work := tr.Consume(HexCoord{}, HexCoord{9, 9})
	want := []HexCoord{{0, 5}, {3, 0}, {3, 1}}
	if !slices.Equal(work, want) {
		t.Errorf("work = %v, want %v", work, want)
	}
	if got := tr.Consume(HexCoord{}, HexCoord{9, 9}); got != nil {
		t.Errorf("second Consume = %v, want nil", got)
	}
}

func TestInvalidationTrackerMarkAllDropsSet(t *testing.T) {
	tr := NewInvalidationTracker()
	tr.Consume(HexCoord{}, HexCoord{-1, -1})
	tr.MarkHex(HexCoord{2, 2})
	tr.MarkAll()
	if tr.Pending() != 0 {
		t.Errorf("pending = %d after MarkAll, want 0", tr.Pending())
	}
	if got := len(tr.Consume(HexCoord{}, HexCoord{2, 2})); got != 9 {
		t.Errorf("all-dirty work = %d hexes, want 9", got)
	}
}

func TestInvalidationDuringDrawIsDeferred(t *testing.T) {
	var d *Display
	target := HexCoord{7, 7}
	f := newFixture(t, func(f *fixture, _ *Options) {
		f.units.onLookup = func(h HexCoord) {
			if d != nil && h == (HexCoord{1, 1}) {
				d.Invalidate(target)
			}
		}
	})
	d = f.d

	first := d.DrawFrame(false)
	if first.TilesVisited != 36 {
		t.Fatalf("first frame visited %d tiles, want 36", first.TilesVisited)
	}
	if !d.inv.IsDirty(target) {
		t.Fatal("hex marked during the draw was lost")
	}

	// Only the deferred hex is visited by the next frame.
	f.units.onLookup = nil
	second := d.DrawFrame(false)
	if second.TilesVisited != 1 {
		t.Errorf("second frame visited %d tiles, want 1", second.TilesVisited)
	}
	if d.inv.Pending() != 0 {
		t.Errorf("pending after second frame = %d, want 0", d.inv.Pending())
	}
}
