package hexview

import (
	"image"
	"testing"
)

func TestPointerClickSelects(t *testing.T) {
	f := newFixture(t, nil)
	var p pointerState
	x, y := centre(HexCoord{1, 1})

	p.process(f.d, pointerEvent{x: x, y: y, pressed: true})
	if f.d.hasSelected {
		t.Fatal("press alone selected a hex")
	}
	p.process(f.d, pointerEvent{x: x, y: y})
	if !f.d.hasSelected || f.d.selected != (HexCoord{1, 1}) {
		t.Errorf("selected = %v (%v), want {1 1}", f.d.selected, f.d.hasSelected)
	}
	if !f.d.invalidateUnit {
		t.Error("selection did not invalidate unit reports")
	}
}

func TestPointerDragScrolls(t *testing.T) {
	f := newFixture(t, nil)
	var p pointerState

	p.process(f.d, pointerEvent{x: 100, y: 100, pressed: true})
	p.process(f.d, pointerEvent{x: 98, y: 100, pressed: true})
	if got := f.d.vp.Scroll(); got != (image.Point{}) {
		t.Fatalf("movement inside the dead zone scrolled to %v", got)
	}
	p.process(f.d, pointerEvent{x: 50, y: 90, pressed: true})
	if got, want := f.d.vp.Scroll(), (image.Point{X: 48, Y: 10}); got != want {
		t.Errorf("scroll after drag = %v, want %v", got, want)
	}
	p.process(f.d, pointerEvent{x: 50, y: 90})
	if f.d.hasSelected {
		t.Error("releasing a drag selected a hex")
	}
}

func TestPointerHoverHighlights(t *testing.T) {
	f := newFixture(t, nil)
	f.d.DrawFrame(false)
	var p pointerState
	x, y := centre(HexCoord{2, 3})

	p.process(f.d, pointerEvent{x: x, y: y})
	if !f.d.hasMouse || f.d.mouseover != (HexCoord{2, 3}) {
		t.Fatalf("mouseover = %v (%v), want {2 3}", f.d.mouseover, f.d.hasMouse)
	}
	if !f.d.inv.IsDirty(HexCoord{2, 3}) {
		t.Error("hovered hex not invalidated")
	}

	f.d.DrawFrame(false)
	p.process(f.d, pointerEvent{x: x + 1, y: y})
	if f.d.inv.Pending() != 0 {
		t.Errorf("moving within the same hex marked %d hexes", f.d.inv.Pending())
	}
}

func TestPointerMinimapScrolls(t *testing.T) {
	f := newFixture(t, minimapSetup)
	var p pointerState

	p.process(f.d, pointerEvent{x: 335, y: 235, pressed: true})
	want := f.d.vp.centerScroll(HexCoord{5, 3})
	if got := f.d.vp.Scroll(); got != want {
		t.Errorf("scroll = %v, want %v", got, want)
	}
	p.process(f.d, pointerEvent{x: 335, y: 235})
	if f.d.hasSelected {
		t.Error("minimap click selected a map hex")
	}
}

func TestInputQueueDrag(t *testing.T) {
	var q InputQueue
	q.InjectDrag(0, 0, 30, 60, 5)
	want := []pointerEvent{
		{0, 0, true},
		{7, 15, true},
		{15, 30, true},
		{22, 45, true},
		{30, 60, false},
	}
	if q.pending() != len(want) {
		t.Fatalf("pending = %d, want %d", q.pending(), len(want))
	}
	for i, w := range want {
		ev, ok := q.pop()
		if !ok || ev != w {
			t.Errorf("event %d = %v, %v; want %v", i, ev, ok, w)
		}
	}
	if q.pending() != 0 {
		t.Error("queue not drained")
	}
}

func TestInputQueueClick(t *testing.T) {
	var q InputQueue
	q.InjectClick(5, 6)
	first, _ := q.pop()
	second, _ := q.pop()
	if !first.pressed || second.pressed || first.x != 5 || second.y != 6 {
		t.Errorf("click events = %v, %v", first, second)
	}
	if _, ok := q.pop(); ok {
		t.Error("pop on an empty queue reported ok")
	}
}
