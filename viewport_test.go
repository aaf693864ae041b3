package hexview

import (
	"image"
	"testing"
)

func newTestViewport() *Viewport {
	return NewViewport(PixelRect{W: 270, H: 360}, 10, 10)
}

func TestViewportScrollClamp(t *testing.T) {
	v := newTestViewport()
	if v.ScrollBy(-5, -5) {
		t.Error("scrolling past the origin reported a change")
	}
	if !v.ScrollBy(1000, 1000) {
		t.Fatal("ScrollBy(1000, 1000) reported no change")
	}
	size := MapPixelSize(10, 10, 72)
	want := image.Point{X: size.X - 270, Y: size.Y - 360}
	if got := v.Scroll(); got != want {
		t.Errorf("scroll = %v, want %v", got, want)
	}
	if v.ScrollBy(1, 1) {
		t.Error("scrolling past the far edge reported a change")
	}
}

func TestViewportZoomQuantisedAndClamped(t *testing.T) {
	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"round up", 1, 76},
		{"round down", -1, 68},
		{"exact", 8, 80},
		{"below minimum", -1000, 36},
		{"above maximum", 1000, MaxZoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewport()
			v.SetZoom(tt.delta)
			if got := v.Zoom(); got != tt.want {
				t.Errorf("zoom = %d, want %d", got, tt.want)
			}
			s := v.Scroll()
			size := MapPixelSize(10, 10, v.Zoom())
			if s.X < 0 || s.Y < 0 || s.X+270 > max(size.X, 270) || s.Y+360 > max(size.Y, 360) {
				t.Errorf("scroll %v escapes map %v", s, size)
			}
		})
	}
}

func TestViewportZoomKeepsCentre(t *testing.T) {
	v := NewViewport(PixelRect{W: 270, H: 360}, 50, 50)
	v.ScrollBy(500, 500)
	before, _, _, _ := v.HexAt(135, 180)
	if !v.SetZoom(ZoomQuantum * 4) {
		t.Fatal("SetZoom reported no change")
	}
	after, _, _, _ := v.HexAt(135, 180)
	if before != after {
		t.Errorf("hex under centre moved from %v to %v", before, after)
	}
	if v.SetZoom(0) {
		t.Error("SetZoom(0) reported a change")
	}
}

func TestViewportHexAt(t *testing.T) {
	v := NewViewport(PixelRect{X: 10, Y: 20, W: 270, H: 360}, 10, 10)
	h, _, _, ok := v.HexAt(10+54+36, 20+108+36)
	if !ok || h != (HexCoord{1, 1}) {
		t.Errorf("HexAt = %v, %v; want {1 1}, true", h, ok)
	}
	if _, _, _, ok := v.HexAt(5, 5); ok {
		t.Error("HexAt outside the area reported ok")
	}
	if r := v.HexRect(HexCoord{1, 1}); r.X != 64 || r.Y != 128 {
		t.Errorf("HexRect = %+v, want origin (64, 128)", r)
	}
}

func TestScrollSequenceSmooth(t *testing.T) {
	v := newTestViewport()
	seq := v.ScrollTo(HexCoord{9, 9}, ScrollSmooth, 100)
	want := v.clampScroll(image.Point{X: 9*54 + 36 - 135, Y: 9*72 + 72 - 180})
	wantSteps := max(want.X, want.Y) / 100
	if seq.Steps() != wantSteps {
		t.Fatalf("steps = %d, want %d", seq.Steps(), wantSteps)
	}

	n := 0
	prev := v.Scroll()
	for seq.Next() {
		n++
		cur := v.Scroll()
		if cur.X < prev.X || cur.Y < prev.Y {
			t.Errorf("step %d moved backwards: %v -> %v", n, prev, cur)
		}
		prev = cur
	}
	if n != wantSteps {
		t.Errorf("Next returned true %d times, want %d", n, wantSteps)
	}
	if got := v.Scroll(); got != want {
		t.Errorf("final scroll = %v, want %v", got, want)
	}
	if !seq.Moved() {
		t.Error("Moved = false after scrolling")
	}
	if seq.Next() {
		t.Error("Next after completion returned true")
	}
}

func TestScrollSequenceWarpAndNoop(t *testing.T) {
	v := newTestViewport()
	seq := v.ScrollTo(HexCoord{9, 9}, ScrollWarp, 100)
	if seq.Steps() != 1 {
		t.Fatalf("warp steps = %d, want 1", seq.Steps())
	}
	seq.Next()

	again := v.ScrollTo(HexCoord{9, 9}, ScrollSmooth, 100)
	if again.Steps() != 0 {
		t.Errorf("steps to the current position = %d, want 0", again.Steps())
	}
	if again.Next() {
		t.Error("empty sequence Next returned true")
	}
}

func TestScrollSequenceCallsOnMove(t *testing.T) {
	v := newTestViewport()
	seq := v.ScrollTo(HexCoord{9, 9}, ScrollSmooth, 50)
	moves := 0
	seq.onMove = func() { moves++ }
	for seq.Next() {
	}
	if moves == 0 || moves > seq.Steps() {
		t.Errorf("onMove called %d times for %d steps", moves, seq.Steps())
	}
}
