package hexview

import (
	"image/color"
	"testing"
)

func newTestText(t *testing.T) *textRenderer {
	t.Helper()
	tr, err := newTextRenderer()
	if err != nil {
		t.Fatalf("newTextRenderer: %v", err)
	}
	return tr
}

func TestTextMeasure(t *testing.T) {
	tr := newTestText(t)
	small := tr.measure("60%", 12)
	large := tr.measure("60%", 24)
	if small.X <= 0 || small.Y <= 0 {
		t.Fatalf("measure = %v, want a positive size", small)
	}
	if large.X <= small.X || large.Y <= small.Y {
		t.Errorf("24pt %v not larger than 12pt %v", large, small)
	}
	if longer := tr.measure("60% (3)", 12); longer.X <= small.X {
		t.Errorf("longer string measured %v, want wider than %v", longer, small)
	}
	if len(tr.faces) != 2 {
		t.Errorf("faces cached = %d, want 2", len(tr.faces))
	}
}

func TestTextRenderCache(t *testing.T) {
	tr := newTestText(t)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	a := tr.render("gold", 12, white)
	if b := tr.render("gold", 12, white); a != b {
		t.Error("same key rendered twice")
	}
	if c := tr.render("gold", 12, color.RGBA{R: 255, A: 255}); c == a {
		t.Error("different colour shared a cache entry")
	}
	sz := tr.measure("gold", 12)
	if got := a.Bounds().Size(); got != sz {
		t.Errorf("rendered size %v, measured %v", got, sz)
	}

	for i := 0; len(tr.rendered) < maxTextCache; i++ {
		tr.render(string(rune('a'+i%26))+string(rune('a'+i/26%26))+string(rune('a'+i/676)), 12, white)
	}
	tr.render("overflow", 12, white)
	if len(tr.rendered) != 1 {
		t.Errorf("cache size after overflow = %d, want 1", len(tr.rendered))
	}
}

func TestTextDrawOutlined(t *testing.T) {
	tr := newTestText(t)
	surf := NewRGBASurface(100, 60)
	fill := color.RGBA{R: 255, G: 255, A: 255}
	outline := color.RGBA{A: 255}

	r := tr.drawOutlined(surf, "42", 24, fill, outline, 10, 10)
	sz := tr.measure("42", 24)
	want := PixelRect{X: 9, Y: 9, W: sz.X + 2, H: sz.Y + 2}
	if r != want {
		t.Errorf("drawOutlined rect = %+v, want %+v", r, want)
	}

	lit := false
	img := surf.Image()
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if img.RGBAAt(x, y) == fill {
				lit = true
			}
		}
	}
	if !lit {
		t.Error("no fill-coloured pixel drawn")
	}
	if got := img.RGBAAt(r.X+r.W+2, r.Y); got.A != 0 {
		t.Errorf("pixel outside the text rect = %v", got)
	}
}
