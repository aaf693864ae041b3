package hexview

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// maxTextCache bounds the rendered-text cache; it is cleared when full.
const maxTextCache = 512

type textKey struct {
	s    string
	size int
	col  color.RGBA
}

// textRenderer rasterises strings with the Go regular font. Faces are kept
// per size and rendered strings are cached as images.
type textRenderer struct {
	font     *opentype.Font
	faces    map[int]font.Face
	rendered map[textKey]*image.RGBA
}

func newTextRenderer() (*textRenderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &textRenderer{
		font:     f,
		faces:    make(map[int]font.Face),
		rendered: make(map[textKey]*image.RGBA),
	}, nil
}

func (t *textRenderer) face(size int) font.Face {
	if f, ok := t.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(t.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Only an invalid size fails; fall back to the default.
		f, _ = opentype.NewFace(t.font, &opentype.FaceOptions{Size: 12, DPI: 72})
	}
	t.faces[size] = f
	return f
}

// measure returns the pixel size of s.
func (t *textRenderer) measure(s string, size int) image.Point {
	f := t.face(size)
	m := f.Metrics()
	return image.Point{
		X: font.MeasureString(f, s).Ceil(),
		Y: (m.Ascent + m.Descent).Ceil(),
	}
}

// render returns s drawn in col on a transparent image of its measured size.
func (t *textRenderer) render(s string, size int, col color.RGBA) *image.RGBA {
	key := textKey{s: s, size: size, col: col}
	if img, ok := t.rendered[key]; ok {
		return img
	}
	if len(t.rendered) >= maxTextCache {
		clear(t.rendered)
	}
	f := t.face(size)
	sz := t.measure(s, size)
	img := image.NewRGBA(image.Rect(0, 0, max(sz.X, 1), max(sz.Y, 1)))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: f,
		Dot:  fixed.Point26_6{X: 0, Y: f.Metrics().Ascent},
	}
	d.DrawString(s)
	t.rendered[key] = img
	return img
}

// draw blits s at (x, y) and returns the covered rectangle.
func (t *textRenderer) draw(dst Surface, s string, size int, col color.RGBA, x, y int) PixelRect {
	img := t.render(s, size, col)
	dst.Blit(img, x, y, Opaque)
	return PixelRect{X: x, Y: y, W: img.Bounds().Dx(), H: img.Bounds().Dy()}
}

var outlineOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// drawOutlined draws s with a one pixel outline behind it.
func (t *textRenderer) drawOutlined(dst Surface, s string, size int, fill, outline color.RGBA, x, y int) PixelRect {
	for _, off := range outlineOffsets {
		t.draw(dst, s, size, outline, x+off[0], y+off[1])
	}
	r := t.draw(dst, s, size, fill, x, y)
	return PixelRect{X: r.X - 1, Y: r.Y - 1, W: r.W + 2, H: r.H + 2}
}
