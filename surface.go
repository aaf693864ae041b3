package hexview

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// BlitOptions controls a single Blit. Alpha is the opacity in [0, 1]; a
// blit with Alpha <= 0 draws nothing. Src selects a sub-rectangle of the
// source image and defaults to its bounds when empty.
type BlitOptions struct {
	Alpha float64
	FlipH bool
	FlipV bool
	Src   image.Rectangle
}

// Opaque is the BlitOptions for a plain, fully opaque blit.
var Opaque = BlitOptions{Alpha: 1}

// Surface is the drawing backend of the renderer. All coordinates are screen
// pixels and every call respects the current clip rectangle.
type Surface interface {
	Bounds() PixelRect
	SetClip(r PixelRect)
	Clip() PixelRect
	Blit(img image.Image, x, y int, opts BlitOptions)
	FillRect(r PixelRect, c color.Color)
	StrokeRect(r PixelRect, c color.Color)
	// CopyRegion returns a copy of the pixels under r, ignoring the clip.
	CopyRegion(r PixelRect) image.Image
	// Replace writes img at (x, y) without blending.
	Replace(img image.Image, x, y int)
	// ForgetTextures drops any backend copies of source images. Images
	// drawn later are uploaded again.
	ForgetTextures()
}

// RGBASurface is a software Surface over an *image.RGBA. It backs
// screenshots and tests and works without a GPU.
type RGBASurface struct {
	img  *image.RGBA
	clip image.Rectangle
}

// NewRGBASurface allocates a transparent w x h surface.
func NewRGBASurface(w, h int) *RGBASurface {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &RGBASurface{img: img, clip: img.Bounds()}
}

// Image returns the backing image.
func (s *RGBASurface) Image() *image.RGBA { return s.img }

// Bounds implements Surface.
func (s *RGBASurface) Bounds() PixelRect { return rectFromImage(s.img.Bounds()) }

// SetClip implements Surface. An empty rectangle resets the clip to the
// whole surface.
func (s *RGBASurface) SetClip(r PixelRect) {
	if r.Empty() {
		s.clip = s.img.Bounds()
		return
	}
	s.clip = r.Image().Intersect(s.img.Bounds())
}

// Clip implements Surface.
func (s *RGBASurface) Clip() PixelRect { return rectFromImage(s.clip) }

// Blit implements Surface.
func (s *RGBASurface) Blit(img image.Image, x, y int, opts BlitOptions) {
	if img == nil || opts.Alpha <= 0 {
		return
	}
	sr := opts.Src
	if sr.Empty() {
		sr = img.Bounds()
	}
	if opts.FlipH || opts.FlipV {
		img = flipImage(img, sr, opts.FlipH, opts.FlipV)
		sr = img.Bounds()
	}
	dr := image.Rect(x, y, x+sr.Dx(), y+sr.Dy()).Intersect(s.clip)
	if dr.Empty() {
		return
	}
	sp := sr.Min.Add(dr.Min.Sub(image.Pt(x, y)))
	if opts.Alpha >= 1 {
		draw.Draw(s.img, dr, img, sp, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opts.Alpha*255 + 0.5)})
	draw.DrawMask(s.img, dr, img, sp, mask, image.Point{}, draw.Over)
}

// FillRect implements Surface.
func (s *RGBASurface) FillRect(r PixelRect, c color.Color) {
	dr := r.Image().Intersect(s.clip)
	if dr.Empty() {
		return
	}
	draw.Draw(s.img, dr, image.NewUniform(c), image.Point{}, draw.Over)
}

// StrokeRect implements Surface with a one pixel outline.
func (s *RGBASurface) StrokeRect(r PixelRect, c color.Color) {
	if r.Empty() {
		return
	}
	s.FillRect(PixelRect{X: r.X, Y: r.Y, W: r.W, H: 1}, c)
	s.FillRect(PixelRect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}, c)
	s.FillRect(PixelRect{X: r.X, Y: r.Y + 1, W: 1, H: r.H - 2}, c)
	s.FillRect(PixelRect{X: r.X + r.W - 1, Y: r.Y + 1, W: 1, H: r.H - 2}, c)
}

// CopyRegion implements Surface.
func (s *RGBASurface) CopyRegion(r PixelRect) image.Image {
	sr := r.Image().Intersect(s.img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	draw.Draw(out, out.Bounds(), s.img, sr.Min, draw.Src)
	return out
}

// Replace implements Surface.
func (s *RGBASurface) Replace(img image.Image, x, y int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dr := image.Rect(x, y, x+b.Dx(), y+b.Dy()).Intersect(s.clip)
	if dr.Empty() {
		return
	}
	draw.Draw(s.img, dr, img, b.Min.Add(dr.Min.Sub(image.Pt(x, y))), draw.Src)
}

// ForgetTextures implements Surface. Software surfaces draw straight from
// the source images and keep no copies.
func (s *RGBASurface) ForgetTextures() {}

// flipImage copies the sr region of img into a new image, mirrored.
func flipImage(img image.Image, sr image.Rectangle, flipH, flipV bool) *image.RGBA {
	w, h := sr.Dx(), sr.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := sr.Min.Y + y
		if flipV {
			sy = sr.Max.Y - 1 - y
		}
		for x := 0; x < w; x++ {
			sx := sr.Min.X + x
			if flipH {
				sx = sr.Max.X - 1 - x
			}
			out.Set(x, y, img.At(sx, sy))
		}
	}
	return out
}
