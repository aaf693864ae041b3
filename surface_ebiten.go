package hexview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface draws into an *ebiten.Image. Source images that are not
// already ebiten images are uploaded once and kept in a texture cache.
type EbitenSurface struct {
	target   *ebiten.Image
	clip     image.Rectangle
	textures map[image.Image]*ebiten.Image
}

// NewEbitenSurface wraps target.
func NewEbitenSurface(target *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{
		target:   target,
		clip:     target.Bounds(),
		textures: make(map[image.Image]*ebiten.Image),
	}
}

// Target returns the wrapped image.
func (s *EbitenSurface) Target() *ebiten.Image { return s.target }

// ForgetTextures implements Surface. Every uploaded texture is deallocated.
func (s *EbitenSurface) ForgetTextures() {
	for _, t := range s.textures {
		t.Deallocate()
	}
	clear(s.textures)
}

func (s *EbitenSurface) texture(img image.Image) *ebiten.Image {
	if ei, ok := img.(*ebiten.Image); ok {
		return ei
	}
	if t, ok := s.textures[img]; ok {
		return t
	}
	t := ebiten.NewImageFromImage(img)
	s.textures[img] = t
	return t
}

func (s *EbitenSurface) clipped() *ebiten.Image {
	return s.target.SubImage(s.clip).(*ebiten.Image)
}

// Bounds implements Surface.
func (s *EbitenSurface) Bounds() PixelRect { return rectFromImage(s.target.Bounds()) }

// SetClip implements Surface.
func (s *EbitenSurface) SetClip(r PixelRect) {
	if r.Empty() {
		s.clip = s.target.Bounds()
		return
	}
	s.clip = r.Image().Intersect(s.target.Bounds())
}

// Clip implements Surface.
func (s *EbitenSurface) Clip() PixelRect { return rectFromImage(s.clip) }

// Blit implements Surface.
func (s *EbitenSurface) Blit(img image.Image, x, y int, opts BlitOptions) {
	if img == nil || opts.Alpha <= 0 || s.clip.Empty() {
		return
	}
	tex := s.texture(img)
	sr := opts.Src
	if sr.Empty() {
		sr = tex.Bounds()
	} else {
		// Texture bounds start at the origin regardless of the source bounds.
		sr = sr.Sub(img.Bounds().Min)
	}
	src := tex.SubImage(sr).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	if opts.FlipH {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(sr.Dx()), 0)
	}
	if opts.FlipV {
		op.GeoM.Scale(1, -1)
		op.GeoM.Translate(0, float64(sr.Dy()))
	}
	op.GeoM.Translate(float64(x), float64(y))
	if opts.Alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(opts.Alpha))
	}
	s.clipped().DrawImage(src, op)
}

// FillRect implements Surface.
func (s *EbitenSurface) FillRect(r PixelRect, c color.Color) {
	if r.Empty() || s.clip.Empty() {
		return
	}
	vector.DrawFilledRect(s.clipped(), float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// StrokeRect implements Surface.
func (s *EbitenSurface) StrokeRect(r PixelRect, c color.Color) {
	if r.Empty() || s.clip.Empty() {
		return
	}
	vector.StrokeRect(s.clipped(), float32(r.X)+0.5, float32(r.Y)+0.5, float32(r.W-1), float32(r.H-1), 1, c, false)
}

// CopyRegion implements Surface. It reads pixels back from the GPU and should
// only be used for small regions such as report backups.
func (s *EbitenSurface) CopyRegion(r PixelRect) image.Image {
	sr := r.Image().Intersect(s.target.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, sr.Dx(), sr.Dy()))
	if sr.Empty() {
		return out
	}
	// ReadPixels yields premultiplied RGBA, which is what image.RGBA holds.
	s.target.SubImage(sr).(*ebiten.Image).ReadPixels(out.Pix)
	return out
}

// Replace implements Surface.
func (s *EbitenSurface) Replace(img image.Image, x, y int) {
	if img == nil || s.clip.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{Blend: ebiten.BlendCopy}
	op.GeoM.Translate(float64(x), float64(y))
	s.clipped().DrawImage(s.texture(img), op)
}
