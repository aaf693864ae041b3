package hexview

import (
	"image"
	"image/color"
	"testing"
)

var (
	surfRed   = color.RGBA{R: 255, A: 255}
	surfBlue  = color.RGBA{B: 255, A: 255}
	surfClear = color.RGBA{}
)

func TestRGBASurfaceClip(t *testing.T) {
	s := NewRGBASurface(20, 20)
	s.SetClip(PixelRect{X: 5, Y: 5, W: 5, H: 5})
	s.FillRect(PixelRect{W: 20, H: 20}, surfRed)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{5, 5, surfRed},
		{9, 9, surfRed},
		{4, 5, surfClear},
		{10, 9, surfClear},
	}
	for _, tt := range tests {
		if got := s.Image().RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	s.SetClip(PixelRect{})
	if got := s.Clip(); got != s.Bounds() {
		t.Errorf("reset clip = %+v, want bounds", got)
	}
}

func TestRGBASurfaceBlit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, surfRed)
	src.SetRGBA(1, 0, surfBlue)

	tests := []struct {
		name        string
		opts        BlitOptions
		left, right color.RGBA
	}{
		{"opaque", Opaque, surfRed, surfBlue},
		{"flipped", BlitOptions{Alpha: 1, FlipH: true}, surfBlue, surfRed},
		{"sub-rectangle", BlitOptions{Alpha: 1, Src: image.Rect(1, 0, 2, 1)}, surfBlue, surfClear},
		{"invisible", BlitOptions{}, surfClear, surfClear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRGBASurface(4, 1)
			s.Blit(src, 1, 0, tt.opts)
			img := s.Image()
			if img.RGBAAt(1, 0) != tt.left || img.RGBAAt(2, 0) != tt.right {
				t.Errorf("pixels = %v %v, want %v %v", img.RGBAAt(1, 0), img.RGBAAt(2, 0), tt.left, tt.right)
			}
		})
	}

	s := NewRGBASurface(1, 1)
	s.Blit(solid(1, 1, surfRed), 0, 0, BlitOptions{Alpha: 0.5})
	if got := s.Image().RGBAAt(0, 0); got.A < 120 || got.A > 135 || got.R != got.A {
		t.Errorf("half alpha blit = %v", got)
	}
}

func TestRGBASurfaceCopyAndReplace(t *testing.T) {
	s := NewRGBASurface(10, 10)
	s.FillRect(PixelRect{X: 2, Y: 2, W: 3, H: 3}, surfRed)
	backup := s.CopyRegion(PixelRect{X: 2, Y: 2, W: 3, H: 3})
	s.FillRect(PixelRect{W: 10, H: 10}, surfBlue)

	s.Replace(backup, 2, 2)
	if got := s.Image().RGBAAt(3, 3); got != surfRed {
		t.Errorf("replaced pixel = %v, want surfRed", got)
	}
	if got := s.Image().RGBAAt(5, 5); got != surfBlue {
		t.Errorf("pixel outside the backup = %v, want surfBlue", got)
	}

	s.StrokeRect(PixelRect{X: 0, Y: 0, W: 10, H: 10}, surfRed)
	if s.Image().RGBAAt(0, 5) != surfRed || s.Image().RGBAAt(9, 9) != surfRed || s.Image().RGBAAt(5, 5) != surfBlue {
		t.Error("StrokeRect drew the wrong pixels")
	}
}
