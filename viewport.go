package hexview

import (
	"image"
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollMode selects how ScrollTo reaches its target.
type ScrollMode uint8

const (
	ScrollSmooth ScrollMode = iota // one frame per step, steps proportional to distance
	ScrollWarp                     // single step, single redraw
)

// Viewport owns the scroll offset and zoom level of the map area. Every
// mutation re-clamps both so the visible rectangle stays inside the map.
type Viewport struct {
	// area is the screen-space rectangle the map is drawn into.
	area PixelRect

	mapW, mapH int

	zoom    int
	maxZoom int

	// scroll is the map-space pixel shown at the top-left corner of area.
	scroll image.Point
}

// NewViewport creates a viewport over a mapW x mapH map drawn into area,
// starting at DefaultZoom (clamped) and scrolled to the origin.
func NewViewport(area PixelRect, mapW, mapH int) *Viewport {
	v := &Viewport{
		area:    area,
		mapW:    mapW,
		mapH:    mapH,
		zoom:    DefaultZoom,
		maxZoom: MaxZoom,
	}
	v.clamp()
	return v
}

// Zoom returns the current zoom (hex size in pixels).
func (v *Viewport) Zoom() int { return v.zoom }

// Scroll returns the current scroll offset in map pixels.
func (v *Viewport) Scroll() image.Point { return v.scroll }

// Area returns the screen rectangle of the map area.
func (v *Viewport) Area() PixelRect { return v.area }

// MapSize returns the map dimensions in hexes.
func (v *Viewport) MapSize() (w, h int) { return v.mapW, v.mapH }

// SetArea moves or resizes the map area and re-clamps.
func (v *Viewport) SetArea(area PixelRect) {
	v.area = area
	v.clamp()
}

// SetMapSize changes the map dimensions and re-clamps.
func (v *Viewport) SetMapSize(w, h int) {
	v.mapW, v.mapH = w, h
	v.clamp()
}

// SetMaxZoom changes the upper zoom bound and re-clamps.
func (v *Viewport) SetMaxZoom(z int) {
	v.maxZoom = z - z%ZoomQuantum
	v.clamp()
}

// MinZoom returns the smallest zoom at which the map fills the map area.
func (v *Viewport) MinZoom() int {
	return MinZoom(v.mapW, v.mapH, image.Point{X: v.area.W, Y: v.area.H})
}

// ScrollBy moves the view by (dx, dy) map pixels. It reports whether the
// offset actually changed after clamping.
func (v *Viewport) ScrollBy(dx, dy int) bool {
	orig := v.scroll
	v.scroll.X += dx
	v.scroll.Y += dy
	v.clamp()
	return v.scroll != orig
}

// SetZoom changes the zoom by delta, keeping the map point under the centre
// of the area fixed. The result is quantised and clamped to
// [MinZoom, maxZoom]. It reports whether the zoom changed.
func (v *Viewport) SetZoom(delta int) bool {
	if delta == 0 {
		return false
	}
	target := v.zoom + delta
	if delta > 0 {
		target = quantizeZoom(target)
	} else {
		target -= floorMod(target, ZoomQuantum)
	}
	target = v.clampZoom(target)
	if target == v.zoom {
		return false
	}

	amount := target - v.zoom
	v.scroll.X += (v.scroll.X + v.area.W/2) * amount / v.zoom
	v.scroll.Y += (v.scroll.Y + v.area.H/2) * amount / v.zoom
	v.zoom = target
	v.clamp()
	return true
}

// CenterOn scrolls instantly so h sits in the middle of the map area.
// It reports whether the offset changed.
func (v *Viewport) CenterOn(h HexCoord) bool {
	target := v.centerScroll(h)
	return v.ScrollBy(target.X-v.scroll.X, target.Y-v.scroll.Y)
}

// centerScroll returns the (clamped) scroll offset that centres h.
func (v *Viewport) centerScroll(h HexCoord) image.Point {
	return v.centerScrollPoint(v.HexCenter(h))
}

// centerScrollPoint returns the (clamped) scroll offset that centres the
// map-space pixel p.
func (v *Viewport) centerScrollPoint(p image.Point) image.Point {
	return v.clampScroll(image.Point{X: p.X - v.area.W/2, Y: p.Y - v.area.H/2})
}

// HexCenter returns the map-space pixel at the centre of h.
func (v *Viewport) HexCenter(h HexCoord) image.Point {
	r := HexToPixel(h, v.zoom, image.Point{})
	return image.Point{X: r.X + v.zoom/2, Y: r.Y + v.zoom/2}
}

// HexRect returns the screen rectangle of h.
func (v *Viewport) HexRect(h HexCoord) PixelRect {
	r := HexToPixel(h, v.zoom, v.scroll)
	r.X += v.area.X
	r.Y += v.area.Y
	return r
}

// HexAt hit-tests the screen pixel (sx, sy). ok is false when the pixel lies
// outside the map area.
func (v *Viewport) HexAt(sx, sy int) (h HexCoord, nearest, second Direction, ok bool) {
	if !v.area.Contains(sx, sy) {
		return HexCoord{}, North, North, false
	}
	mx := sx - v.area.X + v.scroll.X
	my := sy - v.area.Y + v.scroll.Y
	h, nearest, second = PixelToHex(mx, my, v.zoom)
	return h, nearest, second, true
}

// VisibleBounds returns the padded, clamped range of hexes to draw.
func (v *Viewport) VisibleBounds() (tl, br HexCoord) {
	return VisibleHexBounds(v.scroll, image.Point{X: v.area.W, Y: v.area.H}, v.zoom, v.mapW, v.mapH)
}

// OnBoard reports whether h lies inside the map.
func (v *Viewport) OnBoard(h HexCoord) bool {
	return h.X >= 0 && h.Y >= 0 && h.X < v.mapW && h.Y < v.mapH
}

func (v *Viewport) clampZoom(z int) int {
	lo := v.MinZoom()
	hi := v.maxZoom
	if hi < ZoomQuantum {
		hi = ZoomQuantum
	}
	if z > hi {
		z = hi
	}
	if z < lo {
		z = lo
	}
	return z
}

// clamp restricts zoom and scroll so the visible area stays within the map.
func (v *Viewport) clamp() {
	v.zoom = v.clampZoom(v.zoom)
	v.scroll = v.clampScroll(v.scroll)
}

func (v *Viewport) clampScroll(p image.Point) image.Point {
	size := MapPixelSize(v.mapW, v.mapH, v.zoom)
	if p.X+v.area.W > size.X {
		p.X = size.X - v.area.W
	}
	if p.Y+v.area.H > size.Y {
		p.Y = size.Y - v.area.H
	}
	// If the map is smaller than the area, pin it to the origin.
	p.X = max(p.X, 0)
	p.Y = max(p.Y, 0)
	return p
}

// FrameSequence is a multi-frame operation driven one step at a time by the
// frame scheduler. Next applies one step and reports false once there are no
// steps left. Interval is the pacing the driver should keep between steps.
type FrameSequence interface {
	Next() bool
	Interval() time.Duration
}

// ScrollSequence moves a Viewport towards a target in discrete steps. Each
// step is one frame; the driving loop draws and pumps events in between.
type ScrollSequence struct {
	vp       *Viewport
	tweenX   *gween.Tween
	tweenY   *gween.Tween
	dx, dy   int
	steps    int
	step     int
	appliedX int
	appliedY int
	interval time.Duration
	moved    bool

	// onMove is called after every step that changed the scroll offset.
	onMove func()
}

// ScrollTo returns a sequence that brings h to the centre of the area.
// The number of steps is the larger pixel delta divided by speed (at least
// one when there is any movement); ScrollWarp always uses a single step.
func (v *Viewport) ScrollTo(h HexCoord, mode ScrollMode, speed int) *ScrollSequence {
	return v.ScrollToPoint(v.HexCenter(h), mode, speed)
}

// ScrollToPoint is ScrollTo for an arbitrary map-space pixel.
func (v *Viewport) ScrollToPoint(p image.Point, mode ScrollMode, speed int) *ScrollSequence {
	target := v.centerScrollPoint(p)
	dx := target.X - v.scroll.X
	dy := target.Y - v.scroll.Y

	steps := 0
	if dx != 0 || dy != 0 {
		steps = 1
		if mode == ScrollSmooth && speed > 0 {
			steps = max(1, max(absInt(dx), absInt(dy))/speed)
		}
	}
	dur := float32(max(steps, 1))
	return &ScrollSequence{
		vp:     v,
		tweenX: gween.New(0, float32(dx), dur, ease.Linear),
		tweenY: gween.New(0, float32(dy), dur, ease.Linear),
		dx:     dx,
		dy:     dy,
		steps:  steps,
	}
}

// Steps returns the total number of steps in the sequence.
func (s *ScrollSequence) Steps() int { return s.steps }

// Moved reports whether any step changed the scroll offset.
func (s *ScrollSequence) Moved() bool { return s.moved }

// Interval implements FrameSequence.
func (s *ScrollSequence) Interval() time.Duration { return s.interval }

// Next implements FrameSequence.
func (s *ScrollSequence) Next() bool {
	if s.step >= s.steps {
		return false
	}
	s.step++

	fx, _ := s.tweenX.Update(1)
	fy, _ := s.tweenY.Update(1)
	tx := int(math.Round(float64(fx)))
	ty := int(math.Round(float64(fy)))
	if s.step == s.steps {
		tx, ty = s.dx, s.dy
	}

	if s.vp.ScrollBy(tx-s.appliedX, ty-s.appliedY) {
		s.moved = true
		if s.onMove != nil {
			s.onMove()
		}
	}
	s.appliedX, s.appliedY = tx, ty
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
