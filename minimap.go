package hexview

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// minimapCell is the size of one hex in the unscaled minimap.
const minimapCell = 4

var (
	minimapBoxColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	minimapUnknown  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	minimapShroud   = color.RGBA{A: 255}
)

// minimapRenderer caches the terrain overview scaled to the minimap area.
type minimapRenderer struct {
	base image.Image
	size image.Point
}

func (m *minimapRenderer) invalidate() { m.base = nil }

// MinimapBox returns the viewport outline inside a minimap drawn into mini.
func (v *Viewport) MinimapBox(mini PixelRect) PixelRect {
	if v.mapW <= 0 || v.mapH <= 0 || v.zoom <= 0 {
		return PixelRect{}
	}
	xs := float64(mini.W) / float64(v.mapW)
	ys := float64(mini.H) / float64(v.mapH)
	hw := float64(v.zoom) * 0.75
	z := float64(v.zoom)
	return PixelRect{
		X: mini.X + int(xs*float64(v.scroll.X)/hw),
		Y: mini.Y + int(ys*float64(v.scroll.Y)/z),
		W: int(xs*float64(v.area.W)/hw-xs) + 3,
		H: int(ys*float64(v.area.H)/z-ys) + 3,
	}
}

// buildMinimap renders one cell per hex, laid out like the map, and scales
// it to size. Shrouded hexes are black and fogged ones darkened.
func (d *Display) buildMinimap(size image.Point) image.Image {
	mw, mh := d.m.Size()
	src := image.NewRGBA(image.Rect(0, 0, mw*minimapCell*3/4+minimapCell/4, mh*minimapCell+minimapCell/2))
	for x := 0; x < mw; x++ {
		for y := 0; y < mh; y++ {
			h := HexCoord{X: x, Y: y}
			c := minimapUnknown
			switch {
			case d.isShrouded(h):
				c = minimapShroud
			default:
				if def := d.terrain.Def(h); def != nil {
					c = colorOr(def.MinimapColor, minimapUnknown)
				}
				if d.isFogged(h) {
					c = color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
				}
			}
			r := HexToPixel(h, minimapCell, image.Point{}).Image()
			draw.Draw(src, r, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.NearestNeighbor.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	return out
}

// drawMinimap blits the cached overview, one cell per visible unit and the
// viewport outline.
func (d *Display) drawMinimap() bool {
	area := d.cfg.Theme.Minimap
	mw, mh := d.m.Size()
	if area.Empty() || mw <= 0 || mh <= 0 {
		return false
	}
	size := image.Point{X: area.W, Y: area.H}
	if d.minimap.base == nil || d.minimap.size != size {
		d.minimap.base = d.buildMinimap(size)
		d.minimap.size = size
	}

	prev := d.surface.Clip()
	d.surface.SetClip(area)
	defer d.surface.SetClip(prev)

	d.surface.Replace(d.minimap.base, area.X, area.Y)

	if d.units != nil {
		for x := 0; x < mw; x++ {
			for y := 0; y < mh; y++ {
				h := HexCoord{X: x, Y: y}
				u, ok := d.units.UnitAt(h)
				if !ok || d.isFogged(h) || d.isShrouded(h) || (u.Invisible && d.isEnemy(u.Side)) {
					continue
				}
				d.surface.FillRect(minimapUnitRect(area, mw, mh, h), d.teams.SideColor(u.Side))
			}
		}
	}

	d.surface.StrokeRect(d.vp.MinimapBox(area), minimapBoxColor)
	d.markUpdated(area)
	return true
}

// minimapUnitRect is the minimap cell of h; odd columns drop half a cell.
func minimapUnitRect(area PixelRect, mw, mh int, h HexCoord) PixelRect {
	odd := 0
	if h.X&1 == 1 {
		odd = area.H / 2
	}
	return PixelRect{
		X: area.X + h.X*area.W/mw,
		Y: area.Y + (h.Y*area.H+odd)/mh,
		W: max(1, area.W/mw),
		H: max(1, area.H/mh),
	}
}

// MinimapLocationOn maps a click inside the minimap to a hex. ok is false
// outside the minimap.
func (d *Display) MinimapLocationOn(x, y int) (HexCoord, bool) {
	area := d.cfg.Theme.Minimap
	if !area.Contains(x, y) {
		return HexCoord{}, false
	}
	mw, mh := d.m.Size()
	col := (x - area.X) * mw / area.W
	row := (y - area.Y) * mh / area.H
	return HexCoord{X: min(col, mw-1), Y: min(row, mh-1)}, true
}
