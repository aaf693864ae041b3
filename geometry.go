package hexview

import "image"

// Zoom is the edge length, in pixels, of the square a hex image is drawn
// into. Art is authored for DefaultZoom.
const (
	DefaultZoom = 72
	MaxZoom     = 200
	// ZoomQuantum is the granularity of every zoom level. Multiples of four
	// keep the 3/4 column spacing and the half-row offset integral, which is
	// what makes HexToPixel and PixelToHex exact inverses.
	ZoomQuantum = 4
)

// HexWidth returns the horizontal distance between two adjacent columns.
func HexWidth(zoom int) int {
	return zoom * 3 / 4
}

// quantizeZoom rounds zoom up to the next multiple of ZoomQuantum.
func quantizeZoom(zoom int) int {
	if zoom <= 0 {
		return ZoomQuantum
	}
	return (zoom + ZoomQuantum - 1) / ZoomQuantum * ZoomQuantum
}

// HexToPixel returns the rectangle covered by h in map-area coordinates
// for the given zoom and scroll offset. Columns are packed at 3/4 of the hex
// width and odd columns are shifted down by half a row.
func HexToPixel(h HexCoord, zoom int, scroll image.Point) PixelRect {
	y := h.Y*zoom - scroll.Y
	if h.X&1 == 1 {
		y += zoom / 2
	}
	return PixelRect{
		X: h.X*HexWidth(zoom) - scroll.X,
		Y: y,
		W: zoom,
		H: zoom,
	}
}

// PixelToHex returns the hex under the map-space pixel (x, y) together with
// the nearest and second-nearest edge directions of that hex relative to the
// point. Map space is screen space with the scroll offset added back in.
//
// The coarse step splits the plane into cells one row high and two columns
// wide; four slope tests then assign the corner triangles of the cell to
// the neighbouring hexes.
func PixelToHex(x, y, zoom int) (h HexCoord, nearest, second Direction) {
	s := zoom
	tessX := s * 3 / 2
	tessY := s
	xBase := floorDiv(x, tessX) * 2
	xMod := floorMod(x, tessX)
	yBase := floorDiv(y, tessY)
	yMod := floorMod(y, tessY)

	xm, ym := 0, 0
	if yMod < tessY/2 {
		switch {
		case xMod*2+yMod < s/2:
			xm, ym = -1, -1
		case xMod*2-yMod < s*3/2:
			xm, ym = 0, 0
		default:
			xm, ym = 1, -1
		}
	} else {
		switch {
		case xMod*2-(yMod-s/2) < 0:
			xm, ym = -1, 0
		case xMod*2+(yMod-s/2) < s*2:
			xm, ym = 0, 0
		default:
			xm, ym = 1, 0
		}
	}
	h = HexCoord{X: xBase + xm, Y: yBase + ym}

	r := HexToPixel(h, zoom, image.Point{})
	xo := x - (r.X + s/2)
	yo := y - (r.Y + s/2)
	nearest, second = edgeDirections(xo, yo)
	return h, nearest, second
}

// edgeDirections picks the nearest and second-nearest edges for an offset
// from a tile centre. Exact boundary cases fall to the axis-aligned
// direction (North/South) for the nearest edge.
func edgeDirections(xo, yo int) (nearest, second Direction) {
	if yo > 0 {
		switch {
		case xo > yo/2:
			nearest = SouthEast
			if xo/2 > yo {
				second = NorthEast
			} else {
				second = South
			}
		case -xo > yo/2:
			nearest = SouthWest
			if -xo/2 > yo {
				second = NorthWest
			} else {
				second = South
			}
		default:
			nearest = South
			if xo > 0 {
				second = SouthEast
			} else {
				second = SouthWest
			}
		}
		return nearest, second
	}

	switch {
	case xo > -yo/2:
		nearest = NorthEast
		if xo/2 > -yo {
			second = SouthEast
		} else {
			second = North
		}
	case -xo > -yo/2:
		nearest = NorthWest
		if -xo/2 > -yo {
			second = SouthWest
		} else {
			second = North
		}
	default:
		nearest = North
		if xo > 0 {
			second = NorthEast
		} else {
			second = NorthWest
		}
	}
	return nearest, second
}

// MapPixelSize returns the pixel extent of a mapW x mapH map at zoom,
// including the right slant of the last column and the half-row drop of odd
// columns.
func MapPixelSize(mapW, mapH, zoom int) image.Point {
	if mapW <= 0 || mapH <= 0 {
		return image.Point{}
	}
	return image.Point{
		X: HexWidth(zoom)*mapW + zoom/4,
		Y: zoom*mapH + zoom/2,
	}
}

// MinZoom returns the smallest quantised zoom at which a mapW x mapH map
// covers a viewport of the given size in both dimensions. It takes the larger
// of the horizontal and vertical ratios.
func MinZoom(mapW, mapH int, view image.Point) int {
	if mapW <= 0 || mapH <= 0 {
		return ZoomQuantum
	}
	// width(z) = z*(3*mapW+1)/4, height(z) = z*(2*mapH+1)/2
	zx := ceilDiv(view.X*4, 3*mapW+1)
	zy := ceilDiv(view.Y*2, 2*mapH+1)
	return quantizeZoom(max(zx, zy))
}

// VisibleHexBounds returns the inclusive range of hexes whose rectangles can
// intersect a viewport of size view scrolled to scroll, padded by one hex on
// every side and clamped to the map. When the map is empty br < tl.
func VisibleHexBounds(scroll, view image.Point, zoom, mapW, mapH int) (tl, br HexCoord) {
	hw := HexWidth(zoom)
	if hw <= 0 || zoom <= 0 {
		return HexCoord{}, HexCoord{-1, -1}
	}
	right := scroll.X + view.X - 1
	bottom := scroll.Y + view.Y - 1

	tl.X = floorDiv(scroll.X, hw) - 1
	tl.Y = floorDiv(scroll.Y-zoom/2, zoom) - 1
	br.X = floorDiv(right, hw) + 1
	br.Y = floorDiv(bottom, zoom) + 1

	tl.X = max(tl.X, 0)
	tl.Y = max(tl.Y, 0)
	br.X = min(br.X, mapW-1)
	br.Y = min(br.Y, mapH-1)
	return tl, br
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return -floorDiv(-a, b)
}
