package hexview

import "image"

// HexCoord addresses one tile of the battlefield by column (X) and row (Y).
// It is the key for every piece of per-tile renderer state.
type HexCoord struct {
	X, Y int
}

// Less orders coordinates by column, then row.
func (h HexCoord) Less(o HexCoord) bool {
	if h.X != o.X {
		return h.X < o.X
	}
	return h.Y < o.Y
}

// Neighbor returns the adjacent tile in direction d. Odd columns sit half a
// row lower than even ones, so the diagonal neighbours depend on column parity.
func (h HexCoord) Neighbor(d Direction) HexCoord {
	odd := h.X&1 == 1
	switch d {
	case North:
		return HexCoord{h.X, h.Y - 1}
	case NorthEast:
		if odd {
			return HexCoord{h.X + 1, h.Y}
		}
		return HexCoord{h.X + 1, h.Y - 1}
	case SouthEast:
		if odd {
			return HexCoord{h.X + 1, h.Y + 1}
		}
		return HexCoord{h.X + 1, h.Y}
	case South:
		return HexCoord{h.X, h.Y + 1}
	case SouthWest:
		if odd {
			return HexCoord{h.X - 1, h.Y + 1}
		}
		return HexCoord{h.X - 1, h.Y}
	case NorthWest:
		if odd {
			return HexCoord{h.X - 1, h.Y}
		}
		return HexCoord{h.X - 1, h.Y - 1}
	default:
		return h
	}
}

// Adjacent returns the six neighbours in Direction order.
func (h HexCoord) Adjacent() [6]HexCoord {
	var res [6]HexCoord
	for d := North; d <= NorthWest; d++ {
		res[d] = h.Neighbor(d)
	}
	return res
}

// DirectionTo reports the direction from h to an adjacent tile o.
// ok is false when o is not adjacent to h.
func (h HexCoord) DirectionTo(o HexCoord) (d Direction, ok bool) {
	for d = North; d <= NorthWest; d++ {
		if h.Neighbor(d) == o {
			return d, true
		}
	}
	return North, false
}

// Direction names one of the six edges of a hex, clockwise from north.
type Direction uint8

const (
	North     Direction = iota // straight up
	NorthEast                  // upper right edge
	SouthEast                  // lower right edge
	South                      // straight down
	SouthWest                  // lower left edge
	NorthWest                  // upper left edge
)

// suffix is the image-name suffix used by directional edge art.
func (d Direction) suffix() string {
	switch d {
	case North:
		return "-n"
	case NorthEast:
		return "-ne"
	case SouthEast:
		return "-se"
	case South:
		return "-s"
	case SouthWest:
		return "-sw"
	case NorthWest:
		return "-nw"
	default:
		return "-n"
	}
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	return d.suffix()[1:]
}

// PixelRect is an integer, half-open screen rectangle: it covers
// [X, X+W) x [Y, Y+H). It is always derived from a HexCoord and the current
// viewport and never cached per tile.
type PixelRect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r PixelRect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r PixelRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects reports whether r and other share at least one pixel.
// Rectangles that only touch along an edge do not intersect.
func (r PixelRect) Intersects(other PixelRect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.W &&
		other.X < r.X+r.W &&
		r.Y < other.Y+other.H &&
		other.Y < r.Y+r.H
}

// Intersect returns the overlapping part of r and other (possibly empty).
func (r PixelRect) Intersect(other PixelRect) PixelRect {
	return rectFromImage(r.Image().Intersect(other.Image()))
}

// Image converts r to an image.Rectangle.
func (r PixelRect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func rectFromImage(b image.Rectangle) PixelRect {
	return PixelRect{X: b.Min.X, Y: b.Min.Y, W: b.Dx(), H: b.Dy()}
}

// ImageType selects the rendering variant of a tile image. Exactly one
// variant applies to a tile per frame; see resolveImageType for the rule.
type ImageType uint8

const (
	ImageScaled         ImageType = iota // zoom-scaled, global time-of-day colour applied
	ImageGreyed                          // desaturated (outside the active paths overlay)
	ImageBrightened                      // mouse-over or selected with a visible unit
	ImageSemiBrightened                  // externally highlighted location
	ImageUnmasked                        // scaled without colour adjustment (local lighting or transition)
)

// String implements fmt.Stringer.
func (t ImageType) String() string {
	switch t {
	case ImageScaled:
		return "scaled"
	case ImageGreyed:
		return "greyed"
	case ImageBrightened:
		return "brightened"
	case ImageSemiBrightened:
		return "semi-brightened"
	case ImageUnmasked:
		return "unmasked"
	default:
		return "unknown"
	}
}

// TerrainLayer distinguishes the two terrain passes of a tile.
type TerrainLayer uint8

const (
	TerrainBackground TerrainLayer = iota // drawn below units
	TerrainForeground                     // drawn above units so tall terrain occludes them
)

// MoveState classifies a unit for its energy-bar art. The five classes are
// mutually exclusive.
type MoveState uint8

const (
	MoveStateAlly      MoveState = iota // allied unit of another side
	MoveStateEnemy                      // enemy of the viewing team
	MoveStateUnmoved                    // own unit with full movement
	MoveStatePartMoved                  // own unit that can still move
	MoveStateMoved                      // own unit that cannot move further
)
