package hexview

import (
	"fmt"
	"image/color"
	"strings"
)

var (
	movementText    = color.RGBA{R: 255, G: 255, A: 255}
	movementOutline = color.RGBA{A: 255}
)

// footstepImage selects the footstep art for step idx of the route. The
// first step gets none. Feet alternate left and right, face the next step
// (the last step faces away from the previous one) and pick their variant by
// the cost of entering the hex.
func (d *Display) footstepImage(idx int) (id string, dir Direction, ok bool) {
	steps := d.route.Steps
	if idx <= 0 || idx >= len(steps) {
		return "", North, false
	}
	left := idx%2 == 0

	from, to := steps[idx], HexCoord{}
	if idx+1 < len(steps) {
		to = steps[idx+1]
	} else {
		from, to = steps[idx-1], steps[idx]
	}
	dir, _ = from.DirectionTo(to)

	im := d.cfg.Images
	var family []string
	vertical := dir == North || dir == South
	switch {
	case left && vertical:
		family = im.FootLeftN
	case left:
		family = im.FootLeftNW
	case vertical:
		family = im.FootRightN
	default:
		family = im.FootRightNW
	}
	if len(family) == 0 {
		return "", dir, false
	}

	cost := 1
	if idx < len(d.route.Costs) && d.route.Costs[idx] > 0 {
		cost = d.route.Costs[idx]
	}
	return family[min(cost, len(family))-1], dir, true
}

// drawFootstep draws the half-transparent footstep of a route hex. The art
// faces north-west; other directions are mirrored.
func (d *Display) drawFootstep(h HexCoord, r PixelRect) {
	if d.route == nil {
		return
	}
	idx, ok := d.routeIndex[h]
	if !ok {
		return
	}
	id, dir, ok := d.footstepImage(idx)
	if !ok {
		return
	}
	d.blitHex(id, ImageUnmasked, r.X, r.Y, BlitOptions{
		Alpha: 0.5,
		FlipH: !(dir > North && dir <= South),
		FlipV: dir >= SouthEast && dir <= SouthWest,
	})
}

// movementInfo returns the annotation of the last route step: the defense
// percentage when known and the zoom is at least the default, followed by the
// moves left when between 1 and 9.
func (d *Display) movementInfo() string {
	r := d.route
	var sb strings.Builder
	if r.ShowDefense && d.vp.Zoom() >= d.cfg.Render.DefaultZoom {
		fmt.Fprintf(&sb, "%d%%", r.Defense)
	}
	if r.MovesLeft > 0 && r.MovesLeft < 10 {
		fmt.Fprintf(&sb, " (%d)", r.MovesLeft)
	}
	return sb.String()
}

// drawMovementInfo writes the annotation centred on the final route step.
func (d *Display) drawMovementInfo(h HexCoord, r PixelRect) {
	if d.route == nil || len(d.route.Steps) == 0 || d.route.Steps[len(d.route.Steps)-1] != h {
		return
	}
	s := d.movementInfo()
	if s == "" {
		return
	}
	size := d.cfg.Images.MovementFontSize
	sz := d.text.measure(s, size)
	x := r.X + r.W/2 - sz.X/2
	y := r.Y + r.H/2 - sz.Y/2
	d.text.drawOutlined(d.surface, s, size, movementText, movementOutline, x, y)
}
