package hexview

import "image"

// dragDeadZone is the distance in pixels a held pointer must travel before
// the press turns into a drag.
const dragDeadZone = 4

// pointerState turns pointer samples into display requests: hovering
// highlights the hex under the pointer, a click selects it, a drag scrolls
// the map and a press on the minimap centres the view there.
type pointerState struct {
	down     bool
	start    image.Point
	last     image.Point
	dragging bool
	minimap  bool
}

// process feeds one sample through the state machine.
func (p *pointerState) process(d *Display, ev pointerEvent) {
	pos := image.Point{X: ev.x, Y: ev.y}
	switch {
	case ev.pressed && !p.down:
		p.down = true
		p.start, p.last = pos, pos
		p.dragging = false
		p.minimap = d.cfg.Theme.Minimap.Contains(ev.x, ev.y)
		if p.minimap {
			d.scrollToMinimap(ev.x, ev.y)
		}

	case !ev.pressed && p.down:
		if !p.dragging && !p.minimap {
			if h, ok := d.HexClickedOn(ev.x, ev.y); ok {
				d.SelectHex(h)
			}
		}
		p.down = false
		p.dragging = false
		p.minimap = false
		p.last = pos

	case ev.pressed && p.down:
		if pos == p.last {
			return
		}
		if p.minimap {
			d.scrollToMinimap(ev.x, ev.y)
			p.last = pos
			return
		}
		if !p.dragging {
			dx, dy := pos.X-p.start.X, pos.Y-p.start.Y
			if dx*dx+dy*dy > dragDeadZone*dragDeadZone {
				p.dragging = true
			}
		}
		if p.dragging {
			d.Scroll(p.last.X-pos.X, p.last.Y-pos.Y)
		}
		p.last = pos

	default:
		if pos == p.last {
			return
		}
		p.last = pos
		if h, ok := d.HexClickedOn(ev.x, ev.y); ok {
			d.HighlightHex(h)
		}
	}
}

// scrollToMinimap centres the view on the hex under a minimap pixel.
func (d *Display) scrollToMinimap(x, y int) {
	h, ok := d.MinimapLocationOn(x, y)
	if !ok {
		return
	}
	if d.vp.CenterOn(h) {
		d.viewportChanged()
	}
}
