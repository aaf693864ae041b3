package hexview

import (
	"image"
	"image/color"
	"strings"
)

const defaultReportFontSize = 12

var defaultReportColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// reportEntry remembers what a slot showed last and the pixels it covered.
type reportEntry struct {
	rect    PixelRect
	content Report
	backup  image.Image
	valid   bool
}

// reportCache holds one entry per report slot.
type reportCache struct {
	entries map[string]*reportEntry
}

func newReportCache() *reportCache {
	return &reportCache{entries: make(map[string]*reportEntry)}
}

// reset forgets the drawn state of every slot. Backups are dropped too, as
// they no longer match the redrawn background.
func (c *reportCache) reset() {
	clear(c.entries)
}

func (c *reportCache) entry(name string) *reportEntry {
	e, ok := c.entries[name]
	if !ok {
		e = &reportEntry{}
		c.entries[name] = e
	}
	return e
}

// drawSidebar refreshes the report slots whose group was invalidated, plus
// the clock, and returns the number of slots redrawn.
func (d *Display) drawSidebar() int {
	if d.reportSrc == nil {
		return 0
	}
	drawn := 0
	for _, slot := range d.cfg.Theme.Reports {
		switch slot.Group {
		case ReportGroupUnit:
			if !d.invalidateUnit {
				continue
			}
		case ReportGroupClock:
		default:
			if !d.invalidateStat {
				continue
			}
		}
		if d.drawReport(slot, d.reportSrc.Report(slot.Name)) {
			drawn++
		}
	}
	d.invalidateUnit = false
	d.invalidateStat = false
	return drawn
}

// drawReport draws content into slot unless both the geometry and the
// content match what was drawn last. It reports whether it drew.
func (d *Display) drawReport(slot ReportSlot, content Report) bool {
	e := d.reports.entry(slot.Name)
	rect := slot.Rect
	if e.valid && e.rect == rect && e.content.Equal(content) {
		return false
	}

	if e.backup != nil && e.rect == rect {
		d.surface.Replace(e.backup, rect.X, rect.Y)
	} else {
		e.backup = d.surface.CopyRegion(rect)
	}
	e.rect = rect
	e.content = append(Report(nil), content...)
	e.valid = true

	if len(content) > 0 {
		if slot.Prefix != "" {
			content = append(Report{{Text: slot.Prefix}}, content...)
		}
		if slot.Postfix != "" {
			content = append(content[:len(content):len(content)], ReportElement{Text: slot.Postfix})
		}
		d.layoutReport(slot, content)
	}
	d.markUpdated(rect)
	return true
}

// layoutReport places elements left to right. A text ending in a newline
// closes the line; the next line starts below the tallest element so far.
func (d *Display) layoutReport(slot ReportSlot, content Report) {
	rect := slot.Rect
	size := slot.FontSize
	if size <= 0 {
		size = defaultReportFontSize
	}
	col := colorOr(slot.Color, defaultReportColor)

	prev := d.surface.Clip()
	d.surface.SetClip(rect)
	defer d.surface.SetClip(prev)

	x, y, tallest := rect.X, rect.Y, 0
	images := 0
	for _, el := range content {
		if el.Text != "" {
			text := el.Text
			eol := strings.HasSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\n")
			r := PixelRect{X: x, Y: y}
			if text != "" {
				r = d.text.draw(d.surface, text, size, col, x, y)
			}
			tallest = max(tallest, r.H)
			if eol {
				x = rect.X
				y += tallest
				tallest = 0
			} else {
				x += r.W
			}
		}
		if el.Image != "" {
			img, ok := d.images.raw(el.Image)
			if !ok {
				continue
			}
			b := img.Bounds()
			room := rect.X + rect.W - x
			if room < b.Dx() && images > 0 {
				// Only the first image may be clipped; later ones are dropped.
				continue
			}
			d.surface.Blit(img, x, y, Opaque)
			images++
			x += b.Dx()
			tallest = max(tallest, b.Dy())
		}
	}
}
