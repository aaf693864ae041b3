package hexview

import (
	"image/color"
	"time"
)

var chromeBackground = color.RGBA{A: 255}

// advanceAnimations steps the arena by dt. A flag frame change redraws
// every visible village; terrain frame changes redraw their own hex.
func (d *Display) advanceAnimations(dt time.Duration) {
	d.anims.advance(dt, func(h HexCoord) { d.Invalidate(h) })
	if !d.anims.takeFlagsAdvanced() {
		return
	}
	tl, br := d.vp.VisibleBounds()
	for x := tl.X; x <= br.X; x++ {
		for y := tl.Y; y <= br.Y; y++ {
			h := HexCoord{X: x, Y: y}
			if def := d.terrain.Def(h); def != nil && def.Village {
				d.Invalidate(h)
			}
		}
	}
}

// drawChrome paints the static panels and labels of the theme.
func (d *Display) drawChrome() {
	screen := d.surface.Bounds()
	if !d.cfg.Theme.Screen.Empty() {
		screen = d.cfg.Theme.Screen
	}
	d.surface.SetClip(PixelRect{})
	d.surface.FillRect(screen, chromeBackground)
	for _, p := range d.cfg.Theme.Panels {
		img, ok := d.images.raw(p.Image)
		if !ok {
			continue
		}
		prev := d.surface.Clip()
		d.surface.SetClip(p.Rect)
		// Panels tile their image across the rectangle.
		b := img.Bounds()
		for y := p.Rect.Y; y < p.Rect.Y+p.Rect.H; y += max(b.Dy(), 1) {
			for x := p.Rect.X; x < p.Rect.X+p.Rect.W; x += max(b.Dx(), 1) {
				d.surface.Blit(img, x, y, Opaque)
			}
		}
		d.surface.SetClip(prev)
	}
	for _, l := range d.cfg.Theme.Labels {
		x := l.Rect.X
		if l.Icon != "" {
			if img, ok := d.images.raw(l.Icon); ok {
				d.surface.Blit(img, x, l.Rect.Y, Opaque)
				x += img.Bounds().Dx()
			}
		}
		if l.Text != "" {
			size := l.FontSize
			if size <= 0 {
				size = defaultReportFontSize
			}
			d.text.draw(d.surface, l.Text, size, colorOr(l.Color, defaultReportColor), x, l.Rect.Y)
		}
	}
	d.markUpdated(screen)
}

// DrawFrame runs one pass of the frame scheduler: animations, chrome (once),
// the invalidated tiles, the minimap, the sidebar, then pacing and
// presentation. The dirty work list is fixed before any tile is drawn.
//
// The frame is presented when it changed or force is set, provided the
// scheduler is on time, has skipped MaxSkips frames in a row, or force is
// set. A late frame that changed is counted as a skip instead and its
// regions are presented with the next frame. Every pass except a skipped
// one sleeps at least MinSleep.
func (d *Display) DrawFrame(force bool) FrameStats {
	var st FrameStats
	now := d.clock.Now()
	if !d.lastTick.IsZero() {
		d.advanceAnimations(now.Sub(d.lastTick))
	}
	d.lastTick = now

	changed := false
	if !d.chromeDrawn {
		d.drawChrome()
		d.chromeDrawn = true
		d.reports.reset()
		d.invalidateUnit = true
		d.invalidateStat = true
		d.redrawMinimap = true
		d.InvalidateAll()
		st.ChromeDrawn = true
		changed = true
	}

	wasAll := d.inv.IsAllDirty()
	tl, br := d.vp.VisibleBounds()
	work := d.inv.Consume(tl, br)
	if len(work) > 0 {
		d.surface.SetClip(d.vp.Area())
		for _, h := range work {
			st.TilesVisited++
			if d.drawTile(h) {
				st.TilesDrawn++
			}
		}
		d.surface.SetClip(PixelRect{})
		changed = true
	}
	if wasAll {
		d.redrawMinimap = true
	}

	if d.redrawMinimap {
		d.redrawMinimap = false
		st.MinimapDrawn = d.drawMinimap()
		changed = changed || st.MinimapDrawn
	}

	st.ReportsDrawn = d.drawSidebar()
	changed = changed || st.ReportsDrawn > 0

	wait := time.Duration(0)
	if !d.lastDraw.IsZero() {
		wait = d.lastDraw.Add(d.cfg.Render.FrameInterval).Sub(now)
	}
	if !changed && !force {
		// Idle passes still pace the loop.
		d.clock.Sleep(max(d.cfg.Render.MinSleep, wait))
		d.lastDraw = d.clock.Now()
		d.debugFrame(st)
		return st
	}

	if wait >= 0 || d.skips >= d.cfg.Render.MaxSkips || force {
		d.clock.Sleep(max(d.cfg.Render.MinSleep, wait))
		d.present()
		d.skips = 0
		d.lastDraw = d.clock.Now()
		st.Presented = true
	} else {
		d.skips++
		st.Skipped = true
	}
	d.debugFrame(st)
	return st
}

// present flips the updated regions and clears the list.
func (d *Display) present() {
	if d.presenter != nil {
		d.presenter.Flip(d.updated)
	}
	d.updated = d.updated[:0]
	d.fps.frame(d.clock.Now())
}

// RunSequence drives seq to completion: each step pumps events, applies the
// step, draws a forced frame and sleeps out the rest of the step interval.
// A final full redraw follows the last step.
func (d *Display) RunSequence(seq FrameSequence) {
	for {
		if d.events != nil {
			d.events.Pump()
		}
		start := d.clock.Now()
		if !seq.Next() {
			break
		}
		d.DrawFrame(true)
		if rem := seq.Interval() - d.clock.Now().Sub(start); rem > 0 {
			d.clock.Sleep(rem)
		}
	}
	d.InvalidateAll()
	d.DrawFrame(true)
}
