package hexview

import (
	"image"
	"image/color"
)

var (
	energyRed    = color.RGBA{R: 200, A: 255}
	energyYellow = color.RGBA{R: 200, G: 200, A: 255}
	energyGreen  = color.RGBA{G: 200, A: 255}

	xpColor        = color.RGBA{R: 2, G: 153, B: 255, A: 255}
	xpColorAdvance = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	advanceLawful  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	advanceChaotic = color.RGBA{R: 16, G: 16, B: 16, A: 255}
	poisonColor    = color.RGBA{G: 255, A: 255}
)

// energyColor bands the health bar by the fraction of hitpoints left.
func energyColor(fraction float64) color.RGBA {
	switch {
	case fraction < 0.33:
		return energyRed
	case fraction < 0.66:
		return energyYellow
	default:
		return energyGreen
	}
}

// moveState classifies u for its orb. Units of other sides are allies or
// enemies; own units are unmoved, part-moved or moved, and only during their
// own turn.
func (d *Display) moveState(u UnitView) MoveState {
	if u.Side != d.viewingTeam {
		if d.isEnemy(u.Side) {
			return MoveStateEnemy
		}
		return MoveStateAlly
	}
	if d.playingTeam == d.viewingTeam && !u.EndedTurn {
		if u.MovesLeft == u.TotalMoves {
			return MoveStateUnmoved
		}
		if u.CanMove {
			return MoveStatePartMoved
		}
	}
	return MoveStateMoved
}

func (d *Display) orbImage(s MoveState) string {
	im := d.cfg.Images
	switch s {
	case MoveStateAlly:
		return im.OrbAlly
	case MoveStateEnemy:
		return im.OrbEnemy
	case MoveStateUnmoved:
		return im.OrbUnmoved
	case MoveStatePartMoved:
		return im.OrbPartMoved
	default:
		return im.OrbMoved
	}
}

// ellipseID returns the ellipse image prefix for u, completed by the caller
// with -top or -bottom.
func (d *Display) ellipseID(u UnitView, selected bool) string {
	id := d.cfg.Images.Ellipse
	if selected {
		id += "-selected"
	}
	return id + "-" + d.teams.ColorName(u.Side)
}

// unitImage returns the sprite of u with the advancing or poison tint.
func (d *Display) unitImage(h HexCoord, u UnitView, typ ImageType) (image.Image, bool) {
	zoom := d.vp.Zoom()
	if amount, ok := d.advancing[h]; ok {
		col := advanceLawful
		if u.Chaotic {
			col = advanceChaotic
		}
		return d.images.tinted(u.Image, typ, zoom, col, 1-amount)
	}
	if u.Poisoned {
		return d.images.tinted(u.Image, typ, zoom, poisonColor, 0.25)
	}
	return d.images.get(u.Image, typ, zoom)
}

// drawUnitOnTile draws the unit standing on h: ellipse, sprite, bars and
// icons. Units under fog and invisible enemies are not drawn.
func (d *Display) drawUnitOnTile(h HexCoord, r PixelRect, typ ImageType) {
	if d.units == nil {
		return
	}
	u, ok := d.units.UnitAt(h)
	if !ok || (d.hasHidden && d.hiddenUnit == h) {
		return
	}
	if d.isFogged(h) || (u.Invisible && d.isEnemy(u.Side)) {
		return
	}
	if !d.debugAssert(u.Side >= 0 && u.Side < d.teams.Count(), "unit on %v has invalid side %d", h, u.Side) {
		return
	}

	zoom := d.vp.Zoom()
	base := d.cfg.Render.DefaultZoom
	ext := d.cfg.Images.Extension
	selected := d.hasSelected && d.selected == h

	highlight := 1.0
	if selected {
		highlight = 1.5
	}
	if u.Invisible {
		highlight = min(highlight, 0.5)
	}
	alpha := min(highlight, 1)

	utyp := ImageScaled
	if typ == ImageUnmasked {
		utyp = ImageUnmasked
	}
	if highlight > 1 {
		utyp = ImageBrightened
	}

	submerge, heightAdj := 0.0, 0
	if def := d.terrain.Def(h); def != nil && !u.Flying {
		submerge = def.Submerge
		heightAdj = def.HeightAdjust * zoom / base
	}
	x, y := r.X, r.Y-heightAdj

	ellipse := d.ellipseID(u, selected)
	ey := y
	if submerge > 0 {
		// The ellipse rides up with the waterline.
		if img, ok := d.images.get(ellipse+"-top"+ext, ImageUnmasked, zoom); ok {
			ey -= int(float64(img.Bounds().Dy())*submerge) / 2
		}
	}
	d.blitHex(ellipse+"-top"+ext, ImageUnmasked, x, ey, BlitOptions{Alpha: alpha})

	if img, ok := d.unitImage(h, u, utyp); ok {
		d.blitSubmerged(img, x, y, submerge, BlitOptions{Alpha: alpha, FlipH: !u.FacingLeft})
	}

	d.blitHex(ellipse+"-bottom"+ext, ImageUnmasked, x, ey, BlitOptions{Alpha: alpha})

	d.blitHex(d.orbImage(d.moveState(u)), ImageUnmasked, x, y, Opaque)

	fraction := 0.0
	if u.MaxHP > 0 {
		fraction = float64(u.HP) / float64(u.MaxHP)
	}
	barAlpha := 0.8
	if selected || (d.hasMouse && d.mouseover == h) {
		barAlpha = 1
	}
	shift := -5 * zoom / base
	d.drawBar(x+shift, y, u.MaxHP*2/3, fraction, energyColor(fraction), barAlpha)

	if u.XP > 0 && u.MaxXP > 0 {
		col := xpColor
		if u.CanAdvance {
			col = xpColorAdvance
		}
		height := u.MaxXP / (max(u.Level, 1) * 2)
		d.drawBar(x, y, height, float64(u.XP)/float64(u.MaxXP), col, barAlpha)
	}

	if u.Leader {
		d.blitHex(d.cfg.Images.LeaderCrown, ImageUnmasked, x, y, Opaque)
	}
	for _, ov := range u.Overlays {
		d.blitHex(ov, ImageUnmasked, x, y, Opaque)
	}
}

// blitSubmerged draws img with the part below the waterline at a fifth of
// the opacity. submerge is the fraction of the sprite under water.
func (d *Display) blitSubmerged(img image.Image, x, y int, submerge float64, opts BlitOptions) {
	b := img.Bounds()
	if submerge <= 0 {
		d.surface.Blit(img, x, y, opts)
		return
	}
	split := min(b.Dy(), max(0, int(float64(b.Dy())*(1-submerge))))
	if split > 0 {
		upper := opts
		upper.Src = image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+split)
		d.surface.Blit(img, x, y, upper)
	}
	if split < b.Dy() {
		lower := opts
		lower.Src = image.Rect(b.Min.X, b.Min.Y+split, b.Max.X, b.Max.Y)
		lower.Alpha = opts.Alpha * 0.2
		d.surface.Blit(img, x, y+split, lower)
	}
}

// drawBar draws the bar template at (x, y) shortened to height (in unzoomed
// pixels) and fills the bottom filled fraction with col.
func (d *Display) drawBar(x, y, height int, filled float64, col color.RGBA, alpha float64) {
	id := d.cfg.Images.EnergyBar
	zoom := d.vp.Zoom()
	img, ok := d.images.get(id, ImageUnmasked, zoom)
	if !ok {
		return
	}
	bar, ok := d.images.barRect(id, zoom)
	if !ok || bar.Empty() {
		return
	}
	height = min(height*zoom/d.cfg.Render.DefaultZoom, bar.Dy())
	filled = min(max(filled, 0), 1)
	skip := bar.Dy() - height

	b := img.Bounds()
	top := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+bar.Min.Y)
	bot := image.Rect(b.Min.X, b.Min.Y+bar.Min.Y+skip, b.Max.X, b.Max.Y)
	if !top.Empty() {
		d.surface.Blit(img, x, y, BlitOptions{Alpha: alpha, Src: top})
	}
	if !bot.Empty() {
		d.surface.Blit(img, x, y+top.Dy(), BlitOptions{Alpha: alpha, Src: bot})
	}

	unfilled := int(float64(height) * (1 - filled))
	if unfilled < height && alpha >= 0.3 {
		fill := PixelRect{X: x + bar.Min.X, Y: y + bar.Min.Y + unfilled, W: bar.Dx(), H: height - unfilled}
		d.surface.FillRect(fill, color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(alpha * 255)})
	}
}
