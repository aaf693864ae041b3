package hexview

// resolveImageType picks the single rendering variant of a tile. Brightened
// beats semi-brightened, which beats greyed, which beats unmasked; a tile
// matching none of them is scaled.
func (d *Display) resolveImageType(h HexCoord) ImageType {
	if d.hasMouse && h == d.mouseover && d.onBoard(h) {
		return ImageBrightened
	}
	if d.hasSelected && h == d.selected && d.visibleUnitAt(h) {
		return ImageBrightened
	}
	if _, ok := d.highlighted[h]; ok {
		return ImageSemiBrightened
	}
	if d.paths != nil {
		if _, ok := d.paths[h]; !ok {
			return ImageGreyed
		}
	}
	if d.transition != nil || d.todAt(h).Mask != d.todCurrent.Mask {
		return ImageUnmasked
	}
	return ImageScaled
}

// visibleUnitAt reports whether the viewing team can see a unit on h.
func (d *Display) visibleUnitAt(h HexCoord) bool {
	if d.units == nil {
		return false
	}
	u, ok := d.units.UnitAt(h)
	if !ok || d.isFogged(h) {
		return false
	}
	return !(u.Invisible && d.isEnemy(u.Side))
}

// blitHex draws the typ variant of id with its top-left at (x, y).
func (d *Display) blitHex(id string, typ ImageType, x, y int, opts BlitOptions) bool {
	img, ok := d.images.get(id, typ, d.vp.Zoom())
	if !ok {
		return false
	}
	d.surface.Blit(img, x, y, opts)
	return true
}

// drawTile composites every layer of h. It returns false when the tile lies
// outside the map area and nothing was drawn.
func (d *Display) drawTile(h HexCoord) bool {
	r := d.vp.HexRect(h)
	if !r.Intersects(d.vp.Area()) {
		return false
	}

	d.updateHalo(h)

	if !d.onBoard(h) || d.isShrouded(h) {
		d.blitHex(d.cfg.Images.Void, ImageUnmasked, r.X, r.Y, Opaque)
		d.markUpdated(r)
		return true
	}

	typ := d.resolveImageType(h)

	d.drawTerrain(h, r, TerrainBackground, typ)
	d.drawFlag(h, r, typ)
	for _, e := range d.overlays[h] {
		d.blitHex(e.image, typ, r.X, r.Y, Opaque)
	}
	d.drawFootstep(h, r)
	d.drawUnitOnTile(h, r, typ)
	d.drawTerrain(h, r, TerrainForeground, typ)
	d.drawMovementInfo(h, r)

	if d.isFogged(h) {
		d.blitHex(d.cfg.Images.Fog, ImageUnmasked, r.X, r.Y, Opaque)
	}
	for _, id := range d.fogShroudImages(h) {
		d.blitHex(id, ImageUnmasked, r.X, r.Y, Opaque)
	}

	d.drawTimeOfDayMask(h, r)

	if d.grid {
		d.blitHex(d.cfg.Images.Grid, ImageUnmasked, r.X, r.Y, Opaque)
	}
	if _, ok := d.debugMarks[h]; ok && d.cfg.Debug {
		d.blitHex(d.cfg.Images.DebugMarker, ImageUnmasked, r.X, r.Y, Opaque)
	}

	d.markUpdated(r)
	return true
}

func (d *Display) drawTerrain(h HexCoord, r PixelRect, layer TerrainLayer, typ ImageType) {
	for _, id := range d.terrain.Images(h, layer) {
		d.blitHex(id, typ, r.X, r.Y, Opaque)
	}
}

// drawFlag draws the owner's flag on a village. Enemy flags stay hidden
// under fog.
func (d *Display) drawFlag(h HexCoord, r PixelRect, typ ImageType) {
	def := d.terrain.Def(h)
	if def == nil || !def.Village {
		return
	}
	owner := d.teams.VillageOwner(h)
	if owner < 0 {
		return
	}
	if !d.debugAssert(owner < len(d.flags), "village %v owned by invalid team %d", h, owner) {
		return
	}
	if d.isFogged(h) && d.isEnemy(owner) {
		return
	}
	d.blitHex(d.anims.current(d.flags[owner]), typ, r.X, r.Y, Opaque)
}

// drawTimeOfDayMask applies the transition pair while a fade runs, otherwise
// the mask of the hex's own time of day.
func (d *Display) drawTimeOfDayMask(h HexCoord, r PixelRect) {
	if t := d.transition; t != nil {
		if t.outgoing != "" {
			d.blitHex(t.outgoing, ImageUnmasked, r.X, r.Y, BlitOptions{Alpha: t.outAlpha})
		}
		if t.incoming != "" {
			d.blitHex(t.incoming, ImageUnmasked, r.X, r.Y, BlitOptions{Alpha: t.inAlpha})
		}
		return
	}
	if mask := d.todAt(h).Mask; mask != "" {
		d.blitHex(mask, ImageUnmasked, r.X, r.Y, Opaque)
	}
}

// updateHalo keeps one halo per hex in step with the unit standing on it.
func (d *Display) updateHalo(h HexCoord) {
	if d.halos == nil {
		return
	}
	want := ""
	if d.units != nil && !d.isShrouded(h) {
		if u, ok := d.units.UnitAt(h); ok && !(d.hasHidden && d.hiddenUnit == h) {
			want = u.Halo
		}
	}
	pos := d.screenCenter(h)
	ref, has := d.haloByHex[h]
	if has && (ref.id != want || ref.pos != pos) {
		d.halos.Remove(ref.handle)
		delete(d.haloByHex, h)
		has = false
	}
	if !has && want != "" {
		d.haloByHex[h] = haloRef{handle: d.halos.Add(pos.X, pos.Y, want), id: want, pos: pos}
	}
}

// haloCount returns the number of live halos managed per hex.
func (d *Display) haloCount() int { return len(d.haloByHex) }
