package hexview

type edgeState uint8

const (
	edgeNone edgeState = iota
	edgeFog
	edgeVoid
)

// fogShroudImages returns the edge art drawn where h borders shroud or, for a
// clear hex, fog. For each state the neighbours are scanned clockwise from a
// side that does not match; each contiguous arc of matching sides becomes one
// image named by the prefix plus one direction suffix per side, e.g.
// "terrain/fog-n-ne.png". The arc is cut short at the longest name that
// exists. When even the first side has no art the scan skips one extra side,
// so sparse art sets can leave parts of an edge undrawn.
func (d *Display) fogShroudImages(h HexCoord) []string {
	adj := h.Adjacent()
	selfFogged := d.isFogged(h)

	var tiles [6]edgeState
	for i, n := range adj {
		switch {
		case d.isShrouded(n):
			tiles[i] = edgeVoid
		case !selfFogged && d.isFogged(n):
			tiles[i] = edgeFog
		}
	}

	ext := d.cfg.Images.Extension
	var res []string
	for _, state := range [...]edgeState{edgeFog, edgeVoid} {
		prefix := d.cfg.Images.FogEdge
		if state == edgeVoid {
			prefix = d.cfg.Images.VoidEdge
		}

		start := 0
		for start != 6 && tiles[start] == state {
			start++
		}
		if start == 6 {
			start = 0
		}

		for i, n := (start+1)%6, 0; i != start && n != 6; n++ {
			if tiles[i] != state {
				i = (i + 1) % 6
				continue
			}
			stream, name := prefix, ""
			for m := 0; tiles[i] == state && m != 6; i, m = (i+1)%6, m+1 {
				stream += Direction(i).suffix()
				if !d.images.exists(stream + ext) {
					if name == "" {
						i = (i + 1) % 6
					}
					break
				}
				name = stream
			}
			if name != "" {
				res = append(res, name+ext)
			}
		}
	}
	return res
}
