package hexview

import (
	"sort"
	"time"
)

// terrainImage is one stacked image of a tile: either a fixed id or a live
// animation in the arena.
type terrainImage struct {
	id   string
	anim AnimID
}

type tileTerrain struct {
	layers [2][]terrainImage // indexed by TerrainLayer
}

// TerrainBuilder turns terrain codes into per-hex image stacks. A tile's
// background is its own image followed by the transition art of every
// neighbour with higher precedence, so edges blend towards the dominant
// terrain. Stacks are built on first use and rebuilt on request.
type TerrainBuilder struct {
	defs   map[string]*TerrainDef
	m      MapSource
	ext    string
	exists func(id string) bool
	anims  *animationArena
	tiles  map[HexCoord]*tileTerrain
}

// newTerrainBuilder indexes defs by code. exists reports whether an image id
// resolves and is used to skip transition art that was never drawn.
func newTerrainBuilder(defs []TerrainDef, m MapSource, ext string, exists func(string) bool, anims *animationArena) *TerrainBuilder {
	b := &TerrainBuilder{
		defs:   make(map[string]*TerrainDef, len(defs)),
		m:      m,
		ext:    ext,
		exists: exists,
		anims:  anims,
		tiles:  make(map[HexCoord]*tileTerrain),
	}
	for i := range defs {
		b.defs[defs[i].Code] = &defs[i]
	}
	return b
}

// Def returns the definition of the terrain on h, or nil.
func (b *TerrainBuilder) Def(h HexCoord) *TerrainDef {
	if b.m == nil {
		return nil
	}
	w, hh := b.m.Size()
	if h.X < 0 || h.Y < 0 || h.X >= w || h.Y >= hh {
		return nil
	}
	return b.defs[b.m.Terrain(h)]
}

// Images returns the ids to draw for one layer of h, resolving animations to
// their current frame.
func (b *TerrainBuilder) Images(h HexCoord, layer TerrainLayer) []string {
	t := b.tile(h)
	if t == nil {
		return nil
	}
	src := t.layers[layer]
	out := make([]string, 0, len(src))
	for _, im := range src {
		id := im.id
		if im.anim != noAnim {
			id = b.anims.current(im.anim)
		}
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Rebuild drops the cached stacks of h and its neighbours.
func (b *TerrainBuilder) Rebuild(h HexCoord) {
	b.drop(h)
	for _, n := range h.Adjacent() {
		b.drop(n)
	}
}

// RebuildAll drops every cached stack.
func (b *TerrainBuilder) RebuildAll() {
	for h := range b.tiles {
		b.drop(h)
	}
}

func (b *TerrainBuilder) drop(h HexCoord) {
	t, ok := b.tiles[h]
	if !ok {
		return
	}
	for _, l := range t.layers {
		for _, im := range l {
			if im.anim != noAnim {
				b.anims.remove(im.anim)
			}
		}
	}
	delete(b.tiles, h)
}

// Prepare builds the stacks of every hex on the map so that animated terrain
// is registered before the first frame.
func (b *TerrainBuilder) Prepare() {
	if b.m == nil {
		return
	}
	w, h := b.m.Size()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			b.tile(HexCoord{X: x, Y: y})
		}
	}
}

func (b *TerrainBuilder) tile(h HexCoord) *tileTerrain {
	if t, ok := b.tiles[h]; ok {
		return t
	}
	def := b.Def(h)
	if def == nil {
		return nil
	}
	t := &tileTerrain{}

	bg := &t.layers[TerrainBackground]
	switch {
	case len(def.Frames) > 0:
		durs := make([]time.Duration, len(def.Frames))
		for i := range durs {
			durs[i] = def.FrameDuration
		}
		id := b.anims.add(animEntry{
			anim: NewAnimation(def.Frames, durs),
			kind: animTerrain,
			hex:  h,
		})
		*bg = append(*bg, terrainImage{anim: id})
	case def.Image != "":
		*bg = append(*bg, terrainImage{id: def.Image, anim: noAnim})
	}

	type edge struct {
		dir Direction
		def *TerrainDef
	}
	var edges []edge
	for d := North; d <= NorthWest; d++ {
		nd := b.Def(h.Neighbor(d))
		if nd == nil || nd.Transition == "" || nd.Precedence <= def.Precedence {
			continue
		}
		edges = append(edges, edge{dir: d, def: nd})
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].def.Precedence < edges[j].def.Precedence
	})
	for _, e := range edges {
		id := e.def.Transition + e.dir.suffix() + b.ext
		if b.exists(id) {
			*bg = append(*bg, terrainImage{id: id, anim: noAnim})
		}
	}

	if def.Foreground != "" {
		t.layers[TerrainForeground] = append(t.layers[TerrainForeground], terrainImage{id: def.Foreground, anim: noAnim})
	}
	b.tiles[h] = t
	return t
}
