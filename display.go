package hexview

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"
)

// Options wires a Display to its collaborators. Map, Teams and Surface are
// required; every other collaborator may be nil.
type Options struct {
	Config    Config
	Logger    *logrus.Logger
	Map       MapSource
	Units     UnitSource
	Teams     TeamSource
	TimeOfDay TimeOfDaySource
	Images    ImageSource
	Reports   ReportSource
	Halos     HaloManager
	Events    EventPump
	Presenter Presenter
	Clock     Clock
	Surface   Surface
}

// FrameStats describes the work done by one DrawFrame call.
type FrameStats struct {
	TilesVisited int // hexes taken from the invalidation work list
	TilesDrawn   int // hexes that passed the clip test and were composited
	ReportsDrawn int
	MinimapDrawn bool
	ChromeDrawn  bool
	Presented    bool
	Skipped      bool
}

type overlayEntry struct {
	image string
	halo  int
}

type haloRef struct {
	handle int
	id     string
	pos    image.Point
}

// todTransition is the cross-fade state between two time-of-day masks.
type todTransition struct {
	outgoing, incoming string
	outAlpha, inAlpha  float64
	step, steps        int
	next               TimeOfDay
}

// Display is the battlefield renderer. It owns the viewport, the dirty set,
// the animation arena and every cache; the game only requests changes
// through its methods. It is not safe for concurrent use.
type Display struct {
	cfg Config
	log *logrus.Entry

	m         MapSource
	units     UnitSource
	teams     TeamSource
	tod       TimeOfDaySource
	reportSrc ReportSource
	halos     HaloManager
	events    EventPump
	presenter Presenter
	clock     Clock
	surface   Surface

	vp      *Viewport
	inv     *InvalidationTracker
	images  *imageCache
	terrain *TerrainBuilder
	anims   animationArena
	flags   []AnimID
	text    *textRenderer
	reports *reportCache
	minimap *minimapRenderer

	viewingTeam int
	playingTeam int

	todCurrent TimeOfDay
	transition *todTransition
	firstTurn  bool

	route      *Route
	routeIndex map[HexCoord]int
	paths      map[HexCoord]struct{}
	overlays   map[HexCoord][]overlayEntry
	haloByHex  map[HexCoord]haloRef

	highlighted map[HexCoord]struct{}
	mouseover   HexCoord
	hasMouse    bool
	selected    HexCoord
	hasSelected bool
	hiddenUnit  HexCoord
	hasHidden   bool
	advancing   map[HexCoord]float64
	debugMarks  map[HexCoord]struct{}
	grid        bool

	updated        []PixelRect
	chromeDrawn    bool
	redrawMinimap  bool
	invalidateUnit bool
	invalidateStat bool

	lastTick time.Time
	lastDraw time.Time
	skips    int
	fps      fpsCounter

	screenshots int
}

// NewDisplay creates a Display. The map area, minimap and reports come from
// the theme in the configuration; an empty map area covers the surface.
func NewDisplay(opts Options) (*Display, error) {
	if opts.Map == nil {
		return nil, errors.New("hexview: map source is required")
	}
	if opts.Teams == nil {
		return nil, errors.New("hexview: team source is required")
	}
	if opts.Surface == nil {
		return nil, errors.New("hexview: surface is required")
	}
	cfg := opts.Config
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("hexview: %w", err)
	}

	text, err := newTextRenderer()
	if err != nil {
		return nil, fmt.Errorf("hexview: %w", err)
	}

	d := &Display{
		cfg:            cfg,
		log:            componentLogger(opts.Logger),
		m:              opts.Map,
		units:          opts.Units,
		teams:          opts.Teams,
		tod:            opts.TimeOfDay,
		reportSrc:      opts.Reports,
		halos:          opts.Halos,
		events:         opts.Events,
		presenter:      opts.Presenter,
		clock:          opts.Clock,
		surface:        opts.Surface,
		inv:            NewInvalidationTracker(),
		text:           text,
		reports:        newReportCache(),
		minimap:        &minimapRenderer{},
		firstTurn:      true,
		routeIndex:     make(map[HexCoord]int),
		overlays:       make(map[HexCoord][]overlayEntry),
		haloByHex:      make(map[HexCoord]haloRef),
		highlighted:    make(map[HexCoord]struct{}),
		advancing:      make(map[HexCoord]float64),
		debugMarks:     make(map[HexCoord]struct{}),
		grid:           cfg.Render.Grid,
		redrawMinimap:  true,
		invalidateUnit: true,
		invalidateStat: true,
	}
	if d.clock == nil {
		d.clock = systemClock{}
	}
	d.fps.sample = cfg.Render.FPSSampleFrames

	area := cfg.Theme.MapArea
	if area.Empty() {
		area = d.surface.Bounds()
	}
	mw, mh := d.m.Size()
	d.vp = NewViewport(area, mw, mh)
	d.vp.SetMaxZoom(cfg.Render.MaxZoom)
	d.vp.SetZoom(cfg.Render.DefaultZoom - d.vp.Zoom())

	d.images = newImageCache(opts.Images, cfg.Render.DefaultZoom, d.log)
	d.images.onFlush = d.surface.ForgetTextures
	d.terrain = newTerrainBuilder(cfg.Terrain, d.m, cfg.Images.Extension, d.images.exists, &d.anims)
	d.terrain.Prepare()
	d.buildFlags()

	if d.tod != nil {
		d.todCurrent = d.tod.Current()
		d.images.setColorAdjust(d.todCurrent.Red, d.todCurrent.Green, d.todCurrent.Blue)
	}
	return d, nil
}

// buildFlags registers one flag animation per team.
func (d *Display) buildFlags() {
	d.anims.removeKind(animFlag)
	d.flags = d.flags[:0]
	for team := 0; team < d.teams.Count(); team++ {
		frames := d.teams.FlagFrames(team)
		ids := make([]string, len(frames))
		durs := make([]time.Duration, len(frames))
		for i, f := range frames {
			ids[i] = f.Image
			durs[i] = f.Duration
		}
		d.flags = append(d.flags, d.anims.add(animEntry{
			anim: NewAnimation(ids, durs),
			kind: animFlag,
		}))
	}
}

// Viewport returns the viewport. Callers must change it through the Display
// so that invalidation follows.
func (d *Display) Viewport() *Viewport { return d.vp }

// Config returns the effective configuration.
func (d *Display) Config() Config { return d.cfg }

// Invalidate marks h for redraw in the next frame.
func (d *Display) Invalidate(h HexCoord) bool {
	return d.inv.MarkHex(h)
}

// InvalidateAll marks the whole map area for redraw.
func (d *Display) InvalidateAll() {
	d.inv.MarkAll()
}

// InvalidateUnit refreshes unit reports in the next frame.
func (d *Display) InvalidateUnit() { d.invalidateUnit = true }

// InvalidateGameStatus refreshes status reports in the next frame.
func (d *Display) InvalidateGameStatus() { d.invalidateStat = true }

// RecalculateMinimap drops the cached minimap image and redraws it.
func (d *Display) RecalculateMinimap() {
	d.minimap.invalidate()
	d.redrawMinimap = true
}

// RedrawMinimap redraws the minimap from its cached image.
func (d *Display) RedrawMinimap() { d.redrawMinimap = true }

// RedrawEverything redraws the chrome, every report and the whole map.
func (d *Display) RedrawEverything() {
	d.chromeDrawn = false
	d.reports.reset()
	d.invalidateUnit = true
	d.invalidateStat = true
	d.RecalculateMinimap()
	d.InvalidateAll()
}

// RebuildTerrain re-reads the terrain of h after a map change.
func (d *Display) RebuildTerrain(h HexCoord) {
	d.terrain.Rebuild(h)
	d.Invalidate(h)
	for _, n := range h.Adjacent() {
		d.Invalidate(n)
	}
	d.RecalculateMinimap()
}

// RebuildAllTerrain re-reads the whole map.
func (d *Display) RebuildAllTerrain() {
	d.terrain.RebuildAll()
	mw, mh := d.m.Size()
	d.vp.SetMapSize(mw, mh)
	d.terrain.Prepare()
	d.RecalculateMinimap()
	d.InvalidateAll()
}

// viewportChanged is the common effect of any scroll or zoom.
func (d *Display) viewportChanged() {
	d.InvalidateAll()
	d.redrawMinimap = true
}

// Scroll moves the view by (dx, dy) pixels.
func (d *Display) Scroll(dx, dy int) bool {
	if !d.vp.ScrollBy(dx, dy) {
		return false
	}
	d.viewportChanged()
	return true
}

// SetZoom changes the zoom by delta. Scaled images are rebuilt at the new
// size.
func (d *Display) SetZoom(delta int) bool {
	if !d.vp.SetZoom(delta) {
		return false
	}
	d.images.flush()
	d.viewportChanged()
	return true
}

// DefaultZoom returns to the configured default zoom.
func (d *Display) DefaultZoom() bool {
	return d.SetZoom(d.cfg.Render.DefaultZoom - d.vp.Zoom())
}

// Zoom returns the current zoom.
func (d *Display) Zoom() int { return d.vp.Zoom() }

func (d *Display) scrollMode(mode ScrollMode) ScrollMode {
	if d.cfg.Render.Turbo {
		return ScrollWarp
	}
	return mode
}

// BeginScrollToTile returns the step generator that centres h. The caller
// drives it, e.g. from a game loop; ScrollToTile runs it to completion.
func (d *Display) BeginScrollToTile(h HexCoord, mode ScrollMode) *ScrollSequence {
	seq := d.vp.ScrollTo(h, d.scrollMode(mode), d.cfg.Render.ScrollSpeed)
	seq.interval = d.cfg.Render.ScrollStepInterval
	seq.onMove = d.viewportChanged
	return seq
}

// ScrollToTile centres h, one drawn frame per step.
func (d *Display) ScrollToTile(h HexCoord, mode ScrollMode) {
	seq := d.BeginScrollToTile(h, mode)
	if seq.Steps() == 0 {
		return
	}
	d.RunSequence(seq)
}

// ScrollToTiles centres the midpoint of a and b when both fit in the map
// area, otherwise it centres a.
func (d *Display) ScrollToTiles(a, b HexCoord, mode ScrollMode) {
	pa, pb := d.vp.HexCenter(a), d.vp.HexCenter(b)
	area := d.vp.Area()
	target := pa
	if absInt(pa.X-pb.X)+d.vp.Zoom() <= area.W && absInt(pa.Y-pb.Y)+d.vp.Zoom() <= area.H {
		target = image.Point{X: (pa.X + pb.X) / 2, Y: (pa.Y + pb.Y) / 2}
	}
	seq := d.vp.ScrollToPoint(target, d.scrollMode(mode), d.cfg.Render.ScrollSpeed)
	seq.interval = d.cfg.Render.ScrollStepInterval
	seq.onMove = d.viewportChanged
	if seq.Steps() == 0 {
		return
	}
	d.RunSequence(seq)
}

// SetRoute shows r as the movement path; nil clears it.
func (d *Display) SetRoute(r *Route) {
	d.invalidateRoute()
	clear(d.routeIndex)
	d.route = nil
	if r == nil {
		return
	}
	cp := *r
	d.route = &cp
	for i, h := range cp.Steps {
		if _, ok := d.routeIndex[h]; !ok {
			d.routeIndex[h] = i
		}
	}
	d.invalidateRoute()
}

// ClearRoute removes the movement path.
func (d *Display) ClearRoute() { d.SetRoute(nil) }

func (d *Display) invalidateRoute() {
	if d.route == nil {
		return
	}
	for _, h := range d.route.Steps {
		d.Invalidate(h)
	}
}

// SetPaths activates the reachable-hexes overlay: hexes outside it are
// greyed. nil clears the overlay.
func (d *Display) SetPaths(hexes []HexCoord) {
	if hexes == nil {
		if d.paths != nil {
			d.paths = nil
			d.InvalidateAll()
		}
		return
	}
	d.paths = make(map[HexCoord]struct{}, len(hexes))
	for _, h := range hexes {
		d.paths[h] = struct{}{}
	}
	d.InvalidateAll()
}

// AddOverlay registers an image drawn on h, with an optional halo effect.
func (d *Display) AddOverlay(h HexCoord, img, halo string) {
	e := overlayEntry{image: img}
	if halo != "" && d.halos != nil {
		c := d.screenCenter(h)
		e.halo = d.halos.Add(c.X, c.Y, halo)
	}
	d.overlays[h] = append(d.overlays[h], e)
	d.Invalidate(h)
}

// RemoveOverlay removes every overlay of h and their halos.
func (d *Display) RemoveOverlay(h HexCoord) {
	entries, ok := d.overlays[h]
	if !ok {
		return
	}
	for _, e := range entries {
		if e.halo != 0 && d.halos != nil {
			d.halos.Remove(e.halo)
		}
	}
	delete(d.overlays, h)
	d.Invalidate(h)
}

// Overlays returns the overlay image ids registered on h.
func (d *Display) Overlays(h HexCoord) []string {
	entries := d.overlays[h]
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.image
	}
	return out
}

// SetHighlighted makes h the only externally highlighted hex.
func (d *Display) SetHighlighted(h HexCoord) {
	d.ClearHighlighted()
	d.AddHighlightedLoc(h)
}

// ClearHighlighted removes every external highlight.
func (d *Display) ClearHighlighted() {
	for h := range d.highlighted {
		d.Invalidate(h)
	}
	clear(d.highlighted)
}

// AddHighlightedLoc adds h to the externally highlighted hexes.
func (d *Display) AddHighlightedLoc(h HexCoord) {
	d.highlighted[h] = struct{}{}
	d.Invalidate(h)
}

// RemoveHighlightedLoc removes h from the externally highlighted hexes.
func (d *Display) RemoveHighlightedLoc(h HexCoord) {
	if _, ok := d.highlighted[h]; !ok {
		return
	}
	delete(d.highlighted, h)
	d.Invalidate(h)
}

// ClearHighlightedLocs is ClearHighlighted.
func (d *Display) ClearHighlightedLocs() { d.ClearHighlighted() }

// SelectHex sets the selected hex.
func (d *Display) SelectHex(h HexCoord) {
	if d.hasSelected {
		d.Invalidate(d.selected)
	}
	d.selected, d.hasSelected = h, true
	d.Invalidate(h)
	d.InvalidateUnit()
}

// ClearSelection clears the selected hex.
func (d *Display) ClearSelection() {
	if d.hasSelected {
		d.Invalidate(d.selected)
	}
	d.hasSelected = false
	d.InvalidateUnit()
}

// HighlightHex sets the hex under the mouse.
func (d *Display) HighlightHex(h HexCoord) {
	if d.hasMouse && d.mouseover == h {
		return
	}
	if d.hasMouse {
		d.Invalidate(d.mouseover)
	}
	d.mouseover, d.hasMouse = h, true
	d.Invalidate(h)
	d.InvalidateGameStatus()
}

// HideUnit stops drawing the unit on h, e.g. while it is being animated
// elsewhere.
func (d *Display) HideUnit(h HexCoord) {
	if d.hasHidden {
		d.Invalidate(d.hiddenUnit)
	}
	d.hiddenUnit, d.hasHidden = h, true
	d.Invalidate(h)
}

// ShowUnits undoes HideUnit.
func (d *Display) ShowUnits() {
	if d.hasHidden {
		d.Invalidate(d.hiddenUnit)
	}
	d.hasHidden = false
}

// SetAdvancingUnit flashes the unit on h towards white; amount 1 is the
// normal sprite and 0 fully blended. A negative amount stops the flash.
func (d *Display) SetAdvancingUnit(h HexCoord, amount float64) {
	if amount < 0 {
		delete(d.advancing, h)
	} else {
		d.advancing[h] = min(amount, 1)
	}
	d.Invalidate(h)
}

// SetGrid toggles the hex grid overlay.
func (d *Display) SetGrid(on bool) {
	if d.grid == on {
		return
	}
	d.grid = on
	d.InvalidateAll()
}

// DebugHighlight marks h with the debug marker.
func (d *Display) DebugHighlight(h HexCoord) {
	d.debugMarks[h] = struct{}{}
	d.Invalidate(h)
}

// ClearDebugHighlights removes every debug marker.
func (d *Display) ClearDebugHighlights() {
	for h := range d.debugMarks {
		d.Invalidate(h)
	}
	clear(d.debugMarks)
}

// SetTeam changes the viewing team.
func (d *Display) SetTeam(team int) {
	if !d.debugAssert(team >= 0 && team < d.teams.Count(), "SetTeam: invalid team index %d", team) {
		return
	}
	d.viewingTeam = team
	d.RecalculateMinimap()
	d.InvalidateUnit()
	d.InvalidateAll()
}

// SetPlayingTeam changes the team whose turn it is.
func (d *Display) SetPlayingTeam(team int) {
	if !d.debugAssert(team >= 0 && team < d.teams.Count(), "SetPlayingTeam: invalid team index %d", team) {
		return
	}
	d.playingTeam = team
	d.InvalidateGameStatus()
	d.InvalidateAll()
}

// ViewingTeam returns the team whose view is rendered.
func (d *Display) ViewingTeam() int { return d.viewingTeam }

// PixelToHex returns the hex under the screen pixel (x, y).
func (d *Display) PixelToHex(x, y int) HexCoord {
	a := d.vp.Area()
	s := d.vp.Scroll()
	h, _, _ := PixelToHex(x-a.X+s.X, y-a.Y+s.Y, d.vp.Zoom())
	return h
}

// HexToPixel returns the screen rectangle of h.
func (d *Display) HexToPixel(h HexCoord) PixelRect {
	return d.vp.HexRect(h)
}

// HexClickedOn hit-tests a click. ok is false outside the map area.
func (d *Display) HexClickedOn(x, y int) (HexCoord, bool) {
	h, _, _, ok := d.vp.HexAt(x, y)
	return h, ok
}

// screenCenter returns the screen pixel at the centre of h.
func (d *Display) screenCenter(h HexCoord) image.Point {
	r := d.vp.HexRect(h)
	return image.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// markUpdated queues r for presentation.
func (d *Display) markUpdated(r PixelRect) {
	if !r.Empty() {
		d.updated = append(d.updated, r)
	}
}

func (d *Display) onBoard(h HexCoord) bool { return d.vp.OnBoard(h) }

func (d *Display) isShrouded(h HexCoord) bool {
	return d.onBoard(h) && d.teams.Shrouded(d.viewingTeam, h)
}

func (d *Display) isFogged(h HexCoord) bool {
	return d.onBoard(h) && d.teams.Fogged(d.viewingTeam, h)
}

func (d *Display) isEnemy(team int) bool {
	return d.teams.IsEnemy(d.viewingTeam, team)
}

func (d *Display) todAt(h HexCoord) TimeOfDay {
	if d.tod == nil {
		return d.todCurrent
	}
	return d.tod.At(h)
}
