package hexview

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// --- Collaborator fakes ---------------------------------------------------

type fakeMap struct {
	w, h    int
	def     string
	terrain map[HexCoord]string
}

func (m *fakeMap) Size() (int, int) { return m.w, m.h }

func (m *fakeMap) Terrain(h HexCoord) string {
	if t, ok := m.terrain[h]; ok {
		return t
	}
	return m.def
}

type fakeUnits struct {
	units    map[HexCoord]UnitView
	onLookup func(HexCoord)
}

func (u *fakeUnits) UnitAt(h HexCoord) (UnitView, bool) {
	if u.onLookup != nil {
		u.onLookup(h)
	}
	v, ok := u.units[h]
	return v, ok
}

type fakeTeams struct {
	count     int
	allShroud bool
	shroud    map[HexCoord]bool
	fog       map[HexCoord]bool
	villages  map[HexCoord]int
	allies    map[int]bool
	flags     [][]FlagFrame
}

func (t *fakeTeams) Count() int { return t.count }

func (t *fakeTeams) Shrouded(_ int, h HexCoord) bool { return t.allShroud || t.shroud[h] }
func (t *fakeTeams) Fogged(_ int, h HexCoord) bool   { return t.fog[h] }
func (t *fakeTeams) IsEnemy(team, other int) bool    { return team != other && !t.allies[other] }

func (t *fakeTeams) VillageOwner(h HexCoord) int {
	if o, ok := t.villages[h]; ok {
		return o
	}
	return -1
}

func (t *fakeTeams) SideColor(int) color.RGBA { return color.RGBA{R: 255, A: 255} }
func (t *fakeTeams) ColorName(int) string     { return "red" }

func (t *fakeTeams) FlagFrames(team int) []FlagFrame {
	if team < len(t.flags) {
		return t.flags[team]
	}
	return nil
}

type fakeToD struct {
	current TimeOfDay
	local   map[HexCoord]TimeOfDay
}

func (f *fakeToD) Current() TimeOfDay { return f.current }

func (f *fakeToD) At(h HexCoord) TimeOfDay {
	if t, ok := f.local[h]; ok {
		return t
	}
	return f.current
}

type fakeImages struct {
	images map[string]image.Image
}

func (f *fakeImages) Image(id string) (image.Image, bool) {
	img, ok := f.images[id]
	return img, ok
}

func (f *fakeImages) add(id string, img image.Image) { f.images[id] = img }

type fakeReports struct {
	reports map[string]Report
	calls   map[string]int
}

func (f *fakeReports) Report(name string) Report {
	f.calls[name]++
	return f.reports[name]
}

type fakeHalos struct {
	next int
	live map[int]string
}

func (f *fakeHalos) Add(_, _ int, id string) int {
	f.next++
	f.live[f.next] = id
	return f.next
}

func (f *fakeHalos) Remove(handle int) { delete(f.live, handle) }

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

type recordingPresenter struct {
	flips [][]PixelRect
}

func (p *recordingPresenter) Flip(updated []PixelRect) {
	p.flips = append(p.flips, append([]PixelRect(nil), updated...))
}

type countingPump struct{ pumps int }

func (p *countingPump) Pump() { p.pumps++ }

// --- Fixture --------------------------------------------------------------

var (
	colVoid  = color.RGBA{R: 255, B: 255, A: 255}
	colGrass = color.RGBA{G: 128, A: 255}
	colUnit  = color.RGBA{R: 10, G: 20, B: 30, A: 255}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

type fixture struct {
	d         *Display
	surf      *RGBASurface
	m         *fakeMap
	units     *fakeUnits
	teams     *fakeTeams
	tod       *fakeToD
	images    *fakeImages
	reports   *fakeReports
	halos     *fakeHalos
	clock     *fakeClock
	presenter *recordingPresenter
	pump      *countingPump
	hook      *test.Hook
}

// newFixture builds a Display over a 10x10 map drawn at the default zoom
// into a 270x360 map area. The surface is wider so the sidebar and minimap
// sit beside the map. setup may adjust the fakes and options before the
// Display is created.
func newFixture(t *testing.T, setup func(f *fixture, o *Options)) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	f := &fixture{
		surf:      NewRGBASurface(400, 360),
		m:         &fakeMap{w: 10, h: 10},
		units:     &fakeUnits{units: make(map[HexCoord]UnitView)},
		teams:     &fakeTeams{count: 2, shroud: make(map[HexCoord]bool), fog: make(map[HexCoord]bool), villages: make(map[HexCoord]int)},
		tod:       &fakeToD{current: TimeOfDay{ID: "day"}},
		images:    &fakeImages{images: make(map[string]image.Image)},
		reports:   &fakeReports{reports: make(map[string]Report), calls: make(map[string]int)},
		halos:     &fakeHalos{live: make(map[int]string)},
		clock:     &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		presenter: &recordingPresenter{},
		pump:      &countingPump{},
		hook:      hook,
	}

	cfg := DefaultConfig()
	cfg.Theme.MapArea = PixelRect{X: 0, Y: 0, W: 270, H: 360}

	opts := Options{
		Config:    cfg,
		Logger:    logger,
		Map:       f.m,
		Units:     f.units,
		Teams:     f.teams,
		TimeOfDay: f.tod,
		Images:    f.images,
		Reports:   f.reports,
		Halos:     f.halos,
		Events:    f.pump,
		Presenter: f.presenter,
		Clock:     f.clock,
		Surface:   f.surf,
	}
	if setup != nil {
		setup(f, &opts)
	}

	d, err := NewDisplay(opts)
	if err != nil {
		t.Fatalf("NewDisplay: %v", err)
	}
	f.d = d
	return f
}

// pixel returns the surface colour at (x, y).
func (f *fixture) pixel(x, y int) color.RGBA {
	return f.surf.Image().RGBAAt(x, y)
}

// warnings counts logged entries at warn level that carry the image field id.
func (f *fixture) warnings(id string) int {
	n := 0
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["image"] == id {
			n++
		}
	}
	return n
}
