package hexview

import (
	"image"
	"image/color"
	"slices"
	"time"
)

// MapSource exposes read-only terrain data. Terrain returns a terrain code
// that is looked up in the configured TerrainDefs; unknown codes draw nothing.
type MapSource interface {
	Size() (w, h int)
	Terrain(h HexCoord) string
}

// UnitView is the read-only snapshot of a unit needed to draw it.
type UnitView struct {
	Side  int    // owning team index
	Image string // sprite id

	HP, MaxHP  int
	XP, MaxXP  int
	Level      int
	CanAdvance bool // XP is close enough to the next level to highlight the bar

	MovesLeft  int
	TotalMoves int
	CanMove    bool // has moves or attacks left
	EndedTurn  bool

	FacingLeft bool
	Poisoned   bool
	Leader     bool
	Flying     bool // flying units are never submerged
	Chaotic    bool // advancing flash uses the chaotic colour
	Invisible  bool // hidden from the viewing team by terrain, lighting or neighbours

	Halo     string   // halo effect id, empty for none
	Overlays []string // icon ids drawn on top of the sprite
}

// UnitSource looks up the unit on a hex.
type UnitSource interface {
	UnitAt(h HexCoord) (UnitView, bool)
}

// FlagFrame is one frame of a side's village flag animation.
type FlagFrame struct {
	Image    string
	Duration time.Duration
}

// TeamSource provides per-team visibility and ownership predicates. Team
// indices run from 0 to Count()-1.
type TeamSource interface {
	Count() int
	Shrouded(team int, h HexCoord) bool
	Fogged(team int, h HexCoord) bool
	IsEnemy(team, other int) bool
	// VillageOwner returns the owning team of the village on h, or -1.
	VillageOwner(h HexCoord) int
	SideColor(team int) color.RGBA
	// ColorName is the team colour used in ellipse image ids.
	ColorName(team int) string
	FlagFrames(team int) []FlagFrame
}

// TimeOfDay describes the lighting of one day phase.
type TimeOfDay struct {
	ID               string
	Red, Green, Blue int    // colour adjustment in [-255, 255]
	Mask             string // image id of the full-hex lighting mask, empty for none
	LawfulBonus      int
}

// TimeOfDaySource returns the global phase and the per-hex phase, which can
// differ where local lighting applies.
type TimeOfDaySource interface {
	Current() TimeOfDay
	At(h HexCoord) TimeOfDay
}

// Route is the currently displayed movement path. Steps includes the start
// hex. Costs, when present, holds the movement cost spent entering each step
// and selects the footstep variant.
type Route struct {
	Steps       []HexCoord
	Costs       []int
	MovesLeft   int
	ShowDefense bool
	Defense     int // percent, shown on the final step
}

// ImageSource resolves image ids to pixels.
type ImageSource interface {
	Image(id string) (image.Image, bool)
}

// ReportElement is one piece of a report: text, an image, or both.
type ReportElement struct {
	Text    string
	Image   string
	Tooltip string
}

// Report is the content of one sidebar slot.
type Report []ReportElement

// Equal reports whether two reports render identically.
func (r Report) Equal(o Report) bool {
	return slices.Equal(r, o)
}

// ReportSource computes the current content of a named report.
type ReportSource interface {
	Report(name string) Report
}

// HaloManager owns halo effects. Handles are positive; zero means none.
type HaloManager interface {
	Add(x, y int, id string) int
	Remove(handle int)
}

// EventPump processes pending input while long operations run.
type EventPump interface {
	Pump()
}

// Presenter flips updated regions of the back buffer to the screen.
type Presenter interface {
	Flip(updated []PixelRect)
}

// Clock is the time source of the frame scheduler.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }
