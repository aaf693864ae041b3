package hexview

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FrameClock is a Clock for displays hosted by ebiten. ebiten paces frames
// itself, so Sleep returns at once.
type FrameClock struct{}

// Now implements Clock.
func (FrameClock) Now() time.Time { return time.Now() }

// Sleep implements Clock.
func (FrameClock) Sleep(time.Duration) {}

// Game hosts a Display in an ebiten window. The display draws into an
// offscreen EbitenSurface that keeps its pixels between frames; Draw copies
// it to the screen. Sequences started with Start are stepped once per
// interval instead of blocking.
type Game struct {
	d       *Display
	surface *EbitenSurface

	queue   InputQueue
	pointer pointerState
	runner  *ScriptRunner

	active   FrameSequence
	lastStep time.Time
	update   func() error

	// ShowFPS prints the presented frame rate in the top-left corner.
	ShowFPS bool
	// KeyScroll is the distance in pixels one arrow key press scrolls.
	KeyScroll int
}

// NewGame wraps d. surface must be the Surface d was created with.
func NewGame(d *Display, surface *EbitenSurface) *Game {
	return &Game{d: d, surface: surface, KeyScroll: 32}
}

// Display returns the hosted display.
func (g *Game) Display() *Display { return g.d }

// SetScriptRunner attaches a script played one step per frame.
func (g *Game) SetScriptRunner(r *ScriptRunner) { g.runner = r }

// SetUpdateFunc sets a callback run at the start of every Update, before
// input is read. A returned error stops the game.
func (g *Game) SetUpdateFunc(fn func() error) { g.update = fn }

// Start runs seq without blocking. A running sequence is finished first.
func (g *Game) Start(seq FrameSequence) {
	if g.active != nil {
		for g.active.Next() {
		}
		g.finishSequence()
	}
	g.active = seq
	g.lastStep = time.Time{}
}

// SetTimeOfDay starts a time-of-day change, fading when configured to.
func (g *Game) SetTimeOfDay(tod TimeOfDay) {
	if seq := g.d.BeginTimeOfDay(tod); seq != nil {
		g.Start(seq)
	}
}

// Inject returns the synthetic input queue.
func (g *Game) Inject() *InputQueue { return &g.queue }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.update != nil {
		if err := g.update(); err != nil {
			return err
		}
	}
	mx, my := ebiten.CursorPosition()
	cur := pointerEvent{x: mx, y: my, pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)}
	g.readKeys()
	g.tick(cur, time.Now())
	if g.runner != nil && g.runner.Err() != nil {
		return fmt.Errorf("script: %w", g.runner.Err())
	}
	return nil
}

// readKeys applies wheel zoom and arrow key scrolling.
func (g *Game) readKeys() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		delta := ZoomQuantum
		if wy < 0 {
			delta = -delta
		}
		g.d.SetZoom(delta)
	}
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= g.KeyScroll
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += g.KeyScroll
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= g.KeyScroll
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += g.KeyScroll
	}
	if dx != 0 || dy != 0 {
		g.d.Scroll(dx, dy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.d.SetGrid(!g.d.grid)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if _, err := g.d.Screenshot(); err != nil {
			g.d.log.WithError(err).Warn("screenshot key")
		}
	}
}

// tick runs one frame: the script, one pointer sample (injected events take
// precedence over the real pointer), the active sequence and a frame.
func (g *Game) tick(cur pointerEvent, now time.Time) FrameStats {
	if g.runner != nil {
		g.runner.step(g)
	}
	if ev, ok := g.queue.pop(); ok {
		g.pointer.process(g.d, ev)
	} else {
		g.pointer.process(g.d, cur)
	}

	if g.active == nil {
		return g.d.DrawFrame(false)
	}
	if !g.lastStep.IsZero() && now.Sub(g.lastStep) < g.active.Interval() {
		return g.d.DrawFrame(false)
	}
	g.lastStep = now
	if g.active.Next() {
		return g.d.DrawFrame(true)
	}
	return g.finishSequence()
}

func (g *Game) finishSequence() FrameStats {
	g.active = nil
	g.d.InvalidateAll()
	return g.d.DrawFrame(true)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.surface.Target(), nil)
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", g.d.FPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(int, int) (int, int) {
	b := g.surface.Bounds()
	return b.W, b.H
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title   string
	ShowFPS bool
}

// Run opens a window sized to the game's surface and blocks until it closes.
func Run(g *Game, cfg RunConfig) error {
	b := g.surface.Bounds()
	ebiten.SetWindowSize(b.W, b.H)
	ebiten.SetWindowTitle(cfg.Title)
	g.ShowFPS = cfg.ShowFPS
	return ebiten.RunGame(g)
}
