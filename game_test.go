package hexview

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestFPSCounter(t *testing.T) {
	var c fpsCounter
	c.sample = 4
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i <= 4; i++ {
		c.frame(start.Add(time.Duration(i) * 25 * time.Millisecond))
	}
	if c.fps != 40 {
		t.Errorf("fps = %v, want 40", c.fps)
	}

	var off fpsCounter
	off.frame(start)
	off.frame(start.Add(time.Second))
	if off.fps != 0 {
		t.Error("counter with no sample window measured a rate")
	}
}

func TestGameStepsSequenceAtItsInterval(t *testing.T) {
	f := newFixture(t, grassSetup)
	g := &Game{d: f.d}
	g.tick(pointerEvent{}, f.clock.now)

	seq := f.d.BeginScrollToTile(HexCoord{9, 9}, ScrollSmooth)
	steps := seq.Steps()
	if steps < 2 {
		t.Fatalf("steps = %d, want a multi-step scroll", steps)
	}
	g.Start(seq)

	now := f.clock.now
	if st := g.tick(pointerEvent{}, now); !st.Presented {
		t.Error("first step not presented")
	}
	before := f.d.vp.Scroll()
	// Within the interval the sequence does not move.
	g.tick(pointerEvent{}, now.Add(seq.Interval()/2))
	if f.d.vp.Scroll() != before {
		t.Error("sequence stepped before its interval elapsed")
	}

	for i := 0; i < steps+5 && g.active != nil; i++ {
		now = now.Add(seq.Interval())
		g.tick(pointerEvent{}, now)
	}
	if g.active != nil {
		t.Fatal("sequence never finished")
	}
	if got, want := f.d.vp.Scroll(), f.d.vp.centerScroll(HexCoord{9, 9}); got != want {
		t.Errorf("scroll = %v, want %v", got, want)
	}
}

func TestGameStartFinishesRunningSequence(t *testing.T) {
	f := newFixture(t, nil)
	g := &Game{d: f.d}
	first := f.d.BeginScrollToTile(HexCoord{9, 9}, ScrollSmooth)
	g.Start(first)
	g.tick(pointerEvent{}, f.clock.now)

	second := f.d.BeginScrollToTile(HexCoord{0, 0}, ScrollSmooth)
	g.Start(second)
	if first.Next() {
		t.Error("replaced sequence still has steps")
	}
	if got, want := f.d.vp.Scroll(), f.d.vp.centerScroll(HexCoord{9, 9}); got != want {
		t.Errorf("scroll = %v, want the end of the replaced sequence %v", got, want)
	}
	if g.active != FrameSequence(second) {
		t.Error("new sequence not active")
	}
}

func TestGameSetTimeOfDayStartsFade(t *testing.T) {
	f := newFixture(t, nil)
	g := &Game{d: f.d}
	g.SetTimeOfDay(TimeOfDay{ID: "day"})
	if g.active != nil {
		t.Fatal("first time of day started a fade")
	}
	g.SetTimeOfDay(TimeOfDay{ID: "night", Mask: "night.png"})
	if g.active == nil || !f.d.TransitionActive() {
		t.Fatal("mask change did not start a fade")
	}
	now := f.clock.now
	for i := 0; i < 20 && g.active != nil; i++ {
		now = now.Add(time.Second)
		g.tick(pointerEvent{}, now)
	}
	if f.d.TransitionActive() || f.d.todCurrent.ID != "night" {
		t.Errorf("fade not committed: active %v current %q", f.d.TransitionActive(), f.d.todCurrent.ID)
	}
}

func TestDebugFrameLogs(t *testing.T) {
	f := newFixture(t, func(_ *fixture, o *Options) { o.Config.Debug = true })
	f.d.DrawFrame(false)
	e := f.hook.LastEntry()
	if e == nil || e.Message != "frame" || e.Level != logrus.DebugLevel {
		t.Fatalf("last entry = %+v, want the frame debug line", e)
	}
	if e.Data["visited"] != 36 || e.Data["presented"] != true {
		t.Errorf("frame fields = %v", e.Data)
	}
}
