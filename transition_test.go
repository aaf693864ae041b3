package hexview

import (
	"math"
	"testing"
)

func TestTimeOfDayFirstTurnCommitsImmediately(t *testing.T) {
	f := newFixture(t, nil)
	seq := f.d.BeginTimeOfDay(TimeOfDay{ID: "dusk", Mask: "dusk.png", Red: -20})
	if seq != nil {
		t.Fatal("first turn started a fade")
	}
	if f.d.todCurrent.ID != "dusk" || f.d.images.adjust != [3]int{-20, 0, 0} {
		t.Errorf("time of day not committed: %+v adjust %v", f.d.todCurrent, f.d.images.adjust)
	}
}

func TestTimeOfDaySkipsFade(t *testing.T) {
	tests := []struct {
		name  string
		turbo bool
		mask  string
	}{
		{"turbo", true, "night.png"},
		{"same mask", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(_ *fixture, o *Options) { o.Config.Render.Turbo = tt.turbo })
			f.d.BeginTimeOfDay(TimeOfDay{ID: "day"})
			if seq := f.d.BeginTimeOfDay(TimeOfDay{ID: "night", Mask: tt.mask}); seq != nil {
				t.Error("fade started")
			}
			if f.d.TransitionActive() || f.d.todCurrent.ID != "night" {
				t.Errorf("not committed: active %v current %q", f.d.TransitionActive(), f.d.todCurrent.ID)
			}
		})
	}
}

func TestTimeOfDayTransitionSteps(t *testing.T) {
	f := newFixture(t, nil)
	d := f.d
	d.BeginTimeOfDay(TimeOfDay{ID: "day"})

	seq := d.BeginTimeOfDay(TimeOfDay{ID: "night", Mask: "night.png", Blue: 30})
	if seq == nil {
		t.Fatal("no fade for a mask change")
	}
	n := d.Config().Render.TransitionSteps
	if seq.Steps() != n {
		t.Fatalf("steps = %d, want %d", seq.Steps(), n)
	}
	if d.images.adjust != [3]int{} {
		t.Errorf("colour adjust during fade = %v, want none", d.images.adjust)
	}

	for i := 0; i < n; i++ {
		d.DrawFrame(false)
		if !seq.Next() {
			t.Fatalf("Next returned false at step %d", i)
		}
		tr := d.transition
		want := float64(i) / float64(n)
		if math.Abs(tr.inAlpha-want) > 1e-9 || math.Abs(tr.outAlpha-(1-want)) > 1e-9 {
			t.Errorf("step %d alphas = out %v in %v, want out %v in %v", i, tr.outAlpha, tr.inAlpha, 1-want, want)
		}
		if !d.inv.IsAllDirty() {
			t.Errorf("step %d did not invalidate the map", i)
		}
		if got := d.resolveImageType(HexCoord{1, 1}); got != ImageUnmasked {
			t.Errorf("step %d image type = %v, want unmasked", i, got)
		}
	}

	if seq.Next() {
		t.Fatal("Next after the last step returned true")
	}
	if d.TransitionActive() {
		t.Error("transition pair not cleared")
	}
	if d.todCurrent.ID != "night" || d.images.adjust != [3]int{0, 0, 30} {
		t.Errorf("commit: current %q adjust %v", d.todCurrent.ID, d.images.adjust)
	}
	if seq.Next() {
		t.Error("finished sequence restarted")
	}
}

func TestSetTimeOfDayRunsFade(t *testing.T) {
	f := newFixture(t, nil)
	d := f.d
	d.SetTimeOfDay(TimeOfDay{ID: "day"})
	flips := len(f.presenter.flips)

	d.SetTimeOfDay(TimeOfDay{ID: "night", Mask: "night.png"})
	n := d.Config().Render.TransitionSteps
	if got := len(f.presenter.flips) - flips; got != n+1 {
		t.Errorf("presented %d frames, want %d", got, n+1)
	}
	if d.TransitionActive() {
		t.Error("fade still active after SetTimeOfDay returned")
	}
	// The missing mask is reported once, not once per frame or hex.
	if got := f.warnings("night.png"); got != 1 {
		t.Errorf("missing mask logged %d times, want 1", got)
	}
}

func TestNewTurnReadsSource(t *testing.T) {
	f := newFixture(t, nil)
	f.tod.current = TimeOfDay{ID: "morning", Green: 10}
	f.d.NewTurn()
	if f.d.todCurrent.ID != "morning" {
		t.Errorf("current = %q, want morning", f.d.todCurrent.ID)
	}
}
