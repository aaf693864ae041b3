package hexview

import "time"

// TransitionSequence cross-fades the time-of-day mask over a fixed number of
// steps. At step i of n the outgoing mask is drawn at 1-i/n and the incoming
// one at i/n; every step redraws the whole map. When the steps run out the
// pair is cleared and the new time of day is committed.
type TransitionSequence struct {
	d        *Display
	state    *todTransition
	interval time.Duration
	done     bool
}

// Interval implements FrameSequence.
func (s *TransitionSequence) Interval() time.Duration { return s.interval }

// Steps returns the number of fade steps.
func (s *TransitionSequence) Steps() int { return s.state.steps }

// Next implements FrameSequence.
func (s *TransitionSequence) Next() bool {
	if s.done {
		return false
	}
	t := s.state
	if t.step >= t.steps {
		s.done = true
		s.d.commitTimeOfDay(t.next)
		return false
	}
	frac := float64(t.step) / float64(t.steps)
	t.outAlpha = 1 - frac
	t.inAlpha = frac
	t.step++
	s.d.InvalidateAll()
	return true
}

// BeginTimeOfDay starts a change to tod. When a fade applies it returns the
// sequence driving it; otherwise the change is committed at once and nil is
// returned. Fades are skipped in turbo mode, on the first turn and when the
// two masks are identical.
func (d *Display) BeginTimeOfDay(tod TimeOfDay) *TransitionSequence {
	prev := d.todCurrent
	first := d.firstTurn
	d.firstTurn = false
	if first || d.cfg.Render.Turbo || prev.Mask == tod.Mask {
		d.commitTimeOfDay(tod)
		return nil
	}
	d.transition = &todTransition{
		outgoing: prev.Mask,
		incoming: tod.Mask,
		outAlpha: 1,
		steps:    d.cfg.Render.TransitionSteps,
		next:     tod,
	}
	// Tiles are drawn unmasked while the pair carries the lighting.
	d.images.setColorAdjust(0, 0, 0)
	d.InvalidateAll()
	return &TransitionSequence{
		d:        d,
		state:    d.transition,
		interval: d.cfg.Render.TransitionInterval,
	}
}

// SetTimeOfDay changes the time of day, running the fade to completion.
func (d *Display) SetTimeOfDay(tod TimeOfDay) {
	if seq := d.BeginTimeOfDay(tod); seq != nil {
		d.RunSequence(seq)
		return
	}
	d.DrawFrame(false)
}

// NewTurn reads the current time of day from the source and applies it.
func (d *Display) NewTurn() {
	if d.tod == nil {
		return
	}
	d.SetTimeOfDay(d.tod.Current())
}

// TransitionActive reports whether a time-of-day fade is running.
func (d *Display) TransitionActive() bool { return d.transition != nil }

func (d *Display) commitTimeOfDay(tod TimeOfDay) {
	d.transition = nil
	d.todCurrent = tod
	d.images.setColorAdjust(tod.Red, tod.Green, tod.Blue)
	d.InvalidateAll()
	d.InvalidateGameStatus()
}
