package hexview

import "time"

// AnimationFrame is a cyclic sequence of values, each shown for its own
// duration. It owns the current index and the time spent on that index.
type AnimationFrame[T any] struct {
	frames    []T
	durations []time.Duration
	cycle     time.Duration
	index     int
	elapsed   time.Duration
}

// NewAnimation creates an animation over frames. durations must have the same
// length; a frame with a non-positive duration holds forever.
func NewAnimation[T any](frames []T, durations []time.Duration) *AnimationFrame[T] {
	a := &AnimationFrame[T]{frames: frames, durations: durations}
	for i := range frames {
		if i >= len(durations) || durations[i] <= 0 {
			a.cycle = 0
			break
		}
		a.cycle += durations[i]
	}
	return a
}

// Advance moves the animation forward by dt and reports whether a frame
// boundary was crossed.
func (a *AnimationFrame[T]) Advance(dt time.Duration) bool {
	if len(a.frames) < 2 || dt <= 0 || a.cycle <= 0 {
		return false
	}
	changed := false
	a.elapsed += dt
	if a.elapsed >= a.cycle {
		// Whole cycles return to the same frame but still count as a change.
		a.elapsed %= a.cycle
		changed = true
	}
	for a.elapsed >= a.durations[a.index] {
		a.elapsed -= a.durations[a.index]
		a.index = (a.index + 1) % len(a.frames)
		changed = true
	}
	return changed
}

// Current returns the value of the current frame.
func (a *AnimationFrame[T]) Current() T {
	if len(a.frames) == 0 {
		var zero T
		return zero
	}
	return a.frames[a.index]
}

// Index returns the current frame index.
func (a *AnimationFrame[T]) Index() int { return a.index }

// Len returns the number of frames.
func (a *AnimationFrame[T]) Len() int { return len(a.frames) }

// Reset rewinds to the first frame.
func (a *AnimationFrame[T]) Reset() {
	a.index = 0
	a.elapsed = 0
}

// AnimID indexes an animation in the arena.
type AnimID int

const noAnim AnimID = -1

type animKind uint8

const (
	animFlag animKind = iota
	animTerrain
)

type animEntry struct {
	anim *AnimationFrame[string]
	kind animKind
	hex  HexCoord // owning hex of terrain animations
}

// animationArena stores every image animation of the display. Flag
// animations are shared by all villages of a side, so rather than fanning out
// per village the arena latches a single flagsAdvanced bit that the frame
// scheduler consumes once per tick.
type animationArena struct {
	entries       []animEntry
	free          []AnimID
	flagsAdvanced bool
}

func (a *animationArena) add(e animEntry) AnimID {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.entries[id] = e
		return id
	}
	a.entries = append(a.entries, e)
	return AnimID(len(a.entries) - 1)
}

func (a *animationArena) remove(id AnimID) {
	if id < 0 || int(id) >= len(a.entries) || a.entries[id].anim == nil {
		return
	}
	a.entries[id] = animEntry{}
	a.free = append(a.free, id)
}

func (a *animationArena) removeKind(kind animKind) {
	for i := range a.entries {
		if a.entries[i].anim != nil && a.entries[i].kind == kind {
			a.remove(AnimID(i))
		}
	}
}

// current returns the image id shown by id, or "" when id is not live.
func (a *animationArena) current(id AnimID) string {
	if id < 0 || int(id) >= len(a.entries) || a.entries[id].anim == nil {
		return ""
	}
	return a.entries[id].anim.Current()
}

// advance steps every animation by dt. Terrain animations that change frame
// are reported through mark; flag changes set the latch.
func (a *animationArena) advance(dt time.Duration, mark func(HexCoord)) {
	for i := range a.entries {
		e := &a.entries[i]
		if e.anim == nil || !e.anim.Advance(dt) {
			continue
		}
		switch e.kind {
		case animFlag:
			a.flagsAdvanced = true
		case animTerrain:
			mark(e.hex)
		}
	}
}

// takeFlagsAdvanced returns and clears the flag latch.
func (a *animationArena) takeFlagsAdvanced() bool {
	v := a.flagsAdvanced
	a.flagsAdvanced = false
	return v
}

// live returns the number of live animations.
func (a *animationArena) live() int {
	return len(a.entries) - len(a.free)
}
