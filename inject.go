package hexview

// pointerEvent is one pointer sample in screen coordinates.
type pointerEvent struct {
	x, y    int
	pressed bool
}

// InputQueue holds synthetic pointer events. Each event replaces the real
// pointer for one frame.
type InputQueue struct {
	events []pointerEvent
}

// InjectPress queues a press at (x, y).
func (q *InputQueue) InjectPress(x, y int) {
	q.events = append(q.events, pointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a move to (x, y) with the button held.
func (q *InputQueue) InjectMove(x, y int) {
	q.events = append(q.events, pointerEvent{x: x, y: y, pressed: true})
}

// InjectHover queues a move to (x, y) with the button up.
func (q *InputQueue) InjectHover(x, y int) {
	q.events = append(q.events, pointerEvent{x: x, y: y})
}

// InjectRelease queues a release at (x, y).
func (q *InputQueue) InjectRelease(x, y int) {
	q.events = append(q.events, pointerEvent{x: x, y: y})
}

// InjectClick queues a press and a release at the same point. Consumes two
// frames.
func (q *InputQueue) InjectClick(x, y int) {
	q.InjectPress(x, y)
	q.InjectRelease(x, y)
}

// InjectDrag queues a press at the start, frames-2 interpolated moves and a
// release at the end.
func (q *InputQueue) InjectDrag(fromX, fromY, toX, toY, frames int) {
	frames = max(frames, 2)
	q.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		q.InjectMove(fromX+(toX-fromX)*i/(steps+1), fromY+(toY-fromY)*i/(steps+1))
	}
	q.InjectRelease(toX, toY)
}

func (q *InputQueue) pending() int { return len(q.events) }

func (q *InputQueue) pop() (pointerEvent, bool) {
	if len(q.events) == 0 {
		return pointerEvent{}, false
	}
	ev := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return ev, true
}
