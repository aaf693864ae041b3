package hexview

import "time"

// fpsCounter measures the presented frame rate over a window of frames.
type fpsCounter struct {
	sample int
	count  int
	start  time.Time
	fps    float64
}

func (f *fpsCounter) frame(now time.Time) {
	if f.sample <= 0 {
		return
	}
	if f.start.IsZero() {
		f.start = now
		return
	}
	f.count++
	if f.count < f.sample {
		return
	}
	if el := now.Sub(f.start); el > 0 {
		f.fps = float64(f.count) / el.Seconds()
	}
	f.count = 0
	f.start = now
}

// FPS returns the presented frames per second of the last sample window.
func (d *Display) FPS() float64 { return d.fps.fps }
