package hexview

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// scriptStep is a single action in a scripted session.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	ToX    int    `json:"toX,omitempty"`
	ToY    int    `json:"toY,omitempty"`
	Delta  int    `json:"delta,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Smooth bool   `json:"smooth,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner plays a JSON script of input events, view changes and
// screenshots against a Game, one step per frame. Scripts look like
//
//	{"steps": [
//	  {"action": "scroll_to", "x": 5, "y": 5},
//	  {"action": "click", "x": 120, "y": 80},
//	  {"action": "wait", "frames": 3},
//	  {"action": "screenshot", "label": "selected"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a JSON script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "screenshot", "click", "hover", "drag", "wait", "scroll", "zoom",
		"scroll_to", "select", "invalidate_all", "redraw":
		return true
	}
	return false
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool { return r.done }

// Err returns the first error raised by a step.
func (r *ScriptRunner) Err() error { return r.err }

// step advances the script by one frame.
func (r *ScriptRunner) step(g *Game) {
	if r.done {
		return
	}
	// Injected input and running sequences finish before the next step.
	if g.queue.pending() > 0 || g.active != nil {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	d := g.d

	switch st.Action {
	case "screenshot":
		path := filepath.Join(d.cfg.ScreenshotDir, sanitizeLabel(st.Label)+".png")
		if err := d.ScreenshotToFile(path); err != nil && r.err == nil {
			r.err = err
		}
	case "click":
		g.queue.InjectClick(st.X, st.Y)
	case "hover":
		g.queue.InjectHover(st.X, st.Y)
	case "drag":
		g.queue.InjectDrag(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "scroll":
		d.Scroll(st.X, st.Y)
	case "zoom":
		d.SetZoom(st.Delta)
	case "scroll_to":
		mode := ScrollWarp
		if st.Smooth {
			mode = ScrollSmooth
		}
		g.Start(d.BeginScrollToTile(HexCoord{X: st.X, Y: st.Y}, mode))
	case "select":
		d.SelectHex(HexCoord{X: st.X, Y: st.Y})
	case "invalidate_all":
		d.InvalidateAll()
	case "redraw":
		d.RedrawEverything()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && g.queue.pending() == 0 && g.active == nil {
		r.done = true
	}
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
