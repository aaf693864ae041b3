package hexview

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// debugAssert checks an internal consistency condition. In debug mode a
// failed check panics; otherwise it is logged and false is returned so the
// caller can skip the offending draw.
func (d *Display) debugAssert(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if d.cfg.Debug {
		panic("hexview debug: " + msg)
	}
	d.log.Error(msg)
	return false
}

// debugFrame logs the work done by one DrawFrame call.
func (d *Display) debugFrame(st FrameStats) {
	if !d.cfg.Debug {
		return
	}
	d.log.WithFields(logrus.Fields{
		"visited":   st.TilesVisited,
		"drawn":     st.TilesDrawn,
		"reports":   st.ReportsDrawn,
		"minimap":   st.MinimapDrawn,
		"chrome":    st.ChromeDrawn,
		"presented": st.Presented,
		"skipped":   st.Skipped,
		"skips":     d.skips,
	}).Debug("frame")
}
