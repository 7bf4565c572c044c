package stage

import "time"

// frameStats holds per-tick timing and bookkeeping counts.
// Only populated when the stage is in debug mode.
type frameStats struct {
	elapsed  time.Duration
	pending  int
	observed int
	ops      int
}

// debugLogInterval is the number of ticks between debug log lines.
const debugLogInterval = 60

// debugLog writes tick stats at debug level once every debugLogInterval
// ticks.
func (s *Stage) debugLog(stats frameStats) {
	if !s.debug || s.frames%debugLogInterval != 0 {
		return
	}
	s.log.Debug().
		Uint64("frame", s.frames).
		Dur("tick", stats.elapsed).
		Int("pendingFrames", stats.pending).
		Int("observers", stats.observed).
		Int("drawOps", stats.ops).
		Float64("scrollY", s.view.ScrollY()).
		Str("section", s.tracker.Active()).
		Msg("tick")
}

// SetDebugMode enables or disables debug mode. When enabled, tick stats are
// logged periodically and Draw overlays the FPS counter.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}
