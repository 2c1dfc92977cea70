package prefilter

import "github.com/coregx/ibmatch/internal/text"

// Tracker retires a Prefilter that no longer skips enough positions.
//
// Every Find covers the positions from its start up to the candidate it
// returns. Density is the share of covered positions that turned out to be
// candidates: 1.0 means the prefilter reported every position and saved
// nothing. Start runes such as a common ASCII letter in ASCII-heavy text get
// there quickly. After the warmup the tracker evaluates the density every
// Interval candidates, and once it exceeds MaxDensity the tracker turns itself
// off for the rest of the search.
//
// A Tracker belongs to one search at a time; Reset prepares it for the next.
//
// Example:
//
//	tr := prefilter.NewTracker(pf)
//	for i := 0; i < n; i++ {
//	    if tr.IsActive() {
//	        if i = tr.Find(t, i); i < 0 {
//	            break
//	        }
//	    }
//	    if matchesAt(t, i) {
//	        return i
//	    }
//	}
type Tracker struct {
	inner  Prefilter
	config TrackerConfig

	candidates uint64
	covered    uint64
	nextCheck  uint64
	active     bool
}

// TrackerConfig tunes when a Tracker gives up on its prefilter.
type TrackerConfig struct {
	// Warmup is the number of candidates before the first evaluation.
	// Default: 128
	Warmup uint64

	// Interval is the number of candidates between evaluations.
	// Default: 64
	Interval uint64

	// MaxDensity is the highest candidate density the prefilter may keep
	// while staying active.
	// Default: 0.9
	MaxDensity float64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		Warmup:     128,
		Interval:   64,
		MaxDensity: 0.9,
	}
}

// NewTracker returns a Tracker over inner with the default configuration, or
// nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig is like NewTracker with an explicit configuration.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	if config.Interval == 0 {
		config.Interval = 1
	}
	t := &Tracker{inner: inner, config: config}
	t.Reset()
	return t
}

// Find returns the first candidate at or after start, or -1 if there is none
// or the tracker is inactive.
func (t *Tracker) Find(h *text.Text, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(h, start)
	if pos < 0 {
		return pos
	}

	t.candidates++
	t.covered += uint64(pos-start) + 1
	if t.candidates >= t.nextCheck {
		t.nextCheck = t.candidates + t.config.Interval
		if t.Density() > t.config.MaxDensity {
			t.active = false
		}
	}
	return pos
}

// IsActive reports whether the prefilter is still in use. Once it is not,
// callers try every position themselves.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Density returns candidates divided by covered positions, 0 before the
// first candidate.
func (t *Tracker) Density() float64 {
	if t.covered == 0 {
		return 0
	}
	return float64(t.candidates) / float64(t.covered)
}

// TrackerStats is a snapshot of a Tracker.
type TrackerStats struct {
	Candidates uint64
	Covered    uint64
	Density    float64
	Active     bool
}

// Stats returns a snapshot of the counters.
func (t *Tracker) Stats() TrackerStats {
	return TrackerStats{
		Candidates: t.candidates,
		Covered:    t.covered,
		Density:    t.Density(),
		Active:     t.active,
	}
}

// Reset clears the counters and reactivates the prefilter.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.covered = 0
	t.nextCheck = t.config.Warmup
	t.active = true
}
