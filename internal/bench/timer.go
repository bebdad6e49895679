package bench

import "time"

// Stopwatch accumulates elapsed time over repeated runs, discarding the
// first warmup runs.
type Stopwatch struct {
	warmup  int
	runs    int
	started time.Time
	total   time.Duration
	samples []time.Duration
}

// NewStopwatch constructs a Stopwatch that ignores the first warmup runs.
func NewStopwatch(warmup int) *Stopwatch {
	if warmup < 0 {
		warmup = 0
	}
	return &Stopwatch{warmup: warmup}
}

// Start marks the beginning of a run.
func (s *Stopwatch) Start() { s.started = time.Now() }

// Stop ends the current run and records it unless it is a warmup run.
func (s *Stopwatch) Stop() time.Duration {
	elapsed := time.Since(s.started)
	s.record(elapsed)
	return elapsed
}

func (s *Stopwatch) record(elapsed time.Duration) {
	s.runs++
	if s.runs <= s.warmup {
		return
	}
	s.total += elapsed
	s.samples = append(s.samples, elapsed)
}

// Total returns the accumulated timed duration.
func (s *Stopwatch) Total() time.Duration { return s.total }

// Samples returns the recorded timed runs.
func (s *Stopwatch) Samples() []time.Duration { return s.samples }

// Timed reports whether the next run will be recorded.
func (s *Stopwatch) Timed() bool { return s.runs >= s.warmup }
