package diagram

import "sync/atomic"

// Sequencer tags overlapping requests so that only the newest one applies its
// result. Requests cannot be cancelled; stale results are discarded instead.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a token newer than every token issued before.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// IsLatest reports whether token is the most recently issued one.
func (s *Sequencer) IsLatest(token uint64) bool {
	return s.latest.Load() == token
}
