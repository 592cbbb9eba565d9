package shutdown

import (
	"sync"
)

// SignalCounter counts shutdown signals and fires onForce once the count
// reaches forceAfter. The callback fires at most once.
type SignalCounter struct {
	mu         sync.Mutex
	count      int
	forceAfter int
	forced     bool
	onForce    func()
}

// NewSignalCounter creates a counter that calls onForce on the
// forceAfter-th signal.
func NewSignalCounter(forceAfter int, onForce func()) *SignalCounter {
	return &SignalCounter{forceAfter: forceAfter, onForce: onForce}
}

// Increment records one signal and returns the new count.
func (s *SignalCounter) Increment() int {
	s.mu.Lock()
	s.count++
	count := s.count
	fire := !s.forced && s.forceAfter > 0 && count >= s.forceAfter && s.onForce != nil
	if fire {
		s.forced = true
	}
	onForce := s.onForce
	s.mu.Unlock()

	if fire {
		onForce()
	}
	return count
}

// Count returns the number of signals seen.
func (s *SignalCounter) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
