package status

import "sync/atomic"

// MaxStringLen caps string metrics, they become Prometheus label values
const MaxStringLen = 32

// AtomicString is a string gauge, zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store replaces the value, truncated to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	val = val[:min(len(val), MaxStringLen)]
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
