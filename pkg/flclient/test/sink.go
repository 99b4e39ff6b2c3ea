// Package test provides fakes and mocks shared by the flclient tests.
package test

import "sync"

// CapturingSink is a port.LogSink that keeps every message in memory.
// It is safe for concurrent use.
type CapturingSink struct {
	mu       sync.Mutex
	messages []string
}

// NewCapturingSink creates an empty CapturingSink.
func NewCapturingSink() *CapturingSink {
	return &CapturingSink{}
}

// Info records msg.
func (s *CapturingSink) Info(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns a copy of the recorded messages in arrival order.
func (s *CapturingSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of recorded messages.
func (s *CapturingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}
