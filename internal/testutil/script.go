// Package testutil provides deterministic helpers for exercising the
// assertion engine from tests.
package testutil

import "sync"

// Script is a thread-safe scripted payload source for concurrency tests.
//
// Feeder goroutines call Next until the script is exhausted; every line is
// handed out exactly once, in script order. This gives concurrent delivery
// tests a deterministic total set of payloads even though the interleaving
// across goroutines varies.
type Script struct {
	mu    sync.Mutex
	lines []string
	next  int
}

// NewScript creates a script over the given lines.
func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

// Next hands out the next unconsumed line. The second return value is false
// once the script is exhausted.
func (s *Script) Next() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.next]
	s.next++
	return line, true
}

// Remaining returns the number of unconsumed lines.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) - s.next
}

// Reset rewinds the script to the beginning for reuse.
func (s *Script) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = 0
}

// Feed drains the script through deliver using the given number of concurrent
// worker goroutines and blocks until every line has been delivered.
func (s *Script) Feed(workers int, deliver func(string)) {
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				line, ok := s.Next()
				if !ok {
					return
				}
				deliver(line)
			}
		}()
	}
	wg.Wait()
}
