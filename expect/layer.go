package expect

import "fmt"

// Layer is the public handle to one assertion engine. It is the point where
// the event pipeline hands payloads in (Deliver) and where test code declares
// expectations. The zero value is not usable; construct with NewLayer.
//
// Layer values are cheap to copy and all copies share the same registry, so a
// layer can be handed to a log handler on one goroutine while the test
// declares and evaluates on another.
type Layer struct {
	reg *registry
}

// NewLayer creates an empty assertion engine.
func NewLayer() *Layer {
	return &Layer{reg: newRegistry()}
}

// Matches declares an expectation that an event payload equal to s will be
// delivered. Comparison is NFC-normalized string equality.
func (l *Layer) Matches(s string) *Assertion {
	return leafAssertion(l.reg, l.reg.declare(newLiteralSpec(s)))
}

// Matchesf declares a literal expectation from a fmt.Sprintf-formatted value.
// Useful for matching payloads built from debug-formatted data.
func (l *Layer) Matchesf(format string, args ...any) *Assertion {
	return l.Matches(fmt.Sprintf(format, args...))
}

// MatchesPattern declares an expectation that a payload matching the regular
// expression expr will be delivered. The pattern is compiled eagerly; a
// malformed pattern is returned as a *PatternError.
func (l *Layer) MatchesPattern(expr string) (*Assertion, error) {
	spec, err := newPatternSpec(expr)
	if err != nil {
		return nil, err
	}
	return leafAssertion(l.reg, l.reg.declare(spec)), nil
}

// Deliver offers an event payload to every pending expectation. Called by the
// event pipeline once per observed event, from any goroutine. Expectations
// declared after a delivery never observe it.
func (l *Layer) Deliver(payload string) {
	l.reg.deliver(payload)
}

// Disable forces every assertion built on this layer to evaluate true,
// regardless of latch state. Latches and pending membership are untouched, so
// Enable restores evaluation exactly as it was.
func (l *Layer) Disable() {
	l.reg.overrideAll.Store(true)
}

// Enable restores normal per-leaf evaluation after Disable.
func (l *Layer) Enable() {
	l.reg.overrideAll.Store(false)
}
