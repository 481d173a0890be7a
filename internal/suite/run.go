package suite

import (
	"bufio"
	"fmt"
	"io"

	"github.com/roach88/logexpect/expect"
)

// maxLineBytes bounds a single log line fed through the scanner.
const maxLineBytes = 1 << 20

// Result is the outcome of running a suite over a stream of log lines.
type Result struct {
	// Suite is the suite's name.
	Suite string `json:"suite"`

	// Pass reports whether the assert expression evaluated true once the
	// input was exhausted.
	Pass bool `json:"pass"`

	// Rendered is the plain rendering of the assert expression with each
	// leaf's final truth.
	Rendered string `json:"rendered"`

	// Unmet lists expectations that never matched, in declaration order.
	// A suite can pass with unmet expectations when the assert expression
	// negates them.
	Unmet []string `json:"unmet,omitempty"`

	// Lines is the number of payload lines delivered.
	Lines int `json:"lines"`
}

// Build declares each expectation on a fresh layer and lowers the assert
// expression over them. Returns the layer to deliver payloads to, the root
// assertion, and the per-expectation leaves by name.
func (s *Suite) Build() (*expect.Layer, *expect.Assertion, map[string]*expect.Assertion, error) {
	layer := expect.NewLayer()
	leaves := make(map[string]*expect.Assertion, len(s.Expectations))
	for _, e := range s.Expectations {
		if e.Pattern != "" {
			a, err := layer.MatchesPattern(e.Pattern)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("expectation %q: %w", e.Name, err)
			}
			leaves[e.Name] = a
			continue
		}
		leaves[e.Name] = layer.Matches(e.Match)
	}

	root, err := lower(s.Assert, leaves)
	if err != nil {
		return nil, nil, nil, err
	}
	return layer, root, leaves, nil
}

// Run streams lines from r through a fresh layer built for s and evaluates
// the assert expression once the input is exhausted.
func Run(s *Suite, r io.Reader) (*Result, error) {
	layer, root, leaves, err := s.Build()
	if err != nil {
		return nil, err
	}

	lines := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		layer.Deliver(sc.Text())
		lines++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	res := &Result{
		Suite:    s.Name,
		Pass:     root.Value(),
		Rendered: root.String(),
		Lines:    lines,
	}
	for _, e := range s.Expectations {
		if !leaves[e.Name].Value() {
			res.Unmet = append(res.Unmet, e.Name)
		}
	}
	return res, nil
}
