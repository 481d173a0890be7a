// Package suite loads and runs declarative expectation suites.
//
// A suite is a YAML file naming a set of expectations (literal or pattern
// match rules) and a boolean assert expression over them:
//
//	name: startup
//	description: "server boots with TLS and without plaintext fallback"
//	expectations:
//	  - name: listen
//	    match: "server listening"
//	  - name: tls
//	    pattern: "tls: .+ enabled"
//	  - name: plaintext
//	    match: "falling back to plaintext"
//	assert: "(listen && tls) && !plaintext"
//
// Loading validates the document against an embedded CUE schema, checks
// suite-level rules (unique identifier-shaped names, exactly one of
// match/pattern per expectation), and compiles the assert expression onto the
// engine's combinator tree. Run then streams log lines through a fresh layer
// and evaluates the expression once input is exhausted.
package suite

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// validName matches expectation names usable as variables in the assert
// expression: alphanumeric and underscore, starting with a letter or
// underscore.
var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Suite declares named expectations and a boolean assertion over them.
type Suite struct {
	// Name uniquely identifies this suite.
	Name string `yaml:"name"`

	// Description explains what this suite validates.
	Description string `yaml:"description,omitempty"`

	// Expectations are the named match rules delivered lines are checked
	// against.
	Expectations []Expectation `yaml:"expectations"`

	// Assert is a boolean expression over expectation names, built from
	// &&, || and ! with parentheses.
	Assert string `yaml:"assert"`
}

// Expectation is one named match rule. Exactly one of Match or Pattern must
// be set.
type Expectation struct {
	// Name is the identifier the assert expression refers to.
	Name string `yaml:"name"`

	// Match is a literal payload to match by equality.
	Match string `yaml:"match,omitempty"`

	// Pattern is a regular expression to match payloads against.
	Pattern string `yaml:"pattern,omitempty"`
}

// Load reads and parses a suite YAML file. It fails on unreadable files,
// malformed YAML, unknown fields (typos), schema violations, duplicate or
// non-identifier expectation names, and unparseable assert expressions.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates suite YAML from memory.
func Parse(data []byte) (*Suite, error) {
	// Strict decoding catches typos like "expectation:" vs "expectations:".
	var s Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, err
	}
	if err := validateSuite(&s); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &s, nil
}

// validateSuite checks the rules the schema cannot express.
func validateSuite(s *Suite) error {
	seen := make(map[string]bool, len(s.Expectations))
	for i, e := range s.Expectations {
		if !validName.MatchString(e.Name) {
			return &ValidationError{
				Field:   fmt.Sprintf("expectations[%d].name", i),
				Message: fmt.Sprintf("name %q must match pattern %s", e.Name, validName.String()),
			}
		}
		if seen[e.Name] {
			return &ValidationError{
				Field:   fmt.Sprintf("expectations[%d].name", i),
				Message: fmt.Sprintf("duplicate expectation name %q", e.Name),
			}
		}
		seen[e.Name] = true

		if (e.Match != "") == (e.Pattern != "") {
			return &ValidationError{
				Field:   fmt.Sprintf("expectations[%d]", i),
				Message: fmt.Sprintf("expectation %q requires exactly one of match or pattern", e.Name),
			}
		}
	}
	return nil
}
