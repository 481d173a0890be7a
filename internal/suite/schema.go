package suite

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// schemaSource is the structural contract every suite document must satisfy.
// Definitions are closed, so fields outside the schema are rejected at this
// layer as well as by the strict YAML decoder.
const schemaSource = `
#Expectation: {
	name:     string & !=""
	match?:   string
	pattern?: string & !=""
}

#Suite: {
	name:         string & !=""
	description?: string
	expectations: [#Expectation, ...#Expectation]
	assert:       string & !=""
}
`

// validateSchema checks the raw YAML document against the embedded CUE
// schema, before any semantic interpretation of the fields.
func validateSchema(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Suite"))
	if err := schema.Err(); err != nil {
		// The schema is a compile-time constant; failing to compile it
		// is a bug in this package, not in the caller's document.
		return fmt.Errorf("internal suite schema is invalid: %w", err)
	}

	file, err := cueyaml.Extract("suite.yaml", data)
	if err != nil {
		return &SchemaError{Details: err.Error()}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &SchemaError{Details: cueerrors.Details(err, nil)}
	}

	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &SchemaError{Details: cueerrors.Details(err, nil)}
	}
	return nil
}
