package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_MessageAndUnwrap(t *testing.T) {
	base := errors.New("underlying")
	err := WrapExitError(ExitCommandError, "load suite", base)

	assert.Equal(t, "load suite: underlying", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "fail")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")), "plain errors default to failure")

	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped), "wrapped exit errors keep their code")
}

func TestOutputFormatter_JSONDoesNotEscapeOperators(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]string{"rendered": `("a":true && "b":false)`}))
	assert.Contains(t, buf.String(), "&&", "rendered expressions must survive JSON encoding readably")
}

func TestOutputFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success("all good"))
	assert.Equal(t, "all good\n", buf.String())
}
