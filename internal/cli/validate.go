package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/logexpect/internal/suite"
)

// validateResult is the JSON shape of a validate run.
type validateResult struct {
	Suite string `json:"suite,omitempty"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <suite.yaml>",
		Short: "Validate a suite file without running it",
		Long: `Check a suite file against the schema, the suite rules, and the assert
expression grammar, without delivering any log lines.

Exit codes:
  0 - Suite is valid
  1 - Suite is invalid
  2 - Command error (missing file)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "suite file", err)
	}

	s, err := suite.Load(path)
	if err == nil {
		// Building exercises pattern compilation and expression lowering,
		// catching problems Load alone cannot see.
		_, _, _, err = s.Build()
	}

	if err != nil {
		if opts.Format == "json" {
			if encErr := out.Success(validateResult{Valid: false, Error: err.Error()}); encErr != nil {
				return WrapExitError(ExitCommandError, "encode result", encErr)
			}
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "INVALID %s\n  %v\n", path, err)
		}
		return WrapExitError(ExitFailure, "invalid suite", err)
	}

	if opts.Format == "json" {
		if err := out.Success(validateResult{Suite: s.Name, Valid: true}); err != nil {
			return WrapExitError(ExitCommandError, "encode result", err)
		}
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK %s (%d expectations)\n", s.Name, len(s.Expectations))
	return nil
}
