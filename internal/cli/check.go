package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/roach88/logexpect/internal/suite"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <suite.yaml> [logfile]",
		Short: "Run an expectation suite over a log stream",
		Long: `Stream a log file (or stdin) through an expectation suite and report
whether its assert expression holds once the input is exhausted.

Pass "-" or no logfile argument to read from stdin.

Exit codes:
  0 - All assertions held
  1 - Assertion failure
  2 - Command error (bad suite, bad pattern, missing file)

Examples:
  logassert check startup.yaml server.log
  tail -n 200 server.log | logassert check startup.yaml
  logassert check startup.yaml server.log --format json`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, cmd *cobra.Command, args []string) error {
	logger := newLogger(opts, cmd.ErrOrStderr())

	s, err := suite.Load(args[0])
	if err != nil {
		return WrapExitError(ExitCommandError, "load suite", err)
	}
	logger.Debug("suite loaded", "name", s.Name, "expectations", len(s.Expectations))

	in, closeIn, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	res, err := suite.Run(s, in)
	if err != nil {
		return WrapExitError(ExitCommandError, "run suite", err)
	}
	logger.Debug("suite evaluated", "lines", res.Lines, "pass", res.Pass, "unmet", len(res.Unmet))

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		if err := out.Success(res); err != nil {
			return WrapExitError(ExitCommandError, "encode result", err)
		}
	} else {
		printCheckText(cmd.OutOrStdout(), res)
	}

	if !res.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("suite %s failed", res.Suite))
	}
	return nil
}

func printCheckText(w io.Writer, res *suite.Result) {
	status := "PASS"
	if !res.Pass {
		status = "FAIL"
	}
	fmt.Fprintf(w, "%s %s (%d lines)\n", status, res.Suite, res.Lines)
	fmt.Fprintf(w, "  %s\n", res.Rendered)
	for _, name := range res.Unmet {
		fmt.Fprintf(w, "  unmet: %s\n", name)
	}
}

// openInput resolves the optional logfile argument: a path opens the file,
// "-" or absence reads stdin.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) < 2 || args[1] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[1])
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open log file", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newLogger builds the diagnostic logger: a colorized tint handler at debug
// level when --verbose is set, discarded otherwise.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	if !opts.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{Level: slog.LevelDebug}))
}
