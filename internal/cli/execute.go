package cli

import (
	"io"

	"github.com/juju/errors"
	"github.com/spf13/afero"

	"domain-migrator/internal/migrate"
)

// Exit codes of the domain-migrate command.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitPrecondition = 2
	ExitParse        = 3
	ExitIO           = 4
)

// ExitCode maps an error to the process exit code by its kind.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, migrate.ErrPrecondition):
		return ExitPrecondition
	case errors.Is(err, migrate.ErrParse):
		return ExitParse
	case errors.Is(err, migrate.ErrIO):
		return ExitIO
	default:
		return ExitFailure
	}
}

// Execute runs the command line args against fs and returns the exit code.
func Execute(args []string, fs afero.Fs, stdout, stderr io.Writer) int {
	a := newApp(fs)
	defer a.close()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		newReporter(stderr, a.settings.NoColor).Error(err)
	}

	return ExitCode(err)
}
