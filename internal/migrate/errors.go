package migrate

import "github.com/juju/errors"

// Kinds of migration failure. Test with errors.Is.
const (
	// ErrPrecondition means the inputs or destinations do not allow a
	// migration. Nothing was written.
	ErrPrecondition = errors.ConstError("migration precondition failed")
	// ErrParse means a domain file could not be parsed or has a section
	// of the wrong shape.
	ErrParse = errors.ConstError("domain file could not be parsed")
	// ErrIO means reading or writing the filesystem failed.
	ErrIO = errors.ConstError("filesystem failure")
)

func preconditionf(format string, args ...any) error {
	return errors.WithType(errors.Errorf(format, args...), ErrPrecondition)
}

func parseFailure(err error, format string, args ...any) error {
	return errors.WithType(errors.Annotatef(err, format, args...), ErrParse)
}

func ioFailure(err error, format string, args ...any) error {
	return errors.WithType(errors.Annotatef(err, format, args...), ErrIO)
}
