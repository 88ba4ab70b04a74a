package opts

import (
	"fmt"

	"github.com/walteh/robolog/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config *config.Config
}

// UsageError marks a bad invocation; the CLI maps it to exit code 2
// instead of the fatal-error code.
type UsageError struct {
	Err error
}

func (e UsageError) Error() string { return e.Err.Error() }
func (e UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError.
func Usagef(format string, args ...interface{}) error {
	return UsageError{Err: fmt.Errorf(format, args...)}
}
