package internal

import (
	"errors"
	"fmt"
)

// ErrStartup matches any StartupFailure with errors.Is.
var ErrStartup = errors.New("startup failure")

// StartupFailure is an error the program cannot run past, such as bad
// configuration or a global hook that would not install.
type StartupFailure struct {
	Stage string
	Err   error
}

func (e *StartupFailure) Error() string {
	return fmt.Sprintf("startup failure (%s): %v", e.Stage, e.Err)
}

func (e *StartupFailure) Unwrap() error {
	return e.Err
}

func (e *StartupFailure) Is(target error) bool {
	return target == ErrStartup
}

// Startup wraps err as a StartupFailure for stage. A nil err stays nil.
func Startup(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StartupFailure{Stage: stage, Err: err}
}
