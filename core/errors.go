package core

import (
	"errors"
	"fmt"
)

// ErrSearchPathUnset is returned by NewShell when the variable holding the
// executable search path isn't set. The shell can't start without it.
var ErrSearchPathUnset = errors.New("search path variable is not set")

// Exit statuses the shell assigns itself, following bash.
const (
	StatusFailure  = 1
	StatusUsage    = 2
	StatusCantExec = 126
	StatusNotFound = 127
)

// UsageError is returned when a builtin is called with the wrong arguments.
type UsageError struct {
	Command string
	// Reason describes the problem, if empty Usage is shown instead.
	Reason string
	Usage  string
}

func (e *UsageError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf("%s: usage: %s", e.Command, e.Usage)
}

// RuntimeError is returned when a command was understood but failed.
type RuntimeError struct {
	Command string
	Err     error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// CommandNotFoundError is returned when a command is neither a builtin nor
// an executable on the search path.
type CommandNotFoundError struct {
	Command string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s: command not found", e.Command)
}

// ExecError is returned when an external program couldn't be started.
type ExecError struct {
	Command string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// ChdirError is returned by cd when the target can't become the working
// directory.
type ChdirError struct {
	// Path is the argument as the user typed it.
	Path string
	Err  error
}

func (e *ChdirError) Error() string {
	return fmt.Sprintf("%s: No such file or directory", e.Path)
}

func (e *ChdirError) Unwrap() error {
	return e.Err
}

// ExitRequest is returned by the exit builtin to stop the shell.
type ExitRequest struct {
	Code int
}

func (e *ExitRequest) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// exitStatus maps an error returned by a command to the status it leaves
// behind.
func exitStatus(err error) int {
	var (
		usage    *UsageError
		notFound *CommandNotFoundError
		exit     *ExitRequest
		execErr  *ExecError
	)

	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.Code
	case errors.As(err, &usage):
		return StatusUsage
	case errors.As(err, &notFound):
		return StatusNotFound
	case errors.As(err, &execErr):
		return StatusCantExec
	default:
		return StatusFailure
	}
}
