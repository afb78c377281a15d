package cmderr

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes used by the blockstore commands.
const (
	// CodeInternal is a default code for unclassified failures.
	CodeInternal = 1
	// CodeConfig is used when the configuration can not be loaded or is invalid.
	CodeConfig = 2
	// CodeUnavailable is used when the remote service can not be reached.
	CodeUnavailable = 3
)

// ExitErr specific error for ExitOnErr function that passes the exit code and error caused.
type ExitErr struct {
	Code  int
	Cause error
}

func (x ExitErr) Error() string { return x.Cause.Error() }

func (x ExitErr) Unwrap() error { return x.Cause }

// Wrap attaches exit code to err. Returns nil if err is nil.
func Wrap(code int, err error) error {
	if err == nil {
		return nil
	}
	return ExitErr{Code: code, Cause: err}
}

// ExitCode returns the code ExitOnErr would exit with for err.
func ExitCode(err error) int {
	var e ExitErr
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// ExitOnErr writes error to os.Stderr and calls os.Exit with passed exit code or by default 1.
// Does nothing if err is nil.
func ExitOnErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitCode(err))
	}
}
