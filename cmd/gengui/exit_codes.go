package main

import (
	"errors"

	gerrors "github.com/odvcencio/gengui/pkg/errors"
)

const (
	exitUsage    = 2
	exitDocument = 3
)

type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return 1
	}
	return e.code
}

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

// exitCodeForError maps document problems (bad widgets, options, input) to
// exitDocument and anything else to 1 unless the error carries its own code.
func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	switch gerrors.GetCode(err) {
	case gerrors.ErrCodeUnknownWidget, gerrors.ErrCodeConfiguration,
		gerrors.ErrCodeMalformedInput, gerrors.ErrCodeNotFound, gerrors.ErrCodeInvalidInput:
		return exitDocument
	}
	return 1
}
