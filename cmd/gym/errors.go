package main

import (
	"errors"

	svc "github.com/Jidetireni/gym-manager/internal/services"
)

const (
	exitFailure  = 1
	exitInvalid  = 2
	exitNotFound = 3
)

var errUsage = errors.New("usage")

type cliUsageError struct {
	msg string
}

func (e *cliUsageError) Error() string { return e.msg }

func (e *cliUsageError) Is(target error) bool { return target == errUsage }

func usageError(msg string) error {
	return &cliUsageError{msg: msg}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, svc.ErrValidation), errors.Is(err, errUsage):
		return exitInvalid
	case errors.Is(err, svc.ErrNotFound):
		return exitNotFound
	default:
		return exitFailure
	}
}
