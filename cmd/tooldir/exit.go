package main

import "tooldir/internal/domain"

const (
	exitCodeFailure     = 1
	exitCodeUsage       = 2
	exitCodeUnavailable = 3
)

type exitError struct {
	code    int
	message string
	silent  bool
}

func (e exitError) Error() string {
	return e.message
}

func exitSilent(code int) error {
	return exitError{code: code, silent: true}
}

func exitCodeFor(err error) int {
	code, ok := domain.CodeFrom(err)
	if !ok {
		return exitCodeFailure
	}
	switch code {
	case domain.CodeInvalidArgument:
		return exitCodeUsage
	case domain.CodeUnavailable:
		return exitCodeUnavailable
	default:
		return exitCodeFailure
	}
}
