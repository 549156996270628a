package vault

import (
	"errors"
	"fmt"
)

// ErrorKind classifies store failures.
type ErrorKind string

const (
	KindWriteConflict ErrorKind = "write_conflict"
	KindIOFailure     ErrorKind = "io_failure"
)

var (
	// ErrWriteConflict matches any StoreError caused by an existing path.
	ErrWriteConflict = errors.New("write conflict")
	// ErrIOFailure matches any StoreError caused by an underlying I/O failure.
	ErrIOFailure = errors.New("io failure")
	// ErrLocked indicates another process holds the vault sync lock.
	ErrLocked = errors.New("vault is locked by another sync")
)

// StoreError describes a failed store operation.
type StoreError struct {
	Kind ErrorKind
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vault %s %q: %s: %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("vault %s %q: %s", e.Op, e.Path, e.Kind)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrWriteConflict:
		return e.Kind == KindWriteConflict
	case ErrIOFailure:
		return e.Kind == KindIOFailure
	}
	return false
}

func conflict(op, p string) error {
	return &StoreError{Kind: KindWriteConflict, Op: op, Path: p}
}

func ioFailure(op, p string, err error) error {
	return &StoreError{Kind: KindIOFailure, Op: op, Path: p, Err: err}
}
