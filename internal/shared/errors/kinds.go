package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers can decide whether to retry.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindTransient    Kind = "transient"
	KindInternal     Kind = "internal"
)

// Sentinels matched with errors.Is. Errors built by New, Newf or Wrap match
// the sentinel of their kind.
var (
	ErrInvalidInput = stderrors.New("invalid input")
	ErrNotFound     = stderrors.New("not found")
	ErrConflict     = stderrors.New("conflict")
	ErrTransient    = stderrors.New("store unavailable")
	ErrInternal     = stderrors.New("internal error")
)

type kindError struct {
	kind Kind
	msg  string
	err  error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.err }

func (e *kindError) Is(target error) bool { return target == sentinelFor(e.kind) }

// New returns an error of the given kind.
func New(kind Kind, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Newf formats an error of the given kind. %w verbs are honoured.
func Newf(kind Kind, format string, args ...any) error {
	wrapped := fmt.Errorf(format, args...)
	return &kindError{kind: kind, msg: wrapped.Error(), err: wrapped}
}

// Wrap tags err with kind without changing its message. A nil err stays nil and
// an error that already carries a kind keeps it.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != KindInternal || stderrors.Is(err, ErrInternal) {
		return err
	}
	return &kindError{kind: kind, msg: err.Error(), err: err}
}

// KindOf reports the kind carried by err. Untagged errors are Internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case stderrors.Is(err, ErrNotFound):
		return KindNotFound
	case stderrors.Is(err, ErrConflict):
		return KindConflict
	case stderrors.Is(err, ErrTransient):
		return KindTransient
	default:
		return KindInternal
	}
}

// Retryable is true only for transient failures.
func Retryable(err error) bool {
	return KindOf(err) == KindTransient
}

func sentinelFor(kind Kind) error {
	switch kind {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindTransient:
		return ErrTransient
	default:
		return ErrInternal
	}
}

// ProblemFromError maps any error onto a ProblemDetail by its kind.
// Internal errors never expose the underlying message.
func ProblemFromError(err error) ProblemDetail {
	var problem ProblemDetail
	if stderrors.As(err, &problem) {
		return problem
	}
	switch KindOf(err) {
	case KindInvalidInput:
		return ProblemValidation.WithDetail(err.Error())
	case KindNotFound:
		return ProblemNotFound.WithDetail(err.Error())
	case KindConflict:
		return ProblemConflict.WithDetail(err.Error())
	case KindTransient:
		return ProblemUnavailable.WithDetail(err.Error()).WithExtension("retryable", true)
	default:
		return ProblemInternal.WithDetail(http.StatusText(http.StatusInternalServerError))
	}
}
