package apperrors

import "errors"

// Kind classifies a service-level failure so the transport layer can pick a
// status code without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalid
	KindConflict
)

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	return e.kind
}

func NotFound(msg string) *Error {
	return &Error{kind: KindNotFound, msg: msg}
}

func Invalid(msg string) *Error {
	return &Error{kind: KindInvalid, msg: msg}
}

func Conflict(msg string) *Error {
	return &Error{kind: KindConflict, msg: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{kind: KindInternal, msg: msg, err: err}
}

// KindOf reports the classification of err, defaulting to KindInternal for
// anything the service layer did not classify itself.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
func IsInvalid(err error) bool  { return KindOf(err) == KindInvalid }
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
