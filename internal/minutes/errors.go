// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package minutes

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure recorded by the Generator matches one of these
// with errors.Is.
var (
	// ErrConfiguration means the credential is missing or the client could
	// not be built. It blocks every other operation until fixed.
	ErrConfiguration = errors.New("configuration error")

	// ErrConnectivity means the provider probe failed (network, auth, quota).
	ErrConnectivity = errors.New("connectivity error")

	// ErrGeneration means the completion call failed or its body was not
	// usable.
	ErrGeneration = errors.New("generation error")

	// ErrSchema means the completion body was valid JSON but did not have the
	// minutes shape. It also matches ErrGeneration.
	ErrSchema = fmt.Errorf("%w: response does not match the minutes schema", ErrGeneration)
)

// Error is a classified failure. Its message is the human-readable cause
// shown to users; Kind is one of the sentinel errors above.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func newError(kind error, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
