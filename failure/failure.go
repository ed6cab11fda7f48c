// Package failure defines the tagged error returned by the encoding and
// export operations, so that callers can tell an encoding problem apart from
// a filesystem one without parsing messages.
package failure

import (
	"errors"
	"fmt"
)

// Kind identifies which operation produced an Error.
type Kind int

const (
	// KindEncoding is a payload that cannot be represented as a QR symbol.
	KindEncoding Kind = iota + 1
	// KindIO is a filesystem failure while exporting.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindEncoding:
		return "encoding"
	case KindIO:
		return "io"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	// ErrEncoding matches any Error of KindEncoding via errors.Is.
	ErrEncoding = errors.New("encoding error")
	// ErrIO matches any Error of KindIO via errors.Is.
	ErrIO = errors.New("io error")
)

// Error is a tagged error carrying a Kind, a human-readable reason and an
// optional cause.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Reason == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	default:
		return e.Reason
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrEncoding:
		return e.Kind == KindEncoding
	case ErrIO:
		return e.Kind == KindIO
	}

	return false
}

// Encoding creates an encoding error with the given reason.
func Encoding(reason string) error {
	return &Error{Kind: KindEncoding, Reason: reason}
}

// Encodingf creates an encoding error with a formatted reason.
func Encodingf(format string, args ...any) error {
	return &Error{Kind: KindEncoding, Reason: fmt.Sprintf(format, args...)}
}

// WrapEncoding tags err as an encoding error. A nil err yields nil.
func WrapEncoding(err error, reason string) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: KindEncoding, Reason: reason, Err: err}
}

// IO tags err as a filesystem error. The message stays that of err. A nil err
// yields nil.
func IO(err error) error {
	if err == nil {
		return nil
	}

	return &Error{Kind: KindIO, Err: err}
}

// KindOf returns the Kind of the first Error in err's chain, or 0 if there is
// none.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}

	return 0
}
