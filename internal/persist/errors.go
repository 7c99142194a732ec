package persist

import (
	"errors"
	"fmt"
)

// Kind classifies a persistence failure.
type Kind int

const (
	// KindPathResolution means the per-user data directory could not be determined.
	KindPathResolution Kind = iota + 1
	// KindCorruptStore means the store file exists but cannot be decoded.
	KindCorruptStore
	// KindIO means a read, write or delete failed for another reason.
	KindIO
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrPathResolution = errors.New("cannot resolve local data directory")
	ErrCorruptStore   = errors.New("corrupt store file")
	ErrIO             = errors.New("store i/o failure")
)

func (k Kind) String() string {
	switch k {
	case KindPathResolution:
		return "path resolution"
	case KindCorruptStore:
		return "corrupt store"
	case KindIO:
		return "i/o"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindPathResolution:
		return ErrPathResolution
	case KindCorruptStore:
		return ErrCorruptStore
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// Error is returned by every fallible persistence operation.
type Error struct {
	Kind Kind
	Op   string // "resolve", "load", "save" or "clear"
	Path string // empty when the path itself could not be resolved
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if s := e.Kind.sentinel(); s != nil {
		msg += ": " + s.Error()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain, or zero.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return 0
}

func newError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
