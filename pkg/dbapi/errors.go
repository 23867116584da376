package dbapi

import "fmt"

// ErrorKind distinguishes the two failure kinds spec.md defines for
// this adapter. Every other anomaly is absorbed by the caller instead
// of raised as an error.
type ErrorKind int

const (
	// NotFound covers an unknown server, a missing path segment, a
	// mid-path traversal into a non-container, and an ID-path that
	// resolves to a non-music item.
	NotFound ErrorKind = iota
	// BadResource covers a getMetadata call that returned other than
	// exactly one object.
	BadResource
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "NOT_FOUND"
	case BadResource:
		return "BAD_RESOURCE"
	default:
		return "UNKNOWN"
	}
}

// DatabaseError is the error type raised by this adapter's Database
// methods. Only NotFound is meant to be surfaced through a host's
// dedicated NOT_FOUND error channel; BadResource should be treated as
// a generic runtime error.
type DatabaseError struct {
	Kind ErrorKind
	Msg  string
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// NewNotFound builds a NotFound DatabaseError.
func NewNotFound(msg string) error {
	return &DatabaseError{Kind: NotFound, Msg: msg}
}

// NewBadResource builds a BadResource DatabaseError.
func NewBadResource(msg string) error {
	return &DatabaseError{Kind: BadResource, Msg: msg}
}

// IsNotFound reports whether err is a NotFound DatabaseError.
func IsNotFound(err error) bool {
	dbErr, ok := err.(*DatabaseError)
	return ok && dbErr.Kind == NotFound
}
