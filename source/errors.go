package source

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an identifier could not be resolved.
type ErrorKind int

const (
	MissingCredential ErrorKind = iota + 1
	CorsBlocked
	NotFound
	NoStreamAvailable
)

func (k ErrorKind) String() string {
	switch k {
	case MissingCredential:
		return "missing credential"
	case CorsBlocked:
		return "blocked by origin policy"
	case NotFound:
		return "not found"
	case NoStreamAvailable:
		return "no stream available"
	default:
		return "unknown"
	}
}

// ResolutionError is returned by the resolver. Match it with errors.Is
// against the Err* sentinels, or errors.As to read the kind and cause.
type ResolutionError struct {
	Kind ErrorKind
	ID   string
	Err  error
}

// Sentinels for errors.Is.
var (
	ErrMissingCredential = &ResolutionError{Kind: MissingCredential}
	ErrCorsBlocked       = &ResolutionError{Kind: CorsBlocked}
	ErrNotFound          = &ResolutionError{Kind: NotFound}
	ErrNoStreamAvailable = &ResolutionError{Kind: NoStreamAvailable}
)

// NewResolutionError builds an error of the given kind for video id.
func NewResolutionError(kind ErrorKind, id string, cause error) *ResolutionError {
	return &ResolutionError{Kind: kind, ID: id, Err: cause}
}

func (e *ResolutionError) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case MissingCredential:
		msg = "an access token is required to load this video"
	case NoStreamAvailable:
		msg = "no HLS stream available for this video"
	}
	if e.ID != "" {
		msg = fmt.Sprintf("%s (video %s)", msg, e.ID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is matches any ResolutionError of the same kind.
func (e *ResolutionError) Is(target error) bool {
	var t *ResolutionError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}
