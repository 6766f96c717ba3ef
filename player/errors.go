package player

import "errors"

// ConstructionError is returned synchronously by New when an instance cannot
// be built at all. It is not recoverable.
type ConstructionError struct {
	Reason string
	Err    error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return "cannot create player: " + e.Reason + ": " + e.Err.Error()
	}
	return "cannot create player: " + e.Reason
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// IsConstructionError reports whether err is a *ConstructionError.
func IsConstructionError(err error) bool {
	var ce *ConstructionError
	return errors.As(err, &ce)
}
