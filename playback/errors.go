package playback

// PlaybackError is an engine failure surfaced through the error event.
type PlaybackError struct {
	Message string
	Err     error
}

func newPlaybackError(err error) *PlaybackError {
	msg := "playback failed"
	if err != nil {
		msg = err.Error()
	}
	return &PlaybackError{Message: msg, Err: err}
}

func (e *PlaybackError) Error() string {
	return e.Message
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}
