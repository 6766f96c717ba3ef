package playback

// Status is the primary playback state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusPlaying
	StatusPaused
	StatusEnded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of one player instance. Volume is always in [0,1].
type State struct {
	Status           Status  `json:"status"`
	CurrentTime      float64 `json:"currentTime"`
	Duration         float64 `json:"duration"`
	BufferedFraction float64 `json:"bufferedFraction"`
	Volume           float64 `json:"volume"`
	Muted            bool    `json:"muted"`
	Fullscreen       bool    `json:"fullscreen"`
	// Activated becomes true the first time playback starts in a load cycle.
	Activated bool `json:"activated"`
}

// Progress is CurrentTime as a fraction of Duration, 0 when unknown.
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return clampUnit(s.CurrentTime / s.Duration)
}
