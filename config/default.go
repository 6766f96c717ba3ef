package config

import "github.com/vhls-cli/vhls/key"

// Default maps every key to its field.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to VHLS_* variables.
var EnvExposed []string

var sections = [][]Field{
	// player
	{
		{key.PlayerAutoplay, false, "Start playback as soon as the stream is loaded"},
		{key.PlayerMuted, false, "Start with audio muted"},
		{key.PlayerShowControls, true, "Render the interactive control surface"},
		{key.PlayerAspectRatio, "16:9", "Aspect ratio used to reserve layout space, as W:H"},
		{key.PlayerPauseWhenOutOfView, true, "Pause playback when less than half of the player is visible.\nPlayback is never resumed automatically"},
		{key.PlayerEngine, "mpv", "Media engine used for decoding and playback"},
	},
	// controls
	{
		{key.ControlsHoverDebounceMs, 100, "Delay before the hover state turns inactive after the pointer leaves, in milliseconds"},
		{key.ControlsAutoHideMs, 3000, "Idle time before controls hide while playing, in milliseconds"},
		{key.ControlsSeekStepSeconds, 5, "Seconds skipped by the left/right keys"},
		{key.ControlsVolumeStep, 0.1, "Volume change applied by the up/down keys. From 0 to 1"},
		{key.VisibilityThreshold, 0.5, "Visible fraction of the player below which playback is paused. From 0 to 1"},
	},
	// resolver
	{
		{key.ResolverTimeoutSeconds, 30, "Time limit for resolving a video identifier, in seconds"},
		{key.ResolverReferer, "", "Referer sent to the player configuration endpoint.\nSet it to the domain a privacy-restricted video is embedded on"},
		{key.ResolverFingerprint, true, "Use a browser TLS fingerprint when reading the embeddable player configuration"},
		{key.ResolverPosterCache, true, "Cache public poster lookups on disk"},
		{key.RecentSave, true, "Remember played inputs for shell completion"},
	},
	// cli and logs
	{
		{key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)"},
		{key.LogsWrite, false, "Write logs"},
		{key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace"},
		{key.LogsJson, false, "Use json format for logs"},
		{key.CliColored, true, "Enable colored CLI output"},
		{key.CliVersionCheck, true, "Check for a newer release when showing help or the version"},
	},
}

func init() {
	for _, fields := range sections {
		for _, f := range fields {
			if _, dup := Default[f.Key]; dup {
				panic("duplicate config key: " + f.Key)
			}
			Default[f.Key] = f
			EnvExposed = append(EnvExposed, f.Key)
		}
	}
}
