// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Player Defaults - these keys seed the construction options of a player instance.
const (
	PlayerAutoplay           = "player.autoplay"
	PlayerMuted              = "player.muted"
	PlayerShowControls       = "player.show_controls"
	PlayerAspectRatio        = "player.aspect_ratio"
	PlayerPauseWhenOutOfView = "player.pause_when_out_of_view"
	PlayerEngine             = "player.engine"
)

// Control Surface - these keys tune the timing and step sizes of the interactive controls.
const (
	ControlsHoverDebounceMs = "controls.hover_debounce_ms"
	ControlsAutoHideMs      = "controls.auto_hide_ms"
	ControlsSeekStepSeconds = "controls.seek_step_seconds"
	ControlsVolumeStep      = "controls.volume_step"
)

// Visibility - these keys configure the viewport gate.
const (
	VisibilityThreshold = "visibility.threshold"
)

// Source Resolution - these keys govern the tiered lookup against the hosting service.
const (
	ResolverTimeoutSeconds = "resolver.timeout_seconds"
	ResolverReferer        = "resolver.referer"
	ResolverFingerprint    = "resolver.fingerprint"
	ResolverPosterCache    = "resolver.poster_cache"
)

// Recent Inputs - these keys configure the persisted input history.
const (
	RecentSave = "recent.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
