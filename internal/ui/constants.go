package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Text fragments
const (
	ParagraphSeparator = "\n\n"
	ListSeparator      = ", "
	UnknownHeight      = "??p"
	UnknownExt         = "???"
	ApproxSizePrefix   = "~"
	PercentFormat      = "%d%%"
)

// Rendering limits
const (
	DescriptionLimit = 300

	// Formats at or below this rate are the norm and are not labelled
	HighFrameRate = 30
)

// Layout sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 700

	InfoMinHeight       float32 = 300
	SettingsDialogWidth float32 = 500
	SettingsDialogH     float32 = 320
)
