package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconStop     = "■"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconClose    = "×"
)

// Layout sizing
const (
	JobEntryMinHeight float32 = 160
	LogMinHeight      float32 = 220
	FormLabelWidth    float32 = 150
	SecondsEntryWidth float32 = 60
	DialogWidth       float32 = 520
	DialogHeight      float32 = 320
)

// Log view limits
const (
	// MaxLogLines bounds the log view; the oldest lines are dropped first
	MaxLogLines = 2000
)

// Job files
const (
	DefaultJobFile  = "links.txt"
	JobFileExt      = ".txt"
	CloseWaitPeriod = 3 * time.Second
)
