package ui

// Package ui contains the Fyne-based desktop user interface. It edits the job
// buffer and run settings, starts and stops runs through a RunController and
// renders the progress log. All UI strings are localized via Localization.
