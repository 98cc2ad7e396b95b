package model

import (
	"time"

	"github.com/google/uuid"
)

// BrowserEngine selects the browser family used for a run
type BrowserEngine string

const (
	EngineChromium BrowserEngine = "chromium"
	EngineFirefox  BrowserEngine = "firefox"
	EngineWebKit   BrowserEngine = "webkit"
	EngineCustom   BrowserEngine = "custom"
)

// EngineOptions returns the engine choices in display order
func EngineOptions() []BrowserEngine {
	return []BrowserEngine{EngineChromium, EngineFirefox, EngineWebKit, EngineCustom}
}

// Driver selects the automation backend that controls the browser
type Driver string

const (
	// DriverPlaywright drives Chromium, Firefox and WebKit through Playwright
	DriverPlaywright Driver = "playwright"
	// DriverRod drives Chromium-family browsers directly over CDP
	DriverRod Driver = "rod"
)

// DriverOptions returns the driver choices in display order
func DriverOptions() []Driver {
	return []Driver{DriverPlaywright, DriverRod}
}

// RunConfig is the immutable parameter snapshot for one run. It is passed by
// value so later changes to UI controls never reach an in-flight run.
type RunConfig struct {
	DownloadDir     string        `validate:"required"`
	Selector        string        `validate:"required"`
	MaxRetries      int           `validate:"gte=0"`
	Delay           time.Duration `validate:"gte=0"`
	PageTimeout     time.Duration `validate:"gt=0"`
	DownloadTimeout time.Duration `validate:"gt=0"`
	Headless        bool
	Engine          BrowserEngine `validate:"oneof=chromium firefox webkit custom"`
	BrowserPath     string
	Driver          Driver `validate:"oneof=playwright rod"`
}

// Attempts returns the number of attempts made per item
func (c RunConfig) Attempts() int {
	if c.MaxRetries < 0 {
		return 1
	}
	return c.MaxRetries + 1
}

// RunResult is the tally produced once per run
type RunResult struct {
	Total      int
	Succeeded  int
	Failed     int
	FailedURLs []string
	// Cancelled is set when a stop request ended the run early
	Cancelled bool
	// Fatal is set when the browser session could not be started
	Fatal bool
}

// Processed returns the number of items that reached an outcome
func (r RunResult) Processed() int {
	return r.Succeeded + r.Failed
}

// Skipped returns the number of items never processed because the run ended early
func (r RunResult) Skipped() int {
	return r.Total - r.Processed()
}

// NewRunID generates a unique identifier for a run
func NewRunID() string {
	return "run-" + uuid.New().String()
}
