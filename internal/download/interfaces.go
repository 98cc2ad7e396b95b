package download

import (
	"context"

	"github.com/ytget/page-downloader/internal/browser"
	"github.com/ytget/page-downloader/internal/model"
)

// Downloader runs one job to completion.
type Downloader interface {
	Run(ctx context.Context, job model.Job, cfg model.RunConfig, stop StopSignal) model.RunResult
}

// StopSignal is a cooperative stop request observed at checkpoints.
type StopSignal interface {
	// StopRequested reports whether a stop was requested
	StopRequested() bool
	// Done is closed once a stop is requested
	Done() <-chan struct{}
}

// EventLogger receives operator-facing progress events.
type EventLogger interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}

// LauncherFactory returns the browser launcher for a driver.
type LauncherFactory func(driver model.Driver) (browser.Launcher, error)
