package browser

import (
	"context"
	"time"

	"github.com/ytget/page-downloader/internal/model"
)

// LaunchOptions describes how a browser session is started
type LaunchOptions struct {
	// Engine is the resolved engine family (never EngineCustom)
	Engine         model.BrowserEngine
	ExecutablePath string
	Headless       bool
	SlowMo         time.Duration
}

// Launcher starts browser sessions.
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Session, error)
}

// Session is a running browser with a download-enabled context.
type Session interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is a single tab. Calls are not safe for concurrent use.
type Page interface {
	// Navigate loads url and waits until the page settles or ctx expires
	Navigate(ctx context.Context, url string) error
	// Count returns the number of elements matching selector
	Count(ctx context.Context, selector string) (int, error)
	// ClickForDownload clicks the first match and waits for the resulting
	// file download until ctx expires
	ClickForDownload(ctx context.Context, selector string) (Download, error)
}

// Download is a finished browser download that has not been placed yet.
type Download interface {
	SuggestedFilename() string
	SaveAs(path string) error
}
