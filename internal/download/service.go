package download

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ytget/page-downloader/internal/browser"
	"github.com/ytget/page-downloader/internal/model"
	"github.com/ytget/page-downloader/internal/platform"
)

// Banner and separator widths
const (
	BannerWidth    = 50
	SeparatorWidth = 40
)

// DefaultSlowMo slows browser input so pages can react to clicks
const DefaultSlowMo = 100 * time.Millisecond

// Service runs download jobs
type Service struct {
	newLauncher LauncherFactory
	events      EventLogger
	logger      *slog.Logger
	printer     *message.Printer
	slowMo      time.Duration
}

// NewService creates a new download service
func NewService(newLauncher LauncherFactory, events EventLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		newLauncher: newLauncher,
		events:      events,
		logger:      logger,
		printer:     message.NewPrinter(language.English),
		slowMo:      DefaultSlowMo,
	}
}

// SetSlowMo changes the delay the browser inserts between input actions
func (s *Service) SetSlowMo(d time.Duration) {
	s.slowMo = d
}

// Run processes job in order and returns the tally. It never panics on
// browser failures; only a failure to start the browser ends the run early
// with Fatal set.
func (s *Service) Run(ctx context.Context, job model.Job, cfg model.RunConfig, stop StopSignal) model.RunResult {
	result := model.RunResult{Total: len(job), FailedURLs: []string{}}

	if err := platform.CreateDirectoryIfNotExists(cfg.DownloadDir); err != nil {
		s.events.Error("Cannot create download folder %s: %v", cfg.DownloadDir, err)
		result.Fatal = true
		s.summary(result)
		return result
	}

	s.banner(job, cfg)

	session, page, err := s.startSession(ctx, cfg)
	if err != nil {
		s.events.Error("Browser error: %v", err)
		s.logger.Error("browser session failed", "error", err, "driver", cfg.Driver, "engine", cfg.Engine)
		result.Fatal = true
		s.summary(result)
		return result
	}

	for index, url := range job {
		if s.stopped(ctx, stop) {
			s.events.Warning("Download stopped by user")
			result.Cancelled = true
			break
		}

		s.events.Info("%s", strings.Repeat("-", SeparatorWidth))
		s.events.Info("Processing URL %d/%d", index+1, len(job))

		success, cancelled := s.processItem(ctx, page, url, cfg, stop)
		if cancelled {
			s.events.Warning("Download stopped by user")
			result.Cancelled = true
			break
		}

		if success {
			result.Succeeded++
		} else {
			result.Failed++
			result.FailedURLs = append(result.FailedURLs, url)
		}

		if index < len(job)-1 && !s.stopped(ctx, stop) {
			s.events.Info("Waiting %s...", formatDelay(cfg.Delay))
			s.wait(ctx, cfg.Delay, stop)
		}
	}

	s.events.Info("Closing browser...")
	if err := session.Close(); err != nil {
		s.logger.Warn("browser close failed", "error", err)
	}

	s.summary(result)
	return result
}

// processItem runs the retry sequence for one address. cancelled is true
// when a stop request ended the sequence before an outcome was reached.
func (s *Service) processItem(ctx context.Context, page browser.Page, url string, cfg model.RunConfig, stop StopSignal) (success, cancelled bool) {
	attempts := cfg.Attempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		if s.stopped(ctx, stop) {
			return false, true
		}

		if s.attempt(ctx, page, url, attempt, attempts, cfg) {
			return true, false
		}

		if attempt < attempts {
			if s.stopped(ctx, stop) {
				return false, true
			}
			s.events.Info("Retrying in %s...", formatDelay(cfg.Delay))
			s.wait(ctx, cfg.Delay, stop)
		}
	}
	return false, false
}

// attempt performs one navigate, locate, click and save cycle
func (s *Service) attempt(ctx context.Context, page browser.Page, url string, attempt, attempts int, cfg model.RunConfig) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.events.Error("✗ Error: %v", r)
			s.logger.Error("browser call panicked", "url", url, "panic", r)
			ok = false
		}
	}()

	s.events.Info("[Attempt %d/%d] Opening: %s", attempt, attempts, url)

	navCtx, cancel := context.WithTimeout(ctx, cfg.PageTimeout)
	err := page.Navigate(navCtx, url)
	cancel()
	if err != nil {
		s.reportFailure(err)
		return false
	}
	s.events.Info("Page loaded successfully")

	count, err := page.Count(ctx, cfg.Selector)
	if err != nil {
		s.reportFailure(err)
		return false
	}
	if count == 0 {
		s.events.Warning("Download button not found: %s", cfg.Selector)
		return false
	}
	s.events.Info("Found download button, initiating download...")

	dlCtx, cancel := context.WithTimeout(ctx, cfg.DownloadTimeout)
	download, err := page.ClickForDownload(dlCtx, cfg.Selector)
	cancel()
	if err != nil {
		s.reportFailure(err)
		return false
	}

	filename := platform.SanitizeFileName(download.SuggestedFilename())
	s.events.Info("Downloading: %s", filename)

	savePath := filepath.Join(cfg.DownloadDir, filename)
	if err := download.SaveAs(savePath); err != nil {
		s.reportFailure(fmt.Errorf("%w: %s: %w", browser.ErrSaveFailed, filename, err))
		return false
	}

	size, err := platform.FileSize(savePath)
	if err != nil {
		s.events.Error("✗ File not saved: %s", filename)
		return false
	}

	s.events.Success("✓ Complete: %s (%s bytes)", filename, s.printer.Sprintf("%d", size))
	return true
}

func (s *Service) startSession(ctx context.Context, cfg model.RunConfig) (browser.Session, browser.Page, error) {
	launcher, err := s.newLauncher(cfg.Driver)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", browser.ErrSessionStart, err)
	}

	opts := browser.LaunchOptions{
		Engine:   browser.ResolveEngine(cfg.Engine, cfg.BrowserPath),
		Headless: cfg.Headless,
		SlowMo:   s.slowMo,
	}
	if cfg.BrowserPath != "" {
		if platform.FileExists(cfg.BrowserPath) {
			opts.ExecutablePath = cfg.BrowserPath
			s.events.Info("Using custom browser: %s", cfg.BrowserPath)
		} else {
			s.events.Warning("Custom browser not found, using bundled %s: %s", opts.Engine, cfg.BrowserPath)
		}
	}

	s.events.Info("Launching browser...")
	session, err := launcher.Launch(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	page, err := session.NewPage(ctx)
	if err != nil {
		_ = session.Close()
		return nil, nil, err
	}
	return session, page, nil
}

func (s *Service) reportFailure(err error) {
	if browser.IsTimeout(err) {
		s.events.Error("✗ Timeout: %v", err)
		return
	}
	s.events.Error("✗ Error: %v", err)
}

// stopped reports whether the run must end at this checkpoint
func (s *Service) stopped(ctx context.Context, stop StopSignal) bool {
	if ctx.Err() != nil {
		return true
	}
	return stop != nil && stop.StopRequested()
}

// wait sleeps for d, returning early when a stop is requested
func (s *Service) wait(ctx context.Context, d time.Duration, stop StopSignal) {
	if d <= 0 {
		return
	}

	var stopCh <-chan struct{}
	if stop != nil {
		stopCh = stop.Done()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-stopCh:
	case <-ctx.Done():
	}
}

func (s *Service) banner(job model.Job, cfg model.RunConfig) {
	line := strings.Repeat("=", BannerWidth)
	s.events.Info("%s", line)
	s.events.Info("Starting downloads...")
	s.events.Info("URLs to process: %d", len(job))
	s.events.Info("Download folder: %s", cfg.DownloadDir)
	s.events.Info("Button selector: %s", cfg.Selector)
	if sel, err := browser.ParseSelector(cfg.Selector); err != nil {
		s.events.Warning("Selector check: %v", err)
	} else if sel.Kind != browser.SelectorCSS {
		s.events.Info("Selector type: %s", sel.Kind)
	}

	browserLine := fmt.Sprintf("Browser: %s via %s", cfg.Engine, driverName(cfg.Driver))
	if cfg.BrowserPath != "" {
		browserLine += fmt.Sprintf(" (%s)", cfg.BrowserPath)
	}
	s.events.Info("%s", browserLine)
	s.events.Info("%s", line)
}

func (s *Service) summary(result model.RunResult) {
	line := strings.Repeat("=", BannerWidth)
	s.events.Info("%s", line)
	s.events.Info("DOWNLOAD SUMMARY")
	s.events.Info("%s", line)

	totals := fmt.Sprintf("Total: %d | Success: %d | Failed: %d", result.Total, result.Succeeded, result.Failed)
	if skipped := result.Skipped(); skipped > 0 {
		totals += fmt.Sprintf(" | Skipped: %d", skipped)
	}
	s.events.Info("%s", totals)

	if len(result.FailedURLs) > 0 {
		s.events.Info("Failed URLs:")
		for _, url := range result.FailedURLs {
			s.events.Info("  - %s", url)
		}
	}

	s.events.Info("%s", line)
	s.events.Info("Done!")
}

func driverName(driver model.Driver) string {
	if driver == "" {
		return string(model.DriverPlaywright)
	}
	return string(driver)
}

// formatDelay renders whole-second delays as "2 seconds" and anything else
// with time.Duration formatting
func formatDelay(d time.Duration) string {
	if d > 0 && d%time.Second == 0 {
		return fmt.Sprintf("%d seconds", int(d/time.Second))
	}
	return d.String()
}
