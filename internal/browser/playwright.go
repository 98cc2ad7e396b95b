package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/ytget/page-downloader/internal/model"
)

// Playwright defaults
const (
	// DefaultSettleDelay gives dynamic pages time to render after load
	DefaultSettleDelay = time.Second
	// fallbackTimeout is used when a context carries no deadline
	fallbackTimeout = 30 * time.Second
)

// PlaywrightLauncher starts sessions through playwright-go. The Playwright
// driver and browsers must be installed, see InstallPlaywright.
type PlaywrightLauncher struct {
	settle time.Duration
}

// NewPlaywrightLauncher creates a launcher with the default settle delay
func NewPlaywrightLauncher() *PlaywrightLauncher {
	return &PlaywrightLauncher{settle: DefaultSettleDelay}
}

// InstallPlaywright downloads the Playwright driver and the given browsers
func InstallPlaywright(browsers ...string) error {
	if len(browsers) == 0 {
		browsers = []string{string(model.EngineChromium)}
	}
	return playwright.Install(&playwright.RunOptions{Browsers: browsers})
}

// Launch starts Playwright and a browser with a download-enabled context
func (l *PlaywrightLauncher) Launch(ctx context.Context, opts LaunchOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapErr(ErrSessionStart, err, false)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: start playwright: %w", ErrSessionStart, err)
	}

	var browserType playwright.BrowserType
	switch opts.Engine {
	case model.EngineFirefox:
		browserType = pw.Firefox
	case model.EngineWebKit:
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
	}
	if opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ExecutablePath)
	}

	browser, err := browserType.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("%w: launch %s: %w", ErrSessionStart, opts.Engine, err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		AcceptDownloads: playwright.Bool(true),
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("%w: new context: %w", ErrSessionStart, err)
	}

	return &playwrightSession{
		pw:      pw,
		browser: browser,
		context: browserCtx,
		settle:  l.settle,
	}, nil
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	settle  time.Duration
}

func (s *playwrightSession) NewPage(ctx context.Context) (Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("%w: new page: %w", ErrSessionStart, err)
	}
	return &playwrightPage{page: page, settle: s.settle}, nil
}

func (s *playwrightSession) Close() error {
	return errors.Join(s.context.Close(), s.browser.Close(), s.pw.Stop())
}

type playwrightPage struct {
	page   playwright.Page
	settle time.Duration
}

func (p *playwrightPage) Navigate(ctx context.Context, url string) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(timeoutMillis(ctx)),
	})
	if err != nil {
		return wrapErr(ErrNavigation, err, errors.Is(err, playwright.ErrTimeout))
	}
	if p.settle > 0 {
		p.page.WaitForTimeout(float64(p.settle.Milliseconds()))
	}
	return nil
}

func (p *playwrightPage) Count(ctx context.Context, selector string) (int, error) {
	count, err := p.page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", selector, err)
	}
	return count, nil
}

func (p *playwrightPage) ClickForDownload(ctx context.Context, selector string) (Download, error) {
	target := p.page.Locator(selector).First()
	download, err := p.page.ExpectDownload(func() error {
		return target.Click()
	}, playwright.PageExpectDownloadOptions{
		Timeout: playwright.Float(timeoutMillis(ctx)),
	})
	if err != nil {
		return nil, wrapErr(ErrSaveFailed, err, errors.Is(err, playwright.ErrTimeout))
	}
	return download, nil
}

// timeoutMillis converts the remaining time of ctx into a Playwright timeout
func timeoutMillis(ctx context.Context) float64 {
	deadline, ok := ctx.Deadline()
	if !ok {
		return float64(fallbackTimeout.Milliseconds())
	}
	remaining := time.Until(deadline).Milliseconds()
	if remaining < 1 {
		remaining = 1
	}
	return float64(remaining)
}
