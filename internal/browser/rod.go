package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ytget/page-downloader/internal/model"
)

// RodLauncher starts Chromium-family browsers over the DevTools protocol.
// It needs no driver install; rod fetches a browser when no executable is set.
type RodLauncher struct {
	settle time.Duration
}

// NewRodLauncher creates a launcher with the default settle delay
func NewRodLauncher() *RodLauncher {
	return &RodLauncher{settle: DefaultSettleDelay}
}

// Launch starts a browser process and connects to it
func (l *RodLauncher) Launch(ctx context.Context, opts LaunchOptions) (Session, error) {
	if opts.Engine != model.EngineChromium {
		return nil, fmt.Errorf("%w: rod driver supports chromium-family browsers only, got %s", ErrSessionStart, opts.Engine)
	}

	proc := launcher.New().Context(ctx).Headless(opts.Headless)
	if opts.ExecutablePath != "" {
		proc = proc.Bin(opts.ExecutablePath)
	}

	controlURL, err := proc.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch chromium: %w", ErrSessionStart, err)
	}

	browser := rod.New().ControlURL(controlURL).SlowMotion(opts.SlowMo)
	if err := browser.Connect(); err != nil {
		proc.Kill()
		return nil, fmt.Errorf("%w: connect: %w", ErrSessionStart, err)
	}

	staging, err := os.MkdirTemp("", "page-downloader-*")
	if err != nil {
		_ = browser.Close()
		proc.Kill()
		return nil, fmt.Errorf("%w: staging dir: %w", ErrSessionStart, err)
	}

	return &rodSession{
		browser: browser,
		proc:    proc,
		staging: staging,
		settle:  l.settle,
	}, nil
}

type rodSession struct {
	browser *rod.Browser
	proc    *launcher.Launcher
	staging string
	settle  time.Duration
}

func (s *rodSession) NewPage(ctx context.Context) (Page, error) {
	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: new page: %w", ErrSessionStart, err)
	}
	return &rodPage{browser: s.browser, page: page, staging: s.staging, settle: s.settle}, nil
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.proc.Cleanup()
	return errors.Join(err, os.RemoveAll(s.staging))
}

type rodPage struct {
	browser *rod.Browser
	page    *rod.Page
	staging string
	settle  time.Duration
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return wrapErr(ErrNavigation, err, ctx.Err() != nil)
	}
	if err := page.WaitLoad(); err != nil {
		return wrapErr(ErrNavigation, err, ctx.Err() != nil)
	}

	if p.settle > 0 {
		select {
		case <-time.After(p.settle):
		case <-ctx.Done():
		}
	}
	return nil
}

func (p *rodPage) Count(ctx context.Context, selector string) (int, error) {
	elements, err := p.find(ctx, selector)
	if err != nil {
		return 0, err
	}
	return len(elements), nil
}

func (p *rodPage) ClickForDownload(ctx context.Context, selector string) (Download, error) {
	elements, err := p.find(ctx, selector)
	if err != nil {
		return nil, err
	}
	if elements.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, selector)
	}

	wait := p.browser.Context(ctx).WaitDownload(p.staging)
	if err := elements.First().Context(ctx).Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, wrapErr(ErrSaveFailed, err, ctx.Err() != nil)
	}

	info := wait()
	if ctx.Err() != nil {
		return nil, wrapErr(ErrSaveFailed, ctx.Err(), true)
	}
	if info == nil {
		return nil, fmt.Errorf("%w: no download started", ErrSaveFailed)
	}

	return &rodDownload{
		path: filepath.Join(p.staging, info.GUID),
		name: info.SuggestedFilename,
	}, nil
}

func (p *rodPage) find(ctx context.Context, selector string) (rod.Elements, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}

	page := p.page.Context(ctx)
	switch sel.Kind {
	case SelectorXPath:
		return page.ElementsX(sel.Expr)
	case SelectorCSS:
		return page.Elements(sel.Expr)
	default:
		return nil, fmt.Errorf("%w: %s selector %q", ErrUnsupportedSelector, sel.Kind, selector)
	}
}

// rodDownload is a completed download sitting in the staging directory under
// its GUID until SaveAs moves it.
type rodDownload struct {
	path string
	name string
}

func (d *rodDownload) SuggestedFilename() string {
	return d.name
}

func (d *rodDownload) SaveAs(path string) error {
	if err := os.Rename(d.path, path); err == nil {
		return nil
	}

	// Rename fails across filesystems
	src, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("open staged download: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy download: %w", err)
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return os.Remove(d.path)
}
