package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ytget/page-downloader/internal/browser"
	"github.com/ytget/page-downloader/internal/model"
)

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeNavFail
	outcomeNotFound
	outcomeSaveTimeout
	outcomeFileMissing
	outcomePanic
)

// fakeLauncher is a deterministic browser layer driven by a per-attempt script
type fakeLauncher struct {
	launchErr error
	page      *fakePage

	mu       sync.Mutex
	launches int
	lastOpts browser.LaunchOptions
	closed   bool
}

func newFakeLauncher(script func(url string, attempt int) outcome) *fakeLauncher {
	return &fakeLauncher{page: &fakePage{
		script:   script,
		attempts: make(map[string]int),
		content:  []byte("file-content"),
	}}
}

func (l *fakeLauncher) factory() LauncherFactory {
	return func(model.Driver) (browser.Launcher, error) { return l, nil }
}

func (l *fakeLauncher) Launch(ctx context.Context, opts browser.LaunchOptions) (browser.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launches++
	l.lastOpts = opts
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	return l, nil
}

func (l *fakeLauncher) NewPage(ctx context.Context) (browser.Page, error) {
	return l.page, nil
}

func (l *fakeLauncher) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	return nil
}

type fakePage struct {
	script  func(url string, attempt int) outcome
	content []byte
	// suggestedName overrides the default name derived from the URL
	suggestedName string

	onNavigate func(url string, attempt int)
	onSaved    func(path string)

	attempts    map[string]int
	navigations []string
	clicks      int
	saves       int
	current     outcome
	currentURL  string
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.attempts[url]++
	attempt := p.attempts[url]
	p.navigations = append(p.navigations, url)
	p.currentURL = url
	p.current = p.script(url, attempt)

	if p.onNavigate != nil {
		p.onNavigate(url, attempt)
	}

	switch p.current {
	case outcomeNavFail:
		return fmt.Errorf("%w: net::ERR_CONNECTION_REFUSED", browser.ErrNavigation)
	case outcomePanic:
		panic("renderer crashed")
	}
	return nil
}

func (p *fakePage) Count(ctx context.Context, selector string) (int, error) {
	if p.current == outcomeNotFound {
		return 0, nil
	}
	return 1, nil
}

func (p *fakePage) ClickForDownload(ctx context.Context, selector string) (browser.Download, error) {
	p.clicks++
	if p.current == outcomeSaveTimeout {
		return nil, fmt.Errorf("%w (%w): 60000ms exceeded", browser.ErrSaveFailed, browser.ErrTimeout)
	}

	name := p.suggestedName
	if name == "" {
		name = p.currentURL[strings.LastIndex(p.currentURL, "/")+1:] + ".bin"
	}
	return &fakeDownload{page: p, name: name, missing: p.current == outcomeFileMissing}, nil
}

type fakeDownload struct {
	page    *fakePage
	name    string
	missing bool
}

func (d *fakeDownload) SuggestedFilename() string {
	return d.name
}

func (d *fakeDownload) SaveAs(path string) error {
	d.page.saves++
	if d.missing {
		return nil
	}
	if err := os.WriteFile(path, d.page.content, 0o644); err != nil {
		return err
	}
	if d.page.onSaved != nil {
		d.page.onSaved(path)
	}
	return nil
}

// recorder collects events in order
type recorder struct {
	mu     sync.Mutex
	events []model.LogEvent
}

func (r *recorder) add(severity model.Severity, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, model.LogEvent{Severity: severity, Message: fmt.Sprintf(format, args...)})
}

func (r *recorder) Info(format string, args ...any)    { r.add(model.SeverityInfo, format, args...) }
func (r *recorder) Success(format string, args ...any) { r.add(model.SeveritySuccess, format, args...) }
func (r *recorder) Warning(format string, args ...any) { r.add(model.SeverityWarning, format, args...) }
func (r *recorder) Error(format string, args ...any)   { r.add(model.SeverityError, format, args...) }

func (r *recorder) count(severity model.Severity, substr string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, event := range r.events {
		if event.Severity == severity && strings.Contains(event.Message, substr) {
			n++
		}
	}
	return n
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, event := range r.events {
		out[i] = event.Message
	}
	return out
}

// testStop is a minimal StopSignal
type testStop struct {
	flag atomic.Bool
	once sync.Once
	ch   chan struct{}
}

func newTestStop() *testStop {
	return &testStop{ch: make(chan struct{})}
}

func (s *testStop) Stop() {
	s.flag.Store(true)
	s.once.Do(func() { close(s.ch) })
}

func (s *testStop) StopRequested() bool   { return s.flag.Load() }
func (s *testStop) Done() <-chan struct{} { return s.ch }

var errLaunch = errors.New("executable doesn't exist at /ms-playwright/chromium")
