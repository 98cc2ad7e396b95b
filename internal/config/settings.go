package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/page-downloader/internal/model"
	"github.com/ytget/page-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir     = "download_directory"
	KeySelector        = "button_selector"
	KeyMaxRetries      = "max_retries"
	KeyDelay           = "delay_seconds"
	KeyPageTimeout     = "page_timeout_seconds"
	KeyDownloadTimeout = "download_timeout_seconds"
	KeyHeadless        = "headless"
	KeyEngine          = "browser_engine"
	KeyBrowserPath     = "browser_path"
	KeyDriver          = "browser_driver"
	KeyLanguage        = "app_language"
	KeyLastJobFile     = "last_job_file"
)

// Default values
const (
	DefaultSelector        = "button.download-btn"
	DefaultMaxRetries      = 2
	DefaultDelay           = 2
	DefaultPageTimeout     = 30
	DefaultDownloadTimeout = 60
	DefaultHeadless        = false
	DefaultEngine          = model.EngineChromium
	DefaultDriver          = model.DriverPlaywright
	DefaultLanguage        = "system"
)

// Ranges accepted by the setters, in retries or seconds
const (
	MinMaxRetries      = 0
	MaxMaxRetries      = 5
	MinDelay           = 0
	MaxDelay           = 30
	MinPageTimeout     = 10
	MaxPageTimeout     = 120
	MinDownloadTimeout = 30
	MaxDownloadTimeout = 300
)

// SelectorPresets are offered in the selector picker
var SelectorPresets = []string{
	"button.download-btn",
	"a.download-link",
	"#downloadButton",
	`button:has-text("Download")`,
	`[data-action="download"]`,
	".btn-download",
}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		dir = platform.DefaultDownloadDir()
		s.SetDownloadDirectory(dir)
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, strings.TrimSpace(dir))
}

// GetSelector returns the download button selector
func (s *Settings) GetSelector() string {
	return s.app.Preferences().StringWithFallback(KeySelector, DefaultSelector)
}

// SetSelector stores the selector; blank values are kept so the start check can reject them
func (s *Settings) SetSelector(selector string) {
	s.app.Preferences().SetString(KeySelector, strings.TrimSpace(selector))
}

// GetMaxRetries returns the retry count per address
func (s *Settings) GetMaxRetries() int {
	return clamp(s.app.Preferences().IntWithFallback(KeyMaxRetries, DefaultMaxRetries), MinMaxRetries, MaxMaxRetries)
}

// SetMaxRetries sets the retry count per address
func (s *Settings) SetMaxRetries(count int) {
	s.app.Preferences().SetInt(KeyMaxRetries, clamp(count, MinMaxRetries, MaxMaxRetries))
}

// GetDelay returns the wait between attempts and between addresses
func (s *Settings) GetDelay() time.Duration {
	return seconds(clamp(s.app.Preferences().IntWithFallback(KeyDelay, DefaultDelay), MinDelay, MaxDelay))
}

// SetDelay sets the delay in whole seconds
func (s *Settings) SetDelay(secs int) {
	s.app.Preferences().SetInt(KeyDelay, clamp(secs, MinDelay, MaxDelay))
}

// GetPageTimeout returns the navigation timeout
func (s *Settings) GetPageTimeout() time.Duration {
	return seconds(clamp(s.app.Preferences().IntWithFallback(KeyPageTimeout, DefaultPageTimeout), MinPageTimeout, MaxPageTimeout))
}

// SetPageTimeout sets the navigation timeout in seconds
func (s *Settings) SetPageTimeout(secs int) {
	s.app.Preferences().SetInt(KeyPageTimeout, clamp(secs, MinPageTimeout, MaxPageTimeout))
}

// GetDownloadTimeout returns how long to wait for a download after the click
func (s *Settings) GetDownloadTimeout() time.Duration {
	return seconds(clamp(s.app.Preferences().IntWithFallback(KeyDownloadTimeout, DefaultDownloadTimeout), MinDownloadTimeout, MaxDownloadTimeout))
}

// SetDownloadTimeout sets the download timeout in seconds
func (s *Settings) SetDownloadTimeout(secs int) {
	s.app.Preferences().SetInt(KeyDownloadTimeout, clamp(secs, MinDownloadTimeout, MaxDownloadTimeout))
}

// GetHeadless reports whether the browser runs without a window
func (s *Settings) GetHeadless() bool {
	return s.app.Preferences().BoolWithFallback(KeyHeadless, DefaultHeadless)
}

// SetHeadless sets headless mode
func (s *Settings) SetHeadless(headless bool) {
	s.app.Preferences().SetBool(KeyHeadless, headless)
}

// GetEngine returns the browser engine choice
func (s *Settings) GetEngine() model.BrowserEngine {
	engine := model.BrowserEngine(s.app.Preferences().String(KeyEngine))
	for _, option := range model.EngineOptions() {
		if engine == option {
			return engine
		}
	}
	return DefaultEngine
}

// SetEngine sets the browser engine choice
func (s *Settings) SetEngine(engine model.BrowserEngine) {
	s.app.Preferences().SetString(KeyEngine, string(engine))
}

// GetBrowserPath returns the custom browser executable, if any
func (s *Settings) GetBrowserPath() string {
	return s.app.Preferences().String(KeyBrowserPath)
}

// SetBrowserPath sets the custom browser executable
func (s *Settings) SetBrowserPath(path string) {
	s.app.Preferences().SetString(KeyBrowserPath, strings.TrimSpace(path))
}

// GetDriver returns the automation driver
func (s *Settings) GetDriver() model.Driver {
	driver := model.Driver(s.app.Preferences().String(KeyDriver))
	for _, option := range model.DriverOptions() {
		if driver == option {
			return driver
		}
	}
	return DefaultDriver
}

// SetDriver sets the automation driver
func (s *Settings) SetDriver(driver model.Driver) {
	s.app.Preferences().SetString(KeyDriver, string(driver))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetLastJobFile returns the last loaded or saved job file
func (s *Settings) GetLastJobFile() string {
	return s.app.Preferences().String(KeyLastJobFile)
}

// SetLastJobFile remembers the last job file
func (s *Settings) SetLastJobFile(path string) {
	s.app.Preferences().SetString(KeyLastJobFile, path)
}

// RunConfig returns a snapshot of the current settings
func (s *Settings) RunConfig() model.RunConfig {
	return model.RunConfig{
		DownloadDir:     s.GetDownloadDirectory(),
		Selector:        s.GetSelector(),
		MaxRetries:      s.GetMaxRetries(),
		Delay:           s.GetDelay(),
		PageTimeout:     s.GetPageTimeout(),
		DownloadTimeout: s.GetDownloadTimeout(),
		Headless:        s.GetHeadless(),
		Engine:          s.GetEngine(),
		BrowserPath:     s.GetBrowserPath(),
		Driver:          s.GetDriver(),
	}
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
