package config

import (
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/page-downloader/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}
	if filepath.Base(dir) != "page-downloader" {
		t.Errorf("Expected default directory to end in page-downloader, got %s", dir)
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory("  " + customDir + " ")

	retrievedDir := settings.GetDownloadDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, retrievedDir)
	}
}

func TestSelector(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetSelector(); got != DefaultSelector {
		t.Errorf("Expected default selector %s, got %s", DefaultSelector, got)
	}

	settings.SetSelector(`button:has-text("Download")`)
	if got := settings.GetSelector(); got != `button:has-text("Download")` {
		t.Errorf("Unexpected selector %s", got)
	}

	// Blank selectors are stored so that start can reject them
	settings.SetSelector("   ")
	if got := settings.GetSelector(); got != "" {
		t.Errorf("Expected blank selector, got %q", got)
	}
}

func TestClampedIntegers(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Settings, int)
		get  func(*Settings) int
		def  int
		min  int
		max  int
	}{
		{
			name: "max retries",
			set:  (*Settings).SetMaxRetries,
			get:  (*Settings).GetMaxRetries,
			def:  DefaultMaxRetries, min: MinMaxRetries, max: MaxMaxRetries,
		},
		{
			name: "delay",
			set:  (*Settings).SetDelay,
			get:  func(s *Settings) int { return int(s.GetDelay() / time.Second) },
			def:  DefaultDelay, min: MinDelay, max: MaxDelay,
		},
		{
			name: "page timeout",
			set:  (*Settings).SetPageTimeout,
			get:  func(s *Settings) int { return int(s.GetPageTimeout() / time.Second) },
			def:  DefaultPageTimeout, min: MinPageTimeout, max: MaxPageTimeout,
		},
		{
			name: "download timeout",
			set:  (*Settings).SetDownloadTimeout,
			get:  func(s *Settings) int { return int(s.GetDownloadTimeout() / time.Second) },
			def:  DefaultDownloadTimeout, min: MinDownloadTimeout, max: MaxDownloadTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := NewSettings(test.NewApp())

			if got := tt.get(settings); got != tt.def {
				t.Errorf("Expected default %d, got %d", tt.def, got)
			}

			tt.set(settings, tt.min)
			if got := tt.get(settings); got != tt.min {
				t.Errorf("Expected minimum %d to be accepted, got %d", tt.min, got)
			}

			tt.set(settings, tt.min-1)
			if got := tt.get(settings); got != tt.min {
				t.Errorf("Expected value clamped to %d, got %d", tt.min, got)
			}

			tt.set(settings, tt.max+100)
			if got := tt.get(settings); got != tt.max {
				t.Errorf("Expected value clamped to %d, got %d", tt.max, got)
			}
		})
	}
}

func TestEngineAndDriver(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetEngine() != DefaultEngine {
		t.Errorf("Expected default engine %s, got %s", DefaultEngine, settings.GetEngine())
	}
	if settings.GetDriver() != DefaultDriver {
		t.Errorf("Expected default driver %s, got %s", DefaultDriver, settings.GetDriver())
	}

	settings.SetEngine(model.EngineFirefox)
	settings.SetDriver(model.DriverRod)
	if settings.GetEngine() != model.EngineFirefox {
		t.Errorf("Expected firefox, got %s", settings.GetEngine())
	}
	if settings.GetDriver() != model.DriverRod {
		t.Errorf("Expected rod, got %s", settings.GetDriver())
	}

	// Unknown stored values fall back to defaults
	app.Preferences().SetString(KeyEngine, "netscape")
	app.Preferences().SetString(KeyDriver, "selenium")
	if settings.GetEngine() != DefaultEngine {
		t.Errorf("Expected fallback engine, got %s", settings.GetEngine())
	}
	if settings.GetDriver() != DefaultDriver {
		t.Errorf("Expected fallback driver, got %s", settings.GetDriver())
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	// Test setting custom value
	settings.SetLanguage("en")

	retrievedLang := settings.GetLanguage()
	if retrievedLang != "en" {
		t.Errorf("Expected language 'en', got %s", retrievedLang)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

func TestRunConfigSnapshot(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SetDownloadDirectory("/data/out")
	settings.SetSelector("#downloadButton")
	settings.SetMaxRetries(3)
	settings.SetDelay(5)
	settings.SetHeadless(true)
	settings.SetEngine(model.EngineCustom)
	settings.SetBrowserPath("/opt/zen/zen")

	cfg := settings.RunConfig()

	// Later edits do not leak into the snapshot
	settings.SetMaxRetries(0)

	want := model.RunConfig{
		DownloadDir:     "/data/out",
		Selector:        "#downloadButton",
		MaxRetries:      3,
		Delay:           5 * time.Second,
		PageTimeout:     DefaultPageTimeout * time.Second,
		DownloadTimeout: DefaultDownloadTimeout * time.Second,
		Headless:        true,
		Engine:          model.EngineCustom,
		BrowserPath:     "/opt/zen/zen",
		Driver:          model.DriverPlaywright,
	}
	if cfg != want {
		t.Errorf("Unexpected snapshot:\n got  %+v\n want %+v", cfg, want)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Snapshot should validate: %v", err)
	}
}
