package browser

import (
	"strings"

	"github.com/ytget/page-downloader/internal/model"
)

// Executable name fragments used to guess the engine family of a custom browser
var (
	FirefoxFamilyMarkers  = []string{"zen", "firefox", "librewolf", "waterfox", "floorp"}
	ChromiumFamilyMarkers = []string{"chrome", "chromium", "msedge", "edge", "brave", "vivaldi", "opera"}
)

// DetectEngine guesses the engine family from the file name of a browser
// executable. The guess is a heuristic; ok is false when nothing matched.
func DetectEngine(executablePath string) (engine model.BrowserEngine, ok bool) {
	name := strings.ToLower(fileName(executablePath))
	if name == "" {
		return "", false
	}
	for _, marker := range FirefoxFamilyMarkers {
		if strings.Contains(name, marker) {
			return model.EngineFirefox, true
		}
	}
	for _, marker := range ChromiumFamilyMarkers {
		if strings.Contains(name, marker) {
			return model.EngineChromium, true
		}
	}
	return "", false
}

// ResolveEngine maps the operator's engine choice and optional executable
// path to the engine family that will actually be launched. Explicit choices
// win; only EngineCustom consults the path, falling back to Chromium when the
// name gives no hint.
func ResolveEngine(choice model.BrowserEngine, executablePath string) model.BrowserEngine {
	switch choice {
	case model.EngineFirefox, model.EngineWebKit, model.EngineChromium:
		return choice
	case model.EngineCustom:
		if detected, ok := DetectEngine(executablePath); ok {
			return detected
		}
	}
	return model.EngineChromium
}

// fileName returns the last path element, accepting both / and \ separators
func fileName(path string) string {
	path = strings.TrimSpace(path)
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
