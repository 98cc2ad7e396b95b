// Package browser wraps the browser-automation libraries behind a small
// session/page interface used by the download runner. Two drivers are
// provided: Playwright (Chromium, Firefox and WebKit) and rod (Chromium
// family over CDP). The package also classifies selection expressions and
// resolves the browser engine from an executable path.
package browser
