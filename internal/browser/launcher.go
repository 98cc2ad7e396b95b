package browser

import (
	"fmt"

	"github.com/ytget/page-downloader/internal/model"
)

// NewLauncher returns the launcher for driver. An empty driver selects Playwright.
func NewLauncher(driver model.Driver) (Launcher, error) {
	switch driver {
	case model.DriverPlaywright, "":
		return NewPlaywrightLauncher(), nil
	case model.DriverRod:
		return NewRodLauncher(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
