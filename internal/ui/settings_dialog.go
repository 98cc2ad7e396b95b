package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/page-downloader/internal/browser"
	"github.com/ytget/page-downloader/internal/config"
	"github.com/ytget/page-downloader/internal/model"
)

// SettingsDialog edits the browser settings: engine, executable, driver and language
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	engineSelect   *widget.Select
	pathEntry      *widget.Entry
	driverSelect   *widget.Select
	languageSelect *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	engines := make([]string, 0, len(model.EngineOptions()))
	for _, engine := range model.EngineOptions() {
		engines = append(engines, string(engine))
	}
	sd.engineSelect = widget.NewSelect(engines, nil)

	sd.pathEntry = widget.NewEntry()
	sd.pathEntry.SetPlaceHolder("/usr/bin/chromium")
	sd.pathEntry.OnChanged = sd.onPathChanged
	browseBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseExecutable)
	pathRow := container.NewBorder(nil, nil, nil, browseBtn, sd.pathEntry)

	drivers := make([]string, 0, len(model.DriverOptions()))
	for _, driver := range model.DriverOptions() {
		drivers = append(drivers, string(driver))
	}
	sd.driverSelect = widget.NewSelect(drivers, nil)

	languages := make([]string, 0)
	for code := range sd.settings.GetLanguageOptions() {
		languages = append(languages, code)
	}
	sd.languageSelect = widget.NewSelect(languages, nil)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyEngine), sd.engineSelect),
		widget.NewFormItem(text(KeyBrowserPath), pathRow),
		widget.NewFormItem(text(KeyDriver), sd.driverSelect),
		widget.NewFormItem(text(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.engineSelect.SetSelected(string(sd.settings.GetEngine()))
	sd.pathEntry.SetText(sd.settings.GetBrowserPath())
	sd.driverSelect.SetSelected(string(sd.settings.GetDriver()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onPathChanged picks the engine matching a recognised executable name
func (sd *SettingsDialog) onPathChanged(path string) {
	if path == "" {
		return
	}
	if engine, ok := browser.DetectEngine(path); ok {
		sd.engineSelect.SetSelected(string(engine))
	}
}

func (sd *SettingsDialog) onBrowseExecutable() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		sd.pathEntry.SetText(reader.URI().Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.engineSelect.Selected != "" {
		sd.settings.SetEngine(model.BrowserEngine(sd.engineSelect.Selected))
	}
	sd.settings.SetBrowserPath(sd.pathEntry.Text)
	if sd.driverSelect.Selected != "" {
		sd.settings.SetDriver(model.Driver(sd.driverSelect.Selected))
	}
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
