package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/page-downloader/internal/browser"
	"github.com/ytget/page-downloader/internal/config"
	"github.com/ytget/page-downloader/internal/model"
	"github.com/ytget/page-downloader/internal/platform"
)

// RunController starts and stops download runs
type RunController interface {
	Start(job model.Job, cfg model.RunConfig) error
	Stop()
	Terminate()
	State() model.RunState
	Done() <-chan struct{}
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	controller   RunController
	logger       *slog.Logger

	// Job buffer
	jobEntry   *widget.Entry
	countLabel *widget.Label

	// Run settings form
	dirEntry             *widget.Entry
	selectorEntry        *widget.SelectEntry
	selectorHint         *widget.Label
	retriesSelect        *widget.Select
	delayEntry           *widget.Entry
	pageTimeoutEntry     *widget.Entry
	downloadTimeoutEntry *widget.Entry
	headlessCheck        *widget.Check

	// Controls
	clearJobBtn *widget.Button
	startBtn    *widget.Button
	stopBtn     *widget.Button
	statusLabel *widget.Label

	logView *LogView
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, controller RunController, logger *slog.Logger) *RootUI {
	if logger == nil {
		logger = slog.Default()
	}

	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		controller:   controller,
		logger:       logger,
		logView:      NewLogView(MaxLogLines),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetCloseIntercept(ui.onCloseRequested)

	ui.setupUI()
	ui.autoloadJob()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	text := ui.localization.GetText

	ui.createMenu()

	// Job buffer
	ui.jobEntry = widget.NewMultiLineEntry()
	ui.jobEntry.SetPlaceHolder(text(KeyEnterURLs))
	ui.jobEntry.SetMinRowsVisible(8)
	ui.jobEntry.OnChanged = func(string) { ui.updateURLCount() }
	ui.countLabel = widget.NewLabel("")

	loadBtn := widget.NewButton(IconFile+" "+text(KeyLoadFile), ui.onLoadJob)
	saveBtn := widget.NewButton(IconFile+" "+text(KeySaveFile), ui.onSaveJob)
	ui.clearJobBtn = widget.NewButton(IconClose+" "+text(KeyClear), func() { ui.jobEntry.SetText("") })

	jobHeader := container.NewBorder(nil, nil, widget.NewLabelWithStyle(text(KeyURLs), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), ui.countLabel)
	jobButtons := container.NewHBox(loadBtn, saveBtn, ui.clearJobBtn)
	jobPanel := container.NewBorder(jobHeader, jobButtons, nil, nil, ui.jobEntry)

	// Run settings
	ui.dirEntry = widget.NewEntry()
	browseBtn := widget.NewButton(text(KeyBrowse), ui.onBrowseDirectory)
	openBtn := widget.NewButton(IconFolder+" "+text(KeyOpenFolder), ui.onOpenFolder)
	dirRow := container.NewBorder(nil, nil, nil, container.NewHBox(browseBtn, openBtn), ui.dirEntry)

	ui.selectorEntry = widget.NewSelectEntry(config.SelectorPresets)
	ui.selectorHint = widget.NewLabel("")
	ui.selectorHint.Importance = widget.LowImportance
	ui.selectorEntry.OnChanged = ui.updateSelectorHint

	retries := make([]string, 0, config.MaxMaxRetries-config.MinMaxRetries+1)
	for n := config.MinMaxRetries; n <= config.MaxMaxRetries; n++ {
		retries = append(retries, strconv.Itoa(n))
	}
	ui.retriesSelect = widget.NewSelect(retries, nil)

	ui.delayEntry = newSecondsEntry(config.MinDelay, config.MaxDelay)
	ui.pageTimeoutEntry = newSecondsEntry(config.MinPageTimeout, config.MaxPageTimeout)
	ui.downloadTimeoutEntry = newSecondsEntry(config.MinDownloadTimeout, config.MaxDownloadTimeout)

	ui.headlessCheck = widget.NewCheck(text(KeyHeadless), nil)
	browserBtn := widget.NewButton(IconSettings+" "+text(KeyBrowserSettings), ui.onShowSettings)

	timing := container.NewGridWithColumns(3,
		labeled(text(KeyDelay), ui.delayEntry),
		labeled(text(KeyPageTimeout), ui.pageTimeoutEntry),
		labeled(text(KeyDownloadTimeout), ui.downloadTimeoutEntry),
	)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyDownloadDirectory), dirRow),
		widget.NewFormItem(text(KeySelector), container.NewVBox(ui.selectorEntry, ui.selectorHint)),
		widget.NewFormItem(text(KeyMaxRetries), container.NewHBox(ui.retriesSelect, ui.headlessCheck, browserBtn)),
		widget.NewFormItem("", timing),
	)

	// Controls
	ui.startBtn = widget.NewButton(IconPlay+" "+text(KeyStart), ui.onStart)
	ui.startBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton(IconStop+" "+text(KeyStop), ui.onStop)
	ui.statusLabel = widget.NewLabel("")
	controls := container.NewBorder(nil, nil, container.NewHBox(ui.startBtn, ui.stopBtn), nil, ui.statusLabel)

	// Log
	clearLogBtn := widget.NewButton(IconClose+" "+text(KeyClearLog), ui.logView.Clear)
	clearLogBtn.Importance = widget.LowImportance
	logHeader := container.NewBorder(nil, nil, widget.NewLabelWithStyle(text(KeyLog), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), clearLogBtn)
	logPanel := container.NewBorder(logHeader, nil, nil, nil, ui.logView.Container())

	var header fyne.CanvasObject = widget.NewLabel("")
	if logo, err := LoadLogoResource(); err == nil {
		image := canvas.NewImageFromResource(logo)
		image.SetMinSize(fyne.NewSize(32, 32))
		image.FillMode = canvas.ImageFillContain
		header = image
	}

	top := container.NewVBox(container.NewBorder(nil, nil, header, nil, form), controls, widget.NewSeparator())
	split := container.NewVSplit(jobPanel, container.NewBorder(top, nil, nil, nil, logPanel))
	split.Offset = 0.3

	ui.window.SetContent(split)

	ui.loadForm()
	ui.updateURLCount()
	ui.applyState(ui.controller.State())
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	text := ui.localization.GetText

	fileMenu := fyne.NewMenu(text(KeyFile),
		fyne.NewMenuItem(text(KeyLoadFile), ui.onLoadJob),
		fyne.NewMenuItem(text(KeySaveFile), ui.onSaveJob),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(text(KeySettings), ui.onShowSettings),
	)

	languageMenu := fyne.NewMenu(text(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, languageMenu))
}

// onLanguageChange rebuilds the window in the new language, keeping the job buffer and log
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.applyForm()
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

func (ui *RootUI) refreshUITexts() {
	jobText := ui.jobEntry.Text
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.setupUI()
	ui.jobEntry.SetText(jobText)
}

// loadForm fills the run settings form from stored preferences
func (ui *RootUI) loadForm() {
	ui.dirEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.selectorEntry.SetText(ui.settings.GetSelector())
	ui.retriesSelect.SetSelected(strconv.Itoa(ui.settings.GetMaxRetries()))
	ui.delayEntry.SetText(strconv.Itoa(int(ui.settings.GetDelay() / time.Second)))
	ui.pageTimeoutEntry.SetText(strconv.Itoa(int(ui.settings.GetPageTimeout() / time.Second)))
	ui.downloadTimeoutEntry.SetText(strconv.Itoa(int(ui.settings.GetDownloadTimeout() / time.Second)))
	ui.headlessCheck.SetChecked(ui.settings.GetHeadless())
	ui.updateSelectorHint(ui.selectorEntry.Text)
}

// applyForm stores the form values; out of range numbers are clamped by the settings
func (ui *RootUI) applyForm() {
	ui.settings.SetDownloadDirectory(ui.dirEntry.Text)
	ui.settings.SetSelector(ui.selectorEntry.Text)
	if n, err := strconv.Atoi(ui.retriesSelect.Selected); err == nil {
		ui.settings.SetMaxRetries(n)
	}
	if n, ok := parseSeconds(ui.delayEntry.Text); ok {
		ui.settings.SetDelay(n)
	}
	if n, ok := parseSeconds(ui.pageTimeoutEntry.Text); ok {
		ui.settings.SetPageTimeout(n)
	}
	if n, ok := parseSeconds(ui.downloadTimeoutEntry.Text); ok {
		ui.settings.SetDownloadTimeout(n)
	}
	ui.settings.SetHeadless(ui.headlessCheck.Checked)
}

func (ui *RootUI) updateURLCount() {
	count := model.ParseJob(ui.jobEntry.Text).Len()
	ui.countLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyURLCount), count))
}

func (ui *RootUI) updateSelectorHint(raw string) {
	if strings.TrimSpace(raw) == "" {
		ui.selectorHint.SetText("")
		return
	}

	selector, err := browser.ParseSelector(raw)
	if err != nil {
		ui.selectorHint.SetText(err.Error())
		return
	}

	switch selector.Kind {
	case browser.SelectorXPath:
		ui.selectorHint.SetText(ui.localization.GetText(KeySelectorXPath))
	case browser.SelectorPlaywright:
		ui.selectorHint.SetText(ui.localization.GetText(KeySelectorEngine))
	default:
		ui.selectorHint.SetText(ui.localization.GetText(KeySelectorCSS))
	}
}

func (ui *RootUI) onStart() {
	ui.applyForm()
	ui.loadForm()

	job := model.ParseJob(ui.jobEntry.Text)
	cfg := ui.settings.RunConfig()
	if err := ui.controller.Start(job, cfg); err != nil {
		ui.logger.Debug("start rejected", "error", err)
		dialog.ShowInformation(ui.localization.GetText(KeyWarning), err.Error(), ui.window)
		return
	}
	ui.logger.Debug("start accepted", "urls", job.Len())
}

func (ui *RootUI) onStop() {
	ui.controller.Stop()
}

// HandleStateChange updates the controls for a run state. Safe from any goroutine.
func (ui *RootUI) HandleStateChange(state model.RunState) {
	fyne.Do(func() { ui.applyState(state) })
}

func (ui *RootUI) applyState(state model.RunState) {
	switch state {
	case model.RunStateRunning:
		ui.startBtn.Disable()
		ui.stopBtn.Enable()
		ui.statusLabel.SetText(ui.localization.GetText(KeyStatusRunning))
	case model.RunStateStopping:
		ui.startBtn.Disable()
		ui.stopBtn.Disable()
		ui.statusLabel.SetText(ui.localization.GetText(KeyStatusStopping))
	default:
		ui.startBtn.Enable()
		ui.stopBtn.Disable()
		switch ui.statusLabel.Text {
		case "", ui.localization.GetText(KeyStatusRunning), ui.localization.GetText(KeyStatusStopping):
			ui.statusLabel.SetText(ui.localization.GetText(KeyStatusIdle))
		}
	}
}

// HandleFinish shows the tally of a finished run. Safe from any goroutine.
func (ui *RootUI) HandleFinish(result model.RunResult) {
	message := fmt.Sprintf(ui.localization.GetText(KeyRunFinished), result.Succeeded, result.Failed)
	fyne.Do(func() {
		ui.statusLabel.SetText(message)
		ui.applyState(model.RunStateIdle)
	})

	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyAppTitle),
		Content: message,
	})
}

// AppendLog adds a batch of events to the log view. Must run on the UI goroutine.
func (ui *RootUI) AppendLog(events []model.LogEvent) {
	ui.logView.Append(events)
}

func (ui *RootUI) onCloseRequested() {
	if !ui.controller.State().IsActive() {
		ui.applyForm()
		ui.window.Close()
		return
	}

	dialog.ShowConfirm(
		ui.localization.GetText(KeyConfirmExit),
		ui.localization.GetText(KeyConfirmExitText),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			ui.applyForm()
			ui.controller.Terminate()
			done := ui.controller.Done()
			go func() {
				select {
				case <-done:
				case <-time.After(CloseWaitPeriod):
					ui.logger.Warn("run did not finish before exit")
				}
				fyne.Do(ui.window.Close)
			}()
		},
		ui.window,
	)
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, func() {
		if ui.localization.GetCurrentLanguage() != ui.settings.GetLanguage() {
			ui.onLanguageChange(ui.settings.GetLanguage())
		}
		ui.statusLabel.SetText(ui.localization.GetText(KeySettingsSaved))
	}).Show()
}

func (ui *RootUI) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.dirEntry.SetText(uri.Path())
		ui.settings.SetDownloadDirectory(uri.Path())
	}, ui.window)
}

func (ui *RootUI) onOpenFolder() {
	dir := strings.TrimSpace(ui.dirEntry.Text)
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningDir), err), ui.window)
		return
	}
	if err := platform.OpenDirectory(dir); err != nil {
		ui.logger.Error("open folder failed", "dir", dir, "error", err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningDir), err), ui.window)
	}
}

func (ui *RootUI) onLoadJob() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		if err := ui.LoadJobFile(path); err != nil {
			dialog.ShowError(err, ui.window)
		}
	}, ui.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{JobFileExt}))
	open.Show()
}

func (ui *RootUI) onSaveJob() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()

		if err := ui.SaveJobFile(path); err != nil {
			dialog.ShowError(err, ui.window)
		}
	}, ui.window)
	save.SetFileName(DefaultJobFile)
	save.Show()
}

// LoadJobFile replaces the job buffer with the contents of path
func (ui *RootUI) LoadJobFile(path string) error {
	content, err := platform.ReadJobFile(path)
	if err != nil {
		return err
	}
	ui.jobEntry.SetText(content)
	ui.settings.SetLastJobFile(path)
	ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyJobLoaded), model.ParseJob(content).Len(), path))
	return nil
}

// SaveJobFile writes the job buffer to path verbatim
func (ui *RootUI) SaveJobFile(path string) error {
	if err := platform.WriteJobFile(path, ui.jobEntry.Text); err != nil {
		return err
	}
	ui.settings.SetLastJobFile(path)
	ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyJobSaved), path))
	return nil
}

// autoloadJob fills an empty buffer from links.txt in the working directory,
// or from the last used job file
func (ui *RootUI) autoloadJob() {
	for _, path := range []string{DefaultJobFile, ui.settings.GetLastJobFile()} {
		if path == "" || !platform.FileExists(path) {
			continue
		}
		if err := ui.LoadJobFile(path); err != nil {
			ui.logger.Warn("autoload job file failed", "path", path, "error", err)
			continue
		}
		return
	}
}

func newSecondsEntry(lo, hi int) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(fmt.Sprintf("%d-%d", lo, hi))
	entry.Validator = func(s string) error {
		if _, ok := parseSeconds(s); !ok {
			return fmt.Errorf("enter a number between %d and %d", lo, hi)
		}
		return nil
	}
	return entry
}

func parseSeconds(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func labeled(label string, obj fyne.CanvasObject) fyne.CanvasObject {
	return container.NewBorder(nil, nil, widget.NewLabel(label), nil, obj)
}
