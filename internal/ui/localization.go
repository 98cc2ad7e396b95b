package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyStart             = "start"
	KeyStop              = "stop"
	KeySettings          = "settings"
	KeyBrowserSettings   = "browser_settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyURLs              = "urls"
	KeyURLCount          = "url_count"
	KeyEnterURLs         = "enter_urls"
	KeyLoadFile          = "load_file"
	KeySaveFile          = "save_file"
	KeyClear             = "clear"
	KeyClearLog          = "clear_log"
	KeyLog               = "log"
	KeyDownloadDirectory = "download_directory"
	KeyOpenFolder        = "open_folder"
	KeySelector          = "selector"
	KeyMaxRetries        = "max_retries"
	KeyDelay             = "delay"
	KeyPageTimeout       = "page_timeout"
	KeyDownloadTimeout   = "download_timeout"
	KeyHeadless          = "headless"
	KeyEngine            = "engine"
	KeyBrowserPath       = "browser_path"
	KeyDriver            = "driver"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyWarning           = "warning"
	KeySettingsSaved     = "settings_saved"
	KeyStatusIdle        = "status_idle"
	KeyStatusRunning     = "status_running"
	KeyStatusStopping    = "status_stopping"
	KeyRunFinished       = "run_finished"
	KeyConfirmExit       = "confirm_exit"
	KeyConfirmExitText   = "confirm_exit_text"
	KeyErrorOpeningDir   = "error_opening_dir"
	KeyJobLoaded         = "job_loaded"
	KeyJobSaved          = "job_saved"
	KeySelectorCSS       = "selector_css"
	KeySelectorXPath     = "selector_xpath"
	KeySelectorEngine    = "selector_engine"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Page Downloader",
		KeyStart:             "Start",
		KeyStop:              "Stop",
		KeySettings:          "Settings",
		KeyBrowserSettings:   "Browser...",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyURLs:              "URLs (one per line)",
		KeyURLCount:          "URLs: %d",
		KeyEnterURLs:         "https://example.com/page1\nhttps://example.com/page2",
		KeyLoadFile:          "Load...",
		KeySaveFile:          "Save...",
		KeyClear:             "Clear",
		KeyClearLog:          "Clear log",
		KeyLog:               "Log",
		KeyDownloadDirectory: "Download folder",
		KeyOpenFolder:        "Open folder",
		KeySelector:          "Button selector",
		KeyMaxRetries:        "Max retries",
		KeyDelay:             "Delay (s)",
		KeyPageTimeout:       "Page timeout (s)",
		KeyDownloadTimeout:   "Download timeout (s)",
		KeyHeadless:          "Headless",
		KeyEngine:            "Browser engine",
		KeyBrowserPath:       "Browser executable",
		KeyDriver:            "Automation driver",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyWarning:           "Warning",
		KeySettingsSaved:     "Settings saved",
		KeyStatusIdle:        "Ready",
		KeyStatusRunning:     "Downloading...",
		KeyStatusStopping:    "Stopping...",
		KeyRunFinished:       "Finished: %d succeeded, %d failed",
		KeyConfirmExit:       "Confirm exit",
		KeyConfirmExitText:   "Download in progress. Stop and quit?",
		KeyErrorOpeningDir:   "Cannot open folder",
		KeyJobLoaded:         "Loaded %d URLs from %s",
		KeyJobSaved:          "Saved URLs to %s",
		KeySelectorCSS:       "CSS selector",
		KeySelectorXPath:     "XPath expression",
		KeySelectorEngine:    "Playwright selector (playwright driver only)",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Загрузчик страниц",
		KeyStart:             "Старт",
		KeyStop:              "Стоп",
		KeySettings:          "Настройки",
		KeyBrowserSettings:   "Браузер...",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyURLs:              "URL (по одному в строке)",
		KeyURLCount:          "URL: %d",
		KeyLoadFile:          "Загрузить...",
		KeySaveFile:          "Сохранить...",
		KeyClear:             "Очистить",
		KeyClearLog:          "Очистить журнал",
		KeyLog:               "Журнал",
		KeyDownloadDirectory: "Папка загрузки",
		KeyOpenFolder:        "Открыть папку",
		KeySelector:          "Селектор кнопки",
		KeyMaxRetries:        "Повторы",
		KeyDelay:             "Пауза (с)",
		KeyPageTimeout:       "Таймаут страницы (с)",
		KeyDownloadTimeout:   "Таймаут загрузки (с)",
		KeyHeadless:          "Без окна",
		KeyEngine:            "Движок браузера",
		KeyBrowserPath:       "Исполняемый файл браузера",
		KeyDriver:            "Драйвер",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyWarning:           "Внимание",
		KeySettingsSaved:     "Настройки сохранены",
		KeyStatusIdle:        "Готово",
		KeyStatusRunning:     "Загрузка...",
		KeyStatusStopping:    "Остановка...",
		KeyRunFinished:       "Завершено: успешно %d, ошибок %d",
		KeyConfirmExit:       "Подтверждение выхода",
		KeyConfirmExitText:   "Идёт загрузка. Остановить и выйти?",
		KeyErrorOpeningDir:   "Не удалось открыть папку",
		KeyJobLoaded:         "Загружено %d URL из %s",
		KeyJobSaved:          "URL сохранены в %s",
		KeySelectorCSS:       "CSS-селектор",
		KeySelectorXPath:     "Выражение XPath",
		KeySelectorEngine:    "Селектор Playwright (только драйвер playwright)",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Page Downloader",
		KeyStart:             "Iniciar",
		KeyStop:              "Parar",
		KeySettings:          "Configurações",
		KeyBrowserSettings:   "Navegador...",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyURLs:              "URLs (uma por linha)",
		KeyURLCount:          "URLs: %d",
		KeyLoadFile:          "Carregar...",
		KeySaveFile:          "Salvar...",
		KeyClear:             "Limpar",
		KeyClearLog:          "Limpar log",
		KeyLog:               "Log",
		KeyDownloadDirectory: "Pasta de download",
		KeyOpenFolder:        "Abrir pasta",
		KeySelector:          "Seletor do botão",
		KeyMaxRetries:        "Tentativas extras",
		KeyDelay:             "Intervalo (s)",
		KeyPageTimeout:       "Tempo limite da página (s)",
		KeyDownloadTimeout:   "Tempo limite do download (s)",
		KeyHeadless:          "Sem janela",
		KeyEngine:            "Motor do navegador",
		KeyBrowserPath:       "Executável do navegador",
		KeyDriver:            "Driver de automação",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyWarning:           "Aviso",
		KeySettingsSaved:     "Configurações salvas",
		KeyStatusIdle:        "Pronto",
		KeyStatusRunning:     "Baixando...",
		KeyStatusStopping:    "Parando...",
		KeyRunFinished:       "Concluído: %d com sucesso, %d com falha",
		KeyConfirmExit:       "Confirmar saída",
		KeyConfirmExitText:   "Download em andamento. Parar e sair?",
		KeyErrorOpeningDir:   "Não foi possível abrir a pasta",
		KeyJobLoaded:         "%d URLs carregadas de %s",
		KeyJobSaved:          "URLs salvas em %s",
		KeySelectorCSS:       "Seletor CSS",
		KeySelectorXPath:     "Expressão XPath",
		KeySelectorEngine:    "Seletor Playwright (somente driver playwright)",
	}
}
