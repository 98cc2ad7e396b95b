package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ytget/page-downloader/internal/model"
	"github.com/ytget/page-downloader/internal/platform"
)

// Config file lookup
const (
	ConfigName = "page-downloader"
	EnvPrefix  = "PAGEDL"
)

// Keys shared by the config file, environment and CLI flags
const (
	FileKeyDownloadDir     = "download_dir"
	FileKeySelector        = "selector"
	FileKeyMaxRetries      = "max_retries"
	FileKeyDelay           = "delay"
	FileKeyPageTimeout     = "page_timeout"
	FileKeyDownloadTimeout = "download_timeout"
	FileKeyHeadless        = "headless"
	FileKeyEngine          = "engine"
	FileKeyBrowserPath     = "browser_path"
	FileKeyDriver          = "driver"
	FileKeyLogLevel        = "log_level"
	FileKeyLogFormat       = "log_format"
)

// FileConfig is the command line configuration after merging the config
// file, PAGEDL_* environment variables and flags.
type FileConfig struct {
	DownloadDir     string        `mapstructure:"download_dir"`
	Selector        string        `mapstructure:"selector"`
	MaxRetries      int           `mapstructure:"max_retries"`
	Delay           time.Duration `mapstructure:"delay"`
	PageTimeout     time.Duration `mapstructure:"page_timeout"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	Headless        bool          `mapstructure:"headless"`
	Engine          string        `mapstructure:"engine"`
	BrowserPath     string        `mapstructure:"browser_path"`
	Driver          string        `mapstructure:"driver"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
}

// RunConfig converts the merged configuration into a run snapshot
func (c FileConfig) RunConfig() model.RunConfig {
	return model.RunConfig{
		DownloadDir:     c.DownloadDir,
		Selector:        strings.TrimSpace(c.Selector),
		MaxRetries:      c.MaxRetries,
		Delay:           c.Delay,
		PageTimeout:     c.PageTimeout,
		DownloadTimeout: c.DownloadTimeout,
		Headless:        c.Headless,
		Engine:          model.BrowserEngine(strings.ToLower(c.Engine)),
		BrowserPath:     c.BrowserPath,
		Driver:          model.Driver(strings.ToLower(c.Driver)),
	}
}

// LoadDotEnv loads environment files, skipping the ones that do not exist.
// Without arguments it loads .env from the working directory.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if !platform.FileExists(path) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// NewViper prepares a viper instance with defaults, environment overrides
// and the config file. An explicit configFile must exist; otherwise
// page-downloader.yaml is searched in the working directory and the user
// config directory and may be absent.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setFileDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// LoadFile decodes the merged configuration held by v
func LoadFile(v *viper.Viper) (FileConfig, error) {
	var cfg FileConfig
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// secondsHook reads bare numbers as seconds for duration fields, so
// "delay: 2" and PAGEDL_DELAY=2 mean two seconds. Values with a unit such
// as "1m30s" are parsed with time.ParseDuration.
func secondsHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType {
			return data, nil
		}
		switch value := data.(type) {
		case int:
			return seconds(value), nil
		case int64:
			return time.Duration(value) * time.Second, nil
		case uint64:
			return time.Duration(value) * time.Second, nil
		case float64:
			return time.Duration(value * float64(time.Second)), nil
		case string:
			text := strings.TrimSpace(value)
			if n, err := strconv.ParseFloat(text, 64); err == nil {
				return time.Duration(n * float64(time.Second)), nil
			}
			return time.ParseDuration(text)
		}
		return data, nil
	}
}

func setFileDefaults(v *viper.Viper) {
	v.SetDefault(FileKeyDownloadDir, platform.DefaultDownloadDir())
	v.SetDefault(FileKeySelector, DefaultSelector)
	v.SetDefault(FileKeyMaxRetries, DefaultMaxRetries)
	v.SetDefault(FileKeyDelay, seconds(DefaultDelay))
	v.SetDefault(FileKeyPageTimeout, seconds(DefaultPageTimeout))
	v.SetDefault(FileKeyDownloadTimeout, seconds(DefaultDownloadTimeout))
	v.SetDefault(FileKeyHeadless, DefaultHeadless)
	v.SetDefault(FileKeyEngine, string(DefaultEngine))
	v.SetDefault(FileKeyBrowserPath, "")
	v.SetDefault(FileKeyDriver, string(DefaultDriver))
	v.SetDefault(FileKeyLogLevel, "info")
	v.SetDefault(FileKeyLogFormat, LogFormatText)
}
