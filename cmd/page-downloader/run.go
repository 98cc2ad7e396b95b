package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/page-downloader/internal/browser"
	"github.com/ytget/page-downloader/internal/config"
	"github.com/ytget/page-downloader/internal/download"
	"github.com/ytget/page-downloader/internal/lifecycle"
	"github.com/ytget/page-downloader/internal/model"
	"github.com/ytget/page-downloader/internal/platform"
	"github.com/ytget/page-downloader/internal/progress"
)

// DefaultJobFile is read when run is given no jobs file
const DefaultJobFile = "links.txt"

// ErrRunFailed is returned when at least one page failed or the browser did not start
var ErrRunFailed = errors.New("run failed")

// flagKeys maps run flags to config keys
var flagKeys = map[string]string{
	"download-dir":     config.FileKeyDownloadDir,
	"selector":         config.FileKeySelector,
	"max-retries":      config.FileKeyMaxRetries,
	"delay":            config.FileKeyDelay,
	"page-timeout":     config.FileKeyPageTimeout,
	"download-timeout": config.FileKeyDownloadTimeout,
	"headless":         config.FileKeyHeadless,
	"engine":           config.FileKeyEngine,
	"browser-path":     config.FileKeyBrowserPath,
	"driver":           config.FileKeyDriver,
	"log-level":        config.FileKeyLogLevel,
	"log-format":       config.FileKeyLogFormat,
}

type runOptions struct {
	configFile string
	envFiles   []string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [jobs-file]",
		Short: "Download from every page listed in jobs-file (default links.txt)",
		Long: `Reads one URL per line (blank lines and # comments are ignored) and processes them in order.
Press Ctrl+C once to stop after the current step, twice to abort immediately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobFile := DefaultJobFile
			if len(args) > 0 {
				jobFile = args[0]
			}
			return runJobFile(cmd, opts, jobFile)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "config file (default ./page-downloader.yaml)")
	f.StringSliceVar(&opts.envFiles, "env-file", nil, "environment files to load (default .env)")
	f.String("download-dir", "", "folder for downloaded files")
	f.String("selector", "", "selector of the download button (CSS, XPath or Playwright)")
	f.Int("max-retries", 0, "retries per page after the first attempt")
	f.Duration("delay", 0, "wait between attempts and between pages")
	f.Duration("page-timeout", 0, "navigation timeout")
	f.Duration("download-timeout", 0, "how long to wait for the download after the click")
	f.Bool("headless", false, "run the browser without a window")
	f.String("engine", "", "browser engine: chromium, firefox, webkit or custom")
	f.String("browser-path", "", "custom browser executable")
	f.String("driver", "", "automation driver: playwright or rod")
	f.String("log-level", "", "diagnostic log level: debug, info, warn, error")
	f.String("log-format", "", "diagnostic log format: text or json")
	return cmd
}

// loadFileConfig merges .env files, the config file, PAGEDL_* variables and flags
func loadFileConfig(cmd *cobra.Command, opts *runOptions) (config.FileConfig, error) {
	if err := config.LoadDotEnv(opts.envFiles...); err != nil {
		return config.FileConfig{}, err
	}

	v, err := config.NewViper(opts.configFile)
	if err != nil {
		return config.FileConfig{}, err
	}
	if err := bindFlags(v, cmd); err != nil {
		return config.FileConfig{}, err
	}
	return config.LoadFile(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func runJobFile(cmd *cobra.Command, opts *runOptions, jobFile string) error {
	fileCfg, err := loadFileConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := config.SetupLogger(fileCfg.LogLevel, fileCfg.LogFormat, cmd.ErrOrStderr())

	content, err := readJob(jobFile)
	if err != nil {
		return err
	}
	job := model.ParseJob(content)
	cfg := fileCfg.RunConfig()

	reporter := progress.NewReporter(progress.DefaultBufferSize, progress.WithLogger(logger))
	svc := download.NewService(browser.NewLauncher, reporter, logger)

	finished := make(chan model.RunResult, 1)
	controller := lifecycle.NewController(svc,
		lifecycle.WithLogger(logger),
		lifecycle.WithRunTagger(reporter),
		lifecycle.OnFinish(func(result model.RunResult) { finished <- result }),
	)

	if err := controller.Start(job, cfg); err != nil {
		return err
	}

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	sink := progress.NewTerminalSink(cmd.OutOrStdout())
	relay := progress.NewRelay(reporter, progress.DefaultRelayInterval)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return relay.Run(context.WithoutCancel(ctx), sink.Write)
	})
	g.Go(func() error {
		defer reporter.Close()
		return superviseRun(ctx, controller, reporter, signals)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	result := <-finished
	if result.Fatal || result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d pages failed", ErrRunFailed, result.Failed, result.Total)
	}
	return nil
}

// superviseRun waits for the run, turning the first interrupt into a
// cooperative stop and the second into termination
func superviseRun(ctx context.Context, controller *lifecycle.Controller, events download.EventLogger, signals <-chan os.Signal) error {
	done := controller.Done()
	interrupts := 0
	for {
		select {
		case <-done:
			return nil
		case <-signals:
			interrupts++
			if interrupts == 1 {
				events.Warning("Interrupted, stopping after the current step (press Ctrl+C again to abort)")
				controller.Stop()
				continue
			}
			events.Error("Aborting")
			controller.Terminate()
		case <-ctx.Done():
			controller.Terminate()
			<-done
			return ctx.Err()
		}
	}
}

func readJob(path string) (string, error) {
	content, err := platform.ReadJobFile(path)
	if err != nil {
		return "", fmt.Errorf("read jobs file: %w", err)
	}
	return content, nil
}
