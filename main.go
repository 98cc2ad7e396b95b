package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/page-downloader/internal/browser"
	"github.com/ytget/page-downloader/internal/config"
	"github.com/ytget/page-downloader/internal/download"
	"github.com/ytget/page-downloader/internal/lifecycle"
	"github.com/ytget/page-downloader/internal/model"
	"github.com/ytget/page-downloader/internal/progress"
	"github.com/ytget/page-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.page-downloader"
	AppName = "Page Downloader"

	WindowWidth  = 900
	WindowHeight = 700
)

func main() {
	logger := config.SetupLogger(os.Getenv("PAGEDL_LOG_LEVEL"), os.Getenv("PAGEDL_LOG_FORMAT"), os.Stderr)
	logger.Info("starting", "app", AppName, "version", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	reporter := progress.NewReporter(progress.DefaultBufferSize, progress.WithLogger(logger))
	downloadSvc := download.NewService(browser.NewLauncher, reporter, logger)

	var root *ui.RootUI
	controller := lifecycle.NewController(downloadSvc,
		lifecycle.WithLogger(logger),
		lifecycle.WithRunTagger(reporter),
		lifecycle.OnStateChange(func(state model.RunState) { root.HandleStateChange(state) }),
		lifecycle.OnFinish(func(result model.RunResult) { root.HandleFinish(result) }),
	)
	root = ui.NewRootUI(myWindow, myApp, controller, logger)

	ctx, cancel := context.WithCancel(context.Background())
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		relay := progress.NewRelay(reporter, progress.DefaultRelayInterval)
		_ = relay.Run(ctx, func(batch []model.LogEvent) {
			fyne.Do(func() { root.AppendLog(batch) })
		})
	}()

	myWindow.ShowAndRun()

	controller.Terminate()
	<-controller.Done()
	reporter.Close()
	cancel()
	<-relayDone
	logger.Info("stopped")
}
