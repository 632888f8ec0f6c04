package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/logging"
	"github.com/ytget/ytdlp-gui/internal/platform"
	"github.com/ytget/ytdlp-gui/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytdlp-gui"
	AppName = "yt-dlp GUI"
)

func main() {
	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(env.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info(AppName+" starting", "version", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	executable := env.YTDLPPath
	if executable == "" {
		executable, err = platform.Install(ctx, logger, env.AutoInstall)
		if err != nil {
			// Fall back to whatever go-ytdlp finds on PATH at run time
			logger.Warn("yt-dlp not resolved", "err", err)
		}
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myApp.Lifecycle().SetOnStopped(cancel)

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		logger.Warn("failed to ensure downloads dir", "err", err)
	}

	extractor := platform.NewYTDLP(logger, executable, env.ProgressInterval)
	runner := download.NewService(extractor, logger, env.ProgressBuffer)

	ui.NewController(ctx, myWindow, myApp, runner, settings, logger)

	myWindow.ShowAndRun()
}
