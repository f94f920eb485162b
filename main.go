package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/billshinji/Vsix-Downloader/internal/config"
	"github.com/billshinji/Vsix-Downloader/internal/download"
	"github.com/billshinji/Vsix-Downloader/internal/platform"
	"github.com/billshinji/Vsix-Downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.billshinji.vsix-downloader"
	AppName = "VSIX Downloader"

	WindowWidth  = 760
	WindowHeight = 480
)

func main() {
	fmt.Printf("VSIX Downloader v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	downloadSvc := download.NewService(downloadsDir)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, downloadSvc)

	// Show and run
	myWindow.ShowAndRun()
}
