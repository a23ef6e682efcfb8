package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/kobepower/CyberNinjaADB/internal/adb"
	"github.com/kobepower/CyberNinjaADB/internal/config"
	"github.com/kobepower/CyberNinjaADB/internal/mirror"
	"github.com/kobepower/CyberNinjaADB/internal/platform"
	"github.com/kobepower/CyberNinjaADB/internal/registry"
	"github.com/kobepower/CyberNinjaADB/internal/scan"
	"github.com/kobepower/CyberNinjaADB/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.kobepower.cyberninja-adb"
	AppName = "CyberNinja ADB"

	WindowWidth  = 700
	WindowHeight = 640
)

func main() {
	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)

	devicePath := settings.GetDeviceListPath()
	if devicePath == "" {
		devicePath = platform.DeviceListPath()
	}
	devices := registry.Load(devicePath)

	stopWatch, err := devices.Watch()
	if err != nil {
		log.Printf("Device list watcher unavailable: %v", err)
	} else {
		defer stopWatch()
	}

	bridgePath, err := platform.LocateTool("adb", "")
	if err != nil {
		log.Printf("Bridge tool not found, falling back to PATH lookup at run time: %v", err)
		bridgePath = "adb"
	}
	bridge := adb.NewService(bridgePath)

	mirrorPath, err := platform.LocateTool("scrcpy", settings.GetMirrorPath())
	if err != nil {
		log.Printf("Mirror tool not found, set its location in the UI: %v", err)
	}
	mirrorSvc := mirror.NewService(mirrorPath)
	scanSvc := scan.NewService(scan.Config{Timeout: settings.GetScanTimeout()})

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, devices, bridge, mirrorSvc, scanSvc)
	defer root.Close()

	// Show and run
	myWindow.ShowAndRun()
}
