package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/kobepower/CyberNinjaADB/internal/adb"
	"github.com/kobepower/CyberNinjaADB/internal/config"
	"github.com/kobepower/CyberNinjaADB/internal/mirror"
	"github.com/kobepower/CyberNinjaADB/internal/model"
	"github.com/kobepower/CyberNinjaADB/internal/registry"
	"github.com/kobepower/CyberNinjaADB/internal/scan"
)

// UI constants
const (
	DeviceRefreshInterval = 5 * time.Second
	NoDeviceLabel         = "Select Device"

	StatusDisconnected = "Disconnected"
	StatusConnecting   = "Connecting..."
	StatusUSB          = "Connected (USB)"
	StatusWireless     = "Connected (Wireless)"

	LogLines = 200
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	settings *config.Settings

	devices   *registry.Registry
	bridge    adb.Bridge
	mirrorSvc mirror.Mirrorer
	scanSvc   *scan.Service

	statusLabel     *widget.Label
	deviceSelect    *widget.Select
	savedSelect     *widget.Select
	wirelessCheck   *widget.Check
	ipEntry         *widget.Entry
	bitRateEntry    *widget.Entry
	maxSizeEntry    *widget.Entry
	extraEntry      *widget.Entry
	recordPathBtn   *widget.Button
	fullscreenCheck *widget.Check
	recordCheck     *widget.Check
	commandEntry    *widget.Entry
	logView         *widget.Label

	attached       []model.SerialEntry
	selectedSerial string
	logBuffer      []string

	stopRefresh chan struct{}
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, devices *registry.Registry, bridge adb.Bridge, mirrorSvc mirror.Mirrorer, scanSvc *scan.Service) *RootUI {
	ui := &RootUI{
		window:      window,
		settings:    config.NewSettings(app),
		devices:     devices,
		bridge:      bridge,
		mirrorSvc:   mirrorSvc,
		scanSvc:     scanSvc,
		stopRefresh: make(chan struct{}),
	}

	ui.mirrorSvc.SetUpdateCallback(ui.onSessionUpdate)
	ui.devices.SetUpdateCallback(func([]model.Device) {
		fyne.Do(ui.refreshSavedSelect)
	})

	ui.setupUI()
	ui.startDeviceRefresh()

	ui.appendLog("Ready. Bridge and mirror tools are invoked on demand.")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.statusLabel = widget.NewLabel(StatusDisconnected)

	ui.deviceSelect = widget.NewSelect([]string{NoDeviceLabel}, ui.onDeviceSelected)
	ui.deviceSelect.SetSelected(NoDeviceLabel)

	ui.savedSelect = widget.NewSelect(nil, ui.onSavedSelected)
	ui.refreshSavedSelect()
	forgetBtn := widget.NewButton("Forget", ui.onForgetDevice)

	ui.ipEntry = widget.NewEntry()
	ui.ipEntry.SetPlaceHolder("192.168.1.100")
	ui.ipEntry.SetText(ui.settings.GetLastIP())

	ui.wirelessCheck = widget.NewCheck("Enable Wireless Mode", func(bool) {
		ui.settings.SetWireless(ui.wirelessCheck.Checked)
	})
	ui.wirelessCheck.SetChecked(ui.settings.GetWireless())

	scanBtn := widget.NewButton("Scan Network", ui.onScan)
	reconnectBtn := widget.NewButton("Quick Reconnect", ui.onReconnect)
	connectBtn := widget.NewButton("WiFi Connect", ui.onConnect)

	connectionBox := widget.NewCard("Connection", "", container.NewVBox(
		ui.statusLabel,
		container.NewBorder(nil, nil, widget.NewLabel("Device:"), nil, ui.deviceSelect),
		container.NewBorder(nil, nil, widget.NewLabel("Saved:"), forgetBtn, ui.savedSelect),
		ui.wirelessCheck,
		container.NewBorder(nil, nil, widget.NewLabel("Address:"), nil, ui.ipEntry),
		container.NewHBox(scanBtn, reconnectBtn, connectBtn),
	))

	ui.bitRateEntry = widget.NewEntry()
	ui.bitRateEntry.SetText(ui.settings.GetBitRate())
	ui.maxSizeEntry = widget.NewEntry()
	ui.maxSizeEntry.SetText(ui.settings.GetMaxSize())
	ui.extraEntry = widget.NewEntry()
	ui.extraEntry.SetPlaceHolder("--max-fps=30")
	ui.extraEntry.SetText(ui.settings.GetExtraOptions())

	ui.fullscreenCheck = widget.NewCheck("Fullscreen", func(bool) {
		ui.settings.SetFullscreen(ui.fullscreenCheck.Checked)
	})
	ui.fullscreenCheck.SetChecked(ui.settings.GetFullscreen())

	ui.recordCheck = widget.NewCheck("Record Session", func(bool) {
		ui.settings.SetRecord(ui.recordCheck.Checked)
	})
	ui.recordCheck.SetChecked(ui.settings.GetRecord())

	ui.recordPathBtn = widget.NewButton("Choose Record File", ui.onChooseRecordPath)
	locateBtn := widget.NewButton("Locate Mirror Tool", ui.onLocateMirrorTool)
	launchBtn := widget.NewButton("Launch Mirror", ui.onLaunchMirror)
	launchAllBtn := widget.NewButton("Launch All Devices", ui.onLaunchAll)
	stopBtn := widget.NewButton("Stop Sessions", ui.onStopSessions)

	videoBox := widget.NewCard("Mirror Options", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Video Bitrate (e.g. 2M):"), ui.bitRateEntry,
			widget.NewLabel("Max Size (e.g. 1024):"), ui.maxSizeEntry,
			widget.NewLabel("Custom Options:"), ui.extraEntry,
		),
		container.NewHBox(ui.fullscreenCheck, ui.recordCheck, ui.recordPathBtn),
		container.NewHBox(locateBtn, launchBtn, launchAllBtn, stopBtn),
	))

	ui.commandEntry = widget.NewEntry()
	ui.commandEntry.SetPlaceHolder("shell getprop ro.product.model")
	ui.commandEntry.OnSubmitted = func(string) { ui.onRunCommand() }
	runBtn := widget.NewButton("Run Command", ui.onRunCommand)

	terminalBox := widget.NewCard("Bridge Terminal", "Use at your own risk",
		container.NewBorder(nil, nil, nil, runBtn, ui.commandEntry))

	ui.logView = widget.NewLabel("")
	ui.logView.Wrapping = fyne.TextWrapWord
	logScroll := container.NewVScroll(ui.logView)

	content := container.NewBorder(
		container.NewVBox(connectionBox, videoBox, terminalBox), // top
		nil,       // bottom
		nil,       // left
		nil,       // right
		logScroll, // center
	)

	ui.window.SetContent(content)
}

// Close stops the background device refresh
func (ui *RootUI) Close() {
	close(ui.stopRefresh)
}

// startDeviceRefresh polls the bridge tool for attached devices, matching
// the original tool's periodic device list updates
func (ui *RootUI) startDeviceRefresh() {
	go func() {
		ticker := time.NewTicker(DeviceRefreshInterval)
		defer ticker.Stop()

		ui.refreshDevices()
		for {
			select {
			case <-ticker.C:
				ui.refreshDevices()
			case <-ui.stopRefresh:
				return
			}
		}
	}()
}

// refreshDevices re-reads the attached device list and updates the selector
func (ui *RootUI) refreshDevices() {
	entries, err := ui.bridge.Devices(context.Background())
	if err != nil {
		log.Printf("Device listing failed: %v", err)
		return
	}

	options := []string{NoDeviceLabel}
	for _, entry := range entries {
		options = append(options, fmt.Sprintf("%s (%s)", entry.Serial, entry.Mode))
	}

	fyne.Do(func() {
		previous := ui.deviceSelect.Selected
		ui.attached = entries
		ui.deviceSelect.Options = options

		// Keep the user's selection when the device is still attached
		kept := false
		for _, option := range options {
			if option == previous {
				kept = true
				break
			}
		}
		if kept {
			ui.deviceSelect.SetSelected(previous)
		} else {
			ui.deviceSelect.SetSelected(NoDeviceLabel)
			ui.selectedSerial = ""
		}
		ui.deviceSelect.Refresh()
		ui.updateStatus()
	})
}

// onDeviceSelected tracks the selected serial and mirrors wireless
// addresses into the IP entry
func (ui *RootUI) onDeviceSelected(selected string) {
	ui.selectedSerial = ""
	for _, entry := range ui.attached {
		if selected == fmt.Sprintf("%s (%s)", entry.Serial, entry.Mode) {
			ui.selectedSerial = entry.Serial
			if entry.Mode == model.ModeWireless {
				device := model.Device{Address: entry.Serial}
				ui.ipEntry.SetText(device.Host())
			}
			break
		}
	}
	ui.updateStatus()
}

// onSavedSelected fills the address entry from the saved device list
func (ui *RootUI) onSavedSelected(selected string) {
	for _, device := range ui.devices.Devices() {
		if selected == device.DisplayName() {
			ui.ipEntry.SetText(device.Host())
			return
		}
	}
}

// onForgetDevice removes the selected saved device from the registry
func (ui *RootUI) onForgetDevice() {
	selected := ui.savedSelect.Selected
	for _, device := range ui.devices.Devices() {
		if selected == device.DisplayName() {
			if err := ui.devices.Remove(device.Address); err != nil {
				ui.appendLog(fmt.Sprintf("Failed to forget %s: %v", device.Address, err))
				return
			}
			ui.appendLog(fmt.Sprintf("Forgot device %s", device.Address))
			return
		}
	}
}

// refreshSavedSelect rebuilds the saved device selector from the registry
func (ui *RootUI) refreshSavedSelect() {
	var options []string
	for _, device := range ui.devices.Devices() {
		options = append(options, device.DisplayName())
	}
	ui.savedSelect.Options = options
	ui.savedSelect.Refresh()
}

// updateStatus reflects the current selection in the status label
func (ui *RootUI) updateStatus() {
	switch {
	case ui.selectedSerial == "":
		ui.statusLabel.SetText(StatusDisconnected)
	case strings.Contains(ui.selectedSerial, ":"):
		ui.statusLabel.SetText(StatusWireless)
	default:
		ui.statusLabel.SetText(StatusUSB)
	}
}

// onScan sweeps the local subnet for devices listening on the bridge port
// and registers every address that accepts a connect
func (ui *RootUI) onScan() {
	if !ui.wirelessCheck.Checked {
		ui.appendLog("Enable Wireless Mode to scan for devices.")
		return
	}

	base := ui.ipEntry.Text
	if base == "" {
		base = scan.LocalAddress()
	}

	ui.appendLog(fmt.Sprintf("Scanning subnet around %s ...", base))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		results := ui.scanSvc.ScanSubnet(ctx, base)
		results = append(results, scan.BrowseMDNS(ctx)...)

		var found []string
		for _, result := range results {
			if !result.Responded {
				continue
			}
			connect := ui.bridge.Connect(ctx, result.Address)
			if !connect.Ok {
				continue
			}
			found = append(found, result.Address)
			saved := model.Device{Address: result.Address}.DialAddress()
			if _, err := ui.devices.Upsert(model.Device{Address: saved}); err != nil {
				log.Printf("Failed to save discovered device %s: %v", result.Address, err)
			}
			ui.appendLog(fmt.Sprintf("Found device: %s", result.Address))
		}

		if len(found) == 0 {
			ui.appendLog("No devices found on network")
			return
		}

		first := found[0]
		fyne.Do(func() {
			ui.ipEntry.SetText(first)
		})
		ui.appendLog(fmt.Sprintf("Scan done: %s", strings.Join(found, ", ")))
	}()
}

// onConnect performs a plain wireless connect to the entered address
func (ui *RootUI) onConnect() {
	address := strings.TrimSpace(ui.ipEntry.Text)
	if address == "" {
		ui.appendLog("No address entered. Set your device address in the input box above.")
		return
	}

	ui.statusLabel.SetText(StatusConnecting)
	go func() {
		result := ui.bridge.Connect(context.Background(), address)
		ui.appendLog(result.Output)
		ui.finishConnect(address, result.Ok)
	}()
}

// onReconnect re-establishes the last wireless connection, switching a USB
// device into network mode first when one is attached
func (ui *RootUI) onReconnect() {
	if !ui.wirelessCheck.Checked {
		ui.appendLog("Enable Wireless Mode to reconnect via WiFi.")
		return
	}

	address := strings.TrimSpace(ui.ipEntry.Text)
	if address == "" {
		if last, ok := ui.devices.Last(); ok {
			address = last.Host()
		}
	}
	if address == "" {
		ui.appendLog("No address entered and no saved device to reconnect to.")
		return
	}

	ui.statusLabel.SetText(StatusConnecting)
	go func() {
		result := ui.bridge.Reconnect(context.Background(), address)
		ui.appendLog(result.Output)
		ui.finishConnect(address, result.Ok)
	}()
}

// finishConnect updates registry and UI state after a connect attempt
func (ui *RootUI) finishConnect(address string, ok bool) {
	if ok {
		device := model.Device{Address: address}
		if _, err := ui.devices.Upsert(model.Device{Address: device.DialAddress()}); err != nil {
			log.Printf("Failed to save device %s: %v", address, err)
		}
		ui.settings.SetLastIP(address)
	}

	fyne.Do(func() {
		if ok {
			ui.statusLabel.SetText(StatusWireless)
			ui.selectedSerial = model.Device{Address: address}.DialAddress()
		} else {
			ui.statusLabel.SetText(StatusDisconnected)
		}
	})
	ui.refreshDevices()
}

// mirrorOptions assembles session options from the current form state
func (ui *RootUI) mirrorOptions(serial string) mirror.Options {
	ui.settings.SetBitRate(ui.bitRateEntry.Text)
	ui.settings.SetMaxSize(ui.maxSizeEntry.Text)
	ui.settings.SetExtraOptions(ui.extraEntry.Text)

	return mirror.Options{
		Serial:     serial,
		Fullscreen: ui.fullscreenCheck.Checked,
		Record:     ui.recordCheck.Checked,
		RecordPath: ui.settings.GetRecordPath(),
		BitRate:    ui.bitRateEntry.Text,
		MaxSize:    ui.maxSizeEntry.Text,
		ExtraArgs:  ui.extraEntry.Text,
	}
}

// onLaunchMirror starts a mirror session for the selected device
func (ui *RootUI) onLaunchMirror() {
	if ui.selectedSerial == "" {
		ui.appendLog("No device selected")
		return
	}

	go func() {
		session, err := ui.mirrorSvc.Start(ui.mirrorOptions(ui.selectedSerial))
		if err != nil {
			ui.appendLog(fmt.Sprintf("Error launching mirror: %v", err))
			return
		}
		ui.appendLog(fmt.Sprintf("Mirror launched for %s (session %s)", session.Serial, session.ID))
	}()
}

// onLaunchAll starts one mirror session per saved device
func (ui *RootUI) onLaunchAll() {
	saved := ui.devices.Devices()
	if len(saved) == 0 {
		ui.appendLog("No saved devices to launch.")
		return
	}

	entries := make([]model.SerialEntry, 0, len(saved))
	for _, device := range saved {
		entries = append(entries, model.SerialEntry{Serial: device.DialAddress(), Mode: model.ModeWireless})
	}

	options := ui.mirrorOptions("")
	ui.appendLog(fmt.Sprintf("Launching mirror for %d devices...", len(entries)))
	go func() {
		sessions := ui.mirrorSvc.StartAll(entries, options)
		ui.appendLog(fmt.Sprintf("Launched %d of %d sessions", len(sessions), len(entries)))
	}()
}

// onStopSessions terminates every active mirror session
func (ui *RootUI) onStopSessions() {
	active := ui.mirrorSvc.ActiveSessions()
	if len(active) == 0 {
		ui.appendLog("No active mirror sessions")
		return
	}
	for _, session := range active {
		if err := ui.mirrorSvc.Stop(session.ID); err != nil {
			ui.appendLog(fmt.Sprintf("Failed to stop session %s: %v", session.ID, err))
		}
	}
}

// onSessionUpdate reports mirror session state changes in the log pane
func (ui *RootUI) onSessionUpdate(session *mirror.Session) {
	switch session.Status {
	case model.SessionStatusStopped:
		ui.appendLog(fmt.Sprintf("Mirror session for %s stopped", session.Serial))
	case model.SessionStatusExited:
		ui.appendLog(fmt.Sprintf("Mirror session for %s ended", session.Serial))
	case model.SessionStatusError:
		ui.appendLog(fmt.Sprintf("Mirror session for %s failed: %s", session.Serial, session.LastError))
	}
}

// onRunCommand runs a filtered custom bridge tool command
func (ui *RootUI) onRunCommand() {
	argsText := strings.TrimSpace(ui.commandEntry.Text)
	if argsText == "" {
		ui.appendLog("No command provided")
		return
	}

	go func() {
		result, err := ui.bridge.RunCommand(context.Background(), ui.selectedSerial, argsText)
		if err != nil {
			ui.appendLog(fmt.Sprintf("Refused: %v", err))
			return
		}
		if result.Output != "" {
			ui.appendLog(result.Output)
		}
		if !result.Ok {
			ui.appendLog("Command failed")
		}
	}()
}

// onChooseRecordPath lets the user pick where recordings go
func (ui *RootUI) onChooseRecordPath() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		ui.settings.SetRecordPath(path)
		ui.appendLog(fmt.Sprintf("Recording to %s", path))
	}, ui.window)
}

// onLocateMirrorTool lets the user pick the mirroring tool executable
func (ui *RootUI) onLocateMirrorTool() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		ui.settings.SetMirrorPath(path)
		ui.mirrorSvc.SetBinary(path)
		ui.appendLog(fmt.Sprintf("Mirror tool path set to: %s", path))
	}, ui.window)
}

// appendLog adds a line to the log pane, trimming old entries. Safe to
// call from any goroutine.
func (ui *RootUI) appendLog(text string) {
	if text == "" {
		return
	}
	log.Print(text)

	fyne.Do(func() {
		ui.logBuffer = append(ui.logBuffer, text)
		if len(ui.logBuffer) > LogLines {
			ui.logBuffer = ui.logBuffer[len(ui.logBuffer)-LogLines:]
		}
		ui.logView.SetText(strings.Join(ui.logBuffer, "\n"))
	})
}
