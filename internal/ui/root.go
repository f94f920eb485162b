package ui

import (
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/billshinji/Vsix-Downloader/internal/config"
	"github.com/billshinji/Vsix-Downloader/internal/download"
	"github.com/billshinji/Vsix-Downloader/internal/model"
	"github.com/billshinji/Vsix-Downloader/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window

	// Package form
	publisherEntry *widget.Entry
	extensionEntry *widget.Entry
	versionEntry   *widget.Entry
	platformEntry  *widget.SelectEntry
	downloadBtn    *widget.Button

	// Task list
	taskList *widget.List
	tasks    []*model.DownloadTask

	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.publisherEntry = widget.NewEntry()
	ui.publisherEntry.SetPlaceHolder(ui.localization.GetText(KeyPublisher))

	ui.extensionEntry = widget.NewEntry()
	ui.extensionEntry.SetPlaceHolder(ui.localization.GetText(KeyExtension))

	ui.versionEntry = widget.NewEntry()
	ui.versionEntry.SetPlaceHolder(ui.localization.GetText(KeyVersion))
	// Enter in the last field triggers the download
	ui.versionEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.platformEntry = widget.NewSelectEntry(config.KnownTargetPlatforms)
	ui.platformEntry.SetPlaceHolder(ui.localization.GetText(KeyTargetPlatform))
	ui.platformEntry.SetText(ui.settings.GetLastTargetPlatform())

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	formGrid := container.NewGridWithColumns(4,
		ui.publisherEntry,
		ui.extensionEntry,
		ui.versionEntry,
		ui.platformEntry,
	)
	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.downloadBtn, formGrid)

	// Notification panel under the form (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	ui.taskList = widget.NewList(
		func() int {
			return len(ui.tasks)
		},
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)

	content := container.NewBorder(
		topCombined, // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		ui.taskList, // center
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.publisherEntry.SetPlaceHolder(ui.localization.GetText(KeyPublisher))
	ui.extensionEntry.SetPlaceHolder(ui.localization.GetText(KeyExtension))
	ui.versionEntry.SetPlaceHolder(ui.localization.GetText(KeyVersion))
	ui.platformEntry.SetPlaceHolder(ui.localization.GetText(KeyTargetPlatform))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.taskList.Refresh()
}

// buildRequest assembles a DownloadRequest from the form fields
func (ui *RootUI) buildRequest() model.DownloadRequest {
	return model.DownloadRequest{
		Publisher:      strings.TrimSpace(ui.publisherEntry.Text),
		Extension:      strings.TrimSpace(ui.extensionEntry.Text),
		Version:        strings.TrimSpace(ui.versionEntry.Text),
		TargetPlatform: strings.TrimSpace(ui.platformEntry.Text),
	}
}

// onDownloadClick handles the download button click. The required-field
// validation happens here; the fetcher itself does not re-validate.
func (ui *RootUI) onDownloadClick() {
	req := ui.buildRequest()

	if req.Publisher == "" || req.Extension == "" || req.Version == "" {
		ui.showNotification(ui.localization.GetText(KeyFillAllFields), false)
		return
	}

	task, err := ui.downloadSvc.AddTask(req)
	if err != nil {
		if strings.Contains(err.Error(), "already in progress") {
			ui.showNotification(ui.localization.GetText(KeyAlreadyInQueue), false)
		} else {
			ui.showNotification(err.Error(), false)
		}
		return
	}

	log.Printf("Task added: ID=%s, package=%s", task.ID, task.GetDisplayTitle())

	ui.settings.SetLastTargetPlatform(req.TargetPlatform)

	// Newest first
	ui.tasks = append([]*model.DownloadTask{task}, ui.tasks...)
	ui.taskList.Refresh()

	ui.showNotification(ui.localization.GetText(KeyDownloadStarted), true)
}

// onTaskUpdate handles task state changes from the download service. It is
// called from the task goroutine, so all UI work goes through fyne.Do.
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() {
		ui.taskList.Refresh()

		switch task.Status {
		case model.TaskStatusCompleted:
			ui.showNotification(ui.localization.GetText(KeyDownloadCompleted)+MiddleDotSeparator+ui.localization.GetText(KeySavedTo)+" "+task.OutputPath, false)
			if ui.settings.GetAutoRevealOnComplete() {
				ui.onRevealFile(task.OutputPath)
			}
		case model.TaskStatusError:
			ui.showNotification(IconError+" "+ui.localization.FailureText(task.FailureKind), false)
		case model.TaskStatusCancelled:
			ui.showNotification(ui.localization.GetText(KeyDownloadCancelled), false)
		}
	})
}

// showNotification displays a message in the notification panel under the
// form. When spinning is true, a spinner indicates background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.downloadSvc.SetDownloadDirectory(ui.settings.GetDownloadDirectory())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		ui.showNotification(ui.localization.GetText(KeySettingsSaved), false)
	})
}

// createTaskItem creates a new task item widget
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	taskRow := NewTaskRow(nil, ui.localization)
	taskRow.SetCallbacks(
		ui.onCancelTask,
		ui.onRemoveTask,
		ui.onRevealFile,
		ui.onCopyPath,
	)
	return taskRow
}

// updateTaskItem updates a task item with current data
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(ui.tasks) {
		return
	}

	task := ui.tasks[id]
	if task == nil {
		return
	}

	if taskRow, ok := item.(*TaskRow); ok {
		taskRow.SetCallbacks(
			ui.onCancelTask,
			ui.onRemoveTask,
			ui.onRevealFile,
			ui.onCopyPath,
		)
		taskRow.UpdateTask(task)
	}
}

// onCancelTask aborts an active download
func (ui *RootUI) onCancelTask(taskID string) {
	if err := ui.downloadSvc.CancelTask(taskID); err != nil {
		log.Printf("Error cancelling task %s: %v", taskID, err)
	}
}

// onRemoveTask removes a finished task from the list
func (ui *RootUI) onRemoveTask(taskID string) {
	if err := ui.downloadSvc.RemoveTask(taskID); err != nil {
		log.Printf("Error removing task %s: %v", taskID, err)
		return
	}
	for i, task := range ui.tasks {
		if task.ID == taskID {
			ui.tasks = append(ui.tasks[:i], ui.tasks[i+1:]...)
			break
		}
	}
	ui.taskList.Refresh()
}

// onRevealFile shows the saved package in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.RevealFile(filePath); err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		ui.showNotification(ui.localization.GetText(KeyErrorRevealingFile)+": "+err.Error(), false)
	}
}

// onCopyPath copies the saved path to the clipboard
func (ui *RootUI) onCopyPath(filePath string) {
	ui.window.Clipboard().SetContent(filePath)
	ui.showNotification(ui.localization.GetText(KeyPathCopied), false)
}
