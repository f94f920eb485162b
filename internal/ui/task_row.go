package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/billshinji/Vsix-Downloader/internal/model"
)

// TaskRow represents a compact task row widget
type TaskRow struct {
	widget.BaseWidget

	task         *model.DownloadTask
	localization *Localization

	// UI components
	titleLabel  *widget.Label
	statusLabel *widget.Label
	detailLabel *widget.Label

	// Action buttons
	actionBtn *widget.Button // cancel while active, remove when finished
	revealBtn *widget.Button
	copyBtn   *widget.Button

	// Callbacks
	onCancel   func(taskID string)
	onRemove   func(taskID string)
	onReveal   func(filePath string)
	onCopyPath func(filePath string)
}

// NewTaskRow creates a new task row widget
func NewTaskRow(task *model.DownloadTask, localization *Localization) *TaskRow {
	if task == nil {
		task = &model.DownloadTask{ID: "placeholder", Status: model.TaskStatusPending}
	}

	tr := &TaskRow{
		task:         task,
		localization: localization,
	}
	tr.ExtendBaseWidget(tr)
	tr.createUI()
	tr.updateFromTask()
	return tr
}

// SetCallbacks sets the action callbacks
func (tr *TaskRow) SetCallbacks(
	onCancel func(taskID string),
	onRemove func(taskID string),
	onReveal func(filePath string),
	onCopyPath func(filePath string),
) {
	tr.onCancel = onCancel
	tr.onRemove = onRemove
	tr.onReveal = onReveal
	tr.onCopyPath = onCopyPath
}

// UpdateTask updates the row with new task data
func (tr *TaskRow) UpdateTask(task *model.DownloadTask) {
	if task == nil {
		return
	}
	tr.task = task
	tr.updateFromTask()
	tr.Refresh()
}

// createUI creates the UI components
func (tr *TaskRow) createUI() {
	tr.titleLabel = widget.NewLabel("")
	tr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	tr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	tr.statusLabel = widget.NewLabel("")
	tr.statusLabel.Alignment = fyne.TextAlignTrailing

	tr.detailLabel = widget.NewLabel("")
	tr.detailLabel.Truncation = fyne.TextTruncateEllipsis

	tr.actionBtn = widget.NewButton(tr.localization.GetText(KeyCancel), func() {
		currentTask := tr.task
		if currentTask.Status.IsFinished() {
			if tr.onRemove != nil {
				tr.onRemove(currentTask.ID)
			}
			return
		}
		if tr.onCancel != nil {
			tr.onCancel(currentTask.ID)
		}
	})
	tr.actionBtn.Importance = widget.MediumImportance

	tr.revealBtn = widget.NewButton(tr.localization.GetText(KeyReveal), func() {
		currentTask := tr.task
		if currentTask.OutputPath == "" || tr.onReveal == nil {
			return
		}
		tr.onReveal(currentTask.OutputPath)
	})
	tr.revealBtn.Importance = widget.MediumImportance

	tr.copyBtn = widget.NewButton(tr.localization.GetText(KeyCopyPath), func() {
		currentTask := tr.task
		if currentTask.OutputPath == "" || tr.onCopyPath == nil {
			return
		}
		tr.onCopyPath(currentTask.OutputPath)
	})
	tr.copyBtn.Importance = widget.MediumImportance
}

// updateFromTask updates UI components based on task state
func (tr *TaskRow) updateFromTask() {
	if tr.task == nil {
		return
	}

	tr.titleLabel.SetText(tr.task.GetDisplayTitle())

	switch tr.task.Status {
	case model.TaskStatusError:
		tr.statusLabel.Importance = widget.DangerImportance
		tr.statusLabel.SetText(IconError + " " + tr.task.Status.String())
	case model.TaskStatusCompleted:
		tr.statusLabel.Importance = widget.SuccessImportance
		tr.statusLabel.SetText(tr.task.Status.String())
	case model.TaskStatusDownloading, model.TaskStatusCancelling:
		tr.statusLabel.Importance = widget.HighImportance
		tr.statusLabel.SetText(tr.task.Status.String())
	default:
		tr.statusLabel.Importance = widget.MediumImportance
		tr.statusLabel.SetText(tr.task.Status.String())
	}

	tr.detailLabel.SetText(tr.detailText())

	// Finished rows offer removal instead of cancellation
	if tr.task.Status.IsFinished() {
		tr.actionBtn.SetText(tr.localization.GetText(KeyRemove))
	} else {
		tr.actionBtn.SetText(tr.localization.GetText(KeyCancel))
	}

	// Reveal / copy only make sense once a file exists
	if tr.task.OutputPath != "" && tr.task.Status == model.TaskStatusCompleted {
		tr.revealBtn.Enable()
		tr.copyBtn.Enable()
	} else {
		tr.revealBtn.Disable()
		tr.copyBtn.Disable()
	}
}

// detailText builds the secondary line: saved path on success, localized
// failure text on error, duration otherwise.
func (tr *TaskRow) detailText() string {
	switch tr.task.Status {
	case model.TaskStatusCompleted:
		return tr.task.OutputPath + MiddleDotSeparator + tr.task.GetDurationString()
	case model.TaskStatusError:
		text := tr.localization.FailureText(tr.task.FailureKind)
		if tr.task.LastError != "" {
			text += ": " + tr.task.LastError
		}
		return text
	case model.TaskStatusCancelled:
		return tr.localization.GetText(KeyDownloadCancelled)
	default:
		return DashPlaceholder
	}
}

// CreateRenderer creates the widget renderer
func (tr *TaskRow) CreateRenderer() fyne.WidgetRenderer {
	actionRow := container.NewHBox(tr.revealBtn, tr.copyBtn, tr.actionBtn)

	topRow := container.NewBorder(nil, nil, nil, container.NewHBox(tr.statusLabel, actionRow), tr.titleLabel)

	layout := container.NewVBox(
		topRow,
		tr.detailLabel,
		widget.NewSeparator(),
	)

	return widget.NewSimpleRenderer(layout)
}

// MinSize returns the minimum row size
func (tr *TaskRow) MinSize() fyne.Size {
	min := tr.BaseWidget.MinSize()
	if min.Width < RowMinWidth {
		min.Width = RowMinWidth
	}
	if min.Height < RowMinHeight {
		min.Height = RowMinHeight
	}
	return min
}
