package model

import (
	"fmt"
	"time"
)

// DownloadTask represents a single package download task
type DownloadTask struct {
	ID          string
	Request     DownloadRequest
	Status      TaskStatus
	OutputPath  string    // absolute path of the saved package, set on success
	LastError   string    // last error message if any
	FailureKind ErrorKind // set when Status is Error
	StartedAt   time.Time // when the transfer started
	FinishedAt  time.Time // when the task reached a terminal state
}

// GetDisplayTitle returns the package coordinates for the task row title,
// e.g. "ms-vscode.cpptools 1.20.5" or "ms-vscode.cpptools 1.20.5 (darwin-arm64)".
func (dt *DownloadTask) GetDisplayTitle() string {
	title := fmt.Sprintf("%s.%s %s", dt.Request.Publisher, dt.Request.Extension, dt.Request.Version)
	if dt.Request.TargetPlatform != "" {
		title += fmt.Sprintf(" (%s)", dt.Request.TargetPlatform)
	}
	return title
}

// GetDurationString returns the elapsed transfer time as m:ss, or "—" while
// the task has not finished.
func (dt *DownloadTask) GetDurationString() string {
	if dt.FinishedAt.IsZero() || dt.StartedAt.IsZero() {
		return "—"
	}
	elapsed := dt.FinishedAt.Sub(dt.StartedAt).Round(time.Second)
	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
