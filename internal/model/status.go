package model

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but the transfer has not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means the transfer is in flight
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusCancelling means cancellation was requested but the transfer
	// has not wound down yet
	TaskStatusCancelling TaskStatus = "Cancelling"

	// TaskStatusCancelled means the task was cancelled by the user
	TaskStatusCancelled TaskStatus = "Cancelled"

	// TaskStatusCompleted means the package was saved successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with a classified error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusDownloading || ts == TaskStatusCancelling
}

// IsFinished returns true if the task is in a terminal state (completed,
// cancelled, or error). Terminal states are never left again; there is no
// retry or resume transition.
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusCancelled || ts == TaskStatusError
}
