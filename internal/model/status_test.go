package model

import "testing"

func TestTaskStatusIsActive(t *testing.T) {
	activeStatuses := []TaskStatus{TaskStatusDownloading, TaskStatusCancelling}
	for _, status := range activeStatuses {
		if !status.IsActive() {
			t.Errorf("Expected %s to be active", status)
		}
	}

	inactiveStatuses := []TaskStatus{TaskStatusPending, TaskStatusCompleted, TaskStatusCancelled, TaskStatusError}
	for _, status := range inactiveStatuses {
		if status.IsActive() {
			t.Errorf("Expected %s to not be active", status)
		}
	}
}

func TestTaskStatusIsFinished(t *testing.T) {
	finishedStatuses := []TaskStatus{TaskStatusCompleted, TaskStatusCancelled, TaskStatusError}
	for _, status := range finishedStatuses {
		if !status.IsFinished() {
			t.Errorf("Expected %s to be finished", status)
		}
	}

	unfinishedStatuses := []TaskStatus{TaskStatusPending, TaskStatusDownloading, TaskStatusCancelling}
	for _, status := range unfinishedStatuses {
		if status.IsFinished() {
			t.Errorf("Expected %s to not be finished", status)
		}
	}
}

func TestTaskStatusString(t *testing.T) {
	if TaskStatusDownloading.String() != "Downloading" {
		t.Errorf("Expected 'Downloading', got '%s'", TaskStatusDownloading.String())
	}
}
