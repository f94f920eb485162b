package download

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/billshinji/Vsix-Downloader/internal/marketplace"
	"github.com/billshinji/Vsix-Downloader/internal/model"
)

// Service handles download operations
type Service struct {
	tasks       map[string]*model.DownloadTask
	cancels     map[string]context.CancelFunc
	tasksMutex  sync.RWMutex
	fetcher     *marketplace.Fetcher
	downloadDir string
	onUpdate    func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service saving into downloadDir
func NewService(downloadDir string) *Service {
	s := &Service{
		tasks:       make(map[string]*model.DownloadTask),
		cancels:     make(map[string]context.CancelFunc),
		downloadDir: downloadDir,
	}
	s.fetcher = marketplace.NewFetcher()
	s.fetcher.ResolveDir = s.resolveDir
	return s
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.onUpdate = callback
}

// SetDownloadDirectory sets the directory packages are saved into.
// Tasks already in flight keep the directory they started with.
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.downloadDir = dir
}

func (s *Service) resolveDir() (string, error) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	if s.downloadDir == "" {
		return "", fmt.Errorf("download directory is not configured")
	}
	return s.downloadDir, nil
}

// AddTask registers a download for the requested package and starts the
// transfer immediately. A request deriving the same destination filename as
// an unfinished task is rejected.
func (s *Service) AddTask(req model.DownloadRequest) (*model.DownloadTask, error) {
	filename := marketplace.PackageFilename(req)

	s.tasksMutex.Lock()
	for _, task := range s.tasks {
		if !task.Status.IsFinished() && marketplace.PackageFilename(task.Request) == filename {
			s.tasksMutex.Unlock()
			return nil, fmt.Errorf("download already in progress for %s", filename)
		}
	}

	task := &model.DownloadTask{
		ID:      generateTaskID(),
		Request: req,
		Status:  model.TaskStatusPending,
	}
	s.tasks[task.ID] = task

	ctx, cancel := context.WithCancel(context.Background())
	s.cancels[task.ID] = cancel
	s.tasksMutex.Unlock()

	go s.runTask(ctx, task)

	return task, nil
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	return task, exists
}

// GetAllTasks returns all tasks
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	return tasks
}

// CancelTask aborts an unfinished task. The in-flight transfer winds down
// through its context; the terminal status is set by the task goroutine.
func (s *Service) CancelTask(id string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}
	if task.Status.IsFinished() {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task already finished: %s", task.Status)
	}

	task.Status = model.TaskStatusCancelling
	cancel := s.cancels[id]
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	if cancel != nil {
		cancel()
	}
	return nil
}

// RemoveTask removes a finished task from the list
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if !task.Status.IsFinished() {
		return fmt.Errorf("task is still active: %s", task.Status)
	}

	delete(s.tasks, id)
	delete(s.cancels, id)
	return nil
}

// runTask executes the transfer and records the terminal state
func (s *Service) runTask(ctx context.Context, task *model.DownloadTask) {
	s.tasksMutex.Lock()
	// A cancel may land while the task is still pending; keep that visible.
	if task.Status == model.TaskStatusPending {
		task.Status = model.TaskStatusDownloading
	}
	task.StartedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	saved, err := s.fetcher.Fetch(ctx, task.Request)

	s.tasksMutex.Lock()
	switch {
	case err == nil:
		task.Status = model.TaskStatusCompleted
		task.OutputPath = saved
	case ctx.Err() != nil:
		task.Status = model.TaskStatusCancelled
	default:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		if kind, ok := model.KindOf(err); ok {
			task.FailureKind = kind
		}
		log.Printf("Download failed for task %s: %v", task.ID, err)
	}
	task.FinishedAt = time.Now()
	delete(s.cancels, task.ID)
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return "task-" + uuid.NewString()
}
