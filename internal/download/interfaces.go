package download

import (
	"github.com/billshinji/Vsix-Downloader/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))
	AddTask(req model.DownloadRequest) (*model.DownloadTask, error)
	GetTask(id string) (*model.DownloadTask, bool)
	GetAllTasks() []*model.DownloadTask
	CancelTask(id string) error
	RemoveTask(id string) error

	// SetDownloadDirectory sets the directory packages are saved into
	SetDownloadDirectory(dir string)
}
