package download

import (
	"context"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// ProgressFunc receives each progress checkpoint of a transfer. Returning a
// non-nil error aborts the transfer.
type ProgressFunc = func(model.ProgressEvent) error

// Extractor is the external extraction capability.
type Extractor interface {
	ExtractMetadata(ctx context.Context, url string) (*model.VideoInfo, error)
	Download(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error
}

// Runner defines the interface for the background task runner.
type Runner interface {
	// FetchMetadata blocks until the extractor answers; callers run it off the UI thread.
	FetchMetadata(ctx context.Context, url string) (*model.VideoInfo, error)

	// Start launches job on a worker goroutine and returns its event stream.
	Start(ctx context.Context, job *model.DownloadJob) (<-chan Event, error)

	// Cancel requests cooperative cancellation of job; it never blocks.
	Cancel(job *model.DownloadJob)

	// Active returns the running job, or nil when idle.
	Active() *model.DownloadJob
}
