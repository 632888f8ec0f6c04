package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// DefaultEventBuffer is the per-job event channel capacity
const DefaultEventBuffer = 64

// Service is the background task runner. It allows one active download.
type Service struct {
	extractor  Extractor
	log        *log.Logger
	bufferSize int

	mu     sync.Mutex
	active *model.DownloadJob
}

// NewService creates a runner on top of extractor
func NewService(extractor Extractor, logger *log.Logger, bufferSize int) *Service {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBuffer
	}
	return &Service{
		extractor:  extractor,
		log:        logger.With("component", "runner"),
		bufferSize: bufferSize,
	}
}

// FetchMetadata validates url and asks the extractor for its metadata.
// Every extractor failure is reported as *model.ExtractionError.
func (s *Service) FetchMetadata(ctx context.Context, url string) (*model.VideoInfo, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, model.ErrEmptyURL
	}

	started := time.Now()
	info, err := s.extractor.ExtractMetadata(ctx, url)
	if err != nil {
		var extractErr *model.ExtractionError
		if !errors.As(err, &extractErr) {
			err = &model.ExtractionError{URL: url, Err: err}
		}
		s.log.Warn("metadata fetch failed", "url", url, "err", err)
		return nil, err
	}
	if info == nil || len(info.VideoFormats()) == 0 {
		return nil, &model.ExtractionError{URL: url, Err: model.ErrNoFormats}
	}
	if info.URL == "" {
		info.URL = url
	}

	s.log.Debug("metadata fetched", "url", url, "took", time.Since(started))
	return info, nil
}

// Start moves job to Running and downloads it on a new goroutine. The returned
// channel yields progress events, then exactly one terminal event, then closes.
func (s *Service) Start(ctx context.Context, job *model.DownloadJob) (<-chan Event, error) {
	if job == nil {
		return nil, fmt.Errorf("job is nil")
	}

	s.mu.Lock()
	if s.active != nil {
		s.mu.Unlock()
		return nil, model.ErrJobActive
	}
	if err := job.Transition(model.JobStateRunning); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.active = job
	s.mu.Unlock()

	s.log.Info("download started", "job", job.ID, "url", job.URL, "format", job.FormatID)

	events := make(chan Event, s.bufferSize)
	go s.run(ctx, job, events)
	return events, nil
}

// Cancel sets the job's cancellation flag. The transfer stops at its next
// progress checkpoint; the in-flight chunk still completes.
func (s *Service) Cancel(job *model.DownloadJob) {
	if job == nil {
		return
	}
	job.RequestCancel()
	s.log.Info("cancel requested", "job", job.ID)
}

// Active returns the running job, or nil when idle
func (s *Service) Active() *model.DownloadJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Service) run(ctx context.Context, job *model.DownloadJob, events chan<- Event) {
	defer close(events)

	err := s.extractor.Download(ctx, job.URL, job.FormatID, job.Destination, func(p model.ProgressEvent) error {
		if job.CancelRequested() || ctx.Err() != nil {
			return model.ErrCancelled
		}
		if p.Filename != "" {
			job.SetOutputPath(p.Filename)
		}
		s.emitProgress(job, events, p)
		return nil
	})

	terminal := s.finish(ctx, job, err)

	// Release before delivering the outcome so the consumer may start the next job right away.
	s.mu.Lock()
	if s.active == job {
		s.active = nil
	}
	s.mu.Unlock()

	events <- terminal
}

// finish applies the outcome rule: a cancel request wins over any error.
func (s *Service) finish(ctx context.Context, job *model.DownloadJob, err error) Event {
	ev := Event{JobID: job.ID, Timestamp: time.Now()}

	if ctx.Err() != nil {
		job.RequestCancel()
	}

	switch {
	case job.CancelRequested():
		ev.Type = EventCancelled
		s.transition(job, model.JobStateCancelled)
		s.log.Info("download cancelled", "job", job.ID, "elapsed", job.Elapsed())
	case err != nil:
		ev.Type = EventFailed
		ev.Err = &model.DownloadError{URL: job.URL, FormatID: job.FormatID, Err: err}
		job.SetLastError(err.Error())
		s.transition(job, model.JobStateFailed)
		s.log.Error("download failed", "job", job.ID, "err", err)
	default:
		ev.Type = EventCompleted
		s.transition(job, model.JobStateCompleted)
		s.log.Info("download completed", "job", job.ID, "output", job.OutputPath(), "elapsed", job.Elapsed())
	}
	return ev
}

func (s *Service) transition(job *model.DownloadJob, to model.JobState) {
	if err := job.Transition(to); err != nil {
		s.log.Error("job transition", "job", job.ID, "err", err)
	}
}

// emitProgress never blocks the worker: a full buffer drops the update, the
// next one carries fresher numbers anyway.
func (s *Service) emitProgress(job *model.DownloadJob, events chan<- Event, p model.ProgressEvent) {
	select {
	case events <- Event{JobID: job.ID, Type: EventProgress, Progress: p, Timestamp: time.Now()}:
	default:
		s.log.Debug("progress dropped", "job", job.ID, "downloaded", p.DownloadedBytes)
	}
}
