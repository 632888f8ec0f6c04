package download

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ytget/ytdlp-gui/internal/model"
)

type fakeExtractor struct {
	info          *model.VideoInfo
	infoErr       error
	metadataCalls atomic.Int32
	download      func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error
}

func (f *fakeExtractor) ExtractMetadata(ctx context.Context, url string) (*model.VideoInfo, error) {
	f.metadataCalls.Add(1)
	return f.info, f.infoErr
}

func (f *fakeExtractor) Download(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
	if f.download == nil {
		return nil
	}
	return f.download(ctx, url, formatID, destination, onProgress)
}

func newTestService(extractor Extractor) *Service {
	return NewService(extractor, log.New(io.Discard), 0)
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %d so far", len(out))
			return out
		}
	}
}

func terminalOf(t *testing.T, events []Event) Event {
	t.Helper()
	if len(events) == 0 {
		t.Fatal("Expected at least one event")
	}
	terminals := 0
	for _, ev := range events {
		if ev.Type.IsTerminal() {
			terminals++
		}
	}
	if terminals != 1 {
		t.Fatalf("Expected exactly one terminal event, got %d", terminals)
	}
	last := events[len(events)-1]
	if !last.Type.IsTerminal() {
		t.Fatalf("Expected last event to be terminal, got %s", last.Type)
	}
	return last
}

func videoInfo() *model.VideoInfo {
	return &model.VideoInfo{
		Title: "Test",
		Formats: []model.FormatOption{
			{ID: "22", Height: 720, VCodec: "avc1", ACodec: "mp4a", Ext: "mp4"},
		},
	}
}

func TestNewService(t *testing.T) {
	service := newTestService(&fakeExtractor{})

	if service.bufferSize != DefaultEventBuffer {
		t.Errorf("Expected buffer size %d, got %d", DefaultEventBuffer, service.bufferSize)
	}
	if service.Active() != nil {
		t.Error("Expected no active job")
	}
}

func TestFetchMetadata_EmptyURL(t *testing.T) {
	extractor := &fakeExtractor{info: videoInfo()}
	service := newTestService(extractor)

	for _, url := range []string{"", "   ", "\n\t"} {
		_, err := service.FetchMetadata(context.Background(), url)
		if !errors.Is(err, model.ErrEmptyURL) {
			t.Errorf("FetchMetadata(%q) error = %v, expected ErrEmptyURL", url, err)
		}
	}

	if calls := extractor.metadataCalls.Load(); calls != 0 {
		t.Errorf("Expected no extractor calls, got %d", calls)
	}
}

func TestFetchMetadata_Success(t *testing.T) {
	extractor := &fakeExtractor{info: videoInfo()}
	service := newTestService(extractor)

	info, err := service.FetchMetadata(context.Background(), "  https://youtube.com/watch?v=x ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if info.Title != "Test" {
		t.Errorf("Unexpected title %q", info.Title)
	}
	if calls := extractor.metadataCalls.Load(); calls != 1 {
		t.Errorf("Expected one extractor call, got %d", calls)
	}
}

func TestFetchMetadata_URLFallback(t *testing.T) {
	tests := []struct {
		name     string
		infoURL  string
		expected string
	}{
		{"extractor leaves URL empty", "", "https://youtu.be/x"},
		{"extractor URL kept", "https://www.youtube.com/watch?v=x", "https://www.youtube.com/watch?v=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := videoInfo()
			info.URL = tt.infoURL
			service := newTestService(&fakeExtractor{info: info})

			got, err := service.FetchMetadata(context.Background(), " https://youtu.be/x ")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got.URL != tt.expected {
				t.Errorf("URL = %q, expected %q", got.URL, tt.expected)
			}
		})
	}
}

func TestFetchMetadata_Errors(t *testing.T) {
	network := errors.New("connection refused")

	tests := []struct {
		name      string
		extractor *fakeExtractor
		wantCause error
	}{
		{"extractor error", &fakeExtractor{infoErr: network}, network},
		{"already typed", &fakeExtractor{infoErr: &model.ExtractionError{URL: "u", Err: network}}, network},
		{"no formats", &fakeExtractor{info: &model.VideoInfo{Title: "x"}}, model.ErrNoFormats},
		{"audio only", &fakeExtractor{info: &model.VideoInfo{Formats: []model.FormatOption{{ID: "140", VCodec: "none"}}}}, model.ErrNoFormats},
		{"nil info", &fakeExtractor{}, model.ErrNoFormats},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(tt.extractor)
			_, err := service.FetchMetadata(context.Background(), "https://example.com/v")

			var extractErr *model.ExtractionError
			if !errors.As(err, &extractErr) {
				t.Fatalf("Expected *model.ExtractionError, got %T (%v)", err, err)
			}
			if !errors.Is(err, tt.wantCause) {
				t.Errorf("Expected cause %v, got %v", tt.wantCause, err)
			}
		})
	}
}

func TestStart_Completed(t *testing.T) {
	extractor := &fakeExtractor{
		download: func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
			if formatID != "22" || destination != "/tmp/out" {
				t.Errorf("Unexpected request: %s %s", formatID, destination)
			}
			for _, done := range []int64{0, 500, 1000} {
				if err := onProgress(model.ProgressEvent{
					Status:          model.ProgressDownloading,
					DownloadedBytes: done,
					TotalBytes:      1000,
					Filename:        "/tmp/out/Test.mp4",
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	service := newTestService(extractor)
	job := model.NewDownloadJob("https://example.com/v", "22", "/tmp/out")

	events, err := service.Start(context.Background(), job)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	all := collect(t, events)
	last := terminalOf(t, all)
	if last.Type != EventCompleted {
		t.Fatalf("Expected completed, got %s (%v)", last.Type, last.Err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 3 progress events and 1 terminal, got %d events", len(all))
	}
	if pct, _ := all[1].Progress.Percent(); pct != 50 {
		t.Errorf("Expected second progress at 50%%, got %v", pct)
	}
	if job.State() != model.JobStateCompleted {
		t.Errorf("Expected job Completed, got %s", job.State())
	}
	if job.OutputPath() != "/tmp/out/Test.mp4" {
		t.Errorf("Unexpected output path %q", job.OutputPath())
	}
	if service.Active() != nil {
		t.Error("Expected runner to be idle after completion")
	}
}

func TestStart_Failed(t *testing.T) {
	cause := errors.New("HTTP Error 403: Forbidden")
	service := newTestService(&fakeExtractor{
		download: func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
			return cause
		},
	})
	job := model.NewDownloadJob("https://example.com/v", "22", "/tmp")

	events, err := service.Start(context.Background(), job)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	last := terminalOf(t, collect(t, events))
	if last.Type != EventFailed {
		t.Fatalf("Expected failed, got %s", last.Type)
	}
	var downloadErr *model.DownloadError
	if !errors.As(last.Err, &downloadErr) || !errors.Is(last.Err, cause) {
		t.Errorf("Expected DownloadError wrapping cause, got %v", last.Err)
	}
	if job.State() != model.JobStateFailed {
		t.Errorf("Expected job Failed, got %s", job.State())
	}
	if job.LastError() != cause.Error() {
		t.Errorf("Unexpected last error %q", job.LastError())
	}
}

func TestStart_CancelBeforeAnyProgress(t *testing.T) {
	proceed := make(chan struct{})
	var progressDelivered atomic.Int32

	service := newTestService(&fakeExtractor{
		download: func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
			<-proceed
			for i := 0; i < 3; i++ {
				if err := onProgress(model.ProgressEvent{Status: model.ProgressDownloading, DownloadedBytes: int64(i)}); err != nil {
					// the external tool reports the abort as its own error
					return errors.New("ERROR: interrupted by hook: " + err.Error())
				}
				progressDelivered.Add(1)
			}
			return nil
		},
	})
	job := model.NewDownloadJob("https://example.com/v", "22", "/tmp")

	events, err := service.Start(context.Background(), job)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	service.Cancel(job)
	close(proceed)

	all := collect(t, events)
	last := terminalOf(t, all)
	if last.Type != EventCancelled {
		t.Fatalf("Expected cancelled, got %s (%v)", last.Type, last.Err)
	}
	if last.Err != nil {
		t.Errorf("Cancelled outcome should carry no error, got %v", last.Err)
	}
	if n := progressDelivered.Load(); n != 0 {
		t.Errorf("Expected the first checkpoint to abort, %d progress events passed", n)
	}
	if len(all) != 1 {
		t.Errorf("Expected only the terminal event, got %d events", len(all))
	}
	if job.State() != model.JobStateCancelled {
		t.Errorf("Expected job Cancelled, got %s", job.State())
	}
}

func TestStart_CancelWinsOverSuccess(t *testing.T) {
	proceed := make(chan struct{})
	service := newTestService(&fakeExtractor{
		download: func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
			<-proceed
			return nil
		},
	})
	job := model.NewDownloadJob("https://example.com/v", "22", "/tmp")

	events, err := service.Start(context.Background(), job)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	service.Cancel(job)
	close(proceed)

	if last := terminalOf(t, collect(t, events)); last.Type != EventCancelled {
		t.Errorf("Expected cancelled, got %s", last.Type)
	}
}

func TestStart_CancelMidTransfer(t *testing.T) {
	reached := make(chan struct{})
	resume := make(chan struct{})

	service := newTestService(&fakeExtractor{
		download: func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
			if err := onProgress(model.ProgressEvent{DownloadedBytes: 100, TotalBytes: 1000}); err != nil {
				return err
			}
			close(reached)
			<-resume
			return onProgress(model.ProgressEvent{DownloadedBytes: 200, TotalBytes: 1000})
		},
	})
	job := model.NewDownloadJob("https://example.com/v", "22", "/tmp")

	events, err := service.Start(context.Background(), job)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	<-reached
	service.Cancel(job)
	close(resume)

	all := collect(t, events)
	if last := terminalOf(t, all); last.Type != EventCancelled {
		t.Fatalf("Expected cancelled, got %s", last.Type)
	}
	if len(all) != 2 || all[0].Type != EventProgress {
		t.Errorf("Expected one progress event before cancellation, got %d events", len(all))
	}
}

func TestStart_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	service := newTestService(&fakeExtractor{
		download: func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	job := model.NewDownloadJob("https://example.com/v", "22", "/tmp")

	events, err := service.Start(ctx, job)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	cancel()

	if last := terminalOf(t, collect(t, events)); last.Type != EventCancelled {
		t.Errorf("Expected cancelled on shutdown, got %s", last.Type)
	}
}

func TestStart_SecondJobRejected(t *testing.T) {
	release := make(chan struct{})
	service := newTestService(&fakeExtractor{
		download: func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
			<-release
			return nil
		},
	})

	first := model.NewDownloadJob("https://example.com/1", "22", "/tmp")
	events, err := service.Start(context.Background(), first)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if service.Active() != first {
		t.Error("Expected first job to be active")
	}

	second := model.NewDownloadJob("https://example.com/2", "22", "/tmp")
	if _, err := service.Start(context.Background(), second); !errors.Is(err, model.ErrJobActive) {
		t.Errorf("Expected ErrJobActive, got %v", err)
	}
	if second.State() != model.JobStateIdle {
		t.Errorf("Rejected job should stay Idle, got %s", second.State())
	}

	close(release)
	collect(t, events)

	third := model.NewDownloadJob("https://example.com/3", "22", "/tmp")
	events, err = service.Start(context.Background(), third)
	if err != nil {
		t.Fatalf("Expected start after completion to succeed, got %v", err)
	}
	collect(t, events)
}

func TestStart_RestartFinishedJobRejected(t *testing.T) {
	service := newTestService(&fakeExtractor{})
	job := model.NewDownloadJob("https://example.com/v", "22", "/tmp")

	events, err := service.Start(context.Background(), job)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	collect(t, events)

	if _, err := service.Start(context.Background(), job); err == nil {
		t.Error("Expected error restarting a finished job")
	}
	if _, err := service.Start(context.Background(), nil); err == nil {
		t.Error("Expected error for nil job")
	}
}

func TestStart_SlowConsumerDoesNotBlockWorker(t *testing.T) {
	const updates = 500
	service := NewService(&fakeExtractor{
		download: func(ctx context.Context, url, formatID, destination string, onProgress ProgressFunc) error {
			for i := 0; i < updates; i++ {
				if err := onProgress(model.ProgressEvent{DownloadedBytes: int64(i), TotalBytes: updates}); err != nil {
					return err
				}
			}
			return nil
		},
	}, log.New(io.Discard), 4)
	job := model.NewDownloadJob("https://example.com/v", "22", "/tmp")

	events, err := service.Start(context.Background(), job)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	// Give the worker time to fill the buffer before draining.
	deadline := time.Now().Add(5 * time.Second)
	for job.State() == model.JobStateRunning && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	all := collect(t, events)
	if last := terminalOf(t, all); last.Type != EventCompleted {
		t.Fatalf("Expected completed, got %s", last.Type)
	}
	if len(all) > 5 {
		t.Errorf("Expected at most buffer+1 events, got %d", len(all))
	}
}

func TestCancel_NilJob(t *testing.T) {
	service := newTestService(&fakeExtractor{})
	service.Cancel(nil)
}
