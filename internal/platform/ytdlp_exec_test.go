package platform

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ytget/ytdlp-gui/internal/model"
)

const (
	progressDownloading = `progress:{"info":{"id":"x"},"progress":{"status":"downloading","downloaded_bytes":100,"total_bytes":1000,"filename":"out.mp4"}}`
	progressFinished    = `progress:{"info":{"id":"x"},"progress":{"status":"finished","downloaded_bytes":1000,"total_bytes":1000,"filename":"out.mp4"}}`
)

// fakeYTDLP writes a shell script standing in for yt-dlp. The script ignores
// its arguments and runs body.
func fakeYTDLP(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script executables are unix only")
	}

	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write fake yt-dlp: %v", err)
	}
	return path
}

// printLines returns a script body that prints every line to stdout
func printLines(lines ...string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString("printf '%s\\n' '" + line + "'\n")
	}
	return b.String()
}

func TestYTDLP_ExtractMetadata(t *testing.T) {
	exe := fakeYTDLP(t, printLines("[youtube] Extracting URL", sampleInfo))
	y := NewYTDLP(log.New(io.Discard), exe, 0)

	info, err := y.ExtractMetadata(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ExtractMetadata returned error: %v", err)
	}
	if info.Title != "Never Gonna Give You Up" || len(info.Formats) != 3 {
		t.Errorf("Unexpected info: %q with %d formats", info.Title, len(info.Formats))
	}
	if info.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("Expected webpage URL, got %q", info.URL)
	}
}

func TestYTDLP_ExtractMetadata_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "yt-dlp error",
			body:    "echo 'WARNING: retrying' >&2\necho 'ERROR: [generic] Unsupported URL: https://example.com' >&2\nexit 1",
			wantMsg: "[generic] Unsupported URL",
		},
		{
			name:    "no info document",
			body:    printLines("[generic] nothing here"),
			wantMsg: "no metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y := NewYTDLP(log.New(io.Discard), fakeYTDLP(t, tt.body), 0)

			_, err := y.ExtractMetadata(context.Background(), "https://example.com")
			var extractErr *model.ExtractionError
			if !errors.As(err, &extractErr) {
				t.Fatalf("Expected ExtractionError, got %v", err)
			}
			if extractErr.URL != "https://example.com" {
				t.Errorf("Unexpected URL %q", extractErr.URL)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestYTDLP_Download(t *testing.T) {
	exe := fakeYTDLP(t, printLines(progressDownloading, progressFinished))
	y := NewYTDLP(log.New(io.Discard), exe, 0)

	var events []model.ProgressEvent
	err := y.Download(context.Background(), "https://example.com", "137", t.TempDir(), func(ev model.ProgressEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("Expected 2 progress events, got %d", len(events))
	}
	first := events[0]
	if first.Status != model.ProgressDownloading || first.DownloadedBytes != 100 || first.TotalBytes != 1000 {
		t.Errorf("Unexpected first event %+v", first)
	}
	if first.Speed != 0 || first.ETA != 0 {
		t.Errorf("First event should carry no estimates, got speed=%v eta=%v", first.Speed, first.ETA)
	}
	if events[1].Status != model.ProgressFinished {
		t.Errorf("Expected finished status, got %s", events[1].Status)
	}
}

func TestYTDLP_Download_Failure(t *testing.T) {
	exe := fakeYTDLP(t, "echo 'ERROR: Video unavailable' >&2\nexit 1")
	y := NewYTDLP(log.New(io.Discard), exe, 0)

	err := y.Download(context.Background(), "https://example.com", "137", t.TempDir(), func(model.ProgressEvent) error {
		return nil
	})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "Video unavailable") {
		t.Errorf("Expected yt-dlp message first, got %q", err.Error())
	}
}

func TestYTDLP_Download_AbortFromProgress(t *testing.T) {
	// The process would otherwise outlive the test; exec keeps the pid so the
	// kill reaches sleep.
	exe := fakeYTDLP(t, printLines(progressDownloading)+"exec sleep 30")
	y := NewYTDLP(log.New(io.Discard), exe, 0)

	errStop := errors.New("stop requested")
	var (
		mu    sync.Mutex
		calls int
	)

	done := make(chan error, 1)
	go func() {
		done <- y.Download(context.Background(), "https://example.com", "137", t.TempDir(), func(model.ProgressEvent) error {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return errStop
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, errStop) {
			t.Errorf("Expected the progress error back, got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Download did not stop after the progress callback failed")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("Expected one progress call, got %d", calls)
	}
}
