package platform

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// OutputTemplate names the downloaded file after the video title
const OutputTemplate = "%(title)s.%(ext)s"

// DefaultProgressInterval throttles progress hook invocations
const DefaultProgressInterval = 250 * time.Millisecond

// minEstimateWindow is how long a transfer must run before speed and ETA
// are reported. Earlier samples divide by a near-zero elapsed time.
const minEstimateWindow = time.Second

// errorLinePrefix marks yt-dlp's own error lines on stderr
const errorLinePrefix = "ERROR:"

// YTDLP extracts metadata and downloads formats by running yt-dlp through
// go-ytdlp.
type YTDLP struct {
	log              *log.Logger
	executable       string
	progressInterval time.Duration
}

// NewYTDLP creates an extractor. An empty executable lets go-ytdlp resolve it.
func NewYTDLP(logger *log.Logger, executable string, progressInterval time.Duration) *YTDLP {
	if progressInterval <= 0 {
		progressInterval = DefaultProgressInterval
	}
	return &YTDLP{
		log:              logger.With("component", "ytdlp"),
		executable:       executable,
		progressInterval: progressInterval,
	}
}

// Install resolves the yt-dlp binary, downloading it into go-ytdlp's cache
// when allowed and no system binary is found.
func Install(ctx context.Context, logger *log.Logger, allowDownload bool) (string, error) {
	resolved, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{
		DisableDownload: !allowDownload,
	})
	if err != nil {
		return "", fmt.Errorf("resolve yt-dlp: %w", err)
	}
	logger.Info("yt-dlp resolved", "executable", resolved.Executable, "version", resolved.Version)
	return resolved.Executable, nil
}

func (y *YTDLP) command() *ytdlp.Command {
	cmd := ytdlp.New().NoPlaylist()
	if y.executable != "" {
		cmd.SetExecutable(y.executable)
	}
	return cmd
}

// ExtractMetadata fetches the info document for url without downloading media
func (y *YTDLP) ExtractMetadata(ctx context.Context, url string) (*model.VideoInfo, error) {
	y.log.Debug("extracting metadata", "url", url)

	res, err := y.command().SkipDownload().DumpJSON().Run(ctx, url)
	if err != nil {
		return nil, &model.ExtractionError{URL: url, Err: summarizeFailure(err, res)}
	}

	info, err := ParseMetadata(res)
	if err != nil {
		return nil, &model.ExtractionError{URL: url, Err: err}
	}
	if info.URL == "" {
		info.URL = url
	}

	y.log.Info("metadata extracted", "url", url, "title", info.Title, "formats", len(info.Formats))
	return info, nil
}

// Download fetches one format of url into destination. Every progress hook
// invocation is forwarded to onProgress; a non-nil return aborts the transfer
// and is returned from Download as is.
func (y *YTDLP) Download(ctx context.Context, url, formatID, destination string, onProgress func(model.ProgressEvent) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		abortMu  sync.Mutex
		abortErr error
	)
	aborted := func() error {
		abortMu.Lock()
		defer abortMu.Unlock()
		return abortErr
	}
	abort := func(err error) {
		abortMu.Lock()
		defer abortMu.Unlock()
		if abortErr == nil {
			abortErr = err
			cancel()
		}
	}

	cmd := y.command().
		Format(formatID).
		Output(filepath.Join(destination, OutputTemplate)).
		ProgressFunc(y.progressInterval, func(prog ytdlp.ProgressUpdate) {
			if aborted() != nil {
				return
			}
			if err := onProgress(progressEvent(prog)); err != nil {
				abort(err)
			}
		})

	y.log.Info("download starting", "url", url, "format", formatID, "destination", destination)

	res, err := cmd.Run(runCtx, url)
	if reason := aborted(); reason != nil {
		y.log.Info("download aborted", "url", url, "reason", reason)
		return reason
	}
	if err != nil {
		return summarizeFailure(err, res)
	}
	return nil
}

// progressEvent converts a go-ytdlp progress update into the app's event.
// go-ytdlp already folds total_bytes_estimate into TotalBytes. Speed and ETA
// stay zero (unknown) until minEstimateWindow has elapsed, and a sub-second
// ETA is also unknown.
func progressEvent(prog ytdlp.ProgressUpdate) model.ProgressEvent {
	ev := model.ProgressEvent{
		Status:          progressStatus(string(prog.Status)),
		DownloadedBytes: int64(prog.DownloadedBytes),
		TotalBytes:      int64(prog.TotalBytes),
		Filename:        prog.Filename,
	}

	elapsed := prog.Duration()
	if elapsed < minEstimateWindow {
		return ev
	}
	if prog.DownloadedBytes > 0 {
		ev.Speed = float64(prog.DownloadedBytes) / elapsed.Seconds()
	}
	if eta := prog.ETA(); eta >= time.Second {
		ev.ETA = eta
	}
	return ev
}

func progressStatus(status string) model.ProgressStatus {
	switch status {
	case "starting":
		return model.ProgressStarting
	case "finished", "post_processing":
		return model.ProgressFinished
	case "error":
		return model.ProgressError
	default:
		return model.ProgressDownloading
	}
}

// summarizeFailure prefers yt-dlp's own ERROR line over the generic exit error
func summarizeFailure(err error, res *ytdlp.Result) error {
	if errors.Is(err, context.Canceled) || res == nil {
		return err
	}
	if line := lastErrorLine(res.Stderr); line != "" {
		return fmt.Errorf("%s: %w", line, err)
	}
	return err
}

func lastErrorLine(stderr string) string {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, errorLinePrefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, errorLinePrefix))
		}
	}
	return ""
}
