package model

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// JobIDPrefix prefixes every generated job identifier
const JobIDPrefix = "job-"

// DownloadJob represents a single download of one format of one video.
// The runner owns it from Start until the terminal event is delivered.
type DownloadJob struct {
	ID          string
	URL         string
	FormatID    string
	Destination string
	Title       string // video title, used for display only

	cancelled atomic.Bool

	mu         sync.RWMutex
	state      JobState
	outputPath string
	lastError  string
	startedAt  time.Time
	finishedAt time.Time
}

// NewDownloadJob creates a job in the Idle state
func NewDownloadJob(url, formatID, destination string) *DownloadJob {
	return &DownloadJob{
		ID:          JobIDPrefix + uuid.NewString(),
		URL:         strings.TrimSpace(url),
		FormatID:    formatID,
		Destination: destination,
		state:       JobStateIdle,
	}
}

// RequestCancel sets the cancellation flag. Safe to call from any goroutine.
func (j *DownloadJob) RequestCancel() {
	j.cancelled.Store(true)
}

// CancelRequested reports whether RequestCancel was called
func (j *DownloadJob) CancelRequested() bool {
	return j.cancelled.Load()
}

// State returns the current state
func (j *DownloadJob) State() JobState {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state
}

// Transition moves the job to the given state if the state machine allows it
func (j *DownloadJob) Transition(to JobState) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !CanTransition(j.state, to) {
		return fmt.Errorf("invalid transition: %s -> %s", j.state, to)
	}
	if to == JobStateCancelled && !j.cancelled.Load() {
		return fmt.Errorf("invalid transition: %s -> %s without cancel request", j.state, to)
	}

	now := time.Now()
	switch {
	case to == JobStateRunning:
		j.startedAt = now
	case to.IsFinished():
		j.finishedAt = now
	}
	j.state = to
	return nil
}

// SetOutputPath records the file the external tool reported writing
func (j *DownloadJob) SetOutputPath(path string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.outputPath = path
}

// OutputPath returns the last reported output file, if any
func (j *DownloadJob) OutputPath() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.outputPath
}

// SetLastError records the failure reason
func (j *DownloadJob) SetLastError(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastError = msg
}

// LastError returns the failure reason, empty unless the job failed
func (j *DownloadJob) LastError() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastError
}

// Elapsed returns how long the job ran, or has been running so far
func (j *DownloadJob) Elapsed() time.Duration {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.startedAt.IsZero() {
		return 0
	}
	if j.finishedAt.IsZero() {
		return time.Since(j.startedAt)
	}
	return j.finishedAt.Sub(j.startedAt)
}
