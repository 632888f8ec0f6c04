package download

import (
	"time"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// EventType classifies messages emitted during a download
type EventType string

const (
	EventProgress  EventType = "progress"
	EventCompleted EventType = "completed"
	EventFailed    EventType = "failed"
	EventCancelled EventType = "cancelled"
)

// IsTerminal reports whether the event ends the job's stream
func (t EventType) IsTerminal() bool {
	return t == EventCompleted || t == EventFailed || t == EventCancelled
}

// Event is one message on a job's stream. Progress is set for EventProgress,
// Err for EventFailed.
type Event struct {
	JobID     string
	Type      EventType
	Progress  model.ProgressEvent
	Err       error
	Timestamp time.Time
}
