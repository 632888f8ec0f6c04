package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyURL is returned when a fetch is requested without a URL
	ErrEmptyURL = errors.New("empty URL")

	// ErrCancelled is returned from a progress checkpoint to abort a transfer
	// the user cancelled
	ErrCancelled = errors.New("download cancelled")

	// ErrJobActive is returned when a download is started while another runs
	ErrJobActive = errors.New("a download is already running")

	// ErrNoFormats is returned when extraction succeeded but yielded no video formats
	ErrNoFormats = errors.New("no video formats found")
)

// ExtractionError reports a metadata fetch failure: network, invalid URL,
// unsupported site or an empty format list.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extract %s", e.URL)
	}
	return fmt.Sprintf("extract %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// DownloadError reports a transfer failure that was not caused by cancellation
type DownloadError struct {
	URL      string
	FormatID string
	Err      error
}

func (e *DownloadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("download %s (format %s)", e.URL, e.FormatID)
	}
	return fmt.Sprintf("download %s (format %s): %v", e.URL, e.FormatID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
