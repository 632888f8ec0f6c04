package model

import "time"

// ProgressStatus is the phase reported by the extractor's progress hook
type ProgressStatus string

const (
	ProgressStarting    ProgressStatus = "starting"
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
	ProgressError       ProgressStatus = "error"
)

// ProgressEvent is a point-in-time report of an active transfer.
// Zero Speed or ETA means the extractor has not estimated them yet.
type ProgressEvent struct {
	Status             ProgressStatus
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
	Speed              float64 // bytes per second
	ETA                time.Duration
	Filename           string
}

// Total returns the exact total, falling back to the estimate
func (p ProgressEvent) Total() int64 {
	if p.TotalBytes > 0 {
		return p.TotalBytes
	}
	return p.TotalBytesEstimate
}

// Percent returns downloaded/total*100. The second value is false when no
// total is known at all.
func (p ProgressEvent) Percent() (float64, bool) {
	total := p.Total()
	if total <= 0 {
		return 0, false
	}
	return float64(p.DownloadedBytes) / float64(total) * 100, true
}
