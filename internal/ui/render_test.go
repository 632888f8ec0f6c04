package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/ytget/ytdlp-gui/internal/model"
)

func TestFormatLabel(t *testing.T) {
	loc := NewLocalization()

	tests := []struct {
		name     string
		format   model.FormatOption
		expected string
	}{
		{
			name: "muxed with bitrates",
			format: model.FormatOption{
				ID: "299", Height: 1080, FPS: 60, VCodec: "avc1.640028", ACodec: "mp4a.40.2",
				Ext: "mp4", FileSize: 12897485, VBR: 2500, ABR: 128,
			},
			expected: "1080p (avc1+mp4a) 60fps - mp4 (12.3 MB) [v: 2500k+a: 128k]",
		},
		{
			name:     "video only with approximate size",
			format:   model.FormatOption{Height: 720, FPS: 30, VCodec: "vp9", ACodec: "none", Ext: "webm", FileSizeApprox: 1536},
			expected: "720p (vp9, no audio) - webm (~1.5 KB)",
		},
		{
			name:     "unknown height and extension",
			format:   model.FormatOption{VCodec: "avc1", FPS: 29.97},
			expected: "??p (avc1, no audio) - ???",
		},
		{
			name:     "fractional frame rate",
			format:   model.FormatOption{Height: 1440, FPS: 59.94, VCodec: "av01.0.12M.08", ACodec: "opus", Ext: "webm", VBR: 8000.4},
			expected: "1440p (av01+opus) 59.94fps - webm [v: 8000k]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLabel(tt.format, loc); got != tt.expected {
				t.Errorf("FormatLabel() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestFormatLabels_Order(t *testing.T) {
	loc := NewLocalization()
	info := &model.VideoInfo{Formats: []model.FormatOption{
		{ID: "a", Height: 720, VCodec: "avc1", Ext: "mp4"},
		{ID: "b", Height: 1080, VCodec: "avc1", Ext: "mp4"},
		{ID: "c", Height: 480, VCodec: "avc1", Ext: "mp4"},
	}}

	labels := FormatLabels(info.VideoFormats(), loc)
	for i, prefix := range []string{"1080p", "720p", "480p"} {
		if !strings.HasPrefix(labels[i], prefix) {
			t.Errorf("label %d = %q, expected prefix %q", i, labels[i], prefix)
		}
	}
}

func TestMetadataText(t *testing.T) {
	loc := NewLocalization()
	info := &model.VideoInfo{
		Title:       "Test Video",
		UploadDate:  "20240131",
		Duration:    3661,
		ViewCount:   1234567,
		LikeCount:   1000,
		Categories:  []string{"Music", "Entertainment"},
		Tags:        []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"},
		Description: strings.Repeat("a", 400),
	}

	text := MetadataText(info, loc)

	for _, want := range []string{
		"Title: Test Video",
		"Channel: No channel info (#)",
		"Uploaded: 2024-01-31",
		"Duration: 1:01:01",
		"Views: 1,234,567",
		"Likes: 1,000",
		"Comments: 0",
		"Categories: Music, Entertainment",
		"Tags: t1, t2, t3, t4, t5\n",
		"Description:\n" + strings.Repeat("a", DescriptionLimit) + "...",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metadata text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "t6") {
		t.Error("only the first five tags should be shown")
	}
}

func TestMetadataText_Empty(t *testing.T) {
	loc := NewLocalization()
	text := MetadataText(&model.VideoInfo{}, loc)

	for _, want := range []string{"Title: No title", "Categories: None", "Tags: None", "Duration: 00:00"} {
		if !strings.Contains(text, want) {
			t.Errorf("metadata text missing %q:\n%s", want, text)
		}
	}
}

func TestProgressText(t *testing.T) {
	loc := NewLocalization()

	tests := []struct {
		name         string
		event        model.ProgressEvent
		expected     string
		wantFraction float64
		wantOK       bool
	}{
		{
			name:         "half done without estimates",
			event:        model.ProgressEvent{DownloadedBytes: 500, TotalBytes: 1000},
			expected:     "50% (500.0 B/1000.0 B) calculating... ETA: calculating...",
			wantFraction: 0.5,
			wantOK:       true,
		},
		{
			name:         "speed and eta known",
			event:        model.ProgressEvent{DownloadedBytes: 500, TotalBytes: 1000, Speed: 2048, ETA: 75 * time.Second},
			expected:     "50% (500.0 B/1000.0 B) 2.0 KB/s ETA: 01:15",
			wantFraction: 0.5,
			wantOK:       true,
		},
		{
			name:         "estimated total",
			event:        model.ProgressEvent{DownloadedBytes: 512, TotalBytesEstimate: 2048},
			expected:     "25% (512.0 B/2.0 KB) calculating... ETA: calculating...",
			wantFraction: 0.25,
			wantOK:       true,
		},
		{
			name:     "no total",
			event:    model.ProgressEvent{DownloadedBytes: 2048, Speed: 1024},
			expected: "Downloading... 2.0 KB 1.0 KB/s",
		},
		{
			name:     "no total no speed",
			event:    model.ProgressEvent{DownloadedBytes: 2048},
			expected: "Downloading... 2.0 KB calculating...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, fraction, ok := ProgressText(tt.event, loc)
			if text != tt.expected {
				t.Errorf("text = %q, expected %q", text, tt.expected)
			}
			if ok != tt.wantOK || fraction != tt.wantFraction {
				t.Errorf("fraction = %v, %v; expected %v, %v", fraction, ok, tt.wantFraction, tt.wantOK)
			}
		})
	}
}
