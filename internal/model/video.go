package model

import (
	"sort"
	"strings"
)

// CodecNone is what yt-dlp reports for a missing stream
const CodecNone = "none"

// MaxDisplayedTags bounds the tags rendered in the info panel
const MaxDisplayedTags = 5

// VideoInfo is the metadata of one video as returned by the extractor.
// Counts and durations are zero when the site does not report them.
type VideoInfo struct {
	ID           string
	URL          string
	Title        string
	Channel      string
	ChannelURL   string
	UploadDate   string // YYYYMMDD as reported by yt-dlp
	Duration     int    // seconds
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Categories   []string
	Tags         []string
	Description  string
	Formats      []FormatOption
}

// FormatOption describes one downloadable encoding of a video.
// Numeric fields are zero when unknown.
type FormatOption struct {
	ID             string
	Height         int
	FPS            float64
	VCodec         string
	ACodec         string
	Ext            string
	FileSize       int64
	FileSizeApprox int64
	VBR            float64 // kbit/s
	ABR            float64 // kbit/s
}

// HasVideo reports whether the format carries a video stream
func (f FormatOption) HasVideo() bool {
	return f.VCodec != "" && f.VCodec != CodecNone
}

// HasAudio reports whether the format carries an audio stream
func (f FormatOption) HasAudio() bool {
	return f.ACodec != "" && f.ACodec != CodecNone
}

// ShortVCodec returns the codec family without profile suffix (avc1.640028 -> avc1)
func (f FormatOption) ShortVCodec() string {
	return shortCodec(f.VCodec)
}

// ShortACodec returns the codec family without profile suffix (mp4a.40.2 -> mp4a)
func (f FormatOption) ShortACodec() string {
	return shortCodec(f.ACodec)
}

// Size returns the exact size when known, else the approximate one
func (f FormatOption) Size() (bytes int64, approx bool, ok bool) {
	if f.FileSize > 0 {
		return f.FileSize, false, true
	}
	if f.FileSizeApprox > 0 {
		return f.FileSizeApprox, true, true
	}
	return 0, false, false
}

func shortCodec(codec string) string {
	if idx := strings.Index(codec, "."); idx >= 0 {
		return codec[:idx]
	}
	return codec
}

// SortFormats orders formats by (height, fps) descending. Ties keep their
// original relative order.
func SortFormats(formats []FormatOption) {
	sort.SliceStable(formats, func(i, j int) bool {
		if formats[i].Height != formats[j].Height {
			return formats[i].Height > formats[j].Height
		}
		return formats[i].FPS > formats[j].FPS
	})
}

// VideoFormats returns a sorted copy of the formats that carry video
func (v *VideoInfo) VideoFormats() []FormatOption {
	out := make([]FormatOption, 0, len(v.Formats))
	for _, f := range v.Formats {
		if f.HasVideo() {
			out = append(out, f)
		}
	}
	SortFormats(out)
	return out
}

// DisplayTags returns at most MaxDisplayedTags tags in their original order
func (v *VideoInfo) DisplayTags() []string {
	if len(v.Tags) <= MaxDisplayedTags {
		return v.Tags
	}
	return v.Tags[:MaxDisplayedTags]
}

// UploadDateDisplay renders YYYYMMDD as YYYY-MM-DD. Anything else is returned as is.
func (v *VideoInfo) UploadDateDisplay() string {
	d := v.UploadDate
	if len(d) != 8 {
		return d
	}
	for _, r := range d {
		if r < '0' || r > '9' {
			return d
		}
	}
	return d[:4] + "-" + d[4:6] + "-" + d[6:]
}
