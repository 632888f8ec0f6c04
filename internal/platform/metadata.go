package platform

import (
	"errors"
	"fmt"
	"math"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytdlp-gui/internal/model"
)

var errNoMetadata = errors.New("no metadata in yt-dlp output")

// ParseMetadata returns the first info document yt-dlp printed for res
func ParseMetadata(res *ytdlp.Result) (*model.VideoInfo, error) {
	if res == nil {
		return nil, errNoMetadata
	}
	infos, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("decode yt-dlp output: %w", err)
	}
	for _, info := range infos {
		if info != nil {
			return VideoInfoFrom(info), nil
		}
	}
	return nil, errNoMetadata
}

// VideoInfoFrom maps go-ytdlp's extracted info onto the app's model.
// go-ytdlp reports "none" codecs as nil, which map to an empty codec.
func VideoInfoFrom(e *ytdlp.ExtractedInfo) *model.VideoInfo {
	info := &model.VideoInfo{
		ID:           e.ID,
		URL:          str(e.WebpageURL),
		Title:        str(e.Title),
		Channel:      firstNonEmpty(str(e.Channel), str(e.Uploader)),
		ChannelURL:   firstNonEmpty(str(e.ChannelURL), str(e.UploaderURL)),
		UploadDate:   str(e.UploadDate),
		Duration:     int(num(e.Duration)),
		ViewCount:    int64(math.Round(num(e.ViewCount))),
		LikeCount:    int64(math.Round(num(e.LikeCount))),
		CommentCount: int64(math.Round(num(e.CommentCount))),
		Categories:   e.Categories,
		Tags:         e.Tags,
		Description:  str(e.Description),
		Formats:      make([]model.FormatOption, 0, len(e.Formats)),
	}

	for _, f := range e.Formats {
		if f == nil {
			continue
		}
		info.Formats = append(info.Formats, model.FormatOption{
			ID:             str(f.FormatID),
			Height:         int(num(f.Height)),
			FPS:            num(f.FPS),
			VCodec:         str(f.VCodec),
			ACodec:         str(f.ACodec),
			Ext:            str(f.Extension),
			FileSize:       int64(integer(f.FileSize)),
			FileSizeApprox: int64(integer(f.FileSizeApprox)),
			VBR:            num(f.VBR),
			ABR:            num(f.ABR),
		})
	}
	return info
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func num(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func integer(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
