package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ytget/ytdlp-gui/internal/humanize"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// FormatLabel renders one entry of the format list, e.g.
// "1080p (avc1+mp4a) 60fps - mp4 (12.3 MB) [v: 2500k+a: 128k]"
func FormatLabel(f model.FormatOption, loc *Localization) string {
	var b strings.Builder

	if f.Height > 0 {
		b.WriteString(strconv.Itoa(f.Height) + "p")
	} else {
		b.WriteString(UnknownHeight)
	}

	switch {
	case f.HasAudio():
		fmt.Fprintf(&b, " (%s+%s)", f.ShortVCodec(), f.ShortACodec())
	case f.ShortVCodec() != "":
		fmt.Fprintf(&b, " (%s, %s)", f.ShortVCodec(), loc.GetText(KeyNoAudio))
	}

	if f.FPS > HighFrameRate {
		b.WriteString(" " + strconv.FormatFloat(f.FPS, 'f', -1, 64) + "fps")
	}

	ext := f.Ext
	if ext == "" {
		ext = UnknownExt
	}
	b.WriteString(" - " + ext)

	if size, approx, ok := f.Size(); ok {
		prefix := ""
		if approx {
			prefix = ApproxSizePrefix
		}
		fmt.Fprintf(&b, " (%s%s)", prefix, humanize.Size(float64(size)))
	}

	var rates []string
	if f.VBR > 0 {
		rates = append(rates, fmt.Sprintf("v: %.0fk", f.VBR))
	}
	if f.ABR > 0 {
		rates = append(rates, fmt.Sprintf("a: %.0fk", f.ABR))
	}
	if len(rates) > 0 {
		b.WriteString(" [" + strings.Join(rates, "+") + "]")
	}

	return b.String()
}

// FormatLabels renders formats in order
func FormatLabels(formats []model.FormatOption, loc *Localization) []string {
	labels := make([]string, len(formats))
	for i, f := range formats {
		labels[i] = FormatLabel(f, loc)
	}
	return labels
}

// MetadataText renders the info panel for a fetched video
func MetadataText(info *model.VideoInfo, loc *Localization) string {
	title := orDefault(info.Title, loc.GetText(KeyNoTitle))
	channel := orDefault(info.Channel, loc.GetText(KeyNoChannel))
	channelURL := orDefault(info.ChannelURL, "#")

	categories := loc.GetText(KeyNone)
	if len(info.Categories) > 0 {
		categories = strings.Join(info.Categories, ListSeparator)
	}
	tags := loc.GetText(KeyNone)
	if shown := info.DisplayTags(); len(shown) > 0 {
		tags = strings.Join(shown, ListSeparator)
	}

	line := func(key, value string) string {
		return loc.GetText(key) + ": " + value
	}

	blocks := []string{
		strings.Join([]string{
			line(KeyInfoTitle, title),
			line(KeyInfoChannel, fmt.Sprintf("%s (%s)", channel, channelURL)),
			line(KeyInfoUploaded, info.UploadDateDisplay()),
			line(KeyInfoDuration, humanize.Duration(info.Duration)),
		}, "\n"),
		strings.Join([]string{
			line(KeyInfoViews, humanize.Number(info.ViewCount)),
			line(KeyInfoLikes, humanize.Number(info.LikeCount)),
			line(KeyInfoComments, humanize.Number(info.CommentCount)),
		}, "\n"),
		strings.Join([]string{
			line(KeyInfoCategories, categories),
			line(KeyInfoTags, tags),
		}, "\n"),
		loc.GetText(KeyInfoDescription) + ":\n" + humanize.Truncate(info.Description, DescriptionLimit),
	}
	return strings.Join(blocks, ParagraphSeparator)
}

// ProgressText renders a progress event. The returned fraction is in [0, 1]
// and ok is false when no total is known, in which case the bar keeps its value.
func ProgressText(p model.ProgressEvent, loc *Localization) (text string, fraction float64, ok bool) {
	calculating := loc.GetText(KeyCalculating)

	speed := calculating
	if p.Speed > 0 {
		speed = humanize.Speed(p.Speed)
	}

	percent, known := p.Percent()
	if !known {
		return fmt.Sprintf(loc.GetText(KeyDownloadingBytes), humanize.Size(float64(p.DownloadedBytes)), speed), 0, false
	}

	eta := calculating
	if p.ETA > 0 {
		eta = humanize.Duration(int(p.ETA.Seconds()))
	}

	if percent > 100 {
		percent = 100
	}
	text = fmt.Sprintf(PercentFormat+" (%s/%s) %s ETA: %s",
		int(percent),
		humanize.Size(float64(p.DownloadedBytes)),
		humanize.Size(float64(p.Total())),
		speed,
		eta,
	)
	return text, percent / 100, true
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
