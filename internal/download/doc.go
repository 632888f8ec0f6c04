// Package download implements the background task runner built on top of
// yt-dlp (via github.com/lrstanley/go-ytdlp, wrapped by the platform package).
// It runs one metadata fetch or one download at a time off the UI thread and
// relays progress and exactly one terminal outcome over a channel.
package download
