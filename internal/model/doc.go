// Package model defines the domain data shared across the app: fetched video
// metadata, format options, progress events, the download job and its state
// machine, and the error kinds surfaced to the user. VideoInfo and
// FormatOption are read-only views; DownloadJob is owned by the runner.
package model
