// Package platform contains OS integration and external tooling glue: the
// yt-dlp backed extractor, yt-dlp JSON decoding, filesystem helpers and
// OS open/reveal.
package platform
