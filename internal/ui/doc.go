// Package ui contains the Fyne-based desktop user interface. The Controller
// wires user intents to the background runner and renders metadata, the
// format list and download progress. All UI strings are localized via
// Localization.
package ui
