package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// DirectoryPicker asks the user for a directory. onChosen receives the
// selected path, or "" when the user cancels.
type DirectoryPicker interface {
	PickDirectory(title, start string, onChosen func(dir string))
}

// FolderDialogPicker is a DirectoryPicker backed by Fyne's folder dialog
type FolderDialogPicker struct {
	window fyne.Window
}

// NewFolderDialogPicker creates a picker attached to window
func NewFolderDialogPicker(window fyne.Window) *FolderDialogPicker {
	return &FolderDialogPicker{window: window}
}

// PickDirectory shows the folder dialog titled title, starting in start when it exists
func (p *FolderDialogPicker) PickDirectory(title, start string, onChosen func(dir string)) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			onChosen("")
			return
		}
		onChosen(uri.Path())
	}, p.window)

	if title != "" {
		d.SetTitleText(title)
	}
	if start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}
