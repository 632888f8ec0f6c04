package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/ytget/ytdlp-gui/internal/config"
	"github.com/ytget/ytdlp-gui/internal/download"
	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Controller owns the main window: it keeps the fetched video, the format
// list, the destination and the active job, and reacts to the four user
// intents (fetch, choose destination, start, cancel).
type Controller struct {
	ctx          context.Context
	window       fyne.Window
	app          fyne.App
	runner       download.Runner
	picker       DirectoryPicker
	settings     *config.Settings
	localization *Localization
	log          *log.Logger

	// async runs blocking work off the UI thread, do hands results back to it.
	async func(func())
	do    func(func())

	reveal  func(path string) error
	openDir func(dir string) error

	fetching    bool
	info        *model.VideoInfo
	formats     []model.FormatOption
	destination string
	job         *model.DownloadJob
	lastOutput  string

	urlEntry       *widget.Entry
	fetchBtn       *widget.Button
	infoHeader     *widget.Label
	infoLabel      *widget.Label
	formatLabel    *widget.Label
	formatSelect   *widget.Select
	destLabel      *widget.Label
	changeDestBtn  *widget.Button
	progressHeader *widget.Label
	progressBar    *widget.ProgressBar
	progressLabel  *widget.Label
	startBtn       *widget.Button
	cancelBtn      *widget.Button
	openFolderBtn  *widget.Button
	settingsBtn    *widget.Button
}

// NewController builds the main window content. ctx bounds every fetch and
// download started from the UI.
func NewController(ctx context.Context, window fyne.Window, app fyne.App, runner download.Runner, settings *config.Settings, logger *log.Logger) *Controller {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	c := &Controller{
		ctx:          ctx,
		window:       window,
		app:          app,
		runner:       runner,
		picker:       NewFolderDialogPicker(window),
		settings:     settings,
		localization: localization,
		log:          logger.With("component", "ui"),
		async:        func(f func()) { go f() },
		do:           fyne.Do,
		reveal:       platform.OpenFileInManager,
		openDir:      platform.OpenDirectory,
		destination:  settings.GetDownloadDirectory(),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	c.setupUI()
	c.createMenu()
	return c
}

// setupUI creates and arranges all UI components
func (c *Controller) setupUI() {
	c.urlEntry = widget.NewEntry()
	c.urlEntry.OnSubmitted = func(string) { c.OnFetch() }
	c.fetchBtn = widget.NewButton("", c.OnFetch)

	c.settingsBtn = widget.NewButton(IconSettings, c.onShowSettings)
	c.settingsBtn.Importance = widget.LowImportance

	c.infoHeader = widget.NewLabel("")
	c.infoHeader.TextStyle = fyne.TextStyle{Bold: true}
	c.infoLabel = widget.NewLabel("")
	c.infoLabel.Wrapping = fyne.TextWrapWord
	infoScroll := container.NewVScroll(c.infoLabel)
	infoScroll.SetMinSize(fyne.NewSize(0, InfoMinHeight))

	c.formatLabel = widget.NewLabel("")
	c.formatSelect = widget.NewSelect(nil, nil)
	c.formatSelect.Disable()

	c.destLabel = widget.NewLabel("")
	c.destLabel.Truncation = fyne.TextTruncateEllipsis
	c.changeDestBtn = widget.NewButton("", c.OnChooseDestination)

	c.progressHeader = widget.NewLabel("")
	c.progressHeader.TextStyle = fyne.TextStyle{Bold: true}
	c.progressBar = widget.NewProgressBar()
	c.progressLabel = widget.NewLabel("")
	c.progressLabel.Alignment = fyne.TextAlignCenter

	c.startBtn = widget.NewButton("", c.OnStart)
	c.startBtn.Importance = widget.HighImportance
	c.startBtn.Disable()
	c.cancelBtn = widget.NewButton("", c.OnCancel)
	c.cancelBtn.Importance = widget.DangerImportance
	c.cancelBtn.Disable()
	c.openFolderBtn = widget.NewButton(IconFolder, c.onOpenFolder)
	c.openFolderBtn.Disable()

	c.refreshUITexts()

	top := container.NewVBox(
		container.NewBorder(nil, nil, c.settingsBtn, c.fetchBtn, c.urlEntry),
		c.infoHeader,
	)
	bottom := container.NewVBox(
		container.NewBorder(nil, nil, c.formatLabel, nil, c.formatSelect),
		container.NewBorder(nil, nil, nil, c.changeDestBtn, c.destLabel),
		c.progressHeader,
		c.progressBar,
		c.progressLabel,
		container.NewHBox(layout.NewSpacer(), c.openFolderBtn, c.startBtn, c.cancelBtn),
	)

	c.window.SetContent(container.NewPadded(container.NewBorder(top, bottom, nil, nil, infoScroll)))
}

// createMenu creates the application menu
func (c *Controller) createMenu() {
	settingsItem := fyne.NewMenuItem(c.localization.GetText(KeySettings), c.onShowSettings)

	languageMenu := fyne.NewMenu(c.localization.GetText(KeyLanguage))
	for code, name := range c.localization.GetAvailableLanguages() {
		langCode := code
		item := fyne.NewMenuItem(name, func() {
			c.onLanguageChange(langCode)
		})
		item.Checked = c.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	c.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(c.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

func (c *Controller) onLanguageChange(langCode string) {
	c.localization.SetLanguage(langCode)
	c.settings.SetLanguage(langCode)
	c.refreshUITexts()
	c.createMenu()
}

// refreshUITexts updates all static texts with the current language
func (c *Controller) refreshUITexts() {
	l := c.localization
	c.window.SetTitle(l.GetText(KeyAppTitle))
	c.urlEntry.SetPlaceHolder(l.GetText(KeyURLPlaceholder))
	if c.fetchBtn.Disabled() {
		c.fetchBtn.SetText(l.GetText(KeyFetching))
	} else {
		c.fetchBtn.SetText(l.GetText(KeyFetch))
	}
	c.infoHeader.SetText(l.GetText(KeyVideoInfo))
	c.formatLabel.SetText(l.GetText(KeyFormat))
	c.formatSelect.PlaceHolder = l.GetText(KeySelectFormat)
	c.formatSelect.Refresh()
	c.changeDestBtn.SetText(l.GetText(KeyChangeDestination))
	c.progressHeader.SetText(l.GetText(KeyProgress))
	c.startBtn.SetText(l.GetText(KeyDownload))
	c.cancelBtn.SetText(l.GetText(KeyCancel))
	c.openFolderBtn.SetText(IconFolder + " " + l.GetText(KeyOpenFolder))
	c.updateDestinationLabel()
	if c.info != nil {
		c.formatSelect.Options = FormatLabels(c.formats, l)
		c.formatSelect.Refresh()
	}
}

func (c *Controller) updateDestinationLabel() {
	c.destLabel.SetText(fmt.Sprintf(c.localization.GetText(KeySaveTo), c.destination))
}

func (c *Controller) setInfo(text string) {
	c.infoLabel.SetText(text)
}

func (c *Controller) appendInfo(text string) {
	if c.infoLabel.Text == "" {
		c.infoLabel.SetText(text)
		return
	}
	c.infoLabel.SetText(c.infoLabel.Text + ParagraphSeparator + text)
}

// OnFetch validates the URL and fetches its metadata on a worker goroutine.
// It is a no-op while a fetch is in flight.
func (c *Controller) OnFetch() {
	if c.fetching {
		return
	}
	url := strings.TrimSpace(c.urlEntry.Text)
	if url == "" {
		c.setInfo(c.localization.GetText(KeyPleaseEnterURL))
		return
	}

	c.fetching = true
	c.fetchBtn.Disable()
	c.fetchBtn.SetText(c.localization.GetText(KeyFetching))
	c.setInfo(c.localization.GetText(KeyFetchingInfo))

	c.async(func() {
		info, err := c.runner.FetchMetadata(c.ctx, url)
		c.do(func() { c.applyFetch(url, info, err) })
	})
}

func (c *Controller) applyFetch(url string, info *model.VideoInfo, err error) {
	c.fetching = false
	c.fetchBtn.Enable()
	c.fetchBtn.SetText(c.localization.GetText(KeyFetch))

	if err != nil {
		c.log.Warn("fetch failed", "url", url, "err", err)
		c.setInfo(c.fetchErrorText(err))
		return
	}

	c.info = info
	c.formats = info.VideoFormats()

	c.setInfo(MetadataText(info, c.localization))
	c.formatSelect.Options = FormatLabels(c.formats, c.localization)
	c.formatSelect.Enable()
	c.formatSelect.SetSelectedIndex(0)

	if c.job == nil {
		c.startBtn.Enable()
	}
}

func (c *Controller) fetchErrorText(err error) string {
	if errors.Is(err, model.ErrNoFormats) {
		return c.localization.GetText(KeyNoFormats)
	}
	if errors.Is(err, model.ErrEmptyURL) {
		return c.localization.GetText(KeyPleaseEnterURL)
	}
	var extractErr *model.ExtractionError
	if errors.As(err, &extractErr) && extractErr.Err != nil {
		err = extractErr.Err
	}
	return fmt.Sprintf(c.localization.GetText(KeyErrorOccurred), err.Error())
}

// OnChooseDestination lets the user pick the download folder
func (c *Controller) OnChooseDestination() {
	c.picker.PickDirectory(c.localization.GetText(KeyChooseDestination), c.destination, c.setDestination)
}

func (c *Controller) setDestination(dir string) {
	if dir == "" {
		return
	}
	c.destination = dir
	c.settings.SetDownloadDirectory(dir)
	c.updateDestinationLabel()
}

// OnStart hands the selected format to the runner
func (c *Controller) OnStart() {
	if c.job != nil {
		c.appendInfo(c.localization.GetText(KeyAlreadyRunning))
		return
	}
	if c.info == nil || len(c.formats) == 0 {
		return
	}
	idx := c.formatSelect.SelectedIndex()
	if idx < 0 || idx >= len(c.formats) {
		return
	}
	format := c.formats[idx]

	if err := platform.CreateDirectoryIfNotExists(c.destination); err != nil {
		c.appendInfo(fmt.Sprintf(c.localization.GetText(KeyErrorOccurred), err.Error()))
		return
	}

	job := model.NewDownloadJob(c.info.URL, format.ID, c.destination)
	job.Title = c.info.Title

	events, err := c.runner.Start(c.ctx, job)
	if err != nil {
		if errors.Is(err, model.ErrJobActive) {
			c.startBtn.Disable()
			c.appendInfo(c.localization.GetText(KeyAlreadyRunning))
			return
		}
		c.appendInfo(fmt.Sprintf(c.localization.GetText(KeyErrorOccurred), err.Error()))
		return
	}

	c.job = job
	c.startBtn.Disable()
	c.cancelBtn.Enable()
	c.openFolderBtn.Disable()
	c.progressBar.SetValue(0)
	c.progressLabel.SetText(c.localization.GetText(KeyPreparing))
	c.log.Info("download requested", "job", job.ID, "format", format.ID, "destination", c.destination)

	c.async(func() {
		for ev := range events {
			ev := ev
			c.do(func() { c.handleEvent(job, ev) })
		}
	})
}

// OnCancel requests cancellation of the running job. The cancel button is
// disabled right away; the outcome arrives later as a terminal event.
func (c *Controller) OnCancel() {
	if c.job == nil || !c.job.State().IsActive() {
		return
	}
	c.runner.Cancel(c.job)
	c.cancelBtn.Disable()
	c.appendInfo(c.localization.GetText(KeyCancelling))
}

// handleEvent applies one runner event on the UI thread
func (c *Controller) handleEvent(job *model.DownloadJob, ev download.Event) {
	if job != c.job {
		return
	}

	switch ev.Type {
	case download.EventProgress:
		if ev.Progress.Status != model.ProgressDownloading {
			return
		}
		text, fraction, ok := ProgressText(ev.Progress, c.localization)
		if ok {
			c.progressBar.SetValue(fraction)
		}
		c.progressLabel.SetText(text)

	case download.EventCompleted:
		c.finishJob()
		c.progressBar.SetValue(1)
		c.progressLabel.SetText(fmt.Sprintf(PercentFormat, 100))
		c.appendInfo(c.localization.GetText(KeyDownloadCompleted))
		c.lastOutput = job.OutputPath()
		c.openFolderBtn.Enable()
		c.notifyCompleted(job)

	case download.EventFailed:
		c.finishJob()
		reason := ev.Err
		var downloadErr *model.DownloadError
		if errors.As(reason, &downloadErr) && downloadErr.Err != nil {
			reason = downloadErr.Err
		}
		msg := c.localization.GetText(KeyDownloadCancelled)
		if reason != nil {
			msg = fmt.Sprintf(c.localization.GetText(KeyDownloadFailed), reason.Error())
		}
		c.progressLabel.SetText("")
		c.appendInfo(msg)

	case download.EventCancelled:
		c.finishJob()
		c.progressLabel.SetText(c.localization.GetText(KeyDownloadCancelled))
		c.appendInfo(c.localization.GetText(KeyDownloadCancelled))
	}
}

func (c *Controller) finishJob() {
	c.job = nil
	c.cancelBtn.Disable()
	if c.info != nil {
		c.startBtn.Enable()
	}
}

// notifyCompleted sends a system notification and optionally reveals the file
func (c *Controller) notifyCompleted(job *model.DownloadJob) {
	title := job.Title
	if title == "" {
		title = job.URL
	}
	c.app.SendNotification(fyne.NewNotification(c.localization.GetText(KeyDownloadCompleted), title))

	output := job.OutputPath()
	if output == "" || !c.settings.GetAutoRevealOnComplete() {
		return
	}
	c.async(func() {
		if err := c.reveal(output); err != nil {
			c.log.Warn("reveal failed", "path", output, "err", err)
		}
	})
}

func (c *Controller) onOpenFolder() {
	dir := c.destination
	if c.lastOutput != "" {
		if found, err := platform.FindOutputFile(c.lastOutput); err == nil {
			dir = filepath.Dir(found)
		}
	}
	c.async(func() {
		if err := c.openDir(dir); err != nil {
			c.log.Warn("open folder failed", "dir", dir, "err", err)
			c.do(func() {
				c.appendInfo(c.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
			})
		}
	})
}

// onShowSettings shows the settings dialog
func (c *Controller) onShowSettings() {
	NewSettingsDialog(c.settings, c.localization, c.window, c.picker, c.onSettingsSaved).Show()
}

func (c *Controller) onSettingsSaved() {
	if dir := c.settings.GetDownloadDirectory(); dir != c.destination {
		c.destination = dir
		c.updateDestinationLabel()
	}
	if lang := c.settings.GetLanguage(); lang != c.localization.GetCurrentLanguage() {
		c.onLanguageChange(lang)
	}
}
