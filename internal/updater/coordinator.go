package updater

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/assets"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/changelog"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/installer"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/errs"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/filehash"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/vercomp"

	"go.uber.org/zap"
)

// ReleaseSource resolves the latest release descriptor.
type ReleaseSource interface {
	FetchLatest(ctx context.Context) (*model.ReleaseDescriptor, error)
}

// TransferEngine streams an artifact to local disk.
type TransferEngine interface {
	Download(ctx context.Context, url string, onProgress func(model.UpdateProgress)) (string, error)
}

// ArtifactInstaller dispatches the platform install action.
type ArtifactInstaller interface {
	Install(localPath string) (installer.Result, error)
}

// EventSink receives lifecycle transitions; the GUI layer renders them.
type EventSink func(model.Event)

// release notes marker phrases that classify a release as mandatory
var mandatoryMarkers = []string{"mandatory update", "critical security"}

type Options struct {
	CurrentVersion string
	OS             string
	Arch           string

	// QuitDelay and Quit control termination after a launched installer.
	// A nil Quit disables quitting, which is what tests want.
	QuitDelay time.Duration
	Quit      func()
}

// Coordinator owns the one live update lifecycle: it sequences check,
// download and install, and is the only writer of the status projection and
// the in-flight transfer handle.
type Coordinator struct {
	logger    *zap.Logger
	source    ReleaseSource
	engine    TransferEngine
	installer ArtifactInstaller
	sink      EventSink
	opts      Options

	mu             sync.Mutex
	epoch          uint64
	state          State
	info           *model.UpdateInfo
	progress       *model.UpdateProgress
	errMsg         string
	downloadedPath string
	cancelTransfer context.CancelFunc
}

func New(logger *zap.Logger, source ReleaseSource, engine TransferEngine, inst ArtifactInstaller, sink EventSink, opts Options) *Coordinator {
	if sink == nil {
		sink = func(model.Event) {}
	}
	return &Coordinator{
		logger:    logger,
		source:    source,
		engine:    engine,
		installer: inst,
		sink:      sink,
		opts:      opts,
	}
}

// CheckForUpdates asks the registry for the latest release and decides
// whether it is newer than the running version. A check discards prior
// available/error state; it is rejected while another check, download or
// install is running.
func (c *Coordinator) CheckForUpdates(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateChecking:
		c.mu.Unlock()
		return errs.ErrCheckInFlight
	case StateDownloading:
		c.mu.Unlock()
		return errs.ErrTransferActive
	case StateInstalling:
		c.mu.Unlock()
		return errs.ErrInstallActive
	}
	c.state = StateChecking
	c.info = nil
	c.progress = nil
	c.errMsg = ""
	c.downloadedPath = ""
	c.mu.Unlock()

	c.sink(model.Event{Kind: model.EventChecking})

	desc, err := c.source.FetchLatest(ctx)
	if err != nil {
		c.logger.Warn("update check failed",
			zap.Error(err),
		)
		c.fail(err)
		return err
	}

	if vercomp.Compare(desc.TagName, c.opts.CurrentVersion) != vercomp.Greater {
		c.logger.Info("no newer version",
			zap.String("latest", desc.TagName),
			zap.String("current", c.opts.CurrentVersion),
		)
		c.mu.Lock()
		c.state = StateNotAvailable
		c.mu.Unlock()
		c.sink(model.Event{Kind: model.EventNotAvailable})
		return nil
	}

	url, err := assets.Select(desc.Assets, c.opts.OS, c.opts.Arch)
	if err != nil {
		c.logger.Warn("release has no asset for this platform",
			zap.String("version", desc.TagName),
			zap.String("os", c.opts.OS),
			zap.String("arch", c.opts.Arch),
		)
		c.fail(err)
		return err
	}

	info := &model.UpdateInfo{
		Version:        strings.TrimPrefix(desc.TagName, "v"),
		CurrentVersion: c.opts.CurrentVersion,
		ReleaseDate:    desc.PublishedAt,
		ReleaseNotes:   desc.Body,
		DownloadURL:    url,
		Mandatory:      isMandatory(desc.Body),
	}

	c.mu.Lock()
	c.state = StateAvailable
	c.info = info
	c.mu.Unlock()

	c.logger.Info("update available",
		zap.String("version", info.Version),
		zap.Bool("mandatory", info.Mandatory),
	)
	c.sink(model.Event{Kind: model.EventAvailable, Info: info})
	return nil
}

// DownloadUpdate streams the chosen asset to disk, relaying progress. It
// blocks until the transfer finishes, fails or is cancelled; run it on its
// own goroutine when driving a UI. It is rejected while a check, another
// download or an install is running.
func (c *Coordinator) DownloadUpdate(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateChecking:
		c.mu.Unlock()
		return errs.ErrCheckInFlight
	case StateDownloading:
		c.mu.Unlock()
		return errs.ErrTransferActive
	case StateInstalling:
		c.mu.Unlock()
		return errs.ErrInstallActive
	}
	if c.info == nil {
		c.mu.Unlock()
		c.fail(errs.ErrNoUpdateInfo)
		return errs.ErrNoUpdateInfo
	}
	url := c.info.DownloadURL
	ctx, cancel := context.WithCancel(ctx)
	c.epoch++
	epoch := c.epoch
	c.cancelTransfer = cancel
	c.state = StateDownloading
	c.progress = &model.UpdateProgress{}
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		if c.epoch == epoch {
			c.cancelTransfer = nil
		}
		c.mu.Unlock()
	}()

	path, err := c.engine.Download(ctx, url, func(p model.UpdateProgress) {
		c.relayProgress(epoch, p)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.mu.Lock()
			if c.epoch != epoch {
				// a Reset already retired this transfer
				c.mu.Unlock()
				return nil
			}
			c.state = StateCancelled
			c.progress = nil
			c.mu.Unlock()
			c.logger.Info("download cancelled")
			c.sink(model.Event{Kind: model.EventCancelled})
			return nil
		}
		c.mu.Lock()
		if c.epoch != epoch {
			c.mu.Unlock()
			return err
		}
		c.state = StateError
		c.errMsg = err.Error()
		c.mu.Unlock()
		c.sink(model.Event{Kind: model.EventError, Message: err.Error()})
		return err
	}

	if hash, hashErr := filehash.Calculate(path); hashErr == nil {
		c.logger.Info("artifact downloaded",
			zap.String("path", path),
			zap.String("sha256", hash),
		)
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return nil
	}
	c.state = StateDownloaded
	c.downloadedPath = path
	c.mu.Unlock()

	c.sink(model.Event{Kind: model.EventDownloaded, Path: path})
	return nil
}

// CancelDownload aborts an in-flight transfer. It is a no-op in any other
// state and never transitions to error.
func (c *Coordinator) CancelDownload() {
	c.mu.Lock()
	cancel := c.cancelTransfer
	downloading := c.state == StateDownloading
	c.mu.Unlock()

	if downloading && cancel != nil {
		cancel()
	}
}

// InstallUpdate dispatches the platform install action for the downloaded
// artifact. On Linux it reports a distinguishing event instead of quitting.
func (c *Coordinator) InstallUpdate() error {
	c.mu.Lock()
	if c.state != StateDownloaded || c.downloadedPath == "" {
		c.mu.Unlock()
		c.fail(errs.ErrNotDownloaded)
		return errs.ErrNotDownloaded
	}
	path := c.downloadedPath
	c.state = StateInstalling
	c.mu.Unlock()

	result, err := c.installer.Install(path)
	if err != nil {
		c.fail(err)
		return err
	}

	switch result.Kind {
	case installer.ResultDebManual:
		c.sink(model.Event{Kind: model.EventLinuxDeb, Path: path, Message: result.Command})
	case installer.ResultAppImageReveal:
		c.sink(model.Event{Kind: model.EventLinuxAppImage, Path: path})
	case installer.ResultLaunched:
		if c.opts.Quit != nil {
			// give the OS handler time to launch before the process exits
			time.AfterFunc(c.opts.QuitDelay, c.opts.Quit)
		}
	}
	return nil
}

// Status returns a copy of the visible projection.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		State:          c.state,
		Err:            c.errMsg,
		DownloadedPath: c.downloadedPath,
	}
	if c.info != nil {
		info := *c.info
		st.Info = &info
	}
	if c.progress != nil {
		progress := *c.progress
		st.Progress = &progress
	}
	return st
}

// ParseChangelog extracts the categorized changelog for one version from
// release-notes text; an empty version means the whole document.
func (c *Coordinator) ParseChangelog(body, version string) changelog.Section {
	return changelog.ForVersion(body, version)
}

// Reset returns to Idle from any state, cancelling an in-flight transfer
// and discarding the in-memory references. The downloaded file stays on
// disk.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	cancel := c.cancelTransfer
	c.cancelTransfer = nil
	// retire any in-flight transfer so its goroutine cannot overwrite
	// the cleared state after we unlock
	c.epoch++
	c.state = StateIdle
	c.info = nil
	c.progress = nil
	c.errMsg = ""
	c.downloadedPath = ""
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Coordinator) relayProgress(epoch uint64, p model.UpdateProgress) {
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	progress := p
	c.progress = &progress
	c.mu.Unlock()
	c.sink(model.Event{Kind: model.EventProgress, Progress: &progress})
}

func (c *Coordinator) fail(err error) {
	c.mu.Lock()
	c.state = StateError
	c.errMsg = err.Error()
	c.mu.Unlock()
	c.sink(model.Event{Kind: model.EventError, Message: err.Error()})
}

func isMandatory(notes string) bool {
	notes = strings.ToLower(notes)
	for _, marker := range mandatoryMarkers {
		if strings.Contains(notes, marker) {
			return true
		}
	}
	return false
}
