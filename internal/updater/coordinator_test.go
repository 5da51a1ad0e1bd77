package updater

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/installer"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubSource struct {
	desc *model.ReleaseDescriptor
	err  error
}

func (s *stubSource) FetchLatest(context.Context) (*model.ReleaseDescriptor, error) {
	return s.desc, s.err
}

type stubEngine struct {
	path   string
	err    error
	chunks []model.UpdateProgress
	block  chan struct{} // when non-nil, waits for ctx cancellation
}

func (s *stubEngine) Download(ctx context.Context, url string, onProgress func(model.UpdateProgress)) (string, error) {
	for _, p := range s.chunks {
		if onProgress != nil {
			onProgress(p)
		}
	}
	if s.block != nil {
		close(s.block)
		<-ctx.Done()
		return "", context.Canceled
	}
	return s.path, s.err
}

type stubInstaller struct {
	result  installer.Result
	err     error
	got     string
	entered chan struct{} // when non-nil, closed on entry
	release chan struct{} // when non-nil, blocks until closed
}

func (s *stubInstaller) Install(path string) (installer.Result, error) {
	s.got = path
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

type eventRecorder struct {
	mu     sync.Mutex
	events []model.Event
}

func (r *eventRecorder) sink(ev model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) kinds() []model.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]model.EventKind, 0, len(r.events))
	for _, ev := range r.events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func windowsRelease(body string) *model.ReleaseDescriptor {
	return &model.ReleaseDescriptor{
		TagName:     "v2.3.0",
		Body:        body,
		PublishedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Assets: []model.ReleaseAsset{
			{Name: "App-2.3.0-Setup.exe", DownloadURL: "https://dl.example.com/App-2.3.0-Setup.exe"},
			{Name: "App-2.3.0.dmg", DownloadURL: "https://dl.example.com/App-2.3.0.dmg"},
		},
	}
}

func newTestCoordinator(t *testing.T, source ReleaseSource, engine TransferEngine, inst ArtifactInstaller, rec *eventRecorder) *Coordinator {
	t.Helper()
	return New(zaptest.NewLogger(t), source, engine, inst, rec.sink, Options{
		CurrentVersion: "2.2.9",
		OS:             "win32",
		Arch:           "x64",
	})
}

func TestCheckForUpdatesAvailable(t *testing.T) {
	rec := &eventRecorder{}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("notes")}, &stubEngine{}, &stubInstaller{}, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))

	st := c.Status()
	require.Equal(t, StateAvailable, st.State)
	require.NotNil(t, st.Info)
	require.Equal(t, "2.3.0", st.Info.Version)
	require.Equal(t, "2.2.9", st.Info.CurrentVersion)
	require.Equal(t, "https://dl.example.com/App-2.3.0-Setup.exe", st.Info.DownloadURL)
	require.False(t, st.Info.Mandatory)

	require.Equal(t, []model.EventKind{model.EventChecking, model.EventAvailable}, rec.kinds())
}

func TestCheckForUpdatesMandatoryMarker(t *testing.T) {
	rec := &eventRecorder{}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("This is a **mandatory update**")}, &stubEngine{}, &stubInstaller{}, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))
	require.True(t, c.Status().Info.Mandatory)
}

func TestCheckForUpdatesNotAvailableIdempotent(t *testing.T) {
	desc := windowsRelease("notes")
	desc.TagName = "v2.2.9"
	rec := &eventRecorder{}
	c := newTestCoordinator(t, &stubSource{desc: desc}, &stubEngine{}, &stubInstaller{}, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))
	require.NoError(t, c.CheckForUpdates(context.Background()))

	st := c.Status()
	require.Equal(t, StateNotAvailable, st.State)
	require.Nil(t, st.Info)
	require.Equal(t, []model.EventKind{
		model.EventChecking, model.EventNotAvailable,
		model.EventChecking, model.EventNotAvailable,
	}, rec.kinds())
}

func TestCheckForUpdatesNoAsset(t *testing.T) {
	desc := windowsRelease("notes")
	desc.Assets = []model.ReleaseAsset{{Name: "checksums.txt", DownloadURL: "u"}}
	rec := &eventRecorder{}
	c := newTestCoordinator(t, &stubSource{desc: desc}, &stubEngine{}, &stubInstaller{}, rec)

	err := c.CheckForUpdates(context.Background())
	require.ErrorIs(t, err, errs.ErrNoAsset)

	st := c.Status()
	require.Equal(t, StateError, st.State)
	require.Equal(t, "no suitable download found", st.Err)
}

func TestCheckForUpdatesFetchFailure(t *testing.T) {
	rec := &eventRecorder{}
	c := newTestCoordinator(t, &stubSource{err: errs.ErrCheckTimeout}, &stubEngine{}, &stubInstaller{}, rec)

	err := c.CheckForUpdates(context.Background())
	require.ErrorIs(t, err, errs.ErrCheckTimeout)
	require.Equal(t, StateError, c.Status().State)
	require.Equal(t, []model.EventKind{model.EventChecking, model.EventError}, rec.kinds())
}

func TestDownloadWithoutCheck(t *testing.T) {
	rec := &eventRecorder{}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, &stubEngine{}, &stubInstaller{}, rec)

	err := c.DownloadUpdate(context.Background())
	require.ErrorIs(t, err, errs.ErrNoUpdateInfo)
	require.Equal(t, "no update available to download", c.Status().Err)
}

func TestDownloadUpdate(t *testing.T) {
	rec := &eventRecorder{}
	engine := &stubEngine{
		path: "/tmp/App-2.3.0-Setup.exe",
		chunks: []model.UpdateProgress{
			{Percent: 40, Transferred: 40, Total: 100},
			{Percent: 100, Transferred: 100, Total: 100},
		},
	}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, engine, &stubInstaller{}, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))
	require.NoError(t, c.DownloadUpdate(context.Background()))

	st := c.Status()
	require.Equal(t, StateDownloaded, st.State)
	require.Equal(t, "/tmp/App-2.3.0-Setup.exe", st.DownloadedPath)
	require.Equal(t, 100, st.Progress.Percent)

	require.Equal(t, []model.EventKind{
		model.EventChecking, model.EventAvailable,
		model.EventProgress, model.EventProgress,
		model.EventDownloaded,
	}, rec.kinds())
}

func TestCancelDownload(t *testing.T) {
	rec := &eventRecorder{}
	engine := &stubEngine{block: make(chan struct{})}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, engine, &stubInstaller{}, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- c.DownloadUpdate(context.Background())
	}()

	<-engine.block
	c.CancelDownload()
	require.NoError(t, <-done)

	st := c.Status()
	require.Equal(t, StateCancelled, st.State)
	require.Nil(t, st.Progress)

	kinds := rec.kinds()
	require.Equal(t, model.EventCancelled, kinds[len(kinds)-1])
}

func TestSecondDownloadRejected(t *testing.T) {
	rec := &eventRecorder{}
	engine := &stubEngine{block: make(chan struct{})}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, engine, &stubInstaller{}, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- c.DownloadUpdate(context.Background())
	}()
	<-engine.block

	require.ErrorIs(t, c.DownloadUpdate(context.Background()), errs.ErrTransferActive)
	require.ErrorIs(t, c.CheckForUpdates(context.Background()), errs.ErrTransferActive)

	c.CancelDownload()
	require.NoError(t, <-done)
}

func TestInstallUpdate(t *testing.T) {
	rec := &eventRecorder{}
	inst := &stubInstaller{result: installer.Result{Kind: installer.ResultLaunched, Path: "/tmp/App.exe"}}
	engine := &stubEngine{path: "/tmp/App.exe"}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, engine, inst, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))
	require.NoError(t, c.DownloadUpdate(context.Background()))
	require.NoError(t, c.InstallUpdate())
	require.Equal(t, "/tmp/App.exe", inst.got)
}

func TestDownloadDuringInstallRejected(t *testing.T) {
	rec := &eventRecorder{}
	inst := &stubInstaller{
		result:  installer.Result{Kind: installer.ResultLaunched, Path: "/tmp/App.exe"},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	engine := &stubEngine{path: "/tmp/App.exe"}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, engine, inst, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))
	require.NoError(t, c.DownloadUpdate(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- c.InstallUpdate()
	}()
	<-inst.entered

	require.ErrorIs(t, c.DownloadUpdate(context.Background()), errs.ErrInstallActive)
	require.ErrorIs(t, c.CheckForUpdates(context.Background()), errs.ErrInstallActive)
	require.Equal(t, StateInstalling, c.Status().State)

	close(inst.release)
	require.NoError(t, <-done)
}

func TestInstallWithoutDownload(t *testing.T) {
	rec := &eventRecorder{}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, &stubEngine{}, &stubInstaller{}, rec)

	err := c.InstallUpdate()
	require.ErrorIs(t, err, errs.ErrNotDownloaded)
}

func TestInstallLinuxDebEvent(t *testing.T) {
	rec := &eventRecorder{}
	inst := &stubInstaller{result: installer.Result{
		Kind:    installer.ResultDebManual,
		Path:    "/home/me/Downloads/app_amd64.deb",
		Command: "sudo dpkg -i /home/me/Downloads/app_amd64.deb",
	}}
	engine := &stubEngine{path: "/home/me/Downloads/app_amd64.deb"}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, engine, inst, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))
	require.NoError(t, c.DownloadUpdate(context.Background()))
	require.NoError(t, c.InstallUpdate())

	kinds := rec.kinds()
	require.Equal(t, model.EventLinuxDeb, kinds[len(kinds)-1])
}

func TestReset(t *testing.T) {
	rec := &eventRecorder{}
	engine := &stubEngine{path: "/tmp/App.exe"}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, engine, &stubInstaller{}, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))
	require.NoError(t, c.DownloadUpdate(context.Background()))

	c.Reset()
	st := c.Status()
	require.Equal(t, StateIdle, st.State)
	require.Nil(t, st.Info)
	require.Nil(t, st.Progress)
	require.Empty(t, st.Err)
	require.Empty(t, st.DownloadedPath)
}

func TestResetDuringDownloadStaysIdle(t *testing.T) {
	rec := &eventRecorder{}
	engine := &stubEngine{block: make(chan struct{})}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, engine, &stubInstaller{}, rec)

	require.NoError(t, c.CheckForUpdates(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- c.DownloadUpdate(context.Background())
	}()
	<-engine.block

	c.Reset()
	require.NoError(t, <-done)

	st := c.Status()
	require.Equal(t, StateIdle, st.State)
	require.Nil(t, st.Progress)
	require.NotContains(t, rec.kinds(), model.EventCancelled)
}

func TestParseChangelog(t *testing.T) {
	c := newTestCoordinator(t, &stubSource{}, &stubEngine{}, &stubInstaller{}, &eventRecorder{})
	section := c.ParseChangelog("## Added\n- Dark mode\n## Fixed\n- Crash on exit\n", "")
	require.Equal(t, []string{"Dark mode"}, section.Added)
	require.Equal(t, []string{"Crash on exit"}, section.Fixed)
	require.Empty(t, section.Changed)
	require.Empty(t, section.Removed)
}

func TestStatusIsACopy(t *testing.T) {
	rec := &eventRecorder{}
	c := newTestCoordinator(t, &stubSource{desc: windowsRelease("")}, &stubEngine{}, &stubInstaller{}, rec)
	require.NoError(t, c.CheckForUpdates(context.Background()))

	st := c.Status()
	st.Info.Version = "tampered"
	require.Equal(t, "2.3.0", c.Status().Info.Version)
}
