package installer

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/errs"

	"go.uber.org/zap"
)

// CommandRunner abstracts process spawning so installation can be tested
// without launching anything.
type CommandRunner interface {
	Run(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// ResultKind tells the caller what happened and whether it should quit the
// host application afterwards.
type ResultKind string

const (
	// the OS default handler took over; quit the application after a short
	// grace delay so the handler can launch first
	ResultLaunched ResultKind = "launched"

	// the artifact was revealed in the file manager; the caller should show
	// the dpkg command
	ResultDebManual ResultKind = "deb-manual"

	// the artifact was revealed in the file manager; AppImages need no
	// further installation step
	ResultAppImageReveal ResultKind = "appimage-reveal"
)

type Result struct {
	Kind    ResultKind
	Path    string
	Command string
}

// Installer dispatches the platform-specific install action for a
// downloaded artifact.
type Installer struct {
	logger *zap.Logger
	goos   string
	runner CommandRunner
}

func New(logger *zap.Logger, goos string, runner CommandRunner) *Installer {
	if runner == nil {
		runner = execRunner{}
	}
	return &Installer{
		logger: logger,
		goos:   goos,
		runner: runner,
	}
}

func (i *Installer) Install(localPath string) (Result, error) {
	if localPath == "" {
		return Result{}, errs.ErrNotDownloaded
	}

	switch i.goos {
	case "windows":
		return i.launch(localPath, "cmd", "/c", "start", "", localPath)
	case "darwin":
		return i.launch(localPath, "open", localPath)
	case "linux":
		return i.reveal(localPath)
	default:
		return Result{}, errs.IO(fmt.Sprintf("no install action for platform %q", i.goos))
	}
}

func (i *Installer) launch(localPath, name string, args ...string) (Result, error) {
	if err := i.runner.Run(name, args...); err != nil {
		return Result{}, errs.IO("failed to launch installer", err)
	}
	i.logger.Info("installer launched",
		zap.String("path", localPath),
	)
	return Result{
		Kind: ResultLaunched,
		Path: localPath,
	}, nil
}

// reveal opens the containing directory instead of the artifact. Package
// installation on Linux is not automatable without privileges, so the user
// finishes it: dpkg for .deb, nothing at all for AppImage.
func (i *Installer) reveal(localPath string) (Result, error) {
	if err := i.runner.Run("xdg-open", filepath.Dir(localPath)); err != nil {
		return Result{}, errs.IO("failed to reveal downloaded file", err)
	}

	if strings.HasSuffix(strings.ToLower(localPath), ".deb") {
		return Result{
			Kind:    ResultDebManual,
			Path:    localPath,
			Command: "sudo dpkg -i " + localPath,
		}, nil
	}
	return Result{
		Kind: ResultAppImageReveal,
		Path: localPath,
	}, nil
}
