package installer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeRunner struct {
	name string
	args []string
	err  error
}

func (f *fakeRunner) Run(name string, args ...string) error {
	f.name = name
	f.args = args
	return f.err
}

func TestInstall(t *testing.T) {
	testCases := []struct {
		Name         string
		GOOS         string
		Path         string
		ExpectedKind ResultKind
		ExpectedCmd  string
		ExpectedArgs []string
	}{
		{
			Name:         "Windows_Launches_Default_Handler",
			GOOS:         "windows",
			Path:         `C:\Users\me\Downloads\App-Setup.exe`,
			ExpectedKind: ResultLaunched,
			ExpectedCmd:  "cmd",
			ExpectedArgs: []string{"/c", "start", "", `C:\Users\me\Downloads\App-Setup.exe`},
		},
		{
			Name:         "Darwin_Opens_Artifact",
			GOOS:         "darwin",
			Path:         "/Users/me/Downloads/App.dmg",
			ExpectedKind: ResultLaunched,
			ExpectedCmd:  "open",
			ExpectedArgs: []string{"/Users/me/Downloads/App.dmg"},
		},
		{
			Name:         "Linux_Deb_Reveals_And_Reports_Dpkg",
			GOOS:         "linux",
			Path:         "/home/me/Downloads/app_amd64.deb",
			ExpectedKind: ResultDebManual,
			ExpectedCmd:  "xdg-open",
			ExpectedArgs: []string{filepath.Dir("/home/me/Downloads/app_amd64.deb")},
		},
		{
			Name:         "Linux_AppImage_Reveals_Only",
			GOOS:         "linux",
			Path:         "/home/me/Downloads/app.AppImage",
			ExpectedKind: ResultAppImageReveal,
			ExpectedCmd:  "xdg-open",
			ExpectedArgs: []string{filepath.Dir("/home/me/Downloads/app.AppImage")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			runner := &fakeRunner{}
			inst := New(zaptest.NewLogger(t), tc.GOOS, runner)

			result, err := inst.Install(tc.Path)
			require.NoError(t, err)
			require.Equal(t, tc.ExpectedKind, result.Kind)
			require.Equal(t, tc.Path, result.Path)
			require.Equal(t, tc.ExpectedCmd, runner.name)
			require.Equal(t, tc.ExpectedArgs, runner.args)

			if tc.ExpectedKind == ResultDebManual {
				require.Equal(t, "sudo dpkg -i "+tc.Path, result.Command)
			} else {
				require.Empty(t, result.Command)
			}
		})
	}
}

func TestInstallEmptyPath(t *testing.T) {
	inst := New(zaptest.NewLogger(t), "windows", &fakeRunner{})
	_, err := inst.Install("")
	require.ErrorIs(t, err, errs.ErrNotDownloaded)
}

func TestInstallRunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("spawn failed")}
	inst := New(zaptest.NewLogger(t), "darwin", runner)
	_, err := inst.Install("/tmp/App.dmg")
	require.Error(t, err)
	require.Equal(t, errs.KindIO, errs.KindOf(err))
}
