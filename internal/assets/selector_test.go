package assets

import (
	"testing"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func asset(name string) model.ReleaseAsset {
	return model.ReleaseAsset{
		Name:        name,
		DownloadURL: "https://releases.example.com/" + name,
	}
}

func TestSelect(t *testing.T) {
	testCases := []struct {
		Name     string
		Assets   []model.ReleaseAsset
		OS       string
		Arch     string
		Expected string
	}{
		{
			Name:     "Windows_Setup_Over_Portable",
			Assets:   []model.ReleaseAsset{asset("App-portable.exe"), asset("App-Setup.exe")},
			OS:       "win32",
			Arch:     "x64",
			Expected: "App-Setup.exe",
		},
		{
			Name:     "Windows_Case_Insensitive",
			Assets:   []model.ReleaseAsset{asset("App-2.3.0-Setup.EXE")},
			OS:       "windows",
			Arch:     "amd64",
			Expected: "App-2.3.0-Setup.EXE",
		},
		{
			Name:     "Darwin_Dmg",
			Assets:   []model.ReleaseAsset{asset("App-Setup.exe"), asset("App-2.3.0.dmg")},
			OS:       "darwin",
			Arch:     "arm64",
			Expected: "App-2.3.0.dmg",
		},
		{
			Name:     "Darwin_Zip_By_List_Order",
			Assets:   []model.ReleaseAsset{asset("App-mac.zip"), asset("App.dmg")},
			OS:       "macos",
			Arch:     "x64",
			Expected: "App-mac.zip",
		},
		{
			Name:     "Linux_AppImage_With_Arch_Token",
			Assets:   []model.ReleaseAsset{asset("app_amd64.deb"), asset("app-amd64.AppImage")},
			OS:       "linux",
			Arch:     "x64",
			Expected: "app-amd64.AppImage",
		},
		{
			Name:     "Linux_Deb_When_AppImage_Lacks_Arch",
			Assets:   []model.ReleaseAsset{asset("app.AppImage"), asset("app_amd64.deb")},
			OS:       "linux",
			Arch:     "x64",
			Expected: "app_amd64.deb",
		},
		{
			Name:     "Loose_Fallback_Keyword",
			Assets:   []model.ReleaseAsset{asset("app-linux.tar.gz")},
			OS:       "linux",
			Arch:     "x64",
			Expected: "app-linux.tar.gz",
		},
		{
			Name:     "Loose_Fallback_Mac_Keyword",
			Assets:   []model.ReleaseAsset{asset("app-mac-universal.pkg")},
			OS:       "osx",
			Arch:     "arm64",
			Expected: "app-mac-universal.pkg",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			url, err := Select(tc.Assets, tc.OS, tc.Arch)
			require.NoError(t, err)
			require.Equal(t, "https://releases.example.com/"+tc.Expected, url)
		})
	}
}

func TestSelectNoMatch(t *testing.T) {
	list := []model.ReleaseAsset{asset("checksums.txt"), asset("source.tar.gz")}

	_, err := Select(list, "win32", "x64")
	require.ErrorIs(t, err, errs.ErrNoAsset)

	_, err = Select(list, "unknown-os", "x64")
	require.ErrorIs(t, err, errs.ErrNoAsset)
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "windows", NormalizeOS("win32"))
	require.Equal(t, "darwin", NormalizeOS("osx"))
	require.Equal(t, "amd64", NormalizeArch("x64"))
	require.Equal(t, "arm64", NormalizeArch("aarch64"))
	require.Equal(t, "riscv64", NormalizeArch("riscv64"))
}
