package assets

import (
	"strings"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/errs"
)

// Select picks the download URL of the asset that installs on the given
// platform. Matching is case-insensitive over the asset name only. A strict
// per-platform pass runs first; when it finds nothing a looser pass falls
// back to coarse platform keywords. Both passes missing is reported as
// errs.ErrNoAsset, not treated as exceptional.
func Select(list []model.ReleaseAsset, osName, arch string) (string, error) {
	var (
		goos   = NormalizeOS(strings.ToLower(osName))
		goarch = NormalizeArch(strings.ToLower(arch))
	)

	if url := selectStrict(list, goos, goarch); url != "" {
		return url, nil
	}
	if url := selectLoose(list, goos); url != "" {
		return url, nil
	}
	return "", errs.ErrNoAsset
}

func selectStrict(list []model.ReleaseAsset, goos, goarch string) string {
	switch goos {
	case "windows":
		for _, a := range list {
			name := strings.ToLower(a.Name)
			if strings.HasSuffix(name, ".exe") && !strings.Contains(name, "portable") {
				return a.DownloadURL
			}
		}
	case "darwin":
		for _, a := range list {
			name := strings.ToLower(a.Name)
			if strings.HasSuffix(name, ".zip") || strings.HasSuffix(name, ".dmg") {
				return a.DownloadURL
			}
		}
	case "linux":
		var deb string
		for _, a := range list {
			name := strings.ToLower(a.Name)
			if !strings.Contains(name, goarch) {
				continue
			}
			if strings.Contains(name, ".appimage") {
				return a.DownloadURL
			}
			if deb == "" && strings.HasSuffix(name, ".deb") {
				deb = a.DownloadURL
			}
		}
		return deb
	}
	return ""
}

func selectLoose(list []model.ReleaseAsset, goos string) string {
	var keyword string
	switch goos {
	case "windows":
		keyword = "win"
	case "darwin":
		keyword = "mac"
	case "linux":
		keyword = "linux"
	default:
		return ""
	}
	for _, a := range list {
		if strings.Contains(strings.ToLower(a.Name), keyword) {
			return a.DownloadURL
		}
	}
	return ""
}
