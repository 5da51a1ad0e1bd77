package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/changelog"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/installer"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/release"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/transfer"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/updater"

	"go.uber.org/zap"
)

func buildCoordinator(conf *config.Config, logger *zap.Logger, sink updater.EventSink) *updater.Coordinator {
	var source updater.ReleaseSource
	fetcher := release.NewFetcher(logger, nil, conf.Registry)
	if conf.Registry.CacheTTL > 0 {
		source = release.NewCached(fetcher, conf.Registry.CacheTTL)
	} else {
		source = fetcher
	}

	engine := transfer.NewEngine(logger, nil, conf.Download)
	inst := installer.New(logger, runtime.GOOS, nil)

	version := conf.App.Version
	if currentVersion != "" {
		version = currentVersion
	}

	return updater.New(logger, source, engine, inst, sink, updater.Options{
		CurrentVersion: version,
		OS:             runtime.GOOS,
		Arch:           runtime.GOARCH,
		QuitDelay:      conf.Install.QuitDelay,
		Quit:           func() { os.Exit(0) },
	})
}

// consoleSink renders lifecycle events for terminal use.
func consoleSink(ev model.Event) {
	switch ev.Kind {
	case model.EventChecking:
		fmt.Println("Checking for updates...")
	case model.EventAvailable:
		mandatory := ""
		if ev.Info.Mandatory {
			mandatory = " (mandatory)"
		}
		fmt.Printf("Update available: %s -> %s%s\n", ev.Info.CurrentVersion, ev.Info.Version, mandatory)
	case model.EventNotAvailable:
		fmt.Println("Already up to date.")
	case model.EventProgress:
		if ev.Progress.Total > 0 {
			fmt.Printf("\r%3d%%  %s / %s  %s/s    ",
				ev.Progress.Percent,
				formatBytes(ev.Progress.Transferred),
				formatBytes(ev.Progress.Total),
				formatBytes(ev.Progress.BytesPerSecond),
			)
		} else {
			fmt.Printf("\r%s  %s/s    ",
				formatBytes(ev.Progress.Transferred),
				formatBytes(ev.Progress.BytesPerSecond),
			)
		}
	case model.EventDownloaded:
		fmt.Printf("\nDownloaded to %s\n", ev.Path)
	case model.EventCancelled:
		fmt.Println("\nDownload cancelled.")
	case model.EventError:
		fmt.Printf("\nUpdate failed: %s\n", ev.Message)
	case model.EventLinuxDeb:
		fmt.Printf("Package revealed in your file manager. Install it with:\n  %s\n", ev.Message)
	case model.EventLinuxAppImage:
		fmt.Printf("AppImage revealed in your file manager, no install step needed: %s\n", ev.Path)
	}
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func printSections(section changelog.Section) {
	printGroup := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Println(title + ":")
		for _, item := range items {
			fmt.Println("  - " + item)
		}
	}
	printGroup("Added", section.Added)
	printGroup("Changed", section.Changed)
	printGroup("Fixed", section.Fixed)
	printGroup("Removed", section.Removed)
}
