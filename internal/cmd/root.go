package cmd

import (
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var currentVersion string

func Execute(conf *config.Config, logger *zap.Logger) error {
	rootCmd := &cobra.Command{
		Use:          "sub000-updater",
		Short:        "Self-update tool for the sub000 downloader",
		Long:         "Checks the release registry for newer sub000 versions, downloads the right artifact for this platform and drives the OS-specific install step.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&currentVersion, "current-version", "", "Override the running application version")

	rootCmd.AddCommand(newCheckCmd(conf, logger))
	rootCmd.AddCommand(newDownloadCmd(conf, logger))
	rootCmd.AddCommand(newInstallCmd(conf, logger))
	rootCmd.AddCommand(newWatchCmd(conf, logger))
	rootCmd.AddCommand(newChangelogCmd(conf, logger))

	return rootCmd.Execute()
}
