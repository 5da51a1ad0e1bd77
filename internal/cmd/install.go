package cmd

import (
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/updater"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInstallCmd(conf *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Check, download and run the platform install step",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := buildCoordinator(conf, logger, consoleSink)
			if err := runDownload(cmd, c); err != nil {
				return err
			}
			if c.Status().State != updater.StateDownloaded {
				return nil
			}
			return c.InstallUpdate()
		},
	}
}
