package cmd

import (
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/updater"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDownloadCmd(conf *config.Config, logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Check and download the latest release artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := buildCoordinator(conf, logger, consoleSink)
			return runDownload(cmd, c)
		},
	}
}

func runDownload(cmd *cobra.Command, c *updater.Coordinator) error {
	if err := c.CheckForUpdates(cmd.Context()); err != nil {
		return err
	}
	if c.Status().State != updater.StateAvailable {
		return nil
	}
	return c.DownloadUpdate(cmd.Context())
}
