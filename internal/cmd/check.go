package cmd

import (
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/updater"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCheckCmd(conf *config.Config, logger *zap.Logger) *cobra.Command {
	var showNotes bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a newer version is released",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := buildCoordinator(conf, logger, consoleSink)
			if err := c.CheckForUpdates(cmd.Context()); err != nil {
				return err
			}

			st := c.Status()
			if showNotes && st.State == updater.StateAvailable {
				printSections(c.ParseChangelog(st.Info.ReleaseNotes, ""))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showNotes, "notes", false, "Print the categorized release notes when an update is available")
	return cmd
}
