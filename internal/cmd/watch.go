package cmd

import (
	"context"
	"time"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/shutdown"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/updater"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newWatchCmd(conf *config.Config, logger *zap.Logger) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Periodically check for updates until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := buildCoordinator(conf, logger, consoleSink)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				shutdown.Wait(ctx)
				cancel()
				return nil
			})
			g.Go(func() error {
				defer cancel()
				runWatch(ctx, c, logger, interval)
				return nil
			})
			return g.Wait()
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Hour, "Time between update checks")
	return cmd
}

func runWatch(ctx context.Context, c *updater.Coordinator, logger *zap.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := c.CheckForUpdates(ctx); err != nil {
			logger.Warn("scheduled update check failed",
				zap.Error(err),
			)
		}
		if c.Status().State == updater.StateAvailable {
			// one report is enough, the user takes it from here
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
