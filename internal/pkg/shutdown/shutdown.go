package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// Wait blocks until the context is done or a termination signal arrives.
func Wait(ctx context.Context) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(
		signalChan,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer signal.Stop(signalChan)

	select {
	case <-ctx.Done():
	case sig := <-signalChan:
		zap.L().Info("signal received - shutting down",
			zap.String("signal", sig.String()),
		)
	}
}
