package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/bufpool"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/errs"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/fileops"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MaxRedirects caps the redirect chain so a cyclic or misbehaving chain
// always terminates.
const MaxRedirects = 10

const partSuffix = ".part"

// Engine streams a remote artifact to the download directory. It owns
// redirect following (the transport's own following is disabled), progress
// reporting, the absolute transfer timeout and partial-file cleanup.
// Cancellation is cooperative through the caller's context, observed at
// chunk boundaries and on redirect dispatch.
type Engine struct {
	logger  *zap.Logger
	client  *http.Client
	dir     string
	timeout time.Duration
}

func NewEngine(logger *zap.Logger, client *http.Client, conf config.DownloadConfig) *Engine {
	if client == nil {
		client = &http.Client{}
	}
	// the engine counts redirect hops itself
	owned := *client
	owned.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = config.DefaultDownloadTimeout
	}
	return &Engine{
		logger:  logger,
		client:  &owned,
		dir:     conf.Dir,
		timeout: timeout,
	}
}

// Download fetches url into the engine's directory and returns the final
// local path. onProgress, when non-nil, is invoked on every received chunk.
func (e *Engine) Download(ctx context.Context, rawURL string, onProgress func(model.UpdateProgress)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	currentURL := rawURL
	for hop := 0; hop <= MaxRedirects; hop++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, currentURL, nil)
		if err != nil {
			return "", errs.Network("invalid download url", err)
		}

		resp, err := e.client.Do(req)
		if err != nil {
			return "", e.classify(ctx, err)
		}

		if location := resp.Header.Get("Location"); resp.StatusCode >= 300 && resp.StatusCode < 400 && location != "" {
			resp.Body.Close()
			next, err := req.URL.Parse(location)
			if err != nil {
				return "", errs.Network("invalid redirect location", err)
			}
			e.logger.Debug("following redirect",
				zap.Int("hop", hop+1),
				zap.String("location", next.String()),
			)
			currentURL = next.String()
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return "", errs.HTTP(resp.StatusCode, fmt.Sprintf("download failed with status %d", resp.StatusCode))
		}

		defer resp.Body.Close()
		return e.stream(ctx, currentURL, resp, onProgress)
	}

	return "", errs.HTTP(0, "redirect chain exceeded the maximum depth")
}

func (e *Engine) stream(ctx context.Context, rawURL string, resp *http.Response, onProgress func(model.UpdateProgress)) (string, error) {
	var (
		name  = DeriveFilename(rawURL)
		final = filepath.Join(e.dir, name)
		part  = final + partSuffix
	)

	file, err := os.OpenFile(part, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", errs.IO("failed to create download file", err)
	}

	fail := func(cause error) (string, error) {
		file.Close()
		fileops.RemoveIfExists(part)
		return "", cause
	}

	var (
		tracker = newProgressTracker(resp.ContentLength, time.Now())
		buf     = bufpool.GetChunk()
	)
	defer bufpool.PutChunk(buf)

	for {
		if err := ctx.Err(); err != nil {
			return fail(e.classify(ctx, err))
		}

		n, readErr := resp.Body.Read(*buf)
		if n > 0 {
			if _, err := file.Write((*buf)[:n]); err != nil {
				return fail(errs.IO("failed to write download file", err))
			}
			if onProgress != nil {
				onProgress(tracker.observe(n, time.Now()))
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return fail(e.classify(ctx, readErr))
		}
	}

	if err := file.Close(); err != nil {
		fileops.RemoveIfExists(part)
		return "", errs.IO("failed to close download file", err)
	}
	if err := fileops.Finalize(part, final); err != nil {
		fileops.RemoveIfExists(part)
		return "", errs.IO("failed to finalize download file", err)
	}

	e.logger.Info("download finished",
		zap.String("path", final),
		zap.Int64("bytes", tracker.transferred),
	)
	return final, nil
}

// classify turns a transport failure into the right taxonomy entry. A
// deadline hit maps to the download timeout, the caller cancelling keeps its
// identity so the coordinator can report "cancelled" instead of "error".
func (e *Engine) classify(ctx context.Context, err error) error {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return errs.ErrDownloadTimeout
	case context.Canceled:
		return context.Canceled
	}
	return errs.Network("download transport failure", errors.WithStack(err))
}
