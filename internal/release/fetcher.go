package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/config"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/model"
	"github.com/nazeefmasood/youtube-downloader-gui-sub000/internal/pkg/errs"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

const acceptHeader = "application/vnd.github.v3+json"

// Fetcher resolves the latest release from the registry. The token list is
// an ordered fallback queue: 401/404/403 advance to the next token and
// replay the whole request. Exhausting the queue surfaces the last status.
type Fetcher struct {
	logger    *zap.Logger
	client    *http.Client
	baseURL   string
	owner     string
	repo      string
	tokens    []string
	userAgent string
	timeout   time.Duration
}

func NewFetcher(logger *zap.Logger, client *http.Client, conf config.RegistryConfig) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = config.DefaultCheckTimeout
	}
	baseURL := conf.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	userAgent := conf.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	return &Fetcher{
		logger:    logger,
		client:    client,
		baseURL:   baseURL,
		owner:     conf.Owner,
		repo:      conf.Repo,
		tokens:    conf.Tokens,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

func (f *Fetcher) FetchLatest(ctx context.Context) (*model.ReleaseDescriptor, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var (
		endpoint = fmt.Sprintf("%s/repos/%s/%s/releases/latest", f.baseURL, f.owner, f.repo)
		attempts = len(f.tokens)
	)
	if attempts == 0 {
		attempts = 1
	}

	var lastStatus int
	for i := 0; i < attempts; i++ {
		var token string
		if i < len(f.tokens) {
			token = f.tokens[i]
		}

		status, desc, err := f.attempt(ctx, endpoint, token)
		if err != nil {
			return nil, err
		}
		if desc != nil {
			return desc, nil
		}

		lastStatus = status
		switch status {
		case http.StatusUnauthorized, http.StatusNotFound:
			f.logger.Warn("registry rejected credential",
				zap.Int("status", status),
				zap.Int("credential", i),
			)
		case http.StatusForbidden:
			f.logger.Warn("registry rate limited credential",
				zap.Int("credential", i),
			)
		default:
			// terminal, no further fallback
			return nil, errs.HTTP(status, fmt.Sprintf("release registry returned status %d", status))
		}
	}

	if lastStatus == http.StatusForbidden {
		return nil, errs.RateLimit(lastStatus, "rate limited by the release registry")
	}
	return nil, errs.Auth(lastStatus, fmt.Sprintf("release registry rejected all credentials, last status %d", lastStatus))
}

// attempt runs one authenticated request. It returns a non-nil descriptor on
// 200, the status code when the credential queue should decide what happens
// next, or an error for transport and decode failures.
func (f *Fetcher) attempt(ctx context.Context, endpoint, token string) (int, *model.ReleaseDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, errs.Network("failed to build registry request", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", f.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, nil, errs.ErrCheckTimeout
		}
		return 0, nil, errs.Network("failed to reach the release registry", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, nil, errs.ErrCheckTimeout
		}
		return 0, nil, errs.Network("failed to read registry response", err)
	}

	var desc model.ReleaseDescriptor
	if err := sonic.Unmarshal(body, &desc); err != nil {
		return 0, nil, errs.Parse("malformed release metadata", err)
	}
	return resp.StatusCode, &desc, nil
}
