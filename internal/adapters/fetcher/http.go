package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultMaxBytes  = 5 << 20
	DefaultUserAgent = "qrgen/1.0 (+https://github.com/Badsnus/qrgen)"
)

var (
	ErrStatus  = errors.New("unexpected response status")
	ErrTooBig  = errors.New("response body exceeds limit")
	ErrRequest = errors.New("request failed")
)

type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// HTTP downloads icons over HTTP(S). Every request is bounded by Timeout, so
// an unresponsive host turns into an error instead of a hang.
type HTTP struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

func New(cfg Config) *HTTP {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &HTTP{
		client:    &http.Client{Timeout: cfg.Timeout},
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
	}
}

// Fetch returns the body of a successful GET to url.
func (f *HTTP) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/png,image/svg+xml,image/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooBig, f.maxBytes)
	}

	return data, nil
}
