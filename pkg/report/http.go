package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSink fires each pixel as a GET request. Transient failures are
// retried; 4xx answers other than 408, 425 and 429 are not.
type HTTPSink struct {
	client    *http.Client
	userAgent string
	retries   int
	backoff   Backoff
}

var _ Sink = (*HTTPSink)(nil)

// HTTPOption configures an HTTPSink.
type HTTPOption func(*HTTPSink)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSink) {
		if c != nil {
			s.client = c
		}
	}
}

// WithRetries sets how many times a failed pixel is retried.
func WithRetries(n int, b Backoff) HTTPOption {
	return func(s *HTTPSink) {
		if n >= 0 {
			s.retries = n
		}
		if b != nil {
			s.backoff = b
		}
	}
}

func WithUserAgent(ua string) HTTPOption {
	return func(s *HTTPSink) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// NewHTTPSink returns a sink with pooled connections and two retries.
func NewHTTPSink(opts ...HTTPOption) *HTTPSink {
	s := &HTTPSink{
		client: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: "probekit-report/1.0",
		retries:   2,
		backoff:   DefaultBackoff(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSink) Name() string { return "http" }

func (s *HTTPSink) Deliver(ctx context.Context, p Pixel) error {
	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(ErrDeliveryFailed, ctx.Err(), lastErr)
			case <-time.After(s.backoff.NextInterval(attempt)):
			}
		}

		err := s.attempt(ctx, p.URL)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrPermanentFailure) {
			return errors.Join(ErrDeliveryFailed, err)
		}
		lastErr = err
	}
	return errors.Join(ErrDeliveryFailed, lastErr)
}

func (s *HTTPSink) attempt(ctx context.Context, u string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Join(ErrPermanentFailure, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	switch {
	case resp.StatusCode < 400:
		return nil
	case isPermanent(resp.StatusCode):
		return fmt.Errorf("%w: status %d", ErrPermanentFailure, resp.StatusCode)
	}
	return fmt.Errorf("pixel endpoint returned status %d", resp.StatusCode)
}

func isPermanent(status int) bool {
	if status < 400 || status >= 500 {
		return false
	}
	switch status {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return false
	}
	return true
}
