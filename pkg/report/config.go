package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/probekit/pkg/logger"
)

// Sink names accepted by Config.Sink.
const (
	SinkNone       = "none"
	SinkHTTP       = "http"
	SinkPG         = "pg"
	SinkOpenSearch = "opensearch"
)

// Config selects the sink and the pixel endpoint.
type Config struct {
	Sink       string        `env:"REPORT_SINK" envDefault:"none"`
	BaseURL    string        `env:"REPORT_BASE_URL"`
	Timeout    time.Duration `env:"REPORT_TIMEOUT" envDefault:"2s"`
	Retries    int           `env:"REPORT_RETRIES" envDefault:"2"`
	PG         PGConfig
	OpenSearch OpenSearchConfig
}

// Open builds a Reporter for cfg. For the pg sink it connects and migrates
// first. The http sink needs a base URL. The other sinks deliver directly
// and treat the URL as informational. The returned close function is never nil.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*Reporter, func(), error) {
	if log == nil {
		log = logger.Discard()
	}
	opts := []Option{WithBaseURL(cfg.BaseURL), WithTimeout(cfg.Timeout), WithLogger(log)}
	noop := func() {}

	if cfg.Sink != SinkHTTP {
		opts = append(opts, WithDirectDelivery())
	}

	switch cfg.Sink {
	case SinkNone, "":
		return NewReporter(Discard{}, opts...), noop, nil
	case SinkHTTP:
		if cfg.BaseURL == "" {
			return nil, noop, ErrMissingBaseURL
		}
		return NewReporter(NewHTTPSink(WithRetries(cfg.Retries, nil)), opts...), noop, nil
	case SinkPG:
		pool, err := ConnectPG(ctx, cfg.PG)
		if err != nil {
			return nil, noop, err
		}
		if err := Migrate(ctx, pool, cfg.PG, log); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return NewReporter(NewPGSink(pool), opts...), pool.Close, nil
	case SinkOpenSearch:
		client, err := ConnectOpenSearch(ctx, cfg.OpenSearch)
		if err != nil {
			return nil, noop, err
		}
		return NewReporter(NewOpenSearchSink(client, cfg.OpenSearch.Index), opts...), noop, nil
	}
	return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSink, cfg.Sink)
}
