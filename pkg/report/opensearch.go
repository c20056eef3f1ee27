package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// OpenSearchConfig configures the OpenSearch sink.
type OpenSearchConfig struct {
	Addresses  []string `env:"OPENSEARCH_ADDRESSES" envSeparator:"," envDefault:"http://localhost:9200"`
	Username   string   `env:"OPENSEARCH_USERNAME"`
	Password   string   `env:"OPENSEARCH_PASSWORD"`
	MaxRetries int      `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	Index      string   `env:"OPENSEARCH_INDEX" envDefault:"probekit-pixels"`
}

// ConnectOpenSearch builds a client and checks that the cluster answers.
func ConnectOpenSearch(ctx context.Context, cfg OpenSearchConfig) (*opensearch.Client, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:  cfg.Addresses,
		Username:   cfg.Username,
		Password:   cfg.Password,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return nil, errors.Join(ErrOpenSearchNotReady, err)
	}
	if err := pingOpenSearch(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func pingOpenSearch(ctx context.Context, client *opensearch.Client) error {
	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return errors.Join(ErrOpenSearchNotReady, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("%w: %s", ErrOpenSearchNotReady, res.Status())
	}
	return nil
}

// OpenSearchSink indexes one document per pixel.
type OpenSearchSink struct {
	client *opensearch.Client
	index  string
}

var _ Sink = (*OpenSearchSink)(nil)

func NewOpenSearchSink(client *opensearch.Client, index string) *OpenSearchSink {
	if index == "" {
		index = "probekit-pixels"
	}
	return &OpenSearchSink{client: client, index: index}
}

func (s *OpenSearchSink) Name() string { return "opensearch" }

type pixelDocument struct {
	URL         string            `json:"url"`
	Params      map[string]string `json:"params"`
	Family      string            `json:"family,omitempty"`
	Trustworthy *bool             `json:"trustworthy,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (s *OpenSearchSink) Deliver(ctx context.Context, p Pixel) error {
	family, trustworthy := pixelFacts(p.Params)
	doc := pixelDocument{
		URL:         p.URL,
		Params:      make(map[string]string, len(p.Params)),
		Trustworthy: trustworthy,
		CreatedAt:   p.CreatedAt,
	}
	if family != nil {
		doc.Family = *family
	}
	for _, kv := range p.Params {
		doc.Params[kv.Key] = kv.Value
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}

	res, err := opensearchapi.IndexRequest{
		Index: s.index,
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	defer func() { _ = res.Body.Close() }()
	_, _ = io.Copy(io.Discard, res.Body)

	if res.IsError() {
		err := fmt.Errorf("opensearch answered %s", res.Status())
		if res.StatusCode < 500 && res.StatusCode != 429 {
			err = errors.Join(ErrPermanentFailure, err)
		}
		return errors.Join(ErrDeliveryFailed, err)
	}
	return nil
}

// Healthcheck reports whether the cluster answers.
func (s *OpenSearchSink) Healthcheck(ctx context.Context) error {
	return pingOpenSearch(ctx, s.client)
}
