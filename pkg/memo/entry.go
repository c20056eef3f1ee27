package memo

import (
	"context"
	"time"

	"github.com/dmitrymomot/probekit/pkg/classify"
)

// Entry is the last classification of one environment.
type Entry struct {
	EnvironmentID string           `json:"environment_id"`
	Result        classify.Result  `json:"result"`
	Encoded       classify.Encoded `json:"encoded"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Store keeps one Entry per environment. Save overwrites.
type Store interface {
	Save(ctx context.Context, e Entry) error
	// Load returns ErrNotFound when the environment has no entry.
	Load(ctx context.Context, environmentID string) (Entry, error)
	Ping(ctx context.Context) error
}
