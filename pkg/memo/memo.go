package memo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/logger"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

// Memo classifies environments and remembers the latest result of each.
// Classify always recomputes; Last and Read serve readers in between.
type Memo struct {
	store      Store
	classifier *classify.Classifier
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Memo.
type Option func(*Memo)

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(m *Memo) {
		if c != nil {
			m.classifier = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Memo) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock sets the time source for Entry.UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Memo) {
		if now != nil {
			m.now = now
		}
	}
}

// New returns a Memo over store.
func New(store Store, opts ...Option) *Memo {
	m := &Memo{
		store:      store,
		classifier: classify.New(),
		logger:     logger.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Classify runs the classifier and overwrites the environment's entry.
// When the store fails the fresh entry is still returned, with an error
// wrapping ErrStoreUnavailable.
func (m *Memo) Classify(ctx context.Context, environmentID string, o probe.Oracle, sig probe.Signature) (Entry, error) {
	if environmentID == "" {
		return Entry{}, ErrEmptyEnvironmentID
	}

	r := m.classifier.Classify(o, sig)
	e := Entry{
		EnvironmentID: environmentID,
		Result:        r,
		Encoded:       r.Encode(),
		UpdatedAt:     m.now().UTC(),
	}

	if err := m.store.Save(ctx, e); err != nil {
		m.logger.WarnContext(ctx, "failed to memoise classification",
			logger.EnvironmentID(environmentID),
			logger.Error(err),
		)
		if !errors.Is(err, ErrStoreUnavailable) {
			err = errors.Join(ErrStoreUnavailable, err)
		}
		return e, err
	}
	return e, nil
}

// Last returns the most recent entry of the environment.
func (m *Memo) Last(ctx context.Context, environmentID string) (Entry, error) {
	if environmentID == "" {
		return Entry{}, ErrEmptyEnvironmentID
	}
	return m.store.Load(ctx, environmentID)
}

// Read returns one encoded field of the environment's latest entry.
// Unknown fields yield classify.ErrUnknownField.
func (m *Memo) Read(ctx context.Context, environmentID, field string) (string, error) {
	e, err := m.Last(ctx, environmentID)
	if err != nil {
		return "", err
	}
	return e.Encoded.Field(field)
}

// Ping reports whether the store is reachable.
func (m *Memo) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
