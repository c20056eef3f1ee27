package report

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/logger"
)

// ParamElapsed carries the milliseconds since a reference time.
const ParamElapsed = "vtime"

// DefaultQueueLimit bounds the reports held while no base URL is known.
const DefaultQueueLimit = 1000

// Pixel is one report, ready for a sink.
type Pixel struct {
	URL       string
	Params    []classify.Param
	CreatedAt time.Time
}

// Sink delivers pixels.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, p Pixel) error
}

type queued struct {
	query  string
	params []classify.Param
}

// Reporter turns encoded results into pixel URLs and hands them to a Sink.
// Reports logged before a base URL is known are queued and delivered in
// order by SetBaseURL. Once the queue holds its limit the oldest report is
// dropped. Delivery errors are logged, never returned.
type Reporter struct {
	sink       Sink
	logger     *slog.Logger
	timeout    time.Duration
	now        func() time.Time
	queueLimit int
	direct     bool

	mu    sync.Mutex
	base  string
	queue []queued
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithBaseURL sets the pixel endpoint up front.
func WithBaseURL(base string) Option {
	return func(r *Reporter) {
		if base != "" {
			r.base = PrepareURL(base)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTimeout bounds each delivery. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Reporter) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithQueueLimit bounds the pre-base-URL queue. Values below one are ignored.
func WithQueueLimit(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.queueLimit = n
		}
	}
}

// WithDirectDelivery delivers reports immediately even without a base URL.
// The pixel URL is then the bare query string. Storage sinks use it.
func WithDirectDelivery() Option {
	return func(r *Reporter) {
		r.direct = true
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Reporter) {
		if now != nil {
			r.now = now
		}
	}
}

// NewReporter returns a Reporter delivering through sink.
func NewReporter(sink Sink, opts ...Option) *Reporter {
	if sink == nil {
		sink = Discard{}
	}
	r := &Reporter{
		sink:       sink,
		logger:     logger.Discard(),
		timeout:    2 * time.Second,
		now:        time.Now,
		queueLimit: DefaultQueueLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Log reports params against the base URL and returns the URL delivered.
// Without a base URL the query string is queued and returned instead,
// unless the Reporter delivers directly.
func (r *Reporter) Log(ctx context.Context, params []classify.Param) string {
	qs := QueryString(params)

	r.mu.Lock()
	base := r.base
	if base == "" && !r.direct {
		dropped := r.enqueue(queued{query: qs, params: params})
		r.mu.Unlock()
		if dropped {
			r.logger.WarnContext(ctx, "report queue full, dropped oldest report",
				logger.Sink(r.sink.Name()),
				slog.Int("limit", r.queueLimit),
			)
		}
		return qs
	}
	r.mu.Unlock()

	u := base + qs
	r.deliver(ctx, u, params)
	return u
}

// enqueue must be called with the lock held. It reports whether the oldest
// entry was dropped to make room.
func (r *Reporter) enqueue(q queued) bool {
	dropped := false
	if len(r.queue) >= r.queueLimit {
		n := len(r.queue) - r.queueLimit + 1
		r.queue = slices.Delete(r.queue, 0, n)
		dropped = true
	}
	r.queue = append(r.queue, q)
	return dropped
}

// LogTo reports params against target instead of the base URL.
func (r *Reporter) LogTo(ctx context.Context, target string, params []classify.Param) string {
	if target == "" {
		return r.Log(ctx, params)
	}
	u := PrepareURL(target) + QueryString(params)
	r.deliver(ctx, u, params)
	return u
}

// LogWithElapsedTime appends the milliseconds elapsed since start as vtime.
func (r *Reporter) LogWithElapsedTime(ctx context.Context, params []classify.Param, start time.Time) string {
	elapsed := r.now().Sub(start).Milliseconds()
	withElapsed := make([]classify.Param, 0, len(params)+1)
	withElapsed = append(withElapsed, params...)
	withElapsed = append(withElapsed, classify.Param{Key: ParamElapsed, Value: strconv.FormatInt(elapsed, 10)})
	return r.Log(ctx, withElapsed)
}

// SetBaseURL changes the pixel endpoint and flushes the queue through it.
func (r *Reporter) SetBaseURL(ctx context.Context, base string) {
	r.mu.Lock()
	prev := r.base
	r.base = PrepareURL(base)
	pending := r.queue
	r.queue = nil
	next := r.base
	r.mu.Unlock()

	if prev != "" && prev != next {
		r.logger.InfoContext(ctx, "report base url changed", slog.String("from", prev), slog.String("to", next))
	}
	for _, q := range pending {
		r.deliver(ctx, next+q.query, q.params)
	}
}

// Pending returns the number of queued reports.
func (r *Reporter) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

func (r *Reporter) deliver(ctx context.Context, u string, params []classify.Param) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	p := Pixel{URL: u, Params: params, CreatedAt: r.now().UTC()}
	if err := r.sink.Deliver(ctx, p); err != nil {
		r.logger.WarnContext(ctx, "report delivery failed",
			logger.Sink(r.sink.Name()),
			slog.String("url", u),
			logger.Error(err),
		)
	}
}

// Ping checks the sink when it can report its health, e.g. PGSink.
func (r *Reporter) Ping(ctx context.Context) error {
	if hc, ok := r.sink.(interface{ Healthcheck(context.Context) error }); ok {
		return hc.Healthcheck(ctx)
	}
	return nil
}

// Discard drops every pixel.
type Discard struct{}

func (Discard) Name() string                         { return "discard" }
func (Discard) Deliver(context.Context, Pixel) error { return nil }
