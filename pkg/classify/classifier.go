package classify

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/probekit/pkg/checkpoint"
	"github.com/dmitrymomot/probekit/pkg/logger"
	"github.com/dmitrymomot/probekit/pkg/platform"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

// Ceilings are the newest releases the version tables vouch for. Reports
// beyond a ceiling are capped and flagged with MaxExceeded.
type Ceilings struct {
	Chrome  float64 `env:"PROBE_LATEST_CHROME" envDefault:"55"`
	Firefox float64 `env:"PROBE_LATEST_FIREFOX" envDefault:"51"`
	Edge    float64 `env:"PROBE_LATEST_EDGE" envDefault:"14"`
	Opera   float64 `env:"PROBE_LATEST_OPERA" envDefault:"40"`
}

// DefaultCeilings returns the ceilings the tables were written against.
func DefaultCeilings() Ceilings {
	return Ceilings{
		Chrome:  checkpoint.LatestChrome,
		Firefox: checkpoint.LatestFirefox,
		Edge:    checkpoint.LatestEdge,
		Opera:   checkpoint.LatestOpera,
	}
}

// Classifier assigns environments to families. It holds no per-call state
// and is safe for concurrent use.
type Classifier struct {
	ceilings Ceilings
	logger   *slog.Logger

	mobile  Cascade
	desktop Cascade

	chromium     checkpoint.Table
	gecko        checkpoint.Table
	trident      checkpoint.Table
	safariTable  checkpoint.Table
	androidTable checkpoint.Table
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger logs every classification at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCeilings overrides the newest known releases. Zero fields keep the
// defaults.
func WithCeilings(ceil Ceilings) Option {
	return func(c *Classifier) {
		if ceil.Chrome > 0 {
			c.ceilings.Chrome = ceil.Chrome
		}
		if ceil.Firefox > 0 {
			c.ceilings.Firefox = ceil.Firefox
		}
		if ceil.Edge > 0 {
			c.ceilings.Edge = ceil.Edge
		}
		if ceil.Opera > 0 {
			c.ceilings.Opera = ceil.Opera
		}
	}
}

// New builds a Classifier.
func New(opts ...Option) *Classifier {
	c := &Classifier{ceilings: DefaultCeilings()}
	for _, opt := range opts {
		opt(c)
	}
	c.mobile = MobileCascade()
	c.desktop = DesktopCascade()
	c.chromium = checkpoint.Chromium(c.ceilings.Chrome)
	c.gecko = checkpoint.Gecko(c.ceilings.Firefox)
	c.trident = checkpoint.Trident(c.ceilings.Edge)
	c.safariTable = checkpoint.Safari()
	c.androidTable = checkpoint.Android()
	return c
}

// Ceilings returns the ceilings in effect.
func (c *Classifier) Ceilings() Ceilings { return c.ceilings }

var defaultClassifier = New()

// Classify runs the default Classifier.
func Classify(o probe.Oracle, sig probe.Signature) Result {
	return defaultClassifier.Classify(o, sig)
}

// Family runs only the family cascades: environments that cannot be
// inspected are Unknown, constrained ones go through the mobile cascade and
// the rest through the desktop one.
func (c *Classifier) Family(o probe.Oracle, sig probe.Signature) (Category, bool) {
	if !Inspectable(o) {
		return Unknown, false
	}
	if Constrained(o) {
		return c.mobile.Resolve(o, sig), true
	}
	return c.desktop.Resolve(o, sig), false
}

// Classify assigns o to exactly one family, bounds its version and checks
// the signature against the result. It never panics; anything that goes
// wrong yields an untrusted Unknown result.
func (c *Classifier) Classify(o probe.Oracle, sig probe.Signature) (r Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r = unknownResult()
			c.log(slog.LevelWarn, "classification aborted", r, sig, slog.Any("panic", rec))
		}
	}()

	if o == nil {
		o = probe.New(nil)
	}

	family, constrained := c.Family(o, sig)
	if resolve, ok := resolvers[family]; ok {
		r = resolve(c, o, sig)
	} else {
		r = c.unknown(family, o, sig)
	}

	if r.Device == platform.DeviceUnknown {
		r.Device = defaultDevice(r.Family, constrained)
	}
	if r.UAVersion > r.Version {
		r.Max = MaxExceeded
	}
	r = Validate(r, sig)

	c.log(slog.LevelDebug, "environment classified", r, sig)
	return r
}

func defaultDevice(family Category, constrained bool) platform.DeviceClass {
	switch {
	case family == Kindle:
		return platform.DeviceTablet
	case family == Console:
		return platform.DeviceConsole
	case family.Mobile(), constrained:
		return platform.DeviceMobile
	}
	return platform.DeviceDesktop
}

func unknownResult() Result {
	return Result{
		Category:  NameUnknown,
		Family:    Unknown,
		Version:   probe.DefaultVersion,
		UAVersion: probe.DefaultVersion,
		Device:    platform.DeviceDesktop,
		Engine:    platform.Engine{Name: platform.EngineUnknown, Version: probe.DefaultVersion},
		Platform:  Platform{Name: platform.OSUnknown, Version: platform.UnknownVersion},
		Max:       MaxOK,
	}
}

func (c *Classifier) log(level slog.Level, msg string, r Result, sig probe.Signature, attrs ...slog.Attr) {
	if c.logger == nil {
		return
	}
	attrs = append(attrs,
		logger.Family(r.Family.String()),
		logger.Category(r.Category),
		slog.Float64("version", r.Version),
		slog.Bool("trustworthy", r.Trustworthy),
		logger.Signature(sig.String()),
	)
	c.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
