package report

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PGConfig configures the Postgres sink.
type PGConfig struct {
	ConnectionString  string        `env:"PG_CONN_URL"`
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
	MigrationsTable   string        `env:"PG_MIGRATIONS_TABLE" envDefault:"report_schema_migrations"`
}

// ConnectPG opens a pool and pings it, waiting RetryInterval times the
// attempt number between tries.
func ConnectPG(ctx context.Context, cfg PGConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrInvalidPGConfig, err)
	}
	poolCfg.MaxConns = cfg.MaxOpenConns
	poolCfg.MinConns = cfg.MaxIdleConns
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrPGNotReady, ctx.Err())
			case <-time.After(time.Duration(i) * cfg.RetryInterval):
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			lastErr = err
			continue
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			continue
		}
		return pool, nil
	}
	return nil, errors.Join(ErrPGNotReady, lastErr)
}

// Migrate applies the embedded schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg PGConfig, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "failed to close migration connection", logger.Error(err))
		}
	}(db)

	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{log: log})
	goose.SetTableName(cfg.MigrationsTable)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct{ log *slog.Logger }

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// PGSink stores pixels in the report_pixels table instead of firing them.
type PGSink struct {
	pool *pgxpool.Pool
}

var _ Sink = (*PGSink)(nil)

func NewPGSink(pool *pgxpool.Pool) *PGSink {
	return &PGSink{pool: pool}
}

func (s *PGSink) Name() string { return "pg" }

const insertPixel = `INSERT INTO report_pixels (url, params, family, trustworthy, created_at)
VALUES ($1, $2::jsonb, $3, $4, $5)`

type pixelParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *PGSink) Deliver(ctx context.Context, p Pixel) error {
	params := make([]pixelParam, len(p.Params))
	for i, kv := range p.Params {
		params[i] = pixelParam{Key: kv.Key, Value: kv.Value}
	}
	family, trustworthy := pixelFacts(p.Params)

	data, err := json.Marshal(params)
	if err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	if _, err := s.pool.Exec(ctx, insertPixel, p.URL, string(data), family, trustworthy, p.CreatedAt); err != nil {
		return errors.Join(ErrDeliveryFailed, err)
	}
	return nil
}

// pixelFacts extracts the family name and trust flag from encoded params.
// Either is nil when the params do not carry it.
func pixelFacts(params []classify.Param) (family *string, trustworthy *bool) {
	for _, kv := range params {
		switch strings.ToUpper(kv.Key) {
		case classify.FieldFamily:
			if n, err := strconv.Atoi(kv.Value); err == nil && classify.Category(n).Valid() {
				name := classify.Category(n).String()
				family = &name
			}
		case classify.FieldTrustworthy:
			trusted := kv.Value == "1"
			trustworthy = &trusted
		}
	}
	return family, trustworthy
}

// Healthcheck reports whether the pool answers.
func (s *PGSink) Healthcheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return errors.Join(ErrPGNotReady, err)
	}
	return nil
}
