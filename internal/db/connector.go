package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/pgconsolidate/internal/retry"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

// Pool settings for verify runs: one script, one transaction.
const (
	DefaultMaxConns        = 1
	DefaultMaxConnIdleTime = 5 * time.Minute
)

// Connector opens a PostgreSQL pool, retrying transient failures.
type Connector struct {
	connString string
	executor   *retry.Executor
	logger     pgconsolidate.Logger
}

// NewConnector creates a Connector with the default retry policy:
// DefaultRetryMaxAttempts retries, exponential backoff starting at
// DefaultRetryInitialDelay and capped at DefaultRetryMaxDelay.
func NewConnector(connString string, logger pgconsolidate.Logger) *Connector {
	backoff := retry.NewBackoff(pgconsolidate.DefaultRetryInitialDelay, pgconsolidate.DefaultRetryMaxDelay)
	executor := retry.NewExecutor(pgconsolidate.DefaultRetryMaxAttempts, backoff).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Warn("connection attempt %d failed, retrying in %s: %v", attempt+1, delay.Round(time.Millisecond), err)
		})
	return &Connector{connString: connString, executor: executor, logger: logger}
}

// Connect establishes a pool and pings it. Failures wrap
// pgconsolidate.ErrConnectionFailed.
func (c *Connector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(c.connString)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string: %v", pgconsolidate.ErrConnectionFailed, err)
	}
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		c.logger.Verbose("%s: %s", notice.Severity, notice.Message)
	}

	host := poolConfig.ConnConfig.Host
	port := poolConfig.ConnConfig.Port
	database := poolConfig.ConnConfig.Database
	c.logger.Verbose("Connecting to %s:%d/%s", host, port, database)

	var pool *pgxpool.Pool
	err = c.executor.Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pgconsolidate.ErrConnectionFailed, wrapConnectionError(err, host, port, database))
	}
	return pool, nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
func wrapConnectionError(err error, host string, port uint16, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port in the connection string

Original error: %w`, addr, host, port, err)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`cannot resolve host "%s"

Original error: %w`, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password in the connection string or $PGPASSWORD
  - Wrong username

Original error: %w`, database, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

Verify runs against an existing scratch database. To create one:
  createdb %s

Original error: %w`, database, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Original error: %w`, addr, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}
