package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/pgconsolidate/internal/db"
	"github.com/vvka-141/pgconsolidate/internal/files/filesystem"
	"github.com/vvka-141/pgconsolidate/internal/sqlcheck"
	"github.com/vvka-141/pgconsolidate/pkg/pgconsolidate"
)

// VerificationResult describes a script that applied cleanly and was rolled back.
type VerificationResult struct {
	ScriptPath string
	Size       int
	Duration   time.Duration
}

// VerificationError locates the statement PostgreSQL rejected.
type VerificationError struct {
	Code    string
	Message string
	Detail  string
	Line    int    // 1-based line of the script, 0 when unknown
	Excerpt string // the offending line, truncated
}

func (e *VerificationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (SQLSTATE %s)", e.Message, e.Code)
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, "\nDetail: %s", e.Detail)
	}
	if e.Excerpt != "" {
		fmt.Fprintf(&b, "\n  %d | %s", e.Line, e.Excerpt)
	}
	return b.String()
}

type poolConnectFunc func(ctx context.Context, connString string) (*pgxpool.Pool, error)

// VerificationService applies a script inside a transaction that is always
// rolled back, so the target database is left untouched.
type VerificationService struct {
	fs      filesystem.FileSystemProvider
	logger  pgconsolidate.Logger
	connect poolConnectFunc
}

// NewVerificationService creates a VerificationService connecting through db.Connector.
func NewVerificationService(fsys filesystem.FileSystemProvider, logger pgconsolidate.Logger) *VerificationService {
	if fsys == nil {
		panic("filesystem cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &VerificationService{
		fs:     fsys,
		logger: logger,
		connect: func(ctx context.Context, connString string) (*pgxpool.Pool, error) {
			return db.NewConnector(connString, logger).Connect(ctx)
		},
	}
}

// Verify runs config.ScriptPath against the database and rolls back.
// A rejected script yields an error wrapping ErrVerifyFailed whose chain
// holds a *VerificationError.
func (s *VerificationService) Verify(ctx context.Context, config pgconsolidate.VerifyConfig) (*VerificationResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	script, err := s.fs.ReadFile(config.ScriptPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", pgconsolidate.ErrInputNotFound, config.ScriptPath)
		}
		return nil, fmt.Errorf("failed to read %s: %w", config.ScriptPath, err)
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	s.logger.Info("Verifying %s against %s", config.ScriptPath, db.Redact(config.ConnectionString))
	pool, err := s.connect(ctx, config.ConnectionString)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	start := time.Now()
	if err := s.applyAndRollback(ctx, pool, string(script)); err != nil {
		return nil, err
	}

	return &VerificationResult{
		ScriptPath: config.ScriptPath,
		Size:       len(script),
		Duration:   time.Since(start),
	}, nil
}

func (s *VerificationService) applyAndRollback(ctx context.Context, pool *pgxpool.Pool, script string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", pgconsolidate.ErrConnectionFailed, err)
	}
	defer func() {
		// Rollback must run even when ctx has expired.
		if err := tx.Rollback(context.Background()); err != nil {
			s.logger.Verbose("rollback: %v", err)
		}
	}()

	if _, err := tx.Exec(ctx, script); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return fmt.Errorf("%w: %w", pgconsolidate.ErrVerifyFailed, newVerificationError(pgErr, script))
		}
		return fmt.Errorf("%w: %v", pgconsolidate.ErrVerifyFailed, err)
	}
	s.logger.Verbose("script applied; rolling back")
	return nil
}

func newVerificationError(pgErr *pgconn.PgError, script string) *VerificationError {
	e := &VerificationError{
		Code:    pgErr.Code,
		Message: pgErr.Message,
		Detail:  pgErr.Detail,
		Line:    sqlcheck.LineAt(script, int(pgErr.Position)),
	}
	if e.Line > 0 {
		e.Excerpt = excerpt(script, e.Line)
	}
	return e
}

// excerpt returns line n of script, trimmed and shortened to
// MaxErrorPreviewLength characters.
func excerpt(script string, n int) string {
	lines := strings.Split(script, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	line := strings.TrimSpace(lines[n-1])
	if r := []rune(line); len(r) > pgconsolidate.MaxErrorPreviewLength {
		line = string(r[:pgconsolidate.MaxErrorPreviewLength]) + "..."
	}
	return line
}
