package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
)

var _ domain.SessionRepository = (*PostgresSessionRepository)(nil)

const sessionSchema = `
	CREATE TABLE IF NOT EXISTS log_sessions (
		id          UUID PRIMARY KEY,
		weeks       INTEGER NOT NULL CHECK (weeks BETWEEN 1 AND 52),
		start_date  DATE NOT NULL,
		cutoff      DATE NOT NULL,
		logged      BOOLEAN[] NOT NULL,
		expanded    BOOLEAN NOT NULL DEFAULT FALSE,
		version     INTEGER NOT NULL DEFAULT 1,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_log_sessions_updated_at ON log_sessions (updated_at);`

// sessionRow stores the log as its first date plus one flag per day, the
// dates being contiguous by construction.
type sessionRow struct {
	ID        string       `db:"id"`
	Weeks     int          `db:"weeks"`
	StartDate time.Time    `db:"start_date"`
	Cutoff    time.Time    `db:"cutoff"`
	Logged    pq.BoolArray `db:"logged"`
	Expanded  bool         `db:"expanded"`
	Version   int          `db:"version"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

func toRow(s *domain.Session) (*sessionRow, error) {
	start, err := domain.ParseDate(s.StartDate())
	if err != nil {
		return nil, fmt.Errorf("session %s has no valid start date: %w", s.ID, err)
	}
	cutoff, err := domain.ParseDate(s.Cutoff)
	if err != nil {
		return nil, err
	}

	logged := make(pq.BoolArray, len(s.Entries))
	for i, e := range s.Entries {
		logged[i] = e.Logged
	}

	return &sessionRow{
		ID:        s.ID,
		Weeks:     s.Weeks,
		StartDate: start,
		Cutoff:    cutoff,
		Logged:    logged,
		Expanded:  s.Expanded,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

func (row *sessionRow) toDomain() *domain.Session {
	y, m, d := row.StartDate.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	entries := make([]domain.LogEntry, len(row.Logged))
	for i, logged := range row.Logged {
		entries[i] = domain.LogEntry{
			Date:   domain.FormatDate(start.AddDate(0, 0, i)),
			Logged: logged,
		}
	}

	return &domain.Session{
		ID:        row.ID,
		Weeks:     row.Weeks,
		Cutoff:    row.Cutoff.Format(domain.DateLayout),
		Entries:   entries,
		Expanded:  row.Expanded,
		Version:   row.Version,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// EnsureSchema creates the sessions table when it does not exist yet.
func (r *PostgresSessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sessionSchema); err != nil {
		return fmt.Errorf("failed to create log_sessions schema: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	row, err := toRow(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO log_sessions (
			id, weeks, start_date, cutoff, logged,
			expanded, version, created_at, updated_at
		) VALUES (
			:id, :weeks, :start_date, :cutoff, :logged,
			:expanded, :version, :created_at, :updated_at
		)`

	_, err = r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionConflict
		}
		return err
	}
	return nil
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var row sessionRow
	query := `SELECT * FROM log_sessions WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *PostgresSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	row, err := toRow(session)
	if err != nil {
		return err
	}
	row.Version++
	row.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE log_sessions
		SET logged = :logged,
		    expanded = :expanded,
		    version = :version,
		    updated_at = :updated_at
		WHERE id = :id
		  AND version = :version - 1  -- Optimistic Lock check`

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		exists, _ := r.exists(ctx, session.ID)
		if !exists {
			return domain.ErrSessionNotFound
		}
		return domain.ErrSessionConflict
	}

	session.Version = row.Version
	session.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM log_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *PostgresSessionRepository) DeleteIdle(ctx context.Context, before time.Time) ([]string, error) {
	var removed []string
	query := `DELETE FROM log_sessions WHERE updated_at < $1 RETURNING id`

	if err := r.db.SelectContext(ctx, &removed, query, before); err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *PostgresSessionRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM log_sessions WHERE id = $1", id)
	return count > 0, err
}

// isUniqueViolation recognises 23505 from either driver: pgx when running
// through the stdlib adapter, lib/pq otherwise.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
