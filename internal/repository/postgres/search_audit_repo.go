// internal/repository/postgres/search_audit_repo.go
package postgres

import (
	"context"
	"fmt"
	"strings"

	"client-bff/internal/domain/audit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const searchAuditSchema = `
	CREATE TABLE IF NOT EXISTS search_audit (
		id            BIGSERIAL PRIMARY KEY,
		request_id    TEXT NOT NULL,
		path          TEXT NOT NULL,
		subject       TEXT NOT NULL DEFAULT '',
		realm         TEXT NOT NULL DEFAULT '',
		roles         TEXT[] NOT NULL DEFAULT '{}',
		location      TEXT NOT NULL DEFAULT '',
		pickup_date   DATE,
		drop_off_date DATE,
		success       BOOLEAN NOT NULL,
		code          TEXT NOT NULL,
		total         BIGINT NOT NULL DEFAULT 0,
		duration_ms   BIGINT NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_search_audit_subject_created ON search_audit (subject, created_at DESC);
`

type SearchAuditRepository struct {
	db *pgxpool.Pool
}

func NewSearchAuditRepository(db *pgxpool.Pool) *SearchAuditRepository {
	return &SearchAuditRepository{db: db}
}

// EnsureSchema creates the audit table if it does not exist.
func (r *SearchAuditRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, searchAuditSchema); err != nil {
		return fmt.Errorf("failed to create search_audit table: %w", err)
	}
	return nil
}

// Create inserts an audit row
func (r *SearchAuditRepository) Create(ctx context.Context, a *audit.SearchAudit) error {
	query := `
		INSERT INTO search_audit (
			request_id, path, subject, realm, roles, location,
			pickup_date, drop_off_date, success, code, total, duration_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.RequestID, a.Path, a.Subject, a.Realm, pq.Array(a.Roles), a.Location,
		a.PickupDate, a.DropOffDate, a.Success, a.Code, a.Total, a.DurationMs,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert search audit: %w", err)
	}
	return nil
}

// List returns the most recent audit rows matching filters
func (r *SearchAuditRepository) List(ctx context.Context, filters *audit.ListFilters) ([]audit.SearchAudit, error) {
	query, args := buildAuditListQuery(filters)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list search audit: %w", err)
	}
	defer rows.Close()

	out := []audit.SearchAudit{}
	for rows.Next() {
		var a audit.SearchAudit
		var roles []string
		if err := rows.Scan(
			&a.ID, &a.RequestID, &a.Path, &a.Subject, &a.Realm, pq.Array(&roles), &a.Location,
			&a.PickupDate, &a.DropOffDate, &a.Success, &a.Code, &a.Total, &a.DurationMs, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan search audit: %w", err)
		}
		a.Roles = roles
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search audit: %w", err)
	}
	return out, nil
}

func buildAuditListQuery(filters *audit.ListFilters) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argPos := 1

	limit := 50
	if filters != nil {
		if filters.Subject != "" {
			conditions = append(conditions, fmt.Sprintf("subject = $%d", argPos))
			args = append(args, filters.Subject)
			argPos++
		}
		if filters.Path != "" {
			conditions = append(conditions, fmt.Sprintf("path = $%d", argPos))
			args = append(args, filters.Path)
			argPos++
		}
		if filters.Limit > 0 && filters.Limit <= 500 {
			limit = filters.Limit
		}
	}

	query := `
		SELECT id, request_id, path, subject, realm, roles, location,
		       pickup_date, drop_off_date, success, code, total, duration_ms, created_at
		FROM search_audit
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argPos)
	args = append(args, limit)

	return query, args
}
