package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"argynix-connect/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const exportHistorySchema = `
CREATE TABLE IF NOT EXISTS export_history (
	id          UUID PRIMARY KEY,
	device_id   TEXT NOT NULL,
	device_name TEXT NOT NULL,
	format      TEXT NOT NULL,
	keys        TEXT[] NOT NULL DEFAULT '{}',
	start_ts    BIGINT NOT NULL,
	end_ts      BIGINT NOT NULL,
	file_name   TEXT NOT NULL,
	row_count   INTEGER NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS export_history_device_idx ON export_history (device_id, created_at DESC);
`

type PostgresExportHistoryRepository struct {
	db *sql.DB
}

func NewPostgresExportHistoryRepository(db *sql.DB) *PostgresExportHistoryRepository {
	return &PostgresExportHistoryRepository{db: db}
}

var _ ExportHistoryRepository = (*PostgresExportHistoryRepository)(nil)

// EnsureSchema creates the table when missing.
func (r *PostgresExportHistoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, exportHistorySchema); err != nil {
		return fmt.Errorf("failed to create export_history: %w", err)
	}
	return nil
}

func (r *PostgresExportHistoryRepository) Record(ctx context.Context, rec *domain.ExportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO export_history
			(id, device_id, device_name, format, keys, start_ts, end_ts, file_name, row_count, created_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.DeviceID,
		rec.DeviceName,
		rec.Format,
		pq.Array(rec.Keys),
		rec.StartTs,
		rec.EndTs,
		rec.FileName,
		rec.RowCount,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

func (r *PostgresExportHistoryRepository) List(ctx context.Context, filter ExportFilter, page, size int) ([]*domain.ExportRecord, int, error) {
	page, size = normalizePage(page, size)

	var (
		where []string
		args  []any
	)
	if filter.DeviceID != "" {
		args = append(args, filter.DeviceID)
		where = append(where, fmt.Sprintf("device_id = $%d", len(args)))
	}
	if filter.Format != "" {
		args = append(args, filter.Format)
		where = append(where, fmt.Sprintf("format = $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM export_history"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exports: %w", err)
	}

	args = append(args, size, (page-1)*size)
	query := `
		SELECT id::text, device_id, device_name, format, keys, start_ts, end_ts, file_name, row_count, created_at
		FROM export_history` + clause + fmt.Sprintf(`
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var out []*domain.ExportRecord
	for rows.Next() {
		var rec domain.ExportRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.DeviceID,
			&rec.DeviceName,
			&rec.Format,
			pq.Array(&rec.Keys),
			&rec.StartTs,
			&rec.EndTs,
			&rec.FileName,
			&rec.RowCount,
			&rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan export: %w", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
