package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"quoteapi/internal/model"
	"quoteapi/internal/repository"
)

// AnalysisPostgres implements repository.AnalysisRepository on the analyses table.
type AnalysisPostgres struct {
	db *sql.DB
}

func NewAnalysisPostgres(db *sql.DB) *AnalysisPostgres {
	return &AnalysisPostgres{db: db}
}

var _ repository.AnalysisRepository = (*AnalysisPostgres)(nil)

// IsNoRowsError reports whether err means the row does not exist.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (r *AnalysisPostgres) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	const q = `
		INSERT INTO analyses (id, filename, storage_path, size, content_type, mode, location, analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, filename, storage_path, size, content_type, mode, location, analysis, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.Filename,
		rec.StoragePath,
		rec.Size,
		rec.ContentType,
		string(rec.Mode),
		rec.Location,
		jsonArg(rec.Analysis),
		rec.CreatedAt,
	)
	out, err := scanRecord(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("insert analysis %s: %w", rec.ID, err)
	}
	return out, nil
}

func (r *AnalysisPostgres) FindByID(ctx context.Context, id string) (*model.Record, error) {
	const q = `
		SELECT id, filename, storage_path, size, content_type, mode, location, analysis, created_at
		FROM analyses
		WHERE id = $1
	`
	// sql.ErrNoRows is returned unwrapped so callers can map it.
	return scanRecord(r.db.QueryRowContext(ctx, q, id).Scan)
}

func (r *AnalysisPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Record], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	const q = `
		SELECT id, filename, storage_path, size, content_type, mode, location, created_at
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	items := make([]model.Record, 0, pq.Limit)
	for rows.Next() {
		var (
			rec  model.Record
			mode string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Filename,
			&rec.StoragePath,
			&rec.Size,
			&rec.ContentType,
			&mode,
			&rec.Location,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Mode = model.Mode(mode)
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Record]{Items: items, Total: total}, nil
}

func (r *AnalysisPostgres) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete analysis %s: %w", id, err)
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (*model.Record, error) {
	var (
		rec      model.Record
		mode     string
		analysis []byte
	)
	if err := scan(
		&rec.ID,
		&rec.Filename,
		&rec.StoragePath,
		&rec.Size,
		&rec.ContentType,
		&mode,
		&rec.Location,
		&analysis,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	rec.Mode = model.Mode(mode)
	if len(analysis) > 0 {
		rec.Analysis = analysis
	}
	return &rec, nil
}

// jsonArg sends an empty payload as SQL NULL.
func jsonArg(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
