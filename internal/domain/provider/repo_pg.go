package provider

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinio/clinio/internal/domain/availability"
	"github.com/clinio/clinio/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type directoryPG struct{ pool *pgxpool.Pool }

// NewDirectoryPG returns the Postgres-backed provider directory.
func NewDirectoryPG(pool *pgxpool.Pool) Directory { return &directoryPG{pool: pool} }

func (r *directoryPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const providerCols = `id, full_name, specialty, price, from_weekday, to_weekday,
	from_time, to_time, active, created_at, updated_at`

func scanProvider(row pgx.Row) (*Provider, error) {
	var p Provider
	err := row.Scan(&p.ID, &p.FullName, &p.Specialty, &p.Price, &p.FromWeekday, &p.ToWeekday,
		&p.FromTime, &p.ToTime, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

// collectProviders drains rows into provider values. The final rows.Err()
// check matters: a connection dropped mid-iteration must not pass as a
// short but successful list.
func collectProviders(rows pgx.Rows) ([]*Provider, error) {
	defer rows.Close()
	var items []*Provider
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *directoryPG) Create(ctx context.Context, p *Provider) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO providers (id, full_name, specialty, price, from_weekday, to_weekday, from_time, to_time, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.FullName, p.Specialty, p.Price, p.FromWeekday, p.ToWeekday, p.FromTime, p.ToTime, p.Active)
	return err
}

func (r *directoryPG) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return scanProvider(r.conn(ctx).QueryRow(ctx, `SELECT `+providerCols+` FROM providers WHERE id = $1`, id))
}

func (r *directoryPG) GetPolicy(ctx context.Context, id uuid.UUID) (availability.Policy, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return availability.Policy{}, err
	}
	return p.Policy()
}

func (r *directoryPG) List(ctx context.Context, limit, offset int) ([]*Provider, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM providers`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+providerCols+` FROM providers ORDER BY full_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items, err := collectProviders(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *directoryPG) UpdatePolicy(ctx context.Context, id uuid.UUID, u PolicyUpdate) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE providers SET from_weekday=$2, to_weekday=$3, from_time=$4, to_time=$5, updated_at=NOW()
		WHERE id = $1`,
		id, u.FromWeekday, u.ToWeekday, u.FromTime, u.ToTime)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
