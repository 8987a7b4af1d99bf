package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinio/clinio/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns the Postgres-backed booking store.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const bookingCols = `id, provider_id, patient_id, start_time, price, payment_status,
	status, notes, created_at, updated_at`

func (r *repoPG) scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.ProviderID, &b.PatientID, &b.StartTime, &b.Price, &b.PaymentStatus,
		&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &b, err
}

// uniqueViolation reports whether err is the partial unique index on
// (provider_id, start_time) for non-cancelled bookings firing.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *repoPG) Create(ctx context.Context, b *Booking) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO bookings (id, provider_id, patient_id, start_time, price, payment_status, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		b.ID, b.ProviderID, b.PatientID, b.StartTime, b.Price, b.PaymentStatus, b.Status, b.Notes)
	if uniqueViolation(err) {
		return ErrSlotConflict
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return r.scanBooking(r.conn(ctx).QueryRow(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = $1`, id))
}

func (r *repoPG) ListByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+bookingCols+` FROM bookings
		WHERE provider_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`,
		providerID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	return r.list(ctx, `patient_id`, patientID, limit, offset)
}

func (r *repoPG) ListByProvider(ctx context.Context, providerID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	return r.list(ctx, `provider_id`, providerID, limit, offset)
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Booking, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+bookingCols+` FROM bookings
		ORDER BY start_time DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *repoPG) list(ctx context.Context, column string, id uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE `+column+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+bookingCols+` FROM bookings WHERE `+column+` = $1
		ORDER BY start_time DESC LIMIT $2 OFFSET $3`,
		id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Booking
	for rows.Next() {
		b, err := r.scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Reschedule(ctx context.Context, id uuid.UUID, start time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE bookings SET start_time=$2, updated_at=NOW() WHERE id = $1`, id, start)
	if uniqueViolation(err) {
		return ErrSlotConflict
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return r.updateColumn(ctx, id, `status`, string(status))
}

func (r *repoPG) UpdatePayment(ctx context.Context, id uuid.UUID, payment PaymentStatus) error {
	return r.updateColumn(ctx, id, `payment_status`, string(payment))
}

func (r *repoPG) UpdateNotes(ctx context.Context, id uuid.UUID, notes *string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE bookings SET notes=$2, updated_at=NOW() WHERE id = $1`, id, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) updateColumn(ctx context.Context, id uuid.UUID, column, value string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE bookings SET `+column+`=$2, updated_at=NOW() WHERE id = $1`, id, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	return err
}
