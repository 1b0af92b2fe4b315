package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ihor-metko/courtbook/libs/db"
	"github.com/ihor-metko/courtbook/services/court-service/internal/model"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	pool *db.Pool
}

func NewReservationRepository(pool *db.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Create inserts the reservation. A DB exclusion constraint on
// (court_id, [start_time, end_time)) backs the in-process overlap check;
// a violation surfaces through IsConflict.
func (r *ReservationRepository) Create(ctx context.Context, tx pgx.Tx, res *model.Reservation) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO reservations (court_id, customer_name, customer_email, start_time, end_time, status, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, res.CourtID, res.CustomerName, res.CustomerEmail, res.StartTime, res.EndTime, res.Status, res.PriceCents).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, courtID, reservationID string) (model.Reservation, error) {
	var res model.Reservation
	var cancelledAt *time.Time
	err := tx.QueryRow(ctx, `
		SELECT id, court_id, customer_name, customer_email, start_time, end_time, status,
			price_cents, cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM reservations
		WHERE id = $1 AND court_id = $2
		FOR UPDATE
	`, reservationID, courtID).Scan(
		&res.ID,
		&res.CourtID,
		&res.CustomerName,
		&res.CustomerEmail,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.PriceCents,
		&cancelledAt,
		&res.CancelReason,
		&res.CreatedAt,
	)
	if err != nil {
		return model.Reservation{}, err
	}
	res.CancelledAt = cancelledAt
	return res, nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, tx pgx.Tx, courtID, reservationID, reason string) (time.Time, error) {
	var cancelledAt time.Time
	err := tx.QueryRow(ctx, `
		UPDATE reservations
		SET status = 'cancelled',
			cancelled_at = now(),
			cancellation_reason = $3
		WHERE id = $1 AND court_id = $2
		RETURNING cancelled_at
	`, reservationID, courtID, reason).Scan(&cancelledAt)
	return cancelledAt, err
}

// ListBlockingIntervals returns every interval that blocks the court in
// [start, end): booked and pending reservations plus unexpired slot
// locks. Cancelled reservations and expired locks do not block.
func (r *ReservationRepository) ListBlockingIntervals(ctx context.Context, courtID string, start, end time.Time) ([]model.Reservation, []model.SlotLock, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, court_id, customer_name, customer_email, start_time, end_time, status,
			price_cents, cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM reservations
		WHERE court_id = $1
			AND status IN ('booked', 'pending')
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time ASC
	`, courtID, start, end)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		var res model.Reservation
		var cancelledAt *time.Time
		if err := rows.Scan(
			&res.ID,
			&res.CourtID,
			&res.CustomerName,
			&res.CustomerEmail,
			&res.StartTime,
			&res.EndTime,
			&res.Status,
			&res.PriceCents,
			&cancelledAt,
			&res.CancelReason,
			&res.CreatedAt,
		); err != nil {
			return nil, nil, err
		}
		res.CancelledAt = cancelledAt
		reservations = append(reservations, res)
	}
	if rows.Err() != nil {
		return nil, nil, rows.Err()
	}

	lockRows, err := r.pool.Query(ctx, `
		SELECT id, court_id, start_time, end_time, expires_at, created_at
		FROM slot_locks
		WHERE court_id = $1
			AND expires_at > now()
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time ASC
	`, courtID, start, end)
	if err != nil {
		return nil, nil, err
	}
	defer lockRows.Close()

	var locks []model.SlotLock
	for lockRows.Next() {
		var l model.SlotLock
		if err := lockRows.Scan(&l.ID, &l.CourtID, &l.StartTime, &l.EndTime, &l.ExpiresAt, &l.CreatedAt); err != nil {
			return nil, nil, err
		}
		locks = append(locks, l)
	}
	if lockRows.Err() != nil {
		return nil, nil, lockRows.Err()
	}
	return reservations, locks, nil
}

func (r *ReservationRepository) ListByCourt(ctx context.Context, courtID string, limit int) ([]model.Reservation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, court_id, customer_name, customer_email, start_time, end_time, status,
			price_cents, cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM reservations
		WHERE court_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`, courtID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		var cancelledAt *time.Time
		if err := rows.Scan(
			&res.ID,
			&res.CourtID,
			&res.CustomerName,
			&res.CustomerEmail,
			&res.StartTime,
			&res.EndTime,
			&res.Status,
			&res.PriceCents,
			&cancelledAt,
			&res.CancelReason,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		res.CancelledAt = cancelledAt
		out = append(out, res)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

// AcquireLock holds the interval for ttl while a customer completes
// checkout. The same exclusion constraint that guards reservations guards
// locks, so two customers cannot lock the same slot.
func (r *ReservationRepository) AcquireLock(ctx context.Context, courtID string, start, end time.Time, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO slot_locks (id, court_id, start_time, end_time, expires_at)
		VALUES ($1, $2, $3, $4, now() + $5)
	`, id, courtID, start, end, ttl)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ReservationRepository) ReleaseLock(ctx context.Context, courtID, lockID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM slot_locks
		WHERE id = $1 AND court_id = $2
	`, lockID, courtID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
