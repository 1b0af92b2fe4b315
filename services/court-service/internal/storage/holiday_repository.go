package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/ihor-metko/courtbook/libs/db"
	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/jackc/pgx/v5"
)

type HolidayRepository struct {
	pool *db.Pool
}

func NewHolidayRepository(pool *db.Pool) *HolidayRepository {
	return &HolidayRepository{pool: pool}
}

func (r *HolidayRepository) Create(ctx context.Context, h pricing.HolidayDate) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO holiday_dates (id, club_id, name, holiday_date, recurring)
		VALUES ($1, $2, $3, $4, $5)
	`, id, h.ClubID, h.Name, h.Date, h.Recurring)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *HolidayRepository) Delete(ctx context.Context, clubID, holidayID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM holiday_dates
		WHERE id = $1 AND club_id = $2
	`, holidayID, clubID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *HolidayRepository) ListByClub(ctx context.Context, clubID string) ([]pricing.HolidayDate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, club_id::text, name, holiday_date::text, recurring
		FROM holiday_dates
		WHERE club_id = $1
		ORDER BY holiday_date ASC
	`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pricing.HolidayDate
	for rows.Next() {
		var h pricing.HolidayDate
		if err := rows.Scan(&h.ID, &h.ClubID, &h.Name, &h.Date, &h.Recurring); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
