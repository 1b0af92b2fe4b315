package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/ihor-metko/courtbook/libs/db"
	"github.com/ihor-metko/courtbook/services/court-service/internal/model"
)

type CourtRepository struct {
	pool *db.Pool
}

func NewCourtRepository(pool *db.Pool) *CourtRepository {
	return &CourtRepository{pool: pool}
}

func (r *CourtRepository) Create(ctx context.Context, c model.Court) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO courts (id, club_id, name, surface, indoor, default_price_cents, timezone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, c.ClubID, c.Name, c.Surface, c.Indoor, c.DefaultPriceCents, c.Timezone)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the court or pgx.ErrNoRows when the id is unknown; callers
// map that through IsNotFound to a 404.
func (r *CourtRepository) Get(ctx context.Context, courtID string) (model.Court, error) {
	var c model.Court
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, club_id::text, name, surface, indoor, default_price_cents, timezone, created_at
		FROM courts
		WHERE id = $1
	`, courtID).Scan(&c.ID, &c.ClubID, &c.Name, &c.Surface, &c.Indoor, &c.DefaultPriceCents, &c.Timezone, &c.CreatedAt)
	if err != nil {
		return model.Court{}, err
	}
	return c, nil
}

func (r *CourtRepository) ListByClub(ctx context.Context, clubID string, limit int) ([]model.Court, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, club_id::text, name, surface, indoor, default_price_cents, timezone, created_at
		FROM courts
		WHERE club_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, clubID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Court
	for rows.Next() {
		var c model.Court
		if err := rows.Scan(&c.ID, &c.ClubID, &c.Name, &c.Surface, &c.Indoor, &c.DefaultPriceCents, &c.Timezone, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
