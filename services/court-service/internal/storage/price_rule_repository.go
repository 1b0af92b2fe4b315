package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/ihor-metko/courtbook/libs/db"
	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/jackc/pgx/v5"
)

type PriceRuleRepository struct {
	pool *db.Pool
}

func NewPriceRuleRepository(pool *db.Pool) *PriceRuleRepository {
	return &PriceRuleRepository{pool: pool}
}

// Create persists a rule. The handler must have run
// pricing.FindConflictingRule over the court's same-scope rules first.
func (r *PriceRuleRepository) Create(ctx context.Context, rule pricing.PriceRule) (string, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO price_rules (id, court_id, rule_type, day_of_week, rule_date, holiday_id, start_clock, end_clock, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, rule.CourtID, rule.Type.String(), dayOfWeekParam(rule), nullIfEmpty(rule.Date), nullIfEmpty(rule.HolidayID),
		rule.StartClock, rule.EndClock, rule.PriceCents)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PriceRuleRepository) Update(ctx context.Context, rule pricing.PriceRule) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE price_rules
		SET rule_type = $3,
			day_of_week = $4,
			rule_date = $5,
			holiday_id = $6,
			start_clock = $7,
			end_clock = $8,
			price_cents = $9,
			updated_at = now()
		WHERE id = $1 AND court_id = $2
	`, rule.ID, rule.CourtID, rule.Type.String(), dayOfWeekParam(rule), nullIfEmpty(rule.Date), nullIfEmpty(rule.HolidayID),
		rule.StartClock, rule.EndClock, rule.PriceCents)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PriceRuleRepository) Delete(ctx context.Context, courtID, ruleID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM price_rules
		WHERE id = $1 AND court_id = $2
	`, ruleID, courtID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PriceRuleRepository) ListByCourt(ctx context.Context, courtID string) ([]pricing.PriceRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, court_id::text, rule_type, day_of_week, COALESCE(rule_date::text, ''), COALESCE(holiday_id::text, ''),
			start_clock, end_clock, price_cents
		FROM price_rules
		WHERE court_id = $1
		ORDER BY created_at ASC
	`, courtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pricing.PriceRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func scanRule(row pgx.Row) (pricing.PriceRule, error) {
	var rule pricing.PriceRule
	var ruleType string
	var dayOfWeek *int
	if err := row.Scan(&rule.ID, &rule.CourtID, &ruleType, &dayOfWeek, &rule.Date, &rule.HolidayID,
		&rule.StartClock, &rule.EndClock, &rule.PriceCents); err != nil {
		return pricing.PriceRule{}, err
	}
	parsed, err := pricing.ParseRuleType(ruleType)
	if err != nil {
		return pricing.PriceRule{}, err
	}
	rule.Type = parsed
	if dayOfWeek != nil {
		rule.DayOfWeek = *dayOfWeek
	}
	return rule, nil
}

func dayOfWeekParam(rule pricing.PriceRule) *int {
	if rule.Type != pricing.RuleSpecificDay {
		return nil
	}
	d := rule.DayOfWeek
	return &d
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
