package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ihor-metko/courtbook/services/court-service/internal/cache"
	"github.com/ihor-metko/courtbook/services/court-service/internal/model"
	"github.com/ihor-metko/courtbook/services/court-service/internal/outbox"
	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/jackc/pgx/v5"
)

// Store interfaces mirror the storage repositories so handlers can be
// exercised against fakes.
type CourtStore interface {
	Create(ctx context.Context, c model.Court) (string, error)
	Get(ctx context.Context, courtID string) (model.Court, error)
	ListByClub(ctx context.Context, clubID string, limit int) ([]model.Court, error)
}

type PriceRuleStore interface {
	Create(ctx context.Context, rule pricing.PriceRule) (string, error)
	Update(ctx context.Context, rule pricing.PriceRule) error
	Delete(ctx context.Context, courtID, ruleID string) error
	ListByCourt(ctx context.Context, courtID string) ([]pricing.PriceRule, error)
}

type HolidayStore interface {
	Create(ctx context.Context, h pricing.HolidayDate) (string, error)
	Delete(ctx context.Context, clubID, holidayID string) error
	ListByClub(ctx context.Context, clubID string) ([]pricing.HolidayDate, error)
}

type ReservationStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Create(ctx context.Context, tx pgx.Tx, res *model.Reservation) (string, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, courtID, reservationID string) (model.Reservation, error)
	Cancel(ctx context.Context, tx pgx.Tx, courtID, reservationID, reason string) (time.Time, error)
	ListBlockingIntervals(ctx context.Context, courtID string, start, end time.Time) ([]model.Reservation, []model.SlotLock, error)
	ListByCourt(ctx context.Context, courtID string, limit int) ([]model.Reservation, error)
	AcquireLock(ctx context.Context, courtID string, start, end time.Time, ttl time.Duration) (string, error)
	ReleaseLock(ctx context.Context, courtID, lockID string) error
}

type OutboxStore interface {
	Insert(ctx context.Context, tx pgx.Tx, evt outbox.Event) error
}

// Handler wires the HTTP surface to storage and the pure pricing and
// availability cores. Input validation happens here; by the time the
// cores run, dates and clocks are well-formed.
type Handler struct {
	courts       CourtStore
	rules        PriceRuleStore
	holidays     HolidayStore
	reservations ReservationStore
	outboxRepo   OutboxStore
	timelines    *cache.TimelineCache
	logger       *slog.Logger
	lockTTL      time.Duration
}

// New builds a Handler. timelines may be nil when no Redis is configured.
func New(
	courts CourtStore,
	rules PriceRuleStore,
	holidays HolidayStore,
	reservations ReservationStore,
	outboxRepo OutboxStore,
	timelines *cache.TimelineCache,
	logger *slog.Logger,
	lockTTL time.Duration,
) *Handler {
	if lockTTL <= 0 {
		lockTTL = 5 * time.Minute
	}
	return &Handler{
		courts:       courts,
		rules:        rules,
		holidays:     holidays,
		reservations: reservations,
		outboxRepo:   outboxRepo,
		timelines:    timelines,
		logger:       logger,
		lockTTL:      lockTTL,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
