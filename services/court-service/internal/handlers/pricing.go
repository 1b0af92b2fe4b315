package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/ihor-metko/courtbook/services/court-service/internal/model"
	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/ihor-metko/courtbook/services/court-service/internal/storage"
	"github.com/ihor-metko/courtbook/services/court-service/internal/timeutil"
)

// pricingInputs is everything needed to resolve prices for one court/date.
type pricingInputs struct {
	court    model.Court
	timeline []pricing.Segment
}

// loadTimeline fetches the court, its rules, and the club's holidays, and
// resolves the day timeline. An unknown court surfaces as storage
// not-found so the caller can answer 404. Resolved timelines are served
// from the Redis cache when one is configured; rule writes invalidate it
// through the pricing-changed event.
func (h *Handler) loadTimeline(ctx context.Context, courtID, date string) (pricingInputs, error) {
	court, err := h.courts.Get(ctx, courtID)
	if err != nil {
		return pricingInputs{}, err
	}
	if h.timelines != nil {
		if timeline, ok := h.timelines.Get(ctx, courtID, date); ok {
			return pricingInputs{court: court, timeline: timeline}, nil
		}
	}
	rules, err := h.rules.ListByCourt(ctx, courtID)
	if err != nil {
		return pricingInputs{}, err
	}
	holidays, err := h.holidays.ListByClub(ctx, court.ClubID)
	if err != nil {
		return pricingInputs{}, err
	}
	timeline, err := pricing.DayTimeline(rules, holidays, date)
	if err != nil {
		return pricingInputs{}, err
	}
	if h.timelines != nil {
		h.timelines.Set(ctx, courtID, date, timeline)
	}
	return pricingInputs{court: court, timeline: timeline}, nil
}

// Timeline serves GET /api/v1/public/courts/timeline: the resolved price
// segments for one court and date. Gaps carry the court default rate and
// are not materialized as segments.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	courtID := strings.TrimSpace(r.URL.Query().Get("court_id"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if courtID == "" || !timeutil.IsValidDateString(date) {
		http.Error(w, "court_id and a valid date are required", http.StatusBadRequest)
		return
	}

	in, err := h.loadTimeline(r.Context(), courtID, date)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "court not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to resolve timeline", http.StatusInternalServerError)
		return
	}

	segments := in.timeline
	if segments == nil {
		segments = []pricing.Segment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"court_id":            courtID,
		"date":                date,
		"default_price_cents": in.court.DefaultPriceCents,
		"segments":            segments,
	})
}

// Quote serves GET /api/v1/public/courts/quote: the resolved price and
// itemized breakdown for one candidate slot.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	courtID := strings.TrimSpace(q.Get("court_id"))
	date := strings.TrimSpace(q.Get("date"))
	startClock := strings.TrimSpace(q.Get("start_time"))
	if courtID == "" || !timeutil.IsValidDateString(date) || !timeutil.IsValidTimeString(startClock) {
		http.Error(w, "court_id, date, and start_time are required", http.StatusBadRequest)
		return
	}
	duration, err := strconv.Atoi(strings.TrimSpace(q.Get("duration_minutes")))
	if err != nil || duration <= 0 || duration > 8*60 {
		http.Error(w, "invalid duration_minutes", http.StatusBadRequest)
		return
	}

	in, err := h.loadTimeline(r.Context(), courtID, date)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "court not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to resolve pricing", http.StatusInternalServerError)
		return
	}

	price, err := pricing.SlotPrice(in.timeline, in.court.DefaultPriceCents, startClock, duration)
	if err != nil {
		http.Error(w, "failed to price slot", http.StatusBadRequest)
		return
	}
	items, total, err := pricing.SlotBreakdown(in.timeline, in.court.DefaultPriceCents, startClock, duration)
	if err != nil {
		http.Error(w, "failed to price slot", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"court_id":          courtID,
		"date":              date,
		"start_time":        startClock,
		"duration_minutes":  duration,
		"price_cents":       price,
		"breakdown":         items,
		"breakdown_total":   total,
	})
}
