package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ihor-metko/courtbook/services/court-service/internal/availability"
	"github.com/ihor-metko/courtbook/services/court-service/internal/clubtz"
	"github.com/ihor-metko/courtbook/services/court-service/internal/model"
	"github.com/ihor-metko/courtbook/services/court-service/internal/outbox"
	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/ihor-metko/courtbook/services/court-service/internal/storage"
	"github.com/ihor-metko/courtbook/services/court-service/internal/timeutil"
)

type reserveRequest struct {
	CourtID       string `json:"court_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

type cancelRequest struct {
	CourtID       string `json:"court_id"`
	ReservationID string `json:"reservation_id"`
	Reason        string `json:"reason"`
}

type lockRequest struct {
	CourtID   string `json:"court_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Reserve serves POST /api/v1/public/reserve. The slot is priced from the
// day timeline at booking time; the overlap check against reservations
// and locks runs in-process and is backed by the DB exclusion constraint.
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req reserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.CourtID = strings.TrimSpace(req.CourtID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CourtID == "" || req.CustomerName == "" {
		http.Error(w, "court_id and customer_name are required", http.StatusBadRequest)
		return
	}
	start, end, ok := parseSlotRange(req.StartTime, req.EndTime)
	if !ok {
		http.Error(w, "start_time and end_time must be UTC instants with start before end", http.StatusBadRequest)
		return
	}

	date := timeutil.UTCDateString(start)
	in, err := h.loadTimeline(r.Context(), req.CourtID, date)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "court not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to resolve pricing", http.StatusInternalServerError)
		return
	}

	busy, err := h.blockingIntervals(r, req.CourtID, start, end)
	if err != nil {
		http.Error(w, "failed to load reservations", http.StatusInternalServerError)
		return
	}
	if !availability.IsFree(start, end, busy) {
		http.Error(w, "time slot already taken", http.StatusConflict)
		return
	}

	price, err := pricing.SlotPrice(in.timeline, in.court.DefaultPriceCents, timeutil.UTCTimeString(start), timeutil.DurationMinutes(start, end))
	if err != nil {
		http.Error(w, "failed to price slot", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.reservations.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res := &model.Reservation{
		CourtID:       req.CourtID,
		CustomerName:  req.CustomerName,
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		StartTime:     start,
		EndTime:       end,
		Status:        model.ReservationBooked,
		PriceCents:    price,
	}
	id, err := h.reservations.Create(ctx, tx, res)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "time slot already taken", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create reservation", http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(map[string]any{
		"reservation_id": id,
		"court_id":       req.CourtID,
		"customer_email": res.CustomerEmail,
		"start_time":     start.Format(time.RFC3339),
		"end_time":       end.Format(time.RFC3339),
		"price_cents":    price,
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "reservation",
		AggregateID:   id,
		EventType:     outbox.EventReservationBooked,
		Payload:       payload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	resp := map[string]any{
		"reservation_id": id,
		"price_cents":    price,
	}
	// Echo the slot in the club's wall clock for display.
	if localDate, localClock, err := clubtz.FromUTC(start, in.court.Timezone); err == nil {
		resp["local_date"] = localDate
		resp["local_start"] = localClock
	}
	h.logger.Info("reservation created",
		"reservation_id", id,
		"court_id", req.CourtID,
		"price_cents", price,
	)
	writeJSON(w, http.StatusCreated, resp)
}

// CancelReservation serves POST /api/v1/reservations/cancel. Cancelling
// an already-cancelled reservation is idempotent.
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.CourtID = strings.TrimSpace(req.CourtID)
	req.ReservationID = strings.TrimSpace(req.ReservationID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.CourtID == "" || req.ReservationID == "" {
		http.Error(w, "court_id and reservation_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.reservations.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := h.reservations.GetForUpdate(ctx, tx, req.CourtID, req.ReservationID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "reservation not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load reservation", http.StatusInternalServerError)
		return
	}

	if res.Status == model.ReservationCancelled && res.CancelledAt != nil {
		writeJSON(w, http.StatusOK, map[string]string{
			"reservation_id": res.ID,
			"status":         model.ReservationCancelled,
			"cancelled_at":   res.CancelledAt.UTC().Format(time.RFC3339),
		})
		return
	}
	if res.Status != model.ReservationBooked && res.Status != model.ReservationPending {
		http.Error(w, "reservation cannot be cancelled", http.StatusConflict)
		return
	}

	cancelledAt, err := h.reservations.Cancel(ctx, tx, req.CourtID, res.ID, req.Reason)
	if err != nil {
		http.Error(w, "failed to cancel reservation", http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(map[string]any{
		"reservation_id": res.ID,
		"court_id":       res.CourtID,
		"start_time":     res.StartTime.UTC().Format(time.RFC3339),
		"end_time":       res.EndTime.UTC().Format(time.RFC3339),
		"cancelled_at":   cancelledAt.UTC().Format(time.RFC3339),
		"reason":         req.Reason,
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "reservation",
		AggregateID:   res.ID,
		EventType:     outbox.EventReservationCancelled,
		Payload:       payload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"reservation_id": res.ID,
		"status":         model.ReservationCancelled,
		"cancelled_at":   cancelledAt.UTC().Format(time.RFC3339),
	})
}

// ListReservations serves GET /api/v1/reservations?court_id=...
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	courtID := strings.TrimSpace(r.URL.Query().Get("court_id"))
	if courtID == "" {
		http.Error(w, "court_id required", http.StatusBadRequest)
		return
	}
	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	reservations, err := h.reservations.ListByCourt(r.Context(), courtID, limit)
	if err != nil {
		http.Error(w, "failed to list reservations", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(reservations))
	for _, res := range reservations {
		item := map[string]any{
			"reservation_id": res.ID,
			"start_time":     res.StartTime.UTC().Format(time.RFC3339),
			"end_time":       res.EndTime.UTC().Format(time.RFC3339),
			"status":         res.Status,
			"price_cents":    res.PriceCents,
			"created_at":     res.CreatedAt.UTC().Format(time.RFC3339),
		}
		if res.CancelledAt != nil {
			item["cancelled_at"] = res.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}

// LockSlot serves POST /api/v1/public/slots/lock: a short-lived hold on a
// slot while the customer completes checkout.
func (h *Handler) LockSlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req lockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.CourtID = strings.TrimSpace(req.CourtID)
	if req.CourtID == "" {
		http.Error(w, "court_id required", http.StatusBadRequest)
		return
	}
	start, end, ok := parseSlotRange(req.StartTime, req.EndTime)
	if !ok {
		http.Error(w, "start_time and end_time must be UTC instants with start before end", http.StatusBadRequest)
		return
	}

	if _, err := h.courts.Get(r.Context(), req.CourtID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "court not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load court", http.StatusInternalServerError)
		return
	}

	busy, err := h.blockingIntervals(r, req.CourtID, start, end)
	if err != nil {
		http.Error(w, "failed to load reservations", http.StatusInternalServerError)
		return
	}
	if !availability.IsFree(start, end, busy) {
		http.Error(w, "time slot already taken", http.StatusConflict)
		return
	}

	lockID, err := h.reservations.AcquireLock(r.Context(), req.CourtID, start, end, h.lockTTL)
	if err != nil {
		if storage.IsConflict(err) {
			http.Error(w, "time slot already taken", http.StatusConflict)
			return
		}
		http.Error(w, "failed to lock slot", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"lock_id":    lockID,
		"expires_in": int(h.lockTTL.Seconds()),
	})
}

// ReleaseLock serves POST /api/v1/public/slots/release.
func (h *Handler) ReleaseLock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		CourtID string `json:"court_id"`
		LockID  string `json:"lock_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.CourtID = strings.TrimSpace(req.CourtID)
	req.LockID = strings.TrimSpace(req.LockID)
	if req.CourtID == "" || req.LockID == "" {
		http.Error(w, "court_id and lock_id required", http.StatusBadRequest)
		return
	}

	if err := h.reservations.ReleaseLock(r.Context(), req.CourtID, req.LockID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "lock not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to release lock", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
