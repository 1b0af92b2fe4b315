package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ihor-metko/courtbook/services/court-service/internal/availability"
	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/ihor-metko/courtbook/services/court-service/internal/storage"
	"github.com/ihor-metko/courtbook/services/court-service/internal/timeutil"
)

type availableSlotItem struct {
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	PriceCents int    `json:"price_cents"`
}

// Slots serves GET /api/v1/public/courts/availability: free slots for a
// court on a UTC date, each priced from the day's resolved timeline.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	courtID := strings.TrimSpace(q.Get("court_id"))
	date := strings.TrimSpace(q.Get("date"))
	if courtID == "" || !timeutil.IsValidDateString(date) {
		http.Error(w, "court_id and a valid date are required", http.StatusBadRequest)
		return
	}

	durationMins := 60
	if v := strings.TrimSpace(q.Get("duration_minutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 8*60 {
			http.Error(w, "invalid duration_minutes", http.StatusBadRequest)
			return
		}
		durationMins = n
	}
	stepMins := 30
	if v := strings.TrimSpace(q.Get("step_minutes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 120 {
			http.Error(w, "invalid step_minutes", http.StatusBadRequest)
			return
		}
		stepMins = n
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

	dayStart, _, err := timeutil.UTCDayBounds(date)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	windowEnd := dayStart.Add(24 * time.Hour)

	busy, err := h.blockingIntervals(r, courtID, dayStart, windowEnd)
	if err != nil {
		http.Error(w, "failed to load reservations", http.StatusInternalServerError)
		return
	}

	starts := availability.FreeSlots(
		dayStart,
		windowEnd,
		time.Duration(durationMins)*time.Minute,
		time.Duration(stepMins)*time.Minute,
		busy,
		time.Now().UTC(),
	)

	items := make([]availableSlotItem, 0, len(starts))
	for _, s := range starts {
		price, err := pricing.SlotPrice(in.timeline, in.court.DefaultPriceCents, timeutil.UTCTimeString(s), durationMins)
		if err != nil {
			http.Error(w, "failed to price slot", http.StatusInternalServerError)
			return
		}
		items = append(items, availableSlotItem{
			StartTime:  s.Format(time.RFC3339),
			EndTime:    timeutil.AddMinutes(s, durationMins).Format(time.RFC3339),
			PriceCents: price,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) blockingIntervals(r *http.Request, courtID string, start, end time.Time) ([]availability.Interval, error) {
	reservations, locks, err := h.reservations.ListBlockingIntervals(r.Context(), courtID, start, end)
	if err != nil {
		return nil, err
	}
	busy := make([]availability.Interval, 0, len(reservations)+len(locks))
	for _, res := range reservations {
		busy = append(busy, availability.Interval{Start: res.StartTime, End: res.EndTime})
	}
	for _, l := range locks {
		busy = append(busy, availability.Interval{Start: l.StartTime, End: l.EndTime})
	}
	return busy, nil
}

// parseSlotRange validates and parses a UTC start/end pair from a request
// body. Both must be Z-suffixed instants forming a non-empty range.
func parseSlotRange(startRaw, endRaw string) (time.Time, time.Time, bool) {
	if !timeutil.IsValidUTCString(startRaw) || !timeutil.IsValidUTCString(endRaw) {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if !timeutil.IsValidRange(start, end) {
		return time.Time{}, time.Time{}, false
	}
	return start.UTC(), end.UTC(), true
}
