package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ihor-metko/courtbook/services/court-service/internal/clubtz"
	"github.com/ihor-metko/courtbook/services/court-service/internal/model"
	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/ihor-metko/courtbook/services/court-service/internal/storage"
	"github.com/ihor-metko/courtbook/services/court-service/internal/timeutil"
)

type createCourtRequest struct {
	ClubID            string `json:"club_id"`
	Name              string `json:"name"`
	Surface           string `json:"surface"`
	Indoor            bool   `json:"indoor"`
	DefaultPriceCents int    `json:"default_price_cents"`
	Timezone          string `json:"timezone"`
}

type courtItem struct {
	CourtID           string `json:"court_id"`
	Name              string `json:"name"`
	Surface           string `json:"surface"`
	Indoor            bool   `json:"indoor"`
	DefaultPriceCents int    `json:"default_price_cents"`
	Timezone          string `json:"timezone"`
}

type createHolidayRequest struct {
	ClubID    string `json:"club_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Recurring bool   `json:"recurring"`
}

// CreateCourt serves POST /api/v1/admin/courts. The timezone must be a
// valid IANA name; it anchors day windows for that court's club users.
func (h *Handler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ClubID = strings.TrimSpace(req.ClubID)
	req.Name = strings.TrimSpace(req.Name)
	req.Timezone = strings.TrimSpace(req.Timezone)
	if req.ClubID == "" || req.Name == "" {
		http.Error(w, "club_id and name are required", http.StatusBadRequest)
		return
	}
	if req.DefaultPriceCents < 0 {
		http.Error(w, "default_price_cents must be non-negative", http.StatusBadRequest)
		return
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}
	if !clubtz.Validate(req.Timezone) {
		http.Error(w, "unknown timezone", http.StatusBadRequest)
		return
	}

	id, err := h.courts.Create(r.Context(), model.Court{
		ClubID:            req.ClubID,
		Name:              req.Name,
		Surface:           strings.TrimSpace(req.Surface),
		Indoor:            req.Indoor,
		DefaultPriceCents: req.DefaultPriceCents,
		Timezone:          req.Timezone,
	})
	if err != nil {
		http.Error(w, "failed to create court", http.StatusInternalServerError)
		return
	}
	h.logger.Info("court created", "court_id", id, "club_id", req.ClubID)
	writeJSON(w, http.StatusCreated, map[string]string{"court_id": id})
}

// ListCourts serves GET /api/v1/admin/courts?club_id=...
func (h *Handler) ListCourts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	clubID := strings.TrimSpace(r.URL.Query().Get("club_id"))
	if clubID == "" {
		http.Error(w, "club_id required", http.StatusBadRequest)
		return
	}
	courts, err := h.courts.ListByClub(r.Context(), clubID, 0)
	if err != nil {
		http.Error(w, "failed to list courts", http.StatusInternalServerError)
		return
	}

	items := make([]courtItem, 0, len(courts))
	for _, c := range courts {
		items = append(items, courtItem{
			CourtID:           c.ID,
			Name:              c.Name,
			Surface:           c.Surface,
			Indoor:            c.Indoor,
			DefaultPriceCents: c.DefaultPriceCents,
			Timezone:          c.Timezone,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateHoliday serves POST /api/v1/admin/holidays. Recurring holidays
// match their month and day on every year.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.ClubID = strings.TrimSpace(req.ClubID)
	req.Name = strings.TrimSpace(req.Name)
	req.Date = strings.TrimSpace(req.Date)
	if req.ClubID == "" || req.Name == "" {
		http.Error(w, "club_id and name are required", http.StatusBadRequest)
		return
	}
	if !timeutil.IsValidDateString(req.Date) {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	id, err := h.holidays.Create(r.Context(), pricing.HolidayDate{
		ClubID:    req.ClubID,
		Name:      req.Name,
		Date:      req.Date,
		Recurring: req.Recurring,
	})
	if err != nil {
		http.Error(w, "failed to create holiday", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"holiday_id": id})
}

// DeleteHoliday serves DELETE /api/v1/admin/holidays?club_id=...&holiday_id=...
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	clubID := strings.TrimSpace(r.URL.Query().Get("club_id"))
	holidayID := strings.TrimSpace(r.URL.Query().Get("holiday_id"))
	if clubID == "" || holidayID == "" {
		http.Error(w, "club_id and holiday_id required", http.StatusBadRequest)
		return
	}

	if err := h.holidays.Delete(r.Context(), clubID, holidayID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "holiday not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete holiday", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHolidays serves GET /api/v1/admin/holidays?club_id=...
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	clubID := strings.TrimSpace(r.URL.Query().Get("club_id"))
	if clubID == "" {
		http.Error(w, "club_id required", http.StatusBadRequest)
		return
	}
	holidays, err := h.holidays.ListByClub(r.Context(), clubID)
	if err != nil {
		http.Error(w, "failed to list holidays", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(holidays))
	for _, hd := range holidays {
		items = append(items, map[string]any{
			"holiday_id": hd.ID,
			"name":       hd.Name,
			"date":       hd.Date,
			"recurring":  hd.Recurring,
		})
	}
	writeJSON(w, http.StatusOK, items)
}
