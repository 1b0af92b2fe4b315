package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ihor-metko/courtbook/services/court-service/internal/outbox"
	"github.com/ihor-metko/courtbook/services/court-service/internal/pricing"
	"github.com/ihor-metko/courtbook/services/court-service/internal/storage"
	"github.com/ihor-metko/courtbook/services/court-service/internal/timeutil"
)

type priceRuleRequest struct {
	RuleID     string `json:"rule_id"`
	CourtID    string `json:"court_id"`
	RuleType   string `json:"rule_type"`
	DayOfWeek  *int   `json:"day_of_week"`
	Date       string `json:"date"`
	HolidayID  string `json:"holiday_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	PriceCents int    `json:"price_cents"`
}

type priceRuleItem struct {
	RuleID     string `json:"rule_id"`
	RuleType   string `json:"rule_type"`
	DayOfWeek  *int   `json:"day_of_week,omitempty"`
	Date       string `json:"date,omitempty"`
	HolidayID  string `json:"holiday_id,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	PriceCents int    `json:"price_cents"`
}

// ruleFromRequest validates the request and builds the candidate rule.
// Selector requirements depend on the rule type: a date for
// SPECIFIC_DATE, a holiday id for HOLIDAY, a weekday for SPECIFIC_DAY,
// nothing for the broad types.
func (h *Handler) ruleFromRequest(ctx context.Context, req priceRuleRequest) (pricing.PriceRule, string) {
	ruleType, err := pricing.ParseRuleType(strings.TrimSpace(req.RuleType))
	if err != nil {
		return pricing.PriceRule{}, "unknown rule_type"
	}

	rule := pricing.PriceRule{
		ID:         strings.TrimSpace(req.RuleID),
		CourtID:    strings.TrimSpace(req.CourtID),
		Type:       ruleType,
		Date:       strings.TrimSpace(req.Date),
		HolidayID:  strings.TrimSpace(req.HolidayID),
		StartClock: strings.TrimSpace(req.StartTime),
		EndClock:   strings.TrimSpace(req.EndTime),
		PriceCents: req.PriceCents,
	}

	switch ruleType {
	case pricing.RuleSpecificDate:
		if !timeutil.IsValidDateString(rule.Date) {
			return pricing.PriceRule{}, "rule_type SPECIFIC_DATE requires a valid date"
		}
	case pricing.RuleHoliday:
		if rule.HolidayID == "" {
			return pricing.PriceRule{}, "rule_type HOLIDAY requires holiday_id"
		}
	case pricing.RuleSpecificDay:
		if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
			return pricing.PriceRule{}, "rule_type SPECIFIC_DAY requires day_of_week in 0..6"
		}
		rule.DayOfWeek = *req.DayOfWeek
	}

	if !rule.ValidateClocks() {
		return pricing.PriceRule{}, "start_time and end_time must be HH:MM clocks with start before end"
	}
	if rule.PriceCents < 0 {
		return pricing.PriceRule{}, "price_cents must be non-negative"
	}

	if ruleType == pricing.RuleHoliday {
		court, err := h.courts.Get(ctx, rule.CourtID)
		if err != nil {
			return pricing.PriceRule{}, "court not found"
		}
		holidays, err := h.holidays.ListByClub(ctx, court.ClubID)
		if err != nil {
			return pricing.PriceRule{}, "failed to load holidays"
		}
		known := false
		for _, hd := range holidays {
			if hd.ID == rule.HolidayID {
				known = true
				break
			}
		}
		if !known {
			return pricing.PriceRule{}, "holiday_id does not belong to this club"
		}
	}
	return rule, ""
}

// checkRuleConflict answers whether the candidate overlaps an existing
// same-scope rule on the same court, excluding the rule itself on update.
func (h *Handler) checkRuleConflict(ctx context.Context, rule pricing.PriceRule, excludeID string) (*pricing.PriceRule, error) {
	existing, err := h.rules.ListByCourt(ctx, rule.CourtID)
	if err != nil {
		return nil, err
	}
	return pricing.FindConflictingRule(existing, rule, excludeID), nil
}

// emitRulesChanged records a pricing-changed event so downstream caches
// and search indexes can invalidate the court's timelines.
func (h *Handler) emitRulesChanged(ctx context.Context, courtID string) {
	payload, err := json.Marshal(map[string]any{"court_id": courtID})
	if err != nil {
		h.logger.Error("failed to build pricing event payload", "err", err)
		return
	}
	tx, err := h.reservations.Begin(ctx)
	if err != nil {
		h.logger.Error("failed to open outbox tx", "err", err)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	evt := outbox.Event{
		AggregateType: "court",
		AggregateID:   courtID,
		EventType:     outbox.EventPriceRulesChanged,
		Payload:       payload,
	}
	if err := h.outboxRepo.Insert(ctx, tx, evt); err != nil {
		h.logger.Error("failed to write pricing event", "err", err)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		h.logger.Error("failed to commit pricing event", "err", err)
	}
}

// CreatePriceRule serves POST /api/v1/admin/price-rules.
func (h *Handler) CreatePriceRule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req priceRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CourtID) == "" {
		http.Error(w, "court_id required", http.StatusBadRequest)
		return
	}
	if _, err := h.courts.Get(r.Context(), strings.TrimSpace(req.CourtID)); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "court not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load court", http.StatusInternalServerError)
		return
	}

	rule, problem := h.ruleFromRequest(r.Context(), req)
	if problem != "" {
		http.Error(w, problem, http.StatusBadRequest)
		return
	}

	conflict, err := h.checkRuleConflict(r.Context(), rule, "")
	if err != nil {
		http.Error(w, "failed to check conflicts", http.StatusInternalServerError)
		return
	}
	if conflict != nil {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":               "rule overlaps an existing rule of the same scope",
			"conflicting_rule_id": conflict.ID,
		})
		return
	}

	id, err := h.rules.Create(r.Context(), rule)
	if err != nil {
		http.Error(w, "failed to create rule", http.StatusInternalServerError)
		return
	}
	h.emitRulesChanged(r.Context(), rule.CourtID)
	h.logger.Info("price rule created", "rule_id", id, "court_id", rule.CourtID, "rule_type", rule.Type.String())
	writeJSON(w, http.StatusCreated, map[string]string{"rule_id": id})
}

// UpdatePriceRule serves PUT /api/v1/admin/price-rules. The rule being
// updated is excluded from its own conflict check.
func (h *Handler) UpdatePriceRule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req priceRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.RuleID) == "" || strings.TrimSpace(req.CourtID) == "" {
		http.Error(w, "rule_id and court_id required", http.StatusBadRequest)
		return
	}

	rule, problem := h.ruleFromRequest(r.Context(), req)
	if problem != "" {
		http.Error(w, problem, http.StatusBadRequest)
		return
	}

	conflict, err := h.checkRuleConflict(r.Context(), rule, rule.ID)
	if err != nil {
		http.Error(w, "failed to check conflicts", http.StatusInternalServerError)
		return
	}
	if conflict != nil {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":               "rule overlaps an existing rule of the same scope",
			"conflicting_rule_id": conflict.ID,
		})
		return
	}

	if err := h.rules.Update(r.Context(), rule); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "rule not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to update rule", http.StatusInternalServerError)
		return
	}
	h.emitRulesChanged(r.Context(), rule.CourtID)
	writeJSON(w, http.StatusOK, map[string]string{"rule_id": rule.ID})
}

// DeletePriceRule serves DELETE /api/v1/admin/price-rules?court_id=...&rule_id=...
func (h *Handler) DeletePriceRule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	courtID := strings.TrimSpace(r.URL.Query().Get("court_id"))
	ruleID := strings.TrimSpace(r.URL.Query().Get("rule_id"))
	if courtID == "" || ruleID == "" {
		http.Error(w, "court_id and rule_id required", http.StatusBadRequest)
		return
	}

	if err := h.rules.Delete(r.Context(), courtID, ruleID); err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "rule not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete rule", http.StatusInternalServerError)
		return
	}
	h.emitRulesChanged(r.Context(), courtID)
	w.WriteHeader(http.StatusNoContent)
}

// ListPriceRules serves GET /api/v1/admin/price-rules?court_id=...
func (h *Handler) ListPriceRules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	courtID := strings.TrimSpace(r.URL.Query().Get("court_id"))
	if courtID == "" {
		http.Error(w, "court_id required", http.StatusBadRequest)
		return
	}
	rules, err := h.rules.ListByCourt(r.Context(), courtID)
	if err != nil {
		http.Error(w, "failed to list rules", http.StatusInternalServerError)
		return
	}

	items := make([]priceRuleItem, 0, len(rules))
	for _, rule := range rules {
		item := priceRuleItem{
			RuleID:     rule.ID,
			RuleType:   rule.Type.String(),
			Date:       rule.Date,
			HolidayID:  rule.HolidayID,
			StartTime:  rule.StartClock,
			EndTime:    rule.EndClock,
			PriceCents: rule.PriceCents,
		}
		if rule.Type == pricing.RuleSpecificDay {
			d := rule.DayOfWeek
			item.DayOfWeek = &d
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, items)
}
