package transport

import (
	"net/http"
	"time"

	"printshop-be/internal/analytics"
	"printshop-be/internal/utils"
)

// AnalyticsHandler exposes the reporting read-through for the admin UI.
type AnalyticsHandler struct {
	svc analytics.Service
}

func NewAnalyticsHandler(svc analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/analytics/revenue", h.revenue)
	mux.HandleFunc("GET /api/analytics/product-types", h.productTypes)
}

func (h *AnalyticsHandler) revenue(w http.ResponseWriter, r *http.Request) {
	if utils.GetCustomerRoleFromContext(r.Context()) != "admin" {
		utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
		return
	}

	from, to, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.Revenue(r.Context(), from, to)
	if err != nil {
		utils.WriteJSONError(w, "reporting unavailable", http.StatusServiceUnavailable)
		return
	}
	utils.WriteJSON(w, http.StatusOK, summary)
}

func (h *AnalyticsHandler) productTypes(w http.ResponseWriter, r *http.Request) {
	if utils.GetCustomerRoleFromContext(r.Context()) != "admin" {
		utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
		return
	}

	from, to, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	counts, err := h.svc.OrdersByProductType(r.Context(), from, to)
	if err != nil {
		utils.WriteJSONError(w, "reporting unavailable", http.StatusServiceUnavailable)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"product_types": counts})
}

// parsePeriod reads from/to query params as RFC 3339 timestamps, defaulting
// to the last 30 days.
func parsePeriod(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from, to := now.AddDate(0, 0, -30), now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.WriteJSONError(w, "invalid from timestamp", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.WriteJSONError(w, "invalid to timestamp", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	return from, to, true
}
