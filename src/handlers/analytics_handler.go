package handlers

import (
	"net/http"

	"github.com/username/subveris/backend/src/analytics"
)

// AnalyticsHandler serves the read-only derived views computed by the
// analytics engine.
type AnalyticsHandler struct {
	engine *analytics.Engine
}

func NewAnalyticsHandler(engine *analytics.Engine) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine}
}

func (h *AnalyticsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.engine.Metrics(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Metrics not found", "Failed to get metrics")
		return
	}
	sendJSON(w, http.StatusOK, metrics)
}

func (h *AnalyticsHandler) MonthlySpending(w http.ResponseWriter, r *http.Request) {
	trend, err := h.engine.MonthlySpending(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Monthly spending not found", "Failed to get monthly spending")
		return
	}
	sendJSON(w, http.StatusOK, trend)
}

func (h *AnalyticsHandler) SpendingByCategory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.engine.SpendingByCategory(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Category spending not found", "Failed to get spending by category")
		return
	}
	sendJSON(w, http.StatusOK, rows)
}

func (h *AnalyticsHandler) CostPerUse(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.engine.CostPerUse(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Analysis not found", "Failed to get cost per use analysis")
		return
	}
	sendJSON(w, http.StatusOK, analysis)
}

func (h *AnalyticsHandler) BehavioralInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.engine.BehavioralInsights(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Insights not found", "Failed to get behavioral insights")
		return
	}
	sendJSON(w, http.StatusOK, insights)
}

func (h *AnalyticsHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.engine.Recommendations(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Recommendations not found", "Failed to get recommendations")
		return
	}
	sendJSON(w, http.StatusOK, recs)
}
