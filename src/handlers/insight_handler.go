package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/subveris/backend/src/models"
	"github.com/username/subveris/backend/src/security/validation"
	"github.com/username/subveris/backend/src/storage"
)

// InsightHandler serves the stored (seeded or engine-created) insights.
type InsightHandler struct {
	store storage.Store
}

func NewInsightHandler(store storage.Store) *InsightHandler {
	return &InsightHandler{store: store}
}

func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	insights, err := h.store.ListInsights(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Insight not found", "Failed to get insights")
		return
	}
	sendJSON(w, http.StatusOK, insights)
}

func (h *InsightHandler) Create(w http.ResponseWriter, r *http.Request) {
	var ins models.InsertInsight
	if err := json.NewDecoder(r.Body).Decode(&ins); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ins.Title = validation.SanitizeText(validation.StripUnprintable(ins.Title))
	ins.Description = validation.SanitizeText(validation.StripUnprintable(ins.Description))

	if ins.Title == "" || ins.Description == "" {
		sendJSONError(w, "Invalid insight data", http.StatusBadRequest)
		return
	}

	insight, err := h.store.CreateInsight(r.Context(), ins)
	if err != nil {
		sendStoreError(w, r, err, "Insight not found", "Failed to create insight")
		return
	}
	sendJSON(w, http.StatusCreated, insight)
}
