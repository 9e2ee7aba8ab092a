package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/subveris/backend/src/models"
	"github.com/username/subveris/backend/src/security/validation"
	"github.com/username/subveris/backend/src/storage"
)

// SubscriptionHandler serves the subscription CRUD surface. Validation is
// local to this boundary: malformed input never reaches the store.
type SubscriptionHandler struct {
	store storage.Store
}

func NewSubscriptionHandler(store storage.Store) *SubscriptionHandler {
	return &SubscriptionHandler{store: store}
}

func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubscriptions(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Subscription not found", "Failed to get subscriptions")
		return
	}
	sendJSON(w, http.StatusOK, subs)
}

func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sub, err := h.store.GetSubscription(r.Context(), id)
	if err != nil {
		sendStoreError(w, r, err, "Subscription not found", "Failed to get subscription")
		return
	}
	sendJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var ins models.InsertSubscription
	if err := json.NewDecoder(r.Body).Decode(&ins); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ins.Name = validation.SanitizeText(validation.StripUnprintable(ins.Name))
	ins.Description = validation.SanitizeTextPtr(ins.Description)

	if details := validation.CheckSubscription(ins); len(details) > 0 {
		sendValidationError(w, "Invalid subscription data", details)
		return
	}

	sub, err := h.store.CreateSubscription(r.Context(), ins)
	if err != nil {
		sendStoreError(w, r, err, "Subscription not found", "Failed to create subscription")
		return
	}
	sendJSON(w, http.StatusCreated, sub)
}

func (h *SubscriptionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.SubscriptionStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Status.IsValid() {
		sendJSONError(w, "Invalid status", http.StatusBadRequest)
		return
	}

	sub, err := h.store.SetSubscriptionStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		sendStoreError(w, r, err, "Subscription not found", "Failed to update subscription status")
		return
	}
	sendJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) UpdateUsage(w http.ResponseWriter, r *http.Request) {
	// usageCount must be present and a non-negative number; a pointer
	// distinguishes a missing field from an explicit zero.
	var req struct {
		UsageCount *int `json:"usageCount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid usage count", http.StatusBadRequest)
		return
	}
	if req.UsageCount == nil || *req.UsageCount < 0 {
		sendJSONError(w, "Invalid usage count", http.StatusBadRequest)
		return
	}

	sub, err := h.store.SetSubscriptionUsage(r.Context(), chi.URLParam(r, "id"), *req.UsageCount)
	if err != nil {
		sendStoreError(w, r, err, "Subscription not found", "Failed to update usage")
		return
	}
	sendJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) LogUsage(w http.ResponseWriter, r *http.Request) {
	sub, err := h.store.RecordUsage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, r, err, "Subscription not found", "Failed to record usage")
		return
	}
	sendJSON(w, http.StatusOK, sub)
}

func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteSubscription(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, r, err, "Subscription not found", "Failed to delete subscription")
		return
	}
	if !deleted {
		sendJSONError(w, "Subscription not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
