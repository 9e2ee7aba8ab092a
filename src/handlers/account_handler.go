package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/username/subveris/backend/src/logger"
	"github.com/username/subveris/backend/src/models"
	"github.com/username/subveris/backend/src/services"
	"github.com/username/subveris/backend/src/storage"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 8

// AccountHandler manages the single seeded account: email and password
// updates, TOTP two-factor setup, data export and account deletion.
type AccountHandler struct {
	store storage.Store
	mfa   *services.MFAService
}

func NewAccountHandler(store storage.Store, mfa *services.MFAService) *AccountHandler {
	return &AccountHandler{store: store, mfa: mfa}
}

func (h *AccountHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRegex.MatchString(req.Email) {
		sendJSONError(w, "Invalid email address", http.StatusBadRequest)
		return
	}

	user, err := h.store.GetDefaultUser(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to update email")
		return
	}
	if _, err := h.store.UpdateUserEmail(r.Context(), user.ID, req.Email); err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to update email")
		return
	}

	logger.FromContext(r.Context()).Info("Account email updated", "userID", user.ID)
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Email updated successfully"})
}

func (h *AccountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		sendJSONError(w, "Missing password fields", http.StatusBadRequest)
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		sendJSONError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	user, err := h.store.GetDefaultUser(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to update password")
		return
	}

	// The seeded account starts without a password; once one is set the
	// current password must verify before it can be replaced.
	if user.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			sendJSONError(w, "Current password is incorrect", http.StatusBadRequest)
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to hash new password", "error", err)
		sendJSONError(w, "Failed to update password", http.StatusInternalServerError)
		return
	}
	if _, err := h.store.UpdateUserPassword(r.Context(), user.ID, string(hash)); err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to update password")
		return
	}

	logger.FromContext(r.Context()).Info("Account password updated", "userID", user.ID)
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Password updated successfully"})
}

// Setup2FA generates a fresh TOTP secret and returns it with a QR code.
// The secret is stored disabled until a code is verified.
func (h *AccountHandler) Setup2FA(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.GetDefaultUser(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to set up two-factor authentication")
		return
	}

	secret, qrCode, err := h.mfa.GenerateSecret(user.Email)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to generate TOTP secret", "error", err)
		sendJSONError(w, "Failed to set up two-factor authentication", http.StatusInternalServerError)
		return
	}
	if _, err := h.store.UpdateUserTOTP(r.Context(), user.ID, secret, false); err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to set up two-factor authentication")
		return
	}

	sendJSON(w, http.StatusOK, map[string]string{"secret": secret, "qrCode": qrCode})
}

// Enable2FA verifies a 6-digit code against the pending secret and turns
// two-factor authentication on.
func (h *AccountHandler) Enable2FA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Code) != 6 {
		sendJSONError(w, "Invalid authentication code", http.StatusBadRequest)
		return
	}

	user, err := h.store.GetDefaultUser(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to enable 2FA")
		return
	}
	if user.TOTPSecret == "" {
		sendJSONError(w, "Two-factor setup has not been started", http.StatusBadRequest)
		return
	}
	if !h.mfa.ValidateCode(user.TOTPSecret, req.Code) {
		sendJSONError(w, "Invalid authentication code", http.StatusBadRequest)
		return
	}

	if _, err := h.store.UpdateUserTOTP(r.Context(), user.ID, user.TOTPSecret, true); err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to enable 2FA")
		return
	}

	logger.FromContext(r.Context()).Info("Two-factor authentication enabled", "userID", user.ID)
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Two-factor authentication enabled"})
}

func (h *AccountHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subs, err := h.store.ListSubscriptions(ctx)
	if err != nil {
		sendStoreError(w, r, err, "Export data not found", "Failed to export data")
		return
	}
	txns, err := h.store.ListTransactions(ctx)
	if err != nil {
		sendStoreError(w, r, err, "Export data not found", "Failed to export data")
		return
	}
	insights, err := h.store.ListInsights(ctx)
	if err != nil {
		sendStoreError(w, r, err, "Export data not found", "Failed to export data")
		return
	}

	export := struct {
		ExportDate    string                `json:"exportDate"`
		Subscriptions []models.Subscription `json:"subscriptions"`
		Transactions  []models.Transaction  `json:"transactions"`
		Insights      []models.Insight      `json:"insights"`
	}{
		ExportDate:    time.Now().Format(time.RFC3339),
		Subscriptions: subs,
		Transactions:  txns,
		Insights:      insights,
	}

	w.Header().Set("Content-Disposition", "attachment; filename=subveris-data.json")
	sendJSON(w, http.StatusOK, export)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.PurgeUserData(r.Context()); err != nil {
		sendStoreError(w, r, err, "User not found", "Failed to delete account")
		return
	}
	logger.FromContext(r.Context()).Info("Account data purged")
	sendJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Account deleted successfully"})
}
