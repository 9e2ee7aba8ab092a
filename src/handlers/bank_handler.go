package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/subveris/backend/src/models"
	"github.com/username/subveris/backend/src/security/validation"
	"github.com/username/subveris/backend/src/storage"
)

// BankHandler serves the simulated bank connections and the transaction
// ledger.
type BankHandler struct {
	store storage.Store
}

func NewBankHandler(store storage.Store) *BankHandler {
	return &BankHandler{store: store}
}

func (h *BankHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := h.store.ListBankConnections(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Bank connection not found", "Failed to get bank connections")
		return
	}
	sendJSON(w, http.StatusOK, conns)
}

func (h *BankHandler) CreateConnection(w http.ResponseWriter, r *http.Request) {
	var ins models.InsertBankConnection
	if err := json.NewDecoder(r.Body).Decode(&ins); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ins.BankName = validation.SanitizeText(validation.StripUnprintable(ins.BankName))

	if details := validation.CheckBankConnection(ins); len(details) > 0 {
		sendValidationError(w, "Invalid bank connection data", details)
		return
	}

	conn, err := h.store.CreateBankConnection(r.Context(), ins)
	if err != nil {
		sendStoreError(w, r, err, "Bank connection not found", "Failed to create bank connection")
		return
	}
	sendJSON(w, http.StatusCreated, conn)
}

func (h *BankHandler) SyncConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.store.SyncBankConnection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, r, err, "Bank connection not found", "Failed to sync bank connection")
		return
	}
	sendJSON(w, http.StatusOK, conn)
}

func (h *BankHandler) DeleteConnection(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.DeleteBankConnection(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, r, err, "Bank connection not found", "Failed to delete bank connection")
		return
	}
	if !deleted {
		sendJSONError(w, "Bank connection not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BankHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.store.ListTransactions(r.Context())
	if err != nil {
		sendStoreError(w, r, err, "Transaction not found", "Failed to get transactions")
		return
	}
	sendJSON(w, http.StatusOK, txns)
}

func (h *BankHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var ins models.InsertTransaction
	if err := json.NewDecoder(r.Body).Decode(&ins); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ins.Description = validation.SanitizeText(validation.StripUnprintable(ins.Description))
	ins.MerchantName = validation.SanitizeTextPtr(ins.MerchantName)

	if details := validation.CheckTransaction(ins); len(details) > 0 {
		sendValidationError(w, "Invalid transaction data", details)
		return
	}

	txn, err := h.store.CreateTransaction(r.Context(), ins)
	if err != nil {
		sendStoreError(w, r, err, "Transaction not found", "Failed to create transaction")
		return
	}
	sendJSON(w, http.StatusCreated, txn)
}
