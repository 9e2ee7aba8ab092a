// Package storage defines the persistence port of the tracker and its two
// backends: an in-memory map store and a SQLite store. The analytics
// engine and the HTTP handlers depend only on the Store interface.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/username/subveris/backend/src/models"
)

// ErrNotFound is returned when an operation targets an identifier that is
// absent from the store.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract consumed by the analytics engine and
// the API layer. Implementations translate between the domain shapes and
// their own row shapes; column naming never leaks out of a backend.
type Store interface {
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	GetSubscription(ctx context.Context, id string) (models.Subscription, error)
	CreateSubscription(ctx context.Context, ins models.InsertSubscription) (models.Subscription, error)
	SetSubscriptionStatus(ctx context.Context, id string, status models.SubscriptionStatus) (models.Subscription, error)
	SetSubscriptionUsage(ctx context.Context, id string, usageCount int) (models.Subscription, error)
	RecordUsage(ctx context.Context, id string) (models.Subscription, error)
	DeleteSubscription(ctx context.Context, id string) (bool, error)

	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, ins models.InsertTransaction) (models.Transaction, error)

	ListInsights(ctx context.Context) ([]models.Insight, error)
	CreateInsight(ctx context.Context, ins models.InsertInsight) (models.Insight, error)

	ListBankConnections(ctx context.Context) ([]models.BankConnection, error)
	GetBankConnection(ctx context.Context, id string) (models.BankConnection, error)
	CreateBankConnection(ctx context.Context, ins models.InsertBankConnection) (models.BankConnection, error)
	SyncBankConnection(ctx context.Context, id string) (models.BankConnection, error)
	DeleteBankConnection(ctx context.Context, id string) (bool, error)

	GetDefaultUser(ctx context.Context) (models.User, error)
	UpdateUserEmail(ctx context.Context, id, email string) (models.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) (models.User, error)
	UpdateUserTOTP(ctx context.Context, id, secret string, enabled bool) (models.User, error)

	// PurgeUserData deletes all subscriptions, transactions, insights and
	// bank connections. Used by account deletion.
	PurgeUserData(ctx context.Context) error
}

// today returns the current calendar date in the wire format.
func today() string {
	return time.Now().Format("2006-01-02")
}

// newSubscription materializes an insert with a server-assigned id and
// the documented defaults (currency USD, status active, usage 0,
// isDetected false).
func newSubscription(ins models.InsertSubscription) models.Subscription {
	sub := models.Subscription{
		ID:              uuid.New().String(),
		Name:            ins.Name,
		Category:        ins.Category,
		Amount:          ins.Amount,
		Currency:        ins.Currency,
		Frequency:       ins.Frequency,
		NextBillingDate: ins.NextBillingDate,
		Status:          ins.Status,
		UsageCount:      ins.UsageCount,
		LastUsedDate:    ins.LastUsedDate,
		LogoURL:         ins.LogoURL,
		Description:     ins.Description,
		IsDetected:      ins.IsDetected,
	}
	if sub.Currency == "" {
		sub.Currency = "USD"
	}
	if sub.Status == "" {
		sub.Status = models.StatusActive
	}
	if sub.UsageCount < 0 {
		sub.UsageCount = 0
	}
	return sub
}

func newTransaction(ins models.InsertTransaction) models.Transaction {
	return models.Transaction{
		ID:             uuid.New().String(),
		Description:    ins.Description,
		Amount:         ins.Amount,
		Date:           ins.Date,
		Category:       ins.Category,
		IsRecurring:    ins.IsRecurring,
		MerchantName:   ins.MerchantName,
		SubscriptionID: ins.SubscriptionID,
	}
}

func newInsight(ins models.InsertInsight) models.Insight {
	insight := models.Insight{
		ID:               uuid.New().String(),
		Type:             ins.Type,
		Title:            ins.Title,
		Description:      ins.Description,
		PotentialSavings: ins.PotentialSavings,
		SubscriptionID:   ins.SubscriptionID,
		Priority:         ins.Priority,
		IsRead:           ins.IsRead,
		CreatedAt:        ins.CreatedAt,
	}
	if insight.Priority == 0 {
		insight.Priority = 1
	}
	if insight.CreatedAt == "" {
		insight.CreatedAt = time.Now().Format(time.RFC3339)
	}
	return insight
}

func newBankConnection(ins models.InsertBankConnection) models.BankConnection {
	conn := models.BankConnection{
		ID:          uuid.New().String(),
		BankName:    ins.BankName,
		AccountType: ins.AccountType,
		LastSync:    ins.LastSync,
		IsConnected: true,
		AccountMask: ins.AccountMask,
	}
	if ins.IsConnected != nil {
		conn.IsConnected = *ins.IsConnected
	}
	if conn.LastSync == "" {
		conn.LastSync = time.Now().Format(time.RFC3339)
	}
	return conn
}
