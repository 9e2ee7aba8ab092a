package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/subveris/backend/src/models"
)

func TestMemoryStoreSubscriptionLifecycle(t *testing.T) {
	store := NewMemoryStore("demo")
	ctx := context.Background()

	created, err := store.CreateSubscription(ctx, models.InsertSubscription{
		Name:            "Netflix",
		Category:        models.CategoryStreaming,
		Amount:          15.99,
		Frequency:       models.FrequencyMonthly,
		NextBillingDate: "2024-02-15",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, models.StatusActive, created.Status)

	got, err := store.GetSubscription(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := store.SetSubscriptionStatus(ctx, created.ID, models.StatusUnused)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnused, updated.Status)

	updated, err = store.SetSubscriptionUsage(ctx, created.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.UsageCount)
	require.NotNil(t, updated.LastUsedDate)

	deleted, err := store.DeleteSubscription(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = store.GetSubscription(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListsInInsertionOrder(t *testing.T) {
	store := NewMemoryStore("demo")
	ctx := context.Background()

	names := []string{"Netflix", "Spotify", "Adobe"}
	for _, name := range names {
		_, err := store.CreateSubscription(ctx, models.InsertSubscription{
			Name:      name,
			Category:  models.CategoryOther,
			Amount:    10,
			Frequency: models.FrequencyMonthly,
		})
		require.NoError(t, err)
	}

	subs, err := store.ListSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	for i, name := range names {
		assert.Equal(t, name, subs[i].Name)
	}
}

func TestMemoryStoreRecordUsageReactivates(t *testing.T) {
	store := NewMemoryStore("demo")
	ctx := context.Background()

	created, err := store.CreateSubscription(ctx, models.InsertSubscription{
		Name:      "LinkedIn Premium",
		Category:  models.CategoryProductivity,
		Amount:    29.99,
		Frequency: models.FrequencyMonthly,
		Status:    models.StatusToCancel,
	})
	require.NoError(t, err)

	sub, err := store.RecordUsage(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sub.UsageCount)
	assert.Equal(t, models.StatusActive, sub.Status)
	require.NotNil(t, sub.LastUsedDate)
	assert.Equal(t, today(), *sub.LastUsedDate)
}

func TestMemoryStoreRecordUsageMissing(t *testing.T) {
	store := NewMemoryStore("demo")
	_, err := store.RecordUsage(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDeleteMissingSubscription(t *testing.T) {
	store := NewMemoryStore("demo")
	deleted, err := store.DeleteSubscription(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryStoreDeleteClearsWeakReferences(t *testing.T) {
	store := NewMemoryStore("demo")
	ctx := context.Background()

	sub, err := store.CreateSubscription(ctx, models.InsertSubscription{
		Name:      "Netflix",
		Category:  models.CategoryStreaming,
		Amount:    15.99,
		Frequency: models.FrequencyMonthly,
	})
	require.NoError(t, err)

	_, err = store.CreateTransaction(ctx, models.InsertTransaction{
		Description:    "Netflix charge",
		Amount:         15.99,
		Date:           "2024-01-15",
		SubscriptionID: &sub.ID,
	})
	require.NoError(t, err)

	_, err = store.CreateInsight(ctx, models.InsertInsight{
		Type:           "savings",
		Title:          "Cancel Netflix",
		Description:    "Unused lately.",
		SubscriptionID: &sub.ID,
	})
	require.NoError(t, err)

	deleted, err := store.DeleteSubscription(ctx, sub.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	txns, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Nil(t, txns[0].SubscriptionID)

	insights, err := store.ListInsights(ctx)
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Nil(t, insights[0].SubscriptionID)
}

func TestMemoryStoreInsightDefaults(t *testing.T) {
	store := NewMemoryStore("demo")

	insight, err := store.CreateInsight(context.Background(), models.InsertInsight{
		Type:        "tip",
		Title:       "Bundle streaming",
		Description: "Bundles can be cheaper.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, insight.Priority)
	assert.NotEmpty(t, insight.CreatedAt)
	assert.False(t, insight.IsRead)
}

func TestMemoryStoreBankConnections(t *testing.T) {
	store := NewMemoryStore("demo")
	ctx := context.Background()

	conn, err := store.CreateBankConnection(ctx, models.InsertBankConnection{
		BankName:    "Chase Bank",
		AccountType: "checking",
	})
	require.NoError(t, err)
	assert.True(t, conn.IsConnected)
	assert.NotEmpty(t, conn.LastSync)

	synced, err := store.SyncBankConnection(ctx, conn.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, synced.LastSync)

	deleted, err := store.DeleteBankConnection(ctx, conn.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteBankConnection(ctx, conn.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryStoreSeed(t *testing.T) {
	store := NewMemoryStore("demo")
	store.Seed()
	ctx := context.Background()

	subs, err := store.ListSubscriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 8)
	assert.Equal(t, "Netflix", subs[0].Name)

	insights, err := store.ListInsights(ctx)
	require.NoError(t, err)
	assert.Len(t, insights, 3)

	conns, err := store.ListBankConnections(ctx)
	require.NoError(t, err)
	assert.Len(t, conns, 1)
}

func TestMemoryStoreUserUpdates(t *testing.T) {
	store := NewMemoryStore("demo")
	ctx := context.Background()

	user, err := store.GetDefaultUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "demo", user.Username)

	user, err = store.UpdateUserEmail(ctx, user.ID, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)

	user, err = store.UpdateUserTOTP(ctx, user.ID, "SECRET", true)
	require.NoError(t, err)
	assert.True(t, user.TOTPEnabled)

	_, err = store.UpdateUserEmail(ctx, "other-id", "x@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePurgeUserData(t *testing.T) {
	store := NewMemoryStore("demo")
	store.Seed()
	ctx := context.Background()

	require.NoError(t, store.PurgeUserData(ctx))

	subs, err := store.ListSubscriptions(ctx)
	require.NoError(t, err)
	assert.Empty(t, subs)

	insights, err := store.ListInsights(ctx)
	require.NoError(t, err)
	assert.Empty(t, insights)

	conns, err := store.ListBankConnections(ctx)
	require.NoError(t, err)
	assert.Empty(t, conns)

	// The account itself survives a data purge.
	user, err := store.GetDefaultUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "demo", user.Username)
}
