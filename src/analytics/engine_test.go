package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/subveris/backend/src/models"
	"github.com/username/subveris/backend/src/storage"
)

func sub(name string, cat models.SubscriptionCategory, amount float64,
	freq models.BillingFrequency, status models.SubscriptionStatus, usage int) models.Subscription {
	return models.Subscription{
		ID:         name,
		Name:       name,
		Category:   cat,
		Amount:     amount,
		Currency:   "USD",
		Frequency:  freq,
		Status:     status,
		UsageCount: usage,
	}
}

func TestComputeMetrics(t *testing.T) {
	subs := []models.Subscription{
		sub("Netflix", models.CategoryStreaming, 15.99, models.FrequencyMonthly, models.StatusActive, 12),
		sub("Gym", models.CategoryFitness, 24.99, models.FrequencyMonthly, models.StatusUnused, 1),
		sub("LinkedIn", models.CategoryProductivity, 29.99, models.FrequencyMonthly, models.StatusToCancel, 0),
		sub("Backups", models.CategoryCloudStorage, 120, models.FrequencyYearly, models.StatusActive, 7),
	}

	m := ComputeMetrics(subs)

	// To-cancel is excluded from spend but counts toward savings.
	assert.InDelta(t, 15.99+24.99+10, m.TotalMonthlySpend, 1e-9)
	assert.Equal(t, 2, m.ActiveSubscriptions)
	assert.Equal(t, 1, m.UnusedSubscriptions)
	assert.InDelta(t, 24.99+29.99, m.PotentialSavings, 1e-9)
	assert.InDelta(t, m.PotentialSavings, m.ThisMonthSavings, 1e-9)
	assert.InDelta(t, (15.99+24.99+10)/20, m.AverageCostPerUse, 1e-9)
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)
	assert.Zero(t, m.TotalMonthlySpend)
	assert.Zero(t, m.ActiveSubscriptions)
	assert.Zero(t, m.PotentialSavings)
	assert.Zero(t, m.UnusedSubscriptions)
	assert.Zero(t, m.AverageCostPerUse)
}

func TestComputeMetricsZeroUsage(t *testing.T) {
	m := ComputeMetrics([]models.Subscription{
		sub("Netflix", models.CategoryStreaming, 15.99, models.FrequencyMonthly, models.StatusActive, 0),
	})
	assert.Zero(t, m.AverageCostPerUse)
}

func TestGroupSpendingByCategory(t *testing.T) {
	subs := []models.Subscription{
		sub("Netflix", models.CategoryStreaming, 10, models.FrequencyMonthly, models.StatusActive, 3),
		sub("Adobe", models.CategorySoftware, 30, models.FrequencyMonthly, models.StatusActive, 3),
		sub("Spotify", models.CategoryStreaming, 10, models.FrequencyMonthly, models.StatusUnused, 0),
		sub("LinkedIn", models.CategoryProductivity, 50, models.FrequencyMonthly, models.StatusToCancel, 0),
	}

	rows := GroupSpendingByCategory(subs)

	require.Len(t, rows, 2)
	assert.Equal(t, models.CategoryStreaming, rows[0].Category)
	assert.InDelta(t, 20, rows[0].Amount, 1e-9)
	assert.Equal(t, 2, rows[0].Count)
	assert.InDelta(t, 40, rows[0].Percentage, 1e-9)

	assert.Equal(t, models.CategorySoftware, rows[1].Category)
	assert.InDelta(t, 30, rows[1].Amount, 1e-9)
	assert.InDelta(t, 60, rows[1].Percentage, 1e-9)

	var pctSum, amountSum float64
	for _, row := range rows {
		pctSum += row.Percentage
		amountSum += row.Amount
	}
	assert.InDelta(t, 100, pctSum, 1e-9)
	// Category amounts account for exactly the dashboard spend.
	assert.InDelta(t, ComputeMetrics(subs).TotalMonthlySpend, amountSum, 1e-9)
}

func TestGroupSpendingByCategoryEmpty(t *testing.T) {
	assert.Empty(t, GroupSpendingByCategory(nil))
}

func TestRankCostPerUse(t *testing.T) {
	subs := []models.Subscription{
		sub("A", models.CategoryOther, 10, models.FrequencyMonthly, models.StatusActive, 10), // 1.00
		sub("B", models.CategoryOther, 30, models.FrequencyMonthly, models.StatusActive, 2),  // 15.00
		sub("C", models.CategoryOther, 20, models.FrequencyMonthly, models.StatusUnused, 0),  // 20.00 (zero usage = full cost)
		sub("D", models.CategoryOther, 99, models.FrequencyMonthly, models.StatusToCancel, 1),
	}

	rows := RankCostPerUse(subs)

	require.Len(t, rows, 3)
	assert.Equal(t, "C", rows[0].Name)
	assert.InDelta(t, 20, rows[0].CostPerUse, 1e-9)
	assert.Equal(t, "B", rows[1].Name)
	assert.Equal(t, "A", rows[2].Name)
	assert.Equal(t, models.RatingExcellent, rows[2].ValueRating)
}

func TestRankCostPerUseTruncatesToFive(t *testing.T) {
	var subs []models.Subscription
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		subs = append(subs, sub(name, models.CategoryOther, 10, models.FrequencyMonthly, models.StatusActive, 1))
	}
	assert.Len(t, RankCostPerUse(subs), 5)
}

func TestRateValueBoundaries(t *testing.T) {
	testCases := []struct {
		costPerUse float64
		expected   models.ValueRating
	}{
		{0.5, models.RatingExcellent},
		{2.00, models.RatingExcellent},
		{2.01, models.RatingGood},
		{5.00, models.RatingGood},
		{5.01, models.RatingFair},
		{10.00, models.RatingFair},
		{10.01, models.RatingPoor},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, rateValue(tc.costPerUse), "cost per use %.2f", tc.costPerUse)
	}
}

func TestOpportunityCosts(t *testing.T) {
	subs := []models.Subscription{
		sub("Netflix", models.CategoryStreaming, 15.99, models.FrequencyMonthly, models.StatusActive, 12),
		sub("Gym", models.CategoryFitness, 24.99, models.FrequencyMonthly, models.StatusUnused, 1),
	}

	out := OpportunityCosts(subs)

	require.Len(t, out, 1)
	assert.Equal(t, "Gym", out[0].SubscriptionName)
	require.Len(t, out[0].Equivalents, 3)
	// 24.99 buys 4 coffees, 1 movie ticket, 2 lunches.
	assert.Equal(t, models.Equivalent{Item: "coffee drinks", Count: 4, Icon: "coffee"}, out[0].Equivalents[0])
	assert.Equal(t, models.Equivalent{Item: "movie tickets", Count: 1, Icon: "film"}, out[0].Equivalents[1])
	assert.Equal(t, models.Equivalent{Item: "lunch meals", Count: 2, Icon: "utensils"}, out[0].Equivalents[2])
}

func TestBasketEquivalentsDropsFractions(t *testing.T) {
	// 7.50 buys one coffee but not a single ticket or lunch.
	out := basketEquivalents(7.50)
	require.Len(t, out, 1)
	assert.Equal(t, "coffee drinks", out[0].Item)

	assert.Empty(t, basketEquivalents(3))
}

func TestMonthlyTrend(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{Amount: 10, Date: "2024-06-01"},
		{Amount: 5, Date: "2024-06-20"},
		{Amount: 7, Date: "2024-01-10"},
		{Amount: 99, Date: "2023-12-31"}, // outside the window
		{Amount: 3, Date: "not-a-date"},  // skipped
	}

	points := MonthlyTrend(txns, now)

	require.Len(t, points, 6)
	assert.Equal(t, "Jan", points[0].Month)
	assert.InDelta(t, 7, points[0].Amount, 1e-9)
	assert.Equal(t, "Jun", points[5].Month)
	assert.InDelta(t, 15, points[5].Amount, 1e-9)
	assert.Zero(t, points[2].Amount)
}

func TestEngineMonthlySpendingFallback(t *testing.T) {
	store := storage.NewMemoryStore("demo")
	engine := NewEngine(store)

	points, err := engine.MonthlySpending(context.Background())

	require.NoError(t, err)
	require.Len(t, points, 6)
	assert.Equal(t, "Aug", points[0].Month)
	assert.InDelta(t, 245.50, points[0].Amount, 1e-9)
}

func TestEngineMetricsReadsStore(t *testing.T) {
	store := storage.NewMemoryStore("demo")
	ctx := context.Background()
	_, err := store.CreateSubscription(ctx, models.InsertSubscription{
		Name:      "Netflix",
		Category:  models.CategoryStreaming,
		Amount:    15.99,
		Frequency: models.FrequencyMonthly,
		Status:    models.StatusActive,
	})
	require.NoError(t, err)

	m, err := NewEngine(store).Metrics(ctx)

	require.NoError(t, err)
	assert.InDelta(t, 15.99, m.TotalMonthlySpend, 1e-9)
	assert.Equal(t, 1, m.ActiveSubscriptions)
}
