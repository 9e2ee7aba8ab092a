package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/username/subveris/backend/src/models"
	"github.com/username/subveris/backend/src/storage"
)

// Engine computes analytics views. Each call fetches the full
// subscription snapshot once from the store; there is no caching, so the
// result is always consistent as of the call.
type Engine struct {
	store storage.Store
}

// NewEngine builds an engine reading through the given storage port.
func NewEngine(store storage.Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) Metrics(ctx context.Context) (models.DashboardMetrics, error) {
	subs, err := e.store.ListSubscriptions(ctx)
	if err != nil {
		return models.DashboardMetrics{}, fmt.Errorf("fetching subscriptions: %w", err)
	}
	return ComputeMetrics(subs), nil
}

func (e *Engine) SpendingByCategory(ctx context.Context) ([]models.SpendingByCategory, error) {
	subs, err := e.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching subscriptions: %w", err)
	}
	return GroupSpendingByCategory(subs), nil
}

func (e *Engine) CostPerUse(ctx context.Context) ([]models.CostPerUseAnalysis, error) {
	subs, err := e.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching subscriptions: %w", err)
	}
	return RankCostPerUse(subs), nil
}

func (e *Engine) BehavioralInsights(ctx context.Context) ([]models.OpportunityCost, error) {
	subs, err := e.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching subscriptions: %w", err)
	}
	return OpportunityCosts(subs), nil
}

func (e *Engine) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	subs, err := e.store.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching subscriptions: %w", err)
	}
	return BuildRecommendations(subs), nil
}

// MonthlySpending returns the six-month spending trend. When the ledger
// has transactions the series is derived from them; an empty ledger falls
// back to the canned demo series so a fresh install still renders a chart.
func (e *Engine) MonthlySpending(ctx context.Context) ([]models.MonthlySpending, error) {
	txns, err := e.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	if len(txns) == 0 {
		return demoMonthlySpending(), nil
	}
	return MonthlyTrend(txns, time.Now()), nil
}

// ComputeMetrics derives the dashboard summary from a subscription
// snapshot. Subscriptions marked to-cancel are excluded from spend;
// unused and to-cancel amounts make up the potential savings.
func ComputeMetrics(subs []models.Subscription) models.DashboardMetrics {
	var totalMonthlySpend, potentialSavings float64
	var active, unused, totalUsage int

	for _, sub := range subs {
		monthly := MonthlyCost(sub.Amount, sub.Frequency)
		if sub.Status != models.StatusToCancel {
			totalMonthlySpend += monthly
		}
		switch sub.Status {
		case models.StatusActive:
			active++
		case models.StatusUnused:
			unused++
		}
		if sub.Status == models.StatusUnused || sub.Status == models.StatusToCancel {
			potentialSavings += monthly
		}
		totalUsage += sub.UsageCount
	}

	var averageCostPerUse float64
	if totalUsage > 0 {
		averageCostPerUse = totalMonthlySpend / float64(totalUsage)
	}

	return models.DashboardMetrics{
		TotalMonthlySpend:   totalMonthlySpend,
		ActiveSubscriptions: active,
		PotentialSavings:    potentialSavings,
		ThisMonthSavings:    potentialSavings,
		UnusedSubscriptions: unused,
		AverageCostPerUse:   averageCostPerUse,
	}
}

// GroupSpendingByCategory buckets monthly cost per category, excluding
// to-cancel subscriptions. Rows appear in first-occurrence order.
func GroupSpendingByCategory(subs []models.Subscription) []models.SpendingByCategory {
	type bucket struct {
		amount float64
		count  int
	}
	buckets := make(map[models.SubscriptionCategory]*bucket)
	order := []models.SubscriptionCategory{}

	for _, sub := range subs {
		if sub.Status == models.StatusToCancel {
			continue
		}
		b, ok := buckets[sub.Category]
		if !ok {
			b = &bucket{}
			buckets[sub.Category] = b
			order = append(order, sub.Category)
		}
		b.amount += MonthlyCost(sub.Amount, sub.Frequency)
		b.count++
	}

	var total float64
	for _, b := range buckets {
		total += b.amount
	}

	out := make([]models.SpendingByCategory, 0, len(order))
	for _, cat := range order {
		b := buckets[cat]
		var pct float64
		if total > 0 {
			pct = b.amount / total * 100
		}
		out = append(out, models.SpendingByCategory{
			Category:   cat,
			Amount:     b.amount,
			Percentage: pct,
			Count:      b.count,
		})
	}
	return out
}

const costPerUseLimit = 5

// RankCostPerUse builds the "top offenders" ranking: non-to-cancel
// subscriptions sorted descending by cost per use, truncated to five
// entries. Zero usage is treated as one unit of full cost.
func RankCostPerUse(subs []models.Subscription) []models.CostPerUseAnalysis {
	out := []models.CostPerUseAnalysis{}
	for _, sub := range subs {
		if sub.Status == models.StatusToCancel {
			continue
		}
		monthly := MonthlyCost(sub.Amount, sub.Frequency)
		costPerUse := monthly
		if sub.UsageCount > 0 {
			costPerUse = monthly / float64(sub.UsageCount)
		}
		out = append(out, models.CostPerUseAnalysis{
			SubscriptionID: sub.ID,
			Name:           sub.Name,
			MonthlyAmount:  monthly,
			UsageCount:     sub.UsageCount,
			CostPerUse:     costPerUse,
			ValueRating:    rateValue(costPerUse),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CostPerUse > out[j].CostPerUse
	})
	if len(out) > costPerUseLimit {
		out = out[:costPerUseLimit]
	}
	return out
}

func rateValue(costPerUse float64) models.ValueRating {
	switch {
	case costPerUse <= 2:
		return models.RatingExcellent
	case costPerUse <= 5:
		return models.RatingGood
	case costPerUse <= 10:
		return models.RatingFair
	default:
		return models.RatingPoor
	}
}

// OpportunityCosts maps each unused subscription to what its monthly cost
// could buy instead, using the reference basket.
func OpportunityCosts(subs []models.Subscription) []models.OpportunityCost {
	out := []models.OpportunityCost{}
	for _, sub := range subs {
		if sub.Status != models.StatusUnused {
			continue
		}
		monthly := MonthlyCost(sub.Amount, sub.Frequency)
		out = append(out, models.OpportunityCost{
			SubscriptionID:   sub.ID,
			SubscriptionName: sub.Name,
			MonthlyAmount:    monthly,
			Equivalents:      basketEquivalents(monthly),
		})
	}
	return out
}

// MonthlyTrend buckets recurring and one-off transaction amounts into the
// six calendar months ending at now, oldest first.
func MonthlyTrend(txns []models.Transaction, now time.Time) []models.MonthlySpending {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	totals := make(map[string]float64)

	for _, txn := range txns {
		d, err := time.Parse("2006-01-02", txn.Date)
		if err != nil {
			continue
		}
		key := d.Format("2006-01")
		totals[key] += txn.Amount
	}

	out := make([]models.MonthlySpending, 0, 6)
	for i := 0; i < 6; i++ {
		m := start.AddDate(0, i, 0)
		out = append(out, models.MonthlySpending{
			Month:  m.Format("Jan"),
			Amount: totals[m.Format("2006-01")],
		})
	}
	return out
}

// demoMonthlySpending is the fallback trend for an empty ledger.
func demoMonthlySpending() []models.MonthlySpending {
	return []models.MonthlySpending{
		{Month: "Aug", Amount: 245.50},
		{Month: "Sep", Amount: 232.80},
		{Month: "Oct", Amount: 258.20},
		{Month: "Nov", Amount: 221.40},
		{Month: "Dec", Amount: 198.90},
		{Month: "Jan", Amount: 180.92},
	}
}
