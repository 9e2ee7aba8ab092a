package models

// DashboardMetrics is the headline summary shown on the dashboard.
// ThisMonthSavings mirrors PotentialSavings: it is the amount that would
// be saved if the flagged subscriptions were acted on, not realized
// savings.
type DashboardMetrics struct {
	TotalMonthlySpend   float64 `json:"totalMonthlySpend"`
	ActiveSubscriptions int     `json:"activeSubscriptions"`
	PotentialSavings    float64 `json:"potentialSavings"`
	ThisMonthSavings    float64 `json:"thisMonthSavings"`
	UnusedSubscriptions int     `json:"unusedSubscriptions"`
	AverageCostPerUse   float64 `json:"averageCostPerUse"`
}

// SpendingByCategory is one row of the category breakdown. Row order is
// first-occurrence order of the category in the subscription listing;
// callers must not depend on it.
type SpendingByCategory struct {
	Category   SubscriptionCategory `json:"category"`
	Amount     float64              `json:"amount"`
	Percentage float64              `json:"percentage"`
	Count      int                  `json:"count"`
}

// MonthlySpending is one point of the historical spending trend.
type MonthlySpending struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// ValueRating is a four-tier qualitative label derived from cost-per-use.
type ValueRating string

const (
	RatingExcellent ValueRating = "excellent"
	RatingGood      ValueRating = "good"
	RatingFair      ValueRating = "fair"
	RatingPoor      ValueRating = "poor"
)

// CostPerUseAnalysis is one row of the "worst value first" ranking.
type CostPerUseAnalysis struct {
	SubscriptionID string      `json:"subscriptionId"`
	Name           string      `json:"name"`
	MonthlyAmount  float64     `json:"monthlyAmount"`
	UsageCount     int         `json:"usageCount"`
	CostPerUse     float64     `json:"costPerUse"`
	ValueRating    ValueRating `json:"valueRating"`
}

// Equivalent is a count of reference-priced items a subscription's monthly
// cost could buy instead.
type Equivalent struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
	Icon  string `json:"icon"`
}

// OpportunityCost is the behavioral view of one unused subscription.
type OpportunityCost struct {
	SubscriptionID   string       `json:"subscriptionId"`
	SubscriptionName string       `json:"subscriptionName"`
	MonthlyAmount    float64      `json:"monthlyAmount"`
	Equivalents      []Equivalent `json:"equivalents"`
}

// Recommendation is a rule-derived piece of savings advice. IDs are
// derived deterministically from (type, subscriptionId), so logically
// identical advice keeps the same identifier across calls.
type Recommendation struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"` // "alternative" | "cancel" | "negotiate" | "downgrade"
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	CurrentCost     float64 `json:"currentCost"`
	SuggestedCost   float64 `json:"suggestedCost"`
	Savings         float64 `json:"savings"`
	SubscriptionID  string  `json:"subscriptionId"`
	AlternativeName string  `json:"alternativeName,omitempty"`
	Confidence      float64 `json:"confidence"`
}
