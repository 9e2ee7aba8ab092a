package models

// Insight is a system-surfaced observation about spending. The
// subscriptionId is a weak reference: lookup only, no referential
// integrity.
type Insight struct {
	ID               string   `json:"id"`
	Type             string   `json:"type"` // "savings" | "alternative" | "warning" | "tip"
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	PotentialSavings *float64 `json:"potentialSavings"`
	SubscriptionID   *string  `json:"subscriptionId"`
	Priority         int      `json:"priority"` // 1 = high, 2 = medium, 3 = low
	IsRead           bool     `json:"isRead"`
	CreatedAt        string   `json:"createdAt"`
}

// InsertInsight carries the fields of a new insight before the server
// assigns an identifier.
type InsertInsight struct {
	Type             string   `json:"type"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	PotentialSavings *float64 `json:"potentialSavings"`
	SubscriptionID   *string  `json:"subscriptionId"`
	Priority         int      `json:"priority"`
	IsRead           bool     `json:"isRead"`
	CreatedAt        string   `json:"createdAt"`
}
