package models

// SubscriptionStatus is the lifecycle state of a subscription. There is no
// enforced transition graph: any state is reachable from any other via an
// explicit user action.
type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusUnused   SubscriptionStatus = "unused"
	StatusToCancel SubscriptionStatus = "to-cancel"
)

// IsValid returns true if the status is one of the three known values.
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusUnused, StatusToCancel:
		return true
	default:
		return false
	}
}

// SubscriptionCategory classifies what kind of service a subscription is.
type SubscriptionCategory string

const (
	CategoryStreaming    SubscriptionCategory = "streaming"
	CategorySoftware     SubscriptionCategory = "software"
	CategoryFitness      SubscriptionCategory = "fitness"
	CategoryCloudStorage SubscriptionCategory = "cloud-storage"
	CategoryNews         SubscriptionCategory = "news"
	CategoryGaming       SubscriptionCategory = "gaming"
	CategoryProductivity SubscriptionCategory = "productivity"
	CategoryFinance      SubscriptionCategory = "finance"
	CategoryEducation    SubscriptionCategory = "education"
	CategoryOther        SubscriptionCategory = "other"
)

// IsValid returns true if the category is a known value.
func (c SubscriptionCategory) IsValid() bool {
	switch c {
	case CategoryStreaming, CategorySoftware, CategoryFitness, CategoryCloudStorage,
		CategoryNews, CategoryGaming, CategoryProductivity, CategoryFinance,
		CategoryEducation, CategoryOther:
		return true
	default:
		return false
	}
}

// BillingFrequency is how often a subscription bills.
type BillingFrequency string

const (
	FrequencyWeekly    BillingFrequency = "weekly"
	FrequencyMonthly   BillingFrequency = "monthly"
	FrequencyQuarterly BillingFrequency = "quarterly"
	FrequencyYearly    BillingFrequency = "yearly"
)

// IsValid returns true if the frequency is a known value.
func (f BillingFrequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// Subscription is a recurring payment obligation tracked by the user.
// Dates are stored as "YYYY-MM-DD" strings, timestamps as RFC3339.
type Subscription struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Category        SubscriptionCategory `json:"category"`
	Amount          float64              `json:"amount"`
	Currency        string               `json:"currency"`
	Frequency       BillingFrequency     `json:"frequency"`
	NextBillingDate string               `json:"nextBillingDate"`
	Status          SubscriptionStatus   `json:"status"`
	UsageCount      int                  `json:"usageCount"`
	LastUsedDate    *string              `json:"lastUsedDate"`
	LogoURL         *string              `json:"logoUrl"`
	Description     *string              `json:"description"`
	IsDetected      bool                 `json:"isDetected"`
}

// InsertSubscription carries the client-supplied fields of a new
// subscription. The server assigns the identifier and fills defaults.
type InsertSubscription struct {
	Name            string               `json:"name"`
	Category        SubscriptionCategory `json:"category"`
	Amount          float64              `json:"amount"`
	Currency        string               `json:"currency"`
	Frequency       BillingFrequency     `json:"frequency"`
	NextBillingDate string               `json:"nextBillingDate"`
	Status          SubscriptionStatus   `json:"status"`
	UsageCount      int                  `json:"usageCount"`
	LastUsedDate    *string              `json:"lastUsedDate"`
	LogoURL         *string              `json:"logoUrl"`
	Description     *string              `json:"description"`
	IsDetected      bool                 `json:"isDetected"`
}
