// Package analytics computes derived views over a snapshot of
// subscriptions: dashboard metrics, category breakdowns, cost-per-use
// rankings, opportunity costs and rule-based recommendations. Every view
// is a pure function of the snapshot; the Engine only adds the fetch.
package analytics

import "github.com/username/subveris/backend/src/models"

// MonthlyCost normalizes a billing amount to its per-month equivalent.
// Unknown frequencies fall through to the monthly case; this is a silent
// default, not a validation failure. The weekly factor is a flat 4, kept
// for compatibility with the reference behavior rather than the
// calendar-accurate 52/12.
func MonthlyCost(amount float64, frequency models.BillingFrequency) float64 {
	switch frequency {
	case models.FrequencyYearly:
		return amount / 12
	case models.FrequencyQuarterly:
		return amount / 3
	case models.FrequencyWeekly:
		return amount * 4
	default:
		return amount
	}
}
