package analytics

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/username/subveris/backend/src/models"
)

// recommendationNamespace seeds the deterministic recommendation ids.
// Deriving the id from (type, subscriptionId) keeps logically identical
// advice stable across calls, so clients can dedup or dismiss by id.
var recommendationNamespace = uuid.MustParse("9f2c1a52-7b8e-4d11-a640-3f5a0c77d2b4")

func recommendationID(recType, subscriptionID string) string {
	return uuid.NewSHA1(recommendationNamespace, []byte(recType+":"+subscriptionID)).String()
}

const (
	streamingRotationPrice     = 15.99
	streamingRotationThreshold = 25
)

// BuildRecommendations evaluates the rule set over a subscription
// snapshot. Rules are independent and may overlap.
func BuildRecommendations(subs []models.Subscription) []models.Recommendation {
	recs := []models.Recommendation{}

	// Rule 1: any subscription whose name contains "adobe" gets a
	// zero-cost substitute suggestion.
	for _, sub := range subs {
		if !strings.Contains(strings.ToLower(sub.Name), "adobe") {
			continue
		}
		monthly := MonthlyCost(sub.Amount, sub.Frequency)
		recs = append(recs, models.Recommendation{
			ID:              recommendationID("alternative", sub.ID),
			Type:            "alternative",
			Title:           "Switch from Adobe to Affinity",
			Description:     "Affinity offers similar professional design tools with a one-time purchase instead of monthly fees.",
			CurrentCost:     monthly,
			SuggestedCost:   0,
			Savings:         monthly,
			SubscriptionID:  sub.ID,
			AlternativeName: "Affinity Suite",
			Confidence:      0.85,
		})
		break
	}

	// Rule 2: every unused subscription gets a cancel suggestion.
	for _, sub := range subs {
		if sub.Status != models.StatusUnused {
			continue
		}
		monthly := MonthlyCost(sub.Amount, sub.Frequency)
		recs = append(recs, models.Recommendation{
			ID:             recommendationID("cancel", sub.ID),
			Type:           "cancel",
			Title:          fmt.Sprintf("Cancel %s", sub.Name),
			Description:    fmt.Sprintf("You've barely used %s this month. Consider cancelling to save money.", sub.Name),
			CurrentCost:    monthly,
			SuggestedCost:  0,
			Savings:        monthly,
			SubscriptionID: sub.ID,
			Confidence:     0.92,
		})
	}

	// Rule 3: two or more active streaming subscriptions whose combined
	// monthly cost exceeds the threshold get a rotation suggestion,
	// referencing the first streaming subscription found.
	var streaming []models.Subscription
	var combined float64
	for _, sub := range subs {
		if sub.Category == models.CategoryStreaming && sub.Status == models.StatusActive {
			streaming = append(streaming, sub)
			combined += MonthlyCost(sub.Amount, sub.Frequency)
		}
	}
	if len(streaming) > 1 && combined > streamingRotationThreshold {
		recs = append(recs, models.Recommendation{
			ID:             recommendationID("negotiate", streaming[0].ID),
			Type:           "negotiate",
			Title:          "Rotate streaming services",
			Description:    "Consider subscribing to one streaming service at a time and rotating monthly based on what you want to watch.",
			CurrentCost:    combined,
			SuggestedCost:  streamingRotationPrice,
			Savings:        combined - streamingRotationPrice,
			SubscriptionID: streaming[0].ID,
			Confidence:     0.78,
		})
	}

	return recs
}
