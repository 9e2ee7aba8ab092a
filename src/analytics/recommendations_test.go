package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/subveris/backend/src/models"
)

func findRec(recs []models.Recommendation, recType string) (models.Recommendation, bool) {
	for _, rec := range recs {
		if rec.Type == recType {
			return rec, true
		}
	}
	return models.Recommendation{}, false
}

func TestBuildRecommendationsAdobeAlternative(t *testing.T) {
	subs := []models.Subscription{
		sub("Adobe Creative Cloud", models.CategorySoftware, 54.99, models.FrequencyMonthly, models.StatusActive, 3),
	}

	recs := BuildRecommendations(subs)

	rec, ok := findRec(recs, "alternative")
	require.True(t, ok)
	assert.Equal(t, "Adobe Creative Cloud", rec.SubscriptionID)
	assert.InDelta(t, 54.99, rec.CurrentCost, 1e-9)
	assert.Zero(t, rec.SuggestedCost)
	assert.InDelta(t, 54.99, rec.Savings, 1e-9)
	assert.Equal(t, "Affinity Suite", rec.AlternativeName)
	assert.InDelta(t, 0.85, rec.Confidence, 1e-9)
}

func TestBuildRecommendationsAdobeMatchesOnce(t *testing.T) {
	subs := []models.Subscription{
		sub("Adobe Creative Cloud", models.CategorySoftware, 54.99, models.FrequencyMonthly, models.StatusActive, 3),
		sub("Adobe Lightroom", models.CategorySoftware, 9.99, models.FrequencyMonthly, models.StatusActive, 1),
	}

	recs := BuildRecommendations(subs)

	var alternatives int
	for _, rec := range recs {
		if rec.Type == "alternative" {
			alternatives++
		}
	}
	assert.Equal(t, 1, alternatives)
	rec, _ := findRec(recs, "alternative")
	assert.Equal(t, "Adobe Creative Cloud", rec.SubscriptionID)
}

func TestBuildRecommendationsCancelUnused(t *testing.T) {
	subs := []models.Subscription{
		sub("Gym", models.CategoryFitness, 24.99, models.FrequencyMonthly, models.StatusUnused, 1),
		sub("Netflix", models.CategoryStreaming, 15.99, models.FrequencyMonthly, models.StatusActive, 12),
	}

	recs := BuildRecommendations(subs)

	rec, ok := findRec(recs, "cancel")
	require.True(t, ok)
	assert.Equal(t, "Gym", rec.SubscriptionID)
	assert.Equal(t, "Cancel Gym", rec.Title)
	assert.InDelta(t, 24.99, rec.Savings, 1e-9)
	assert.InDelta(t, 0.92, rec.Confidence, 1e-9)
}

func TestBuildRecommendationsStreamingRotation(t *testing.T) {
	subs := []models.Subscription{
		sub("Netflix", models.CategoryStreaming, 15.99, models.FrequencyMonthly, models.StatusActive, 12),
		sub("Spotify Premium", models.CategoryStreaming, 10.99, models.FrequencyMonthly, models.StatusActive, 25),
	}

	recs := BuildRecommendations(subs)

	rec, ok := findRec(recs, "negotiate")
	require.True(t, ok)
	// References the first streaming subscription in listing order.
	assert.Equal(t, "Netflix", rec.SubscriptionID)
	assert.InDelta(t, 26.98, rec.CurrentCost, 1e-9)
	assert.InDelta(t, 15.99, rec.SuggestedCost, 1e-9)
	assert.InDelta(t, 10.99, rec.Savings, 1e-9)
	assert.InDelta(t, 0.78, rec.Confidence, 1e-9)
}

func TestBuildRecommendationsStreamingBelowThreshold(t *testing.T) {
	subs := []models.Subscription{
		sub("Netflix", models.CategoryStreaming, 10, models.FrequencyMonthly, models.StatusActive, 12),
		sub("Hulu", models.CategoryStreaming, 10, models.FrequencyMonthly, models.StatusActive, 5),
	}

	_, ok := findRec(BuildRecommendations(subs), "negotiate")
	assert.False(t, ok)
}

func TestBuildRecommendationsStreamingIgnoresInactive(t *testing.T) {
	subs := []models.Subscription{
		sub("Netflix", models.CategoryStreaming, 20, models.FrequencyMonthly, models.StatusActive, 12),
		sub("Hulu", models.CategoryStreaming, 20, models.FrequencyMonthly, models.StatusToCancel, 0),
	}

	// Only one active streaming subscription, so no rotation advice.
	_, ok := findRec(BuildRecommendations(subs), "negotiate")
	assert.False(t, ok)
}

func TestBuildRecommendationsEmpty(t *testing.T) {
	assert.Empty(t, BuildRecommendations(nil))
}

func TestRecommendationIDsDeterministic(t *testing.T) {
	subs := []models.Subscription{
		sub("Gym", models.CategoryFitness, 24.99, models.FrequencyMonthly, models.StatusUnused, 1),
	}

	first := BuildRecommendations(subs)
	second := BuildRecommendations(subs)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.NotEmpty(t, first[0].ID)
}
