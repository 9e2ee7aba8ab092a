package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/username/subveris/backend/src/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// DemoSubscriptions returns the demo dataset used when a backend starts
// empty and seeding is enabled. Identifiers are freshly generated.
func DemoSubscriptions() []models.Subscription {
	mk := func(name string, cat models.SubscriptionCategory, amount float64, next string,
		status models.SubscriptionStatus, usage int, lastUsed, desc string) models.Subscription {
		sub := models.Subscription{
			ID:              uuid.New().String(),
			Name:            name,
			Category:        cat,
			Amount:          amount,
			Currency:        "USD",
			Frequency:       models.FrequencyMonthly,
			NextBillingDate: next,
			Status:          status,
			UsageCount:      usage,
			Description:     strPtr(desc),
			IsDetected:      true,
		}
		if lastUsed != "" {
			sub.LastUsedDate = strPtr(lastUsed)
		}
		return sub
	}

	return []models.Subscription{
		mk("Netflix", models.CategoryStreaming, 15.99, "2024-02-15", models.StatusActive, 12, "2024-01-28", "Streaming service"),
		mk("Spotify Premium", models.CategoryStreaming, 10.99, "2024-02-10", models.StatusActive, 25, "2024-01-29", "Music streaming"),
		mk("Adobe Creative Cloud", models.CategorySoftware, 54.99, "2024-02-05", models.StatusActive, 3, "2024-01-15", "Design software suite"),
		mk("Planet Fitness", models.CategoryFitness, 24.99, "2024-02-01", models.StatusUnused, 1, "2024-01-02", "Gym membership"),
		mk("Dropbox Plus", models.CategoryCloudStorage, 11.99, "2024-02-20", models.StatusActive, 8, "2024-01-27", "Cloud storage"),
		mk("New York Times", models.CategoryNews, 17.00, "2024-02-08", models.StatusUnused, 2, "2024-01-10", "News subscription"),
		mk("Xbox Game Pass", models.CategoryGaming, 14.99, "2024-02-12", models.StatusActive, 15, "2024-01-29", "Gaming subscription"),
		mk("LinkedIn Premium", models.CategoryProductivity, 29.99, "2024-02-18", models.StatusToCancel, 0, "", "Professional networking"),
	}
}

// DemoInsights returns the seeded savings observations.
func DemoInsights() []models.Insight {
	now := time.Now().Format(time.RFC3339)
	return []models.Insight{
		{
			ID:               uuid.New().String(),
			Type:             "savings",
			Title:            "Cancel unused gym membership",
			Description:      "You've only used Planet Fitness once this month. Consider cancelling to save $24.99/mo.",
			PotentialSavings: floatPtr(24.99),
			Priority:         1,
			CreatedAt:        now,
		},
		{
			ID:               uuid.New().String(),
			Type:             "alternative",
			Title:            "Switch to Affinity Photo",
			Description:      "Affinity Photo offers similar features to Adobe Photoshop for a one-time payment of $69.99.",
			PotentialSavings: floatPtr(54.99),
			Priority:         2,
			CreatedAt:        now,
		},
		{
			ID:               uuid.New().String(),
			Type:             "tip",
			Title:            "Bundle your streaming services",
			Description:      "Consider Disney+ Bundle to get Hulu and ESPN+ included, potentially saving on separate subscriptions.",
			PotentialSavings: floatPtr(10.00),
			Priority:         3,
			CreatedAt:        now,
		},
	}
}

// DemoBankConnections returns the seeded simulated bank link.
func DemoBankConnections() []models.BankConnection {
	return []models.BankConnection{
		{
			ID:          uuid.New().String(),
			BankName:    "Chase Bank",
			AccountType: "checking",
			LastSync:    time.Now().Format(time.RFC3339),
			IsConnected: true,
			AccountMask: strPtr("4521"),
		},
	}
}

// DefaultUser returns the single seeded account. The password hash is
// empty until the user sets one through the account endpoints.
func DefaultUser(username string) models.User {
	return models.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
	}
}
