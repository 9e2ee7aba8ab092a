package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig carries the wiring the router needs beyond the handlers
// themselves.
type RouterConfig struct {
	FrontendBaseURL   string
	RateLimitInterval time.Duration
	RateLimitBurst    int
}

// NewRouter assembles the full API surface. All dependencies are passed
// in explicitly; nothing here reads global state.
func NewRouter(
	cfg RouterConfig,
	subscriptions *SubscriptionHandler,
	analytics *AnalyticsHandler,
	insights *InsightHandler,
	bank *BankHandler,
	account *AccountHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(ContextualLoggerMiddleware)
	r.Use(CORSMiddleware(cfg.FrontendBaseURL))
	r.Use(RateLimitMiddleware(cfg.RateLimitInterval, cfg.RateLimitBurst))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		sendJSON(w, http.StatusOK, map[string]string{"message": "Subveris backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/metrics", analytics.Metrics)

		r.Get("/subscriptions", subscriptions.List)
		r.Post("/subscriptions", subscriptions.Create)
		r.Get("/subscriptions/{id}", subscriptions.Get)
		r.Patch("/subscriptions/{id}/status", subscriptions.UpdateStatus)
		r.Patch("/subscriptions/{id}/usage", subscriptions.UpdateUsage)
		r.Post("/subscriptions/{id}/log-usage", subscriptions.LogUsage)
		r.Delete("/subscriptions/{id}", subscriptions.Delete)

		r.Get("/spending/monthly", analytics.MonthlySpending)
		r.Get("/spending/category", analytics.SpendingByCategory)
		r.Get("/analysis/cost-per-use", analytics.CostPerUse)
		r.Get("/insights/behavioral", analytics.BehavioralInsights)
		r.Get("/recommendations", analytics.Recommendations)

		r.Get("/insights", insights.List)
		r.Post("/insights", insights.Create)

		r.Get("/bank-connections", bank.ListConnections)
		r.Post("/bank-connections", bank.CreateConnection)
		r.Patch("/bank-connections/{id}/sync", bank.SyncConnection)
		r.Delete("/bank-connections/{id}", bank.DeleteConnection)

		r.Get("/transactions", bank.ListTransactions)
		r.Post("/transactions", bank.CreateTransaction)

		r.Patch("/account/email", account.UpdateEmail)
		r.Patch("/account/password", account.UpdatePassword)
		r.Get("/account/2fa/setup", account.Setup2FA)
		r.Post("/account/2fa", account.Enable2FA)
		r.Get("/account/export", account.Export)
		r.Delete("/account", account.Delete)
	})

	return r
}
