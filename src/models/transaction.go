package models

// Transaction is a simulated bank-ledger line item, weakly linked to a
// subscription by identifier. Transactions are created and read only;
// there is no update or delete path.
type Transaction struct {
	ID             string  `json:"id"`
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	Date           string  `json:"date"` // "YYYY-MM-DD"
	Category       *string `json:"category"`
	IsRecurring    bool    `json:"isRecurring"`
	MerchantName   *string `json:"merchantName"`
	SubscriptionID *string `json:"subscriptionId"`
}

// InsertTransaction carries the fields of a new transaction.
type InsertTransaction struct {
	Description    string  `json:"description"`
	Amount         float64 `json:"amount"`
	Date           string  `json:"date"`
	Category       *string `json:"category"`
	IsRecurring    bool    `json:"isRecurring"`
	MerchantName   *string `json:"merchantName"`
	SubscriptionID *string `json:"subscriptionId"`
}
