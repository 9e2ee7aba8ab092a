package models

// BankConnection is a simulated linked external account.
type BankConnection struct {
	ID          string  `json:"id"`
	BankName    string  `json:"bankName"`
	AccountType string  `json:"accountType"` // "checking" | "savings" | "credit"
	LastSync    string  `json:"lastSync"`    // RFC3339 timestamp
	IsConnected bool    `json:"isConnected"`
	AccountMask *string `json:"accountMask"` // Last 4 digits
}

// InsertBankConnection carries the fields of a new bank connection.
type InsertBankConnection struct {
	BankName    string  `json:"bankName"`
	AccountType string  `json:"accountType"`
	LastSync    string  `json:"lastSync"`
	IsConnected *bool   `json:"isConnected"`
	AccountMask *string `json:"accountMask"`
}

// ValidAccountType returns true for the three supported account types.
func ValidAccountType(t string) bool {
	switch t {
	case "checking", "savings", "credit":
		return true
	default:
		return false
	}
}
