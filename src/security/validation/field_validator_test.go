// backend/src/security/validation/field_validator_test.go
package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/subveris/backend/src/models"
)

func validSubscriptionInsert() models.InsertSubscription {
	return models.InsertSubscription{
		Name:            "Netflix",
		Category:        models.CategoryStreaming,
		Amount:          15.99,
		Currency:        "USD",
		Frequency:       models.FrequencyMonthly,
		NextBillingDate: "2024-02-15",
	}
}

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestCheckSubscriptionValid(t *testing.T) {
	assert.Empty(t, CheckSubscription(validSubscriptionInsert()))
}

func TestCheckSubscription(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*models.InsertSubscription)
		badField string
	}{
		{"empty name", func(ins *models.InsertSubscription) { ins.Name = "  " }, "name"},
		{"name too long", func(ins *models.InsertSubscription) { ins.Name = strings.Repeat("a", MaxNameLength+1) }, "name"},
		{"unknown category", func(ins *models.InsertSubscription) { ins.Category = "groceries" }, "category"},
		{"zero amount", func(ins *models.InsertSubscription) { ins.Amount = 0 }, "amount"},
		{"negative amount", func(ins *models.InsertSubscription) { ins.Amount = -5 }, "amount"},
		{"bad currency", func(ins *models.InsertSubscription) { ins.Currency = "DOLLARS" }, "currency"},
		{"unknown frequency", func(ins *models.InsertSubscription) { ins.Frequency = "daily" }, "frequency"},
		{"missing billing date", func(ins *models.InsertSubscription) { ins.NextBillingDate = "" }, "nextBillingDate"},
		{"malformed billing date", func(ins *models.InsertSubscription) { ins.NextBillingDate = "15/02/2024" }, "nextBillingDate"},
		{"unknown status", func(ins *models.InsertSubscription) { ins.Status = "paused" }, "status"},
		{"negative usage", func(ins *models.InsertSubscription) { ins.UsageCount = -1 }, "usageCount"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ins := validSubscriptionInsert()
			tc.mutate(&ins)
			errs := CheckSubscription(ins)
			require.Len(t, errs, 1)
			assert.Equal(t, tc.badField, errs[0].Field)
		})
	}
}

func TestCheckSubscriptionOptionalFieldsSkipped(t *testing.T) {
	ins := validSubscriptionInsert()
	ins.Currency = ""
	ins.Status = ""
	assert.Empty(t, CheckSubscription(ins))
}

func TestCheckSubscriptionReportsAllViolations(t *testing.T) {
	errs := CheckSubscription(models.InsertSubscription{})
	got := fields(errs)
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "category")
	assert.Contains(t, got, "amount")
	assert.Contains(t, got, "frequency")
	assert.Contains(t, got, "nextBillingDate")
}

func TestCheckBankConnection(t *testing.T) {
	errs := CheckBankConnection(models.InsertBankConnection{
		BankName:    "Chase Bank",
		AccountType: "checking",
	})
	assert.Empty(t, errs)

	errs = CheckBankConnection(models.InsertBankConnection{AccountType: "offshore"})
	got := fields(errs)
	assert.Contains(t, got, "bankName")
	assert.Contains(t, got, "accountType")

	badMask := "12345"
	errs = CheckBankConnection(models.InsertBankConnection{
		BankName:    "Chase Bank",
		AccountType: "savings",
		AccountMask: &badMask,
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "accountMask", errs[0].Field)
}

func TestCheckTransaction(t *testing.T) {
	errs := CheckTransaction(models.InsertTransaction{
		Description: "Netflix charge",
		Amount:      15.99,
		Date:        "2024-01-15",
	})
	assert.Empty(t, errs)

	errs = CheckTransaction(models.InsertTransaction{Date: "yesterday"})
	got := fields(errs)
	assert.Contains(t, got, "description")
	assert.Contains(t, got, "amount")
	assert.Contains(t, got, "date")
}

func TestValidateDateString(t *testing.T) {
	assert.NoError(t, ValidateDateString("2024-02-15", "date"))
	assert.ErrorIs(t, ValidateDateString("2024-2-15", "date"), ErrValidationFailed)
	assert.ErrorIs(t, ValidateDateString("not-a-date", "date"), ErrValidationFailed)
}
