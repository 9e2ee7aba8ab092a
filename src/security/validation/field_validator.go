// backend/src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/username/subveris/backend/src/models"
)

// ErrValidationFailed is wrapped by every field-level validation error.
var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1024
	MaxCurrencyCodeLen   = 3
	dateLayout           = "2006-01-02"
)

// FieldError is one field-level violation, returned to clients as the
// `details` array of a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateDateString checks the YYYY-MM-DD wire format.
func ValidateDateString(s, fieldName string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%w: %s ('%s') is not a valid YYYY-MM-DD date", ErrValidationFailed, fieldName, s)
	}
	return nil
}

// CheckSubscription validates the shape of a subscription insert and
// returns every violation found, not just the first.
func CheckSubscription(ins models.InsertSubscription) []FieldError {
	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(ins.Name) == "" {
		add("name", "name is required")
	} else if utf8.RuneCountInString(ins.Name) > MaxNameLength {
		add("name", fmt.Sprintf("name exceeds maximum length of %d characters", MaxNameLength))
	}
	if !ins.Category.IsValid() {
		add("category", fmt.Sprintf("unknown category '%s'", ins.Category))
	}
	if ins.Amount <= 0 {
		add("amount", "amount must be positive")
	}
	if ins.Currency != "" && utf8.RuneCountInString(ins.Currency) != MaxCurrencyCodeLen {
		add("currency", "currency must be a 3-letter ISO code")
	}
	if !ins.Frequency.IsValid() {
		add("frequency", fmt.Sprintf("unknown frequency '%s'", ins.Frequency))
	}
	if ins.NextBillingDate == "" {
		add("nextBillingDate", "nextBillingDate is required")
	} else if err := ValidateDateString(ins.NextBillingDate, "nextBillingDate"); err != nil {
		add("nextBillingDate", "nextBillingDate is not a valid YYYY-MM-DD date")
	}
	if ins.Status != "" && !ins.Status.IsValid() {
		add("status", fmt.Sprintf("unknown status '%s'", ins.Status))
	}
	if ins.UsageCount < 0 {
		add("usageCount", "usageCount must not be negative")
	}
	if ins.Description != nil && utf8.RuneCountInString(*ins.Description) > MaxDescriptionLength {
		add("description", fmt.Sprintf("description exceeds maximum length of %d characters", MaxDescriptionLength))
	}
	return errs
}

// CheckBankConnection validates the shape of a bank connection insert.
func CheckBankConnection(ins models.InsertBankConnection) []FieldError {
	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(ins.BankName) == "" {
		add("bankName", "bankName is required")
	} else if utf8.RuneCountInString(ins.BankName) > MaxNameLength {
		add("bankName", fmt.Sprintf("bankName exceeds maximum length of %d characters", MaxNameLength))
	}
	if !models.ValidAccountType(ins.AccountType) {
		add("accountType", fmt.Sprintf("unknown account type '%s'", ins.AccountType))
	}
	if ins.AccountMask != nil && len(*ins.AccountMask) != 4 {
		add("accountMask", "accountMask must be the last 4 digits")
	}
	return errs
}

// CheckTransaction validates the shape of a transaction insert.
func CheckTransaction(ins models.InsertTransaction) []FieldError {
	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(ins.Description) == "" {
		add("description", "description is required")
	}
	if ins.Amount <= 0 {
		add("amount", "amount must be positive")
	}
	if ins.Date == "" {
		add("date", "date is required")
	} else if err := ValidateDateString(ins.Date, "date"); err != nil {
		add("date", "date is not a valid YYYY-MM-DD date")
	}
	return errs
}
