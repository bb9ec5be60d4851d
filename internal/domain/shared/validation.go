package shared

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxKeyLength is the width of every client supplied primary key
const MaxKeyLength = 10

// ValidateKey checks a client supplied primary key
func ValidateKey(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewFieldError(field, "This field is required.")
	}
	if utf8.RuneCountInString(id) > MaxKeyLength {
		return NewFieldError(field, fmt.Sprintf("Ensure this field has no more than %d characters.", MaxKeyLength))
	}
	return nil
}

// ValidateText records length and blank violations for a text field
func ValidateText(fe *FieldErrors, field, value string, maxLen int, required bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			fe.Add(field, "This field may not be blank.")
		}
		return
	}
	if utf8.RuneCountInString(value) > maxLen {
		fe.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxLen))
	}
}
