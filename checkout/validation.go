package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

// Contact is the shopper data collected on the checkout form.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateContact returns per-field error messages, empty when the contact is
// acceptable. phoneDigits is the exact digit count required (11 for NG numbers).
func ValidateContact(c Contact, phoneDigits int) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(c.Name) == "" {
		fields["name"] = "Name is required"
	}

	if strings.TrimSpace(c.Email) == "" {
		fields["email"] = "Email is required"
	} else if !emailPattern.MatchString(c.Email) {
		fields["email"] = "Invalid email address"
	}

	if strings.TrimSpace(c.Phone) == "" {
		fields["phone"] = "Phone number is required"
	} else if !isDigits(c.Phone) || len(c.Phone) != phoneDigits {
		fields["phone"] = fmt.Sprintf("Phone number must be exactly %d digits", phoneDigits)
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ValidationError carries field-scoped messages back to the form. No attempt
// is created when this is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: invalid contact data (%d fields)", len(e.Fields))
}
