// Package validation holds the pure payload rules for products, orders
// and users. Functions here have no side effects and never touch the
// store; catalog-level checks (does the product exist, what is its
// live price) belong to the order pipeline.
package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// Result reports the outcome of a validation pass. Errors holds
// human-readable, per-field messages suitable for form display.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func result(errs []string) Result {
	return Result{IsValid: len(errs) == 0, Errors: errs}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email matches the accepted format.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidURL reports whether raw parses as an absolute URL.
func IsValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

func trimmedLen(s string) int {
	return len(strings.TrimSpace(s))
}
