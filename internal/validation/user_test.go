package validation

import (
	"strings"
	"testing"
)

func TestValidateUserFullMode(t *testing.T) {
	result := ValidateUser(UserPayload{
		Name:     strPtr("Sam Rivera"),
		Email:    strPtr("sam@example.com"),
		Password: strPtr("hunter22"),
	}, false)
	if !result.IsValid {
		t.Fatalf("expected valid user, got %v", result.Errors)
	}
}

func TestValidateUserFullModeRequirements(t *testing.T) {
	tests := []struct {
		name    string
		payload UserPayload
		message string
	}{
		{"missing name", UserPayload{Email: strPtr("a@b.co"), Password: strPtr("secret1")}, "Name is required and must be at least 2 characters"},
		{"short name", UserPayload{Name: strPtr("S"), Email: strPtr("a@b.co"), Password: strPtr("secret1")}, "Name is required and must be at least 2 characters"},
		{"missing email", UserPayload{Name: strPtr("Sam"), Password: strPtr("secret1")}, "Valid email address is required"},
		{"bad email", UserPayload{Name: strPtr("Sam"), Email: strPtr("not-an-email"), Password: strPtr("secret1")}, "Valid email address is required"},
		{"short password", UserPayload{Name: strPtr("Sam"), Email: strPtr("a@b.co"), Password: strPtr("12345")}, "Password must be at least 6 characters long"},
	}

	for _, tc := range tests {
		result := ValidateUser(tc.payload, false)
		if !containsError(result.Errors, tc.message) {
			t.Fatalf("%s: expected %q in %v", tc.name, tc.message, result.Errors)
		}
	}
}

func TestValidateUserPartialModeOnlyChecksPresentFields(t *testing.T) {
	if result := ValidateUser(UserPayload{}, true); !result.IsValid {
		t.Fatalf("empty partial payload should be valid, got %v", result.Errors)
	}

	result := ValidateUser(UserPayload{Name: strPtr("S")}, true)
	if !containsError(result.Errors, "Name must be at least 2 characters") {
		t.Fatalf("got %v", result.Errors)
	}
}

func TestValidateUserNameCap(t *testing.T) {
	result := ValidateUser(UserPayload{Name: strPtr(strings.Repeat("n", 51))}, true)
	if !containsError(result.Errors, "Name must be less than 50 characters") {
		t.Fatalf("got %v", result.Errors)
	}
}

func TestValidateUserPhoneRule(t *testing.T) {
	result := ValidateUser(UserPayload{Phone: strPtr("12345")}, true)
	if !containsError(result.Errors, "Phone number must be at least 10 characters") {
		t.Fatalf("got %v", result.Errors)
	}

	// Empty phone means "clear the field" and is allowed.
	if result := ValidateUser(UserPayload{Phone: strPtr("")}, true); !result.IsValid {
		t.Fatalf("empty phone should be valid, got %v", result.Errors)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@sub.domain.org", "user+tag@example.com"}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}

	invalid := []string{"", "plain", "missing@tld", "two@@example.com", "spaces in@example.com"}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}

func TestIsValidURL(t *testing.T) {
	if !IsValidURL("https://cdn.example.com/img.jpg") {
		t.Fatal("expected absolute https URL to be valid")
	}
	if IsValidURL("/relative/path.jpg") {
		t.Fatal("expected relative path to be invalid")
	}
	if IsValidURL("not a url") {
		t.Fatal("expected plain text to be invalid")
	}
}
