package validation

import (
	"strings"
	"testing"
)

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func slicePtr(s []string) *[]string { return &s }

func validProductPayload() ProductPayload {
	return ProductPayload{
		Name:     strPtr("Classic Tee"),
		Price:    floatPtr(29.99),
		Category: strPtr("t-shirts"),
		Image:    strPtr("https://cdn.example.com/tee.jpg"),
	}
}

func TestValidateProductAcceptsCompletePayload(t *testing.T) {
	result := ValidateProduct(validProductPayload(), false)
	if !result.IsValid {
		t.Fatalf("expected valid payload, got errors: %v", result.Errors)
	}
}

func TestValidateProductRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProductPayload)
		message string
	}{
		{"missing name", func(p *ProductPayload) { p.Name = nil }, "name is required"},
		{"blank name", func(p *ProductPayload) { p.Name = strPtr("   ") }, "name is required"},
		{"missing price", func(p *ProductPayload) { p.Price = nil }, "price is required"},
		{"missing category", func(p *ProductPayload) { p.Category = nil }, "category is required"},
		{"missing image", func(p *ProductPayload) { p.Image = nil }, "image is required"},
	}

	for _, tc := range tests {
		payload := validProductPayload()
		tc.mutate(&payload)

		result := ValidateProduct(payload, false)
		if result.IsValid {
			t.Fatalf("%s: expected invalid", tc.name)
		}
		if !containsError(result.Errors, tc.message) {
			t.Fatalf("%s: expected %q in %v", tc.name, tc.message, result.Errors)
		}
	}
}

func TestValidateProductPartialSkipsRequiredChecks(t *testing.T) {
	result := ValidateProduct(ProductPayload{}, true)
	if !result.IsValid {
		t.Fatalf("empty partial payload should be valid, got %v", result.Errors)
	}
}

func TestValidateProductNameLength(t *testing.T) {
	payload := validProductPayload()

	payload.Name = strPtr("A")
	result := ValidateProduct(payload, false)
	if !containsError(result.Errors, "Product name must be at least 2 characters long") {
		t.Fatalf("1-char name: got %v", result.Errors)
	}

	payload.Name = strPtr(strings.Repeat("a", 100))
	if result := ValidateProduct(payload, false); !result.IsValid {
		t.Fatalf("100-char name should pass, got %v", result.Errors)
	}

	payload.Name = strPtr(strings.Repeat("a", 101))
	result = ValidateProduct(payload, false)
	if !containsError(result.Errors, "Product name must be less than 100 characters") {
		t.Fatalf("101-char name: got %v", result.Errors)
	}
}

func TestValidateProductPriceRange(t *testing.T) {
	payload := validProductPayload()

	payload.Price = floatPtr(0)
	result := ValidateProduct(payload, false)
	if !containsError(result.Errors, "Price must be a positive number") {
		t.Fatalf("zero price: got %v", result.Errors)
	}

	payload.Price = floatPtr(0.01)
	if result := ValidateProduct(payload, false); !result.IsValid {
		t.Fatalf("0.01 price should pass, got %v", result.Errors)
	}

	payload.Price = floatPtr(10000)
	if result := ValidateProduct(payload, false); !result.IsValid {
		t.Fatalf("10000 price should pass, got %v", result.Errors)
	}

	payload.Price = floatPtr(10000.01)
	result = ValidateProduct(payload, false)
	if !containsError(result.Errors, "Price must be less than $10,000") {
		t.Fatalf("10000.01 price: got %v", result.Errors)
	}
}

func TestValidateProductCategoryEnum(t *testing.T) {
	payload := validProductPayload()
	payload.Category = strPtr("electronics")

	result := ValidateProduct(payload, false)
	if result.IsValid {
		t.Fatal("unknown category should be rejected")
	}
	if !containsError(result.Errors, "Category must be one of: t-shirts, pants, sweatshirts, accessories, shoes") {
		t.Fatalf("got %v", result.Errors)
	}

	for _, category := range []string{"t-shirts", "pants", "sweatshirts", "accessories", "shoes"} {
		payload.Category = strPtr(category)
		if result := ValidateProduct(payload, false); !result.IsValid {
			t.Fatalf("category %q should pass, got %v", category, result.Errors)
		}
	}
}

func TestValidateProductImageURL(t *testing.T) {
	payload := validProductPayload()
	payload.Image = strPtr("not-a-url")

	result := ValidateProduct(payload, false)
	if !containsError(result.Errors, "Image must be a valid URL") {
		t.Fatalf("got %v", result.Errors)
	}
}

func TestValidateProductVariantArrays(t *testing.T) {
	payload := validProductPayload()
	payload.Colors = slicePtr([]string{})
	payload.Sizes = slicePtr([]string{})

	result := ValidateProduct(payload, false)
	if !containsError(result.Errors, "Colors must be a non-empty array") {
		t.Fatalf("empty colors: got %v", result.Errors)
	}
	if !containsError(result.Errors, "Sizes must be a non-empty array") {
		t.Fatalf("empty sizes: got %v", result.Errors)
	}

	payload.Colors = slicePtr([]string{"black"})
	payload.Sizes = slicePtr([]string{"M"})
	if result := ValidateProduct(payload, false); !result.IsValid {
		t.Fatalf("non-empty variants should pass, got %v", result.Errors)
	}
}

func TestValidateProductDescriptionLength(t *testing.T) {
	payload := validProductPayload()
	payload.Description = strPtr(strings.Repeat("d", 1001))

	result := ValidateProduct(payload, false)
	if !containsError(result.Errors, "Description must be less than 1000 characters") {
		t.Fatalf("got %v", result.Errors)
	}
}

func TestValidateProductPartialStillRangeChecksPresentFields(t *testing.T) {
	result := ValidateProduct(ProductPayload{Price: floatPtr(-5)}, true)
	if result.IsValid {
		t.Fatal("negative price in partial mode should be rejected")
	}
}

func containsError(errs []string, want string) bool {
	for _, err := range errs {
		if err == want {
			return true
		}
	}
	return false
}
