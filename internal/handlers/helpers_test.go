package handlers

import (
	"regexp"
	"testing"
)

var orderIDPattern = regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-Z]{6}$`)

func TestGenerateOrderIDFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		id := generateOrderID()
		if !orderIDPattern.MatchString(id) {
			t.Fatalf("order id %q does not match expected format", id)
		}
	}
}

func TestGenerateOrderIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateOrderID()
		if seen[id] {
			t.Fatalf("duplicate order id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateSKU(t *testing.T) {
	sku := generateSKU("t-shirts", "Classic Tee!")
	pattern := regexp.MustCompile(`^T-S-CLASSI-[0-9A-Z]{4}$`)
	if !pattern.MatchString(sku) {
		t.Fatalf("unexpected sku %q", sku)
	}

	short := generateSKU("ab", "X")
	if !regexp.MustCompile(`^AB-X-[0-9A-Z]{4}$`).MatchString(short) {
		t.Fatalf("unexpected sku for short inputs: %q", short)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"5551234567", "+15551234567"},
		{"(555) 123-4567", "+15551234567"},
		{"15551234567", "+15551234567"},
		{"+1 555 123 4567", "+15551234567"},
		{"+44 20 7946 0958", "+44 20 7946 0958"},
		{"12345", "12345"},
	}

	for _, tc := range tests {
		if got := normalizePhone(tc.in); got != tc.want {
			t.Fatalf("normalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSearchPrefixFilter(t *testing.T) {
	filter := searchPrefixFilter("shirt")
	if filter["$gte"] != "shirt" {
		t.Fatalf("unexpected lower bound: %v", filter["$gte"])
	}
	if filter["$lte"] != "shirt" {
		t.Fatalf("unexpected upper bound: %v", filter["$lte"])
	}
}
