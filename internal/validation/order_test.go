package validation

import (
	"testing"
)

func validOrderPayload() OrderPayload {
	return OrderPayload{
		CustomerInfo: &OrderCustomerPayload{
			Name:    "Jordan Blake",
			Phone:   "5551234567",
			Address: "123 Main Street, Apt 4",
			City:    "Portland",
			Email:   "jordan@example.com",
		},
		Items: []OrderItemPayload{
			{ProductID: "abc123", Quantity: 2, Color: "black", Size: "M"},
		},
	}
}

func TestValidateOrderAcceptsCompletePayload(t *testing.T) {
	result := ValidateOrder(validOrderPayload())
	if !result.IsValid {
		t.Fatalf("expected valid order, got %v", result.Errors)
	}
}

func TestValidateOrderMissingCustomerInfo(t *testing.T) {
	result := ValidateOrder(OrderPayload{Items: validOrderPayload().Items})
	if !containsError(result.Errors, "Customer information is required") {
		t.Fatalf("got %v", result.Errors)
	}
}

func TestValidateOrderCustomerRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OrderCustomerPayload)
		message string
	}{
		{"short name", func(c *OrderCustomerPayload) { c.Name = "J" }, "Customer name is required and must be at least 2 characters"},
		{"short phone", func(c *OrderCustomerPayload) { c.Phone = "555123" }, "Valid phone number is required"},
		{"short address", func(c *OrderCustomerPayload) { c.Address = "Main St" }, "Complete address is required"},
		{"short city", func(c *OrderCustomerPayload) { c.City = "P" }, "City is required"},
	}

	for _, tc := range tests {
		payload := validOrderPayload()
		tc.mutate(payload.CustomerInfo)

		result := ValidateOrder(payload)
		if !containsError(result.Errors, tc.message) {
			t.Fatalf("%s: expected %q in %v", tc.name, tc.message, result.Errors)
		}
	}
}

func TestValidateOrderEmptyItems(t *testing.T) {
	payload := validOrderPayload()
	payload.Items = nil

	result := ValidateOrder(payload)
	if !containsError(result.Errors, "Order must contain at least one item") {
		t.Fatalf("got %v", result.Errors)
	}
}

func TestValidateOrderItemRules(t *testing.T) {
	tests := []struct {
		name    string
		item    OrderItemPayload
		message string
	}{
		{"missing product id", OrderItemPayload{Quantity: 1, Color: "black", Size: "M"}, "Item 1: Product ID is required"},
		{"zero quantity", OrderItemPayload{ProductID: "x", Quantity: 0, Color: "black", Size: "M"}, "Item 1: Valid quantity is required"},
		{"quantity over cap", OrderItemPayload{ProductID: "x", Quantity: 11, Color: "black", Size: "M"}, "Item 1: Maximum quantity is 10"},
		{"missing color", OrderItemPayload{ProductID: "x", Quantity: 1, Size: "M"}, "Item 1: Color is required"},
		{"missing size", OrderItemPayload{ProductID: "x", Quantity: 1, Color: "black"}, "Item 1: Size is required"},
	}

	for _, tc := range tests {
		payload := validOrderPayload()
		payload.Items = []OrderItemPayload{tc.item}

		result := ValidateOrder(payload)
		if !containsError(result.Errors, tc.message) {
			t.Fatalf("%s: expected %q in %v", tc.name, tc.message, result.Errors)
		}
	}
}

func TestValidateOrderItemErrorsAreNumbered(t *testing.T) {
	payload := validOrderPayload()
	payload.Items = append(payload.Items, OrderItemPayload{ProductID: "y", Quantity: 1, Color: "white"})

	result := ValidateOrder(payload)
	if !containsError(result.Errors, "Item 2: Size is required") {
		t.Fatalf("expected second item to be numbered, got %v", result.Errors)
	}
}

func TestValidateOrderQuantityBoundaries(t *testing.T) {
	for _, quantity := range []int{1, 10} {
		payload := validOrderPayload()
		payload.Items[0].Quantity = quantity

		if result := ValidateOrder(payload); !result.IsValid {
			t.Fatalf("quantity %d should pass, got %v", quantity, result.Errors)
		}
	}
}
