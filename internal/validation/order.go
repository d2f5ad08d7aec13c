package validation

import (
	"fmt"
	"strings"
)

// OrderCustomerPayload is the customer block of a checkout request.
type OrderCustomerPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Email   string `json:"email"`
	Notes   string `json:"notes"`
}

// OrderItemPayload is one requested line item. Price is deliberately
// absent: the pipeline re-prices from the live product record.
type OrderItemPayload struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// OrderPayload is a candidate checkout body.
type OrderPayload struct {
	CustomerInfo *OrderCustomerPayload `json:"customerInfo"`
	Items        []OrderItemPayload    `json:"items"`
}

// ValidateOrder checks the structural rules of a checkout request.
// Item prices and product existence are not checked here.
func ValidateOrder(o OrderPayload) Result {
	var errs []string

	if o.CustomerInfo == nil {
		errs = append(errs, "Customer information is required")
	} else {
		info := o.CustomerInfo
		if trimmedLen(info.Name) < 2 {
			errs = append(errs, "Customer name is required and must be at least 2 characters")
		}
		if trimmedLen(info.Phone) < 10 {
			errs = append(errs, "Valid phone number is required")
		}
		if trimmedLen(info.Address) < 10 {
			errs = append(errs, "Complete address is required")
		}
		if trimmedLen(info.City) < 2 {
			errs = append(errs, "City is required")
		}
	}

	if len(o.Items) == 0 {
		errs = append(errs, "Order must contain at least one item")
	}

	for i, item := range o.Items {
		n := i + 1
		if strings.TrimSpace(item.ProductID) == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Product ID is required", n))
		}
		if item.Quantity < 1 {
			errs = append(errs, fmt.Sprintf("Item %d: Valid quantity is required", n))
		}
		if item.Quantity > 10 {
			errs = append(errs, fmt.Sprintf("Item %d: Maximum quantity is 10", n))
		}
		if strings.TrimSpace(item.Color) == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Color is required", n))
		}
		if strings.TrimSpace(item.Size) == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Size is required", n))
		}
	}

	return result(errs)
}
