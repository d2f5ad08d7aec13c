package validation

import (
	"fmt"
	"strings"
)

// ProductPayload is a candidate product body. Nil pointers mark fields
// absent from the request, which matters in partial mode.
type ProductPayload struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Image       *string   `json:"image"`
	Images      *[]string `json:"images"`
	Colors      *[]string `json:"colors"`
	Sizes       *[]string `json:"sizes"`
	Description *string   `json:"description"`
	IsActive    *bool     `json:"isActive"`
	SoldOut     *bool     `json:"soldOut"`
}

var productCategories = []string{"t-shirts", "pants", "sweatshirts", "accessories", "shoes"}

// ValidateProduct checks p against the catalog rules. Required-field
// checks apply only in full mode; range checks apply to any field that
// is present, in either mode.
func ValidateProduct(p ProductPayload, partial bool) Result {
	var errs []string

	if !partial {
		if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
			errs = append(errs, "name is required")
		}
		if p.Price == nil {
			errs = append(errs, "price is required")
		}
		if p.Category == nil || strings.TrimSpace(*p.Category) == "" {
			errs = append(errs, "category is required")
		}
		if p.Image == nil || strings.TrimSpace(*p.Image) == "" {
			errs = append(errs, "image is required")
		}
	}

	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		if trimmedLen(*p.Name) < 2 {
			errs = append(errs, "Product name must be at least 2 characters long")
		}
		if trimmedLen(*p.Name) > 100 {
			errs = append(errs, "Product name must be less than 100 characters")
		}
	}

	if p.Price != nil {
		if *p.Price <= 0 {
			errs = append(errs, "Price must be a positive number")
		}
		if *p.Price > 10000 {
			errs = append(errs, "Price must be less than $10,000")
		}
	}

	if p.Category != nil && strings.TrimSpace(*p.Category) != "" {
		if !isValidCategory(*p.Category) {
			errs = append(errs, fmt.Sprintf("Category must be one of: %s", strings.Join(productCategories, ", ")))
		}
	}

	if p.Image != nil && strings.TrimSpace(*p.Image) != "" {
		if !IsValidURL(*p.Image) {
			errs = append(errs, "Image must be a valid URL")
		}
	}

	if p.Colors != nil && len(*p.Colors) == 0 {
		errs = append(errs, "Colors must be a non-empty array")
	}

	if p.Sizes != nil && len(*p.Sizes) == 0 {
		errs = append(errs, "Sizes must be a non-empty array")
	}

	if p.Description != nil && len(*p.Description) > 1000 {
		errs = append(errs, "Description must be less than 1000 characters")
	}

	return result(errs)
}

func isValidCategory(category string) bool {
	for _, valid := range productCategories {
		if category == valid {
			return true
		}
	}
	return false
}
