package handlers

import (
	"time"

	"twentytwo/internal/models"
	"twentytwo/internal/validation"
)

// Canonical order policy: flat shipping with a free threshold, flat
// five-day delivery estimate.
const (
	freeShippingThreshold = 100.0
	baseShippingFee       = 12.0
	deliveryDays          = 5
)

func calculateShipping(subtotal float64) float64 {
	if subtotal >= freeShippingThreshold {
		return 0
	}
	return baseShippingFee
}

func calculateDeliveryDate(now time.Time) time.Time {
	return now.AddDate(0, 0, deliveryDays)
}

// buildOrderItem snapshots the live product into a line item. The
// price always comes from the product record, never the client.
func buildOrderItem(req validation.OrderItemPayload, product models.Product) models.OrderItem {
	return models.OrderItem{
		ProductID: product.ID.Hex(),
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.MainImage(),
		Color:     req.Color,
		Size:      req.Size,
		Quantity:  req.Quantity,
		Total:     product.Price * float64(req.Quantity),
	}
}

func buildPricing(items []models.OrderItem) models.Pricing {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}

	fee := calculateShipping(subtotal)
	return models.Pricing{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Total:       subtotal + fee,
	}
}
