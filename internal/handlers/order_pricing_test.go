package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"twentytwo/internal/models"
	"twentytwo/internal/validation"
)

func TestCalculateShippingThreshold(t *testing.T) {
	tests := []struct {
		subtotal float64
		fee      float64
	}{
		{0, 12},
		{50, 12},
		{99.99, 12},
		{100, 0},
		{100.01, 0},
		{500, 0},
	}

	for _, tc := range tests {
		if got := calculateShipping(tc.subtotal); got != tc.fee {
			t.Fatalf("subtotal %.2f: expected fee %.2f, got %.2f", tc.subtotal, tc.fee, got)
		}
	}
}

func TestCalculateDeliveryDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	want := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	if got := calculateDeliveryDate(now); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBuildOrderItemSnapshotsLiveProduct(t *testing.T) {
	product := models.Product{
		ID:     primitive.NewObjectID(),
		Name:   "Classic Tee",
		Price:  40,
		Image:  "https://cdn.example.com/tee.jpg",
		Images: models.StringList{"https://cdn.example.com/tee-front.jpg"},
	}
	req := validation.OrderItemPayload{
		ProductID: product.ID.Hex(),
		Quantity:  2,
		Color:     "black",
		Size:      "M",
	}

	item := buildOrderItem(req, product)

	if item.ProductID != product.ID.Hex() {
		t.Fatalf("expected product id %s, got %s", product.ID.Hex(), item.ProductID)
	}
	if item.Price != 40 {
		t.Fatalf("expected live price 40, got %v", item.Price)
	}
	if item.Total != 80 {
		t.Fatalf("expected line total 80, got %v", item.Total)
	}
	if item.Image != "https://cdn.example.com/tee-front.jpg" {
		t.Fatalf("expected first gallery image, got %s", item.Image)
	}
	if item.Color != "black" || item.Size != "M" || item.Quantity != 2 {
		t.Fatalf("variant selection not preserved: %+v", item)
	}
}

func TestBuildPricingUnderThreshold(t *testing.T) {
	pricing := buildPricing([]models.OrderItem{
		{Price: 40, Quantity: 2, Total: 80},
	})

	if pricing.Subtotal != 80 {
		t.Fatalf("expected subtotal 80, got %v", pricing.Subtotal)
	}
	if pricing.ShippingFee != 12 {
		t.Fatalf("expected shipping 12, got %v", pricing.ShippingFee)
	}
	if pricing.Total != 92 {
		t.Fatalf("expected total 92, got %v", pricing.Total)
	}
}

func TestBuildPricingFreeShipping(t *testing.T) {
	pricing := buildPricing([]models.OrderItem{
		{Price: 60, Quantity: 1, Total: 60},
		{Price: 40, Quantity: 1, Total: 40},
	})

	if pricing.ShippingFee != 0 {
		t.Fatalf("expected free shipping at subtotal 100, got %v", pricing.ShippingFee)
	}
	if pricing.Total != 100 {
		t.Fatalf("expected total 100, got %v", pricing.Total)
	}
}

func TestBuildPricingIdentity(t *testing.T) {
	pricing := buildPricing([]models.OrderItem{
		{Total: 33.33},
		{Total: 19.99},
	})

	if pricing.Total != pricing.Subtotal+pricing.ShippingFee {
		t.Fatalf("total %v != subtotal %v + shipping %v", pricing.Total, pricing.Subtotal, pricing.ShippingFee)
	}
}
