package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatuses is the set of accepted order states. Any status may
// follow any other; there is no enforced transition graph.
var OrderStatuses = []string{"pending", "confirmed", "processing", "shipped", "delivered", "cancelled"}

// PaymentCashOnDelivery is the only supported payment method.
const PaymentCashOnDelivery = "cash_on_delivery"

// OrderItem captures a point-in-time snapshot of the product at
// checkout; price and total are authoritative, not client-supplied.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image" json:"image"`
	Color     string  `bson:"color" json:"color"`
	Size      string  `bson:"size" json:"size"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Total     float64 `bson:"total" json:"total"`
}

// CustomerInfo holds the contact and delivery details for an order.
type CustomerInfo struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Notes   string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Pricing invariants: Subtotal equals the sum of item totals and
// Total = Subtotal + ShippingFee.
type Pricing struct {
	Subtotal    float64 `bson:"subtotal" json:"subtotal"`
	ShippingFee float64 `bson:"shippingFee" json:"shippingFee"`
	Total       float64 `bson:"total" json:"total"`
}

// StatusChange is one append-only entry of the order's status history.
type StatusChange struct {
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Order defines the persisted order document.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID           string             `bson:"orderId" json:"orderId"`
	CustomerInfo      CustomerInfo       `bson:"customerInfo" json:"customerInfo"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Pricing           Pricing            `bson:"pricing" json:"pricing"`
	Status            string             `bson:"status" json:"status"`
	StatusHistory     []StatusChange     `bson:"statusHistory" json:"statusHistory"`
	PaymentMethod     string             `bson:"paymentMethod" json:"paymentMethod"`
	AdminNotes        string             `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	EstimatedDelivery time.Time          `bson:"estimatedDelivery" json:"estimatedDelivery"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy         string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// IsValidOrderStatus reports whether s is one of the accepted states.
func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
