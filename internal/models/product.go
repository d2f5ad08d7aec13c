package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCategories is the fixed set of catalog categories.
var ProductCategories = []string{"t-shirts", "pants", "sweatshirts", "accessories", "shoes"}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image" json:"image"`
	Images      StringList         `bson:"images,omitempty" json:"images,omitempty"`
	Colors      StringList         `bson:"colors,omitempty" json:"colors,omitempty"`
	Sizes       StringList         `bson:"sizes,omitempty" json:"sizes,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	SKU         string             `bson:"sku,omitempty" json:"sku,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	SoldOut     bool               `bson:"soldOut" json:"soldOut"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	CreatedBy   string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedBy   string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}

// MainImage returns the display image: the first entry of Images when
// the list form is populated, otherwise the single image field.
func (p Product) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Image
}
