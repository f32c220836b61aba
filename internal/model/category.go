package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subcategory is a named entry nested under a category.
type Subcategory struct {
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Category groups products into the catalog taxonomy. Names are unique at
// the store level.
type Category struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name" validate:"required"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Subcategories []Subcategory      `json:"subcategories,omitempty" bson:"subcategories,omitempty"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
