package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand is a parts manufacturer. Names are unique at the store level.
type Brand struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Logo        string             `json:"logo,omitempty" bson:"logo,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Website     string             `json:"website,omitempty" bson:"website,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
