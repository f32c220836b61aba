package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product status values.
const (
	StatusInStock      = "In Stock"
	StatusOutOfStock   = "Out of Stock"
	StatusLimitedStock = "Limited Stock"
	StatusPreOrder     = "Pre-Order"
	StatusDiscontinued = "Discontinued"
)

// Badge values a product may carry. The empty badge is valid.
const (
	BadgeNone        = ""
	BadgeNew         = "New"
	BadgeBestSeller  = "Best Seller"
	BadgeSale        = "Sale"
	BadgePremium     = "Premium"
	BadgeHot         = "Hot"
	BadgeLimited     = "Limited"
	BadgeEcoFriendly = "Eco-Friendly"
)

// ProductStatuses lists every accepted status value.
var ProductStatuses = []string{
	StatusInStock,
	StatusOutOfStock,
	StatusLimitedStock,
	StatusPreOrder,
	StatusDiscontinued,
}

// Specifications holds the technical sub-record of a product.
type Specifications struct {
	Weight        string   `json:"weight,omitempty" bson:"weight,omitempty"`
	Dimensions    string   `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
	Material      string   `json:"material,omitempty" bson:"material,omitempty"`
	Color         string   `json:"color,omitempty" bson:"color,omitempty"`
	Warranty      string   `json:"warranty,omitempty" bson:"warranty,omitempty"`
	Compatibility []string `json:"compatibility,omitempty" bson:"compatibility,omitempty"`
	PartNumber    string   `json:"partNumber,omitempty" bson:"partNumber,omitempty"`
	Origin        string   `json:"origin,omitempty" bson:"origin,omitempty"`
}

// Product represents an automotive part in the catalog. Category and brand
// are stored as plain denormalized names, not references; renaming a
// category or brand does not propagate to existing products.
type Product struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	Category       string             `json:"category" bson:"category" validate:"required"`
	Subcategory    string             `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Brand          string             `json:"brand,omitempty" bson:"brand,omitempty"`
	Model          string             `json:"model,omitempty" bson:"model,omitempty"`
	Year           *int               `json:"year,omitempty" bson:"year,omitempty"`
	Price          float64            `json:"price" bson:"price" validate:"gte=0"`
	OriginalPrice  *float64           `json:"originalPrice,omitempty" bson:"originalPrice,omitempty" validate:"omitempty,gte=0"`
	Status         string             `json:"status" bson:"status" validate:"oneof='In Stock' 'Out of Stock' 'Limited Stock' 'Pre-Order' 'Discontinued'"`
	Rating         float64            `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	Reviews        int                `json:"reviews" bson:"reviews" validate:"gte=0"`
	Image          string             `json:"image,omitempty" bson:"image,omitempty"`
	Images         []string           `json:"images,omitempty" bson:"images,omitempty"`
	Badge          string             `json:"badge,omitempty" bson:"badge,omitempty" validate:"omitempty,oneof=New 'Best Seller' Sale Premium Hot Limited 'Eco-Friendly'"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	Specifications Specifications     `json:"specifications" bson:"specifications"`
	Stock          int                `json:"stock" bson:"stock" validate:"gte=0"`
	Discount       float64            `json:"discount" bson:"discount" validate:"gte=0,lte=100"`
	Tags           []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Featured       bool               `json:"featured" bson:"featured"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductQuery carries the list filters after type coercion. Zero values
// mean "not provided" except Page and Limit, which are always set.
type ProductQuery struct {
	Page        int
	Limit       int
	Category    string
	Subcategory string
	Brand       string
	Status      string
	MinPrice    *float64
	MaxPrice    *float64
	Featured    bool
	Search      string
	SortBy      string
	SortOrder   string
}

// ProductPatch is the update document for a product. Nil pointer fields are
// left untouched in the stored record; in particular a nil Rating preserves
// the previously stored rating.
type ProductPatch struct {
	Name           string
	Category       string
	Subcategory    string
	Brand          string
	Model          string
	Year           *int
	Price          float64
	OriginalPrice  *float64
	Status         string
	Rating         *float64
	Badge          string
	Description    string
	Specifications Specifications
	Stock          int
	Discount       float64
	Tags           []string
	Featured       bool
	Image          *string
	Images         []string
	UpdatedAt      time.Time
}

// Pagination is the paging block returned alongside product lists.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

// CategoryCount is one row of the grouped count-by-category breakdown.
type CategoryCount struct {
	Category string `json:"category" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// CatalogStats aggregates the dashboard counters. The five counts are
// computed independently, so they may not reconcile under concurrent writes.
type CatalogStats struct {
	TotalProducts int64           `json:"totalProducts"`
	InStock       int64           `json:"inStock"`
	OutOfStock    int64           `json:"outOfStock"`
	Featured      int64           `json:"featured"`
	ByCategory    []CategoryCount `json:"byCategory"`
}
