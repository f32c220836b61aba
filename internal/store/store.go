package store

import "errors"

// ErrNotFound is returned when a referenced id has no matching record.
var ErrNotFound = errors.New("record not found")

// Collection names in the document store.
const (
	ProductsCollection   = "products"
	CategoriesCollection = "categories"
	BrandsCollection     = "brands"
)
