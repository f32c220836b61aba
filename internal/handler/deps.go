package handler

import (
	"context"

	"autoparts-service/internal/model"
)

// ProductStore is the persistence surface the product handlers consume.
type ProductStore interface {
	List(ctx context.Context, q model.ProductQuery) ([]model.Product, int64, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Insert(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.CatalogStats, error)
}

// CategoryStore is the persistence surface the category handlers consume.
type CategoryStore interface {
	ListActive(ctx context.Context) ([]model.Category, error)
	Insert(ctx context.Context, category *model.Category) error
}

// BrandStore is the persistence surface the brand handlers consume.
type BrandStore interface {
	ListActive(ctx context.Context) ([]model.Brand, error)
	Insert(ctx context.Context, brand *model.Brand) error
}

// Notifier publishes a named event to the real-time channel.
// Fire-and-forget: implementations report no delivery outcome.
type Notifier interface {
	Publish(event string, payload interface{})
}

// NoopNotifier discards every event. Used in tests and when no real-time
// channel is wired.
type NoopNotifier struct{}

// Publish implements Notifier.
func (NoopNotifier) Publish(string, interface{}) {}
