package store

import (
	"context"
	"time"

	"autoparts-service/internal/model"
	"autoparts-service/prometheus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryStore persists categories in the document store.
type CategoryStore struct {
	coll *mongo.Collection
}

// NewCategoryStore binds a category store to the categories collection.
func NewCategoryStore(db *mongo.Database) *CategoryStore {
	return &CategoryStore{coll: db.Collection(CategoriesCollection)}
}

// EnsureIndexes creates the unique index on category name. Uniqueness is
// enforced at the store level only; a violation surfaces as a write error.
func (s *CategoryStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// ListActive returns every active category, unpaginated.
func (s *CategoryStore) ListActive(ctx context.Context) ([]model.Category, error) {
	defer prometheus.TrackStoreOperation("category_list")(time.Now())

	cursor, err := s.coll.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []model.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Count returns the total number of categories, active or not.
func (s *CategoryStore) Count(ctx context.Context) (int64, error) {
	defer prometheus.TrackStoreOperation("category_count")(time.Now())

	return s.coll.CountDocuments(ctx, bson.M{})
}

// Insert stores a new category and fills in its generated id.
func (s *CategoryStore) Insert(ctx context.Context, category *model.Category) error {
	defer prometheus.TrackStoreOperation("category_insert")(time.Now())

	res, err := s.coll.InsertOne(ctx, category)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid
	}
	return nil
}

// InsertMany stores a batch of categories in one call. Used by the seeder.
func (s *CategoryStore) InsertMany(ctx context.Context, categories []model.Category) error {
	defer prometheus.TrackStoreOperation("category_insert_many")(time.Now())

	docs := make([]interface{}, len(categories))
	for i := range categories {
		docs[i] = categories[i]
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}
