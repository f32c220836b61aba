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

// BrandStore persists brands in the document store.
type BrandStore struct {
	coll *mongo.Collection
}

// NewBrandStore binds a brand store to the brands collection.
func NewBrandStore(db *mongo.Database) *BrandStore {
	return &BrandStore{coll: db.Collection(BrandsCollection)}
}

// EnsureIndexes creates the unique index on brand name.
func (s *BrandStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// ListActive returns every active brand, unpaginated.
func (s *BrandStore) ListActive(ctx context.Context) ([]model.Brand, error) {
	defer prometheus.TrackStoreOperation("brand_list")(time.Now())

	cursor, err := s.coll.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	brands := []model.Brand{}
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// Insert stores a new brand and fills in its generated id.
func (s *BrandStore) Insert(ctx context.Context, brand *model.Brand) error {
	defer prometheus.TrackStoreOperation("brand_insert")(time.Now())

	res, err := s.coll.InsertOne(ctx, brand)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		brand.ID = oid
	}
	return nil
}
