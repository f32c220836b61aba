package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"autoparts-service/internal/model"
	"autoparts-service/prometheus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductStore persists products in the document store.
type ProductStore struct {
	coll *mongo.Collection
}

// NewProductStore binds a product store to the products collection.
func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection(ProductsCollection)}
}

// buildFilter translates a coerced query into a document-store filter.
// Inactive products are always excluded.
func buildFilter(q model.ProductQuery) bson.M {
	filter := bson.M{"isActive": true}

	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Subcategory != "" {
		filter["subcategory"] = q.Subcategory
	}
	if q.Brand != "" {
		filter["brand"] = q.Brand
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Featured {
		filter["featured"] = true
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}

	if q.Search != "" {
		// Case-insensitive substring match; a term matching only a tag
		// still finds the product.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"brand": re},
			bson.M{"tags": re},
		}
	}

	return filter
}

// List returns one page of matching products plus the full-filter total.
// An empty page is a valid empty result, not an error.
func (s *ProductStore) List(ctx context.Context, q model.ProductQuery) ([]model.Product, int64, error) {
	defer prometheus.TrackStoreOperation("product_list")(time.Now())

	filter := buildFilter(q)

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	dir := 1
	if q.SortOrder == "desc" || q.SortOrder == "" {
		dir = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: dir}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID fetches a product by its hex id. A malformed id cannot name a
// record and is reported as not found.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*model.Product, error) {
	defer prometheus.TrackStoreOperation("product_get")(time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var product model.Product
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Insert stores a new product and fills in its generated id.
func (s *ProductStore) Insert(ctx context.Context, p *model.Product) error {
	defer prometheus.TrackStoreOperation("product_insert")(time.Now())

	res, err := s.coll.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// Update applies a patch to a product and returns the updated record. Nil
// pointer fields are not written; a nil Rating leaves the stored rating
// untouched. Image fields are only replaced when the patch carries new ones.
func (s *ProductStore) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	defer prometheus.TrackStoreOperation("product_update")(time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{
		"name":           patch.Name,
		"category":       patch.Category,
		"subcategory":    patch.Subcategory,
		"brand":          patch.Brand,
		"model":          patch.Model,
		"year":           patch.Year,
		"price":          patch.Price,
		"originalPrice":  patch.OriginalPrice,
		"status":         patch.Status,
		"badge":          patch.Badge,
		"description":    patch.Description,
		"specifications": patch.Specifications,
		"stock":          patch.Stock,
		"discount":       patch.Discount,
		"tags":           patch.Tags,
		"featured":       patch.Featured,
		"updatedAt":      patch.UpdatedAt,
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
		set["images"] = patch.Images
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Product
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete hard-deletes a product by id.
func (s *ProductStore) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackStoreOperation("product_delete")(time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats computes the dashboard counters with independent queries. There is
// no consistency snapshot across them.
func (s *ProductStore) Stats(ctx context.Context) (*model.CatalogStats, error) {
	defer prometheus.TrackStoreOperation("product_stats")(time.Now())

	stats := &model.CatalogStats{ByCategory: []model.CategoryCount{}}

	var err error
	if stats.TotalProducts, err = s.coll.CountDocuments(ctx, bson.M{"isActive": true}); err != nil {
		return nil, err
	}
	if stats.InStock, err = s.coll.CountDocuments(ctx, bson.M{"isActive": true, "status": model.StatusInStock}); err != nil {
		return nil, err
	}
	if stats.OutOfStock, err = s.coll.CountDocuments(ctx, bson.M{"isActive": true, "status": model.StatusOutOfStock}); err != nil {
		return nil, err
	}
	if stats.Featured, err = s.coll.CountDocuments(ctx, bson.M{"isActive": true, "featured": true}); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, &stats.ByCategory); err != nil {
		return nil, err
	}

	return stats, nil
}
