package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"autoparts-service/internal/model"
	"autoparts-service/internal/realtime"
	"autoparts-service/internal/store"
	"autoparts-service/internal/upload"
	"autoparts-service/pkg/logger"
	"autoparts-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ProductHandler serves the product CRUD surface.
type ProductHandler struct {
	Products ProductStore
	Notifier Notifier
	Uploads  *upload.Saver
	MaxFiles int
}

// NewProductHandler wires a product handler with its dependencies.
func NewProductHandler(products ProductStore, notifier Notifier, uploads *upload.Saver, maxFiles int) *ProductHandler {
	return &ProductHandler{
		Products: products,
		Notifier: notifier,
		Uploads:  uploads,
		MaxFiles: maxFiles,
	}
}

// ListResponse is the product list payload.
type ListResponse struct {
	Products   []model.Product  `json:"products"`
	Pagination model.Pagination `json:"pagination"`
}

// List handles GET /api/products with filtering, search and pagination.
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	q := model.ProductQuery{
		Page:        page,
		Limit:       limit,
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		Brand:       c.QueryParam("brand"),
		Status:      c.QueryParam("status"),
		Featured:    c.QueryParam("featured") == "true",
		Search:      c.QueryParam("search"),
		SortBy:      c.QueryParam("sortBy"),
		SortOrder:   c.QueryParam("sortOrder"),
	}
	if v, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64); err == nil {
		q.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64); err == nil {
		q.MaxPrice = &v
	}

	products, total, err := h.Products.List(c.Request().Context(), q)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))

	prometheus.RecordProductOperation("list")
	log.Info("Products retrieved successfully",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Int("page", page))
	return c.JSON(http.StatusOK, ListResponse{
		Products: products,
		Pagination: model.Pagination{
			Current: page,
			Pages:   pages,
			Total:   total,
		},
	})
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	product, err := h.Products.GetByID(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("Product not found", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}
	if err != nil {
		log.Error("Failed to get product", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve product",
		})
	}

	prometheus.RecordProductOperation("get")
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /api/products. The payload is multipart: form fields
// plus up to MaxFiles image files under "images". Uploaded files are written
// before the store insert; a failed insert leaves them on disk.
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")

	price, ok := formFloat(c, "price")
	if !ok {
		log.Warn("Product creation rejected, invalid price",
			zap.String("price", c.FormValue("price")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "A valid price is required",
		})
	}

	now := time.Now().UTC()
	product := model.Product{
		Name:           c.FormValue("name"),
		Category:       c.FormValue("category"),
		Subcategory:    c.FormValue("subcategory"),
		Brand:          c.FormValue("brand"),
		Model:          c.FormValue("model"),
		Year:           formIntPtr(c, "year"),
		Price:          price,
		OriginalPrice:  formFloatPtr(c, "originalPrice"),
		Status:         c.FormValue("status"),
		Rating:         clampedRating(c),
		Reviews:        formInt(c, "reviews"),
		Badge:          c.FormValue("badge"),
		Description:    c.FormValue("description"),
		Specifications: formSpecifications(c),
		Stock:          formInt(c, "stock"),
		Discount:       clamp(mustFloat(c, "discount"), 0, 100),
		Tags:           formStringList(c, "tags"),
		Featured:       formBool(c, "featured"),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if product.Status == "" {
		product.Status = model.StatusInStock
	}

	paths, err := h.saveImages(c)
	if err != nil {
		log.Error("Failed to save uploaded images", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  "Failed to save uploaded images",
			"detail": err.Error(),
		})
	}
	if len(paths) > 0 {
		product.Image = paths[0]
		product.Images = paths
	}

	if err := c.Validate(&product); err != nil {
		log.Warn("Product validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Invalid product data",
			"detail": err.Error(),
		})
	}

	if err := h.Products.Insert(c.Request().Context(), &product); err != nil {
		log.Error("Failed to create product",
			zap.String("name", product.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  "Failed to create product",
			"detail": err.Error(),
		})
	}

	h.Notifier.Publish(realtime.EventProductCreated, product)
	prometheus.RecordProductOperation("create")
	log.Info("Product created successfully",
		zap.String("product_id", product.ID.Hex()),
		zap.String("name", product.Name),
		zap.String("category", product.Category))
	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/products/:id. Coercion follows Create, except the
// stored rating is only touched when a rating field is supplied, and image
// fields are only replaced when new files are uploaded.
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating product", zap.String("product_id", id))

	price, ok := formFloat(c, "price")
	if !ok {
		log.Warn("Product update rejected, invalid price",
			zap.String("product_id", id),
			zap.String("price", c.FormValue("price")))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "A valid price is required",
		})
	}

	patch := model.ProductPatch{
		Name:           c.FormValue("name"),
		Category:       c.FormValue("category"),
		Subcategory:    c.FormValue("subcategory"),
		Brand:          c.FormValue("brand"),
		Model:          c.FormValue("model"),
		Year:           formIntPtr(c, "year"),
		Price:          price,
		OriginalPrice:  formFloatPtr(c, "originalPrice"),
		Status:         c.FormValue("status"),
		Badge:          c.FormValue("badge"),
		Description:    c.FormValue("description"),
		Specifications: formSpecifications(c),
		Stock:          formInt(c, "stock"),
		Discount:       clamp(mustFloat(c, "discount"), 0, 100),
		Tags:           formStringList(c, "tags"),
		Featured:       formBool(c, "featured"),
		UpdatedAt:      time.Now().UTC(),
	}
	if patch.Status == "" {
		patch.Status = model.StatusInStock
	}
	if c.FormValue("rating") != "" {
		rating := clampedRating(c)
		patch.Rating = &rating
	}

	paths, err := h.saveImages(c)
	if err != nil {
		log.Error("Failed to save uploaded images",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  "Failed to save uploaded images",
			"detail": err.Error(),
		})
	}
	if len(paths) > 0 {
		patch.Image = &paths[0]
		patch.Images = paths
	}

	updated, err := h.Products.Update(c.Request().Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}
	if err != nil {
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  "Failed to update product",
			"detail": err.Error(),
		})
	}

	h.Notifier.Publish(realtime.EventProductUpdated, updated)
	prometheus.RecordProductOperation("update")
	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", updated.Name))
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/products/:id. The delete is hard; the
// broadcast carries the raw id, not the record.
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting product", zap.String("product_id", id))

	err := h.Products.Delete(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}
	if err != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  "Failed to delete product",
			"detail": err.Error(),
		})
	}

	h.Notifier.Publish(realtime.EventProductDeleted, id)
	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}

// saveImages stores the uploaded files under the "images" field, capped at
// MaxFiles. A non-multipart request simply has no files.
func (h *ProductHandler) saveImages(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	return h.Uploads.SaveAll(files, h.MaxFiles)
}

// clampedRating coerces the rating field and clamps it into [0,5]. Values
// outside the range are silently clamped, not rejected.
func clampedRating(c echo.Context) float64 {
	v, _ := formFloat(c, "rating")
	return clamp(v, 0, 5)
}

// mustFloat coerces a numeric field, falling back to zero.
func mustFloat(c echo.Context, name string) float64 {
	v, _ := formFloat(c, name)
	return v
}
