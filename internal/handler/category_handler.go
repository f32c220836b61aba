package handler

import (
	"net/http"
	"time"

	"autoparts-service/internal/model"
	"autoparts-service/pkg/logger"
	"autoparts-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryHandler serves the category surface: list and create only.
type CategoryHandler struct {
	Categories CategoryStore
}

// NewCategoryHandler wires a category handler with its store.
func NewCategoryHandler(categories CategoryStore) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

// CategoryRequest defines the structure for category creation requests
type CategoryRequest struct {
	Name          string              `json:"name" validate:"required"`
	Description   string              `json:"description"`
	Subcategories []model.Subcategory `json:"subcategories"`
}

// List handles GET /api/categories. Active categories only, unpaginated.
func (h *CategoryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	categories, err := h.Categories.ListActive(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	prometheus.RecordCategoryOperation("list")
	log.Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// Create handles POST /api/categories. There is no duplicate-name pre-check;
// the store-level unique index rejects duplicates and that surfaces as a
// generic persistence failure.
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new category")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Category validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Invalid category data",
			"detail": err.Error(),
		})
	}

	category := model.Category{
		Name:          req.Name,
		Description:   req.Description,
		Subcategories: req.Subcategories,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.Categories.Insert(c.Request().Context(), &category); err != nil {
		log.Error("Failed to create category",
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  "Failed to create category",
			"detail": err.Error(),
		})
	}

	prometheus.RecordCategoryOperation("create")
	log.Info("Category created successfully",
		zap.String("category_id", category.ID.Hex()),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}
