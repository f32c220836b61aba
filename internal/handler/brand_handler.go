package handler

import (
	"net/http"
	"time"

	"autoparts-service/internal/model"
	"autoparts-service/internal/upload"
	"autoparts-service/pkg/logger"
	"autoparts-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BrandHandler serves the brand surface: list and create only.
type BrandHandler struct {
	Brands  BrandStore
	Uploads *upload.Saver
}

// NewBrandHandler wires a brand handler with its store and upload saver.
func NewBrandHandler(brands BrandStore, uploads *upload.Saver) *BrandHandler {
	return &BrandHandler{Brands: brands, Uploads: uploads}
}

// List handles GET /api/brands. Active brands only, unpaginated.
func (h *BrandHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	brands, err := h.Brands.ListActive(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve brands", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve brands",
		})
	}

	prometheus.RecordBrandOperation("list")
	log.Info("Brands retrieved successfully", zap.Int("count", len(brands)))
	return c.JSON(http.StatusOK, brands)
}

// Create handles POST /api/brands. The payload is multipart with an
// optional single logo file under "logo". Duplicate names are rejected by
// the store-level unique index.
func (h *BrandHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new brand")

	brand := model.Brand{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Website:     c.FormValue("website"),
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.Validate(&brand); err != nil {
		log.Warn("Brand validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "Invalid brand data",
			"detail": err.Error(),
		})
	}

	if fh, err := c.FormFile("logo"); err == nil {
		path, err := h.Uploads.SaveFile(fh)
		if err != nil {
			log.Error("Failed to save brand logo", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error":  "Failed to save brand logo",
				"detail": err.Error(),
			})
		}
		brand.Logo = path
	}

	if err := h.Brands.Insert(c.Request().Context(), &brand); err != nil {
		log.Error("Failed to create brand",
			zap.String("name", brand.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  "Failed to create brand",
			"detail": err.Error(),
		})
	}

	prometheus.RecordBrandOperation("create")
	log.Info("Brand created successfully",
		zap.String("brand_id", brand.ID.Hex()),
		zap.String("name", brand.Name))
	return c.JSON(http.StatusCreated, brand)
}
