package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autoparts-service/internal/handler"
	"autoparts-service/internal/model"
	"autoparts-service/internal/upload"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func multipartBody(t *testing.T, fields map[string]string, fileField string, fileNames []string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range fileNames {
		fw, err := w.CreateFormFile(fileField, name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte("fake image bytes")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}

func TestProductCreateWithImages(t *testing.T) {
	ps := &memProductStore{}
	e := newEcho()
	uploads := upload.NewSaver(t.TempDir(), "/uploads")
	h := handler.NewProductHandler(ps, handler.NoopNotifier{}, uploads, 5)
	e.POST("/api/products", h.Create)

	body, contentType := multipartBody(t,
		map[string]string{"name": "Oil Filter", "category": "Filters", "price": "9.99"},
		"images", []string{"front.jpg", "back.jpg"})
	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created model.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if len(created.Images) != 2 {
		t.Fatalf("want 2 images, got %v", created.Images)
	}
	if created.Image != created.Images[0] {
		t.Errorf("primary image must be the first upload: %q vs %v", created.Image, created.Images)
	}
	for _, p := range created.Images {
		if !strings.HasPrefix(p, "/uploads/") {
			t.Errorf("image path %q not under public prefix", p)
		}
	}
}

func TestCategoryCreateAndList(t *testing.T) {
	cs := &memCategoryStore{}
	e := newEcho()
	h := handler.NewCategoryHandler(cs)
	e.GET("/api/categories", h.List)
	e.POST("/api/categories", h.Create)

	payload := `{"name":"Turbochargers","description":"Forced induction","subcategories":[{"name":"Wastegates"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var created model.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if !created.IsActive || created.CreatedAt.IsZero() {
		t.Errorf("created category not activated/stamped: %+v", created)
	}
	if len(created.Subcategories) != 1 || created.Subcategories[0].Name != "Wastegates" {
		t.Errorf("subcategories not stored: %+v", created.Subcategories)
	}

	// Missing name is a validation failure.
	req = httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"description":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("want 400 for missing name, got %d", rec.Code)
	}

	// Inactive categories are filtered out of the list.
	cs.categories = append(cs.categories, model.Category{
		ID: primitive.NewObjectID(), Name: "Legacy", IsActive: false,
	})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	var list []model.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Turbochargers" {
		t.Errorf("want only the active category listed, got %+v", list)
	}
}

func TestBrandCreateWithLogo(t *testing.T) {
	bs := &memBrandStore{}
	e := newEcho()
	uploads := upload.NewSaver(t.TempDir(), "/uploads")
	h := handler.NewBrandHandler(bs, uploads)
	e.GET("/api/brands", h.List)
	e.POST("/api/brands", h.Create)

	body, contentType := multipartBody(t,
		map[string]string{"name": "Brembo", "website": "https://brembo.com"},
		"logo", []string{"logo.png"})
	req := httptest.NewRequest(http.MethodPost, "/api/brands", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var created model.Brand
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(created.Logo, "/uploads/") {
		t.Errorf("logo path %q not under public prefix", created.Logo)
	}

	// Logo is optional.
	body, contentType = multipartBody(t, map[string]string{"name": "Mann"}, "logo", nil)
	req = httptest.NewRequest(http.MethodPost, "/api/brands", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201 without logo, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestStats(t *testing.T) {
	ps := &memProductStore{}
	ps.products = append(ps.products,
		model.Product{ID: primitive.NewObjectID(), Category: "Filters", Status: model.StatusInStock, Featured: true, IsActive: true},
		model.Product{ID: primitive.NewObjectID(), Category: "Filters", Status: model.StatusInStock, IsActive: true},
		model.Product{ID: primitive.NewObjectID(), Category: "Brake System", Status: model.StatusOutOfStock, IsActive: true},
		model.Product{ID: primitive.NewObjectID(), Category: "Brake System", Status: model.StatusInStock, IsActive: false},
	)
	e := newEcho()
	h := handler.NewStatsHandler(ps)
	e.GET("/api/stats", h.Get)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var stats model.CatalogStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalProducts != 3 || stats.InStock != 2 || stats.OutOfStock != 1 || stats.Featured != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(stats.ByCategory) != 2 {
		t.Errorf("want 2 category buckets, got %+v", stats.ByCategory)
	}
}
