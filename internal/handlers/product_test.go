package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/solestore/internal/models"
)

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, available bool) models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: "test description",
		Price:       price,
		Stock:       10,
		Available:   available,
		Sizes:       pq.Int64Array{40, 41, 42},
		Colors:      pq.StringArray{"Black"},
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func addReviews(t *testing.T, db *gorm.DB, productID uuid.UUID, ratings ...int) {
	t.Helper()

	for _, rating := range ratings {
		review := models.Review{ProductID: productID, UserName: "Alice", Rating: rating, Comment: "ok"}
		require.NoError(t, db.Create(&review).Error)
	}
}

func listProducts(t *testing.T, app *fiber.App, path string) (*http.Response, []interface{}) {
	t.Helper()

	resp, err := app.Test(jsonRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	body := decodeBody(t, resp)
	data, _ := body["data"].([]interface{})
	return resp, data
}

func TestListProductsAverageRatingZeroWithoutReviews(t *testing.T) {
	app, db, _ := setupTestApp(t)
	createProduct(t, db, "No Reviews Shoe", 50, true)

	resp, data := listProducts(t, app, "/api/products/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 1)

	product := data[0].(map[string]interface{})
	assert.Equal(t, float64(0), product["average_rating"])
	assert.Equal(t, float64(0), product["review_count"])
}

func TestListProductsAverageRating(t *testing.T) {
	app, db, _ := setupTestApp(t)
	product := createProduct(t, db, "Reviewed Shoe", 50, true)
	addReviews(t, db, product.ID, 5, 4, 5)

	resp, data := listProducts(t, app, "/api/products/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 1)

	got := data[0].(map[string]interface{})
	assert.InDelta(t, 14.0/3.0, got["average_rating"], 1e-9)
	assert.Equal(t, float64(3), got["review_count"])
}

func TestListProductsAvailableFilter(t *testing.T) {
	app, db, _ := setupTestApp(t)
	createProduct(t, db, "In Stock", 50, true)
	createProduct(t, db, "Sold Out", 60, false)

	resp, data := listProducts(t, app, "/api/products/?available=true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 1)
	assert.Equal(t, "In Stock", data[0].(map[string]interface{})["name"])

	resp, data = listProducts(t, app, "/api/products/?available=false")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 1)
	assert.Equal(t, "Sold Out", data[0].(map[string]interface{})["name"])
}

func TestListProductsAvailableComposesWithOtherFilters(t *testing.T) {
	app, db, _ := setupTestApp(t)

	category := models.Category{Name: "Running"}
	require.NoError(t, db.Create(&category).Error)

	inStock := createProduct(t, db, "Runner One", 120, true)
	soldOut := createProduct(t, db, "Runner Two", 130, false)
	require.NoError(t, db.Model(&inStock).Update("category_id", category.ID).Error)
	require.NoError(t, db.Model(&soldOut).Update("category_id", category.ID).Error)
	createProduct(t, db, "Available Elsewhere", 80, true)

	resp, data := listProducts(t, app,
		"/api/products/?available=true&category="+category.ID.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 1)
	assert.Equal(t, "Runner One", data[0].(map[string]interface{})["name"])

	resp, data = listProducts(t, app, "/api/products/?available=true&search=runner")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 1)
	assert.Equal(t, "Runner One", data[0].(map[string]interface{})["name"])
}

func TestListProductsCategoryFilter(t *testing.T) {
	app, db, _ := setupTestApp(t)

	category := models.Category{Name: "Running"}
	require.NoError(t, db.Create(&category).Error)

	inCategory := createProduct(t, db, "Runner", 120, true)
	require.NoError(t, db.Model(&inCategory).Update("category_id", category.ID).Error)
	createProduct(t, db, "Other", 80, true)

	resp, data := listProducts(t, app, "/api/products/?category="+category.ID.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 1)

	got := data[0].(map[string]interface{})
	assert.Equal(t, "Runner", got["name"])
	expanded, ok := got["category"].(map[string]interface{})
	require.True(t, ok, "category should be expanded")
	assert.Equal(t, "Running", expanded["name"])
	assert.Equal(t, "running", expanded["slug"])
}

func TestListProductsSearch(t *testing.T) {
	app, db, _ := setupTestApp(t)
	createProduct(t, db, "Nike Air Max 270", 150, true)
	createProduct(t, db, "Adidas Ultraboost", 190, true)

	resp, data := listProducts(t, app, "/api/products/?search=air+max")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 1)
	assert.Equal(t, "Nike Air Max 270", data[0].(map[string]interface{})["name"])
}

func TestListProductsOrdering(t *testing.T) {
	app, db, _ := setupTestApp(t)
	createProduct(t, db, "Cheap", 10, true)
	createProduct(t, db, "Pricey", 200, true)

	resp, data := listProducts(t, app, "/api/products/?ordering=price")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 2)
	assert.Equal(t, "Cheap", data[0].(map[string]interface{})["name"])

	resp, data = listProducts(t, app, "/api/products/?ordering=-price")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, data, 2)
	assert.Equal(t, "Pricey", data[0].(map[string]interface{})["name"])
}

func TestListProductsInvalidOrdering(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/products/?ordering=stock", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetProductDetailIncludesReviews(t *testing.T) {
	app, db, _ := setupTestApp(t)
	product := createProduct(t, db, "Detailed Shoe", 99, true)
	addReviews(t, db, product.ID, 4, 5)

	image := models.ProductImage{ProductID: product.ID, Image: "media/products/detailed-shoe.jpg", IsPrimary: true}
	require.NoError(t, db.Create(&image).Error)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/products/"+product.ID.String(), nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})

	reviews, ok := data["reviews"].([]interface{})
	require.True(t, ok, "detail response should carry the review list")
	assert.Len(t, reviews, 2)
	assert.InDelta(t, 4.5, data["average_rating"], 1e-9)
	assert.Equal(t, float64(2), data["review_count"])

	images := data["images"].([]interface{})
	require.Len(t, images, 1)
	assert.Equal(t, true, images[0].(map[string]interface{})["is_primary"])
}

func TestGetProductNotFound(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/products/"+uuid.NewString(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/products/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateProductRequiresAuth(t *testing.T) {
	app, db, cfg := setupTestApp(t)

	payload := map[string]interface{}{"name": "Admin Shoe", "price": 75.0}

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/products/", payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := jsonRequest(http.MethodPost, "/api/products/", payload)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, db, cfg))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListProductsPagination(t *testing.T) {
	app, db, _ := setupTestApp(t)
	for i := 0; i < 5; i++ {
		createProduct(t, db, fmt.Sprintf("Shoe %d", i), float64(10+i), true)
	}

	resp, data := listProducts(t, app, "/api/products/?page=2&limit=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, data, 2)
}
