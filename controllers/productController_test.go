package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/models"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) {
	t.Helper()

	products := []models.Product{
		{Name: "Wireless Mouse", Category: "Electronics", PriceCents: 2999, Stock: 10},
		{Name: "Mechanical Keyboard", Category: "Electronics", PriceCents: 8999, Stock: 5},
		{Name: "Running Shoes", Category: "Sportswear", PriceCents: 12999, Stock: 8},
		{Name: "Yoga Mat", Category: "Sportswear", PriceCents: 3499, Stock: 0},
		{Name: "Coffee Mug", Category: "Kitchen", PriceCents: 1299, Stock: 20},
	}
	for i := range products {
		require.NoError(t, initializers.DB.Create(&products[i]).Error)
	}
}

func listProducts(t *testing.T, rec []byte) []models.Product {
	t.Helper()

	var products []models.Product
	require.NoError(t, json.Unmarshal(rec, &products))
	return products
}

func TestGetAllProducts(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)
	seedCatalog(t)

	rec := doJSON(t, router, http.MethodGet, "/products/api/all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, listProducts(t, rec.Body.Bytes()), 5)
}

func TestGetProductNotFound(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/products/api/9999", nil)
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, msgProductNotFound, resp.Message)
}

func TestSearchProductsCaseInsensitive(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)
	seedCatalog(t)

	rec := doJSON(t, router, http.MethodGet, "/products/api/search?q=MOUSE", nil)
	products := listProducts(t, rec.Body.Bytes())
	require.Len(t, products, 1)
	require.Equal(t, "Wireless Mouse", products[0].Name)

	// Matches category names too.
	rec = doJSON(t, router, http.MethodGet, "/products/api/search?q=sport", nil)
	require.Len(t, listProducts(t, rec.Body.Bytes()), 2)

	rec = doJSON(t, router, http.MethodGet, "/products/api/search?q=nosuchthing", nil)
	require.Empty(t, listProducts(t, rec.Body.Bytes()))
}

func TestGetProductsByCategory(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)
	seedCatalog(t)

	rec := doJSON(t, router, http.MethodGet, "/products/api/category/Electronics", nil)
	products := listProducts(t, rec.Body.Bytes())
	require.Len(t, products, 2)
	for _, p := range products {
		require.Equal(t, "Electronics", p.Category)
	}
}

func TestGetCategoriesDistinctSorted(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)
	seedCatalog(t)

	rec := doJSON(t, router, http.MethodGet, "/products/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Equal(t, []string{"Electronics", "Kitchen", "Sportswear"}, categories)
}
