package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	user := createTestUser(t, "user@x.com", models.RoleUser)

	rec := doJSON(t, router, http.MethodGet, "/admin/api/users", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/admin/api/users", nil, authCookie(t, user))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateProduct(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)

	rec := doJSON(t, router, http.MethodPost, "/admin/api/products", map[string]any{
		"name":       "Desk Lamp",
		"category":   "Home",
		"priceCents": 4599,
		"stock":      12,
	}, authCookie(t, admin))
	require.True(t, decodeAPI(t, rec).Success)

	var product models.Product
	require.NoError(t, initializers.DB.Where("name = ?", "Desk Lamp").First(&product).Error)
	require.Equal(t, int64(4599), product.PriceCents)
	require.Equal(t, 12, product.Stock)
}

func TestCreateProductNegativeStockRejected(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)

	rec := doJSON(t, router, http.MethodPost, "/admin/api/products", map[string]any{
		"name":       "Broken",
		"category":   "Home",
		"priceCents": 100,
		"stock":      -1,
	}, authCookie(t, admin))
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, "Stock cannot be negative", resp.Message)
}

func TestUpdateProductPartial(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)
	product := createTestProduct(t, "Widget", 1000, 5)

	rec := doJSON(t, router, http.MethodPut, "/admin/api/products/"+itoa(product.ID),
		map[string]any{"priceCents": 1500}, authCookie(t, admin))
	require.True(t, decodeAPI(t, rec).Success)

	var fresh models.Product
	require.NoError(t, initializers.DB.First(&fresh, product.ID).Error)
	require.Equal(t, int64(1500), fresh.PriceCents)
	// Absent fields keep their values.
	require.Equal(t, "Widget", fresh.Name)
	require.Equal(t, 5, fresh.Stock)
}

func TestDeleteProduct(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)
	product := createTestProduct(t, "Widget", 1000, 5)

	rec := doJSON(t, router, http.MethodDelete, "/admin/api/products/"+itoa(product.ID),
		nil, authCookie(t, admin))
	require.True(t, decodeAPI(t, rec).Success)

	err := initializers.DB.First(&models.Product{}, product.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting again reports not found instead of succeeding silently.
	rec = doJSON(t, router, http.MethodDelete, "/admin/api/products/"+itoa(product.ID),
		nil, authCookie(t, admin))
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, msgProductNotFound, resp.Message)
}

func TestUpdateOrderStatusEnumValidated(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)
	order := models.Order{UserID: admin.ID, TotalCents: 1000, Status: models.OrderStatusPlaced}
	require.NoError(t, initializers.DB.Create(&order).Error)

	rec := doJSON(t, router, http.MethodPost, "/admin/api/orders/"+itoa(order.ID)+"/status",
		map[string]any{"status": "teleported"}, authCookie(t, admin))
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, "Invalid status", resp.Message)

	rec = doJSON(t, router, http.MethodPost, "/admin/api/orders/"+itoa(order.ID)+"/status",
		map[string]any{"status": models.OrderStatusShipped}, authCookie(t, admin))
	require.True(t, decodeAPI(t, rec).Success)

	var fresh models.Order
	require.NoError(t, initializers.DB.First(&fresh, order.ID).Error)
	require.Equal(t, models.OrderStatusShipped, fresh.Status)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)

	rec := doJSON(t, router, http.MethodPost, "/admin/api/orders/9999/status",
		map[string]any{"status": models.OrderStatusShipped}, authCookie(t, admin))
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, "Order not found", resp.Message)
}

func TestGetAllUsersOmitsPasswordHashes(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)
	createTestUser(t, "user@x.com", models.RoleUser)

	rec := doJSON(t, router, http.MethodGet, "/admin/api/users", nil, authCookie(t, admin))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "$2a$")

	var users []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
}

func TestDeleteUser(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)
	victim := createTestUser(t, "user@x.com", models.RoleUser)

	rec := doJSON(t, router, http.MethodDelete, "/admin/api/users/"+itoa(victim.ID),
		nil, authCookie(t, admin))
	require.True(t, decodeAPI(t, rec).Success)

	err := initializers.DB.First(&models.User{}, victim.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetAllOrdersListsEveryOrder(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	admin := createTestUser(t, "admin@x.com", models.RoleAdmin)
	user := createTestUser(t, "user@x.com", models.RoleUser)
	product := createTestProduct(t, "Widget", 1000, 10)

	doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 1}, authCookie(t, user))
	doJSON(t, router, http.MethodPost, "/orders/api/place", nil, authCookie(t, user))

	rec := doJSON(t, router, http.MethodGet, "/admin/api/orders", nil, authCookie(t, admin))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.Equal(t, user.ID, orders[0].UserID)
	require.Len(t, orders[0].OrderItems, 1)
}
