package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/models"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T, name string, priceCents int64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:       name,
		Category:   "Electronics",
		PriceCents: priceCents,
		Stock:      stock,
	}
	require.NoError(t, initializers.DB.Create(&product).Error)
	return product
}

func guestSessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == GuestCartCookie {
			return cookie
		}
	}
	return nil
}

func TestAddToCartMergesAndRevalidatesStock(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	user := createTestUser(t, "a@x.com", models.RoleUser)
	product := createTestProduct(t, "Widget", 1000, 5)
	cookie := authCookie(t, user)

	rec := doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 3}, cookie)
	require.True(t, decodeAPI(t, rec).Success)

	// 3 + 3 > 5: the merge must fail and leave the row untouched.
	rec = doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 3}, cookie)
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, msgInsufficientStock, resp.Message)

	var items []models.CartItem
	require.NoError(t, initializers.DB.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)

	// 3 + 2 = 5 fits, and still a single merged row.
	rec = doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 2}, cookie)
	require.True(t, decodeAPI(t, rec).Success)

	require.NoError(t, initializers.DB.Where("user_id = ?", user.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	user := createTestUser(t, "a@x.com", models.RoleUser)

	rec := doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": 42, "quantity": 1}, authCookie(t, user))
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, msgProductNotFound, resp.Message)
}

func TestGuestCartGetsSessionCookie(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	product := createTestProduct(t, "Widget", 1000, 5)

	rec := doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 2})
	require.True(t, decodeAPI(t, rec).Success)

	session := guestSessionCookie(rec)
	require.NotNil(t, session)
	require.False(t, session.HttpOnly)

	var items []models.CartItem
	require.NoError(t, initializers.DB.Where("session_id = ?", session.Value).Find(&items).Error)
	require.Len(t, items, 1)
	require.Nil(t, items[0].UserID)
}

func TestGuestAndUserCartsAreIsolated(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	user := createTestUser(t, "a@x.com", models.RoleUser)
	product := createTestProduct(t, "Widget", 1000, 10)

	rec := doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 2}, authCookie(t, user))
	require.True(t, decodeAPI(t, rec).Success)

	rec = doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 3})
	require.True(t, decodeAPI(t, rec).Success)
	session := guestSessionCookie(rec)
	require.NotNil(t, session)

	// Same product, two rows, no merging across identities.
	var userItems, guestItems []models.CartItem
	require.NoError(t, initializers.DB.Where("user_id = ?", user.ID).Find(&userItems).Error)
	require.NoError(t, initializers.DB.Where("session_id = ?", session.Value).Find(&guestItems).Error)
	require.Len(t, userItems, 1)
	require.Len(t, guestItems, 1)
	require.Equal(t, 2, userItems[0].Quantity)
	require.Equal(t, 3, guestItems[0].Quantity)
}

func TestUpdateCartItemZeroQuantityDeletesRow(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	user := createTestUser(t, "a@x.com", models.RoleUser)
	product := createTestProduct(t, "Widget", 1000, 5)
	cookie := authCookie(t, user)

	rec := doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 2}, cookie)
	itemID := decodeAPI(t, rec).ID

	rec = doJSON(t, router, http.MethodPut, "/cart/api/update/"+itoa(itemID),
		map[string]any{"quantity": 0}, cookie)
	require.True(t, decodeAPI(t, rec).Success)

	var count int64
	initializers.DB.Model(&models.CartItem{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestUpdateCartItemRevalidatesStock(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	user := createTestUser(t, "a@x.com", models.RoleUser)
	product := createTestProduct(t, "Widget", 1000, 5)
	cookie := authCookie(t, user)

	rec := doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 2}, cookie)
	itemID := decodeAPI(t, rec).ID

	rec = doJSON(t, router, http.MethodPut, "/cart/api/update/"+itoa(itemID),
		map[string]any{"quantity": 9}, cookie)
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, msgInsufficientStock, resp.Message)

	var item models.CartItem
	require.NoError(t, initializers.DB.First(&item, itemID).Error)
	require.Equal(t, 2, item.Quantity)
}

func TestCartOwnershipEnforced(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	owner := createTestUser(t, "owner@x.com", models.RoleUser)
	intruder := createTestUser(t, "intruder@x.com", models.RoleUser)
	product := createTestProduct(t, "Widget", 1000, 5)

	rec := doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": product.ID, "quantity": 2}, authCookie(t, owner))
	itemID := decodeAPI(t, rec).ID

	rec = doJSON(t, router, http.MethodDelete, "/cart/api/remove/"+itoa(itemID), nil,
		authCookie(t, intruder))
	resp := decodeAPI(t, rec)
	require.False(t, resp.Success)
	require.Equal(t, msgNotYourCartItem, resp.Message)

	rec = doJSON(t, router, http.MethodPut, "/cart/api/update/"+itoa(itemID),
		map[string]any{"quantity": 1}, authCookie(t, intruder))
	require.False(t, decodeAPI(t, rec).Success)

	var count int64
	initializers.DB.Model(&models.CartItem{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestCartTotalComputedOnDemand(t *testing.T) {
	newTestDB(t)
	router := newTestRouter(t)

	user := createTestUser(t, "a@x.com", models.RoleUser)
	cheap := createTestProduct(t, "Cheap", 250, 10)
	pricey := createTestProduct(t, "Pricey", 10000, 10)
	cookie := authCookie(t, user)

	doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": cheap.ID, "quantity": 4}, cookie)
	doJSON(t, router, http.MethodPost, "/cart/api/add",
		map[string]any{"productId": pricey.ID, "quantity": 1}, cookie)

	rec := doJSON(t, router, http.MethodGet, "/cart/api/total", nil, cookie)
	var resp struct {
		Success    bool  `json:"success"`
		TotalCents int64 `json:"totalCents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, int64(4*250+10000), resp.TotalCents)
}
