package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/catchy/catchy-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestCartCookie tracks an anonymous cart. It is deliberately not
// httponly: the storefront script reads it to know a guest cart exists.
const GuestCartCookie = "CART_SESSION"

const guestCartCookieMaxAge = 30 * 86400

const (
	msgProductNotFound   = "Product not found"
	msgInsufficientStock = "Insufficient stock"
	msgCartItemNotFound  = "Cart item not found"
	msgNotYourCartItem   = "Unauthorized"
)

// cartOwner is the single identity a cart row belongs to: either a
// logged-in user or an anonymous guest session. Cart logic is written
// once against this type instead of branching per call site.
type cartOwner struct {
	userID    *uint
	sessionID string
}

func (o cartOwner) scope(db *gorm.DB) *gorm.DB {
	if o.userID != nil {
		return db.Where("user_id = ?", *o.userID)
	}
	return db.Where("session_id = ?", o.sessionID)
}

func (o cartOwner) owns(item models.CartItem) bool {
	if o.userID != nil {
		return item.UserID != nil && *item.UserID == *o.userID
	}
	return item.SessionID == o.sessionID
}

func (o cartOwner) newItem(productID uint, quantity int) models.CartItem {
	return models.CartItem{
		UserID:    o.userID,
		SessionID: o.sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}
}

// resolveCartOwner returns the identity for this request's cart. An
// unauthenticated caller gets a guest session cookie on first use.
func resolveCartOwner(ctx *gin.Context) cartOwner {
	if user, ok := middlewares.CurrentUser(ctx); ok {
		id := user.ID
		return cartOwner{userID: &id}
	}

	sessionID, err := ctx.Cookie(GuestCartCookie)
	if err != nil || sessionID == "" {
		sessionID = uuid.NewString()
		ctx.SetCookie(GuestCartCookie, sessionID, guestCartCookieMaxAge, "/", "", false, false)
	}
	return cartOwner{sessionID: sessionID}
}

func ownerCartItems(owner cartOwner) ([]models.CartItem, error) {
	var items []models.CartItem
	err := owner.scope(initializers.DB.Preload("Product")).Order("id asc").Find(&items).Error
	return items, err
}

func cartTotalCents(owner cartOwner) (int64, error) {
	items, err := ownerCartItems(owner)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, item := range items {
		total += item.Product.PriceCents * int64(item.Quantity)
	}
	return total, nil
}

// AddToCart validates stock and either merges into an existing row for
// the same product or inserts a new one.
func AddToCart(ctx *gin.Context) {
	var body struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	owner := resolveCartOwner(ctx)

	var product models.Product
	if err := initializers.DB.First(&product, body.ProductID).Error; err != nil {
		apiFail(ctx, msgProductNotFound)
		return
	}

	if product.Stock < body.Quantity {
		apiFail(ctx, msgInsufficientStock)
		return
	}

	var existing models.CartItem
	err := owner.scope(initializers.DB).Where("product_id = ?", body.ProductID).First(&existing).Error
	if err == nil {
		newQuantity := existing.Quantity + body.Quantity
		if product.Stock < newQuantity {
			apiFail(ctx, msgInsufficientStock)
			return
		}
		existing.Quantity = newQuantity
		if err := initializers.DB.Save(&existing).Error; err != nil {
			log.Println("Cart item update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		apiSuccess(ctx, gin.H{"message": "Product added to cart", "id": existing.ID})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	item := owner.newItem(body.ProductID, body.Quantity)
	if err := initializers.DB.Create(&item).Error; err != nil {
		log.Println("Cart item create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	apiSuccess(ctx, gin.H{"message": "Product added to cart", "id": item.ID})
}

// UpdateCartItem sets a new quantity. Zero or below removes the row.
func UpdateCartItem(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	owner := resolveCartOwner(ctx)

	var item models.CartItem
	if err := initializers.DB.Preload("Product").First(&item, itemID).Error; err != nil {
		apiFail(ctx, msgCartItemNotFound)
		return
	}

	if !owner.owns(item) {
		apiFail(ctx, msgNotYourCartItem)
		return
	}

	if body.Quantity <= 0 {
		if err := initializers.DB.Unscoped().Delete(&item).Error; err != nil {
			log.Println("Cart item delete error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		apiSuccess(ctx, gin.H{"message": "Item removed from cart"})
		return
	}

	if item.Product.Stock < body.Quantity {
		apiFail(ctx, msgInsufficientStock)
		return
	}

	item.Quantity = body.Quantity
	if err := initializers.DB.Save(&item).Error; err != nil {
		log.Println("Cart item update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	apiSuccess(ctx, gin.H{"message": "Cart updated"})
}

// RemoveFromCart deletes a cart row after an ownership check.
func RemoveFromCart(ctx *gin.Context) {
	itemID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	owner := resolveCartOwner(ctx)

	var item models.CartItem
	if err := initializers.DB.First(&item, itemID).Error; err != nil {
		apiFail(ctx, msgCartItemNotFound)
		return
	}

	if !owner.owns(item) {
		apiFail(ctx, msgNotYourCartItem)
		return
	}

	if err := initializers.DB.Unscoped().Delete(&item).Error; err != nil {
		log.Println("Cart item delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	apiSuccess(ctx, gin.H{"message": "Item removed from cart"})
}

// GetCartItems returns the caller's cart rows.
func GetCartItems(ctx *gin.Context) {
	owner := resolveCartOwner(ctx)

	items, err := ownerCartItems(owner)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// GetCartTotal computes the cart total on demand.
func GetCartTotal(ctx *gin.Context) {
	owner := resolveCartOwner(ctx)

	total, err := cartTotalCents(owner)
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	apiSuccess(ctx, gin.H{"totalCents": total})
}

// CartPage renders the cart view for users and guests alike.
func CartPage(ctx *gin.Context) {
	owner := resolveCartOwner(ctx)

	items, err := ownerCartItems(owner)
	if err != nil {
		ctx.Redirect(http.StatusFound, "/")
		return
	}
	total, err := cartTotalCents(owner)
	if err != nil {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	user, _ := middlewares.CurrentUser(ctx)
	ctx.HTML(http.StatusOK, "cart.html", gin.H{
		"CartItems":  items,
		"TotalCents": total,
		"User":       user,
	})
}
