package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/catchy/catchy-api/models"
	"github.com/catchy/catchy-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgCartIsEmpty = "Cart is empty"

// lockForUpdate adds a row lock on dialects that support it so that
// concurrent checkouts of the same product serialize on the stock row.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// placeOrder runs the whole checkout as one transaction: stock checks,
// order and item rows, stock decrement and cart clear either all happen
// or none do.
func placeOrder(user models.User) (models.Order, error) {
	var order models.Order

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", user.ID).Order("id asc").Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return errors.New(msgCartIsEmpty)
		}

		// Lock every product row up front, then re-check stock against
		// the locked values.
		products := make(map[uint]models.Product, len(cartItems))
		for _, cartItem := range cartItems {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, cartItem.ProductID).Error; err != nil {
				return fmt.Errorf("%s: product %d", msgProductNotFound, cartItem.ProductID)
			}
			if product.Stock < cartItem.Quantity {
				return fmt.Errorf("%s for product: %s", msgInsufficientStock, product.Name)
			}
			products[cartItem.ProductID] = product
		}

		var totalCents int64
		for _, cartItem := range cartItems {
			totalCents += products[cartItem.ProductID].PriceCents * int64(cartItem.Quantity)
		}

		order = models.Order{
			UserID:     user.ID,
			TotalCents: totalCents,
			Status:     models.OrderStatusPlaced,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, cartItem := range cartItems {
			product := products[cartItem.ProductID]
			orderItem := models.OrderItem{
				OrderID:    order.ID,
				ProductID:  product.ID,
				Name:       product.Name,
				Quantity:   cartItem.Quantity,
				PriceCents: product.PriceCents * int64(cartItem.Quantity),
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.Product{}).
				Where("id = ?", product.ID).
				Update("stock", gorm.Expr("stock - ?", cartItem.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error
	})

	return order, err
}

// PlaceOrder checks out the authenticated user's cart.
func PlaceOrder(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apiFail(ctx, "Please login first")
		return
	}

	order, err := placeOrder(user)
	if err != nil {
		apiFail(ctx, err.Error())
		return
	}

	// Best-effort confirmation mail, the order stands either way.
	if err := sendOrderConfirmationEmail(user, order); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}

	apiSuccess(ctx, gin.H{"message": "Order placed successfully", "orderId": order.ID})
}

func sendOrderConfirmationEmail(user models.User, order models.Order) error {
	emailData := utils.EmailData{
		Name: user.Name,
		Message: fmt.Sprintf("Thanks for your order! Order #%d for $%.2f has been placed.",
			order.ID, float64(order.TotalCents)/100),
		LinkURL: appURL() + fmt.Sprintf("/orders/%d", order.ID),
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(user.Email, "Your Catchy order confirmation", emailData, templatePath)
}

// GetMyOrders returns the caller's orders, newest first.
func GetMyOrders(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusOK, []models.Order{})
		return
	}

	var orders []models.Order
	if err := initializers.DB.Preload("OrderItems").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// OrdersPage renders the caller's order history.
func OrdersPage(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	var orders []models.Order
	if err := initializers.DB.Preload("OrderItems").
		Where("user_id = ?", user.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	ctx.HTML(http.StatusOK, "orders.html", gin.H{"Orders": orders, "User": user})
}

// OrderDetailsPage shows one order to its owner or an admin.
func OrderDetailsPage(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.Redirect(http.StatusFound, "/orders")
		return
	}

	var order models.Order
	if err := initializers.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		ctx.Redirect(http.StatusFound, "/orders")
		return
	}

	if order.UserID != user.ID && user.Role != models.RoleAdmin {
		ctx.Redirect(http.StatusFound, "/orders")
		return
	}

	ctx.HTML(http.StatusOK, "order-details.html", gin.H{"Order": order, "User": user})
}
