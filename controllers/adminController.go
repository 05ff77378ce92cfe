package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/catchy/catchy-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const uploadsDir = "static/uploads"

// AdminDashboard renders the management view with the full product,
// user and order listings.
func AdminDashboard(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok || user.Role != models.RoleAdmin {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	products, err := allProducts()
	if err != nil {
		log.Println("Database error:", err)
	}

	var users []models.User
	if err := initializers.DB.Order("id asc").Find(&users).Error; err != nil {
		log.Println("Database error:", err)
	}

	var orders []models.Order
	if err := initializers.DB.Preload("OrderItems").Order("created_at desc").Find(&orders).Error; err != nil {
		log.Println("Database error:", err)
	}

	categories, err := allCategories()
	if err != nil {
		log.Println("Database error:", err)
	}

	ctx.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"Products":   products,
		"Users":      users,
		"Orders":     orders,
		"Categories": categories,
		"User":       user,
	})
}

// CreateProduct adds a catalog entry.
func CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if product.Stock < 0 {
		apiFail(ctx, "Stock cannot be negative")
		return
	}

	if err := initializers.DB.Create(&product).Error; err != nil {
		log.Println("Product creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	apiSuccess(ctx, gin.H{"message": "Product created successfully", "product": product})
}

// UpdateProduct applies a partial edit, absent fields keep their value.
func UpdateProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		PriceCents  *int64  `json:"priceCents"`
		ImageURL    *string `json:"imageUrl"`
		Stock       *int    `json:"stock"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apiFail(ctx, msgProductNotFound)
			return
		}
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if body.Name != nil && *body.Name != "" {
		product.Name = *body.Name
	}
	if body.Description != nil {
		product.Description = *body.Description
	}
	if body.Category != nil && *body.Category != "" {
		product.Category = *body.Category
	}
	if body.PriceCents != nil {
		product.PriceCents = *body.PriceCents
	}
	if body.ImageURL != nil {
		product.ImageURL = *body.ImageURL
	}
	if body.Stock != nil {
		if *body.Stock < 0 {
			apiFail(ctx, "Stock cannot be negative")
			return
		}
		product.Stock = *body.Stock
	}

	if err := initializers.DB.Save(&product).Error; err != nil {
		log.Println("Product update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	apiSuccess(ctx, gin.H{"message": "Product updated successfully", "product": product})
}

// DeleteProduct removes a catalog entry.
func DeleteProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.Product{}, productID)
	if result.Error != nil {
		log.Println("Product delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		apiFail(ctx, msgProductNotFound)
		return
	}

	apiSuccess(ctx, gin.H{"message": "Product deleted successfully"})
}

// UploadProductImage stores an uploaded image under a randomized
// filename. Default target is the local static uploads directory; when
// S3_BUCKET is configured the file goes to S3 instead.
func UploadProductImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		apiFail(ctx, "Empty file")
		return
	}

	filename := uuid.NewString() + "_" + filepath.Base(fileHeader.Filename)

	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			log.Println("Error loading AWS config:", err)
			apiFail(ctx, "Failed to configure storage")
			return
		}
		uploader := manager.NewUploader(s3.NewFromConfig(cfg))

		f, err := fileHeader.Open()
		if err != nil {
			apiFail(ctx, "Failed to read upload")
			return
		}
		defer f.Close()

		result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(filename),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
		})
		if err != nil {
			log.Println("Error uploading file to S3:", err)
			apiFail(ctx, "Failed to store upload")
			return
		}

		apiSuccess(ctx, gin.H{"imageUrl": result.Location})
		return
	}

	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		log.Println("Error creating uploads dir:", err)
		apiFail(ctx, "Failed to store upload")
		return
	}

	target := filepath.Join(uploadsDir, filename)
	if err := ctx.SaveUploadedFile(fileHeader, target); err != nil {
		log.Println("Error saving upload:", err)
		apiFail(ctx, "Failed to store upload")
		return
	}

	apiSuccess(ctx, gin.H{"imageUrl": "/uploads/" + filename})
}

// GetAllUsers lists every user account.
func GetAllUsers(ctx *gin.Context) {
	var users []models.User
	if err := initializers.DB.Order("id asc").Find(&users).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// DeleteUser removes a user account.
func DeleteUser(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := initializers.DB.Unscoped().Delete(&models.User{}, userID)
	if result.Error != nil {
		log.Println("User delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		apiFail(ctx, "User not found")
		return
	}

	apiSuccess(ctx, gin.H{"message": "User deleted successfully"})
}

// GetAllOrders lists every order, newest first.
func GetAllOrders(ctx *gin.Context) {
	var orders []models.Order
	if err := initializers.DB.Preload("OrderItems").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus sets an order's status to any known state.
func UpdateOrderStatus(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		apiFail(ctx, "Invalid status")
		return
	}

	if !models.ValidOrderStatus(body.Status) {
		apiFail(ctx, "Invalid status")
		return
	}

	result := initializers.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", body.Status)
	if result.Error != nil {
		log.Println("Order status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		apiFail(ctx, "Order not found")
		return
	}

	apiSuccess(ctx, gin.H{"message": fmt.Sprintf("Order status updated to %s", body.Status)})
}
