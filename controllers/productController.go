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
	"gorm.io/gorm"
)

func allProducts() ([]models.Product, error) {
	var products []models.Product
	err := initializers.DB.Order("id asc").Find(&products).Error
	return products, err
}

func productsByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	err := initializers.DB.Where("category = ?", category).Order("id asc").Find(&products).Error
	return products, err
}

// searchProducts does a case-insensitive substring match over product
// name and category.
func searchProducts(keyword string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + keyword + "%"
	err := initializers.DB.
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(category) LIKE LOWER(?)", pattern, pattern).
		Order("id asc").
		Find(&products).Error
	return products, err
}

// allCategories is the distinct, sorted category list over the catalog.
func allCategories() ([]string, error) {
	var categories []string
	err := initializers.DB.Model(&models.Product{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	return categories, err
}

// ProductsPage renders the catalog, optionally filtered or searched.
func ProductsPage(ctx *gin.Context) {
	var (
		products []models.Product
		err      error
	)

	search := ctx.Query("search")
	category := ctx.Query("category")
	switch {
	case search != "":
		products, err = searchProducts(search)
	case category != "":
		products, err = productsByCategory(category)
	default:
		products, err = allProducts()
	}
	if err != nil {
		log.Println("Database error:", err)
		products = nil
	}

	categories, err := allCategories()
	if err != nil {
		log.Println("Database error:", err)
	}

	user, _ := middlewares.CurrentUser(ctx)
	ctx.HTML(http.StatusOK, "products.html", gin.H{
		"Products":         products,
		"Categories":       categories,
		"SearchQuery":      search,
		"SelectedCategory": category,
		"User":             user,
	})
}

// ProductDetailsPage renders a single product.
func ProductDetailsPage(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.Redirect(http.StatusFound, "/products")
		return
	}

	var product models.Product
	if err := initializers.DB.First(&product, productID).Error; err != nil {
		ctx.Redirect(http.StatusFound, "/products")
		return
	}

	user, _ := middlewares.CurrentUser(ctx)
	ctx.HTML(http.StatusOK, "product-details.html", gin.H{"Product": product, "User": user})
}

// GetAllProducts returns the whole catalog as JSON.
func GetAllProducts(ctx *gin.Context) {
	products, err := allProducts()
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProduct returns one product as JSON.
func GetProduct(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
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

	ctx.JSON(http.StatusOK, product)
}

// SearchProducts returns products matching ?q= as JSON.
func SearchProducts(ctx *gin.Context) {
	products, err := searchProducts(ctx.Query("q"))
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProductsByCategory returns one category's products as JSON.
func GetProductsByCategory(ctx *gin.Context) {
	products, err := productsByCategory(ctx.Param("category"))
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetCategories returns the distinct sorted category list as JSON.
func GetCategories(ctx *gin.Context) {
	categories, err := allCategories()
	if err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}
