package routes

import (
	"github.com/catchy/catchy-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	products := server.Group("/products")
	{
		products.GET("", controllers.ProductsPage)

		api := products.Group("/api")
		{
			api.GET("/all", controllers.GetAllProducts)
			api.GET("/search", controllers.SearchProducts)
			api.GET("/categories", controllers.GetCategories)
			api.GET("/category/:category", controllers.GetProductsByCategory)
			api.GET("/:id", controllers.GetProduct)
		}

		products.GET("/:id", controllers.ProductDetailsPage)
	}
}
