package routes

import (
	"github.com/catchy/catchy-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart")
	{
		cart.GET("", controllers.CartPage)

		api := cart.Group("/api")
		{
			api.GET("/items", controllers.GetCartItems)
			api.GET("/total", controllers.GetCartTotal)
			api.POST("/add", controllers.AddToCart)
			api.PUT("/update/:id", controllers.UpdateCartItem)
			api.DELETE("/remove/:id", controllers.RemoveFromCart)
		}
	}
}
