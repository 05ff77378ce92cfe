package routes

import (
	"github.com/catchy/catchy-api/controllers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders")
	{
		orders.GET("", controllers.OrdersPage)
		orders.GET("/api/my-orders", controllers.GetMyOrders)
		orders.POST("/api/place", middlewares.RequireAuth(), controllers.PlaceOrder)
		orders.GET("/:id", controllers.OrderDetailsPage)
	}
}
