package routes

import (
	"github.com/catchy/catchy-api/controllers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/admin", middlewares.RequireAdmin())
	{
		admin.GET("/dashboard", controllers.AdminDashboard)

		api := admin.Group("/api")
		{
			api.POST("/products", controllers.CreateProduct)
			api.PUT("/products/:id", controllers.UpdateProduct)
			api.DELETE("/products/:id", controllers.DeleteProduct)
			api.POST("/products/upload", controllers.UploadProductImage)

			api.GET("/users", controllers.GetAllUsers)
			api.DELETE("/users/:id", controllers.DeleteUser)

			api.GET("/orders", controllers.GetAllOrders)
			api.POST("/orders/:id/status", controllers.UpdateOrderStatus)
		}
	}
}
