package routes

import (
	"github.com/catchy/catchy-api/controllers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PaymentRoutes(server *gin.Engine) {
	payments := server.Group("/payments")
	{
		payments.POST("/create-intent", middlewares.RequireAuth(), controllers.CreatePaymentIntent)
	}
}
