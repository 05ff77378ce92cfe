package routes

import (
	"github.com/catchy/catchy-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
		auth.POST("/request-reset", controllers.RequestPasswordReset)
		auth.POST("/reset", controllers.ResetPassword)
	}
	server.GET("/verify", controllers.VerifyEmail)
	server.POST("/logout", controllers.Logout)
}
