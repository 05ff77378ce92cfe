package routes

import (
	"github.com/catchy/catchy-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.HomePage)
	server.GET("/login", controllers.LoginPage)
	server.GET("/signup", controllers.SignupPage)
	server.GET("/reset-password", controllers.ResetPasswordPage)
	server.GET("/profile", controllers.ProfilePage)
	server.PUT("/profile/api/update", controllers.UpdateProfile)
}
