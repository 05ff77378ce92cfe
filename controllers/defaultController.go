package controllers

import (
	"net/http"

	"github.com/catchy/catchy-api/middlewares"
	"github.com/gin-gonic/gin"
)

func HomePage(ctx *gin.Context) {
	user, _ := middlewares.CurrentUser(ctx)
	ctx.HTML(http.StatusOK, "index.html", gin.H{"User": user})
}

func LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", nil)
}

func SignupPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "signup.html", nil)
}

func ResetPasswordPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "reset-password.html", gin.H{"Token": ctx.Query("token")})
}
