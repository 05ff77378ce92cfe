package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := CurrentUser(ctx); !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login first"})
			return
		}
		ctx.Next()
	}
}
