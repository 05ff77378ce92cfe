package middlewares

import (
	"os"
	"strings"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CurrentUserKey is where Authenticate stores the resolved user in the
// gin context.
const CurrentUserKey = "currentUser"

// JWTCookieName carries the session token for browser clients.
const JWTCookieName = "JWT_TOKEN"

func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := ctx.Cookie(JWTCookieName); err == nil {
		return cookie
	}
	return ""
}

// Authenticate resolves the caller's identity from a bearer token or the
// session cookie and attaches the user to the request context. Any
// failure leaves the request anonymous, handlers that need an identity
// enforce it themselves.
func Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)
		if tokenString == "" {
			ctx.Next()
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			ctx.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.Next()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			ctx.Next()
			return
		}

		var user models.User
		if err := initializers.DB.First(&user, uint(userID)).Error; err != nil {
			ctx.Next()
			return
		}

		ctx.Set(CurrentUserKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the authenticated user attached by Authenticate.
func CurrentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get(CurrentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
