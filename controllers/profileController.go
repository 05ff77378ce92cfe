package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfilePage renders the caller's account page.
func ProfilePage(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	ctx.HTML(http.StatusOK, "profile.html", gin.H{"User": user})
}

// UpdateProfile partially updates the caller's name, email or password.
// A new email must not collide with another account.
func UpdateProfile(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apiFail(ctx, "Please login first")
		return
	}

	var body struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if body.Name != nil && *body.Name != "" {
		user.Name = *body.Name
	}

	if body.Email != nil && *body.Email != "" && *body.Email != user.Email {
		_, err := findUserByEmail(*body.Email)
		if err == nil {
			apiFail(ctx, msgEmailAlreadyExists)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		user.Email = *body.Email
	}

	if body.Password != nil && *body.Password != "" {
		hashedPassword, err := hashPassword(*body.Password)
		if err != nil {
			log.Println("Password hashing error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
			return
		}
		user.Password = hashedPassword
	}

	if err := initializers.DB.Save(&user).Error; err != nil {
		log.Println("Profile update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	apiSuccess(ctx, gin.H{"message": "Profile updated successfully", "user": user})
}
