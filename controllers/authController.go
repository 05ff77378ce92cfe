package controllers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/catchy/catchy-api/models"
	"github.com/catchy/catchy-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Lifetimes for issued credentials
	jwtLifetime        = 24 * time.Hour
	verifyTokenExpiry  = 48 * time.Hour
	resetTokenExpiry   = 24 * time.Hour
	jwtCookieMaxAge    = 86400
	tokenByteLength    = 16

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgEmailAlreadyExists    = "Email already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "Invalid email or password"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgInvalidVerifyToken    = "Invalid or expired verification link"
	msgVerifySuccess         = "Your account has been verified successfully."
	msgResetLinkSent         = "If an account exists for that email, a password reset link has been sent."
	msgUserCreated           = "Account created. Check your email to verify your account."
	msgInvalidResetToken     = "Invalid or expired reset token"
	msgPasswordResetSuccess  = "Password reset successful"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// apiFail reports a business-rule or not-found failure. Per the API
// contract these are delivered as HTTP 200 with success=false, callers
// inspect the payload rather than the status code.
func apiFail(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}

func apiSuccess(ctx *gin.Context, data gin.H) {
	payload := gin.H{"success": true}
	for k, v := range data {
		payload[k] = v
	}
	ctx.JSON(http.StatusOK, payload)
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(jwtLifetime).Unix(),
	})

	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("email = ?", email).First(&user)
	return user, result.Error
}

func appURL() string {
	if url := os.Getenv("APP_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// Send an account verification email
func sendAccountVerificationEmail(user models.User, verificationToken string) error {
	emailData := utils.EmailData{
		Name:    user.Name,
		Message: "Thank you for signing up! Click the button below to verify your account.",
		LinkURL: appURL() + "/verify?token=" + url.QueryEscape(verificationToken),
	}

	templatePath := filepath.Join("templates", "verify_email.html")
	return utils.SendEmail(user.Email, "Verify your Catchy account", emailData, templatePath)
}

// Send a password reset email
func sendPasswordResetEmail(user models.User, resetToken string) error {
	emailData := utils.EmailData{
		Name:    user.Name,
		Message: "You requested a password reset. Click the button below to reset your password.",
		LinkURL: appURL() + "/reset-password?token=" + url.QueryEscape(resetToken),
	}

	templatePath := filepath.Join("templates", "reset_password.html")
	return utils.SendEmail(user.Email, "Catchy account password reset", emailData, templatePath)
}

// Signup handles user registration
func Signup(ctx *gin.Context) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if _, err := findUserByEmail(signUpData.Email); err == nil {
		apiFail(ctx, msgEmailAlreadyExists)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	// Role is fixed at signup, only an admin edit can change it later.
	user := models.User{
		Name:     signUpData.Name,
		Email:    signUpData.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
		Verified: false,
	}

	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	verificationToken, err := utils.GenerateCode(tokenByteLength)
	if err != nil {
		log.Println("Token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	tokenRecord := models.VerificationToken{
		Token:     verificationToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(verifyTokenExpiry),
	}
	if result := initializers.DB.Create(&tokenRecord); result.Error != nil {
		log.Println("Verification token creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := sendAccountVerificationEmail(user, verificationToken); err != nil {
		log.Println("Error sending verification email:", err)
		// Continue despite email error, but log it
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"success": true, "message": msgUserCreated})
}

// consumeVerificationToken marks the token's user verified and burns the
// token. Returns an error for unknown or expired tokens.
func consumeVerificationToken(tokenString string) error {
	var token models.VerificationToken
	if err := initializers.DB.Where("token = ?", tokenString).First(&token).Error; err != nil {
		return errors.New(msgInvalidVerifyToken)
	}
	if time.Now().After(token.ExpiresAt) {
		return errors.New(msgInvalidVerifyToken)
	}

	if err := initializers.DB.Model(&models.User{}).
		Where("id = ?", token.UserID).
		Update("verified", true).Error; err != nil {
		return err
	}

	// Single use: the token row goes away with the verification.
	return initializers.DB.Unscoped().Delete(&token).Error
}

// VerifyEmail handles the emailed verification callback link.
func VerifyEmail(ctx *gin.Context) {
	tokenString := ctx.Query("token")

	if err := consumeVerificationToken(tokenString); err != nil {
		ctx.HTML(http.StatusOK, "verify-result.html", gin.H{
			"Success": false,
			"Message": msgInvalidVerifyToken,
		})
		return
	}

	ctx.HTML(http.StatusOK, "verify-result.html", gin.H{
		"Success": true,
		"Message": msgVerifySuccess,
	})
}

// Login handles user authentication
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(loginData.Email)
	if err != nil {
		apiFail(ctx, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		apiFail(ctx, msgInvalidCredentials)
		return
	}

	tokenString, err := generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	// The token is returned directly for API clients and set as an
	// httponly cookie for browser sessions.
	ctx.SetCookie(middlewares.JWTCookieName, tokenString, jwtCookieMaxAge, "/", "", false, true)
	apiSuccess(ctx, gin.H{"token": tokenString})
}

// Logout clears the session cookie and sends the browser home.
func Logout(ctx *gin.Context) {
	ctx.SetCookie(middlewares.JWTCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/")
}

// RequestPasswordReset issues a reset token. The response does not
// reveal whether the email exists.
func RequestPasswordReset(ctx *gin.Context) {
	type forgotPasswordBody struct {
		Email string `json:"email" binding:"required,email"`
	}

	var forgotPasswordData forgotPasswordBody
	if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByEmail(forgotPasswordData.Email)
	if err != nil {
		// Same response as the success path.
		apiSuccess(ctx, gin.H{"message": msgResetLinkSent})
		return
	}

	resetToken, err := utils.GenerateCode(tokenByteLength)
	if err != nil {
		log.Println("Reset token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	tokenRecord := models.PasswordResetToken{
		Token:     resetToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenExpiry),
	}
	if result := initializers.DB.Create(&tokenRecord); result.Error != nil {
		log.Println("Error saving reset token:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := sendPasswordResetEmail(user, resetToken); err != nil {
		log.Println("Error sending password reset email:", err)
	}

	apiSuccess(ctx, gin.H{"message": msgResetLinkSent})
}

// ResetPassword sets a new password for the reset token's user and
// deletes the token so it cannot be replayed.
func ResetPassword(ctx *gin.Context) {
	type resetPasswordBody struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var resetPasswordData resetPasswordBody
	if err := ctx.ShouldBindJSON(&resetPasswordData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var token models.PasswordResetToken
	if err := initializers.DB.Where("token = ?", resetPasswordData.Token).First(&token).Error; err != nil {
		apiFail(ctx, msgInvalidResetToken)
		return
	}
	if time.Now().After(token.ExpiresAt) {
		apiFail(ctx, msgInvalidResetToken)
		return
	}

	hashedPassword, err := hashPassword(resetPasswordData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	if err := initializers.DB.Model(&models.User{}).
		Where("id = ?", token.UserID).
		Update("password", hashedPassword).Error; err != nil {
		log.Println("Error resetting password:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if err := initializers.DB.Unscoped().Delete(&token).Error; err != nil {
		log.Println("Error deleting used reset token:", err)
	}

	apiSuccess(ctx, gin.H{"message": msgPasswordResetSuccess})
}
