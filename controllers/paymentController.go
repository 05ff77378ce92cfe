package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/catchy/catchy-api/models"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
)

const (
	stripeAPIBase   = "https://api.stripe.com/v1"
	paymentCurrency = "usd"
)

// CreatePaymentIntent creates a payment intent with the payment
// provider and returns its client secret. Amounts are minor currency
// units, currency is fixed.
func CreatePaymentIntent(ctx *gin.Context) {
	user, ok := middlewares.CurrentUser(ctx)
	if !ok {
		apiFail(ctx, "Please login first")
		return
	}

	var body struct {
		AmountCents int64 `json:"amountCents"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil || body.AmountCents <= 0 {
		apiFail(ctx, "Invalid amount")
		return
	}

	secretKey := os.Getenv("STRIPE_SECRET_KEY")
	if secretKey == "" {
		apiFail(ctx, "Payment provider is not configured")
		return
	}

	client := resty.New().SetTimeout(30 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+secretKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"amount":   strconv.FormatInt(body.AmountCents, 10),
			"currency": paymentCurrency,
		}).
		Post(stripeAPIBase + "/payment_intents")
	if err != nil {
		log.Println("Payment provider error:", err)
		apiFail(ctx, "Failed to create payment intent")
		return
	}

	if resp.StatusCode() != http.StatusOK {
		log.Printf("Payment provider returned %d: %s", resp.StatusCode(), resp.Body())
		apiFail(ctx, "Failed to create payment intent")
		return
	}

	var intent struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
		Status       string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body(), &intent); err != nil || intent.ClientSecret == "" {
		log.Println("Invalid payment provider response:", err)
		apiFail(ctx, "Invalid response from payment provider")
		return
	}

	payment := models.Payment{
		UserID:      user.ID,
		AmountCents: body.AmountCents,
		Currency:    paymentCurrency,
		IntentID:    intent.ID,
		Status:      intent.Status,
		Response:    datatypes.JSON(resp.Body()),
	}
	if err := initializers.DB.Create(&payment).Error; err != nil {
		// The intent exists at the provider, keep serving it.
		log.Println("Error saving payment record:", err)
	}

	apiSuccess(ctx, gin.H{"clientSecret": intent.ClientSecret})
}
