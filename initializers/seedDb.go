package initializers

import (
	"log"
	"os"

	"github.com/catchy/catchy-api/models"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(name, email, password, role string) {
	var existing models.User
	if err := DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Seed: failed to hash password for", email, err)
		return
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Verified: true,
	}
	if err := DB.Create(&user).Error; err != nil {
		log.Println("Seed: failed to create user", email, err)
		return
	}
	log.Printf("Seed: created %s user %s", role, email)
}

// SeedDatabase creates the default accounts and a starter catalog when
// the products table is empty. SKIP_SEED=true disables it.
func SeedDatabase() {
	if os.Getenv("SKIP_SEED") == "true" {
		return
	}

	seedUser("Admin User", "admin@catchy.com", "admin123", models.RoleAdmin)
	seedUser("Test User", "user@catchy.com", "user123", models.RoleUser)

	var count int64
	DB.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return
	}

	products := []models.Product{
		{Name: "iPhone 15 Pro", Description: "Latest iPhone with A17 Pro chip, 48MP camera, and titanium design", Category: "Electronics", PriceCents: 99999, ImageURL: "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=500", Stock: 50},
		{Name: "Samsung Galaxy S24", Description: "Premium Android smartphone with AI features and advanced camera system", Category: "Electronics", PriceCents: 89999, ImageURL: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=500", Stock: 40},
		{Name: "MacBook Pro 16\"", Description: "Powerful laptop with M3 chip, perfect for professionals and creatives", Category: "Electronics", PriceCents: 249999, ImageURL: "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=500", Stock: 25},
		{Name: "Sony WH-1000XM5 Headphones", Description: "Premium noise-cancelling wireless headphones with exceptional sound quality", Category: "Electronics", PriceCents: 39999, ImageURL: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500", Stock: 60},
		{Name: "Classic Leather Jacket", Description: "Premium genuine leather jacket, timeless design, perfect fit", Category: "Fashion", PriceCents: 29999, ImageURL: "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=500", Stock: 30},
		{Name: "Designer Sunglasses", Description: "Stylish UV protection sunglasses with polarized lenses", Category: "Fashion", PriceCents: 14999, ImageURL: "https://images.unsplash.com/photo-1572635196237-14b3f281fbcf?w=500", Stock: 75},
		{Name: "Running Shoes", Description: "Comfortable athletic shoes with advanced cushioning technology", Category: "Fashion", PriceCents: 12999, ImageURL: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500", Stock: 100},
		{Name: "The Great Gatsby", Description: "Classic American novel by F. Scott Fitzgerald", Category: "Books", PriceCents: 1299, ImageURL: "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=500", Stock: 200},
		{Name: "Clean Code", Description: "A Handbook of Agile Software Craftsmanship by Robert C. Martin", Category: "Books", PriceCents: 4999, ImageURL: "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=500", Stock: 150},
		{Name: "The Pragmatic Programmer", Description: "Your Journey to Mastery by Andrew Hunt and David Thomas", Category: "Books", PriceCents: 4499, ImageURL: "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=500", Stock: 120},
		{Name: "Smart LED Light Bulbs", Description: "WiFi enabled LED bulbs with color changing capabilities", Category: "Home & Garden", PriceCents: 2999, ImageURL: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=500", Stock: 80},
		{Name: "Indoor Plant Set", Description: "Beautiful collection of 5 low-maintenance indoor plants", Category: "Home & Garden", PriceCents: 7999, ImageURL: "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=500", Stock: 45},
		{Name: "Yoga Mat Premium", Description: "Eco-friendly, non-slip yoga mat with carrying strap", Category: "Sports", PriceCents: 3999, ImageURL: "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=500", Stock: 90},
		{Name: "Dumbbell Set", Description: "Adjustable dumbbell set, perfect for home workouts", Category: "Sports", PriceCents: 19999, ImageURL: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=500", Stock: 35},
	}

	if err := DB.Create(&products).Error; err != nil {
		log.Println("Seed: failed to create sample products:", err)
		return
	}
	log.Println("Seed: sample products created.")
}
