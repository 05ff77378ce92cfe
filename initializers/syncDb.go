package initializers

import (
	"log"

	"github.com/catchy/catchy-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.VerificationToken{},
		&models.PasswordResetToken{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal("Failed to sync database:", err)
	}
	log.Println("Database synced successfully.")
}
