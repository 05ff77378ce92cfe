package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	"github.com/catchy/catchy-api/initializers"
	"github.com/catchy/catchy-api/middlewares"
	"github.com/catchy/catchy-api/routes"
	"github.com/catchy/catchy-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const tokenCleanupInterval = time.Hour

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.SeedDatabase()
}

func main() {
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.Authenticate())

	server.SetFuncMap(template.FuncMap{
		"dollars": func(cents int64) string {
			return fmt.Sprintf("%.2f", float64(cents)/100)
		},
		"lineTotal": func(priceCents int64, quantity int) int64 {
			return priceCents * int64(quantity)
		},
	})
	server.LoadHTMLGlob("templates/*.html")
	server.Static("/static", "./static")
	server.Static("/uploads", "./static/uploads")

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ProductRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server)
	routes.AdminRoutes(server)
	routes.PaymentRoutes(server)

	utils.StartCleanupJob(initializers.DB, tokenCleanupInterval)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Listening on :" + port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
