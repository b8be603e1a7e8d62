package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"smartserve-api/config"
	"smartserve-api/handlers"
	"smartserve-api/keepalive"
	"smartserve-api/mailer"
	"smartserve-api/otp"
	"smartserve-api/routes"
	"smartserve-api/services"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("Database connected and migrated successfully")

	otpStore := otp.NewStore()
	mail := mailer.New(cfg.SMTP)
	if !mail.Enabled() {
		log.Println("SMTP not configured — running in dev mode, OTP codes are echoed in responses")
	}

	authService := services.NewAuthService(db, otpStore, mail, cfg.JWTSecret, cfg.JWTExpiry)
	foodService := services.NewFoodService(db)
	orderService := services.NewOrderService(db)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(r, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewFoodHandler(foodService),
		handlers.NewOrderHandler(orderService),
	)

	keepalive.Start(cfg.KeepAliveURL)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
