package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stockpro/internal/handlers"
	"stockpro/internal/middleware"
	"stockpro/internal/models"
	"stockpro/internal/repositories"
	"stockpro/internal/services"
	"stockpro/pkg/googleauth"
	"stockpro/pkg/marketdata"
	"stockpro/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("FRONTEND_ORIGIN", "http://localhost:5173")
	viper.SetDefault("GOOGLE_USERINFO_URL", "")
	viper.SetDefault("MARKET_DATA_BASE_URL", "")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	databaseURL := viper.GetString("DATABASE_URL")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	frontendOrigin := viper.GetString("FRONTEND_ORIGIN")

	// --- Initialize Repositories ---
	// A configured DATABASE_URL selects PostgreSQL; otherwise the in-memory
	// stores keep local development working without infrastructure.
	var userRepo repositories.UserRepository
	var watchlistRepo repositories.WatchlistRepository
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.User{}, &models.WatchlistEntry{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		userRepo = repositories.NewGORMUserRepository(db)
		watchlistRepo = repositories.NewGORMWatchlistRepository(db)
		log.Println("Connected to PostgreSQL")
	} else {
		userRepo = repositories.NewMockUserRepository()
		watchlistRepo = repositories.NewMockWatchlistRepository()
		log.Println("DATABASE_URL not set, using in-memory stores")
	}

	// --- Initialize RabbitMQ Client ---
	// Optional: watchlist change events are published for downstream
	// consumers (alerting, cache warming) when a broker is configured.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
	} else {
		log.Println("RABBITMQ_URL not set, watchlist events will not be published")
	}

	// --- Initialize Services ---
	tokenService := services.NewTokenService(jwtSecret)
	googleVerifier := googleauth.NewClient(viper.GetString("GOOGLE_USERINFO_URL"))
	marketClient := marketdata.NewClient(viper.GetString("MARKET_DATA_BASE_URL"))

	authService := services.NewAuthService(userRepo, tokenService, googleVerifier)
	watchlistService := services.NewWatchlistService(watchlistRepo, mqClient)
	stockService := services.NewStockService(marketClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistService)
	stockHandler := handlers.NewStockHandler(stockService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins:     frontendOrigin,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	authRequired := middleware.AuthRequired(authService)

	// Authentication routes (register/login/google are public)
	authHandler.RegisterRoutes(apiV1, authRequired)

	// Protected routes (require JWT authentication)
	protectedRoutes := apiV1.Group("", authRequired)
	watchlistHandler.RegisterRoutes(protectedRoutes)
	stockHandler.RegisterRoutes(protectedRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Drains watchlist events; real consumers (price alerts, emails) would
	// hang their processing off this handler.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for watchlist events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received watchlist event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeWatchlistEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// RabbitMQ connection close is handled by defer in main
	log.Println("Server gracefully stopped")
}
