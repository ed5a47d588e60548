package main

import (
	"log"

	"golang-storefront-sync/configs"
	"golang-storefront-sync/internal/handlers"
	"golang-storefront-sync/internal/middleware"
	"golang-storefront-sync/internal/repositories"
	"golang-storefront-sync/internal/services"
	"golang-storefront-sync/pkg/auth"
	"golang-storefront-sync/pkg/cache"
	"golang-storefront-sync/pkg/messaging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config := configs.LoadConfig()

	// Set Gin mode
	gin.SetMode(config.Server.Mode)

	// Initialize Redis (durable local store for snapshots and guest ids)
	redisCache := cache.NewRedisCache(config.Redis.URL, config.Redis.Password, config.Redis.DB)
	if redisCache == nil {
		log.Fatal("Failed to connect to Redis")
	}
	defer redisCache.Close()

	// Initialize Kafka
	kafkaProducer := messaging.NewKafkaProducer(config.Kafka.Brokers)
	defer kafkaProducer.Close()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(config.JWT.SecretKey, config.JWT.ExpiryHours)

	// Initialize repositories
	snapshotRepo := repositories.NewSnapshotRepository(redisCache)
	sessionRepo := repositories.NewSessionRepository(redisCache)

	// Upstream commerce backend client
	commerceAPI := services.NewCommerceAPIClient(config.Backend.BaseURL, config.Backend.TimeoutSeconds)

	// Initialize services
	sessionService := services.NewSessionService(sessionRepo)
	cartService := services.NewCartService(commerceAPI, snapshotRepo, kafkaProducer)
	authService := services.NewAuthService(commerceAPI, cartService, sessionService, jwtManager)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(jwtManager, sessionService, config.Session.CookieName, config.Session.CookieMaxAge, config.Session.CookieSecure)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	// Initialize handlers
	cartHandler := handlers.NewCartHandler(cartService)
	authHandler := handlers.NewAuthHandler(authService)

	// Initialize Gin router
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "storefront-session-gateway",
		})
	})

	// API routes; every request gets a resolved session identity
	api := router.Group("/api", sessionMiddleware.Identify())

	// Register routes
	cartHandler.RegisterRoutes(api, authMiddleware)
	authHandler.RegisterRoutes(api)

	log.Printf("Server starting on port %s", config.Server.Port)
	log.Fatal(router.Run(":" + config.Server.Port))
}
