// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/config"
	"github.com/petbao/petbao-backend/internal/handlers"
	"github.com/petbao/petbao-backend/internal/middleware"
	"github.com/petbao/petbao-backend/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	identityService := services.NewIdentityService(db)
	userService := services.NewUserService(db)
	taxonomyService := services.NewTaxonomyService(db)
	productService := services.NewProductService(db)
	paymentService := services.NewPaymentService(&cfg.Payment)
	orderService := services.NewOrderService(db, paymentService)
	chatService := services.NewChatService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identityService)
	userHandler := handlers.NewUserHandler(userService)
	taxonomyHandler := handlers.NewTaxonomyHandler(taxonomyService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	messageHandler := handlers.NewMessageHandler(chatService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", cfg.Auth.OpenIDHeader, cfg.Auth.UnionIDHeader},
		ExposeHeaders:    []string{"X-Total-Count", "X-Page", "X-Per-Page", "X-Total-Pages"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.Identity(db, cfg.Auth))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			auth.POST("/wechat-login", authHandler.WechatLogin)
		}

		// User routes
		users := api.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/me", userHandler.Me)
			users.PUT("/update_profile", userHandler.UpdateProfile)
		}

		// Taxonomy routes
		api.GET("/categories", taxonomyHandler.GetCategories)
		api.GET("/species", taxonomyHandler.GetSpecies)
		api.GET("/gene-tags", taxonomyHandler.GetGeneTags)

		// Product routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.GET("/my_products", productHandler.GetMyProducts)
				protected.POST("", middleware.WriteRateLimit(), productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/:id/toggle_status", productHandler.ToggleStatus)
			}

			products.GET("/:id", productHandler.GetProduct)
		}

		// Order routes
		orders := api.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.GetOrders)
			orders.POST("", middleware.WriteRateLimit(), orderHandler.CreateOrder)
			orders.GET("/my_purchases", orderHandler.GetMyPurchases)
			orders.GET("/my_sales", orderHandler.GetMySales)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/pay", orderHandler.Pay)
			orders.POST("/:id/ship", orderHandler.Ship)
			orders.POST("/:id/confirm_receipt", orderHandler.ConfirmReceipt)
			orders.POST("/:id/cancel", orderHandler.Cancel)
		}

		// Chat message routes
		messages := api.Group("/messages")
		messages.Use(middleware.AuthRequired())
		{
			messages.GET("", messageHandler.GetMessages)
			messages.POST("", messageHandler.SendMessage)
			messages.POST("/mark_as_read", messageHandler.MarkAsRead)
		}
	}

	return r
}
