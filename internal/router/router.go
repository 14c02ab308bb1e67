// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/events"
	"github.com/javajoker/storefront-backend/internal/handlers"
	"github.com/javajoker/storefront-backend/internal/middleware"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// Initialize wires services and handlers onto a new engine. The returned
// func stops the rate limiters' background cleanup.
func Initialize(db *gorm.DB, cfg *config.Config, publisher events.Publisher) (*gin.Engine, func(), error) {
	uow := database.NewUnitOfWork(db)
	tokens := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)

	// Initialize services
	storageService, err := services.NewStorageService(cfg.AWS, cfg.Upload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	authService := services.NewAuthService(uow, tokens)
	userService := services.NewUserService(uow)
	productService := services.NewProductService(uow)
	orderService := services.NewOrderService(uow, publisher, cfg.Kafka.OrderTopic)
	reviewService := services.NewReviewService(uow, publisher, cfg.Kafka.ReviewTopic)
	favoriteService := services.NewFavoriteService(uow)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCatalogHandler(services.NewCategoryService(uow))
	manufacturerHandler := handlers.NewCatalogHandler(services.NewManufacturerService(uow))
	materialHandler := handlers.NewCatalogHandler(services.NewMaterialService(uow))
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	uploadHandler := handlers.NewUploadHandler(storageService)

	generalLimiter := middleware.PerSecond(cfg.RateLimit.GeneralPerSecond, cfg.RateLimit.GeneralBurst)
	authLimiter := middleware.PerMinute(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst)
	cleanup := func() {
		generalLimiter.Close()
		authLimiter.Close()
	}

	authRequired := middleware.AuthRequired(tokens)
	adminOnly := []gin.HandlerFunc{authRequired, middleware.AdminRequired()}

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(generalLimiter.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Locally stored uploads
	if cfg.AWS.AccessKeyID == "" {
		r.Static("/uploads", cfg.Upload.Dir)
	}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimiter.Middleware(), authHandler.Register)
			auth.POST("/login", authLimiter.Middleware(), authHandler.Login)

			protected := auth.Group("")
			protected.Use(authRequired)
			{
				protected.GET("/profile", authHandler.GetProfile)
				protected.PUT("/profile", authHandler.UpdateProfile)
				protected.POST("/change-password", authHandler.ChangePassword)
			}
		}

		products := api.Group("/products")
		{
			products.GET("/:id", productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(adminOnly...)
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		categoryHandler.Register(api.Group("/categories"), adminOnly...)
		manufacturerHandler.Register(api.Group("/manufacturers"), adminOnly...)
		materialHandler.Register(api.Group("/materials"), adminOnly...)

		orders := api.Group("/orders")
		{
			orders.POST("", middleware.OptionalAuth(tokens), orderHandler.PlaceOrder)
			orders.GET("/my", authRequired, orderHandler.GetMyOrders)

			admin := orders.Group("")
			admin.Use(adminOnly...)
			{
				admin.GET("", orderHandler.GetOrders)
				admin.GET("/:id", orderHandler.GetOrder)
				admin.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			}
		}

		// :id is the product on GET/POST and the review on PUT/DELETE
		reviews := api.Group("/reviews")
		{
			reviews.GET("/:id", reviewHandler.GetProductReviews)

			protected := reviews.Group("")
			protected.Use(authRequired)
			{
				protected.POST("/:id", reviewHandler.CreateReview)
				protected.PUT("/:id", reviewHandler.UpdateReview)
				protected.DELETE("/:id", reviewHandler.DeleteReview)
			}
		}

		favorites := api.Group("/favorites")
		favorites.Use(authRequired)
		{
			favorites.GET("", favoriteHandler.GetFavorites)
			favorites.POST("/:productId", favoriteHandler.AddFavorite)
			favorites.DELETE("/:productId", favoriteHandler.RemoveFavorite)
		}

		api.POST("/upload", authRequired, middleware.AdminRequired(), uploadHandler.UploadImages)
	}

	return r, cleanup, nil
}
