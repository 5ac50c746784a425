// internal/router/router.go
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nexcart/storefront/internal/config"
	"github.com/nexcart/storefront/internal/handlers"
	"github.com/nexcart/storefront/internal/middleware"
	"github.com/nexcart/storefront/internal/services"
	"github.com/nexcart/storefront/internal/utils"
	"github.com/nexcart/storefront/internal/web"
)

// Server is the wired HTTP handler plus the background pieces that need
// stopping on shutdown.
type Server struct {
	Engine     *gin.Engine
	Storage    *services.StorageService
	rateLimits *middleware.RateLimits
}

func (s *Server) Close() {
	s.rateLimits.Stop()
}

func Initialize(db *gorm.DB, cfg *config.Config) (*Server, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	authService := services.NewAuthService(db)
	catalogService := services.NewCatalogService(db)
	checkoutService := services.NewCheckoutService(db)
	adminService := services.NewAdminService(db, storageService)

	sessions := utils.NewSessionStore(cfg.Session)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessions, authService)
	productHandler := handlers.NewProductHandler(sessions, catalogService)
	cartHandler := handlers.NewCartHandler(sessions, checkoutService)
	checkoutHandler := handlers.NewCheckoutHandler(sessions, checkoutService)
	adminHandler := handlers.NewAdminHandler(sessions, adminService)

	renderer, err := web.NewRenderer(storageService)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	rateLimits := middleware.NewRateLimits(cfg.RateLimit)

	// Initialize Gin router
	r := gin.New()
	r.HTMLRender = renderer
	r.MaxMultipartMemory = cfg.Storage.MaxUploadSize

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept-Language"},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(rateLimits.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Uploaded product images
	if !storageService.UsesS3() {
		r.Static(services.LocalImagePrefix, cfg.Storage.UploadDir)
	}

	site := r.Group("")
	site.Use(middleware.LoadUser(sessions, authService))
	{
		// Authentication routes
		auth := site.Group("")
		auth.Use(rateLimits.AuthRateLimit())
		{
			auth.GET("/register", authHandler.ShowRegister)
			auth.POST("/register", authHandler.Register)
			auth.GET("/login", authHandler.ShowLogin)
			auth.POST("/login", authHandler.Login)
		}
		site.GET("/logout", middleware.LoginRequired(sessions), authHandler.Logout)

		// Catalog routes
		site.GET("/", productHandler.Home)
		site.GET("/shop", productHandler.Shop)
		site.GET("/product/:id", productHandler.Detail)

		// Cart routes
		site.GET("/add_to_cart/:id", cartHandler.Add)
		site.GET("/remove_from_cart/:id", cartHandler.Remove)
		site.GET("/cart", cartHandler.View)

		// Checkout routes
		site.GET("/checkout", checkoutHandler.Show)
		site.POST("/checkout", checkoutHandler.PlaceOrder)

		// Admin routes
		admin := site.Group("/admin")
		admin.Use(middleware.LoginRequired(sessions), middleware.AdminRequired(sessions))
		{
			admin.GET("", adminHandler.Dashboard)
			admin.POST("", adminHandler.CreateProduct)
		}
	}

	r.NoRoute(middleware.LoadUser(sessions, authService), handlers.NotFound(sessions))

	return &Server{
		Engine:     r,
		Storage:    storageService,
		rateLimits: rateLimits,
	}, nil
}
