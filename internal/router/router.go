// internal/router/router.go
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saarthi/saarthi-backend/internal/config"
	"github.com/saarthi/saarthi-backend/internal/handlers"
	"github.com/saarthi/saarthi-backend/internal/middleware"
	"github.com/saarthi/saarthi-backend/internal/services"
)

// Setup wires services, handlers and routes onto a gin engine.
func Setup(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	notifications := services.NewNotificationService(cfg.Email)
	propertyService := services.NewPropertyService(db)
	favoriteService := services.NewFavoriteService(db)
	contactService := services.NewContactService(db, notifications)
	bookingService := services.NewBookingService(db, notifications)
	authService := services.NewAuthService(db, cfg.Google, cfg.JWT)
	interactionService := services.NewInteractionService(db)
	adminService := services.NewAdminService(db, interactionService)

	serverBaseURL := "http://" + cfg.Server.Host + ":" + cfg.Server.Port
	storageService, err := services.NewStorageService(cfg.AWS, serverBaseURL)
	if err != nil {
		return nil, err
	}

	cacheTTL := time.Duration(cfg.Redis.CacheTTL) * time.Second

	propertyHandler := handlers.NewPropertyHandler(propertyService, storageService, interactionService, cacheTTL)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	contactHandler := handlers.NewContactHandler(contactService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	authHandler := handlers.NewAuthHandler(authService, cfg.Frontend.BaseURL)
	adminHandler := handlers.NewAdminHandler(adminService, propertyService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.TrackingMiddleware(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "saarthi-backend"})
	})

	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.GET("/google", middleware.AuthRateLimit(), authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
		auth.POST("/refresh", middleware.AuthRateLimit(), authHandler.Refresh)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
		auth.PUT("/profile", middleware.AuthRequired(), authHandler.UpdateProfile)
	}

	// Properties
	properties := api.Group("/properties")
	{
		properties.GET("", middleware.OptionalAuth(), propertyHandler.List)
		properties.GET("/featured", propertyHandler.Featured)
		properties.GET("/mine", middleware.AuthRequired(), propertyHandler.MyProperties)
		properties.GET("/:id", middleware.OptionalAuth(), propertyHandler.Detail)
		properties.POST("", middleware.AuthRequired(), propertyHandler.Create)
		properties.PUT("/:id", middleware.AuthRequired(), propertyHandler.Update)
		properties.DELETE("/:id", middleware.AuthRequired(), propertyHandler.Delete)
		properties.POST("/:id/images", middleware.AuthRequired(), middleware.UploadRateLimit(), propertyHandler.UploadImages)
	}

	// Favorites
	favorites := api.Group("/favorites", middleware.AuthRequired())
	{
		favorites.GET("", favoriteHandler.List)
		favorites.POST("", favoriteHandler.Add)
		favorites.DELETE("", favoriteHandler.Clear)
		favorites.GET("/check/:propertyId", favoriteHandler.Check)
		favorites.DELETE("/:propertyId", favoriteHandler.Remove)
	}

	// Contact
	api.POST("/contact", middleware.OptionalAuth(), contactHandler.Submit)

	// Bookings
	bookings := api.Group("/bookings", middleware.AuthRequired())
	{
		bookings.GET("", bookingHandler.List)
		bookings.POST("", bookingHandler.Create)
		bookings.GET("/property/:propertyId", bookingHandler.ListForProperty)
		bookings.PUT("/:id/status", bookingHandler.UpdateStatus)
	}

	// Admin
	admin := api.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/users", adminHandler.Users)
		admin.GET("/contacts", contactHandler.AdminList)
		admin.PUT("/contacts/:id", contactHandler.AdminUpdate)
		admin.PUT("/properties/:id/featured", adminHandler.SetFeatured)
	}

	return r, nil
}
