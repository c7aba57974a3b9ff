package routes

import (
	"net/http"
	"time"

	"opaleka/handlers"
	"opaleka/middleware"
	"opaleka/models"
	"opaleka/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthRequired())
		api.POST("/logout", handlers.Logout)
		api.GET("/me", handlers.Me)
		api.PUT("/profile", handlers.UpdateProfile)
		api.PUT("/password", handlers.ChangePassword)
		api.PUT("/complete-profile", handlers.SaveCompleteProfile)
		api.GET("/complete-profile", handlers.GetCompleteProfile)
	}
}

// RegisterReviewRoutes registers rating endpoints.
func RegisterReviewRoutes(r *gin.Engine) {
	api := r.Group("/api/reviews")
	{
		api.GET("/provider/:id", handlers.ProviderReviews)

		api.Use(middleware.AuthRequired())
		api.POST("/submit", handlers.SubmitReview)
		api.POST("/skip", handlers.SkipReview)
		api.GET("/pending", handlers.PendingRatings)
	}
}

// RegisterNotificationRoutes registers the in-app notification feed.
func RegisterNotificationRoutes(r *gin.Engine) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.AuthRequired())
		api.GET("", handlers.ListNotifications)
		api.GET("/unread-count", handlers.UnreadNotificationCount)
		api.PUT("/:id/read", handlers.MarkNotificationRead)
		api.DELETE("/:id", handlers.DeleteNotification)
	}
}

// RegisterMarketplaceRoutes registers the public catalog and provider search.
func RegisterMarketplaceRoutes(r *gin.Engine) {
	api := r.Group("/api/services")
	{
		api.GET("", handlers.ListServices)
		api.GET("/categories", handlers.ListServiceCategories)
		api.GET("/providers", handlers.VisibleProviders)
		api.GET("/providers/:id", handlers.ProviderDetails)
	}
	r.GET("/api/tips", handlers.ListTips)
}

// RegisterBillingRoutes registers provider activation payment endpoints.
func RegisterBillingRoutes(r *gin.Engine) {
	api := r.Group("/api/billing")
	{
		api.Use(middleware.AuthRequired(), middleware.RequireRole(models.RoleProvider))
		api.GET("/standing", handlers.PaymentStanding)
		api.POST("/activation-intent", handlers.CreateActivationIntent)
	}
}

// RegisterAdminRoutes registers dashboard and catalog management endpoints.
func RegisterAdminRoutes(r *gin.Engine) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.AdminAuth())
		api.GET("/analytics", handlers.AdminAnalytics)
		api.GET("/providers/pending", handlers.PendingProviders)
		api.GET("/users/search", handlers.SearchUsers)
		api.POST("/services", handlers.CreateService)
		api.DELETE("/services/:id", handlers.DeleteService)
		api.POST("/tips", handlers.CreateTip)
		api.PUT("/tips/:id", handlers.UpdateTip)
		api.DELETE("/tips/:id", handlers.DeleteTip)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm Opaleka",
			"checks":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r)
	RegisterBookingRoutes(r)
	RegisterReviewRoutes(r)
	RegisterNotificationRoutes(r)
	RegisterMarketplaceRoutes(r)
	RegisterBillingRoutes(r)
	RegisterAdminRoutes(r)
	RegisterHealthRoute(r)
}
