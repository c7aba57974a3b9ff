package routes

import (
	"opaleka/handlers"
	"opaleka/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/book")
	{
		api.POST("/book-service", handlers.CreateBooking)
		api.POST("/verify-documents", handlers.VerifyDocuments)
		api.POST("/update-payment-status", handlers.UpdatePaymentStatus)

		api.Use(middleware.AuthRequired())
		api.GET("/provider/bookings/:status", handlers.ProviderBookings)
		api.GET("/user/bookings/:status", handlers.ClientBookings)
		api.POST("/accept/:id", handlers.AcceptBooking)
		api.POST("/reject/:id", handlers.RejectBooking)
		api.POST("/complete/:id", handlers.CompleteBooking)
		api.PUT("/cancel/:id", handlers.CancelBooking)
		api.PUT("/completed/:id", handlers.RemoveCompletedBooking)
		api.PUT("/rejected/:id", handlers.RemoveRejectedBooking)
		api.DELETE("/pending/:id", handlers.DeletePendingBooking)
	}
}
