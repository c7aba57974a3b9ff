package handlers

import (
	"net/http"

	"opaleka/middleware"
	"opaleka/models"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBooking handles POST /book-service.
func CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	b, err := BookingService.Create(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("booking created",
		zap.String("bookingID", b.ID), zap.String("providerID", b.ProviderID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": b})
}

// ProviderBookings handles GET /provider/bookings/:status.
func ProviderBookings(c *gin.Context) {
	providerID := c.GetString(middleware.ContextUserID)
	views, err := BookingService.ProviderBookings(providerID, c.Param("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": views})
}

// ClientBookings handles GET /user/bookings/:status.
func ClientBookings(c *gin.Context) {
	clientID := c.GetString(middleware.ContextUserID)
	bookings, err := BookingService.ClientBookings(clientID, c.Param("status"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// AcceptBooking handles POST /accept/:id.
func AcceptBooking(c *gin.Context) {
	decideBooking(c, true)
}

// RejectBooking handles POST /reject/:id.
func RejectBooking(c *gin.Context) {
	decideBooking(c, false)
}

func decideBooking(c *gin.Context, accepted bool) {
	id := c.Param("id")
	var (
		b   *models.Booking
		err error
	)
	if accepted {
		b, err = BookingService.Accept(id)
	} else {
		b, err = BookingService.Reject(id)
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// CompleteBooking handles POST /complete/:id.
func CompleteBooking(c *gin.Context) {
	b, err := BookingService.Complete(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// CancelBooking handles PUT /cancel/:id. Only the booking's own client may
// cancel, and only while the booking is still pending.
func CancelBooking(c *gin.Context) {
	clientID := c.GetString(middleware.ContextUserID)
	b, err := BookingService.Cancel(c.Param("id"), clientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
}

// RemoveCompletedBooking handles PUT /completed/:id: hides a completed
// booking from the caller's history only.
func RemoveCompletedBooking(c *gin.Context) {
	softDeleteBooking(c)
}

// RemoveRejectedBooking handles PUT /rejected/:id: hides a rejected booking
// from the caller's history only.
func RemoveRejectedBooking(c *gin.Context) {
	softDeleteBooking(c)
}

func softDeleteBooking(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if err := BookingService.SoftDelete(c.Param("id"), userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking removed from your history."})
}

// DeletePendingBooking handles DELETE /pending/:id: hard-deletes the caller's
// own pending booking.
func DeletePendingBooking(c *gin.Context) {
	clientID := c.GetString(middleware.ContextUserID)
	if err := BookingService.DeletePending(c.Param("id"), clientID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted."})
}
