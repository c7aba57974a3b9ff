package handlers

import (
	"net/http"

	"opaleka/middleware"
	"opaleka/services/review"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
)

// SubmitReview handles POST /reviews/submit.
func SubmitReview(c *gin.Context) {
	var req review.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}
	req.UserID = c.GetString(middleware.ContextUserID)

	r, err := ReviewService.Submit(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "review": r})
}

// SkipReview handles POST /reviews/skip.
func SkipReview(c *gin.Context) {
	var req struct {
		BookingID string `json:"bookingId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}
	userID := c.GetString(middleware.ContextUserID)

	if err := ReviewService.Skip(req.BookingID, userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rating skipped."})
}

// PendingRatings handles GET /reviews/pending: the caller's completed
// bookings still awaiting a rating.
func PendingRatings(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	bookings, err := ReviewService.PendingRatings(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// ProviderReviews handles GET /reviews/provider/:id.
func ProviderReviews(c *gin.Context) {
	reviews, summary, err := ReviewService.ProviderReviews(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"reviews":       reviews,
		"reviewCount":   summary.ReviewCount,
		"averageRating": summary.AverageRating,
	})
}
