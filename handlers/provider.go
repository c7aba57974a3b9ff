package handlers

import (
	"net/http"

	"opaleka/middleware"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerifyDocuments handles POST /verify-documents: an admin records a
// provider's verification outcome.
func VerifyDocuments(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	if err := ProviderService.SetVerification(req.UserID, req.Status, req.Notes); err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("provider verification updated",
		zap.String("userID", req.UserID), zap.String("status", req.Status))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification status updated."})
}

// UpdatePaymentStatus handles POST /update-payment-status: records an
// activation payment against a provider.
func UpdatePaymentStatus(c *gin.Context) {
	var req struct {
		UserID string  `json:"userId"`
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}

	result, err := ProviderService.RecordPayment(req.UserID, req.Amount)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !result.Activated {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Payment received but insufficient.",
			"shortfall": result.Shortfall,
			"provider":  result.Details,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Payment confirmed. Account activated.",
		"provider": result.Details,
	})
}

// VisibleProviders handles GET /services/providers: the marketplace search
// listing.
func VisibleProviders(c *gin.Context) {
	providers, err := ProviderService.VisibleProviders()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "providers": providers})
}

// PendingProviders handles GET /admin/providers/pending.
func PendingProviders(c *gin.Context) {
	pending, err := ProviderService.PendingProviders()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "providers": pending})
}

// ProviderDetails handles GET /services/providers/:id: the client-facing
// provider page.
func ProviderDetails(c *gin.Context) {
	details, err := ProviderService.Details(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "provider": details})
}

// PaymentStanding handles GET /billing/standing: a provider's own
// verification and payment state.
func PaymentStanding(c *gin.Context) {
	details, err := ProviderService.PaymentStanding(c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "provider": details})
}
