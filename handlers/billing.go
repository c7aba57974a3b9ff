package handlers

import (
	"net/http"

	"opaleka/middleware"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
)

// CreateActivationIntent handles POST /billing/activation-intent: prepares a
// card payment for the activation fee. The provider's standing only changes
// once the settled payment is recorded.
func CreateActivationIntent(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	result, err := BillingService.CreateActivationIntent(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment": result})
}
