package handlers

import (
	"net/http"

	"opaleka/models"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
)

// AdminAnalytics handles GET /admin/analytics: headline platform counts for
// the admin dashboard.
func AdminAnalytics(c *gin.Context) {
	clients, err := Users.CountByRole(models.RoleClient)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	providers, err := Users.CountByRole(models.RoleProvider)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	pendingVerification, err := Providers.CountPendingVerification()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	visible, err := Providers.CountVisible()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	paid, err := Providers.CountByPaymentStatus(models.PaymentPaid)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	unpaid, err := Providers.CountByPaymentStatus(models.PaymentUnpaid)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"analytics": gin.H{
			"clients":             clients,
			"providers":           providers,
			"pendingVerification": pendingVerification,
			"visibleProviders":    visible,
			"paidProviders":       paid,
			"unpaidProviders":     unpaid,
		},
	})
}

// SearchUsers handles GET /admin/users/search.
func SearchUsers(c *gin.Context) {
	query := c.Query("q")
	role := c.Query("role")
	if query == "" {
		utils.RespondError(c, utils.NewValidationError("query parameter q is required"))
		return
	}

	users, err := UserService.Search(query, role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	results := make([]map[string]any, 0, len(users))
	for i := range users {
		results = append(results, users[i].PublicView())
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": results})
}
