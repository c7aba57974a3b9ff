package handlers

import (
	"net/http"
	"time"

	"opaleka/models"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListTips handles GET /tips.
func ListTips(c *gin.Context) {
	tips, err := TipCatalog.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tips": tips})
}

// CreateTip handles POST /admin/tips.
func CreateTip(c *gin.Context) {
	var t models.Tip
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}
	if t.Title == "" || t.Description == "" {
		utils.RespondError(c, utils.NewValidationError("title and description are required"))
		return
	}

	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()
	if err := TipCatalog.Create(&t); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "tip": t})
}

// UpdateTip handles PUT /admin/tips/:id.
func UpdateTip(c *gin.Context) {
	var t models.Tip
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}
	t.ID = c.Param("id")

	matched, err := TipCatalog.Update(&t)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !matched {
		utils.RespondError(c, utils.NewNotFoundError("tip"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tip": t})
}

// DeleteTip handles DELETE /admin/tips/:id.
func DeleteTip(c *gin.Context) {
	matched, err := TipCatalog.Delete(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !matched {
		utils.RespondError(c, utils.NewNotFoundError("tip"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Tip deleted."})
}
