package handlers

import (
	"net/http"
	"time"

	"opaleka/models"
	"opaleka/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListServices handles GET /services.
func ListServices(c *gin.Context) {
	services, err := ServiceCatalog.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// ListServiceCategories handles GET /services/categories.
func ListServiceCategories(c *gin.Context) {
	categories, err := ServiceCatalog.Categories()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// CreateService handles POST /admin/services.
func CreateService(c *gin.Context) {
	var s models.Service
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body."})
		return
	}
	if s.Name == "" || s.Category == "" {
		utils.RespondError(c, utils.NewValidationError("name and category are required"))
		return
	}

	now := time.Now().UTC()
	s.ID = uuid.New().String()
	s.CreatedAt = now
	s.UpdatedAt = now
	if err := ServiceCatalog.Create(&s); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "service": s})
}

// DeleteService handles DELETE /admin/services/:id.
func DeleteService(c *gin.Context) {
	matched, err := ServiceCatalog.Delete(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !matched {
		utils.RespondError(c, utils.NewNotFoundError("service"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted."})
}
