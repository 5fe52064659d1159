package handlers

import (
	"net/http"
	"strconv"

	"nekokin/models"
	"nekokin/services/catalog"

	"github.com/gin-gonic/gin"
)

// ListServices returns the catalog, optionally filtered with ?category=N.
func ListServices(c *gin.Context) {
	var category *models.ServiceCategory
	if q := c.Query("category"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category must be numeric"})
			return
		}
		cat := models.ServiceCategory(n)
		category = &cat
	}
	items, err := CatalogSvc.ListServices(category)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetService returns one catalog entry.
func GetService(c *gin.Context) {
	svc, err := CatalogSvc.GetService(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateService adds a catalog entry; admin only.
func CreateService(c *gin.Context) {
	var input catalog.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := CatalogSvc.CreateService(actorFrom(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateService replaces a catalog entry; admin only.
func UpdateService(c *gin.Context) {
	var input catalog.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := CatalogSvc.UpdateService(actorFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService removes a catalog entry; admin only.
func DeleteService(c *gin.Context) {
	if err := CatalogSvc.DeleteService(actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
