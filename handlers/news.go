package handlers

import (
	"net/http"

	"nekokin/services/catalog"

	"github.com/gin-gonic/gin"
)

// ListNews returns all published articles.
func ListNews(c *gin.Context) {
	items, err := CatalogSvc.ListNews()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetNews returns one article.
func GetNews(c *gin.Context) {
	n, err := CatalogSvc.GetNews(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// CreateNews publishes an article; admin only.
func CreateNews(c *gin.Context) {
	var input catalog.NewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	n, err := CatalogSvc.CreateNews(actorFrom(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// UpdateNews replaces an article; admin only.
func UpdateNews(c *gin.Context) {
	var input catalog.NewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	n, err := CatalogSvc.UpdateNews(actorFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// DeleteNews removes an article; admin only.
func DeleteNews(c *gin.Context) {
	if err := CatalogSvc.DeleteNews(actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}
