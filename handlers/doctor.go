package handlers

import (
	"net/http"

	"nekokin/services/catalog"

	"github.com/gin-gonic/gin"
)

// ListDoctors returns all doctor profiles.
func ListDoctors(c *gin.Context) {
	items, err := CatalogSvc.ListDoctors()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetDoctor returns one doctor profile.
func GetDoctor(c *gin.Context) {
	d, err := CatalogSvc.GetDoctor(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// CreateDoctor adds a doctor profile; admin only.
func CreateDoctor(c *gin.Context) {
	var input catalog.DoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	d, err := CatalogSvc.CreateDoctor(actorFrom(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// UpdateDoctor replaces a doctor profile; admin only.
func UpdateDoctor(c *gin.Context) {
	var input catalog.DoctorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	d, err := CatalogSvc.UpdateDoctor(actorFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DeleteDoctor removes a doctor profile; admin only.
func DeleteDoctor(c *gin.Context) {
	if err := CatalogSvc.DeleteDoctor(actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "doctor deleted"})
}

type reviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ReviewDoctor records a customer review for a doctor.
func ReviewDoctor(c *gin.Context) {
	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	d, err := CatalogSvc.ReviewDoctor(actorFrom(c), c.Param("id"), input.Rating, input.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}
