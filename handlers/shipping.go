package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type shipmentQuoteInput struct {
	ServiceID   string `json:"serviceId" binding:"required"`
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// QuoteShipment prices a pet transport between two addresses.
func QuoteShipment(c *gin.Context) {
	var input shipmentQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	quote, err := ShippingSvc.Quote(c.Request.Context(), input.ServiceID, input.Origin, input.Destination)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
