package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DashboardStats returns counts and completed-booking revenue; admin only.
// Optional start/end query parameters (YYYY-MM-DD) restrict the revenue
// window.
func DashboardStats(c *gin.Context) {
	var start, end *time.Time
	if q := c.Query("start"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
			return
		}
		start = &t
	}
	if q := c.Query("end"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be YYYY-MM-DD"})
			return
		}
		// Make the end bound cover the whole day.
		t = t.Add(24*time.Hour - time.Millisecond)
		end = &t
	}

	stats, err := DashboardSvc.Snapshot(actorFrom(c), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
