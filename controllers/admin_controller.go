package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/progprogect/NutritionBot/services"
)

// AdminController exposes usage stats to operators.
type AdminController struct {
	Metrics *services.MetricsService
	Loc     *time.Location
}

func NewAdminController(metrics *services.MetricsService, loc *time.Location) *AdminController {
	return &AdminController{Metrics: metrics, Loc: loc}
}

// GetStats returns one day of usage metrics, today by default.
func (h *AdminController) GetStats(c *gin.Context) {
	day := time.Now().In(h.Loc)
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, h.Loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	stats, err := h.Metrics.Daily(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
