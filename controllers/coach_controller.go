package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/progprogect/NutritionBot/models"
	"github.com/progprogect/NutritionBot/services"
)

// CoachController is the operator side of coach requests: inbox, detail,
// and status transitions. User submission happens through the chat
// questionnaire in IngestController.
type CoachController struct {
	Coach *services.CoachService
}

func NewCoachController(coach *services.CoachService) *CoachController {
	return &CoachController{Coach: coach}
}

// GetInbox lists requests, newest first. Optional status filter and limit.
func (h *CoachController) GetInbox(c *gin.Context) {
	var status models.RequestStatus
	if v := c.Query("status"); v != "" {
		s, err := models.ParseRequestStatus(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of new, in_progress, done, rejected"})
			return
		}
		status = s
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	requests, err := h.Coach.Inbox(status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// GetRequest returns one request in full.
func (h *CoachController) GetRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := h.Coach.Get(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus moves a request through the workflow.
func (h *CoachController) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var body statusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	status, err := models.ParseRequestStatus(body.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of new, in_progress, done, rejected"})
		return
	}

	req, err := h.Coach.SetStatus(uint(id), status)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}
